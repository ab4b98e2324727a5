package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/servineo/backend/internal/domain"
	"github.com/servineo/backend/pkg/config"
)

type mockMagicRepo struct {
	email     string
	codeHash  string
	magic     string
	expiresAt time.Time
	attempts  int
	codeUsed  bool
	consumed  bool
}

func (m *mockMagicRepo) Create(_ context.Context, email, codeHash, magic string, expiresAt time.Time) error {
	m.email, m.codeHash, m.magic, m.expiresAt = email, codeHash, magic, expiresAt
	m.attempts, m.codeUsed = 0, false
	return nil
}

func (m *mockMagicRepo) CheckCode(_ context.Context, email, code string) (bool, error) {
	if email != m.email || m.codeUsed || time.Now().After(m.expiresAt) || m.attempts >= domain.MaxAccessCodeAttempts {
		return false, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(m.codeHash), []byte(code)) != nil {
		m.attempts++
		return false, nil
	}
	m.codeUsed = true
	return true, nil
}

func (m *mockMagicRepo) ConsumeMagic(_ context.Context, token string) (string, bool, error) {
	if token != m.magic || m.consumed {
		return "", false, nil
	}
	m.consumed = true
	return m.email, true, nil
}

func (m *mockMagicRepo) DeleteExpired(_ context.Context) (int64, error) { return 0, nil }

type capturingMailer struct {
	code      string
	magicLink string
}

func (c *capturingMailer) SendWelcomeEmail(_, _ string) error { return nil }

func (c *capturingMailer) SendMagicLinkEmail(_, code, magicLink string) error {
	c.code, c.magicLink = code, magicLink
	return nil
}

func magicConfig() *config.Config {
	cfg := testConfig()
	cfg.Auth.MagicLinkTTL = 15 * time.Minute
	cfg.Server.PublicBaseURL = "https://app.example.com"
	return cfg
}

func TestMagicLinkRequestAndVerifyCode(t *testing.T) {
	userRepo := newMockUserRepo()
	seedUser(userRepo, "ana@example.com", "s3cret")
	magicRepo := &mockMagicRepo{}
	mail := &capturingMailer{}
	svc := NewMagicLinkService(magicRepo, userRepo, mail, magicConfig())

	if err := svc.RequestAccess(context.Background(), " Ana@Example.com "); err != nil {
		t.Fatalf("RequestAccess: %v", err)
	}
	if len(mail.code) != 6 {
		t.Fatalf("access code must be six digits, got %q", mail.code)
	}
	if !strings.HasPrefix(mail.magicLink, "https://app.example.com/magiclink?token=") {
		t.Errorf("magic link: %q", mail.magicLink)
	}
	if bcrypt.CompareHashAndPassword([]byte(magicRepo.codeHash), []byte(mail.code)) != nil {
		t.Error("stored hash does not match the emailed code")
	}
	if until := time.Until(magicRepo.expiresAt); until > 15*time.Minute || until < 14*time.Minute {
		t.Errorf("unexpected expiry: %v", magicRepo.expiresAt)
	}

	resp, err := svc.VerifyCode(context.Background(), "ana@example.com", mail.code)
	if err != nil {
		t.Fatalf("VerifyCode: %v", err)
	}
	if resp.AccessToken == "" || resp.User == nil || resp.User.Email != "ana@example.com" {
		t.Errorf("session: %+v", resp)
	}

	_, err = svc.VerifyCode(context.Background(), "ana@example.com", "000000")
	if !errors.Is(err, domain.ErrMagicLinkInvalid) {
		t.Errorf("wrong code: got %v", err)
	}
}

func TestMagicLinkRequestUnknownEmailIsSilent(t *testing.T) {
	magicRepo := &mockMagicRepo{}
	mail := &capturingMailer{}
	svc := NewMagicLinkService(magicRepo, newMockUserRepo(), mail, magicConfig())

	if err := svc.RequestAccess(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if mail.code != "" {
		t.Error("no email must be sent for unknown accounts")
	}
	if magicRepo.codeHash != "" {
		t.Error("no code must be stored for unknown accounts")
	}
}

func TestMagicLinkVerifyMagicConsumesToken(t *testing.T) {
	userRepo := newMockUserRepo()
	seedUser(userRepo, "ana@example.com", "s3cret")
	magicRepo := &mockMagicRepo{}
	mail := &capturingMailer{}
	svc := NewMagicLinkService(magicRepo, userRepo, mail, magicConfig())

	if err := svc.RequestAccess(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("RequestAccess: %v", err)
	}

	token := strings.TrimPrefix(mail.magicLink, "https://app.example.com/magiclink?token=")
	resp, err := svc.VerifyMagic(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyMagic: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("missing access token")
	}

	// One-time use.
	_, err = svc.VerifyMagic(context.Background(), token)
	if !errors.Is(err, domain.ErrMagicLinkInvalid) {
		t.Errorf("replayed token: got %v", err)
	}
}

func TestMagicLinkVerifyCodeConsumesCode(t *testing.T) {
	userRepo := newMockUserRepo()
	seedUser(userRepo, "ana@example.com", "s3cret")
	magicRepo := &mockMagicRepo{}
	mail := &capturingMailer{}
	svc := NewMagicLinkService(magicRepo, userRepo, mail, magicConfig())

	if err := svc.RequestAccess(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("RequestAccess: %v", err)
	}

	if _, err := svc.VerifyCode(context.Background(), "ana@example.com", mail.code); err != nil {
		t.Fatalf("first VerifyCode: %v", err)
	}

	// A verified code is spent; replaying it must fail.
	_, err := svc.VerifyCode(context.Background(), "ana@example.com", mail.code)
	if !errors.Is(err, domain.ErrMagicLinkInvalid) {
		t.Errorf("replayed code: got %v", err)
	}
}

func TestMagicLinkVerifyCodeAttemptCap(t *testing.T) {
	userRepo := newMockUserRepo()
	seedUser(userRepo, "ana@example.com", "s3cret")
	magicRepo := &mockMagicRepo{}
	mail := &capturingMailer{}
	svc := NewMagicLinkService(magicRepo, userRepo, mail, magicConfig())

	if err := svc.RequestAccess(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("RequestAccess: %v", err)
	}

	for i := 0; i < domain.MaxAccessCodeAttempts; i++ {
		if _, err := svc.VerifyCode(context.Background(), "ana@example.com", "000000"); !errors.Is(err, domain.ErrMagicLinkInvalid) {
			t.Fatalf("wrong code attempt %d: got %v", i+1, err)
		}
	}

	// The correct code is dead once the attempt cap is reached.
	_, err := svc.VerifyCode(context.Background(), "ana@example.com", mail.code)
	if !errors.Is(err, domain.ErrMagicLinkInvalid) {
		t.Errorf("code after attempt cap: got %v", err)
	}
}

func TestMagicLinkVerifyRejectsBlankInput(t *testing.T) {
	svc := NewMagicLinkService(&mockMagicRepo{}, newMockUserRepo(), &capturingMailer{}, magicConfig())

	if _, err := svc.VerifyMagic(context.Background(), ""); !errors.Is(err, domain.ErrMagicLinkInvalid) {
		t.Errorf("blank token: got %v", err)
	}
	if _, err := svc.VerifyCode(context.Background(), "", "123456"); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Errorf("blank email: got %v", err)
	}
	if _, err := svc.VerifyCode(context.Background(), "ana@example.com", ""); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Errorf("blank code: got %v", err)
	}
}
