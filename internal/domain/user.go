package domain

import (
	"strings"
	"time"
)

// User is an identity record. Records migrated from the legacy document
// store may carry extra attributes under historical key spellings; those
// survive in Attrs and are consulted when the dedicated columns are empty.
type User struct {
	ID            string         `json:"id"`
	Name          string         `json:"nombre"`
	Surname       string         `json:"apellido,omitempty"`
	Email         string         `json:"correo"`
	NationalID    string         `json:"ci,omitempty"`
	Secret        string         `json:"-"`
	PhotoRef      string         `json:"fotoPerfil,omitempty"`
	Phone         string         `json:"telefono,omitempty"`
	Role          string         `json:"rol"`
	TermsAccepted bool           `json:"terminosYCondiciones"`
	Attrs         map[string]any `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// UserInfo is the identity-safe view returned by registration and login.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"correo"`
	Role  string `json:"rol"`
}

func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// Valid user roles
const (
	RoleRequester = "requester"
	RoleFixer     = "fixer"
	RoleAdmin     = "admin"
)

// MaxAccessCodeAttempts caps wrong guesses against an emailed access code
// before the code is dead regardless of TTL.
const MaxAccessCodeAttempts = 5

var validRoles = map[string]bool{
	RoleRequester: true,
	RoleFixer:     true,
	RoleAdmin:     true,
}

func IsValidRole(role string) bool {
	return validRoles[role]
}

type RegisterRequest struct {
	Name          string
	Surname       string
	Email         string
	NationalID    string
	PhotoRef      string
	Phone         string
	Role          string
	TermsAccepted bool
	Secret        string

	// Raw is the request payload as received. Credentials arrive under
	// several historical key names and are resolved from here.
	Raw map[string]any
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
	r.Email = NormalizeEmail(r.Email)
	r.NationalID = strings.TrimSpace(r.NationalID)
	r.PhotoRef = strings.TrimSpace(r.PhotoRef)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Role == "" {
		r.Role = RoleRequester
	}
}

func (r *RegisterRequest) Validate() error {
	if r.Name == "" {
		return ValidationError("nombre is required")
	}
	if r.Email == "" {
		return ValidationError("correo is required")
	}
	if r.PhotoRef == "" {
		return ValidationError("fotoPerfil is required")
	}
	if !validRoles[r.Role] {
		return ValidationError("invalid role")
	}
	return nil
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        *UserInfo `json:"user,omitempty"`
}

type LoginRequest struct {
	Email  string
	Secret string

	Raw map[string]any
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

// NormalizeEmail produces the uniqueness key: surrounding whitespace
// stripped, lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
