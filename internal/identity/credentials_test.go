package identity

import (
	"testing"

	"github.com/servineo/backend/internal/domain"
)

func TestResolveSecret(t *testing.T) {
	cases := []struct {
		name      string
		payload   map[string]any
		want      string
		wantFound bool
	}{
		{"empty payload", map[string]any{}, "", false},
		{"nil payload", nil, "", false},
		{"password key", map[string]any{"password": "p1"}, "p1", true},
		{"diacritic spelling", map[string]any{"contraseña": "x"}, "x", true},
		{"plain spelling", map[string]any{"contrasena": "y"}, "y", true},
		{"legacy correoElectronico key", map[string]any{"correoElectronico": "z"}, "z", true},
		{"password wins over later aliases", map[string]any{"contraseña": "b", "password": "a"}, "a", true},
		{"wrong-typed value skipped", map[string]any{"password": 42, "contrasena": "ok"}, "ok", true},
		{"only wrong-typed values", map[string]any{"password": true}, "", false},
		{"unrelated keys ignored", map[string]any{"nombre": "Ana"}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := ResolveSecret(tc.payload)
			if got != tc.want || found != tc.wantFound {
				t.Errorf("ResolveSecret(%v) = (%q, %v), want (%q, %v)",
					tc.payload, got, found, tc.want, tc.wantFound)
			}
		})
	}
}

func TestResolveEmail(t *testing.T) {
	if got, ok := ResolveEmail(map[string]any{"correo": "a@x.com"}); !ok || got != "a@x.com" {
		t.Errorf("correo alias: got (%q, %v)", got, ok)
	}
	if got, ok := ResolveEmail(map[string]any{"email": "b@x.com"}); !ok || got != "b@x.com" {
		t.Errorf("email alias: got (%q, %v)", got, ok)
	}
	// Precedence is correoElectronico, then correo, then email.
	if got, ok := ResolveEmail(map[string]any{"email": "b@x.com", "correo": "c@x.com", "correoElectronico": "d@x.com"}); !ok || got != "d@x.com" {
		t.Errorf("correoElectronico must win: got (%q, %v)", got, ok)
	}
	if got, ok := ResolveEmail(map[string]any{"email": "b@x.com", "correo": "c@x.com"}); !ok || got != "c@x.com" {
		t.Errorf("correo must win over email: got (%q, %v)", got, ok)
	}
	if _, ok := ResolveEmail(map[string]any{}); ok {
		t.Error("empty payload must not resolve an email")
	}
}

func TestResolveStoredSecret(t *testing.T) {
	withColumn := &domain.User{Secret: "column-secret", Attrs: map[string]any{"contraseña": "attr-secret"}}
	if got, ok := ResolveStoredSecret(withColumn); !ok || got != "column-secret" {
		t.Errorf("dedicated column must win: got (%q, %v)", got, ok)
	}

	legacyOnly := &domain.User{Attrs: map[string]any{"contrasena": "migrated"}}
	if got, ok := ResolveStoredSecret(legacyOnly); !ok || got != "migrated" {
		t.Errorf("legacy attrs fallback: got (%q, %v)", got, ok)
	}

	none := &domain.User{Attrs: map[string]any{"nombre": "Ana"}}
	if _, ok := ResolveStoredSecret(none); ok {
		t.Error("record without any secret must report not found")
	}
}

func TestStripSecretAliases(t *testing.T) {
	attrs := map[string]any{
		"nombre":     "Ana",
		"password":   "p1",
		"contraseña": "p2",
		"contrasena": "p3",
	}

	cleaned := StripSecretAliases(attrs)

	if _, ok := cleaned["password"]; ok {
		t.Error("password survived stripping")
	}
	if _, ok := cleaned["contraseña"]; ok {
		t.Error("contraseña survived stripping")
	}
	if cleaned["nombre"] != "Ana" {
		t.Error("non-secret keys must be preserved")
	}
	if attrs["password"] != "p1" {
		t.Error("input map must not be mutated")
	}
	if StripSecretAliases(nil) != nil {
		t.Error("nil input must stay nil")
	}
}
