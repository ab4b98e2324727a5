package identity

import "github.com/servineo/backend/internal/domain"

// The identity store accreted several key names for the same concept across
// schema migrations. Each concept maps to an ordered alias list; the first
// present string-typed value wins. Resolution lives here so the services
// never carry per-call key lists.
const (
	conceptSecret = "secret"
	conceptEmail  = "email"
)

var credentialAliases = map[string][]string{
	// "correoElectronico" really does appear as a password key in migrated
	// documents; it predates the email/password field split.
	conceptSecret: {"password", "correoElectronico", "contraseña", "contrasena"},
	conceptEmail:  {"correoElectronico", "correo", "email"},
}

func resolveConcept(payload map[string]any, concept string) (string, bool) {
	for _, key := range credentialAliases[concept] {
		if v, ok := payload[key]; ok {
			if s, ok := v.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

// ResolveSecret extracts a password-like value from a raw payload. Missing
// or wrong-typed keys are skipped; found is false when no alias yields a
// string.
func ResolveSecret(payload map[string]any) (secret string, found bool) {
	return resolveConcept(payload, conceptSecret)
}

// ResolveEmail extracts the identifier from a raw payload, accepting the
// generic "email" key plus the historical Spanish spellings.
func ResolveEmail(payload map[string]any) (email string, found bool) {
	return resolveConcept(payload, conceptEmail)
}

// ResolveStoredSecret finds the credential on a stored identity: the
// dedicated column first, then the legacy attribute aliases carried over
// from the document store.
func ResolveStoredSecret(u *domain.User) (string, bool) {
	if u.Secret != "" {
		return u.Secret, true
	}
	return ResolveSecret(u.Attrs)
}

// StripSecretAliases removes every secret alias from a raw attribute map so
// a credential never persists in plain attributes alongside the dedicated
// column.
func StripSecretAliases(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	cleaned := make(map[string]any, len(attrs))
	for k, v := range attrs {
		cleaned[k] = v
	}
	for _, key := range credentialAliases[conceptSecret] {
		delete(cleaned, key)
	}
	return cleaned
}
