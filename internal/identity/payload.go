package identity

import "github.com/servineo/backend/internal/domain"

// ParseRegisterRequest maps a raw JSON payload onto a RegisterRequest,
// accepting the historical key spellings for each field. The payload itself
// is retained for credential resolution.
func ParseRegisterRequest(payload map[string]any) *domain.RegisterRequest {
	email, _ := ResolveEmail(payload)
	return &domain.RegisterRequest{
		Name:          stringField(payload, "nombre", "name"),
		Surname:       stringField(payload, "apellido", "surname"),
		Email:         email,
		NationalID:    stringField(payload, "ci"),
		PhotoRef:      stringField(payload, "fotoPerfil"),
		Phone:         stringField(payload, "telefono", "phone"),
		Role:          stringField(payload, "rol", "role"),
		TermsAccepted: boolField(payload, "terminosYCondiciones"),
		Raw:           payload,
	}
}

func ParseLoginRequest(payload map[string]any) *domain.LoginRequest {
	return &domain.LoginRequest{Raw: payload}
}

func stringField(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := payload[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

// boolField coerces the historical representations of a boolean: actual
// booleans, "true"/"false" strings, and numbers.
func boolField(payload map[string]any, keys ...string) bool {
	for _, key := range keys {
		v, ok := payload[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t
		case string:
			return t == "true" || t == "1"
		case float64:
			return t != 0
		}
	}
	return false
}
