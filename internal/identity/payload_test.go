package identity

import "testing"

func TestParseRegisterRequest(t *testing.T) {
	payload := map[string]any{
		"nombre":               "Ana",
		"apellido":             "Quispe",
		"correoElectronico":    "ana@example.com",
		"ci":                   "1234567",
		"fotoPerfil":           "https://img.example/ana.png",
		"telefono":             "70000000",
		"rol":                  "fixer",
		"terminosYCondiciones": "true",
	}

	req := ParseRegisterRequest(payload)
	if req.Name != "Ana" || req.Surname != "Quispe" {
		t.Errorf("name fields: %q %q", req.Name, req.Surname)
	}
	if req.Email != "ana@example.com" {
		t.Errorf("email: %q", req.Email)
	}
	if req.NationalID != "1234567" || req.PhotoRef != "https://img.example/ana.png" || req.Phone != "70000000" {
		t.Errorf("identity fields: %q %q %q", req.NationalID, req.PhotoRef, req.Phone)
	}
	if req.Role != "fixer" {
		t.Errorf("role: %q", req.Role)
	}
	if !req.TermsAccepted {
		t.Error("string \"true\" must coerce to accepted terms")
	}
	if req.Raw == nil {
		t.Error("raw payload must be retained for credential resolution")
	}
}

func TestParseRegisterRequestEnglishKeys(t *testing.T) {
	req := ParseRegisterRequest(map[string]any{
		"name":    "Ana",
		"surname": "Quispe",
		"email":   "ana@example.com",
		"phone":   "70000000",
		"role":    "requester",
	})
	if req.Name != "Ana" || req.Surname != "Quispe" || req.Email != "ana@example.com" {
		t.Errorf("english aliases: %+v", req)
	}
	if req.Phone != "70000000" || req.Role != "requester" {
		t.Errorf("english aliases: %+v", req)
	}
}

func TestBoolFieldCoercions(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"1", true},
		{"false", false},
		{"yes", false},
		{float64(1), true},
		{float64(0), false},
	}
	for _, tc := range cases {
		got := boolField(map[string]any{"terminosYCondiciones": tc.value}, "terminosYCondiciones")
		if got != tc.want {
			t.Errorf("boolField(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
	if boolField(map[string]any{}, "terminosYCondiciones") {
		t.Error("missing key must be false")
	}
}
