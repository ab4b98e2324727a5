package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/servineo/backend/internal/domain"
	"github.com/servineo/backend/internal/http/response"
	"github.com/servineo/backend/internal/identity"
)

// Register creates a new identity. The body is decoded as a raw map because
// legacy clients send credentials and emails under several historical key
// names.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_INPUT")
		return
	}

	info, err := h.registration.Register(r.Context(), identity.ParseRegisterRequest(payload))
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.collector.RecordRegistration()
	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Registro exitoso",
		"user":    info,
	})
}

// Login authenticates an identity and issues a session token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_INPUT")
		return
	}

	resp, err := h.auth.Login(r.Context(), identity.ParseLoginRequest(payload))
	if err != nil {
		h.recordLoginFailure(err)
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handlers) recordLoginFailure(err error) {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		h.collector.RecordLoginFailure("missing_credentials")
	case errors.Is(err, domain.ErrIdentityNotFound):
		h.collector.RecordLoginFailure("not_found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		h.collector.RecordLoginFailure("invalid_credentials")
	default:
		h.collector.RecordLoginFailure("dependency")
	}
}
