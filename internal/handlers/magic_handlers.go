package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/servineo/backend/internal/http/response"
)

// MagicLinkRequest emails a one-time access code and magic link.
func (h *Handlers) MagicLinkRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"correo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_INPUT")
		return
	}

	if err := h.magic.RequestAccess(r.Context(), req.Email); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Si la cuenta existe, enviamos un código de acceso",
	})
}

// MagicLinkVerify exchanges an emailed code or magic token for a session.
func (h *Handlers) MagicLinkVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"correo"`
		Code  string `json:"code"`
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_INPUT")
		return
	}

	var (
		resp any
		err  error
	)
	if req.Token != "" {
		resp, err = h.magic.VerifyMagic(r.Context(), req.Token)
	} else {
		resp, err = h.magic.VerifyCode(r.Context(), req.Email, req.Code)
	}
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, resp)
}
