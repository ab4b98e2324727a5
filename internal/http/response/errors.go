package response

import (
	"encoding/json"
	"net/http"

	"github.com/servineo/backend/internal/domain"
	"github.com/servineo/backend/pkg/logger"
)

// ErrorResponse is the structured JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// WriteDomainError maps the error taxonomy onto HTTP statuses: validation
// 400, not-found 404, credential 401, conflict 409, dependency 500. Foreign
// errors render as a generic 500 with no internal detail.
func WriteDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindCredential:
		status = http.StatusUnauthorized
	case domain.KindConflict:
		status = http.StatusConflict
	}

	WriteError(w, status, domain.MessageOf(err), domain.CodeOf(err))
}
