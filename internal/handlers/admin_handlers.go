package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/servineo/backend/internal/domain"
	"github.com/servineo/backend/internal/http/response"
	"github.com/servineo/backend/internal/seed"
)

// LoadFixerSeed wipes and reloads the predefined fixer set.
func (h *Handlers) LoadFixerSeed(w http.ResponseWriter, r *http.Request) {
	result, err := seed.LoadFixers(r.Context(), h.fixerRepo)
	if err != nil {
		response.WriteDomainError(w, domain.DependencyError("failed to load fixers", err))
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context())
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  "Fixers cargados",
		"deleted":  result.Deleted,
		"inserted": result.Inserted,
	})
}

func (h *Handlers) LoadUbicacionSeed(w http.ResponseWriter, r *http.Request) {
	result, err := seed.LoadUbicaciones(r.Context(), h.fixerRepo)
	if err != nil {
		response.WriteDomainError(w, domain.DependencyError("failed to load ubicaciones", err))
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context())
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  "Ubicaciones cargadas",
		"deleted":  result.Deleted,
		"inserted": result.Inserted,
	})
}

// ListUsers returns redacted identities, paginated.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.userRepo.List(r.Context(), limit, offset)
	if err != nil {
		response.WriteDomainError(w, domain.DependencyError("failed to list users", err))
		return
	}

	infos := make([]*domain.UserInfo, len(users))
	for i := range users {
		infos[i] = users[i].ToUserInfo()
	}

	response.WriteJSON(w, http.StatusOK, infos)
}

// UpdateUserRole changes a user's role.
func (h *Handlers) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Role string `json:"rol"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !domain.IsValidRole(req.Role) {
		response.WriteError(w, http.StatusBadRequest, "invalid role", "INVALID_INPUT")
		return
	}

	if err := h.userRepo.UpdateRole(r.Context(), id, req.Role); err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			response.WriteDomainError(w, err)
			return
		}
		response.WriteDomainError(w, domain.DependencyError("failed to update role", err))
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Rol actualizado"})
}
