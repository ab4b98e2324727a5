package handlers

import (
	"net/http"
	"strconv"

	"github.com/servineo/backend/internal/domain"
	"github.com/servineo/backend/internal/http/response"
)

// NearbyFixers returns the fixers within radius km of the given point.
// Query params: lat, lng (required), radius (optional, km).
func (h *Handlers) NearbyFixers(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.parseReference(w, r)
	if !ok {
		return
	}
	radius := h.parseRadius(r, h.config.Geo.FixerRadiusKm)

	fixers, err := h.geo.NearbyFixers(r.Context(), ref, radius)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.collector.RecordProximityScan()
	response.WriteJSON(w, http.StatusOK, map[string]any{
		"data":         fixers,
		"count":        len(fixers),
		"userLocation": ref,
		"searchRadius": radius,
	})
}

func (h *Handlers) NearbyUbicaciones(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.parseReference(w, r)
	if !ok {
		return
	}
	radius := h.parseRadius(r, h.config.Geo.LocationRadiusKm)

	ubicaciones, err := h.geo.NearbyUbicaciones(r.Context(), ref, radius)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.collector.RecordProximityScan()
	response.WriteJSON(w, http.StatusOK, map[string]any{
		"data":         ubicaciones,
		"count":        len(ubicaciones),
		"userLocation": ref,
		"searchRadius": radius,
	})
}

// parseReference requires both lat and lng; a missing axis is a validation
// failure, never a silent default.
func (h *Handlers) parseReference(w http.ResponseWriter, r *http.Request) (domain.GeoPoint, bool) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr == "" || lngStr == "" {
		response.WriteDomainError(w, domain.ErrMissingCoordinates)
		return domain.GeoPoint{}, false
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	if latErr != nil || lngErr != nil {
		response.WriteDomainError(w, domain.ErrMissingCoordinates)
		return domain.GeoPoint{}, false
	}

	return domain.GeoPoint{Lat: lat, Lng: lng}, true
}

func (h *Handlers) parseRadius(r *http.Request, fallback float64) float64 {
	if s := r.URL.Query().Get("radius"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return fallback
}
