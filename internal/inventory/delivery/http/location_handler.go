package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/internal/location"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// LocationStore maintains the storage locations stock may be held at.
type LocationStore interface {
	Save(ctx context.Context, loc *location.StorageLocation) error
	List(ctx context.Context) ([]location.StorageLocation, error)
}

// LocationHandler serves the storage location registry.
type LocationHandler struct {
	store LocationStore
}

func NewLocationHandler(store LocationStore) *LocationHandler {
	return &LocationHandler{store: store}
}

type saveLocationRequest struct {
	Code        string `json:"code" example:"WH-1"`
	Name        string `json:"name" example:"Main warehouse"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// SaveLocation handles POST /api/locations
// @Summary Create or update a storage location
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body saveLocationRequest true "Location"
// @Success 200 {object} Response{data=location.StorageLocation}
// @Failure 400 {object} Response
// @Router /api/locations [post]
func (h *LocationHandler) SaveLocation(w http.ResponseWriter, r *http.Request) {
	var req saveLocationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, r, domain.Validation("location name is required", map[string]string{"location": req.Code}))
		return
	}

	loc := &location.StorageLocation{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := h.store.Save(r.Context(), loc); err != nil {
		respondError(w, r, err)
		return
	}

	logger.Info(r.Context()).
		Str("location", loc.Code).
		Bool("active", loc.IsActive).
		Msg("Storage location saved")

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Location saved successfully",
		Data:    loc,
	})
}

// ListLocations handles GET /api/locations
// @Summary List active storage locations
// @Tags Locations
// @Produce json
// @Success 200 {object} Response{data=[]location.StorageLocation}
// @Router /api/locations [get]
func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := h.store.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: locs})
}

// RegisterRoutes registers the location routes
func (h *LocationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/locations", h.ListLocations).Methods("GET")
	router.HandleFunc("/api/locations", h.SaveLocation).Methods("POST")
}
