package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"bahcem.in/hasat/config"
	"bahcem.in/hasat/models"
	"bahcem.in/hasat/utils"
)

// SetGardenBoundary imports a GeoJSON plot boundary for a garden and stores
// its measured area.
func SetGardenBoundary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var garden models.Garden
	if err := config.DB.Where("id = ? AND tenant_id = ?", id, tenantID).First(&garden).Error; err != nil {
		http.Error(w, "garden not found", http.StatusNotFound)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	polygon, err := utils.ParseBoundary(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	boundary := string(raw)
	area := utils.AreaDecares(polygon)
	garden.Boundary = &boundary
	garden.AreaDecares = &area
	if err := config.DB.Save(&garden).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(garden)
}

// CheckGardenBoundary answers whether a coordinate falls inside the plot,
// used to verify a weighing location against the garden it claims.
func CheckGardenBoundary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var garden models.Garden
	if err := config.DB.Where("id = ? AND tenant_id = ?", id, tenantID).First(&garden).Error; err != nil {
		http.Error(w, "garden not found", http.StatusNotFound)
		return
	}
	if garden.Boundary == nil {
		http.Error(w, "garden has no boundary", http.StatusNotFound)
		return
	}

	var req struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	polygon, err := utils.ParseBoundary([]byte(*garden.Boundary))
	if err != nil {
		http.Error(w, "stored boundary is corrupt", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{
		"inside": utils.BoundaryContains(polygon, req.Lat, req.Lng),
	})
}
