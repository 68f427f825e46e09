package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"bahcem.in/hasat/config"
	"bahcem.in/hasat/models"
)

type gardenReq struct {
	CampusID uuid.UUID `json:"campusId"`
	Name     string    `json:"name"`
	Crop     string    `json:"crop"`
}

func CreateGarden(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var req gardenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	// The campus must belong to the same tenant.
	var campus models.Campus
	if err := config.DB.Where("id = ? AND tenant_id = ?", req.CampusID, tenantID).First(&campus).Error; err != nil {
		http.Error(w, "campus not found", http.StatusNotFound)
		return
	}
	garden := models.Garden{TenantID: tenantID, CampusID: campus.ID, Name: req.Name, Crop: req.Crop, IsActive: true}
	if err := config.DB.Create(&garden).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(garden)
}

func ListGardens(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	q := config.DB.Where("tenant_id = ?", tenantID)
	if v := r.URL.Query().Get("campusId"); v != "" {
		campusID, err := uuid.Parse(v)
		if err != nil {
			http.Error(w, "campusId must be a UUID", http.StatusBadRequest)
			return
		}
		q = q.Where("campus_id = ?", campusID)
	}
	var gardens []models.Garden
	if err := q.Order("name ASC").Find(&gardens).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gardens)
}

func GetGarden(w http.ResponseWriter, r *http.Request) {
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
	if err := config.DB.Preload("Campus").Where("id = ? AND tenant_id = ?", id, tenantID).First(&garden).Error; err != nil {
		http.Error(w, "garden not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(garden)
}
