package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"bahcem.in/hasat/config"
	"bahcem.in/hasat/models"
)

type campusReq struct {
	Name        string `json:"name"`
	City        string `json:"city"`
	Description string `json:"description"`
}

func CreateCampus(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var req campusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	campus := models.Campus{TenantID: tenantID, Name: req.Name, City: req.City, Description: req.Description, IsActive: true}
	if err := config.DB.Create(&campus).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(campus)
}

func ListCampuses(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var campuses []models.Campus
	if err := config.DB.Where("tenant_id = ?", tenantID).Order("name ASC").Find(&campuses).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campuses)
}

func GetCampus(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var campus models.Campus
	if err := config.DB.Preload("Gardens").Where("id = ? AND tenant_id = ?", id, tenantID).First(&campus).Error; err != nil {
		http.Error(w, "campus not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campus)
}

func UpdateCampus(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var campus models.Campus
	if err := config.DB.Where("id = ? AND tenant_id = ?", id, tenantID).First(&campus).Error; err != nil {
		http.Error(w, "campus not found", http.StatusNotFound)
		return
	}
	var req campusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name != "" {
		campus.Name = req.Name
	}
	campus.City = req.City
	campus.Description = req.Description
	if err := config.DB.Save(&campus).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campus)
}
