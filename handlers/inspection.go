package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lib/pq"

	"bahcem.in/hasat/config"
	"bahcem.in/hasat/middleware"
	"bahcem.in/hasat/models"
)

type inspectionReq struct {
	GardenID  uuid.UUID       `json:"gardenId"`
	VisitedAt models.JSONTime `json:"visitedAt"`
	Note      string          `json:"note"`
	PhotoURLs []string        `json:"photoUrls"`
}

func CreateInspection(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var req inspectionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	var garden models.Garden
	if err := config.DB.Where("id = ? AND tenant_id = ?", req.GardenID, tenantID).First(&garden).Error; err != nil {
		http.Error(w, "garden not found", http.StatusNotFound)
		return
	}

	claims := middleware.GetClaims(r)
	inspection := models.Inspection{
		TenantID:      tenantID,
		GardenID:      garden.ID,
		VisitedAt:     req.VisitedAt,
		InspectorName: claims.Name,
		Note:          req.Note,
		PhotoURLs:     pq.StringArray(req.PhotoURLs),
	}
	if err := config.DB.Create(&inspection).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(inspection)
}

func ListInspections(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	q := config.DB.Where("tenant_id = ?", tenantID)
	if v := r.URL.Query().Get("gardenId"); v != "" {
		gardenID, err := uuid.Parse(v)
		if err != nil {
			http.Error(w, "gardenId must be a UUID", http.StatusBadRequest)
			return
		}
		q = q.Where("garden_id = ?", gardenID)
	}
	var inspections []models.Inspection
	if err := q.Order("visited_at DESC").Limit(100).Find(&inspections).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(inspections)
}

func GetInspection(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var inspection models.Inspection
	if err := config.DB.Preload("Garden").Where("id = ? AND tenant_id = ?", id, tenantID).First(&inspection).Error; err != nil {
		http.Error(w, "inspection not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(inspection)
}

func DeleteInspection(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	res := config.DB.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Inspection{})
	if res.Error != nil {
		http.Error(w, res.Error.Error(), http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "inspection not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
}
