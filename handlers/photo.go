package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"bahcem.in/hasat/models"
)

// AttachHarvestPhoto accepts a multipart upload ("file" field plus a
// "category" form value), stores the binary and records the photo against
// the draft. The entry must still be editable; submitted entries only gain
// photos through the admin revision flow, which lives outside this API.
func AttachHarvestPhoto(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	harvestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	category := models.PhotoCategory(r.FormValue("category"))
	if category == "" {
		category = models.PhotoGeneral
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := storeUpload(r.Context(), file, header)
	if err != nil {
		http.Error(w, "failed to store file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	photo, err := harvestLifecycle().AttachPhoto(tenantID, harvestID, category, url)
	if err != nil {
		writeHarvestError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(photo)
}

func DeleteHarvestPhoto(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	harvestID, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	photoID, err := uuid.Parse(vars["photoId"])
	if err != nil {
		http.Error(w, "invalid photo id", http.StatusBadRequest)
		return
	}
	if err := harvestLifecycle().DeletePhoto(tenantID, harvestID, photoID); err != nil {
		writeHarvestError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
}
