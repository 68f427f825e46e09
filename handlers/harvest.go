package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"bahcem.in/hasat/config"
	"bahcem.in/hasat/middleware"
	"bahcem.in/hasat/models"
	"bahcem.in/hasat/pkg/harvest"
)

func harvestLifecycle() *harvest.Lifecycle {
	traders := harvest.NewTraderDirectory(config.DB)
	return harvest.NewLifecycle(config.DB, traders, harvest.NewSequencer(), NewNotificationService(), nil)
}

// writeHarvestError maps the lifecycle error taxonomy onto HTTP statuses.
// ValidationFailed ships the full violation list so a form can highlight
// every offending field in one round trip.
func writeHarvestError(w http.ResponseWriter, err error) {
	var ve *harvest.ValidationError
	switch {
	case errors.As(err, &ve):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":      "validation failed",
			"violations": ve.Violations,
		})
	case errors.Is(err, harvest.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, harvest.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, harvest.ErrInvalidState):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func tenantFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	tenantID := middleware.GetTenantID(r)
	if tenantID == uuid.Nil {
		http.Error(w, "tenant context not found", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return tenantID, true
}

func CreateHarvestEntry(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var in harvest.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	entry, err := harvestLifecycle().Create(tenantID, in)
	if err != nil {
		writeHarvestError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

func ListHarvestEntries(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var filter harvest.ListFilter
	q := r.URL.Query()
	if v := q.Get("dateFrom"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "dateFrom must be formatted YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.DateFrom = &t
	}
	if v := q.Get("dateTo"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "dateTo must be formatted YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.DateTo = &t
	}
	if v := q.Get("status"); v != "" {
		s := models.HarvestStatus(v)
		if s != models.HarvestDraft && s != models.HarvestSubmitted {
			http.Error(w, "status must be draft or submitted", http.StatusBadRequest)
			return
		}
		filter.Status = &s
	}
	if v := q.Get("gardenId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			http.Error(w, "gardenId must be a UUID", http.StatusBadRequest)
			return
		}
		filter.GardenID = &id
	}

	entries, err := harvestLifecycle().List(tenantID, filter)
	if err != nil {
		writeHarvestError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func GetHarvestEntry(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	entry, err := harvestLifecycle().Get(tenantID, id)
	if err != nil {
		writeHarvestError(w, err)
		return
	}
	// Ship the derived metrics alongside, the mobile app renders them on
	// the detail screen.
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"entry":   entry,
		"metrics": harvest.ComputeMetrics(entry),
	})
}

func UpdateHarvestEntry(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var patch harvest.EntryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	entry, err := harvestLifecycle().Update(tenantID, id, patch)
	if err != nil {
		writeHarvestError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

func SubmitHarvestEntry(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	entry, err := harvestLifecycle().Submit(tenantID, id)
	if err != nil {
		writeHarvestError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

func DeleteHarvestEntry(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := harvestLifecycle().Delete(tenantID, id); err != nil {
		writeHarvestError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
}
