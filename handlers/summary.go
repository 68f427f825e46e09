package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"bahcem.in/hasat/config"
	"bahcem.in/hasat/pkg/harvest"
)

func summaryAggregator() *harvest.Aggregator {
	return harvest.NewAggregator(config.DB, harvest.NewTraderDirectory(config.DB))
}

func parseSummaryFilter(r *http.Request) (harvest.SummaryFilter, error) {
	var filter harvest.SummaryFilter
	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.Year = year
	}
	if v := q.Get("campusId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, err
		}
		filter.CampusID = &id
	}
	if v := q.Get("gardenId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, err
		}
		filter.GardenID = &id
	}
	filter.TraderNameContains = q.Get("trader")
	return filter, nil
}

// HarvestSummary returns the reconciliation report: one row per submitted
// entry matching the filters, plus grand totals.
func HarvestSummary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	filter, err := parseSummaryFilter(r)
	if err != nil {
		http.Error(w, "invalid filter: "+err.Error(), http.StatusBadRequest)
		return
	}
	summary, err := summaryAggregator().Summarize(tenantID, filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// SummaryTraderNames feeds the trader filter dropdown.
func SummaryTraderNames(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	names, err := summaryAggregator().TraderNames(tenantID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(names)
}
