package handlers

import (
	"encoding/json"
	"net/http"

	"bahcem.in/hasat/config"
	"bahcem.in/hasat/pkg/harvest"
)

// SearchTraders is the autocomplete endpoint: up to 10 case-insensitive
// substring matches. An empty query returns an empty list, browsing happens
// through ListTraders.
func SearchTraders(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	traders, err := harvest.NewTraderDirectory(config.DB).Search(tenantID, r.URL.Query().Get("q"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(traders)
}

// ListTraders returns up to 200 traders alphabetically, for filter dropdowns.
func ListTraders(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	traders, err := harvest.NewTraderDirectory(config.DB).ListAll(tenantID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(traders)
}
