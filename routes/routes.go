package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"bahcem.in/hasat/handlers"
	"bahcem.in/hasat/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.HandleFunc("/health", handleHealth).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)
	api.Use(middleware.SecurityMiddleware)

	api.HandleFunc("/profile", handlers.Profile).Methods("GET")

	// Harvest entry lifecycle
	api.HandleFunc("/harvests", handlers.CreateHarvestEntry).Methods("POST")
	api.HandleFunc("/harvests", handlers.ListHarvestEntries).Methods("GET")
	api.HandleFunc("/harvests/{id}", handlers.GetHarvestEntry).Methods("GET")
	api.HandleFunc("/harvests/{id}", handlers.UpdateHarvestEntry).Methods("PUT")
	api.HandleFunc("/harvests/{id}", handlers.DeleteHarvestEntry).Methods("DELETE")
	api.HandleFunc("/harvests/{id}/submit", handlers.SubmitHarvestEntry).Methods("POST")
	api.HandleFunc("/harvests/{id}/photos", handlers.AttachHarvestPhoto).Methods("POST")
	api.HandleFunc("/harvests/{id}/photos/{photoId}", handlers.DeleteHarvestPhoto).Methods("DELETE")

	// Traders
	api.HandleFunc("/traders/search", handlers.SearchTraders).Methods("GET")
	api.HandleFunc("/traders", handlers.ListTraders).Methods("GET")

	// Summary report
	api.HandleFunc("/summary", handlers.HarvestSummary).Methods("GET")
	api.HandleFunc("/summary/export", handlers.ExportHarvestSummary).Methods("GET")
	api.HandleFunc("/summary/traders", handlers.SummaryTraderNames).Methods("GET")

	// Campuses and gardens
	api.HandleFunc("/campuses", handlers.CreateCampus).Methods("POST")
	api.HandleFunc("/campuses", handlers.ListCampuses).Methods("GET")
	api.HandleFunc("/campuses/{id}", handlers.GetCampus).Methods("GET")
	api.HandleFunc("/campuses/{id}", handlers.UpdateCampus).Methods("PUT")
	api.HandleFunc("/gardens", handlers.CreateGarden).Methods("POST")
	api.HandleFunc("/gardens", handlers.ListGardens).Methods("GET")
	api.HandleFunc("/gardens/{id}", handlers.GetGarden).Methods("GET")
	api.HandleFunc("/gardens/{id}/boundary", handlers.SetGardenBoundary).Methods("PUT")
	api.HandleFunc("/gardens/{id}/boundary/check", handlers.CheckGardenBoundary).Methods("POST")

	// Inspections
	api.HandleFunc("/inspections", handlers.CreateInspection).Methods("POST")
	api.HandleFunc("/inspections", handlers.ListInspections).Methods("GET")
	api.HandleFunc("/inspections/{id}", handlers.GetInspection).Methods("GET")
	api.HandleFunc("/inspections/{id}", handlers.DeleteInspection).Methods("DELETE")

	// Notifications
	api.HandleFunc("/notifications", handlers.ListMyNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", handlers.MarkNotificationRead).Methods("POST")

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
