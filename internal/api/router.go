package api

import (
	"delivery-schedule-service/internal/api/handlers"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// db may be nil, in which case /health does not ping storage.
func NewRouter(svc handlers.Scheduler, tokens TokenVerifier, db handlers.Pinger) http.Handler {
	mux := http.NewServeMux()

	health := &handlers.HealthHandler{DB: db}
	schedule := &handlers.ScheduleHandler{Svc: svc}

	mux.HandleFunc("GET /health", health.Health)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/me", handlers.Me)
	api.HandleFunc("POST /api/deliveries", schedule.CreateBooking)
	api.HandleFunc("GET /api/deliveries/week", schedule.Week)
	api.HandleFunc("GET /api/deliveries/day", schedule.Day)
	api.HandleFunc("POST /api/deliveries/{id}/complete", schedule.Complete)
	api.HandleFunc("DELETE /api/deliveries/{id}", schedule.Delete)
	api.HandleFunc("GET /api/customers", schedule.Customers)
	api.HandleFunc("GET /api/users", schedule.Users)

	mux.Handle("/api/", authMiddleware(tokens, api))

	return loggingMiddleware(mux)
}
