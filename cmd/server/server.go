// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/codr1/CourtMaster/internal/api"
	"github.com/codr1/CourtMaster/internal/api/courts"
	"github.com/codr1/CourtMaster/internal/api/dashboard"
	"github.com/codr1/CourtMaster/internal/api/holidays"
	"github.com/codr1/CourtMaster/internal/api/reservations"
	"github.com/codr1/CourtMaster/internal/api/settings"
	"github.com/codr1/CourtMaster/internal/config"
	"github.com/codr1/CourtMaster/internal/ratelimit"
)

func newServer(cfg *config.Config, limiter *ratelimit.Limiter) *http.Server {
	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      newHandler(cfg, limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func newHandler(cfg *config.Config, limiter *ratelimit.Limiter) http.Handler {
	router := http.NewServeMux()
	registerRoutes(router)

	// Outermost last: request IDs exist before CORS, throttling and logging run.
	return api.ChainMiddleware(
		router,
		api.WithContentType,
		api.WithRateLimit(limiter),
		api.WithLogging,
		api.WithRecovery,
		api.WithCORS(cfg.HTTP.AllowedOrigins),
		api.WithRequestID,
	)
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Reservation routes
	mux.HandleFunc("POST /api/v1/reservations", reservations.HandleReservationCreate)
	mux.HandleFunc("GET /api/v1/reservations", reservations.HandleReservationsList)
	mux.HandleFunc("GET /api/v1/reservations/availability", reservations.HandleAvailability)
	mux.HandleFunc("GET /api/v1/reservations/years", reservations.HandleReservationYears)
	mux.HandleFunc("POST /api/v1/reservations/bulk-delete", reservations.HandleBulkDelete)
	mux.HandleFunc("GET /api/v1/reservations/{id}", reservations.HandleReservationGet)
	mux.HandleFunc("POST /api/v1/reservations/{id}/cancel", reservations.HandleReservationCancel)
	mux.HandleFunc("DELETE /api/v1/reservations/{id}", reservations.HandleReservationDelete)

	// Dashboard and report routes
	mux.HandleFunc("GET /api/v1/dashboard/stats", dashboard.HandleStats)
	mux.HandleFunc("GET /api/v1/dashboard/charts", dashboard.HandleCharts)
	mux.HandleFunc("GET /api/v1/reports/capacity", dashboard.HandleCapacity)
	mux.HandleFunc("GET /api/v1/calendar", dashboard.HandleCalendar)
	mux.HandleFunc("GET /api/v1/schedule", dashboard.HandleSchedule)

	// Court routes
	mux.HandleFunc("GET /api/v1/courts", courts.HandleCourtsList)
	mux.HandleFunc("POST /api/v1/courts", courts.HandleCourtCreate)
	mux.HandleFunc("GET /api/v1/courts/{id}", courts.HandleCourtGet)
	mux.HandleFunc("PUT /api/v1/courts/{id}", courts.HandleCourtUpdate)
	mux.HandleFunc("DELETE /api/v1/courts/{id}", courts.HandleCourtDelete)

	// Holiday routes
	mux.HandleFunc("GET /api/v1/holidays", holidays.HandleHolidaysList)
	mux.HandleFunc("POST /api/v1/holidays", holidays.HandleHolidayCreate)
	mux.HandleFunc("DELETE /api/v1/holidays/{id}", holidays.HandleHolidayDelete)

	// Settings routes
	mux.HandleFunc("GET /api/v1/settings", settings.HandleSettingsGet)
	mux.HandleFunc("POST /api/v1/settings", settings.HandleSettingsSave)
}
