// internal/api/courts/handlers.go
package courts

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtMaster/internal/api/apiutil"
	"github.com/codr1/CourtMaster/internal/booking"
)

var (
	service     *booking.Service
	serviceOnce sync.Once
)

const courtsQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

type courtRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

func (req courtRequest) active() bool {
	if req.Active == nil {
		return true
	}
	return *req.Active
}

// GET /api/v1/courts
func HandleCourtsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	courts, err := svc.ListCourts(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to list courts")
		return
	}
	if courts == nil {
		courts = []booking.Court{}
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, courts); err != nil {
		logger.Error().Err(err).Msg("Failed to write courts response")
	}
}

// GET /api/v1/courts/{id}
func HandleCourtGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	courtID, err := apiutil.PathID(r, "court")
	if err != nil {
		http.Error(w, "Invalid court ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := svc.GetCourt(ctx, courtID)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load court", withCourtID(courtID))
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, court); err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to write court response")
	}
}

// POST /api/v1/courts
func HandleCourtCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req courtRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := svc.CreateCourt(ctx, req.Name, req.active())
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to create court")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, court); err != nil {
		logger.Error().Err(err).Int64("court_id", court.ID).Msg("Failed to write court response")
	}
}

// PUT /api/v1/courts/{id}
func HandleCourtUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	courtID, err := apiutil.PathID(r, "court")
	if err != nil {
		http.Error(w, "Invalid court ID", http.StatusBadRequest)
		return
	}

	var req courtRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := svc.UpdateCourt(ctx, booking.Court{ID: courtID, Name: req.Name, Active: req.active()})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to update court", withCourtID(courtID))
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, court); err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to write court response")
	}
}

// DELETE /api/v1/courts/{id}
func HandleCourtDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	courtID, err := apiutil.PathID(r, "court")
	if err != nil {
		http.Error(w, "Invalid court ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	if err := svc.DeleteCourt(ctx, courtID); err != nil {
		apiutil.WriteError(w, r, err, "Failed to delete court", withCourtID(courtID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func withCourtID(courtID int64) func(*zerolog.Event) *zerolog.Event {
	return func(e *zerolog.Event) *zerolog.Event {
		return e.Int64("court_id", courtID)
	}
}

func loadService() *booking.Service {
	return service
}
