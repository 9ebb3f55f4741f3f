// internal/api/holidays/handlers.go
package holidays

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

const holidaysQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

type holidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// GET /api/v1/holidays
func HandleHolidaysList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), holidaysQueryTimeout)
	defer cancel()

	holidays, err := svc.ListHolidays(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to list holidays")
		return
	}
	if holidays == nil {
		holidays = []booking.Holiday{}
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, holidays); err != nil {
		logger.Error().Err(err).Msg("Failed to write holidays response")
	}
}

// POST /api/v1/holidays
func HandleHolidayCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req holidayRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	date, err := apiutil.ParseDateField(req.Date, "date", true)
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid date")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), holidaysQueryTimeout)
	defer cancel()

	holiday, err := svc.CreateHoliday(ctx, date, req.Name)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to create holiday", func(e *zerolog.Event) *zerolog.Event {
			return e.Str("date", date.String())
		})
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, holiday); err != nil {
		logger.Error().Err(err).Int64("holiday_id", holiday.ID).Msg("Failed to write holiday response")
	}
}

// DELETE /api/v1/holidays/{id}
func HandleHolidayDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	holidayID, err := apiutil.PathID(r, "holiday")
	if err != nil {
		http.Error(w, "Invalid holiday ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), holidaysQueryTimeout)
	defer cancel()

	if err := svc.DeleteHoliday(ctx, holidayID); err != nil {
		apiutil.WriteError(w, r, err, "Failed to delete holiday", func(e *zerolog.Event) *zerolog.Event {
			return e.Int64("holiday_id", holidayID)
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func loadService() *booking.Service {
	return service
}
