// internal/api/reservations/handlers.go
package reservations

import (
	"context"
	"errors"
	"net/http"
	"strings"
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

const (
	reservationQueryTimeout = 5 * time.Second
	defaultListLimit        = 100
	maxListLimit            = 500
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

type reservationRequest struct {
	CustomerName string `json:"customer_name"`
	Contact      string `json:"contact"`
	CourtID      int64  `json:"court_id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       string `json:"status"`
	Category     string `json:"category"`
}

func (req reservationRequest) toNewReservation() (booking.NewReservation, error) {
	date, err := apiutil.ParseDateField(req.Date, "date", true)
	if err != nil {
		return booking.NewReservation{}, err
	}
	start, err := apiutil.ParseTimeField(req.StartTime, "start_time")
	if err != nil {
		return booking.NewReservation{}, err
	}
	end, err := apiutil.ParseTimeField(req.EndTime, "end_time")
	if err != nil {
		return booking.NewReservation{}, err
	}
	return booking.NewReservation{
		CustomerName: req.CustomerName,
		Contact:      req.Contact,
		CourtID:      req.CourtID,
		Date:         date,
		Window:       booking.Window{Start: start, End: end},
		Status:       booking.Status(strings.TrimSpace(req.Status)),
		Category:     booking.Category(strings.TrimSpace(req.Category)),
	}, nil
}

// POST /api/v1/reservations
func HandleReservationCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req reservationRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	input, err := req.toNewReservation()
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid reservation")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	created, err := svc.CreateReservation(ctx, input)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to create reservation", func(e *zerolog.Event) *zerolog.Event {
			return e.Int64("court_id", input.CourtID).Str("date", input.Date.String())
		})
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, created); err != nil {
		logger.Error().Err(err).Int64("reservation_id", created.ID).Msg("Failed to write reservation response")
	}
}

// GET /api/v1/reservations?date=&court_id=&search=&offset=&limit=
func HandleReservationsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	date, err := apiutil.ParseDateField(query.Get("date"), "date", false)
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid date")
		return
	}
	filter, err := parseFilter(r)
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid filter")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	records, err := svc.ListReservations(ctx, date, filter)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to list reservations")
		return
	}
	if records == nil {
		records = []booking.Reservation{}
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, records); err != nil {
		logger.Error().Err(err).Msg("Failed to write reservation list response")
	}
}

func parseFilter(r *http.Request) (booking.ReservationFilter, error) {
	query := r.URL.Query()
	filter := booking.ReservationFilter{Search: strings.TrimSpace(query.Get("search"))}

	if raw := strings.TrimSpace(query.Get("court_id")); raw != "" {
		courtID, err := apiutil.ParsePositiveInt64Field(raw, "court_id")
		if err != nil {
			return filter, err
		}
		filter.CourtID = courtID
	}

	offset, err := apiutil.OptionalIntQuery(r, "offset", 0)
	if err != nil {
		return filter, err
	}
	if offset < 0 {
		return filter, apiutil.FieldError{Field: "offset", Reason: "must be 0 or greater"}
	}
	limit, err := apiutil.OptionalIntQuery(r, "limit", defaultListLimit)
	if err != nil {
		return filter, err
	}
	if limit <= 0 || limit > maxListLimit {
		return filter, apiutil.FieldError{Field: "limit", Reason: "must be between 1 and 500"}
	}
	filter.Offset = offset
	filter.Limit = limit
	return filter, nil
}

type availabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// GET /api/v1/reservations/availability?court_id=&date=&start_time=&end_time=
func HandleAvailability(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	courtID, err := apiutil.ParsePositiveInt64Field(query.Get("court_id"), "court_id")
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid court")
		return
	}
	req := reservationRequest{
		CourtID:   courtID,
		Date:      query.Get("date"),
		StartTime: query.Get("start_time"),
		EndTime:   query.Get("end_time"),
	}
	input, err := req.toNewReservation()
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid window")
		return
	}
	if input.Window.Start >= input.Window.End {
		http.Error(w, "end_time must be after start_time", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	resp := availabilityResponse{Available: true}
	err = svc.CheckAvailability(ctx, courtID, input.Date, input.Window)
	var (
		conflict *booking.ConflictError
		holiday  *booking.HolidayBlockedError
	)
	switch {
	case err == nil:
	case errors.As(err, &conflict), errors.As(err, &holiday):
		resp = availabilityResponse{Available: false, Reason: err.Error()}
	default:
		apiutil.WriteError(w, r, err, "Failed to check availability", func(e *zerolog.Event) *zerolog.Event {
			return e.Int64("court_id", courtID)
		})
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to write availability response")
	}
}

// GET /api/v1/reservations/{id}
func HandleReservationGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	reservationID, err := apiutil.PathID(r, "reservation")
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	reservation, err := svc.GetReservation(ctx, reservationID)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load reservation", func(e *zerolog.Event) *zerolog.Event {
			return e.Int64("reservation_id", reservationID)
		})
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, reservation); err != nil {
		logger.Error().Err(err).Int64("reservation_id", reservationID).Msg("Failed to write reservation response")
	}
}

// POST /api/v1/reservations/{id}/cancel
func HandleReservationCancel(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	reservationID, err := apiutil.PathID(r, "reservation")
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	updated, err := svc.CancelReservation(ctx, reservationID)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to cancel reservation", func(e *zerolog.Event) *zerolog.Event {
			return e.Int64("reservation_id", reservationID)
		})
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("reservation_id", reservationID).Msg("Failed to write reservation response")
	}
}

// DELETE /api/v1/reservations/{id}
func HandleReservationDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	reservationID, err := apiutil.PathID(r, "reservation")
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	if _, err := svc.DeleteReservation(ctx, reservationID); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			http.Error(w, "Reservation not found", http.StatusNotFound)
			return
		}
		apiutil.WriteError(w, r, err, "Failed to delete reservation", func(e *zerolog.Event) *zerolog.Event {
			return e.Int64("reservation_id", reservationID)
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/reservations/bulk-delete
func HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var spec booking.PeriodSpec
	if err := apiutil.DecodeJSON(r, &spec); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	result, err := svc.BulkDelete(ctx, spec)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to delete reservations", func(e *zerolog.Event) *zerolog.Event {
			return e.Str("period", string(spec.Kind)).Int("year", spec.Year)
		})
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, result); err != nil {
		logger.Error().Err(err).Str("period", string(spec.Kind)).Msg("Failed to write bulk delete response")
	}
}

// GET /api/v1/reservations/years
func HandleReservationYears(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	years, err := svc.AvailableYears(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to list reservation years")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string][]int{"years": years}); err != nil {
		logger.Error().Err(err).Msg("Failed to write years response")
	}
}

func loadService() *booking.Service {
	return service
}
