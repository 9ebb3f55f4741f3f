// internal/api/dashboard/handlers.go
package dashboard

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtMaster/internal/api/apiutil"
	"github.com/codr1/CourtMaster/internal/api/htmx"
	"github.com/codr1/CourtMaster/internal/booking"
	"github.com/codr1/CourtMaster/internal/templates/components/calendar"
	dashboardtempl "github.com/codr1/CourtMaster/internal/templates/components/dashboard"
)

const (
	dashboardQueryTimeout = 5 * time.Second
	defaultStatsPeriod    = booking.SelectorOverall
)

var (
	service     *booking.Service
	serviceOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		log.Warn().Msg("InitHandlers called with nil service; dashboard handlers will be unavailable")
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

type statsResponse struct {
	Period string `json:"period"`
	booking.Stats
}

// HandleStats serves GET /api/v1/dashboard/stats?period=today|week|month|year|overall.
// htmx callers get the summary cards partial.
func HandleStats(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Unrecognized selectors cover all history, same as overall.
	period := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("period")))
	switch period {
	case booking.SelectorToday, booking.SelectorWeek, booking.SelectorMonth,
		booking.SelectorYear, booking.SelectorOverall:
	default:
		period = defaultStatsPeriod
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	stats, err := svc.DashboardStats(ctx, period)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load dashboard stats", func(e *zerolog.Event) *zerolog.Event {
			return e.Str("period", period)
		})
		return
	}

	if htmx.WantsHTML(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		component := dashboardtempl.StatsCards(dashboardtempl.NewStatsData(period, stats))
		if err := component.Render(r.Context(), w); err != nil {
			logger.Error().Err(err).Str("period", period).Msg("Failed to render dashboard stats")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, statsResponse{Period: period, Stats: stats}); err != nil {
		logger.Error().Err(err).Str("period", period).Msg("Failed to write dashboard stats response")
	}
}

// HandleCharts serves GET /api/v1/dashboard/charts.
func HandleCharts(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	charts, err := svc.DashboardCharts(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load dashboard charts")
		return
	}
	if charts.Daily == nil {
		charts.Daily = []booking.DateCount{}
	}
	if charts.Status == nil {
		charts.Status = []booking.StatusCount{}
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, charts); err != nil {
		logger.Error().Err(err).Msg("Failed to write dashboard charts response")
	}
}

// HandleCapacity serves GET /api/v1/reports/capacity?start_date=&end_date=.
func HandleCapacity(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	start, err := apiutil.ParseDateField(query.Get("start_date"), "start_date", true)
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid start_date")
		return
	}
	end, err := apiutil.ParseDateField(query.Get("end_date"), "end_date", true)
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid end_date")
		return
	}
	span := booking.DateRange{Start: start, End: end}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	cells, err := svc.CapacityHeatmap(ctx, span)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load capacity report", func(e *zerolog.Event) *zerolog.Event {
			return e.Str("range", span.String())
		})
		return
	}
	if cells == nil {
		cells = []booking.CapacityCell{}
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, cells); err != nil {
		logger.Error().Err(err).Str("range", span.String()).Msg("Failed to write capacity response")
	}
}

type calendarResponse struct {
	Year  int                 `json:"year"`
	Month int                 `json:"month"`
	Days  []booking.DateCount `json:"days"`
}

// HandleCalendar serves GET /api/v1/calendar?year=&month=. Browsers and htmx
// receive the month grid partial; everyone else gets JSON.
func HandleCalendar(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	today := svc.Today()
	year, err := apiutil.OptionalIntQuery(r, "year", today.Year())
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid year")
		return
	}
	month, err := apiutil.OptionalIntQuery(r, "month", int(today.Month()))
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid month")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	days, err := svc.MonthCalendar(ctx, year, month)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load calendar", func(e *zerolog.Event) *zerolog.Event {
			return e.Int("year", year).Int("month", month)
		})
		return
	}

	if htmx.WantsHTML(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		component := calendar.MonthGrid(calendar.NewMonthData(year, time.Month(month), days))
		if err := component.Render(r.Context(), w); err != nil {
			logger.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to render calendar")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	if days == nil {
		days = []booking.DateCount{}
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, calendarResponse{Year: year, Month: month, Days: days}); err != nil {
		logger.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to write calendar response")
	}
}

// HandleSchedule serves GET /api/v1/schedule?date=. Date defaults to today.
func HandleSchedule(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	date, err := apiutil.ParseDateField(r.URL.Query().Get("date"), "date", false)
	if err != nil {
		apiutil.WriteError(w, r, err, "Invalid date")
		return
	}
	if date.IsZero() {
		date = svc.Today()
	}

	ctx, cancel := context.WithTimeout(r.Context(), dashboardQueryTimeout)
	defer cancel()

	schedule, err := svc.DaySchedule(ctx, date)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load schedule", func(e *zerolog.Event) *zerolog.Event {
			return e.Str("date", date.String())
		})
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, schedule); err != nil {
		logger.Error().Err(err).Str("date", date.String()).Msg("Failed to write schedule response")
	}
}

func loadService() *booking.Service {
	return service
}
