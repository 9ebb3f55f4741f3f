package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ReservationStore persists reservations. InsertReservation must run guard
// against the court/date's existing reservations and insert the new record
// as one atomic unit; a guard error aborts the insert and is returned as is.
type ReservationStore interface {
	InsertReservation(ctx context.Context, n NewReservation, guard func(existing []Reservation) error) (Reservation, error)
	ListReservationsByCourtAndDate(ctx context.Context, courtID int64, date Date) ([]Reservation, error)
	ListReservationsInRange(ctx context.Context, span DateRange, filter ReservationFilter) ([]Reservation, error)
	GetReservation(ctx context.Context, id int64) (Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int64, status Status) (Reservation, error)
	DeleteReservation(ctx context.Context, id int64) (Reservation, error)
	DeleteReservationsInRange(ctx context.Context, span DateRange) (int64, error)
	DistinctYears(ctx context.Context) ([]int, error)
}

type CourtStore interface {
	ListCourts(ctx context.Context) ([]Court, error)
	GetCourt(ctx context.Context, id int64) (Court, error)
	CreateCourt(ctx context.Context, name string, active bool) (Court, error)
	UpdateCourt(ctx context.Context, court Court) (Court, error)
	DeleteCourt(ctx context.Context, id int64) error
}

type HolidayStore interface {
	HolidayChecker
	ListHolidays(ctx context.Context) ([]Holiday, error)
	CreateHoliday(ctx context.Context, date Date, name string) (Holiday, error)
	DeleteHoliday(ctx context.Context, id int64) error
}

// Store is everything the Service needs from persistence.
type Store interface {
	ReservationStore
	CourtStore
	HolidayStore
	PricingSource
}

// Clock supplies the reference time for relative periods.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// ContactNormalizer canonicalises a customer contact, typically a phone number.
type ContactNormalizer interface {
	Normalize(raw string) (string, error)
}

type Service struct {
	store   Store
	locker  *SlotLocker
	clock   Clock
	loc     *time.Location
	contact ContactNormalizer
}

type Option func(*Service)

// WithClock overrides the wall clock used for "today".
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLocation sets the facility time zone used to decide the current date.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithContactNormalizer canonicalises non-empty contacts before they are stored.
func WithContactNormalizer(n ContactNormalizer) Option {
	return func(s *Service) {
		s.contact = n
	}
}

func NewService(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("booking service requires a store")
	}
	s := &Service{
		store:  store,
		locker: NewSlotLocker(),
		clock:  realClock{},
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Now returns the current time in the facility's location.
func (s *Service) Now() time.Time {
	return s.clock.Now().In(s.loc)
}

// Today returns the current calendar date at the facility.
func (s *Service) Today() Date {
	return DateOf(s.Now())
}

// CreateReservation validates n, rejects holidays and overlapping windows, and
// persists it. Validation and insert hold the (court, date) slot lock.
func (s *Service) CreateReservation(ctx context.Context, n NewReservation) (Reservation, error) {
	if err := n.Validate(); err != nil {
		return Reservation{}, err
	}
	// Contact is free text; only numbers that parse are rewritten.
	if n.Contact != "" && s.contact != nil {
		if normalized, err := s.contact.Normalize(n.Contact); err == nil {
			n.Contact = normalized
		}
	}
	if err := CheckHoliday(ctx, s.store, n.Date); err != nil {
		return Reservation{}, err
	}

	unlock := s.locker.Lock(n.CourtID, n.Date)
	defer unlock()

	created, err := s.store.InsertReservation(ctx, n, OverlapGuard(n))
	if err != nil {
		return Reservation{}, err
	}

	log.Ctx(ctx).Info().
		Int64("reservation_id", created.ID).
		Int64("court_id", created.CourtID).
		Str("date", created.Date.String()).
		Str("window", created.Window.String()).
		Msg("Reservation created")
	return created, nil
}

// CheckAvailability reports whether window is free on the court and date,
// returning HolidayBlockedError or ConflictError when it is not.
func (s *Service) CheckAvailability(ctx context.Context, courtID int64, date Date, window Window) error {
	if err := CheckHoliday(ctx, s.store, date); err != nil {
		return err
	}
	return ValidateNoOverlap(ctx, s.store, courtID, date, window)
}

// ListReservations returns reservations on date (any date when zero) that
// match filter, ordered by date and start time.
func (s *Service) ListReservations(ctx context.Context, date Date, filter ReservationFilter) ([]Reservation, error) {
	span := DateRange{Start: date, End: date}
	filter.Search = strings.TrimSpace(filter.Search)
	records, err := s.store.ListReservationsInRange(ctx, span, filter)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return records, nil
}

// CancelReservation marks a reservation cancelled, releasing its window.
func (s *Service) CancelReservation(ctx context.Context, id int64) (Reservation, error) {
	updated, err := s.store.UpdateReservationStatus(ctx, id, StatusCancelled)
	if err != nil {
		return Reservation{}, err
	}
	log.Ctx(ctx).Info().Int64("reservation_id", id).Msg("Reservation cancelled")
	return updated, nil
}

// GetReservation returns one reservation. A missing id yields an error
// matching ErrNotFound.
func (s *Service) GetReservation(ctx context.Context, id int64) (Reservation, error) {
	return s.store.GetReservation(ctx, id)
}

// DeleteReservation removes a reservation and returns it. A missing id yields
// an error matching ErrNotFound.
func (s *Service) DeleteReservation(ctx context.Context, id int64) (Reservation, error) {
	deleted, err := s.store.DeleteReservation(ctx, id)
	if err != nil {
		return Reservation{}, err
	}
	log.Ctx(ctx).Info().Int64("reservation_id", id).Msg("Reservation deleted")
	return deleted, nil
}

type PurgeResult struct {
	Period PeriodSpec `json:"period"`
	Range  DateRange  `json:"range"`
	Count  int64      `json:"count"`
}

// BulkDelete removes every reservation dated within the resolved period,
// across all courts, statuses and categories.
func (s *Service) BulkDelete(ctx context.Context, spec PeriodSpec) (PurgeResult, error) {
	span, err := ResolvePeriod(spec)
	if err != nil {
		return PurgeResult{}, err
	}
	count, err := s.store.DeleteReservationsInRange(ctx, span)
	if err != nil {
		return PurgeResult{}, fmt.Errorf("bulk delete %s: %w", span, err)
	}

	log.Ctx(ctx).Info().
		Str("period", string(spec.Kind)).
		Str("range", span.String()).
		Int64("deleted", count).
		Msg("Reservations purged")
	return PurgeResult{Period: spec, Range: span, Count: count}, nil
}

// AvailableYears lists the distinct years that have reservations, ascending.
func (s *Service) AvailableYears(ctx context.Context) ([]int, error) {
	years, err := s.store.DistinctYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservation years: %w", err)
	}
	if years == nil {
		years = []int{}
	}
	return years, nil
}

// DashboardStats computes booking volume, revenue and active customers from
// the selector's start through today.
func (s *Service) DashboardStats(ctx context.Context, selector string) (Stats, error) {
	span := ResolveSince(selector, s.Now())
	records, err := s.store.ListReservationsInRange(ctx, span, ReservationFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("load reservations for stats: %w", err)
	}
	pricing, err := s.store.CurrentPricing(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load pricing: %w", err)
	}
	return ComputeStats(records, pricing.PricePerHour), nil
}

type Charts struct {
	Daily  []DateCount   `json:"daily"`
	Status []StatusCount `json:"status"`
}

// DashboardCharts groups all stored reservations by date and by status.
func (s *Service) DashboardCharts(ctx context.Context) (Charts, error) {
	records, err := s.store.ListReservationsInRange(ctx, DateRange{}, ReservationFilter{})
	if err != nil {
		return Charts{}, fmt.Errorf("load reservations for charts: %w", err)
	}
	return Charts{
		Daily:  DailyCounts(records),
		Status: StatusDistribution(records),
	}, nil
}

// CapacityHeatmap counts reservations per court and day within span.
func (s *Service) CapacityHeatmap(ctx context.Context, span DateRange) ([]CapacityCell, error) {
	if span.Start.IsZero() || span.End.IsZero() {
		return nil, &ValidationError{Field: "start_date", Reason: "and end_date are required"}
	}
	if span.End.Before(span.Start) {
		return nil, &ValidationError{Field: "end_date", Reason: "must not be before start_date"}
	}
	records, err := s.store.ListReservationsInRange(ctx, span, ReservationFilter{})
	if err != nil {
		return nil, fmt.Errorf("load reservations for capacity: %w", err)
	}
	return CapacityHeatmap(records, span), nil
}

// MonthCalendar counts reservations per day of year/month.
func (s *Service) MonthCalendar(ctx context.Context, year, month int) ([]DateCount, error) {
	if year < minPeriodYear || year > maxPeriodYear {
		return nil, &InvalidPeriodError{Field: "year", Reason: "is out of range"}
	}
	if month < 1 || month > 12 {
		return nil, &InvalidPeriodError{Field: "month", Reason: "must be between 1 and 12"}
	}
	span := MonthRange(year, time.Month(month))
	records, err := s.store.ListReservationsInRange(ctx, span, ReservationFilter{})
	if err != nil {
		return nil, fmt.Errorf("load reservations for calendar: %w", err)
	}
	return MonthCalendar(records, year, time.Month(month)), nil
}

// DaySchedule builds the slot grid for date across active courts.
func (s *Service) DaySchedule(ctx context.Context, date Date) (DaySchedule, error) {
	if date.IsZero() {
		return DaySchedule{}, &ValidationError{Field: "date", Reason: "is required"}
	}
	holiday, err := s.store.IsHoliday(ctx, date)
	if err != nil {
		return DaySchedule{}, fmt.Errorf("check holiday %s: %w", date, err)
	}
	pricing, err := s.store.CurrentPricing(ctx)
	if err != nil {
		return DaySchedule{}, fmt.Errorf("load pricing: %w", err)
	}
	courts, err := s.store.ListCourts(ctx)
	if err != nil {
		return DaySchedule{}, fmt.Errorf("load courts: %w", err)
	}
	records, err := s.store.ListReservationsInRange(ctx, DateRange{Start: date, End: date}, ReservationFilter{})
	if err != nil {
		return DaySchedule{}, fmt.Errorf("load reservations for schedule: %w", err)
	}
	return BuildDaySchedule(date, holiday, pricing, courts, records), nil
}

func (s *Service) Pricing(ctx context.Context) (PricingConfig, error) {
	return s.store.CurrentPricing(ctx)
}

// SavePricing replaces the pricing singleton with cfg.
func (s *Service) SavePricing(ctx context.Context, cfg PricingConfig) (PricingConfig, error) {
	if err := cfg.Validate(); err != nil {
		return PricingConfig{}, err
	}
	saved, err := s.store.SavePricing(ctx, cfg)
	if err != nil {
		return PricingConfig{}, fmt.Errorf("save pricing: %w", err)
	}
	log.Ctx(ctx).Info().Int64("price_per_hour", saved.PricePerHour).Msg("Pricing updated")
	return saved, nil
}

func (s *Service) ListCourts(ctx context.Context) ([]Court, error) {
	return s.store.ListCourts(ctx)
}

func (s *Service) GetCourt(ctx context.Context, id int64) (Court, error) {
	return s.store.GetCourt(ctx, id)
}

func (s *Service) CreateCourt(ctx context.Context, name string, active bool) (Court, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Court{}, &ValidationError{Field: "name", Reason: "is required"}
	}
	return s.store.CreateCourt(ctx, name, active)
}

// UpdateCourt renames or (de)activates a court. Existing reservations on the
// court are left untouched.
func (s *Service) UpdateCourt(ctx context.Context, court Court) (Court, error) {
	court.Name = strings.TrimSpace(court.Name)
	if court.Name == "" {
		return Court{}, &ValidationError{Field: "name", Reason: "is required"}
	}
	return s.store.UpdateCourt(ctx, court)
}

func (s *Service) DeleteCourt(ctx context.Context, id int64) error {
	return s.store.DeleteCourt(ctx, id)
}

func (s *Service) ListHolidays(ctx context.Context) ([]Holiday, error) {
	return s.store.ListHolidays(ctx)
}

func (s *Service) CreateHoliday(ctx context.Context, date Date, name string) (Holiday, error) {
	if date.IsZero() {
		return Holiday{}, &ValidationError{Field: "date", Reason: "is required"}
	}
	return s.store.CreateHoliday(ctx, date, strings.TrimSpace(name))
}

func (s *Service) DeleteHoliday(ctx context.Context, id int64) error {
	return s.store.DeleteHoliday(ctx, id)
}
