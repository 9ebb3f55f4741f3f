// Package sqlstore persists the booking domain in SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/sync/singleflight"

	"github.com/codr1/CourtMaster/internal/booking"
	"github.com/codr1/CourtMaster/internal/db"
)

var _ booking.Store = (*Store)(nil)

// pricingLoadTimeout bounds the shared pricing read, which outlives any single
// caller's cancellation.
const pricingLoadTimeout = 5 * time.Second

type Store struct {
	db       *db.DB
	defaults booking.PricingConfig
	pricing  singleflight.Group
}

type Option func(*Store)

// WithDefaultPricing sets the pricing row written when none exists yet.
func WithDefaultPricing(cfg booking.PricingConfig) Option {
	return func(s *Store) {
		s.defaults = cfg
	}
}

func New(database *db.DB, opts ...Option) *Store {
	s := &Store{db: database, defaults: booking.DefaultPricing()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) InsertReservation(ctx context.Context, n booking.NewReservation, guard func([]booking.Reservation) error) (booking.Reservation, error) {
	var created booking.Reservation
	err := s.db.RunInTx(ctx, func(tx *db.DB) error {
		rows, err := tx.Queries.ListReservationsByCourtAndDate(ctx, db.ListReservationsByCourtAndDateParams{
			CourtID: n.CourtID,
			Date:    n.Date.String(),
		})
		if err != nil {
			return fmt.Errorf("load reservations: %w", err)
		}
		existing, err := toReservations(rows)
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(existing); err != nil {
				return err
			}
		}

		row, err := tx.Queries.CreateReservation(ctx, db.CreateReservationParams{
			CustomerName: n.CustomerName,
			Contact:      n.Contact,
			CourtID:      n.CourtID,
			Date:         n.Date.String(),
			StartTime:    n.Window.Start.String(),
			EndTime:      n.Window.End.String(),
			Status:       string(n.Status),
			Category:     string(n.Category),
		})
		if err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		created, err = toReservation(row)
		return err
	})
	if err != nil {
		return booking.Reservation{}, err
	}
	return created, nil
}

func (s *Store) ListReservationsByCourtAndDate(ctx context.Context, courtID int64, date booking.Date) ([]booking.Reservation, error) {
	rows, err := s.db.Queries.ListReservationsByCourtAndDate(ctx, db.ListReservationsByCourtAndDateParams{
		CourtID: courtID,
		Date:    date.String(),
	})
	if err != nil {
		return nil, err
	}
	return toReservations(rows)
}

func (s *Store) ListReservationsInRange(ctx context.Context, span booking.DateRange, filter booking.ReservationFilter) ([]booking.Reservation, error) {
	limit := int64(filter.Limit)
	if limit <= 0 {
		limit = -1
	}
	offset := int64(filter.Offset)
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.Queries.ListReservations(ctx, db.ListReservationsParams{
		StartDate: span.Start.String(),
		EndDate:   span.End.String(),
		CourtID:   filter.CourtID,
		Search:    likePattern(filter.Search),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}
	return toReservations(rows)
}

func (s *Store) GetReservation(ctx context.Context, id int64) (booking.Reservation, error) {
	row, err := s.db.Queries.GetReservation(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Reservation{}, &booking.NotFoundError{Entity: "reservation", ID: id}
	}
	if err != nil {
		return booking.Reservation{}, err
	}
	return toReservation(row)
}

func (s *Store) UpdateReservationStatus(ctx context.Context, id int64, status booking.Status) (booking.Reservation, error) {
	row, err := s.db.Queries.UpdateReservationStatus(ctx, db.UpdateReservationStatusParams{
		Status: string(status),
		ID:     id,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Reservation{}, &booking.NotFoundError{Entity: "reservation", ID: id}
	}
	if err != nil {
		return booking.Reservation{}, err
	}
	return toReservation(row)
}

func (s *Store) DeleteReservation(ctx context.Context, id int64) (booking.Reservation, error) {
	row, err := s.db.Queries.DeleteReservation(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Reservation{}, &booking.NotFoundError{Entity: "reservation", ID: id}
	}
	if err != nil {
		return booking.Reservation{}, err
	}
	return toReservation(row)
}

func (s *Store) DeleteReservationsInRange(ctx context.Context, span booking.DateRange) (int64, error) {
	return s.db.Queries.DeleteReservationsInRange(ctx, db.DeleteReservationsInRangeParams{
		StartDate: span.Start.String(),
		EndDate:   span.End.String(),
	})
}

func (s *Store) DistinctYears(ctx context.Context) ([]int, error) {
	rows, err := s.db.Queries.ListReservationYears(ctx)
	if err != nil {
		return nil, err
	}
	years := make([]int, 0, len(rows))
	for _, y := range rows {
		years = append(years, int(y))
	}
	return years, nil
}

func (s *Store) ListCourts(ctx context.Context) ([]booking.Court, error) {
	rows, err := s.db.Queries.ListCourts(ctx)
	if err != nil {
		return nil, err
	}
	courts := make([]booking.Court, 0, len(rows))
	for _, row := range rows {
		courts = append(courts, booking.Court(row))
	}
	return courts, nil
}

func (s *Store) GetCourt(ctx context.Context, id int64) (booking.Court, error) {
	row, err := s.db.Queries.GetCourt(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Court{}, &booking.NotFoundError{Entity: "court", ID: id}
	}
	if err != nil {
		return booking.Court{}, err
	}
	return booking.Court(row), nil
}

func (s *Store) CreateCourt(ctx context.Context, name string, active bool) (booking.Court, error) {
	row, err := s.db.Queries.CreateCourt(ctx, db.CreateCourtParams{Name: name, Active: active})
	if err != nil {
		return booking.Court{}, err
	}
	return booking.Court(row), nil
}

func (s *Store) UpdateCourt(ctx context.Context, court booking.Court) (booking.Court, error) {
	row, err := s.db.Queries.UpdateCourt(ctx, db.UpdateCourtParams{
		Name:   court.Name,
		Active: court.Active,
		ID:     court.ID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Court{}, &booking.NotFoundError{Entity: "court", ID: court.ID}
	}
	if err != nil {
		return booking.Court{}, err
	}
	return booking.Court(row), nil
}

func (s *Store) DeleteCourt(ctx context.Context, id int64) error {
	affected, err := s.db.Queries.DeleteCourt(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return &booking.NotFoundError{Entity: "court", ID: id}
	}
	return nil
}

func (s *Store) IsHoliday(ctx context.Context, date booking.Date) (bool, error) {
	return s.db.Queries.HolidayExists(ctx, date.String())
}

func (s *Store) ListHolidays(ctx context.Context) ([]booking.Holiday, error) {
	rows, err := s.db.Queries.ListHolidays(ctx)
	if err != nil {
		return nil, err
	}
	holidays := make([]booking.Holiday, 0, len(rows))
	for _, row := range rows {
		h, err := toHoliday(row)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}

func (s *Store) CreateHoliday(ctx context.Context, date booking.Date, name string) (booking.Holiday, error) {
	row, err := s.db.Queries.CreateHoliday(ctx, db.CreateHolidayParams{Date: date.String(), Name: name})
	if isUniqueViolation(err) {
		return booking.Holiday{}, fmt.Errorf("%w: %s", booking.ErrHolidayExists, date)
	}
	if err != nil {
		return booking.Holiday{}, err
	}
	return toHoliday(row)
}

func (s *Store) DeleteHoliday(ctx context.Context, id int64) error {
	affected, err := s.db.Queries.DeleteHoliday(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return &booking.NotFoundError{Entity: "holiday", ID: id}
	}
	return nil
}

// CurrentPricing returns the pricing singleton, writing the defaults the
// first time it is read. Concurrent first reads share one materialisation,
// so it runs detached from the caller that happened to start it.
func (s *Store) CurrentPricing(ctx context.Context) (booking.PricingConfig, error) {
	v, err, _ := s.pricing.Do("pricing", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pricingLoadTimeout)
		defer cancel()

		row, err := s.db.Queries.GetSettings(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			if err := s.db.Queries.InsertDefaultSettings(ctx, fromPricing(s.defaults)); err != nil {
				return nil, fmt.Errorf("insert default pricing: %w", err)
			}
			row, err = s.db.Queries.GetSettings(ctx)
		}
		if err != nil {
			return nil, err
		}
		return toPricing(row)
	})
	if err != nil {
		return booking.PricingConfig{}, err
	}
	return v.(booking.PricingConfig), nil
}

func (s *Store) SavePricing(ctx context.Context, cfg booking.PricingConfig) (booking.PricingConfig, error) {
	row, err := s.db.Queries.UpsertSettings(ctx, fromPricing(cfg))
	if err != nil {
		return booking.PricingConfig{}, err
	}
	return toPricing(row)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// likePattern lower-cases term and wraps it for a substring LIKE match with
// '\' as the escape character.
func likePattern(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return ""
	}
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + escaper.Replace(term) + "%"
}
