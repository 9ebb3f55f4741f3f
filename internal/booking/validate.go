package booking

import (
	"context"
	"fmt"
)

// HolidayChecker reports whether a date is a closed day.
type HolidayChecker interface {
	IsHoliday(ctx context.Context, date Date) (bool, error)
}

// CheckHoliday fails with HolidayBlockedError when date is a holiday.
func CheckHoliday(ctx context.Context, holidays HolidayChecker, date Date) error {
	closed, err := holidays.IsHoliday(ctx, date)
	if err != nil {
		return fmt.Errorf("check holiday %s: %w", date, err)
	}
	if closed {
		return &HolidayBlockedError{Date: date}
	}
	return nil
}

// CheckOverlap returns a ConflictError for the first existing reservation whose
// window overlaps candidate. existing must already be restricted to the
// candidate's court and date. Cancelled reservations never conflict.
func CheckOverlap(candidate Window, existing []Reservation) error {
	for _, r := range existing {
		if r.Status.Cancelled() {
			continue
		}
		if candidate.Overlaps(r.Window) {
			return &ConflictError{ReservationID: r.ID, Window: r.Window}
		}
	}
	return nil
}

// OverlapGuard returns the guard passed to Store.InsertReservation for n.
// A cancelled candidate holds no slot and is never rejected.
func OverlapGuard(n NewReservation) func(existing []Reservation) error {
	return func(existing []Reservation) error {
		if n.Status.Cancelled() {
			return nil
		}
		return CheckOverlap(n.Window, existing)
	}
}

// ValidateNoOverlap queries the court's reservations on date and checks the
// candidate window against them. It has no side effects; callers that go on
// to insert must hold the slot serialized themselves.
func ValidateNoOverlap(ctx context.Context, store ReservationStore, courtID int64, date Date, candidate Window) error {
	existing, err := store.ListReservationsByCourtAndDate(ctx, courtID, date)
	if err != nil {
		return fmt.Errorf("load reservations for court %d on %s: %w", courtID, date, err)
	}
	return CheckOverlap(candidate, existing)
}
