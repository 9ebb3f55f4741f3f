package booking

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrHolidayExists = errors.New("holiday already exists for date")
)

// ConflictError reports that a candidate window overlaps an existing reservation.
type ConflictError struct {
	ReservationID int64
	Window        Window
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot already booked: reservation %d holds %s", e.ReservationID, e.Window)
}

// HolidayBlockedError reports an attempt to book on a closed day.
type HolidayBlockedError struct {
	Date Date
}

func (e *HolidayBlockedError) Error() string {
	return fmt.Sprintf("cannot book on a holiday: %s", e.Date)
}

// InvalidPeriodError reports a malformed or incomplete period selector.
type InvalidPeriodError struct {
	Field  string
	Reason string
}

func (e *InvalidPeriodError) Error() string {
	if e.Field == "" {
		return "invalid period: " + e.Reason
	}
	return fmt.Sprintf("invalid period: %s %s", e.Field, e.Reason)
}

// NotFoundError names the missing entity. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
