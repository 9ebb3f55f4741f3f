package apiutil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/codr1/CourtMaster/internal/booking"
)

func ParseNonNegativeInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, FieldError{Field: field, Reason: "is required"}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return 0, FieldError{Field: field, Reason: "must be 0 or greater"}
	}
	return value, nil
}

func ParsePositiveInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, FieldError{Field: field, Reason: "is required"}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, FieldError{Field: field, Reason: "must be greater than 0"}
	}
	return value, nil
}

// OptionalIntQuery reads an integer query parameter, returning fallback when
// it is absent.
func OptionalIntQuery(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, FieldError{Field: key, Reason: "must be an integer"}
	}
	return value, nil
}

// PathID parses the positive {id} path segment.
func PathID(r *http.Request, entity string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, FieldError{Field: "id", Reason: fmt.Sprintf("must be a valid %s ID", entity)}
	}
	return id, nil
}

// ParseDateField parses a YYYY-MM-DD value. Empty input is an error only when
// required is set.
func ParseDateField(raw, field string, required bool) (booking.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return booking.Date{}, FieldError{Field: field, Reason: "is required"}
		}
		return booking.Date{}, nil
	}
	date, err := booking.ParseDate(raw)
	if err != nil {
		return booking.Date{}, FieldError{Field: field, Reason: "must be a date formatted YYYY-MM-DD"}
	}
	return date, nil
}

func ParseTimeField(raw, field string) (booking.TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, FieldError{Field: field, Reason: "is required"}
	}
	t, err := booking.ParseTimeOfDay(raw)
	if err != nil {
		return 0, FieldError{Field: field, Reason: "must be a time formatted HH:MM"}
	}
	return t, nil
}
