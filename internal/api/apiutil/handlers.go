package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtMaster/internal/booking"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// ClassifyError maps err to a HandlerError. Domain errors become client
// errors carrying their own message; anything else is a 500 with fallback.
func ClassifyError(err error, fallback string) HandlerError {
	var (
		herr     HandlerError
		fieldErr FieldError
		conflict *booking.ConflictError
		holiday  *booking.HolidayBlockedError
		period   *booking.InvalidPeriodError
		validErr *booking.ValidationError
		notFound *booking.NotFoundError
	)
	switch {
	case errors.As(err, &herr):
		return herr
	case errors.As(err, &conflict):
		return HandlerError{Status: http.StatusConflict, Message: conflict.Error(), Err: err}
	case errors.Is(err, booking.ErrHolidayExists):
		return HandlerError{Status: http.StatusConflict, Message: err.Error(), Err: err}
	case errors.As(err, &holiday):
		return HandlerError{Status: http.StatusBadRequest, Message: holiday.Error(), Err: err}
	case errors.As(err, &period):
		return HandlerError{Status: http.StatusBadRequest, Message: period.Error(), Err: err}
	case errors.As(err, &validErr):
		return HandlerError{Status: http.StatusBadRequest, Message: validErr.Error(), Err: err}
	case errors.As(err, &fieldErr):
		return HandlerError{Status: http.StatusBadRequest, Message: fieldErr.Error(), Err: err}
	case errors.As(err, &notFound):
		return HandlerError{Status: http.StatusNotFound, Message: notFound.Error(), Err: err}
	case errors.Is(err, booking.ErrNotFound):
		return HandlerError{Status: http.StatusNotFound, Message: "Not found", Err: err}
	default:
		return HandlerError{Status: http.StatusInternalServerError, Message: fallback, Err: err}
	}
}

// WriteError writes err as a plain-text error response. Server errors are
// logged with the fields from annotate; client errors are not.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback string, annotate ...func(*zerolog.Event) *zerolog.Event) {
	herr := ClassifyError(err, fallback)
	if herr.Status >= http.StatusInternalServerError {
		event := log.Ctx(r.Context()).Error().Err(err)
		for _, fn := range annotate {
			event = fn(event)
		}
		event.Msg(herr.Message)
	}
	http.Error(w, herr.Message, herr.Status)
}
