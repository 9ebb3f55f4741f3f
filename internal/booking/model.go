package booking

import "strings"

// Status is the stored status tag of a reservation. Tags are free-form; Kind
// classifies them case-insensitively.
type Status string

const (
	StatusBooked    Status = "booked"
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

type StatusKind int

const (
	StatusKindOther StatusKind = iota
	StatusKindBooked
	StatusKindConfirmed
	StatusKindPending
	StatusKindCancelled
)

func (s Status) Kind() StatusKind {
	switch strings.ToLower(strings.TrimSpace(string(s))) {
	case string(StatusBooked):
		return StatusKindBooked
	case string(StatusConfirmed):
		return StatusKindConfirmed
	case string(StatusPending):
		return StatusKindPending
	case string(StatusCancelled):
		return StatusKindCancelled
	default:
		return StatusKindOther
	}
}

// Billable reports whether reservations with this status count towards
// bookings and revenue.
func (s Status) Billable() bool {
	switch s.Kind() {
	case StatusKindBooked, StatusKindConfirmed:
		return true
	default:
		return false
	}
}

func (s Status) Cancelled() bool {
	return s.Kind() == StatusKindCancelled
}

// Category is the stored category tag of a reservation. Unlike Status it is
// matched exactly: "Booking" is not the billable category.
type Category string

const (
	CategoryBooking  Category = "booking"
	CategoryCoaching Category = "coaching"
	CategoryEvent    Category = "event"
)

type CategoryKind int

const (
	CategoryKindOther CategoryKind = iota
	CategoryKindBooking
	CategoryKindCoaching
	CategoryKindEvent
)

func (c Category) Kind() CategoryKind {
	switch c {
	case CategoryBooking:
		return CategoryKindBooking
	case CategoryCoaching:
		return CategoryKindCoaching
	case CategoryEvent:
		return CategoryKindEvent
	default:
		return CategoryKindOther
	}
}

func (c Category) Billable() bool {
	return c.Kind() == CategoryKindBooking
}

type Reservation struct {
	ID           int64    `json:"id"`
	CustomerName string   `json:"customer_name"`
	Contact      string   `json:"contact,omitempty"`
	CourtID      int64    `json:"court_id"`
	Date         Date     `json:"date"`
	Window       Window   `json:"window"`
	Status       Status   `json:"status"`
	Category     Category `json:"category"`
}

// NewReservation is the input for creating a reservation.
type NewReservation struct {
	CustomerName string
	Contact      string
	CourtID      int64
	Date         Date
	Window       Window
	Status       Status
	Category     Category
}

// Validate checks field-level rules and fills defaults for status and category.
func (n *NewReservation) Validate() error {
	n.CustomerName = strings.TrimSpace(n.CustomerName)
	n.Contact = strings.TrimSpace(n.Contact)
	switch {
	case n.CustomerName == "":
		return &ValidationError{Field: "customer_name", Reason: "is required"}
	case n.CourtID <= 0:
		return &ValidationError{Field: "court_id", Reason: "must be a positive integer"}
	case n.Date.IsZero():
		return &ValidationError{Field: "date", Reason: "is required"}
	case n.Window.Start >= n.Window.End:
		return &ValidationError{Field: "end_time", Reason: "must be after start_time"}
	}
	if strings.TrimSpace(string(n.Status)) == "" {
		n.Status = StatusBooked
	}
	if strings.TrimSpace(string(n.Category)) == "" {
		n.Category = CategoryBooking
	}
	return nil
}

// ReservationFilter narrows listing queries. Zero values mean "no filter".
type ReservationFilter struct {
	CourtID int64
	Search  string
	Offset  int
	Limit   int
}

type Court struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type Holiday struct {
	ID   int64  `json:"id"`
	Date Date   `json:"date"`
	Name string `json:"name,omitempty"`
}

// PricingConfig is the facility-wide pricing and opening-hours singleton.
type PricingConfig struct {
	SlotDurationMinutes int       `json:"slot_duration"`
	OpenTime            TimeOfDay `json:"open_time"`
	CloseTime           TimeOfDay `json:"close_time"`
	PricePerHour        int64     `json:"price_per_hour"`
}

// DefaultPricing is materialised the first time pricing is read.
func DefaultPricing() PricingConfig {
	return PricingConfig{
		SlotDurationMinutes: 60,
		OpenTime:            MustTimeOfDay("05:00"),
		CloseTime:           MustTimeOfDay("12:00"),
		PricePerHour:        400,
	}
}

func (p PricingConfig) Validate() error {
	switch {
	case p.SlotDurationMinutes <= 0:
		return &ValidationError{Field: "slot_duration", Reason: "must be greater than 0"}
	case p.OpenTime >= p.CloseTime:
		return &ValidationError{Field: "close_time", Reason: "must be after open_time"}
	case p.PricePerHour < 0:
		return &ValidationError{Field: "price_per_hour", Reason: "must be 0 or greater"}
	}
	return nil
}
