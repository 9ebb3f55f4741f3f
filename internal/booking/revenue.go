package booking

import "context"

// PricingSource yields the current pricing configuration. Implementations
// materialise DefaultPricing on first read.
type PricingSource interface {
	CurrentPricing(ctx context.Context) (PricingConfig, error)
	SavePricing(ctx context.Context, cfg PricingConfig) (PricingConfig, error)
}

// Stats summarises billable activity over a set of reservations.
type Stats struct {
	TotalBookings   int   `json:"total_bookings"`
	Revenue         int64 `json:"revenue"`
	ActiveCustomers int   `json:"active_customers"`
}

// billableMinutePrice is the unrounded amount for r in price-minutes, i.e.
// 60 times the currency amount.
func billableMinutePrice(r Reservation, pricePerHour int64) int64 {
	if !r.Category.Billable() {
		return 0
	}
	return int64(r.Window.DurationMinutes()) * pricePerHour
}

// BillableAmount returns the amount charged for r, rounded to the nearest unit.
// Non-booking categories are free regardless of duration.
func BillableAmount(r Reservation, pricePerHour int64) int64 {
	return roundDiv60(billableMinutePrice(r, pricePerHour))
}

// ComputeStats aggregates reservations whose status is booked or confirmed.
// Revenue is rounded once, after summing. Every category counts towards
// TotalBookings and ActiveCustomers; only billable categories earn revenue.
func ComputeStats(records []Reservation, pricePerHour int64) Stats {
	var (
		stats     Stats
		total     int64
		customers = make(map[string]struct{})
	)
	for _, r := range records {
		if !r.Status.Billable() {
			continue
		}
		stats.TotalBookings++
		customers[r.CustomerName] = struct{}{}
		total += billableMinutePrice(r, pricePerHour)
	}
	stats.Revenue = roundDiv60(total)
	stats.ActiveCustomers = len(customers)
	return stats
}

// roundDiv60 divides by 60 rounding half away from zero.
func roundDiv60(v int64) int64 {
	if v < 0 {
		return -((-v + 30) / 60)
	}
	return (v + 30) / 60
}
