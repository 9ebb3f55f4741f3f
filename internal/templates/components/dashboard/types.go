package dashboard

import (
	"github.com/codr1/CourtMaster/internal/booking"
)

var periodLabels = map[string]string{
	booking.SelectorToday:   "Today",
	booking.SelectorWeek:    "This week",
	booking.SelectorMonth:   "This month",
	booking.SelectorYear:    "This year",
	booking.SelectorOverall: "All time",
}

type StatCard struct {
	Label string
	Value string
}

type StatsData struct {
	Period      string
	PeriodLabel string
	Cards       []StatCard
}

// NewStatsData formats stats for the summary cards. Revenue is shown in whole
// currency units as stored.
func NewStatsData(period string, stats booking.Stats) StatsData {
	label, ok := periodLabels[period]
	if !ok {
		label = period
	}
	return StatsData{
		Period:      period,
		PeriodLabel: label,
		Cards: []StatCard{
			{Label: "Bookings", Value: formatInt(int64(stats.TotalBookings))},
			{Label: "Revenue", Value: formatInt(stats.Revenue)},
			{Label: "Active customers", Value: formatInt(int64(stats.ActiveCustomers))},
		},
	}
}
