package booking

import (
	"strings"
	"time"
)

// Coarse selectors used by dashboard statistics.
const (
	SelectorToday   = "today"
	SelectorWeek    = "week"
	SelectorMonth   = "month"
	SelectorYear    = "year"
	SelectorOverall = "overall"
)

// ResolveSince converts a coarse selector into a range ending at now's date.
// "overall" and unrecognized selectors have no lower bound. Weeks start on Monday.
func ResolveSince(selector string, now time.Time) DateRange {
	today := DateOf(now)
	r := DateRange{End: today}

	switch strings.ToLower(strings.TrimSpace(selector)) {
	case SelectorToday:
		r.Start = today
	case SelectorWeek:
		r.Start = today.AddDays(-mondayIndex(today.Weekday()))
	case SelectorMonth:
		r.Start = NewDate(today.Year(), today.Month(), 1)
	case SelectorYear:
		r.Start = NewDate(today.Year(), time.January, 1)
	}
	return r
}

// mondayIndex maps a weekday to 0 for Monday through 6 for Sunday.
func mondayIndex(day time.Weekday) int {
	return (int(day) + 6) % 7
}

// PeriodKind selects the granularity of an exact period.
type PeriodKind string

const (
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
	PeriodYearly  PeriodKind = "yearly"
)

const (
	minPeriodYear = 1
	maxPeriodYear = 9999
	maxWeek       = 5
)

// PeriodSpec names an exact calendar period. Month and Week are 1-based; zero
// means the field was not supplied.
type PeriodSpec struct {
	Kind  PeriodKind `json:"period"`
	Year  int        `json:"year"`
	Month int        `json:"month,omitempty"`
	Week  int        `json:"week,omitempty"`
}

// ResolvePeriod returns the closed date range covered by spec.
//
// Weeks are blocks of days within a month: week n covers days (n-1)*7+1
// through n*7, clipped to the last day of the month.
func ResolvePeriod(spec PeriodSpec) (DateRange, error) {
	kind := PeriodKind(strings.ToLower(strings.TrimSpace(string(spec.Kind))))
	switch kind {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
	case "":
		return DateRange{}, &InvalidPeriodError{Field: "period", Reason: "is required"}
	default:
		return DateRange{}, &InvalidPeriodError{Field: "period", Reason: "must be one of weekly, monthly, yearly"}
	}

	if spec.Year == 0 {
		return DateRange{}, &InvalidPeriodError{Field: "year", Reason: "is required"}
	}
	if spec.Year < minPeriodYear || spec.Year > maxPeriodYear {
		return DateRange{}, &InvalidPeriodError{Field: "year", Reason: "is out of range"}
	}
	if kind == PeriodYearly {
		return DateRange{
			Start: NewDate(spec.Year, time.January, 1),
			End:   NewDate(spec.Year, time.December, 31),
		}, nil
	}

	if spec.Month == 0 {
		return DateRange{}, &InvalidPeriodError{Field: "month", Reason: "is required"}
	}
	if spec.Month < 1 || spec.Month > 12 {
		return DateRange{}, &InvalidPeriodError{Field: "month", Reason: "must be between 1 and 12"}
	}
	month := time.Month(spec.Month)
	lastDay := DaysIn(spec.Year, month)
	if kind == PeriodMonthly {
		return DateRange{
			Start: NewDate(spec.Year, month, 1),
			End:   NewDate(spec.Year, month, lastDay),
		}, nil
	}

	if spec.Week == 0 {
		return DateRange{}, &InvalidPeriodError{Field: "week", Reason: "is required"}
	}
	if spec.Week < 1 || spec.Week > maxWeek {
		return DateRange{}, &InvalidPeriodError{Field: "week", Reason: "must be between 1 and 5"}
	}
	startDay := (spec.Week-1)*7 + 1
	if startDay > lastDay {
		return DateRange{}, &InvalidPeriodError{Field: "week", Reason: "is past the end of the month"}
	}
	endDay := min(spec.Week*7, lastDay)
	return DateRange{
		Start: NewDate(spec.Year, month, startDay),
		End:   NewDate(spec.Year, month, endDay),
	}, nil
}

// WeekOfMonth returns the 1-based week block of d within its month.
func WeekOfMonth(d Date) int {
	return (d.Day() + 6) / 7
}
