package booking

import (
	"sort"
	"time"
)

type DateCount struct {
	Date  Date `json:"date"`
	Count int  `json:"count"`
}

type StatusCount struct {
	Status Status `json:"name"`
	Count  int    `json:"value"`
}

type CapacityCell struct {
	Date    Date  `json:"date"`
	CourtID int64 `json:"court_id"`
	Count   int   `json:"booked_hours"`
}

// DailyCounts groups reservations by date, ascending. Days without
// reservations are omitted.
func DailyCounts(records []Reservation) []DateCount {
	counts := make(map[Date]int)
	for _, r := range records {
		counts[r.Date]++
	}
	out := make([]DateCount, 0, len(counts))
	for date, count := range counts {
		out = append(out, DateCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// StatusDistribution groups reservations by their stored status tag, most
// frequent first, ties broken by name.
func StatusDistribution(records []Reservation) []StatusCount {
	counts := make(map[Status]int)
	for _, r := range records {
		counts[r.Status]++
	}
	out := make([]StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, StatusCount{Status: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

// CapacityHeatmap counts reservations per (date, court) inside span, inclusive.
func CapacityHeatmap(records []Reservation, span DateRange) []CapacityCell {
	type key struct {
		date    Date
		courtID int64
	}
	counts := make(map[key]int)
	for _, r := range records {
		if !span.Contains(r.Date) {
			continue
		}
		counts[key{date: r.Date, courtID: r.CourtID}]++
	}
	out := make([]CapacityCell, 0, len(counts))
	for k, count := range counts {
		out = append(out, CapacityCell{Date: k.date, CourtID: k.courtID, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Date.Compare(out[j].Date); c != 0 {
			return c < 0
		}
		return out[i].CourtID < out[j].CourtID
	})
	return out
}

// MonthRange returns the closed range covering year/month.
func MonthRange(year int, month time.Month) DateRange {
	return DateRange{
		Start: NewDate(year, month, 1),
		End:   NewDate(year, month, DaysIn(year, month)),
	}
}

// MonthCalendar counts every reservation in year/month by date, regardless of
// status or category.
func MonthCalendar(records []Reservation, year int, month time.Month) []DateCount {
	span := MonthRange(year, month)
	inMonth := make([]Reservation, 0, len(records))
	for _, r := range records {
		if span.Contains(r.Date) {
			inMonth = append(inMonth, r)
		}
	}
	return DailyCounts(inMonth)
}
