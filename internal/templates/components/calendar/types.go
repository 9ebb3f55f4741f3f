package calendar

import (
	"time"

	"github.com/codr1/CourtMaster/internal/booking"
)

type DayCell struct {
	Date    string
	Day     int
	Count   int
	InMonth bool
}

type MonthData struct {
	Year  int
	Month time.Month
	// Weeks run Monday through Sunday; cells outside the month pad the
	// first and last rows.
	Weeks [][]DayCell
	Total int
}

// NewMonthData lays per-day counts onto a Monday-first month grid.
func NewMonthData(year int, month time.Month, counts []booking.DateCount) MonthData {
	byDate := make(map[booking.Date]int, len(counts))
	total := 0
	for _, c := range counts {
		byDate[c.Date] = c.Count
		total += c.Count
	}

	first := booking.NewDate(year, month, 1)
	lead := (int(first.Weekday()) + 6) % 7
	cursor := first.AddDays(-lead)
	last := booking.NewDate(year, month, booking.DaysIn(year, month))

	data := MonthData{Year: year, Month: month, Total: total}
	for !cursor.After(last) {
		week := make([]DayCell, 7)
		for i := range week {
			inMonth := cursor.Month() == month && cursor.Year() == year
			week[i] = DayCell{
				Date:    cursor.String(),
				Day:     cursor.Day(),
				InMonth: inMonth,
			}
			if inMonth {
				week[i].Count = byDate[cursor]
			}
			cursor = cursor.AddDays(1)
		}
		data.Weeks = append(data.Weeks, week)
	}
	return data
}
