package booking

import (
	"testing"
	"time"
)

func sampleRecords() []Reservation {
	return []Reservation{
		{ID: 1, CourtID: 2, Date: NewDate(2024, 1, 3), Status: StatusBooked},
		{ID: 2, CourtID: 1, Date: NewDate(2024, 1, 3), Status: StatusCancelled},
		{ID: 3, CourtID: 1, Date: NewDate(2024, 1, 1), Status: StatusBooked},
		{ID: 4, CourtID: 1, Date: NewDate(2024, 1, 3), Status: StatusPending},
		{ID: 5, CourtID: 1, Date: NewDate(2024, 2, 1), Status: StatusBooked},
	}
}

func TestDailyCounts(t *testing.T) {
	got := DailyCounts(sampleRecords())
	want := []DateCount{
		{Date: NewDate(2024, 1, 1), Count: 1},
		{Date: NewDate(2024, 1, 3), Count: 3},
		{Date: NewDate(2024, 2, 1), Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d days, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Date.Equal(want[i].Date) || got[i].Count != want[i].Count {
			t.Errorf("day[%d] = %s:%d, want %s:%d", i, got[i].Date, got[i].Count, want[i].Date, want[i].Count)
		}
	}
}

func TestStatusDistribution(t *testing.T) {
	got := StatusDistribution(sampleRecords())
	want := []StatusCount{
		{Status: StatusBooked, Count: 3},
		{Status: StatusCancelled, Count: 1},
		{Status: StatusPending, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("status[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCapacityHeatmap(t *testing.T) {
	span := DateRange{Start: NewDate(2024, 1, 1), End: NewDate(2024, 1, 31)}
	got := CapacityHeatmap(sampleRecords(), span)
	want := []CapacityCell{
		{Date: NewDate(2024, 1, 1), CourtID: 1, Count: 1},
		{Date: NewDate(2024, 1, 3), CourtID: 1, Count: 2},
		{Date: NewDate(2024, 1, 3), CourtID: 2, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if !got[i].Date.Equal(want[i].Date) || got[i].CourtID != want[i].CourtID || got[i].Count != want[i].Count {
			t.Errorf("cell[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMonthCalendar(t *testing.T) {
	got := MonthCalendar(sampleRecords(), 2024, time.January)
	if len(got) != 2 {
		t.Fatalf("got %+v, want 2 days in January", got)
	}
	if got[1].Count != 3 {
		t.Fatalf("Jan 3 count = %d, want 3 (all statuses)", got[1].Count)
	}

	if got := MonthCalendar(sampleRecords(), 2024, time.March); len(got) != 0 {
		t.Fatalf("expected empty March, got %+v", got)
	}
}

func TestMonthRangeLeapYear(t *testing.T) {
	if got := MonthRange(2024, time.February).End.String(); got != "2024-02-29" {
		t.Fatalf("end = %s, want 2024-02-29", got)
	}
	if got := MonthRange(2023, time.February).End.String(); got != "2023-02-28" {
		t.Fatalf("end = %s, want 2023-02-28", got)
	}
}
