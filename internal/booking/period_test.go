package booking

import (
	"errors"
	"testing"
	"time"
)

func TestResolveSince(t *testing.T) {
	// Wednesday.
	now := time.Date(2024, 3, 13, 15, 4, 5, 0, time.UTC)
	today := NewDate(2024, 3, 13)

	tests := []struct {
		selector  string
		wantStart Date
	}{
		{SelectorToday, today},
		{SelectorWeek, NewDate(2024, 3, 11)},
		{SelectorMonth, NewDate(2024, 3, 1)},
		{SelectorYear, NewDate(2024, 1, 1)},
		{"MONTH", NewDate(2024, 3, 1)},
		{SelectorOverall, Date{}},
		{"fortnight", Date{}},
		{"", Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			got := ResolveSince(tt.selector, now)
			if !got.Start.Equal(tt.wantStart) {
				t.Fatalf("start = %s, want %s", got.Start, tt.wantStart)
			}
			if !got.End.Equal(today) {
				t.Fatalf("end = %s, want %s", got.End, today)
			}
		})
	}
}

func TestResolveSinceWeekOnSunday(t *testing.T) {
	sunday := time.Date(2024, 3, 17, 9, 0, 0, 0, time.UTC)
	got := ResolveSince(SelectorWeek, sunday)
	if want := NewDate(2024, 3, 11); !got.Start.Equal(want) {
		t.Fatalf("start = %s, want %s", got.Start, want)
	}

	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	got = ResolveSince(SelectorWeek, monday)
	if want := NewDate(2024, 3, 11); !got.Start.Equal(want) {
		t.Fatalf("start = %s, want %s", got.Start, want)
	}
}

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name      string
		spec      PeriodSpec
		wantStart string
		wantEnd   string
	}{
		{"yearly", PeriodSpec{Kind: PeriodYearly, Year: 2024}, "2024-01-01", "2024-12-31"},
		{"monthly leap february", PeriodSpec{Kind: PeriodMonthly, Year: 2024, Month: 2}, "2024-02-01", "2024-02-29"},
		{"monthly common february", PeriodSpec{Kind: PeriodMonthly, Year: 2023, Month: 2}, "2023-02-01", "2023-02-28"},
		{"monthly december", PeriodSpec{Kind: PeriodMonthly, Year: 2023, Month: 12}, "2023-12-01", "2023-12-31"},
		{"weekly first block", PeriodSpec{Kind: PeriodWeekly, Year: 2023, Month: 1, Week: 1}, "2023-01-01", "2023-01-07"},
		{"weekly second block", PeriodSpec{Kind: PeriodWeekly, Year: 2023, Month: 1, Week: 2}, "2023-01-08", "2023-01-14"},
		{"weekly clipped", PeriodSpec{Kind: PeriodWeekly, Year: 2023, Month: 1, Week: 5}, "2023-01-29", "2023-01-31"},
		{"weekly leap february tail", PeriodSpec{Kind: PeriodWeekly, Year: 2024, Month: 2, Week: 5}, "2024-02-29", "2024-02-29"},
		{"kind is case insensitive", PeriodSpec{Kind: "Yearly", Year: 2020}, "2020-01-01", "2020-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePeriod(tt.spec)
			if err != nil {
				t.Fatalf("ResolvePeriod(%+v) unexpected error: %v", tt.spec, err)
			}
			if got.Start.String() != tt.wantStart || got.End.String() != tt.wantEnd {
				t.Fatalf("ResolvePeriod(%+v) = %s, want %s..%s", tt.spec, got, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolvePeriodErrors(t *testing.T) {
	tests := []struct {
		name  string
		spec  PeriodSpec
		field string
	}{
		{"missing kind", PeriodSpec{Year: 2024}, "period"},
		{"unknown kind", PeriodSpec{Kind: "daily", Year: 2024}, "period"},
		{"missing year", PeriodSpec{Kind: PeriodYearly}, "year"},
		{"negative year", PeriodSpec{Kind: PeriodYearly, Year: -1}, "year"},
		{"huge year", PeriodSpec{Kind: PeriodYearly, Year: 10000}, "year"},
		{"missing month", PeriodSpec{Kind: PeriodMonthly, Year: 2024}, "month"},
		{"month 13", PeriodSpec{Kind: PeriodMonthly, Year: 2024, Month: 13}, "month"},
		{"weekly missing month", PeriodSpec{Kind: PeriodWeekly, Year: 2024, Week: 1}, "month"},
		{"missing week", PeriodSpec{Kind: PeriodWeekly, Year: 2024, Month: 1}, "week"},
		{"week 6", PeriodSpec{Kind: PeriodWeekly, Year: 2024, Month: 1, Week: 6}, "week"},
		{"week 5 of common february", PeriodSpec{Kind: PeriodWeekly, Year: 2023, Month: 2, Week: 5}, "week"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePeriod(tt.spec)
			var periodErr *InvalidPeriodError
			if !errors.As(err, &periodErr) {
				t.Fatalf("ResolvePeriod(%+v) error = %v, want InvalidPeriodError", tt.spec, err)
			}
			if periodErr.Field != tt.field {
				t.Fatalf("field = %q, want %q", periodErr.Field, tt.field)
			}
		})
	}
}

func TestWeekOfMonth(t *testing.T) {
	tests := map[int]int{1: 1, 7: 1, 8: 2, 14: 2, 15: 3, 28: 4, 29: 5, 31: 5}
	for day, want := range tests {
		if got := WeekOfMonth(NewDate(2023, 1, day)); got != want {
			t.Errorf("WeekOfMonth(day %d) = %d, want %d", day, got, want)
		}
	}
}

func TestWeekOfMonthMatchesResolvePeriod(t *testing.T) {
	for day := 1; day <= 31; day++ {
		d := NewDate(2023, 1, day)
		span, err := ResolvePeriod(PeriodSpec{Kind: PeriodWeekly, Year: 2023, Month: 1, Week: WeekOfMonth(d)})
		if err != nil {
			t.Fatalf("day %d: %v", day, err)
		}
		if !span.Contains(d) {
			t.Fatalf("day %d not within its own week block %s", day, span)
		}
	}
}
