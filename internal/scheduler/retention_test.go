package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codr1/CourtMaster/internal/booking"
	"github.com/codr1/CourtMaster/internal/config"
)

type fakePurger struct {
	today    booking.Date
	years    []int
	counts   map[int]int64
	failYear int
	purged   []int
}

func (f *fakePurger) Today() booking.Date { return f.today }

func (f *fakePurger) AvailableYears(context.Context) ([]int, error) {
	return f.years, nil
}

func (f *fakePurger) BulkDelete(_ context.Context, spec booking.PeriodSpec) (booking.PurgeResult, error) {
	if spec.Kind != booking.PeriodYearly {
		return booking.PurgeResult{}, errors.New("unexpected period kind")
	}
	if spec.Year == f.failYear {
		return booking.PurgeResult{}, errors.New("disk full")
	}
	f.purged = append(f.purged, spec.Year)
	return booking.PurgeResult{Period: spec, Count: f.counts[spec.Year]}, nil
}

func TestPurgeExpiredYears(t *testing.T) {
	tests := []struct {
		name       string
		keepYears  int
		failYear   int
		wantPurged []int
		wantTotal  int64
		wantErr    bool
	}{
		{"keep two", 2, 0, []int{2019, 2021}, 5, false},
		{"keep one", 1, 0, []int{2019, 2021, 2022}, 12, false},
		{"keep many", 10, 0, nil, 0, false},
		{"stops on failure", 1, 2021, []int{2019}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			purger := &fakePurger{
				today:    booking.NewDate(2024, time.June, 1),
				years:    []int{2019, 2021, 2022, 2024},
				counts:   map[int]int64{2019: 2, 2021: 3, 2022: 7, 2024: 1},
				failYear: tt.failYear,
			}

			total, err := PurgeExpiredYears(context.Background(), purger, tt.keepYears)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if total != tt.wantTotal {
				t.Fatalf("total = %d, want %d", total, tt.wantTotal)
			}
			if len(purger.purged) != len(tt.wantPurged) {
				t.Fatalf("purged = %v, want %v", purger.purged, tt.wantPurged)
			}
			for i := range tt.wantPurged {
				if purger.purged[i] != tt.wantPurged[i] {
					t.Fatalf("purged = %v, want %v", purger.purged, tt.wantPurged)
				}
			}
		})
	}
}

func TestRegisterRetentionJob(t *testing.T) {
	svc, err := New(time.UTC)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	svc.Start()
	t.Cleanup(func() {
		if err := svc.Stop(); err != nil {
			t.Errorf("stop scheduler: %v", err)
		}
	})

	purger := &fakePurger{today: booking.NewDate(2024, time.January, 1)}

	tests := []struct {
		name    string
		cfg     config.RetentionConfig
		purger  Purger
		wantErr bool
	}{
		{"disabled", config.RetentionConfig{Enabled: false}, nil, false},
		{"enabled", config.RetentionConfig{Enabled: true, KeepYears: 3, Schedule: "0 3 1 * *"}, purger, false},
		{"bad cron", config.RetentionConfig{Enabled: true, KeepYears: 3, Schedule: "whenever"}, purger, true},
		{"no purger", config.RetentionConfig{Enabled: true, KeepYears: 3, Schedule: "0 3 1 * *"}, nil, true},
		{"bad keep years", config.RetentionConfig{Enabled: true, Schedule: "0 3 1 * *"}, purger, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RegisterRetentionJob(svc, tt.purger, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddJobValidation(t *testing.T) {
	svc, err := New(nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	svc.Start()
	defer svc.Stop()

	noop := func(context.Context) {}
	if _, err := svc.AddJob(" ", "* * * * *", noop); !errors.Is(err, ErrEmptyJobName) {
		t.Fatalf("expected ErrEmptyJobName, got %v", err)
	}
	if _, err := svc.AddJob("job", "", noop); !errors.Is(err, ErrEmptyCronExpr) {
		t.Fatalf("expected ErrEmptyCronExpr, got %v", err)
	}
	if _, err := svc.AddJob("job", "*/5 * * * *", noop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
