package scheduler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtMaster/internal/booking"
	"github.com/codr1/CourtMaster/internal/config"
)

const retentionJobName = "reservation_retention"

// Purger is the slice of booking.Service the retention job needs.
type Purger interface {
	Today() booking.Date
	AvailableYears(ctx context.Context) ([]int, error)
	BulkDelete(ctx context.Context, spec booking.PeriodSpec) (booking.PurgeResult, error)
}

// RegisterRetentionJob schedules PurgeExpiredYears on cfg.Schedule. A
// disabled policy registers nothing.
func RegisterRetentionJob(s *Service, purger Purger, cfg config.RetentionConfig) error {
	if !cfg.Enabled {
		log.Info().Msg("Reservation retention disabled")
		return nil
	}
	if purger == nil {
		return fmt.Errorf("retention job requires a purger")
	}
	if cfg.KeepYears < 1 {
		return fmt.Errorf("retention keep_years must be at least 1")
	}

	_, err := s.AddJob(retentionJobName, cfg.Schedule, func(ctx context.Context) {
		if _, err := PurgeExpiredYears(ctx, purger, cfg.KeepYears); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Reservation retention run failed")
		}
	})
	return err
}

// PurgeExpiredYears bulk-deletes every year older than the current year minus
// keepYears and returns the number of reservations removed. Years are purged
// oldest first; the first failure stops the run.
func PurgeExpiredYears(ctx context.Context, purger Purger, keepYears int) (int64, error) {
	cutoff := purger.Today().Year() - keepYears
	logger := log.Ctx(ctx).With().Int("cutoff_year", cutoff).Logger()

	years, err := purger.AvailableYears(ctx)
	if err != nil {
		return 0, fmt.Errorf("list reservation years: %w", err)
	}

	var total int64
	for _, year := range years {
		if year >= cutoff {
			break
		}
		result, err := purger.BulkDelete(ctx, booking.PeriodSpec{Kind: booking.PeriodYearly, Year: year})
		if err != nil {
			return total, fmt.Errorf("purge year %d: %w", year, err)
		}
		total += result.Count
		logger.Info().Int("year", year).Int64("deleted", result.Count).Msg("Expired reservations purged")
	}

	if total == 0 {
		logger.Debug().Msg("No expired reservations to purge")
	}
	return total, nil
}
