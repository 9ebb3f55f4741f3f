package sqlstore

import (
	"fmt"

	"github.com/codr1/CourtMaster/internal/booking"
	"github.com/codr1/CourtMaster/internal/db"
)

func toReservation(row db.Reservation) (booking.Reservation, error) {
	date, err := booking.ParseDate(row.Date)
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("reservation %d: %w", row.ID, err)
	}
	start, err := booking.ParseTimeOfDay(row.StartTime)
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("reservation %d start: %w", row.ID, err)
	}
	end, err := booking.ParseTimeOfDay(row.EndTime)
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("reservation %d end: %w", row.ID, err)
	}
	return booking.Reservation{
		ID:           row.ID,
		CustomerName: row.CustomerName,
		Contact:      row.Contact,
		CourtID:      row.CourtID,
		Date:         date,
		Window:       booking.Window{Start: start, End: end},
		Status:       booking.Status(row.Status),
		Category:     booking.Category(row.Category),
	}, nil
}

func toReservations(rows []db.Reservation) ([]booking.Reservation, error) {
	out := make([]booking.Reservation, 0, len(rows))
	for _, row := range rows {
		r, err := toReservation(row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func toHoliday(row db.Holiday) (booking.Holiday, error) {
	date, err := booking.ParseDate(row.Date)
	if err != nil {
		return booking.Holiday{}, fmt.Errorf("holiday %d: %w", row.ID, err)
	}
	return booking.Holiday{ID: row.ID, Date: date, Name: row.Name}, nil
}

func toPricing(row db.Setting) (booking.PricingConfig, error) {
	open, err := booking.ParseTimeOfDay(row.OpenTime)
	if err != nil {
		return booking.PricingConfig{}, fmt.Errorf("open_time: %w", err)
	}
	closing, err := booking.ParseTimeOfDay(row.CloseTime)
	if err != nil {
		return booking.PricingConfig{}, fmt.Errorf("close_time: %w", err)
	}
	return booking.PricingConfig{
		SlotDurationMinutes: int(row.SlotDuration),
		OpenTime:            open,
		CloseTime:           closing,
		PricePerHour:        row.PricePerHour,
	}, nil
}

func fromPricing(cfg booking.PricingConfig) db.Setting {
	return db.Setting{
		SlotDuration: int64(cfg.SlotDurationMinutes),
		OpenTime:     cfg.OpenTime.String(),
		CloseTime:    cfg.CloseTime.String(),
		PricePerHour: cfg.PricePerHour,
	}
}
