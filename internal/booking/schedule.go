package booking

// Slot is one bookable interval in the day grid for a court.
type Slot struct {
	Window        Window `json:"window"`
	Booked        bool   `json:"booked"`
	ReservationID int64  `json:"reservation_id,omitempty"`
}

type CourtSchedule struct {
	Court Court  `json:"court"`
	Slots []Slot `json:"slots"`
}

type DaySchedule struct {
	Date    Date            `json:"date"`
	Holiday bool            `json:"holiday"`
	Courts  []CourtSchedule `json:"courts"`
}

// SlotWindows splits the opening hours into consecutive slots of the configured
// duration. A trailing remainder shorter than one slot is dropped.
func SlotWindows(cfg PricingConfig) []Window {
	if cfg.SlotDurationMinutes <= 0 || cfg.OpenTime >= cfg.CloseTime {
		return nil
	}
	step := TimeOfDay(cfg.SlotDurationMinutes)
	var out []Window
	for start := cfg.OpenTime; start+step <= cfg.CloseTime; start += step {
		out = append(out, Window{Start: start, End: start + step})
	}
	return out
}

// BuildDaySchedule lays the slot grid over each active court and marks slots
// overlapped by a non-cancelled reservation on that court.
func BuildDaySchedule(date Date, holiday bool, cfg PricingConfig, courts []Court, records []Reservation) DaySchedule {
	byCourt := make(map[int64][]Reservation)
	for _, r := range records {
		if !r.Date.Equal(date) || r.Status.Cancelled() {
			continue
		}
		byCourt[r.CourtID] = append(byCourt[r.CourtID], r)
	}

	windows := SlotWindows(cfg)
	schedule := DaySchedule{Date: date, Holiday: holiday, Courts: make([]CourtSchedule, 0, len(courts))}
	for _, court := range courts {
		if !court.Active {
			continue
		}
		slots := make([]Slot, len(windows))
		for i, w := range windows {
			slots[i] = Slot{Window: w}
			for _, r := range byCourt[court.ID] {
				if w.Overlaps(r.Window) {
					slots[i].Booked = true
					slots[i].ReservationID = r.ID
					break
				}
			}
		}
		schedule.Courts = append(schedule.Courts, CourtSchedule{Court: court, Slots: slots})
	}
	return schedule
}
