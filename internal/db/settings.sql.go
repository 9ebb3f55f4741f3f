package db

import (
	"context"
)

const getSettings = `SELECT slot_duration, open_time, close_time, price_per_hour FROM settings WHERE id = 1`

func (q *Queries) GetSettings(ctx context.Context) (Setting, error) {
	var i Setting
	err := q.db.QueryRowContext(ctx, getSettings).Scan(&i.SlotDuration, &i.OpenTime, &i.CloseTime, &i.PricePerHour)
	return i, err
}

// InsertDefaultSettings is a no-op once the singleton row exists.
const insertDefaultSettings = `
INSERT OR IGNORE INTO settings (id, slot_duration, open_time, close_time, price_per_hour)
VALUES (1, ?, ?, ?, ?)`

func (q *Queries) InsertDefaultSettings(ctx context.Context, arg Setting) error {
	_, err := q.db.ExecContext(ctx, insertDefaultSettings, arg.SlotDuration, arg.OpenTime, arg.CloseTime, arg.PricePerHour)
	return err
}

const upsertSettings = `
INSERT INTO settings (id, slot_duration, open_time, close_time, price_per_hour)
VALUES (1, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    slot_duration = excluded.slot_duration,
    open_time = excluded.open_time,
    close_time = excluded.close_time,
    price_per_hour = excluded.price_per_hour,
    updated_at = CURRENT_TIMESTAMP
RETURNING slot_duration, open_time, close_time, price_per_hour`

func (q *Queries) UpsertSettings(ctx context.Context, arg Setting) (Setting, error) {
	var i Setting
	err := q.db.QueryRowContext(ctx, upsertSettings, arg.SlotDuration, arg.OpenTime, arg.CloseTime, arg.PricePerHour).
		Scan(&i.SlotDuration, &i.OpenTime, &i.CloseTime, &i.PricePerHour)
	return i, err
}
