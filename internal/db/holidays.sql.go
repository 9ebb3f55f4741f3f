package db

import (
	"context"
)

const holidayExists = `SELECT EXISTS(SELECT 1 FROM holidays WHERE date = ?)`

func (q *Queries) HolidayExists(ctx context.Context, date string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, holidayExists, date).Scan(&exists)
	return exists, err
}

const listHolidays = `SELECT id, date, name FROM holidays ORDER BY date`

func (q *Queries) ListHolidays(ctx context.Context) ([]Holiday, error) {
	rows, err := q.db.QueryContext(ctx, listHolidays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Holiday
	for rows.Next() {
		var i Holiday
		if err := rows.Scan(&i.ID, &i.Date, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createHoliday = `INSERT INTO holidays (date, name) VALUES (?, ?) RETURNING id, date, name`

type CreateHolidayParams struct {
	Date string
	Name string
}

func (q *Queries) CreateHoliday(ctx context.Context, arg CreateHolidayParams) (Holiday, error) {
	var i Holiday
	err := q.db.QueryRowContext(ctx, createHoliday, arg.Date, arg.Name).Scan(&i.ID, &i.Date, &i.Name)
	return i, err
}

const deleteHoliday = `DELETE FROM holidays WHERE id = ?`

func (q *Queries) DeleteHoliday(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteHoliday, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
