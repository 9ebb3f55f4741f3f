package db

import (
	"context"
)

const reservationColumns = `id, customer_name, contact, court_id, date, start_time, end_time, status, category`

func scanReservation(row interface{ Scan(...interface{}) error }) (Reservation, error) {
	var i Reservation
	err := row.Scan(
		&i.ID,
		&i.CustomerName,
		&i.Contact,
		&i.CourtID,
		&i.Date,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.Category,
	)
	return i, err
}

func (q *Queries) queryReservations(ctx context.Context, query string, args ...interface{}) ([]Reservation, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reservation
	for rows.Next() {
		i, err := scanReservation(rows)
		if err != nil {
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

const createReservation = `
INSERT INTO reservations (customer_name, contact, court_id, date, start_time, end_time, status, category)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + reservationColumns

type CreateReservationParams struct {
	CustomerName string
	Contact      string
	CourtID      int64
	Date         string
	StartTime    string
	EndTime      string
	Status       string
	Category     string
}

func (q *Queries) CreateReservation(ctx context.Context, arg CreateReservationParams) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, createReservation,
		arg.CustomerName,
		arg.Contact,
		arg.CourtID,
		arg.Date,
		arg.StartTime,
		arg.EndTime,
		arg.Status,
		arg.Category,
	)
	return scanReservation(row)
}

const getReservation = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`

func (q *Queries) GetReservation(ctx context.Context, id int64) (Reservation, error) {
	return scanReservation(q.db.QueryRowContext(ctx, getReservation, id))
}

const listReservationsByCourtAndDate = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE court_id = ? AND date = ?
ORDER BY start_time, id`

type ListReservationsByCourtAndDateParams struct {
	CourtID int64
	Date    string
}

func (q *Queries) ListReservationsByCourtAndDate(ctx context.Context, arg ListReservationsByCourtAndDateParams) ([]Reservation, error) {
	return q.queryReservations(ctx, listReservationsByCourtAndDate, arg.CourtID, arg.Date)
}

// Empty bounds and a zero court id disable the corresponding filter. Search is
// a lower-cased LIKE pattern; a negative limit means no limit.
const listReservations = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE (?1 = '' OR date >= ?1)
  AND (?2 = '' OR date <= ?2)
  AND (?3 = 0 OR court_id = ?3)
  AND (?4 = '' OR lower(customer_name) LIKE ?4 ESCAPE '\' OR lower(contact) LIKE ?4 ESCAPE '\')
ORDER BY date, start_time, id
LIMIT ?5 OFFSET ?6`

type ListReservationsParams struct {
	StartDate string
	EndDate   string
	CourtID   int64
	Search    string
	Limit     int64
	Offset    int64
}

func (q *Queries) ListReservations(ctx context.Context, arg ListReservationsParams) ([]Reservation, error) {
	return q.queryReservations(ctx, listReservations,
		arg.StartDate,
		arg.EndDate,
		arg.CourtID,
		arg.Search,
		arg.Limit,
		arg.Offset,
	)
}

const updateReservationStatus = `
UPDATE reservations SET status = ? WHERE id = ?
RETURNING ` + reservationColumns

type UpdateReservationStatusParams struct {
	Status string
	ID     int64
}

func (q *Queries) UpdateReservationStatus(ctx context.Context, arg UpdateReservationStatusParams) (Reservation, error) {
	return scanReservation(q.db.QueryRowContext(ctx, updateReservationStatus, arg.Status, arg.ID))
}

const deleteReservation = `DELETE FROM reservations WHERE id = ? RETURNING ` + reservationColumns

func (q *Queries) DeleteReservation(ctx context.Context, id int64) (Reservation, error) {
	return scanReservation(q.db.QueryRowContext(ctx, deleteReservation, id))
}

const deleteReservationsInRange = `
DELETE FROM reservations
WHERE (?1 = '' OR date >= ?1)
  AND (?2 = '' OR date <= ?2)`

type DeleteReservationsInRangeParams struct {
	StartDate string
	EndDate   string
}

func (q *Queries) DeleteReservationsInRange(ctx context.Context, arg DeleteReservationsInRangeParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteReservationsInRange, arg.StartDate, arg.EndDate)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listReservationYears = `
SELECT DISTINCT CAST(substr(date, 1, 4) AS INTEGER) AS year
FROM reservations
ORDER BY year`

func (q *Queries) ListReservationYears(ctx context.Context) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listReservationYears)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []int64
	for rows.Next() {
		var year int64
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		items = append(items, year)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
