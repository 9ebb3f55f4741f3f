package db

import (
	"context"
)

const listCourts = `SELECT id, name, active FROM courts ORDER BY id`

func (q *Queries) ListCourts(ctx context.Context) ([]Court, error) {
	rows, err := q.db.QueryContext(ctx, listCourts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Court
	for rows.Next() {
		var i Court
		if err := rows.Scan(&i.ID, &i.Name, &i.Active); err != nil {
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

const getCourt = `SELECT id, name, active FROM courts WHERE id = ?`

func (q *Queries) GetCourt(ctx context.Context, id int64) (Court, error) {
	var i Court
	err := q.db.QueryRowContext(ctx, getCourt, id).Scan(&i.ID, &i.Name, &i.Active)
	return i, err
}

const createCourt = `INSERT INTO courts (name, active) VALUES (?, ?) RETURNING id, name, active`

type CreateCourtParams struct {
	Name   string
	Active bool
}

func (q *Queries) CreateCourt(ctx context.Context, arg CreateCourtParams) (Court, error) {
	var i Court
	err := q.db.QueryRowContext(ctx, createCourt, arg.Name, arg.Active).Scan(&i.ID, &i.Name, &i.Active)
	return i, err
}

const updateCourt = `
UPDATE courts SET name = ?, active = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, name, active`

type UpdateCourtParams struct {
	Name   string
	Active bool
	ID     int64
}

func (q *Queries) UpdateCourt(ctx context.Context, arg UpdateCourtParams) (Court, error) {
	var i Court
	err := q.db.QueryRowContext(ctx, updateCourt, arg.Name, arg.Active, arg.ID).Scan(&i.ID, &i.Name, &i.Active)
	return i, err
}

const deleteCourt = `DELETE FROM courts WHERE id = ?`

func (q *Queries) DeleteCourt(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteCourt, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
