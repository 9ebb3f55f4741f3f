package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Reservation struct {
	ID           int64
	CustomerName string
	Contact      string
	CourtID      int64
	Date         string
	StartTime    string
	EndTime      string
	Status       string
	Category     string
}

type Court struct {
	ID     int64
	Name   string
	Active bool
}

type Holiday struct {
	ID   int64
	Date string
	Name string
}

type Setting struct {
	SlotDuration int64
	OpenTime     string
	CloseTime    string
	PricePerHour int64
}
