// Package store is the pgx-backed persistence layer. Every method translates
// to one parameterized statement; multi-step writes own their transaction.
// Storage failures are returned, never swallowed: callers decide between
// not-found, constraint violation and storage-unavailable.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on a uniqueness violation (e.g. email taken).
	ErrDuplicate = errors.New("already exists")
	// ErrSlotTaken is returned when booking a slot some appointment already references.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrInvalidState is returned for a status transition the lifecycle forbids.
	ErrInvalidState = errors.New("invalid appointment state")
	// ErrInUse is returned when deleting a row something else still references.
	ErrInUse = errors.New("still referenced")
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// pgErr maps driver-level failures onto the store sentinels.
func pgErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		switch pge.Code {
		case "23505": // unique_violation
			return ErrDuplicate
		case "23503": // foreign_key_violation
			return ErrInUse
		}
	}
	return err
}
