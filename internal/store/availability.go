package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"photo-booking-api/internal/model"
)

func (s *Store) CreateSlot(ctx context.Context, t *model.AvailableTime) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO available_times (id, photographer_email, start_time, end_time)
		 VALUES ($1,$2,$3,$4)`,
		t.ID, t.PhotographerEmail, t.StartTime, t.EndTime,
	)
	return pgErr(err)
}

func (s *Store) SlotByID(ctx context.Context, id string) (*model.AvailableTime, error) {
	t := &model.AvailableTime{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, photographer_email, start_time, end_time, created_at
		 FROM available_times WHERE id = $1`, id,
	).Scan(&t.ID, &t.PhotographerEmail, &t.StartTime, &t.EndTime, &t.CreatedAt)
	if err != nil {
		return nil, pgErr(err)
	}
	return t, nil
}

// OpenSlots computes availability by set subtraction: every slot of the
// photographer minus slots referenced by any appointment, confirmed or not.
func (s *Store) OpenSlots(ctx context.Context, photographer string) ([]model.AvailableTime, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT t.id, t.photographer_email, t.start_time, t.end_time, t.created_at
		 FROM available_times t
		 WHERE t.photographer_email = $1
		   AND NOT EXISTS (SELECT 1 FROM appointments a WHERE a.slot_id = t.id)
		 ORDER BY t.start_time`, photographer)
	if err != nil {
		return nil, pgErr(err)
	}
	defer rows.Close()
	return scanSlots(rows)
}

// SlotsByPhotographer returns all of a photographer's slots, booked or not.
func (s *Store) SlotsByPhotographer(ctx context.Context, photographer string) ([]model.AvailableTime, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, photographer_email, start_time, end_time, created_at
		 FROM available_times WHERE photographer_email = $1 ORDER BY start_time`, photographer)
	if err != nil {
		return nil, pgErr(err)
	}
	defer rows.Close()
	return scanSlots(rows)
}

func (s *Store) DeleteSlot(ctx context.Context, id, photographer string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM available_times WHERE id = $1 AND photographer_email = $2`,
		id, photographer)
	if err != nil {
		// FK from appointments: a booked slot cannot be removed
		return pgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSlots(rows pgx.Rows) ([]model.AvailableTime, error) {
	var out []model.AvailableTime
	for rows.Next() {
		var t model.AvailableTime
		if err := rows.Scan(&t.ID, &t.PhotographerEmail, &t.StartTime, &t.EndTime, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
