package store

import (
	"context"

	"photo-booking-api/internal/model"
)

// BookAppointment inserts the appointment after re-checking, under a row lock,
// that the slot exists for the photographer and nothing references it yet.
// The UNIQUE constraint on appointments.slot_id backs the check up, so a
// concurrent booking that slips past the lock still loses with ErrSlotTaken.
func (s *Store) BookAppointment(ctx context.Context, a *model.Appointment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var slotID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM available_times
		 WHERE id = $1 AND photographer_email = $2
		 FOR UPDATE`,
		a.SlotID, a.PhotographerEmail,
	).Scan(&slotID)
	if err != nil {
		return pgErr(err)
	}

	var taken bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM appointments WHERE slot_id = $1)`, a.SlotID,
	).Scan(&taken)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO appointments (id, slot_id, package_id, photographer_email, client_email, status)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.SlotID, a.PackageID, a.PhotographerEmail, a.ClientEmail, a.Status,
	)
	if err != nil {
		if pgErr(err) == ErrDuplicate {
			return ErrSlotTaken
		}
		return pgErr(err)
	}

	return tx.Commit(ctx)
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, slot_id, package_id, photographer_email, client_email, status, created_at, updated_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.SlotID, &a.PackageID, &a.PhotographerEmail, &a.ClientEmail,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, pgErr(err)
	}
	return a, nil
}

// AppointmentsForUser lists appointments the user participates in, on either
// side of the booking.
func (s *Store) AppointmentsForUser(ctx context.Context, email string) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, slot_id, package_id, photographer_email, client_email, status, created_at, updated_at
		 FROM appointments
		 WHERE photographer_email = $1 OR client_email = $1
		 ORDER BY created_at`, email)
	if err != nil {
		return nil, pgErr(err)
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.SlotID, &a.PackageID, &a.PhotographerEmail,
			&a.ClientEmail, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetAppointmentStatus performs a guarded transition: the update only applies
// when the current status is one of from. Re-applying the target status is a
// no-op update, which makes confirm and complete idempotent.
func (s *Store) SetAppointmentStatus(ctx context.Context, id string, from []model.AppointmentStatus, to model.AppointmentStatus) error {
	states := make([]string, len(from))
	for i, st := range from {
		states[i] = string(st)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND status = ANY($3)`,
		to, id, states)
	if err != nil {
		return pgErr(err)
	}
	if tag.RowsAffected() == 0 {
		// distinguish missing row from forbidden transition
		if _, err := s.AppointmentByID(ctx, id); err != nil {
			return err
		}
		return ErrInvalidState
	}
	return nil
}

// DeleteAppointment hard-deletes the row; the slot becomes bookable again by
// derivation and the invoice/feedback rows go with it via FK cascade.
func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return pgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
