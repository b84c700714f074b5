package store

import (
	"context"

	"photo-booking-api/internal/model"
)

func (s *Store) CreateContactForm(ctx context.Context, f *model.ContactForm) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contact_forms (id, photographer_email, sender_name, sender_email, message)
		 VALUES ($1,$2,$3,$4,$5)`,
		f.ID, f.PhotographerEmail, f.SenderName, f.SenderEmail, f.Message,
	)
	return pgErr(err)
}

func (s *Store) ContactFormsForPhotographer(ctx context.Context, photographer string) ([]model.ContactForm, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, photographer_email, sender_name, sender_email, message, created_at
		 FROM contact_forms WHERE photographer_email = $1 ORDER BY created_at`, photographer)
	if err != nil {
		return nil, pgErr(err)
	}
	defer rows.Close()

	var out []model.ContactForm
	for rows.Next() {
		var f model.ContactForm
		if err := rows.Scan(&f.ID, &f.PhotographerEmail, &f.SenderName,
			&f.SenderEmail, &f.Message, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// CreateFeedback inserts at most one feedback per appointment. A repeat
// submission is a no-op and the original row comes back.
func (s *Store) CreateFeedback(ctx context.Context, f *model.FeedbackForm) (*model.FeedbackForm, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO feedback_forms (id, appointment_id, client_email, message)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (appointment_id) DO NOTHING`,
		f.ID, f.AppointmentID, f.ClientEmail, f.Message,
	)
	if err != nil {
		return nil, pgErr(err)
	}
	return s.FeedbackByAppointment(ctx, f.AppointmentID)
}

func (s *Store) FeedbackByAppointment(ctx context.Context, appointmentID string) (*model.FeedbackForm, error) {
	f := &model.FeedbackForm{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, appointment_id, client_email, message, created_at
		 FROM feedback_forms WHERE appointment_id = $1`, appointmentID,
	).Scan(&f.ID, &f.AppointmentID, &f.ClientEmail, &f.Message, &f.CreatedAt)
	if err != nil {
		return nil, pgErr(err)
	}
	return f, nil
}
