package store

import (
	"context"

	"photo-booking-api/internal/model"
)

// CreateInvoice is idempotent per appointment: the first writer wins via
// ON CONFLICT DO NOTHING and everyone reads back the winning row, so two
// concurrent first views of an invoice page agree on id and totals.
func (s *Store) CreateInvoice(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO invoices (id, appointment_id, total_cents, line_items)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (appointment_id) DO NOTHING`,
		inv.ID, inv.AppointmentID, inv.TotalCents, inv.LineItems,
	)
	if err != nil {
		return nil, pgErr(err)
	}
	return s.InvoiceByAppointment(ctx, inv.AppointmentID)
}

func (s *Store) InvoiceByAppointment(ctx context.Context, appointmentID string) (*model.Invoice, error) {
	inv := &model.Invoice{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, appointment_id, total_cents, line_items, created_at
		 FROM invoices WHERE appointment_id = $1`, appointmentID,
	).Scan(&inv.ID, &inv.AppointmentID, &inv.TotalCents, &inv.LineItems, &inv.CreatedAt)
	if err != nil {
		return nil, pgErr(err)
	}
	return inv, nil
}
