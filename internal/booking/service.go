// Package booking orchestrates the appointment lifecycle: a client books an
// open slot with a package, the photographer confirms and completes, the
// invoice is generated lazily, and the client may leave feedback once the
// appointment completed. Cancellation is a hard delete from any state; the
// slot becomes open again because availability is derived, not stored.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"photo-booking-api/internal/model"
	"photo-booking-api/internal/store"
)

var (
	// ErrInvalid wraps request validation failures.
	ErrInvalid = errors.New("invalid input")
	// ErrForbidden means the caller is not a party to the appointment.
	ErrForbidden = errors.New("not your appointment")
	// ErrNotCompleted gates feedback on the completed state.
	ErrNotCompleted = errors.New("appointment not completed")
)

// Store is the persistence surface the lifecycle needs. *store.Store
// implements it against Postgres; MemStore implements it in memory for tests.
type Store interface {
	CreateSlot(ctx context.Context, t *model.AvailableTime) error
	SlotByID(ctx context.Context, id string) (*model.AvailableTime, error)
	OpenSlots(ctx context.Context, photographer string) ([]model.AvailableTime, error)
	SlotsByPhotographer(ctx context.Context, photographer string) ([]model.AvailableTime, error)
	DeleteSlot(ctx context.Context, id, photographer string) error

	CreatePackage(ctx context.Context, p *model.Package) error
	PackageByID(ctx context.Context, id string) (*model.Package, error)
	PackagesByPhotographer(ctx context.Context, photographer string) ([]model.Package, error)

	BookAppointment(ctx context.Context, a *model.Appointment) error
	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	AppointmentsForUser(ctx context.Context, email string) ([]model.Appointment, error)
	SetAppointmentStatus(ctx context.Context, id string, from []model.AppointmentStatus, to model.AppointmentStatus) error
	DeleteAppointment(ctx context.Context, id string) error

	CreateInvoice(ctx context.Context, inv *model.Invoice) (*model.Invoice, error)
	InvoiceByAppointment(ctx context.Context, appointmentID string) (*model.Invoice, error)

	CreateFeedback(ctx context.Context, f *model.FeedbackForm) (*model.FeedbackForm, error)
	FeedbackByAppointment(ctx context.Context, appointmentID string) (*model.FeedbackForm, error)
}

type Service struct {
	store Store
	log   zerolog.Logger
}

func NewService(st Store, log zerolog.Logger) *Service {
	return &Service{store: st, log: log.With().Str("component", "booking").Logger()}
}

// OpenSlot publishes a new available time for the photographer.
func (s *Service) OpenSlot(ctx context.Context, photographer string, start, end time.Time) (*model.AvailableTime, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end required", ErrInvalid)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalid)
	}

	t := &model.AvailableTime{
		ID:                uuid.New().String(),
		PhotographerEmail: photographer,
		StartTime:         start,
		EndTime:           end,
	}
	if err := s.store.CreateSlot(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// RemoveSlot deletes an own open slot. A slot referenced by an appointment
// stays put (store.ErrInUse); cancel the appointment first.
func (s *Service) RemoveSlot(ctx context.Context, photographer, id string) error {
	return s.store.DeleteSlot(ctx, id, photographer)
}

func (s *Service) CreatePackage(ctx context.Context, photographer string, priceCents int64, items []string) (*model.Package, error) {
	if priceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalid)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one item required", ErrInvalid)
	}

	p := &model.Package{
		ID:                uuid.New().String(),
		PhotographerEmail: photographer,
		PriceCents:        priceCents,
		Items:             items,
	}
	if err := s.store.CreatePackage(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Book creates an appointment in the requested state. The slot must belong to
// the photographer and be unreferenced; the package must be the
// photographer's own. The check-then-insert runs atomically in the store.
func (s *Service) Book(ctx context.Context, client, photographer, slotID, packageID string) (*model.Appointment, error) {
	if slotID == "" || packageID == "" {
		return nil, fmt.Errorf("%w: slot_id and package_id required", ErrInvalid)
	}

	pkg, err := s.store.PackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	// a package of another photographer is as good as nonexistent
	if pkg.PhotographerEmail != photographer {
		return nil, store.ErrNotFound
	}

	a := &model.Appointment{
		ID:                uuid.New().String(),
		SlotID:            slotID,
		PackageID:         packageID,
		PhotographerEmail: photographer,
		ClientEmail:       client,
		Status:            model.StatusRequested,
	}
	if err := s.store.BookAppointment(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info().Str("appointment", a.ID).Str("client", client).
		Str("photographer", photographer).Msg("appointment booked")
	return a, nil
}

// Confirm moves requested -> confirmed. Re-confirming is a no-op; a completed
// appointment cannot revert.
func (s *Service) Confirm(ctx context.Context, photographer, id string) error {
	if err := s.owned(ctx, photographer, id); err != nil {
		return err
	}
	return s.store.SetAppointmentStatus(ctx, id,
		[]model.AppointmentStatus{model.StatusRequested, model.StatusConfirmed},
		model.StatusConfirmed)
}

// Complete moves confirmed -> completed, gating feedback eligibility. A
// requested appointment must be confirmed first.
func (s *Service) Complete(ctx context.Context, photographer, id string) error {
	if err := s.owned(ctx, photographer, id); err != nil {
		return err
	}
	return s.store.SetAppointmentStatus(ctx, id,
		[]model.AppointmentStatus{model.StatusConfirmed, model.StatusCompleted},
		model.StatusCompleted)
}

// Cancel hard-deletes the appointment. Either party may cancel, from any
// state; the invoice and feedback rows go with it.
func (s *Service) Cancel(ctx context.Context, actor, id string) error {
	a, err := s.party(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteAppointment(ctx, a.ID); err != nil {
		return err
	}
	s.log.Info().Str("appointment", a.ID).Str("by", actor).Msg("appointment cancelled")
	return nil
}

// Invoice returns the appointment's invoice, creating it on first view from
// the package price and items. Creation is idempotent: concurrent first views
// agree on the same invoice.
func (s *Service) Invoice(ctx context.Context, actor, appointmentID string) (*model.Invoice, error) {
	a, err := s.party(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	pkg, err := s.store.PackageByID(ctx, a.PackageID)
	if err != nil {
		return nil, err
	}

	return s.store.CreateInvoice(ctx, &model.Invoice{
		ID:            uuid.New().String(),
		AppointmentID: a.ID,
		TotalCents:    pkg.PriceCents,
		LineItems:     pkg.Items,
	})
}

// LeaveFeedback records the client's one feedback for a completed
// appointment. A second submission is a no-op returning the existing form.
func (s *Service) LeaveFeedback(ctx context.Context, client, appointmentID, message string) (*model.FeedbackForm, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: message required", ErrInvalid)
	}

	a, err := s.store.AppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if a.ClientEmail != client {
		return nil, ErrForbidden
	}
	if a.Status != model.StatusCompleted {
		return nil, ErrNotCompleted
	}

	return s.store.CreateFeedback(ctx, &model.FeedbackForm{
		ID:            uuid.New().String(),
		AppointmentID: a.ID,
		ClientEmail:   client,
		Message:       message,
	})
}

// Feedback returns the appointment's feedback for either party.
func (s *Service) Feedback(ctx context.Context, actor, appointmentID string) (*model.FeedbackForm, error) {
	a, err := s.party(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	return s.store.FeedbackByAppointment(ctx, a.ID)
}

// owned checks the actor is the appointment's photographer.
func (s *Service) owned(ctx context.Context, photographer, id string) error {
	a, err := s.store.AppointmentByID(ctx, id)
	if err != nil {
		return err
	}
	if a.PhotographerEmail != photographer {
		return ErrForbidden
	}
	return nil
}

// party checks the actor is on either side of the appointment.
func (s *Service) party(ctx context.Context, actor, id string) (*model.Appointment, error) {
	a, err := s.store.AppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.PhotographerEmail != actor && a.ClientEmail != actor {
		return nil, ErrForbidden
	}
	return a, nil
}
