package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"photo-booking-api/internal/model"
	"photo-booking-api/internal/store"
)

const (
	photog = "photo@test.com"
	client = "client@test.com"
)

func newService(t *testing.T) (*Service, *MemStore) {
	t.Helper()
	st := NewMemStore()
	return NewService(st, zerolog.Nop()), st
}

func openSlot(t *testing.T, svc *Service, hoursFromNow int) *model.AvailableTime {
	t.Helper()
	start := time.Now().Add(time.Duration(hoursFromNow) * time.Hour)
	slot, err := svc.OpenSlot(context.Background(), photog, start, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("open slot: %v", err)
	}
	return slot
}

func createPackage(t *testing.T, svc *Service) *model.Package {
	t.Helper()
	pkg, err := svc.CreatePackage(context.Background(), photog, 15000, []string{"2h shoot", "20 edited photos"})
	if err != nil {
		t.Fatalf("create package: %v", err)
	}
	return pkg
}

func TestOpenSlotValidation(t *testing.T) {
	svc, _ := newService(t)
	start := time.Now().Add(time.Hour)

	tests := []struct {
		name       string
		start, end time.Time
	}{
		{"zero start", time.Time{}, start},
		{"zero end", start, time.Time{}},
		{"end before start", start, start.Add(-time.Hour)},
		{"end equals start", start, start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.OpenSlot(context.Background(), photog, tt.start, tt.end)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

// The full lifecycle: book, confirm, invoice, complete, feedback.
func TestLifecycleScenario(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	slot := openSlot(t, svc, 48)
	pkg := createPackage(t, svc)

	appt, err := svc.Book(ctx, client, photog, slot.ID, pkg.ID)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if appt.Status != model.StatusRequested {
		t.Errorf("fresh appointment should be requested, got %s", appt.Status)
	}

	// the slot no longer shows up as open
	open, _ := svc.store.OpenSlots(ctx, photog)
	for _, s := range open {
		if s.ID == slot.ID {
			t.Error("booked slot still listed as open")
		}
	}

	if err := svc.Confirm(ctx, photog, appt.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	inv, err := svc.Invoice(ctx, client, appt.ID)
	if err != nil {
		t.Fatalf("invoice: %v", err)
	}
	if inv.TotalCents != pkg.PriceCents {
		t.Errorf("invoice total %d, package price %d", inv.TotalCents, pkg.PriceCents)
	}
	if len(inv.LineItems) != len(pkg.Items) {
		t.Errorf("invoice items %v, package items %v", inv.LineItems, pkg.Items)
	}

	if err := svc.Complete(ctx, photog, appt.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	fb, err := svc.LeaveFeedback(ctx, client, appt.ID, "great shoot")
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}

	// a second submission is a no-op returning the original
	again, err := svc.LeaveFeedback(ctx, client, appt.ID, "changed my mind")
	if err != nil {
		t.Fatalf("second feedback: %v", err)
	}
	if again.ID != fb.ID || again.Message != "great shoot" {
		t.Errorf("second submission replaced feedback: %+v", again)
	}

	got, err := svc.Feedback(ctx, photog, appt.ID)
	if err != nil {
		t.Fatalf("read feedback: %v", err)
	}
	if got.ID != fb.ID {
		t.Errorf("feedback id mismatch: %s vs %s", got.ID, fb.ID)
	}
}

func TestBookSlotTaken(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	slot := openSlot(t, svc, 24)
	pkg := createPackage(t, svc)

	if _, err := svc.Book(ctx, client, photog, slot.ID, pkg.ID); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// the slot blocks for everyone while any appointment references it,
	// even an unconfirmed one
	_, err := svc.Book(ctx, "other@test.com", photog, slot.ID, pkg.ID)
	if !errors.Is(err, store.ErrSlotTaken) {
		t.Errorf("expected ErrSlotTaken, got %v", err)
	}
}

func TestBookUnknownReferences(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	slot := openSlot(t, svc, 24)
	pkg := createPackage(t, svc)

	if _, err := svc.Book(ctx, client, photog, "no-such-slot", pkg.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown slot: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Book(ctx, client, photog, slot.ID, "no-such-package"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown package: expected ErrNotFound, got %v", err)
	}

	// another photographer's package reads as nonexistent
	other, err := svc.CreatePackage(ctx, "other-photog@test.com", 5000, []string{"mini shoot"})
	if err != nil {
		t.Fatalf("create package: %v", err)
	}
	if _, err := svc.Book(ctx, client, photog, slot.ID, other.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("foreign package: expected ErrNotFound, got %v", err)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	slot := openSlot(t, svc, 24)
	pkg := createPackage(t, svc)
	appt, _ := svc.Book(ctx, client, photog, slot.ID, pkg.ID)

	// generate the invoice so the cascade has something to remove
	if _, err := svc.Invoice(ctx, client, appt.ID); err != nil {
		t.Fatalf("invoice: %v", err)
	}

	if err := svc.Cancel(ctx, client, appt.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	open, _ := st.OpenSlots(ctx, photog)
	found := false
	for _, s := range open {
		if s.ID == slot.ID {
			found = true
		}
	}
	if !found {
		t.Error("cancelled appointment should free its slot")
	}

	if _, err := st.InvoiceByAppointment(ctx, appt.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("invoice should be gone with the appointment, got %v", err)
	}
}

func TestStatusTransitions(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	slot := openSlot(t, svc, 24)
	pkg := createPackage(t, svc)
	appt, _ := svc.Book(ctx, client, photog, slot.ID, pkg.ID)

	// completing a requested appointment is forbidden
	if err := svc.Complete(ctx, photog, appt.ID); !errors.Is(err, store.ErrInvalidState) {
		t.Errorf("complete from requested: expected ErrInvalidState, got %v", err)
	}

	if err := svc.Confirm(ctx, photog, appt.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	// re-confirming is a no-op
	if err := svc.Confirm(ctx, photog, appt.ID); err != nil {
		t.Errorf("re-confirm should be a no-op, got %v", err)
	}

	if err := svc.Complete(ctx, photog, appt.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	// re-completing is a no-op
	if err := svc.Complete(ctx, photog, appt.ID); err != nil {
		t.Errorf("re-complete should be a no-op, got %v", err)
	}
	// a completed appointment cannot drop back to confirmed
	if err := svc.Confirm(ctx, photog, appt.ID); !errors.Is(err, store.ErrInvalidState) {
		t.Errorf("confirm after complete: expected ErrInvalidState, got %v", err)
	}
}

func TestOwnershipChecks(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	slot := openSlot(t, svc, 24)
	pkg := createPackage(t, svc)
	appt, _ := svc.Book(ctx, client, photog, slot.ID, pkg.ID)

	if err := svc.Confirm(ctx, "other-photog@test.com", appt.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign confirm: expected ErrForbidden, got %v", err)
	}
	if err := svc.Cancel(ctx, "stranger@test.com", appt.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign cancel: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Invoice(ctx, "stranger@test.com", appt.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign invoice: expected ErrForbidden, got %v", err)
	}
}

func TestInvoiceIdempotent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	slot := openSlot(t, svc, 24)
	pkg := createPackage(t, svc)
	appt, _ := svc.Book(ctx, client, photog, slot.ID, pkg.ID)

	first, err := svc.Invoice(ctx, client, appt.ID)
	if err != nil {
		t.Fatalf("first invoice: %v", err)
	}
	second, err := svc.Invoice(ctx, photog, appt.ID)
	if err != nil {
		t.Fatalf("second invoice: %v", err)
	}
	if first.ID != second.ID || first.TotalCents != second.TotalCents {
		t.Errorf("invoice not idempotent: %+v vs %+v", first, second)
	}
}

func TestFeedbackGating(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	slot := openSlot(t, svc, 24)
	pkg := createPackage(t, svc)
	appt, _ := svc.Book(ctx, client, photog, slot.ID, pkg.ID)

	if _, err := svc.LeaveFeedback(ctx, client, appt.ID, "too early"); !errors.Is(err, ErrNotCompleted) {
		t.Errorf("feedback before completion: expected ErrNotCompleted, got %v", err)
	}

	svc.Confirm(ctx, photog, appt.ID)
	svc.Complete(ctx, photog, appt.ID)

	if _, err := svc.LeaveFeedback(ctx, "stranger@test.com", appt.ID, "nice"); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign feedback: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.LeaveFeedback(ctx, client, appt.ID, ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty feedback: expected ErrInvalid, got %v", err)
	}
	if _, err := svc.LeaveFeedback(ctx, client, appt.ID, "all good"); err != nil {
		t.Errorf("valid feedback: %v", err)
	}
}

func TestRemoveSlot(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	free := openSlot(t, svc, 24)
	if err := svc.RemoveSlot(ctx, photog, free.ID); err != nil {
		t.Fatalf("remove open slot: %v", err)
	}

	booked := openSlot(t, svc, 48)
	pkg := createPackage(t, svc)
	svc.Book(ctx, client, photog, booked.ID, pkg.ID)

	if err := svc.RemoveSlot(ctx, photog, booked.ID); !errors.Is(err, store.ErrInUse) {
		t.Errorf("remove booked slot: expected ErrInUse, got %v", err)
	}

	other := openSlot(t, svc, 72)
	if err := svc.RemoveSlot(ctx, "other-photog@test.com", other.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("foreign slot delete: expected ErrNotFound, got %v", err)
	}
}

func TestConcurrentBooking(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	slot := openSlot(t, svc, 24)
	pkg := createPackage(t, svc)

	const n = 10
	var wg sync.WaitGroup
	results := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(ctx, client, photog, slot.ID, pkg.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	conflicts := 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, store.ErrSlotTaken):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes)
	}
	if conflicts != n-1 {
		t.Errorf("expected %d conflicts, got %d", n-1, conflicts)
	}
}
