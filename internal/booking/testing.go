package booking

import (
	"context"
	"sync"
	"time"

	"photo-booking-api/internal/model"
	"photo-booking-api/internal/store"
)

// MemStore is an in-memory implementation of the persistence surface with the
// same semantics as the Postgres store, used by the lifecycle and handler
// tests. Slices keep insertion order; the mutex makes multi-step writes
// atomic the way the real store's transactions do.
type MemStore struct {
	mu sync.Mutex

	users        []model.User
	slots        []model.AvailableTime
	packages     []model.Package
	appointments []model.Appointment
	invoices     []model.Invoice
	albums       []model.Album
	photos       []model.Photo
	contacts     []model.ContactForm
	feedback     []model.FeedbackForm
}

func NewMemStore() *MemStore { return &MemStore{} }

// ----- users -----

func (m *MemStore) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users = append(m.users, *u)
	return nil
}

func (m *MemStore) UserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemStore) ListPhotographers(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.User
	for _, u := range m.users {
		if u.Type == model.UserTypePhotographer {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MemStore) UpdateAbout(_ context.Context, email, about string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			m.users[i].About = about
			m.users[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return store.ErrNotFound
}

// ----- slots -----

func (m *MemStore) CreateSlot(_ context.Context, t *model.AvailableTime) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.CreatedAt = time.Now()
	m.slots = append(m.slots, *t)
	return nil
}

func (m *MemStore) SlotByID(_ context.Context, id string) (*model.AvailableTime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.slots {
		if t.ID == id {
			out := t
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemStore) OpenSlots(_ context.Context, photographer string) ([]model.AvailableTime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AvailableTime
	for _, t := range m.slots {
		if t.PhotographerEmail == photographer && !m.slotTaken(t.ID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MemStore) SlotsByPhotographer(_ context.Context, photographer string) ([]model.AvailableTime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AvailableTime
	for _, t := range m.slots {
		if t.PhotographerEmail == photographer {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MemStore) DeleteSlot(_ context.Context, id, photographer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.slots {
		if t.ID == id && t.PhotographerEmail == photographer {
			if m.slotTaken(id) {
				return store.ErrInUse
			}
			m.slots = append(m.slots[:i], m.slots[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// caller holds mu
func (m *MemStore) slotTaken(id string) bool {
	for _, a := range m.appointments {
		if a.SlotID == id {
			return true
		}
	}
	return false
}

// ----- packages -----

func (m *MemStore) CreatePackage(_ context.Context, p *model.Package) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.CreatedAt = time.Now()
	m.packages = append(m.packages, *p)
	return nil
}

func (m *MemStore) PackageByID(_ context.Context, id string) (*model.Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.packages {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemStore) PackagesByPhotographer(_ context.Context, photographer string) ([]model.Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Package
	for _, p := range m.packages {
		if p.PhotographerEmail == photographer {
			out = append(out, p)
		}
	}
	return out, nil
}

// ----- appointments -----

func (m *MemStore) BookAppointment(_ context.Context, a *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	for _, t := range m.slots {
		if t.ID == a.SlotID && t.PhotographerEmail == a.PhotographerEmail {
			found = true
			break
		}
	}
	if !found {
		return store.ErrNotFound
	}
	if m.slotTaken(a.SlotID) {
		return store.ErrSlotTaken
	}

	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.appointments = append(m.appointments, *a)
	return nil
}

func (m *MemStore) AppointmentByID(_ context.Context, id string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appointments {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemStore) AppointmentsForUser(_ context.Context, email string) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Appointment
	for _, a := range m.appointments {
		if a.PhotographerEmail == email || a.ClientEmail == email {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemStore) SetAppointmentStatus(_ context.Context, id string, from []model.AppointmentStatus, to model.AppointmentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.appointments {
		if m.appointments[i].ID != id {
			continue
		}
		for _, st := range from {
			if m.appointments[i].Status == st {
				m.appointments[i].Status = to
				m.appointments[i].UpdatedAt = time.Now()
				return nil
			}
		}
		return store.ErrInvalidState
	}
	return store.ErrNotFound
}

func (m *MemStore) DeleteAppointment(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.appointments {
		if a.ID == id {
			m.appointments = append(m.appointments[:i], m.appointments[i+1:]...)
			// cascade, as the schema's foreign keys do
			for j := len(m.invoices) - 1; j >= 0; j-- {
				if m.invoices[j].AppointmentID == id {
					m.invoices = append(m.invoices[:j], m.invoices[j+1:]...)
				}
			}
			for j := len(m.feedback) - 1; j >= 0; j-- {
				if m.feedback[j].AppointmentID == id {
					m.feedback = append(m.feedback[:j], m.feedback[j+1:]...)
				}
			}
			return nil
		}
	}
	return store.ErrNotFound
}

// ----- invoices -----

func (m *MemStore) CreateInvoice(_ context.Context, inv *model.Invoice) (*model.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.invoices {
		if e.AppointmentID == inv.AppointmentID {
			out := e
			return &out, nil
		}
	}
	inv.CreatedAt = time.Now()
	m.invoices = append(m.invoices, *inv)
	out := *inv
	return &out, nil
}

func (m *MemStore) InvoiceByAppointment(_ context.Context, appointmentID string) (*model.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.invoices {
		if e.AppointmentID == appointmentID {
			out := e
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

// ----- albums / photos -----

func (m *MemStore) UpsertAlbum(_ context.Context, a *model.Album) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.albums {
		if m.albums[i].PhotographerEmail == a.PhotographerEmail && m.albums[i].Name == a.Name {
			m.albums[i].ReleaseType = a.ReleaseType
			return nil
		}
	}
	a.CreatedAt = time.Now()
	m.albums = append(m.albums, *a)
	return nil
}

func (m *MemStore) DeleteAlbum(_ context.Context, photographer, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.albums {
		if a.PhotographerEmail == photographer && a.Name == name {
			m.albums = append(m.albums[:i], m.albums[i+1:]...)
			for j := len(m.photos) - 1; j >= 0; j-- {
				if m.photos[j].PhotographerEmail == photographer && m.photos[j].AlbumName == name {
					m.photos = append(m.photos[:j], m.photos[j+1:]...)
				}
			}
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *MemStore) AlbumsByPhotographer(_ context.Context, photographer string) ([]model.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Album
	for _, a := range m.albums {
		if a.PhotographerEmail != photographer {
			continue
		}
		for _, p := range m.photos {
			if p.AlbumName == a.Name && p.PhotographerEmail == photographer {
				a.Photos = append(a.Photos, p)
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *MemStore) AddPhoto(_ context.Context, p *model.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := false
	for _, a := range m.albums {
		if a.PhotographerEmail == p.PhotographerEmail && a.Name == p.AlbumName {
			found = true
			break
		}
	}
	if !found {
		return store.ErrInUse
	}
	m.photos = append(m.photos, *p)
	return nil
}

func (m *MemStore) PhotosByAlbum(_ context.Context, photographer, album string) ([]model.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Photo
	for _, p := range m.photos {
		if p.PhotographerEmail == photographer && p.AlbumName == album {
			out = append(out, p)
		}
	}
	return out, nil
}

// ----- forms -----

func (m *MemStore) CreateContactForm(_ context.Context, f *model.ContactForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.CreatedAt = time.Now()
	m.contacts = append(m.contacts, *f)
	return nil
}

func (m *MemStore) ContactFormsForPhotographer(_ context.Context, photographer string) ([]model.ContactForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ContactForm
	for _, f := range m.contacts {
		if f.PhotographerEmail == photographer {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *MemStore) CreateFeedback(_ context.Context, f *model.FeedbackForm) (*model.FeedbackForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.feedback {
		if e.AppointmentID == f.AppointmentID {
			out := e
			return &out, nil
		}
	}
	f.CreatedAt = time.Now()
	m.feedback = append(m.feedback, *f)
	out := *f
	return &out, nil
}

func (m *MemStore) FeedbackByAppointment(_ context.Context, appointmentID string) (*model.FeedbackForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.feedback {
		if e.AppointmentID == appointmentID {
			out := e
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

var _ Store = (*MemStore)(nil)
