// Package handler exposes the HTTP surface: registration and login, the
// photographer directory and galleries, availability management, the booking
// lifecycle, invoices, contact and feedback forms.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"photo-booking-api/internal/booking"
	"photo-booking-api/internal/middleware"
	"photo-booking-api/internal/model"
	"photo-booking-api/internal/store"
)

// Store is everything the handlers read and write. The lifecycle subset lives
// in booking.Store; the rest is plain per-entity CRUD.
type Store interface {
	booking.Store

	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	ListPhotographers(ctx context.Context) ([]model.User, error)
	UpdateAbout(ctx context.Context, email, about string) error

	UpsertAlbum(ctx context.Context, a *model.Album) error
	DeleteAlbum(ctx context.Context, photographer, name string) error
	AlbumsByPhotographer(ctx context.Context, photographer string) ([]model.Album, error)
	AddPhoto(ctx context.Context, p *model.Photo) error
	PhotosByAlbum(ctx context.Context, photographer, album string) ([]model.Photo, error)

	CreateContactForm(ctx context.Context, f *model.ContactForm) error
	ContactFormsForPhotographer(ctx context.Context, photographer string) ([]model.ContactForm, error)
}

type Handler struct {
	store  Store
	svc    *booking.Service
	secret string
	log    zerolog.Logger
}

func New(st Store, svc *booking.Service, secret string, log zerolog.Logger) *Handler {
	return &Handler{store: st, svc: svc, secret: secret, log: log.With().Str("component", "handler").Logger()}
}

// Router wires every route with its gate. Identity resolution runs before
// every request; the per-IP limiter covers register and login only.
func (h *Handler) Router(rl *middleware.RateLimiter) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLog(h.log))
	r.Use(middleware.Identity(h.store, h.secret))

	photographer := middleware.RequireType(model.UserTypePhotographer)
	client := middleware.RequireType(model.UserTypeClient)
	user := middleware.RequireUser

	// auth
	r.Handle("/register", rl.Limit(http.HandlerFunc(h.register))).Methods(http.MethodPost)
	r.Handle("/login", rl.Limit(http.HandlerFunc(h.login))).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.logout).Methods(http.MethodPost)

	// directory
	r.HandleFunc("/", h.listPhotographers).Methods(http.MethodGet)
	r.HandleFunc("/photographers", h.listPhotographers).Methods(http.MethodGet)
	r.HandleFunc("/photographers/{email}", h.photographerProfile).Methods(http.MethodGet)

	// photographer management
	r.Handle("/manage", photographer(http.HandlerFunc(h.manageView))).Methods(http.MethodGet)
	r.Handle("/manage", photographer(http.HandlerFunc(h.addSlot))).Methods(http.MethodPost)
	r.Handle("/available-time/delete/{id}", photographer(http.HandlerFunc(h.deleteSlot))).Methods(http.MethodPost)
	r.Handle("/packages", photographer(http.HandlerFunc(h.createPackage))).Methods(http.MethodPost)
	r.Handle("/edit_about", photographer(http.HandlerFunc(h.editAbout))).Methods(http.MethodPost)
	r.Handle("/add_album", photographer(http.HandlerFunc(h.addAlbum))).Methods(http.MethodPost)
	r.Handle("/delete_album", photographer(http.HandlerFunc(h.deleteAlbum))).Methods(http.MethodPost)
	r.Handle("/add_photo", photographer(http.HandlerFunc(h.addPhoto))).Methods(http.MethodPost)
	r.Handle("/contact", photographer(http.HandlerFunc(h.contactInbox))).Methods(http.MethodGet)

	// booking lifecycle
	r.HandleFunc("/book/{photographer}", h.bookView).Methods(http.MethodGet)
	r.Handle("/book/{photographer}", client(http.HandlerFunc(h.book))).Methods(http.MethodPost)
	r.Handle("/appointments", user(http.HandlerFunc(h.listAppointments))).Methods(http.MethodGet)
	r.Handle("/confirm_appt/{id}", photographer(http.HandlerFunc(h.confirmAppointment))).Methods(http.MethodPost)
	r.Handle("/complete_appt/{id}", photographer(http.HandlerFunc(h.completeAppointment))).Methods(http.MethodPost)
	r.Handle("/delete_appt/{id}", user(http.HandlerFunc(h.deleteAppointment))).Methods(http.MethodPost)
	r.Handle("/invoice/{appointment_id}", user(http.HandlerFunc(h.invoice))).Methods(http.MethodGet)
	r.Handle("/feedback/{appointment_id}", user(http.HandlerFunc(h.getFeedback))).Methods(http.MethodGet)
	r.Handle("/feedback/{appointment_id}", client(http.HandlerFunc(h.leaveFeedback))).Methods(http.MethodPost)

	// contact
	r.HandleFunc("/contact/{photographer}", h.sendContactForm).Methods(http.MethodPost)

	return r
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (h *Handler) errorJSON(w http.ResponseWriter, code int, msg string) {
	h.writeJSON(w, code, map[string]string{"error": msg})
}

// decode reads the JSON body; on failure it answers 400 and returns false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.errorJSON(w, http.StatusBadRequest, "malformed json body")
		return false
	}
	return true
}

// fail maps domain and storage errors onto status codes: validation 400,
// foreign appointment 403, missing rows 404, conflicts 409, the rest 500.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrInvalid):
		h.errorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrForbidden):
		h.errorJSON(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrNotFound):
		h.errorJSON(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrSlotTaken),
		errors.Is(err, store.ErrInvalidState),
		errors.Is(err, store.ErrInUse),
		errors.Is(err, booking.ErrNotCompleted):
		h.errorJSON(w, http.StatusConflict, err.Error())
	default:
		h.log.Error().Err(err).Msg("request failed")
		h.errorJSON(w, http.StatusInternalServerError, "internal error")
	}
}

// currentUser returns the identity the middleware resolved. Routes calling it
// sit behind a gate, so the user is present.
func currentUser(r *http.Request) *model.User {
	u, _ := middleware.UserFrom(r.Context())
	return u
}
