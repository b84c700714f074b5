package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"photo-booking-api/internal/model"
	"photo-booking-api/internal/store"
)

// sendContactForm takes a message for a photographer from anyone, logged in
// or not.
func (h *Handler) sendContactForm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SenderName  string `json:"sender_name"`
		SenderEmail string `json:"sender_email"`
		Message     string `json:"message"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.SenderName == "" || req.SenderEmail == "" || req.Message == "" {
		h.errorJSON(w, http.StatusBadRequest, "sender_name, sender_email and message required")
		return
	}

	photographer := mux.Vars(r)["photographer"]
	u, err := h.store.UserByEmail(r.Context(), photographer)
	if err != nil || u.Type != model.UserTypePhotographer {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			h.fail(w, err)
			return
		}
		h.errorJSON(w, http.StatusNotFound, "no such photographer")
		return
	}

	f := &model.ContactForm{
		ID:                uuid.New().String(),
		PhotographerEmail: photographer,
		SenderName:        req.SenderName,
		SenderEmail:       req.SenderEmail,
		Message:           req.Message,
	}
	if err := h.store.CreateContactForm(r.Context(), f); err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, f)
}

func (h *Handler) contactInbox(w http.ResponseWriter, r *http.Request) {
	forms, err := h.store.ContactFormsForPhotographer(r.Context(), currentUser(r).Email)
	if err != nil {
		h.fail(w, err)
		return
	}
	if forms == nil {
		forms = []model.ContactForm{}
	}
	h.writeJSON(w, http.StatusOK, forms)
}
