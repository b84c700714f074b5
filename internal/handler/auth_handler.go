package handler

import (
	"errors"
	"net/http"

	"photo-booking-api/internal/auth"
	"photo-booking-api/internal/middleware"
	"photo-booking-api/internal/model"
	"photo-booking-api/internal/store"
)

const sessionMaxAge = 24 * 60 * 60

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Type        string `json:"type"`
	About       string `json:"about"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" || req.PhoneNumber == "" {
		h.errorJSON(w, http.StatusBadRequest, "email, password, name and phone_number required")
		return
	}
	if len(req.Password) < 8 {
		h.errorJSON(w, http.StatusBadRequest, "password too short")
		return
	}
	utype := model.UserType(req.Type)
	if !utype.Valid() {
		h.errorJSON(w, http.StatusBadRequest, "type must be photographer or client")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}

	u := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		PhoneNumber:  req.PhoneNumber,
		Type:         utype,
		About:        req.About,
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			h.errorJSON(w, http.StatusConflict, "email already registered")
			return
		}
		h.fail(w, err)
		return
	}

	if err := h.setSession(w, u); err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		h.errorJSON(w, http.StatusBadRequest, "email and password required")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		// unknown email and wrong password answer alike
		h.errorJSON(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := h.setSession(w, u); err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, u)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) setSession(w http.ResponseWriter, u *model.User) error {
	tok, err := auth.MakeToken(u.Email, u.Type, h.secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   sessionMaxAge,
	})
	return nil
}
