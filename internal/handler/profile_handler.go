package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"photo-booking-api/internal/model"
	"photo-booking-api/internal/store"
)

func (h *Handler) listPhotographers(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListPhotographers(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	if list == nil {
		list = []model.User{}
	}
	h.writeJSON(w, http.StatusOK, list)
}

type profileResponse struct {
	Photographer *model.User           `json:"photographer"`
	Albums       []model.Album         `json:"albums"`
	Packages     []model.Package       `json:"packages"`
	OpenSlots    []model.AvailableTime `json:"open_slots"`
}

// photographerProfile is the public profile page: bio, gallery, packages and
// the slots still open for booking.
func (h *Handler) photographerProfile(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	u, err := h.store.UserByEmail(r.Context(), email)
	if err != nil || u.Type != model.UserTypePhotographer {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			h.fail(w, err)
			return
		}
		h.errorJSON(w, http.StatusNotFound, "no such photographer")
		return
	}

	albums, err := h.store.AlbumsByPhotographer(r.Context(), email)
	if err != nil {
		h.fail(w, err)
		return
	}
	packages, err := h.store.PackagesByPhotographer(r.Context(), email)
	if err != nil {
		h.fail(w, err)
		return
	}
	slots, err := h.store.OpenSlots(r.Context(), email)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, profileResponse{
		Photographer: u,
		Albums:       albums,
		Packages:     packages,
		OpenSlots:    slots,
	})
}

func (h *Handler) editAbout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		About string `json:"about"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	u := currentUser(r)
	if err := h.store.UpdateAbout(r.Context(), u.Email, req.About); err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"about": req.About})
}

func (h *Handler) addAlbum(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		ReleaseType string `json:"release_type"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		h.errorJSON(w, http.StatusBadRequest, "name required")
		return
	}

	a := &model.Album{
		PhotographerEmail: currentUser(r).Email,
		Name:              req.Name,
		ReleaseType:       req.ReleaseType,
	}
	if err := h.store.UpsertAlbum(r.Context(), a); err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) deleteAlbum(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.store.DeleteAlbum(r.Context(), currentUser(r).Email, req.Name); err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) addPhoto(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AlbumName string `json:"album_name"`
		Pathname  string `json:"pathname"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.AlbumName == "" || req.Pathname == "" {
		h.errorJSON(w, http.StatusBadRequest, "album_name and pathname required")
		return
	}

	p := &model.Photo{
		ID:                uuid.New().String(),
		PhotographerEmail: currentUser(r).Email,
		AlbumName:         req.AlbumName,
		Pathname:          req.Pathname,
	}
	if err := h.store.AddPhoto(r.Context(), p); err != nil {
		// FK failure means the album does not exist
		if errors.Is(err, store.ErrInUse) {
			h.errorJSON(w, http.StatusNotFound, "no such album")
			return
		}
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, p)
}
