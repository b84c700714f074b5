package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"photo-booking-api/internal/model"
)

type manageSlot struct {
	model.AvailableTime
	Booked bool `json:"booked"`
}

type manageResponse struct {
	Slots        []manageSlot        `json:"slots"`
	Appointments []model.Appointment `json:"appointments"`
}

// manageView shows the photographer their slots, flagged booked where an
// appointment references them, plus their appointments.
func (h *Handler) manageView(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	slots, err := h.store.SlotsByPhotographer(r.Context(), u.Email)
	if err != nil {
		h.fail(w, err)
		return
	}
	appts, err := h.store.AppointmentsForUser(r.Context(), u.Email)
	if err != nil {
		h.fail(w, err)
		return
	}

	booked := make(map[string]bool, len(appts))
	for _, a := range appts {
		booked[a.SlotID] = true
	}

	resp := manageResponse{Slots: []manageSlot{}, Appointments: appts}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, manageSlot{AvailableTime: s, Booked: booked[s.ID]})
	}
	if resp.Appointments == nil {
		resp.Appointments = []model.Appointment{}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) addSlot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartTime time.Time `json:"start_time"`
		EndTime   time.Time `json:"end_time"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	slot, err := h.svc.OpenSlot(r.Context(), currentUser(r).Email, req.StartTime, req.EndTime)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, slot)
}

func (h *Handler) deleteSlot(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.svc.RemoveSlot(r.Context(), currentUser(r).Email, id); err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) createPackage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PriceCents int64    `json:"price_cents"`
		Items      []string `json:"items"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	pkg, err := h.svc.CreatePackage(r.Context(), currentUser(r).Email, req.PriceCents, req.Items)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, pkg)
}

type bookViewResponse struct {
	OpenSlots []model.AvailableTime `json:"open_slots"`
	Packages  []model.Package       `json:"packages"`
}

// bookView lists what a client picks from: the photographer's open slots and
// packages. Public, no identity needed.
func (h *Handler) bookView(w http.ResponseWriter, r *http.Request) {
	photographer := mux.Vars(r)["photographer"]

	slots, err := h.store.OpenSlots(r.Context(), photographer)
	if err != nil {
		h.fail(w, err)
		return
	}
	packages, err := h.store.PackagesByPhotographer(r.Context(), photographer)
	if err != nil {
		h.fail(w, err)
		return
	}
	if slots == nil {
		slots = []model.AvailableTime{}
	}
	if packages == nil {
		packages = []model.Package{}
	}
	h.writeJSON(w, http.StatusOK, bookViewResponse{OpenSlots: slots, Packages: packages})
}

func (h *Handler) book(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SlotID    string `json:"slot_id"`
		PackageID string `json:"package_id"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	appt, err := h.svc.Book(r.Context(), currentUser(r).Email, mux.Vars(r)["photographer"], req.SlotID, req.PackageID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, appt)
}

func (h *Handler) listAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.store.AppointmentsForUser(r.Context(), currentUser(r).Email)
	if err != nil {
		h.fail(w, err)
		return
	}
	if appts == nil {
		appts = []model.Appointment{}
	}
	h.writeJSON(w, http.StatusOK, appts)
}

func (h *Handler) confirmAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.svc.Confirm(r.Context(), currentUser(r).Email, id); err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": string(model.StatusConfirmed)})
}

func (h *Handler) completeAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.svc.Complete(r.Context(), currentUser(r).Email, id); err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": string(model.StatusCompleted)})
}

func (h *Handler) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.svc.Cancel(r.Context(), currentUser(r).Email, id); err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *Handler) invoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Invoice(r.Context(), currentUser(r).Email, mux.Vars(r)["appointment_id"])
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, inv)
}

func (h *Handler) leaveFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	fb, err := h.svc.LeaveFeedback(r.Context(), currentUser(r).Email, mux.Vars(r)["appointment_id"], req.Message)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, fb)
}

func (h *Handler) getFeedback(w http.ResponseWriter, r *http.Request) {
	fb, err := h.svc.Feedback(r.Context(), currentUser(r).Email, mux.Vars(r)["appointment_id"])
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, fb)
}
