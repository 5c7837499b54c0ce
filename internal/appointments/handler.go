package appointments

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nananom-farms/backend/internal/authz"
	"github.com/nananom-farms/backend/internal/platform/httpx"
)

// Handler exposes appointment booking over HTTP. Every endpoint requires
// an authenticated principal.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// List handles GET /api/appointments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if !p.Authenticated() {
		httpx.Error(w, http.StatusUnauthorized, "Authentication required to view appointments.")
		return
	}
	items, err := h.service.List(r.Context(), p)
	if err != nil {
		h.respondErr(w, err, "list appointments")
		return
	}
	if items == nil {
		items = []Detail{}
	}
	httpx.Success(w, http.StatusOK, "", items)
}

// Get handles GET /api/appointments/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if !p.Authenticated() {
		httpx.Error(w, http.StatusUnauthorized, "Authentication required to view an appointment.")
		return
	}
	d, err := h.service.Get(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		h.respondErr(w, err, "get appointment")
		return
	}
	httpx.Success(w, http.StatusOK, "", d)
}

type createPayload struct {
	UserID          string `json:"userId"`
	ServiceID       string `json:"serviceId"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

// Create handles POST /api/appointments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if !p.Authenticated() {
		httpx.Error(w, http.StatusUnauthorized, "Authentication required to book an appointment.")
		return
	}
	var payload createPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil ||
		payload.ServiceID == "" || payload.AppointmentDate == "" || payload.AppointmentTime == "" {
		httpx.Error(w, http.StatusBadRequest, "Invalid input. Service ID, date, and time are required.")
		return
	}
	d, err := h.service.Create(r.Context(), p, CreateInput{
		UserID:          payload.UserID,
		ServiceID:       payload.ServiceID,
		AppointmentDate: payload.AppointmentDate,
		AppointmentTime: payload.AppointmentTime,
		Status:          payload.Status,
		Notes:           payload.Notes,
	})
	if err != nil {
		h.respondErr(w, err, "create appointment")
		return
	}
	httpx.Success(w, http.StatusCreated, "Appointment booked successfully.", d)
}

type updatePayload struct {
	UserID          *string `json:"userId"`
	ServiceID       *string `json:"serviceId"`
	AppointmentDate *string `json:"appointmentDate"`
	AppointmentTime *string `json:"appointmentTime"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
}

// Update handles PUT /api/appointments/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if !p.Authenticated() {
		httpx.Error(w, http.StatusUnauthorized, "Authentication required to update an appointment.")
		return
	}
	var payload updatePayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid input. No data provided for update or JSON is invalid.")
		return
	}
	d, err := h.service.Update(r.Context(), p, chi.URLParam(r, "id"), UpdateInput{
		UserID:          payload.UserID,
		ServiceID:       payload.ServiceID,
		AppointmentDate: payload.AppointmentDate,
		AppointmentTime: payload.AppointmentTime,
		Status:          payload.Status,
		Notes:           payload.Notes,
	})
	if err != nil {
		h.respondErr(w, err, "update appointment")
		return
	}
	httpx.Success(w, http.StatusOK, "Appointment updated successfully.", d)
}

// Delete handles DELETE /api/appointments/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if !p.Authenticated() {
		httpx.Error(w, http.StatusUnauthorized, "Authentication required to delete an appointment.")
		return
	}
	if err := h.service.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		h.respondErr(w, err, "delete appointment")
		return
	}
	httpx.Success(w, http.StatusOK, "Appointment deleted successfully.", nil)
}

func (h *Handler) respondErr(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, httpx.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Appointment not found.")
		return
	}
	var se *httpx.StatusError
	if !errors.As(err, &se) && !errors.Is(err, httpx.ErrForbidden) && !errors.Is(err, httpx.ErrUnauthorized) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
