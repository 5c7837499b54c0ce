package enquiries

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nananom-farms/backend/internal/authz"
	"github.com/nananom-farms/backend/internal/platform/httpx"
)

// Handler exposes enquiries over HTTP. Submission is public; everything
// else requires an authenticated principal.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// List handles GET /api/enquiries.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if !p.Authenticated() {
		httpx.Error(w, http.StatusUnauthorized, "Authentication required to view enquiries.")
		return
	}
	items, err := h.service.List(r.Context(), p)
	if err != nil {
		h.respondErr(w, err, "list enquiries")
		return
	}
	if items == nil {
		items = []Enquiry{}
	}
	httpx.Success(w, http.StatusOK, "", items)
}

// Get handles GET /api/enquiries/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if !p.Authenticated() {
		httpx.Error(w, http.StatusUnauthorized, "Authentication required to view an enquiry.")
		return
	}
	e, err := h.service.Get(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		h.respondErr(w, err, "get enquiry")
		return
	}
	httpx.Success(w, http.StatusOK, "", e)
}

type createPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

// Create handles POST /api/create_enquiries. No authentication required;
// an authenticated principal is linked as the owner.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil ||
		payload.Name == "" || payload.Email == "" || payload.Message == "" {
		httpx.Error(w, http.StatusBadRequest, "Invalid input. Name, email, and message are required.")
		return
	}
	p := authz.PrincipalFromContext(r.Context())
	e, err := h.service.Create(r.Context(), p, CreateInput{
		Name:        payload.Name,
		Email:       payload.Email,
		PhoneNumber: payload.PhoneNumber,
		Subject:     payload.Subject,
		Message:     payload.Message,
	})
	if err != nil {
		h.respondErr(w, err, "create enquiry")
		return
	}
	httpx.Success(w, http.StatusCreated, "Enquiry submitted successfully.", e)
}

type updatePayload struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Subject     *string `json:"subject"`
	Message     *string `json:"message"`
	Status      *string `json:"status"`
}

// Update handles PUT /api/enquiries/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if !p.Authenticated() {
		httpx.Error(w, http.StatusUnauthorized, "Authentication required to update an enquiry.")
		return
	}
	var payload updatePayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid input. No data provided for update or JSON is invalid.")
		return
	}
	e, err := h.service.Update(r.Context(), p, chi.URLParam(r, "id"), UpdateInput{
		Name:        payload.Name,
		Email:       payload.Email,
		PhoneNumber: payload.PhoneNumber,
		Subject:     payload.Subject,
		Message:     payload.Message,
		Status:      payload.Status,
	})
	if err != nil {
		h.respondErr(w, err, "update enquiry")
		return
	}
	httpx.Success(w, http.StatusOK, "Enquiry updated successfully.", e)
}

// Delete handles DELETE /api/enquiries/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if !p.Authenticated() {
		httpx.Error(w, http.StatusUnauthorized, "Authentication required to delete an enquiry.")
		return
	}
	if err := h.service.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		h.respondErr(w, err, "delete enquiry")
		return
	}
	httpx.Success(w, http.StatusOK, "Enquiry deleted successfully.", nil)
}

func (h *Handler) respondErr(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, httpx.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Enquiry not found.")
		return
	}
	var se *httpx.StatusError
	if !errors.As(err, &se) && !errors.Is(err, httpx.ErrForbidden) && !errors.Is(err, httpx.ErrUnauthorized) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
