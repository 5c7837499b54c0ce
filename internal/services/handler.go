package services

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nananom-farms/backend/internal/authz"
	"github.com/nananom-farms/backend/internal/platform/httpx"
)

// Handler exposes the catalog over HTTP. Reads are public; writes are
// restricted to staff by the authorization policy.
type Handler struct {
	logger  *slog.Logger
	catalog *Catalog
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, catalog *Catalog) *Handler {
	return &Handler{logger: logger, catalog: catalog}
}

// List handles GET /api/services.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("list services", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Service{}
	}
	httpx.Success(w, http.StatusOK, "", items)
}

// Get handles GET /api/services/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	svc, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.Success(w, http.StatusOK, "", svc)
}

type createPayload struct {
	ServiceName string `json:"serviceName"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// Create handles POST /api/admin/services.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if err := authz.Authorize(p, authz.ActionServiceManage); err != nil {
		httpx.RespondError(w, err)
		return
	}

	var payload createPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Service name and description are required.")
		return
	}
	svc, err := h.catalog.Create(r.Context(), CreateInput{
		ServiceName: payload.ServiceName,
		Description: payload.Description,
		IsActive:    payload.IsActive,
	})
	if err != nil {
		if errors.Is(err, httpx.ErrValidation) {
			httpx.Error(w, http.StatusBadRequest, "Service name and description are required.")
			return
		}
		h.logger.Error("create service", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, http.StatusCreated, "Service created successfully.", svc)
}

type updatePayload struct {
	ServiceName *string `json:"serviceName"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// Update handles PUT /api/admin/services/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if err := authz.Authorize(p, authz.ActionServiceManage); err != nil {
		httpx.RespondError(w, err)
		return
	}

	var payload updatePayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	svc, err := h.catalog.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
		ServiceName: payload.ServiceName,
		Description: payload.Description,
		IsActive:    payload.IsActive,
	})
	if err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.Success(w, http.StatusOK, "Service updated successfully.", svc)
}

// Delete handles DELETE /api/admin/services/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if err := authz.Authorize(p, authz.ActionServiceManage); err != nil {
		httpx.RespondError(w, err)
		return
	}

	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondErr(w, err)
		return
	}
	httpx.Success(w, http.StatusOK, "Service deleted successfully.", nil)
}

func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	if errors.Is(err, httpx.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Service not found.")
		return
	}
	h.logger.Error("catalog request", slog.Any("error", err))
	httpx.RespondError(w, err)
}
