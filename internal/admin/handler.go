package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nananom-farms/backend/internal/auth"
	"github.com/nananom-farms/backend/internal/authz"
	"github.com/nananom-farms/backend/internal/platform/httpx"
)

// Handler exposes the admin panel endpoints. Every endpoint requires a
// staff principal.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	accounts  *auth.Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, accounts *auth.Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		accounts:  accounts,
		validator: validator.New(),
	}
}

func (h *Handler) requireStaff(w http.ResponseWriter, r *http.Request) (authz.Principal, bool) {
	p := authz.PrincipalFromContext(r.Context())
	if err := authz.Authorize(p, authz.ActionAdminPanel); err != nil {
		httpx.RespondError(w, err)
		return p, false
	}
	return p, true
}

type dashboardData struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	UserRole string `json:"user_role"`
	Stats    Stats  `json:"stats"`
}

// Dashboard handles GET /admin/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	p, ok := h.requireStaff(w, r)
	if !ok {
		return
	}
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Success(w, http.StatusOK, "", dashboardData{
		Message:  "Welcome to the Admin Dashboard!",
		UserID:   p.UserID,
		UserRole: p.RoleName,
		Stats:    stats,
	})
}

type registerPayload struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	RoleID      string `json:"roleId" validate:"required"`
}

type createdUser struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
	UserRole  string `json:"user_role"`
}

// RegisterUser handles POST /api/admin/register. Staff may create users
// of any role except that only Administrators may create Administrators.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	p, ok := h.requireStaff(w, r)
	if !ok {
		return
	}

	var payload registerPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	payload.FirstName = strings.TrimSpace(payload.FirstName)
	payload.LastName = strings.TrimSpace(payload.LastName)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.PhoneNumber = strings.TrimSpace(payload.PhoneNumber)
	payload.RoleID = strings.TrimSpace(payload.RoleID)

	if err := h.validator.Struct(payload); err != nil {
		httpx.Error(w, http.StatusBadRequest, registerValidationMessage(err))
		return
	}

	if h.accounts.UserExists(r.Context(), payload.Email) {
		httpx.Error(w, http.StatusConflict, "Email already registered.")
		return
	}

	role, err := h.accounts.FindRoleByID(r.Context(), payload.RoleID)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid role selected.")
		return
	}
	if role.Name == authz.RoleAdministrator {
		if err := authz.Authorize(p, authz.ActionCreateAdministrator); err != nil {
			httpx.Error(w, http.StatusForbidden, "You do not have permission to create Administrator users.")
			return
		}
	}

	user, err := h.accounts.Register(r.Context(), auth.RegisterInput{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Email:       payload.Email,
		Password:    payload.Password,
		PhoneNumber: payload.PhoneNumber,
		RoleID:      role.ID,
	})
	if err != nil {
		if errors.Is(err, httpx.ErrDuplicate) {
			httpx.Error(w, http.StatusConflict, "Email already registered.")
			return
		}
		h.logger.Error("create user", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Failed to create user.")
		return
	}

	httpx.JSON(w, http.StatusCreated, createdUser{
		Status:    "success",
		Message:   "User created successfully.",
		UserID:    user.ID,
		UserEmail: user.Email,
		UserRole:  role.Name,
	})
}

type userView struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	RoleName    string `json:"roleName"`
	CreatedAt   string `json:"createdAt"`
}

// ListUsers handles GET /admin/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireStaff(w, r); !ok {
		return
	}

	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	roleNames := map[string]string{}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		name, cached := roleNames[u.RoleID]
		if !cached {
			if role, err := h.accounts.FindRoleByID(r.Context(), u.RoleID); err == nil {
				name = role.Name
			} else {
				name = "Unknown"
			}
			roleNames[u.RoleID] = name
		}
		views = append(views, userView{
			ID:          u.ID,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Email:       u.Email,
			PhoneNumber: u.PhoneNumber,
			RoleName:    name,
			CreatedAt:   u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	httpx.Success(w, http.StatusOK, "", views)
}

func registerValidationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch {
			case fe.Tag() == "required":
				return "Field '" + jsonField(fe.Field()) + "' is required."
			case fe.Field() == "Email" && fe.Tag() == "email":
				return "Invalid email format."
			case fe.Field() == "Password" && fe.Tag() == "min":
				return "Password must be at least 8 characters long."
			}
		}
	}
	return "Invalid request body."
}

func jsonField(name string) string {
	if name == "RoleID" {
		return "roleId"
	}
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
