package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nananom-farms/backend/internal/authz"
	"github.com/nananom-farms/backend/internal/platform/httpx"
)

// TokenIssuer signs principal-bearing tokens. Implemented by token.Codec.
type TokenIssuer interface {
	Issue(userID, roleID, roleName string) (string, time.Time, error)
}

// Handler wires HTTP endpoints for registration and login flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	issuer    TokenIssuer
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, issuer TokenIssuer) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		issuer:    issuer,
		validator: validator.New(),
	}
}

type registerPayload struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    any    `json:"user,omitempty"`
}

// Register handles POST /api/register. New accounts always receive the
// Customer role; staff accounts are created through the admin API.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Error(w, http.StatusBadRequest, "All fields (firstName, lastName, email, password, phoneNumber) are required.")
		return
	}
	payload.FirstName = strings.TrimSpace(payload.FirstName)
	payload.LastName = strings.TrimSpace(payload.LastName)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.PhoneNumber = strings.TrimSpace(payload.PhoneNumber)

	if err := h.validator.Struct(payload); err != nil {
		httpx.Error(w, http.StatusBadRequest, registerValidationMessage(err))
		return
	}

	customerRole, err := h.service.FindRoleByName(r.Context(), authz.RoleCustomer)
	if err != nil {
		h.logger.Error("customer role lookup", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "System error: Customer role not configured. Please contact support.")
		return
	}

	user, err := h.service.Register(r.Context(), RegisterInput{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Email:       payload.Email,
		Password:    payload.Password,
		PhoneNumber: payload.PhoneNumber,
		RoleID:      customerRole.ID,
	})
	if err != nil {
		if errors.Is(err, httpx.ErrDuplicate) {
			httpx.Error(w, http.StatusConflict, "Email already registered.")
			return
		}
		h.logger.Error("register user", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Failed to register user.")
		return
	}

	jwt, _, err := h.issuer.Issue(user.ID, user.RoleID, customerRole.Name)
	if err != nil {
		h.logger.Error("issue token", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Failed to register user.")
		return
	}

	httpx.JSON(w, http.StatusCreated, tokenResponse{
		Status:  "success",
		Message: "User registered successfully.",
		Token:   jwt,
	})
}

// Login handles POST /api/login for any role.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil || payload.Email == "" || payload.Password == "" {
		httpx.Error(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	user, role, err := h.service.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		httpx.Error(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	jwt, _, err := h.issuer.Issue(user.ID, user.RoleID, role.Name)
	if err != nil {
		h.logger.Error("issue token", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	httpx.JSON(w, http.StatusOK, tokenResponse{
		Status:  "success",
		Message: "Login successful.",
		Token:   jwt,
	})
}

// AdminLogin handles POST /api/admin/login. Only Administrator and
// Support Agent accounts qualify; everyone else gets the same 401 as a
// wrong password.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil || payload.Email == "" || payload.Password == "" {
		httpx.Error(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	user, role, err := h.service.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil || (role.Name != authz.RoleAdministrator && role.Name != authz.RoleSupportAgent) {
		httpx.Error(w, http.StatusUnauthorized, "Invalid admin credentials or insufficient privileges.")
		return
	}

	jwt, _, err := h.issuer.Issue(user.ID, user.RoleID, role.Name)
	if err != nil {
		h.logger.Error("issue token", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	httpx.JSON(w, http.StatusOK, tokenResponse{
		Status:  "success",
		Message: "Admin login successful.",
		Token:   jwt,
		User: map[string]string{
			"id":    user.ID,
			"email": user.Email,
			"role":  role.Name,
		},
	})
}

// Logout handles GET /api/logout. Bearer tokens are not revocable server
// side; the endpoint exists for client symmetry and always succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	httpx.Success(w, http.StatusOK, "Logged out successfully.", nil)
}

func registerValidationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch {
			case fe.Field() == "Email" && fe.Tag() == "email":
				return "Invalid email format."
			case fe.Field() == "Password" && fe.Tag() == "min":
				return "Password must be at least 8 characters long."
			}
		}
	}
	return "All fields (firstName, lastName, email, password, phoneNumber) are required."
}
