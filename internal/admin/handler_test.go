package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nananom-farms/backend/internal/auth"
	"github.com/nananom-farms/backend/internal/authz"
	"github.com/nananom-farms/backend/internal/platform/httpx"
	"github.com/nananom-farms/backend/internal/roles"
)

const (
	adminRoleID    = "11111111-1111-4111-8111-111111111111"
	agentRoleID    = "22222222-2222-4222-8222-222222222222"
	customerRoleID = "33333333-3333-4333-8333-333333333333"
)

type stubRoleRepo struct{}

func (stubRoleRepo) FindByID(ctx context.Context, id string) (*roles.Role, error) {
	switch id {
	case adminRoleID:
		return &roles.Role{ID: adminRoleID, Name: authz.RoleAdministrator}, nil
	case agentRoleID:
		return &roles.Role{ID: agentRoleID, Name: authz.RoleSupportAgent}, nil
	case customerRoleID:
		return &roles.Role{ID: customerRoleID, Name: authz.RoleCustomer}, nil
	}
	return nil, httpx.ErrNotFound
}

func (stubRoleRepo) FindByName(ctx context.Context, name string) (*roles.Role, error) {
	return nil, httpx.ErrNotFound
}

type stubUserRepo struct {
	users map[string]*auth.User
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, httpx.ErrNotFound
}

func (s *stubUserRepo) Create(ctx context.Context, user *auth.User) error {
	if _, err := s.FindByEmail(ctx, user.Email); err == nil {
		return httpx.ErrDuplicate
	}
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) List(ctx context.Context) ([]auth.User, error) {
	out := make([]auth.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

type stubStats struct{}

func (stubStats) Collect(ctx context.Context) (Stats, error) {
	return Stats{TotalUsers: 5, PendingAppointments: 2, NewEnquiries: 1, ActiveServices: 3}, nil
}

func newTestHandler() (*Handler, *stubUserRepo) {
	userRepo := &stubUserRepo{users: make(map[string]*auth.User)}
	accounts := auth.NewService(userRepo, stubRoleRepo{})
	return NewHandler(slog.Default(), NewService(stubStats{}), accounts), userRepo
}

func withPrincipal(req *http.Request, p authz.Principal) *http.Request {
	return req.WithContext(authz.ContextWithPrincipal(req.Context(), p))
}

func adminPrincipal() authz.Principal {
	return authz.Principal{UserID: "admin-1", RoleID: adminRoleID, RoleName: authz.RoleAdministrator}
}

func agentPrincipal() authz.Principal {
	return authz.Principal{UserID: "agent-1", RoleID: agentRoleID, RoleName: authz.RoleSupportAgent}
}

func registerRequest(roleID string) *http.Request {
	payload := map[string]string{
		"firstName":   "Yaw",
		"lastName":    "Asante",
		"email":       "yaw@example.com",
		"password":    "long-enough-pass",
		"phoneNumber": "+233200000001",
		"roleId":      roleID,
	}
	body, _ := json.Marshal(payload)
	return httptest.NewRequest(http.MethodPost, "/api/admin/register", bytes.NewReader(body))
}

func TestDashboardRequiresStaff(t *testing.T) {
	handler, _ := newTestHandler()

	rec := httptest.NewRecorder()
	handler.Dashboard(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := withPrincipal(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil),
		authz.Principal{UserID: "c1", RoleID: customerRoleID, RoleName: authz.RoleCustomer})
	handler.Dashboard(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	handler.Dashboard(rec, withPrincipal(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil), adminPrincipal()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome to the Admin Dashboard!")
	assert.Contains(t, rec.Body.String(), `"pending_appointments":2`)
}

func TestRegisterUserInvalidRole(t *testing.T) {
	handler, _ := newTestHandler()

	rec := httptest.NewRecorder()
	handler.RegisterUser(rec, withPrincipal(registerRequest("ffffffff-ffff-4fff-8fff-ffffffffffff"), adminPrincipal()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid role selected.")
}

func TestRegisterUserAdministratorEscalation(t *testing.T) {
	handler, repo := newTestHandler()

	// A support agent may not mint Administrator accounts.
	rec := httptest.NewRecorder()
	handler.RegisterUser(rec, withPrincipal(registerRequest(adminRoleID), agentPrincipal()))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You do not have permission to create Administrator users.")
	assert.Empty(t, repo.users)

	// An administrator may.
	rec = httptest.NewRecorder()
	handler.RegisterUser(rec, withPrincipal(registerRequest(adminRoleID), adminPrincipal()))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "User created successfully.")
	assert.Len(t, repo.users, 1)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	handler, _ := newTestHandler()

	rec := httptest.NewRecorder()
	handler.RegisterUser(rec, withPrincipal(registerRequest(customerRoleID), adminPrincipal()))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	handler.RegisterUser(rec, withPrincipal(registerRequest(customerRoleID), adminPrincipal()))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered.")
}

func TestRegisterUserValidationMessages(t *testing.T) {
	handler, _ := newTestHandler()

	payload := map[string]string{
		"firstName":   "Yaw",
		"lastName":    "Asante",
		"email":       "yaw@example.com",
		"password":    "short",
		"phoneNumber": "+233200000001",
		"roleId":      customerRoleID,
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/register", bytes.NewReader(body))

	rec := httptest.NewRecorder()
	handler.RegisterUser(rec, withPrincipal(req, adminPrincipal()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password must be at least 8 characters long.")
}

func TestListUsersJoinsRoleNames(t *testing.T) {
	handler, repo := newTestHandler()
	repo.users["u1"] = &auth.User{
		ID: "u1", FirstName: "Ama", LastName: "Mensah",
		Email: "ama@example.com", RoleID: customerRoleID,
	}

	rec := httptest.NewRecorder()
	handler.ListUsers(rec, withPrincipal(httptest.NewRequest(http.MethodGet, "/admin/users", nil), adminPrincipal()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"roleName":"Customer"`)
}
