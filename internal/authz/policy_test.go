package authz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nananom-farms/backend/internal/platform/httpx"
)

func principalWithRole(role string) Principal {
	return Principal{UserID: "user-1", RoleID: "role-1", RoleName: role}
}

func TestAuthorizeMatrix(t *testing.T) {
	tests := []struct {
		action Action
		admin  bool
		agent  bool
		cust   bool
	}{
		{ActionAdminPanel, true, true, false},
		{ActionCreateAdministrator, true, false, false},
		{ActionServiceManage, true, true, false},
		{ActionAppointmentView, true, true, true},
		{ActionAppointmentCreate, true, true, true},
		{ActionAppointmentUpdate, true, true, true},
		{ActionAppointmentDelete, true, true, false},
		{ActionEnquiryView, true, true, true},
		{ActionEnquiryUpdate, true, true, true},
		{ActionEnquiryDelete, true, true, true},
	}

	check := func(t *testing.T, role string, action Action, allow bool) {
		t.Helper()
		err := Authorize(principalWithRole(role), action)
		if allow {
			assert.NoError(t, err, "%s / %s", role, action)
		} else {
			assert.True(t, errors.Is(err, httpx.ErrForbidden), "%s / %s", role, action)
		}
	}

	for _, tc := range tests {
		check(t, RoleAdministrator, tc.action, tc.admin)
		check(t, RoleSupportAgent, tc.action, tc.agent)
		check(t, RoleCustomer, tc.action, tc.cust)
	}
}

func TestAuthorizeUnauthenticated(t *testing.T) {
	err := Authorize(Principal{}, ActionAppointmentView)
	assert.True(t, errors.Is(err, httpx.ErrUnauthorized))
}

func TestAuthorizeUnknownRole(t *testing.T) {
	err := Authorize(principalWithRole("Visitor"), ActionAppointmentView)
	assert.True(t, errors.Is(err, httpx.ErrForbidden))
}

func TestOwnerOrStaff(t *testing.T) {
	admin := principalWithRole(RoleAdministrator)
	customer := principalWithRole(RoleCustomer)

	assert.NoError(t, OwnerOrStaff(admin, "someone-else"))
	assert.NoError(t, OwnerOrStaff(customer, customer.UserID))
	assert.True(t, errors.Is(OwnerOrStaff(customer, "someone-else"), httpx.ErrForbidden))
	assert.True(t, errors.Is(OwnerOrStaff(customer, ""), httpx.ErrForbidden))
	assert.True(t, errors.Is(OwnerOrStaff(Principal{}, "x"), httpx.ErrUnauthorized))
}

func TestIsStaff(t *testing.T) {
	assert.True(t, principalWithRole(RoleAdministrator).IsStaff())
	assert.True(t, principalWithRole(RoleSupportAgent).IsStaff())
	assert.False(t, principalWithRole(RoleCustomer).IsStaff())
	assert.False(t, Principal{}.IsStaff())
}
