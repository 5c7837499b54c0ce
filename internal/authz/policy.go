package authz

import (
	"github.com/nananom-farms/backend/internal/platform/httpx"
)

// Role names as embedded in tokens. The support role name contains a
// space; compare role strings only through these constants.
const (
	RoleAdministrator = "Administrator"
	RoleSupportAgent  = "Support Agent"
	RoleCustomer      = "Customer"
)

// Action identifies an operation gated by role.
type Action string

const (
	ActionAdminPanel          Action = "admin.panel"
	ActionCreateAdministrator Action = "admin.create_administrator"
	ActionServiceManage       Action = "service.manage"
	ActionAppointmentView     Action = "appointment.view"
	ActionAppointmentCreate   Action = "appointment.create"
	ActionAppointmentUpdate   Action = "appointment.update"
	ActionAppointmentDelete   Action = "appointment.delete"
	ActionEnquiryView         Action = "enquiry.view"
	ActionEnquiryUpdate       Action = "enquiry.update"
	ActionEnquiryDelete       Action = "enquiry.delete"
)

// allowed maps each action to the roles permitted to perform it. Ownership
// narrowing for customers happens on top of this table via OwnerOrStaff.
var allowed = map[Action]map[string]bool{
	ActionAdminPanel:          {RoleAdministrator: true, RoleSupportAgent: true},
	ActionCreateAdministrator: {RoleAdministrator: true},
	ActionServiceManage:       {RoleAdministrator: true, RoleSupportAgent: true},
	ActionAppointmentView:     {RoleAdministrator: true, RoleSupportAgent: true, RoleCustomer: true},
	ActionAppointmentCreate:   {RoleAdministrator: true, RoleSupportAgent: true, RoleCustomer: true},
	ActionAppointmentUpdate:   {RoleAdministrator: true, RoleSupportAgent: true, RoleCustomer: true},
	ActionAppointmentDelete:   {RoleAdministrator: true, RoleSupportAgent: true},
	ActionEnquiryView:         {RoleAdministrator: true, RoleSupportAgent: true, RoleCustomer: true},
	ActionEnquiryUpdate:       {RoleAdministrator: true, RoleSupportAgent: true, RoleCustomer: true},
	ActionEnquiryDelete:       {RoleAdministrator: true, RoleSupportAgent: true, RoleCustomer: true},
}

// Authorize checks the principal against the role table for an action.
// It returns httpx.ErrUnauthorized when no principal is present and
// httpx.ErrForbidden when the role is not permitted.
func Authorize(p Principal, action Action) error {
	if !p.Authenticated() {
		return httpx.ErrUnauthorized
	}
	if allowed[action][p.RoleName] {
		return nil
	}
	return httpx.ErrForbidden
}

// OwnerOrStaff permits staff unconditionally and customers only when they
// own the resource. ownerID may be empty for resources without an owner,
// which only staff may touch.
func OwnerOrStaff(p Principal, ownerID string) error {
	if !p.Authenticated() {
		return httpx.ErrUnauthorized
	}
	if p.IsStaff() {
		return nil
	}
	if ownerID != "" && ownerID == p.UserID {
		return nil
	}
	return httpx.ErrForbidden
}
