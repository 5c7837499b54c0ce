// Package authz holds the authenticated principal and the role
// authorization policy consulted by every handler.
package authz

import "context"

// Principal describes the authenticated actor extracted from a verified
// bearer token. It is reconstructed for every request and never outlives it.
type Principal struct {
	UserID   string
	RoleID   string
	RoleName string
}

// Authenticated reports whether a verified token produced this principal.
func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

// IsStaff reports whether the principal holds an administrative role.
func (p Principal) IsStaff() bool {
	return p.RoleName == RoleAdministrator || p.RoleName == RoleSupportAgent
}

type principalContextKey struct{}

// ContextWithPrincipal stores the principal in the request context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal from the request context.
// The zero value means the request is unauthenticated.
func PrincipalFromContext(ctx context.Context) Principal {
	p, _ := ctx.Value(principalContextKey{}).(Principal)
	return p
}
