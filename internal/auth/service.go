package auth

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nananom-farms/backend/internal/platform/httpx"
	"github.com/nananom-farms/backend/internal/roles"
)

// Service wraps authentication business rules.
type Service struct {
	repo  Repository
	roles roles.Repository
}

// NewService constructs a new Service.
func NewService(repo Repository, roleRepo roles.Repository) *Service {
	return &Service{repo: repo, roles: roleRepo}
}

// Authenticate validates email/password credentials and resolves the
// user's role. Lookup failures and password mismatches are collapsed into
// a single unauthorized error so callers cannot probe for accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, *roles.Role, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, httpx.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, httpx.ErrUnauthorized
	}
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		return nil, nil, httpx.ErrUnauthorized
	}
	return user, role, nil
}

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
	RoleID      string
}

// Register hashes the password and persists a new user with the given
// role. The caller is responsible for role authorization.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &User{
		ID:           uuid.NewString(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		PhoneNumber:  in.PhoneNumber,
		RoleID:       in.RoleID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindRoleByName resolves a role record by name.
func (s *Service) FindRoleByName(ctx context.Context, name string) (*roles.Role, error) {
	return s.roles.FindByName(ctx, name)
}

// FindRoleByID resolves a role record by UUID.
func (s *Service) FindRoleByID(ctx context.Context, id string) (*roles.Role, error) {
	return s.roles.FindByID(ctx, id)
}

// ListUsers returns every account.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// UserExists reports whether an account with the email exists.
func (s *Service) UserExists(ctx context.Context, email string) bool {
	_, err := s.repo.FindByEmail(ctx, email)
	return err == nil
}
