package enquiries

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nananom-farms/backend/internal/authz"
	"github.com/nananom-farms/backend/internal/platform/httpx"
)

type mockRepository struct {
	items map[string]*Enquiry
}

func newMockRepository() *mockRepository {
	return &mockRepository{items: make(map[string]*Enquiry)}
}

func (m *mockRepository) List(ctx context.Context) ([]Enquiry, error) {
	out := make([]Enquiry, 0, len(m.items))
	for _, e := range m.items {
		out = append(out, *e)
	}
	return out, nil
}

func (m *mockRepository) ListByUser(ctx context.Context, userID string) ([]Enquiry, error) {
	var out []Enquiry
	for _, e := range m.items {
		if e.Owner(userID) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (*Enquiry, error) {
	e, ok := m.items[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	found := *e
	return &found, nil
}

func (m *mockRepository) Create(ctx context.Context, e *Enquiry) error {
	e.CreatedAt = time.Now().UTC()
	e.UpdatedAt = e.CreatedAt
	stored := *e
	m.items[e.ID] = &stored
	return nil
}

func (m *mockRepository) Update(ctx context.Context, e *Enquiry) error {
	if _, ok := m.items[e.ID]; !ok {
		return httpx.ErrNotFound
	}
	stored := *e
	m.items[e.ID] = &stored
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type mockNotifier struct {
	calls []string
	err   error
}

func (m *mockNotifier) NotifyEnquiry(ctx context.Context, enquiryID, name, email, subject string) error {
	m.calls = append(m.calls, enquiryID)
	return m.err
}

func customer() authz.Principal {
	return authz.Principal{UserID: "cust-1", RoleID: "r-c", RoleName: authz.RoleCustomer}
}

func agent() authz.Principal {
	return authz.Principal{UserID: "agent-1", RoleID: "r-s", RoleName: authz.RoleSupportAgent}
}

func newTestService() (*Service, *mockRepository, *mockNotifier) {
	repo := newMockRepository()
	notifier := &mockNotifier{}
	return NewService(repo, notifier, slog.Default()), repo, notifier
}

func validInput() CreateInput {
	return CreateInput{
		Name:    "Ama Mensah",
		Email:   "ama@example.com",
		Message: "Do you deliver to Kumasi?",
	}
}

func TestCreateAnonymous(t *testing.T) {
	svc, _, notifier := newTestService()

	e, err := svc.Create(context.Background(), authz.Principal{}, validInput())
	require.NoError(t, err)
	assert.Nil(t, e.UserID)
	assert.Equal(t, StatusNew, e.Status)
	assert.Equal(t, []string{e.ID}, notifier.calls)
}

func TestCreateLinksAuthenticatedPrincipal(t *testing.T) {
	svc, _, _ := newTestService()

	e, err := svc.Create(context.Background(), customer(), validInput())
	require.NoError(t, err)
	require.NotNil(t, e.UserID)
	assert.Equal(t, "cust-1", *e.UserID)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	in := validInput()
	in.Email = "not-an-email"
	_, err := svc.Create(ctx, customer(), in)
	assert.True(t, errors.Is(err, httpx.ErrValidation))

	in = validInput()
	in.Name = "  "
	_, err = svc.Create(ctx, customer(), in)
	assert.True(t, errors.Is(err, httpx.ErrValidation))

	in = validInput()
	in.Message = ""
	_, err = svc.Create(ctx, customer(), in)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateNotifierFailureIsNotFatal(t *testing.T) {
	repo := newMockRepository()
	notifier := &mockNotifier{err: errors.New("broker down")}
	svc := NewService(repo, notifier, slog.Default())

	e, err := svc.Create(context.Background(), customer(), validInput())
	require.NoError(t, err)
	assert.Contains(t, repo.items, e.ID)
}

func TestListScoping(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, customer(), validInput())
	require.NoError(t, err)
	_, err = svc.Create(ctx, authz.Principal{}, validInput())
	require.NoError(t, err)

	all, err := svc.List(ctx, agent())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.List(ctx, customer())
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "cust-1", *own[0].UserID)
}

func TestGetOwnershipGate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	anon, err := svc.Create(ctx, authz.Principal{}, validInput())
	require.NoError(t, err)

	// Anonymous enquiries are staff-only.
	_, err = svc.Get(ctx, customer(), anon.ID)
	assert.True(t, errors.Is(err, httpx.ErrForbidden))

	got, err := svc.Get(ctx, agent(), anon.ID)
	require.NoError(t, err)
	assert.Equal(t, anon.ID, got.ID)
}

func TestUpdateStatusValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, customer(), validInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, agent(), e.ID, UpdateInput{Status: strPtr("Closed")})
	assert.True(t, errors.Is(err, httpx.ErrValidation))

	updated, err := svc.Update(ctx, agent(), e.ID, UpdateInput{Status: strPtr(StatusInProgress)})
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, updated.Status)
}

func TestUpdateEmailValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, customer(), validInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, customer(), e.ID, UpdateInput{Email: strPtr("broken@")})
	assert.True(t, errors.Is(err, httpx.ErrValidation))

	updated, err := svc.Update(ctx, customer(), e.ID, UpdateInput{Email: strPtr("new@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestUpdateOwnershipGate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	anon, err := svc.Create(ctx, authz.Principal{}, validInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, customer(), anon.ID, UpdateInput{Subject: strPtr("mine")})
	assert.True(t, errors.Is(err, httpx.ErrForbidden))
}

func TestUpdateEmptyPayload(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, customer(), validInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, customer(), e.ID, UpdateInput{})
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestDeleteOwnershipGate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	own, err := svc.Create(ctx, customer(), validInput())
	require.NoError(t, err)
	anon, err := svc.Create(ctx, authz.Principal{}, validInput())
	require.NoError(t, err)

	assert.True(t, errors.Is(svc.Delete(ctx, customer(), anon.ID), httpx.ErrForbidden))
	require.NoError(t, svc.Delete(ctx, customer(), own.ID))
	require.NoError(t, svc.Delete(ctx, agent(), anon.ID))
}

func strPtr(s string) *string { return &s }
