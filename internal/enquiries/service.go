package enquiries

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nananom-farms/backend/internal/authz"
	"github.com/nananom-farms/backend/internal/platform/httpx"
)

// Notifier publishes a notification task when an enquiry arrives.
// Implemented by jobs.Enqueuer.
type Notifier interface {
	NotifyEnquiry(ctx context.Context, enquiryID, name, email, subject string) error
}

// Service implements enquiry intake and triage rules.
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

// NewService constructs an enquiry Service. notifier may be nil when no
// broker is configured.
func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// List returns all enquiries for staff and only the principal's own for
// customers.
func (s *Service) List(ctx context.Context, p authz.Principal) ([]Enquiry, error) {
	if err := authz.Authorize(p, authz.ActionEnquiryView); err != nil {
		return nil, err
	}
	if p.IsStaff() {
		return s.repo.List(ctx)
	}
	return s.repo.ListByUser(ctx, p.UserID)
}

// Get returns one enquiry, ownership-gated for customers.
func (s *Service) Get(ctx context.Context, p authz.Principal, id string) (*Enquiry, error) {
	if err := authz.Authorize(p, authz.ActionEnquiryView); err != nil {
		return nil, err
	}
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsStaff() && !e.Owner(p.UserID) {
		return nil, httpx.Fail(http.StatusForbidden,
			"Access denied. You can only view your own enquiries.", httpx.ErrForbidden)
	}
	return e, nil
}

// CreateInput carries an enquiry submission.
type CreateInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Subject     string
	Message     string
}

// Create records a new enquiry. Submission is public: when the principal
// is authenticated the enquiry is linked to them, otherwise userId stays
// null. Notification delivery is best effort.
func (s *Service) Create(ctx context.Context, p authz.Principal, in CreateInput) (*Enquiry, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)

	if !validEmail(email) {
		return nil, httpx.Fail(http.StatusBadRequest, "Invalid email format.", httpx.ErrValidation)
	}
	if name == "" {
		return nil, httpx.Fail(http.StatusBadRequest, "Name cannot be empty.", httpx.ErrValidation)
	}
	if message == "" {
		return nil, httpx.Fail(http.StatusBadRequest, "Message cannot be empty.", httpx.ErrValidation)
	}

	var userID *string
	if p.Authenticated() {
		id := p.UserID
		userID = &id
	}

	e := &Enquiry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Email:       email,
		PhoneNumber: in.PhoneNumber,
		Subject:     in.Subject,
		Message:     message,
		Status:      StatusNew,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyEnquiry(ctx, e.ID, e.Name, e.Email, e.Subject); err != nil {
			s.logger.Warn("enqueue enquiry notification",
				slog.String("enquiry_id", e.ID), slog.Any("error", err))
		}
	}
	return e, nil
}

// UpdateInput carries a partial update; nil fields were absent from the
// request body.
type UpdateInput struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Subject     *string
	Message     *string
	Status      *string
}

func (in UpdateInput) empty() bool {
	return in.Name == nil && in.Email == nil && in.PhoneNumber == nil &&
		in.Subject == nil && in.Message == nil && in.Status == nil
}

// Update modifies an enquiry. Customers may only touch their own.
func (s *Service) Update(ctx context.Context, p authz.Principal, id string, in UpdateInput) (*Enquiry, error) {
	if err := authz.Authorize(p, authz.ActionEnquiryUpdate); err != nil {
		return nil, err
	}
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsStaff() && !e.Owner(p.UserID) {
		return nil, httpx.Fail(http.StatusForbidden,
			"Access denied. You can only update your own enquiries.", httpx.ErrForbidden)
	}
	if in.empty() {
		return nil, httpx.Fail(http.StatusBadRequest,
			"Invalid input. No data provided for update or JSON is invalid.", httpx.ErrValidation)
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		e.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if !validEmail(email) {
			return nil, httpx.Fail(http.StatusBadRequest, "Invalid email format provided.", httpx.ErrValidation)
		}
		e.Email = email
	}
	if in.PhoneNumber != nil {
		e.PhoneNumber = *in.PhoneNumber
	}
	if in.Subject != nil {
		e.Subject = *in.Subject
	}
	if in.Message != nil && strings.TrimSpace(*in.Message) != "" {
		e.Message = strings.TrimSpace(*in.Message)
	}
	if in.Status != nil {
		if !ValidStatus(*in.Status) {
			return nil, httpx.Fail(http.StatusBadRequest,
				"Invalid status provided. Allowed: New, In Progress, Resolved, Archived.", httpx.ErrValidation)
		}
		e.Status = *in.Status
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an enquiry, ownership-gated for customers.
func (s *Service) Delete(ctx context.Context, p authz.Principal, id string) error {
	if err := authz.Authorize(p, authz.ActionEnquiryDelete); err != nil {
		return err
	}
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsStaff() && !e.Owner(p.UserID) {
		return httpx.Fail(http.StatusForbidden,
			"Access denied. You can only delete your own enquiries.", httpx.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}

var validate = validator.New()

func validEmail(v string) bool {
	return v != "" && validate.Var(v, "email") == nil
}
