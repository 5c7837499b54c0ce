package appointments

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/nananom-farms/backend/internal/auth"
	"github.com/nananom-farms/backend/internal/authz"
	"github.com/nananom-farms/backend/internal/platform/httpx"
	"github.com/nananom-farms/backend/internal/services"
)

// UserFinder resolves booking target users. Satisfied by auth.PGRepository.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
}

// ServiceFinder resolves booked catalog services. Satisfied by the
// services repository.
type ServiceFinder interface {
	Get(ctx context.Context, id string) (*services.Service, error)
}

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

// Service implements booking rules on top of the repository.
type Service struct {
	repo    Repository
	users   UserFinder
	catalog ServiceFinder
}

// NewService constructs a booking Service.
func NewService(repo Repository, users UserFinder, catalog ServiceFinder) *Service {
	return &Service{repo: repo, users: users, catalog: catalog}
}

// List returns all appointments for staff and only the principal's own
// for customers.
func (s *Service) List(ctx context.Context, p authz.Principal) ([]Detail, error) {
	if err := authz.Authorize(p, authz.ActionAppointmentView); err != nil {
		return nil, err
	}
	if p.IsStaff() {
		return s.repo.List(ctx)
	}
	return s.repo.ListByUser(ctx, p.UserID)
}

// Get returns one appointment, ownership-gated for customers.
func (s *Service) Get(ctx context.Context, p authz.Principal, id string) (*Detail, error) {
	if err := authz.Authorize(p, authz.ActionAppointmentView); err != nil {
		return nil, err
	}
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsStaff() && d.UserID != p.UserID {
		return nil, httpx.Fail(http.StatusForbidden,
			"Access denied. You can only view your own appointments.", httpx.ErrForbidden)
	}
	return d, nil
}

// CreateInput carries a booking request. UserID is optional; it defaults
// to the principal.
type CreateInput struct {
	UserID          string
	ServiceID       string
	AppointmentDate string
	AppointmentTime string
	Status          string
	Notes           string
}

// Create books an appointment. Customers may only book for themselves;
// staff may book for any existing user.
func (s *Service) Create(ctx context.Context, p authz.Principal, in CreateInput) (*Detail, error) {
	if err := authz.Authorize(p, authz.ActionAppointmentCreate); err != nil {
		return nil, err
	}

	targetUserID := in.UserID
	if targetUserID == "" {
		targetUserID = p.UserID
	}
	if !p.IsStaff() && targetUserID != p.UserID {
		return nil, httpx.Fail(http.StatusForbidden,
			"Customers can only book appointments for themselves.", httpx.ErrForbidden)
	}
	if p.IsStaff() && targetUserID != p.UserID {
		if _, err := s.users.FindByID(ctx, targetUserID); err != nil {
			if errors.Is(err, httpx.ErrNotFound) {
				return nil, httpx.Fail(http.StatusBadRequest,
					"Provided UserID for booking does not exist.", httpx.ErrValidation)
			}
			return nil, err
		}
	}

	if _, err := s.catalog.Get(ctx, in.ServiceID); err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, httpx.Fail(http.StatusBadRequest,
				"Invalid Service ID provided.", httpx.ErrValidation)
		}
		return nil, err
	}

	if !validDate(in.AppointmentDate) {
		return nil, httpx.Fail(http.StatusBadRequest,
			"Invalid appointment date format. Use YYYY-MM-DD.", httpx.ErrValidation)
	}
	if !validTime(in.AppointmentTime) {
		return nil, httpx.Fail(http.StatusBadRequest,
			"Invalid appointment time format. Use HH:MM or HH:MM:SS.", httpx.ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = StatusPending
	}
	if !ValidStatus(status) {
		return nil, httpx.Fail(http.StatusBadRequest, "Invalid status provided.", httpx.ErrValidation)
	}

	appt := &Appointment{
		ID:              uuid.NewString(),
		UserID:          targetUserID,
		ServiceID:       in.ServiceID,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		Status:          status,
		Notes:           in.Notes,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, appt.ID)
}

// UpdateInput carries a partial update; nil fields were absent from the
// request body.
type UpdateInput struct {
	UserID          *string
	ServiceID       *string
	AppointmentDate *string
	AppointmentTime *string
	Status          *string
	Notes           *string
}

func (in UpdateInput) empty() bool {
	return in.UserID == nil && in.ServiceID == nil && in.AppointmentDate == nil &&
		in.AppointmentTime == nil && in.Status == nil && in.Notes == nil
}

// Update modifies an appointment. Staff may change any field, with
// invalid values silently skipped. Customers may only touch their own
// appointments, and only notes or a status change to Cancelled.
func (s *Service) Update(ctx context.Context, p authz.Principal, id string, in UpdateInput) (*Detail, error) {
	if err := authz.Authorize(p, authz.ActionAppointmentUpdate); err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsStaff() && current.UserID != p.UserID {
		return nil, httpx.Fail(http.StatusForbidden,
			"Access denied. You can only update your own appointments.", httpx.ErrForbidden)
	}
	if in.empty() {
		return nil, httpx.Fail(http.StatusBadRequest,
			"Invalid input. No data provided for update or JSON is invalid.", httpx.ErrValidation)
	}

	appt := current.Appointment
	if p.IsStaff() {
		s.applyStaffUpdate(ctx, &appt, in)
	} else {
		if err := applyCustomerUpdate(&appt, in); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, &appt); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, appt.ID)
}

func (s *Service) applyStaffUpdate(ctx context.Context, appt *Appointment, in UpdateInput) {
	if in.UserID != nil {
		if _, err := s.users.FindByID(ctx, *in.UserID); err == nil {
			appt.UserID = *in.UserID
		}
	}
	if in.ServiceID != nil {
		if _, err := s.catalog.Get(ctx, *in.ServiceID); err == nil {
			appt.ServiceID = *in.ServiceID
		}
	}
	if in.AppointmentDate != nil && validDate(*in.AppointmentDate) {
		appt.AppointmentDate = *in.AppointmentDate
	}
	if in.AppointmentTime != nil && validTime(*in.AppointmentTime) {
		appt.AppointmentTime = *in.AppointmentTime
	}
	if in.Status != nil && ValidStatus(*in.Status) {
		appt.Status = *in.Status
	}
	if in.Notes != nil {
		appt.Notes = *in.Notes
	}
}

func applyCustomerUpdate(appt *Appointment, in UpdateInput) error {
	if in.Notes != nil {
		appt.Notes = *in.Notes
	}
	if in.Status != nil {
		if *in.Status != StatusCancelled || appt.Status == StatusCompleted {
			return httpx.Fail(http.StatusForbidden,
				`Customers can only change appointment status to "Cancelled".`, httpx.ErrForbidden)
		}
		appt.Status = StatusCancelled
	}
	restricted := []struct {
		name  string
		value *string
	}{
		{"userId", in.UserID},
		{"serviceId", in.ServiceID},
		{"appointmentDate", in.AppointmentDate},
		{"appointmentTime", in.AppointmentTime},
	}
	for _, f := range restricted {
		if f.value != nil {
			return httpx.Fail(http.StatusForbidden,
				"Customers cannot update '"+f.name+"'. Only notes or status to 'Cancelled'.", httpx.ErrForbidden)
		}
	}
	return nil
}

// Delete removes an appointment; staff only.
func (s *Service) Delete(ctx context.Context, p authz.Principal, id string) error {
	if err := authz.Authorize(p, authz.ActionAppointmentDelete); err != nil {
		if errors.Is(err, httpx.ErrForbidden) {
			return httpx.Fail(http.StatusForbidden,
				"Access denied. Only administrators and support agents can delete appointments.", httpx.ErrForbidden)
		}
		return err
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validDate(v string) bool {
	if !datePattern.MatchString(v) {
		return false
	}
	_, err := time.Parse("2006-01-02", v)
	return err == nil
}

func validTime(v string) bool {
	if !timePattern.MatchString(v) {
		return false
	}
	layout := "15:04"
	if len(v) == 8 {
		layout = "15:04:05"
	}
	_, err := time.Parse(layout, v)
	return err == nil
}
