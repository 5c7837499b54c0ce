// Package enquiries handles customer enquiry intake and triage.
package enquiries

import "time"

// Enquiry statuses. New enquiries always start as New.
const (
	StatusNew        = "New"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusArchived   = "Archived"
)

// ValidStatus reports whether s is a member of the status set.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusResolved, StatusArchived:
		return true
	}
	return false
}

// Enquiry is a customer enquiry row. UserID is nil for anonymous
// submissions.
type Enquiry struct {
	ID          string    `json:"id"`
	UserID      *string   `json:"userId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Owner reports whether the enquiry belongs to the given user.
func (e *Enquiry) Owner(userID string) bool {
	return e.UserID != nil && *e.UserID == userID
}
