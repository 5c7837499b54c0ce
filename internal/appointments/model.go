// Package appointments handles customer bookings against catalog services.
package appointments

import "time"

// Appointment statuses. The set is closed; anything else is rejected on
// input and skipped on staff updates.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
)

// ValidStatus reports whether s is a member of the status set.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Appointment is a booking row.
type Appointment struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	ServiceID       string    `json:"serviceId"`
	AppointmentDate string    `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Detail embeds the owning user and booked service for list/get views.
type Detail struct {
	Appointment
	UserName    string `json:"userName"`
	UserEmail   string `json:"userEmail"`
	ServiceName string `json:"serviceName"`
}
