// Package services manages the public service catalog.
package services

import "time"

// Service represents a bookable farm service offering.
type Service struct {
	ID          string    `json:"id"`
	ServiceName string    `json:"serviceName"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
