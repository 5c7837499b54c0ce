// Package jobs contains the asynq task definitions and worker plumbing.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeEnquiryNotify is the task type for enquiry notifications.
	TaskTypeEnquiryNotify = "enquiry:notify"
)

// EnquiryNotifyPayload describes a freshly submitted enquiry.
type EnquiryNotifyPayload struct {
	EnquiryID string `json:"enquiryId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
}

// NewEnquiryNotifyTask constructs an Asynq task.
func NewEnquiryNotifyTask(payload EnquiryNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeEnquiryNotify, data), nil
}

// EnquiryNotifyJob alerts the support team about new enquiries.
type EnquiryNotifyJob struct {
	Logger *slog.Logger
}

// NewEnquiryNotifyJob initialises the notification handler.
func NewEnquiryNotifyJob(logger *slog.Logger) *EnquiryNotifyJob {
	return &EnquiryNotifyJob{Logger: logger}
}

// Handle processes TaskTypeEnquiryNotify tasks. Mail delivery is handled
// by an external collaborator; the worker records the notification.
func (j *EnquiryNotifyJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload EnquiryNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	j.Logger.Info("enquiry received",
		slog.String("enquiry_id", payload.EnquiryID),
		slog.String("name", payload.Name),
		slog.String("email", payload.Email),
		slog.String("subject", payload.Subject),
	)
	return nil
}
