package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnquiryNotifyTask(t *testing.T) {
	task, err := NewEnquiryNotifyTask(EnquiryNotifyPayload{
		EnquiryID: "e-1",
		Name:      "Ama Mensah",
		Email:     "ama@example.com",
		Subject:   "Delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeEnquiryNotify, task.Type())

	var payload EnquiryNotifyPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "e-1", payload.EnquiryID)
}

func TestHandleEnquiryNotify(t *testing.T) {
	job := NewEnquiryNotifyJob(slog.Default())

	task, err := NewEnquiryNotifyTask(EnquiryNotifyPayload{EnquiryID: "e-1"})
	require.NoError(t, err)
	assert.NoError(t, job.Handle(context.Background(), task))

	bad := asynq.NewTask(TaskTypeEnquiryNotify, []byte("not-json"))
	assert.ErrorIs(t, job.Handle(context.Background(), bad), asynq.SkipRetry)
}
