// Package jobs defines the background task types and the Asynq worker that
// processes them.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeReminderEmail is the task type for payment reminder emails.
	TaskTypeReminderEmail = "reminder:email"
)

// ReminderEmailPayload describes one reminder email to deliver.
type ReminderEmailPayload struct {
	InvoiceID       int64   `json:"invoiceId"`
	Email           string  `json:"email"`
	CustomerName    string  `json:"customerName"`
	RemainingAmount float64 `json:"remainingAmount"`
}

// NewReminderEmailTask constructs an Asynq task.
func NewReminderEmailTask(payload ReminderEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeReminderEmail, data, asynq.Queue(QueueDefault), asynq.MaxRetry(3)), nil
}
