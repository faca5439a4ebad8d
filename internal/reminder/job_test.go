package reminder

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/sprier-tech/invoicedesk/jobs"
)

type recordingMailer struct {
	to, subject, body string
	err               error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func TestEmailTaskHandlerSendsReminder(t *testing.T) {
	mailer := &recordingMailer{}
	handler := NewEmailTaskHandler(mailer, nil)

	task, err := jobs.NewReminderEmailTask(jobs.ReminderEmailPayload{
		InvoiceID:       1,
		Email:           "ravi@example.com",
		CustomerName:    "Ravi",
		RemainingAmount: 500,
	})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Equal(t, "ravi@example.com", mailer.to)
	require.Equal(t, "Payment Reminder for Ravi", mailer.subject)
	require.Equal(t, Message("Ravi", 500), mailer.body)
}

func TestEmailTaskHandlerSkipsMissingRecipient(t *testing.T) {
	handler := NewEmailTaskHandler(&recordingMailer{}, nil)

	task, err := jobs.NewReminderEmailTask(jobs.ReminderEmailPayload{InvoiceID: 1, CustomerName: "Ravi"})
	require.NoError(t, err)

	require.ErrorIs(t, handler(context.Background(), task), asynq.SkipRetry)
}

func TestEmailTaskHandlerSkipsMalformedPayload(t *testing.T) {
	handler := NewEmailTaskHandler(&recordingMailer{}, nil)

	task := asynq.NewTask(jobs.TaskTypeReminderEmail, []byte("not json"))
	require.ErrorIs(t, handler(context.Background(), task), asynq.SkipRetry)
}

func TestEmailTaskHandlerWrapsMailerError(t *testing.T) {
	boom := errors.New("smtp down")
	handler := NewEmailTaskHandler(&recordingMailer{err: boom}, nil)

	task, err := jobs.NewReminderEmailTask(jobs.ReminderEmailPayload{
		InvoiceID: 1, Email: "ravi@example.com", CustomerName: "Ravi",
	})
	require.NoError(t, err)

	require.ErrorIs(t, handler(context.Background(), task), boom)
}
