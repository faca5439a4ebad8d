package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/sprier-tech/invoicedesk/jobs"
)

// Mailer delivers a single email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewEmailTaskHandler returns the worker handler for reminder email tasks.
// Malformed payloads and missing recipients are dropped rather than retried.
func NewEmailTaskHandler(mailer Mailer, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload jobs.ReminderEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.Email == "" {
			if logger != nil {
				logger.Warn("reminder email without recipient", slog.Int64("invoice_id", payload.InvoiceID))
			}
			return asynq.SkipRetry
		}
		subject := fmt.Sprintf("Payment Reminder for %s", payload.CustomerName)
		body := Message(payload.CustomerName, payload.RemainingAmount)
		if err := mailer.Send(ctx, payload.Email, subject, body); err != nil {
			return fmt.Errorf("send reminder email: %w", err)
		}
		if logger != nil {
			logger.Info("reminder email sent",
				slog.Int64("invoice_id", payload.InvoiceID),
				slog.String("to", payload.Email),
			)
		}
		return nil
	}
}
