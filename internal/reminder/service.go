package reminder

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/singleflight"

	"github.com/sprier-tech/invoicedesk/internal/invoice"
	"github.com/sprier-tech/invoicedesk/jobs"
)

// ErrNotUnpaid indicates a reminder was requested for an invoice that owes
// nothing.
var ErrNotUnpaid = errors.New("invoice is not unpaid")

// InvoiceSource is the slice of the invoice service the dispatcher needs.
type InvoiceSource interface {
	Get(ctx context.Context, id int64) (*invoice.Invoice, error)
	ListUnpaid(ctx context.Context) ([]invoice.Invoice, error)
}

// Enqueuer submits background tasks. Satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EmailRequest is the wire body of the send-reminder endpoint. Fields are
// optional; missing values fall back to the stored invoice.
type EmailRequest struct {
	Email           string  `json:"email"`
	RemainingAmount float64 `json:"remainingAmount"`
	CustomerName    string  `json:"customerName"`
}

// Service coordinates reminder actions for unpaid invoices.
type Service struct {
	invoices InvoiceSource
	enqueuer Enqueuer
	cache    *Cache
	group    singleflight.Group
}

// NewService builds a Service instance.
func NewService(invoices InvoiceSource, enqueuer Enqueuer, cache *Cache) *Service {
	return &Service{invoices: invoices, enqueuer: enqueuer, cache: cache}
}

// ListUnpaid returns the unpaid invoices, deduplicating concurrent loads and
// serving from the short-lived cache when warm.
func (s *Service) ListUnpaid(ctx context.Context) ([]invoice.Invoice, error) {
	result, err, _ := s.group.Do(unpaidCacheKey, func() (any, error) {
		var invoices []invoice.Invoice
		err := s.cache.FetchJSON(ctx, &invoices, func(ctx context.Context) (any, error) {
			return s.invoices.ListUnpaid(ctx)
		})
		return invoices, err
	})
	if err != nil {
		return nil, err
	}
	return result.([]invoice.Invoice), nil
}

// SendEmailReminder enqueues a reminder email for the given invoice and
// returns the customer name the confirmation message should address.
func (s *Service) SendEmailReminder(ctx context.Context, id int64, req EmailRequest) (string, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !inv.Unpaid() {
		return "", ErrNotUnpaid
	}

	payload := jobs.ReminderEmailPayload{
		InvoiceID:       inv.ID,
		Email:           inv.EmailAddress,
		CustomerName:    inv.CustomerName,
		RemainingAmount: inv.RemainingAmount,
	}
	if req.Email != "" {
		payload.Email = req.Email
	}
	if req.CustomerName != "" {
		payload.CustomerName = req.CustomerName
	}
	if req.RemainingAmount > 0 {
		payload.RemainingAmount = req.RemainingAmount
	}

	task, err := jobs.NewReminderEmailTask(payload)
	if err != nil {
		return "", fmt.Errorf("build reminder task: %w", err)
	}
	if _, err := s.enqueuer.EnqueueContext(ctx, task); err != nil {
		return "", fmt.Errorf("enqueue reminder: %w", err)
	}
	return payload.CustomerName, nil
}
