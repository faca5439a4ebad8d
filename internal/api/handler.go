package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sprier-tech/invoicedesk/internal/invoice"
	"github.com/sprier-tech/invoicedesk/internal/platform/httpx"
	"github.com/sprier-tech/invoicedesk/internal/reminder"
)

// InvoiceWriter is the slice of the invoice service the API mutates through.
type InvoiceWriter interface {
	CreateQuickEntry(ctx context.Context, payload invoice.Payload) (*invoice.Invoice, error)
	Update(ctx context.Context, id int64, payload invoice.Payload) (*invoice.Invoice, error)
}

// ReminderDispatcher is the slice of the reminder service the API reads
// and dispatches through.
type ReminderDispatcher interface {
	ListUnpaid(ctx context.Context) ([]invoice.Invoice, error)
	SendEmailReminder(ctx context.Context, id int64, req reminder.EmailRequest) (string, error)
}

// Handler serves the legacy /api/v1/invoice contract. Every response
// carries a success flag; the historical client treats success=false
// exactly like a transport failure, so errors also set an HTTP error
// status.
type Handler struct {
	logger    *slog.Logger
	invoices  InvoiceWriter
	reminders ReminderDispatcher
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, invoices InvoiceWriter, reminders ReminderDispatcher) *Handler {
	return &Handler{logger: logger, invoices: invoices, reminders: reminders}
}

// MountRoutes registers the API routes. Paths are pinned to the legacy
// client; do not rename them.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/invoiceAdd", h.createInvoice)
	r.Put("/updateInvoice/{id}", h.updateInvoice)
	r.Get("/getUnpaidInvoices", h.listUnpaid)
	r.Post("/sendEmailReminder/{id}", h.sendEmailReminder)
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var payload invoice.Payload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}

	inv, err := h.invoices.CreateQuickEntry(r.Context(), payload)
	if err != nil {
		h.respondErr(w, "create invoice", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, envelope{Success: true, Data: invoice.NewView(*inv)})
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var payload invoice.Payload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}

	inv, err := h.invoices.Update(r.Context(), id, payload)
	if err != nil {
		h.respondErr(w, "update invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, envelope{Success: true, Message: "Invoice updated successfully", Data: invoice.NewView(*inv)})
}

func (h *Handler) listUnpaid(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.reminders.ListUnpaid(r.Context())
	if err != nil {
		h.respondErr(w, "list unpaid invoices", err)
		return
	}
	httpx.JSON(w, http.StatusOK, envelope{Success: true, Data: invoice.NewViews(invoices)})
}

func (h *Handler) sendEmailReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req reminder.EmailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}

	name, err := h.reminders.SendEmailReminder(r.Context(), id, req)
	if err != nil {
		h.respondErr(w, "send email reminder", err)
		return
	}
	httpx.JSON(w, http.StatusOK, envelope{Success: true, Message: fmt.Sprintf("Reminder email sent to %s", name)})
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice id")
		return 0, false
	}
	return id, true
}

// respondErr maps domain errors onto the legacy success-flag envelope.
func (h *Handler) respondErr(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	switch {
	case errors.Is(err, invoice.ErrValidation):
		httpx.JSON(w, http.StatusBadRequest, envelope{Success: false, Message: err.Error()})
	case errors.Is(err, invoice.ErrNotFound):
		httpx.JSON(w, http.StatusNotFound, envelope{Success: false, Message: "Invoice not found"})
	case errors.Is(err, reminder.ErrNotUnpaid):
		httpx.JSON(w, http.StatusConflict, envelope{Success: false, Message: "Invoice is not unpaid"})
	default:
		httpx.JSON(w, http.StatusInternalServerError, envelope{Success: false, Message: "Something went wrong. Please try again."})
	}
}
