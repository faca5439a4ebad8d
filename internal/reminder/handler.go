package reminder

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sprier-tech/invoicedesk/internal/invoice"
	"github.com/sprier-tech/invoicedesk/internal/view"
)

// Handler serves the reminder dashboard.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine) *Handler {
	return &Handler{logger: logger, service: service, templates: templates}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showDashboard)
	r.Post("/{id}/email", h.sendEmail)
}

// row pairs an unpaid invoice with its pre-built contact links. The call link
// is pre-approved template.URL because the sanitizer does not whitelist the
// tel: scheme.
type row struct {
	Invoice      invoice.Invoice
	WhatsAppLink string
	CallLink     template.URL
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}

	invoices, err := h.service.ListUnpaid(r.Context())
	if err != nil {
		h.logger.Error("list unpaid invoices", slog.Any("error", err))
		data["Error"] = "Failed to load unpaid invoices. Please try again."
	}

	rows := make([]row, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, row{
			Invoice:      inv,
			WhatsAppLink: WhatsAppLink(inv.ContactNumber, inv.CustomerName, inv.RemainingAmount),
			CallLink:     template.URL(CallLink(inv.ContactNumber)),
		})
	}
	data["Rows"] = rows

	h.render(w, flashFromQuery(r), data)
}

func (h *Handler) sendEmail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid invoice ID", http.StatusBadRequest)
		return
	}

	if _, err := h.service.SendEmailReminder(r.Context(), id, EmailRequest{}); err != nil {
		h.logger.Error("send reminder email", slog.Any("error", err), slog.Int64("id", id))
		http.Redirect(w, r, "/reminders?flash=email_failed", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/reminders?flash=email_sent", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, flash string, data map[string]any) {
	err := h.templates.Render(w, "pages/reminders.html", view.TemplateData{
		Title:       "Reminders",
		CurrentPath: "/reminders",
		Flash:       flash,
		Data:        data,
	})
	if err != nil {
		h.logger.Error("render reminders", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func flashFromQuery(r *http.Request) string {
	switch r.URL.Query().Get("flash") {
	case "submitted":
		return "Invoice submitted successfully!"
	case "email_sent":
		return "Reminder email queued for delivery."
	case "email_failed":
		return "Failed to send the reminder email. Please try again."
	}
	return ""
}
