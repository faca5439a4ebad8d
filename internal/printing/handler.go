package printing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sprier-tech/invoicedesk/internal/invoice"
)

// InvoiceGetter loads one invoice by id.
type InvoiceGetter interface {
	Get(ctx context.Context, id int64) (*invoice.Invoice, error)
}

// Handler serves the print endpoint.
type Handler struct {
	logger   *slog.Logger
	invoices InvoiceGetter
	renderer *Renderer
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, invoices InvoiceGetter, renderer *Renderer) *Handler {
	return &Handler{logger: logger, invoices: invoices, renderer: renderer}
}

// MountRoutes registers the print route under the invoices tree.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{id}/print", h.printInvoice)
}

// printInvoice returns the invoice as a PDF download, or as the raw
// printable HTML when ?format=html is given (also the fallback when no
// PDF converter is configured).
func (h *Handler) printInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	inv, err := h.invoices.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("load invoice for print", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		h.serveHTML(w, *inv)
		return
	}

	pdf, err := h.renderer.RenderPDF(r.Context(), *inv)
	if err != nil {
		h.logger.Warn("pdf conversion unavailable, serving html", slog.Any("error", err))
		h.serveHTML(w, *inv)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", inv.Number))
	_, _ = w.Write(pdf)
}

func (h *Handler) serveHTML(w http.ResponseWriter, inv invoice.Invoice) {
	html, err := h.renderer.RenderHTML(inv)
	if err != nil {
		h.logger.Error("render print document", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}
