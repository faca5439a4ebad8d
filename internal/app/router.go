package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sprier-tech/invoicedesk/internal/api"
	"github.com/sprier-tech/invoicedesk/internal/invoice"
	"github.com/sprier-tech/invoicedesk/internal/printing"
	"github.com/sprier-tech/invoicedesk/internal/reminder"
	"github.com/sprier-tech/invoicedesk/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	APIHandler      *api.Handler
	InvoiceHandler  *invoice.Handler
	PrintHandler    *printing.Handler
	ReminderHandler *reminder.Handler
}

// NewRouter constructs the chi.Router.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/invoices/new", http.StatusSeeOther)
	})

	r.Route("/invoices", func(r chi.Router) {
		params.InvoiceHandler.MountRoutes(r)
		params.PrintHandler.MountRoutes(r)
	})
	r.Route("/reminders", params.ReminderHandler.MountRoutes)
	r.Route("/api/v1/invoice", params.APIHandler.MountRoutes)

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers so
// browsers keep assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
