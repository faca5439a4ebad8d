package invoice

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sprier-tech/invoicedesk/internal/view"
)

// Handler serves the server-rendered invoice screens.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	now       func() time.Time
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, now: time.Now}
}

// MountRoutes registers the screen routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/new", h.showEntryForm)
	r.Post("/", h.submitEntryForm)
	r.Get("/", h.showEditPage)
	r.Post("/create", h.createFromEditPage)
	r.Get("/{id}/edit", h.showEditForm)
	r.Post("/{id}/edit", h.submitEditForm)
}

// formFields holds the raw form input as strings so invalid entries can be
// echoed back to the user unchanged.
type formFields struct {
	CompanyName   string
	CustomerName  string
	ContactNumber string
	EmailAddress  string
	Address       string
	GSTNumber     string
	ProductName   string
	Amount        string
	Discount      string
	GSTRate       string
	Status        string
	Date          string
	IsActive      string
}

func readFormFields(r *http.Request) formFields {
	return formFields{
		CompanyName:   r.PostFormValue("companyName"),
		CustomerName:  r.PostFormValue("customerName"),
		ContactNumber: r.PostFormValue("contactNumber"),
		EmailAddress:  r.PostFormValue("emailAddress"),
		Address:       r.PostFormValue("address"),
		GSTNumber:     r.PostFormValue("gstNumber"),
		ProductName:   r.PostFormValue("productName"),
		Amount:        r.PostFormValue("amount"),
		Discount:      r.PostFormValue("discount"),
		GSTRate:       r.PostFormValue("gstRate"),
		Status:        r.PostFormValue("status"),
		Date:          r.PostFormValue("date"),
		IsActive:      r.PostFormValue("isActive"),
	}
}

func fieldsFromInvoice(inv Invoice) formFields {
	return formFields{
		CompanyName:   inv.CompanyName,
		CustomerName:  inv.CustomerName,
		ContactNumber: inv.ContactNumber,
		EmailAddress:  inv.EmailAddress,
		Address:       inv.Address,
		GSTNumber:     inv.GSTNumber,
		ProductName:   inv.ProductName,
		Amount:        strconv.FormatFloat(inv.Amount, 'f', -1, 64),
		Discount:      strconv.FormatFloat(inv.Discount, 'f', -1, 64),
		GSTRate:       strconv.FormatFloat(inv.GSTRate, 'g', -1, 64),
		Status:        string(inv.Status),
		Date:          inv.Date.Format(DateLayout),
		IsActive:      checkboxValue(inv.IsActive),
	}
}

func checkboxValue(b bool) string {
	if b {
		return "on"
	}
	return ""
}

// payload converts raw form input to the wire shape. Malformed numbers
// coerce to zero so the summary still renders; validation catches the
// required fields.
func (f formFields) payload() Payload {
	return Payload{
		CompanyName:   f.CompanyName,
		CustomerName:  f.CustomerName,
		ContactNumber: f.ContactNumber,
		EmailAddress:  f.EmailAddress,
		Address:       f.Address,
		GSTNumber:     f.GSTNumber,
		ProductName:   f.ProductName,
		Amount:        ParseAmount(f.Amount),
		Discount:      ParseAmount(f.Discount),
		GSTRate:       ParseAmount(f.GSTRate),
		Status:        Status(f.Status),
		Date:          f.Date,
	}
}

// editPayload matches the edit screen's historical behaviour: empty optional
// party fields are stored as "N/A" and the active flag comes from a checkbox,
// so an absent value means deactivated.
func (f formFields) editPayload() Payload {
	p := f.payload()
	if p.Address == "" {
		p.Address = "N/A"
	}
	if p.GSTNumber == "" {
		p.GSTNumber = "N/A"
	}
	active := f.IsActive == "on"
	p.IsActive = &active
	return p
}

type formPage struct {
	Form     formFields
	Errors   map[string]string
	Summary  Totals
	GSTRates []float64
	Invoice  *View
	Action   string
	Records  []Invoice
}

func (h *Handler) showEntryForm(w http.ResponseWriter, r *http.Request) {
	fields := formFields{
		GSTRate: "18",
		Status:  string(StatusUnpaid),
		Date:    h.now().Format(DateLayout),
	}
	h.renderEntry(w, r, fields, nil)
}

func (h *Handler) submitEntryForm(w http.ResponseWriter, r *http.Request) {
	fields := readFormFields(r)
	_, err := h.service.CreateQuickEntry(r.Context(), fields.payload())
	if err != nil {
		if errors.Is(err, ErrValidation) {
			h.renderEntry(w, r, fields, map[string]string{"general": "Please fill in the highlighted fields."})
			return
		}
		h.logger.Error("create invoice", slog.Any("error", err))
		h.renderEntry(w, r, fields, map[string]string{"general": "Could not save the invoice. Please try again."})
		return
	}
	http.Redirect(w, r, "/reminders?flash=submitted", http.StatusSeeOther)
}

func (h *Handler) renderEntry(w http.ResponseWriter, r *http.Request, fields formFields, errs map[string]string) {
	page := formPage{
		Form:     fields,
		Errors:   errs,
		Summary:  CalculateLegacy(ParseAmount(fields.Amount), ParseAmount(fields.Discount), ParseAmount(fields.GSTRate), Status(fields.Status)),
		GSTRates: GSTRates,
	}
	h.render(w, r, "pages/invoice_form.html", "New Invoice", page)
}

func (h *Handler) showEditPage(w http.ResponseWriter, r *http.Request) {
	fields := formFields{
		GSTRate:  "18",
		Status:   string(StatusUnpaid),
		Date:     h.now().Format(DateLayout),
		IsActive: "on",
	}
	h.renderEdit(w, r, fields, nil, nil, "/invoices/create")
}

func (h *Handler) createFromEditPage(w http.ResponseWriter, r *http.Request) {
	fields := readFormFields(r)
	_, err := h.service.Create(r.Context(), fields.editPayload())
	if err != nil {
		if errors.Is(err, ErrValidation) {
			h.renderEdit(w, r, fields, nil, map[string]string{"general": err.Error()}, "/invoices/create")
			return
		}
		h.logger.Error("create invoice", slog.Any("error", err))
		h.renderEdit(w, r, fields, nil, map[string]string{"general": "Could not save the invoice. Please try again."}, "/invoices/create")
		return
	}
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

func (h *Handler) showEditForm(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.loadInvoice(w, r)
	if !ok {
		return
	}
	v := NewView(*inv)
	h.renderEdit(w, r, fieldsFromInvoice(*inv), &v, nil, "/invoices/"+strconv.FormatInt(inv.ID, 10)+"/edit")
}

func (h *Handler) submitEditForm(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.loadInvoice(w, r)
	if !ok {
		return
	}
	action := "/invoices/" + strconv.FormatInt(inv.ID, 10) + "/edit"
	v := NewView(*inv)

	fields := readFormFields(r)
	if _, err := h.service.Update(r.Context(), inv.ID, fields.editPayload()); err != nil {
		if errors.Is(err, ErrValidation) {
			h.renderEdit(w, r, fields, &v, map[string]string{"general": err.Error()}, action)
			return
		}
		h.logger.Error("update invoice", slog.Any("error", err))
		h.renderEdit(w, r, fields, &v, map[string]string{"general": "Could not save the invoice. Please try again."}, action)
		return
	}
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

func (h *Handler) loadInvoice(w http.ResponseWriter, r *http.Request) (*Invoice, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.NotFound(w, r)
			return nil, false
		}
		h.logger.Error("load invoice", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return inv, true
}

func (h *Handler) renderEdit(w http.ResponseWriter, r *http.Request, fields formFields, inv *View, errs map[string]string, action string) {
	records, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
	}

	page := formPage{
		Form:     fields,
		Errors:   errs,
		Summary:  Calculate(ParseAmount(fields.Amount), ParseAmount(fields.Discount), ParseAmount(fields.GSTRate), Status(fields.Status)),
		GSTRates: GSTRates,
		Invoice:  inv,
		Action:   action,
		Records:  records,
	}
	title := "Invoice Records"
	if inv != nil {
		title = "Edit Invoice"
	}
	h.render(w, r, "pages/invoice_edit.html", title, page)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, page formPage) {
	data := view.TemplateData{
		Title:       title,
		CurrentPath: r.URL.Path,
		Data:        page,
	}
	if err := h.templates.Render(w, name, data); err != nil {
		h.logger.Error("render template", slog.String("template", name), slog.Any("error", err))
	}
}
