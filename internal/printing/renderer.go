// Package printing turns a stored invoice into a self-contained printable
// document. Rendering produces a plain HTML string with every style inlined,
// so the output is deterministic regardless of the application theme; the
// delivery mechanism (PDF conversion, raw HTML download) is a separate
// concern layered on top.
package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/sprier-tech/invoicedesk/internal/invoice"
	"github.com/sprier-tech/invoicedesk/web"
)

// Vendor is the fixed identity block printed at the top of every document.
type Vendor struct {
	Name    string
	Phone   string
	Email   string
	GSTNo   string
	Website string
}

// Document is everything the print template needs.
type Document struct {
	Vendor  Vendor
	Invoice invoice.Invoice
	Date    string
}

// PDFClient exposes the subset of the report client used by the renderer.
type PDFClient interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Renderer renders invoices via html/template plus optional PDF conversion.
type Renderer struct {
	tpl    *template.Template
	vendor Vendor
	client PDFClient
}

// NewRenderer parses the print template and wires the PDF client. The client
// may be nil when only HTML output is needed.
func NewRenderer(vendor Vendor, client PDFClient) (*Renderer, error) {
	funcMap := template.FuncMap{
		"money": func(v float64) string {
			return fmt.Sprintf("₹%.2f", v)
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%g%%", v)
		},
	}
	tpl, err := template.New("print").Funcs(funcMap).ParseFS(web.Templates, "templates/print/invoice.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: tpl, vendor: vendor, client: client}, nil
}

// RenderHTML produces the printable document string for one invoice.
func (r *Renderer) RenderHTML(inv invoice.Invoice) (string, error) {
	if r == nil || r.tpl == nil {
		return "", fmt.Errorf("printing: renderer not initialised")
	}
	doc := Document{
		Vendor:  r.vendor,
		Invoice: inv,
		Date:    inv.Date.Format(invoice.DateLayout),
	}
	if doc.Date == "" || inv.Date.IsZero() {
		doc.Date = time.Now().Format(invoice.DateLayout)
	}
	buf := &bytes.Buffer{}
	if err := r.tpl.ExecuteTemplate(buf, "print/invoice.html", doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderPDF renders the document and converts it to PDF bytes.
func (r *Renderer) RenderPDF(ctx context.Context, inv invoice.Invoice) ([]byte, error) {
	html, err := r.RenderHTML(inv)
	if err != nil {
		return nil, err
	}
	if r.client == nil {
		return nil, fmt.Errorf("printing: pdf client not configured")
	}
	return r.client.RenderHTML(ctx, html)
}
