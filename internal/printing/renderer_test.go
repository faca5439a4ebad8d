package printing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sprier-tech/invoicedesk/internal/invoice"
)

type stubPDFClient struct {
	html string
	err  error
}

func (s *stubPDFClient) RenderHTML(_ context.Context, html string) ([]byte, error) {
	s.html = html
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.4 stub"), nil
}

func testVendor() Vendor {
	return Vendor{
		Name:    "Sprier Technology Consultancy",
		Phone:   "+91 96019 99151",
		Email:   "info@spriertechnology.com",
		GSTNo:   "24FHUPP2154Q1ZF",
		Website: "spriertechnology.com",
	}
}

func testInvoice() invoice.Invoice {
	return invoice.Invoice{
		ID:              1,
		Number:          "INV-AB12CD34",
		CompanyName:     "Acme Traders",
		CustomerName:    "Ravi",
		ContactNumber:   "919999999999",
		ProductName:     "Consulting",
		Amount:          1000,
		Discount:        10,
		GSTRate:         18,
		Status:          invoice.StatusUnpaid,
		Date:            time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		TotalWithoutGST: 900,
		CGST:            81,
		SGST:            81,
		TotalWithGST:    1062,
		RemainingAmount: 1062,
	}
}

func TestRenderHTMLIsSelfContained(t *testing.T) {
	r, err := NewRenderer(testVendor(), nil)
	require.NoError(t, err)

	html, err := r.RenderHTML(testInvoice())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(strings.TrimSpace(html), "<!DOCTYPE html>"))
	require.Contains(t, html, "Sprier Technology Consultancy")
	require.Contains(t, html, "24FHUPP2154Q1ZF")
	require.Contains(t, html, "Acme Traders")
	require.NotContains(t, html, `<link`, "stylesheets must be inlined")
	require.NotContains(t, html, `<script`, "the document must not carry scripts")
}

func TestRenderHTMLFormatsMoneyWithTwoDecimals(t *testing.T) {
	r, err := NewRenderer(testVendor(), nil)
	require.NoError(t, err)

	html, err := r.RenderHTML(testInvoice())
	require.NoError(t, err)

	require.Contains(t, html, "₹900.00")
	require.Contains(t, html, "₹81.00")
	require.Contains(t, html, "₹1062.00")
	require.Contains(t, html, "18%")
	require.Contains(t, html, "2026-08-15")
}

func TestRenderPDFDelegatesToClient(t *testing.T) {
	client := &stubPDFClient{}
	r, err := NewRenderer(testVendor(), client)
	require.NoError(t, err)

	pdf, err := r.RenderPDF(context.Background(), testInvoice())
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	require.Contains(t, client.html, "INV-AB12CD34")
}

func TestRenderPDFPropagatesClientError(t *testing.T) {
	boom := errors.New("gotenberg down")
	r, err := NewRenderer(testVendor(), &stubPDFClient{err: boom})
	require.NoError(t, err)

	_, err = r.RenderPDF(context.Background(), testInvoice())
	require.ErrorIs(t, err, boom)
}

func TestRenderPDFWithoutClient(t *testing.T) {
	r, err := NewRenderer(testVendor(), nil)
	require.NoError(t, err)

	_, err = r.RenderPDF(context.Background(), testInvoice())
	require.Error(t, err)
}
