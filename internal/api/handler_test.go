package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/sprier-tech/invoicedesk/internal/invoice"
	"github.com/sprier-tech/invoicedesk/internal/reminder"
)

type memoryRepo struct {
	nextID   int64
	invoices map[int64]invoice.Invoice
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, invoices: map[int64]invoice.Invoice{}}
}

func (m *memoryRepo) Create(_ context.Context, inv invoice.Invoice) (int64, error) {
	id := m.nextID
	m.nextID++
	inv.ID = id
	m.invoices[id] = inv
	return id, nil
}

func (m *memoryRepo) Update(_ context.Context, inv invoice.Invoice) error {
	if _, ok := m.invoices[inv.ID]; !ok {
		return invoice.ErrNotFound
	}
	m.invoices[inv.ID] = inv
	return nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (*invoice.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (m *memoryRepo) List(_ context.Context) ([]invoice.Invoice, error) {
	var out []invoice.Invoice
	for _, inv := range m.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (m *memoryRepo) ListUnpaid(_ context.Context) ([]invoice.Invoice, error) {
	var out []invoice.Invoice
	for _, inv := range m.invoices {
		if inv.Unpaid() {
			out = append(out, inv)
		}
	}
	return out, nil
}

type countingEnqueuer struct {
	enqueued int
}

func (c *countingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	c.enqueued++
	return &asynq.TaskInfo{ID: "test", Type: task.Type()}, nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *memoryRepo, *countingEnqueuer) {
	t.Helper()
	repo := newMemoryRepo()
	svc := invoice.NewService(repo)
	enq := &countingEnqueuer{}
	reminders := reminder.NewService(svc, enq, reminder.NewCache(nil, 0))
	handler := NewHandler(slog.New(slog.NewTextHandler(&strings.Builder{}, nil)), svc, reminders)

	r := chi.NewRouter()
	r.Route("/api/v1/invoice", handler.MountRoutes)
	return r, repo, enq
}

const createBody = `{
	"companyName": "Acme Traders",
	"customerName": "Ravi",
	"contactNumber": "919999999999",
	"emailAddress": "ravi@example.com",
	"productName": "Consulting",
	"amount": 1000,
	"discount": 10,
	"gstRate": 18,
	"status": "Unpaid",
	"date": "2026-08-15"
}`

func TestInvoiceAddReturnsDerivedTotals(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoice/invoiceAdd", strings.NewReader(createBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    invoice.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotZero(t, resp.Data.ID)
	require.InDelta(t, 900, resp.Data.TotalWithoutGST, 1e-9)
	require.InDelta(t, 1062, resp.Data.TotalWithGST, 1e-9)
	require.InDelta(t, 1062, resp.Data.RemainingAmount, 1e-9)
	require.Equal(t, "2026-08-15", resp.Data.Date)
}

func TestInvoiceAddRejectsInvalidPayload(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body := strings.Replace(createBody, `"customerName": "Ravi",`, `"customerName": "",`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoice/invoiceAdd", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotEmpty(t, resp.Message)
}

func TestUpdateInvoiceRecalculatesRemaining(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoice/invoiceAdd", strings.NewReader(createBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data invoice.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	paid := strings.Replace(createBody, `"status": "Unpaid"`, `"status": "Paid"`, 1)
	req = httptest.NewRequest(http.MethodPut, "/api/v1/invoice/updateInvoice/1", strings.NewReader(paid))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool         `json:"success"`
		Message string       `json:"message"`
		Data    invoice.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "Invoice updated successfully", resp.Message)
	require.InDelta(t, 1062, resp.Data.PaidAmount, 1e-9)
	require.Zero(t, resp.Data.RemainingAmount)
}

func TestUpdateInvoiceMissingID(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/invoice/updateInvoice/99", strings.NewReader(createBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "Invoice not found", resp.Message)
}

func TestGetUnpaidInvoicesFiltersPaid(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for _, status := range []string{"Unpaid", "Paid", "Unpaid"} {
		body := strings.Replace(createBody, `"status": "Unpaid"`, `"status": "`+status+`"`, 1)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoice/invoiceAdd", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoice/getUnpaidInvoices", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    []invoice.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	for _, v := range resp.Data {
		require.Equal(t, invoice.StatusUnpaid, v.Status)
	}
}

func TestSendEmailReminderEnqueuesTask(t *testing.T) {
	router, _, enq := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoice/invoiceAdd", strings.NewReader(createBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := `{"email":"ravi@example.com","customerName":"Ravi","remainingAmount":1062}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/invoice/sendEmailReminder/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "Reminder email sent to Ravi", resp.Message)
	require.Equal(t, 1, enq.enqueued)
}

func TestSendEmailReminderRejectsPaidInvoice(t *testing.T) {
	router, _, _ := newTestRouter(t)

	paid := strings.Replace(createBody, `"status": "Unpaid"`, `"status": "Paid"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoice/invoiceAdd", strings.NewReader(paid))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/invoice/sendEmailReminder/1", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}
