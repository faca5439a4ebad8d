package invoice

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const invoiceColumns = `id, number, company_name, customer_name, contact_number, email_address, address, gst_number,
product_name, amount, discount, gst_rate, status, invoice_date, is_active,
total_without_gst, cgst, sgst, total_with_gst, paid_amount, remaining_amount, created_at, updated_at`

// Create inserts a new invoice and returns its id.
func (r *Repository) Create(ctx context.Context, inv Invoice) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO invoices (number, company_name, customer_name, contact_number, email_address, address, gst_number,
product_name, amount, discount, gst_rate, status, invoice_date, is_active,
total_without_gst, cgst, sgst, total_with_gst, paid_amount, remaining_amount, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22) RETURNING id`,
		inv.Number, inv.CompanyName, inv.CustomerName, inv.ContactNumber, inv.EmailAddress, inv.Address, inv.GSTNumber,
		inv.ProductName, inv.Amount, inv.Discount, inv.GSTRate, inv.Status, inv.Date, inv.IsActive,
		inv.TotalWithoutGST, inv.CGST, inv.SGST, inv.TotalWithGST, inv.PaidAmount, inv.RemainingAmount, inv.CreatedAt, inv.UpdatedAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update rewrites all mutable columns of an existing invoice.
func (r *Repository) Update(ctx context.Context, inv Invoice) error {
	tag, err := r.pool.Exec(ctx, `UPDATE invoices SET company_name = $1, customer_name = $2, contact_number = $3, email_address = $4,
address = $5, gst_number = $6, product_name = $7, amount = $8, discount = $9, gst_rate = $10, status = $11,
invoice_date = $12, is_active = $13, total_without_gst = $14, cgst = $15, sgst = $16, total_with_gst = $17,
paid_amount = $18, remaining_amount = $19, updated_at = $20 WHERE id = $21`,
		inv.CompanyName, inv.CustomerName, inv.ContactNumber, inv.EmailAddress,
		inv.Address, inv.GSTNumber, inv.ProductName, inv.Amount, inv.Discount, inv.GSTRate, inv.Status,
		inv.Date, inv.IsActive, inv.TotalWithoutGST, inv.CGST, inv.SGST, inv.TotalWithGST,
		inv.PaidAmount, inv.RemainingAmount, inv.UpdatedAt, inv.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns one invoice, or nil when missing.
func (r *Repository) Get(ctx context.Context, id int64) (*Invoice, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// List returns all active invoices, newest first.
func (r *Repository) List(ctx context.Context) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE is_active ORDER BY invoice_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

// ListUnpaid returns active invoices with money outstanding, oldest due first.
func (r *Repository) ListUnpaid(ctx context.Context) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE status = 'Unpaid' AND is_active ORDER BY invoice_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*Invoice, error) {
	var inv Invoice
	if err := row.Scan(&inv.ID, &inv.Number, &inv.CompanyName, &inv.CustomerName, &inv.ContactNumber, &inv.EmailAddress,
		&inv.Address, &inv.GSTNumber, &inv.ProductName, &inv.Amount, &inv.Discount, &inv.GSTRate, &inv.Status,
		&inv.Date, &inv.IsActive, &inv.TotalWithoutGST, &inv.CGST, &inv.SGST, &inv.TotalWithGST,
		&inv.PaidAmount, &inv.RemainingAmount, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

func collectInvoices(rows pgx.Rows) ([]Invoice, error) {
	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}
