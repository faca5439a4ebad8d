// Package invoice implements GST invoice capture, derived tax totals and
// persistence for the billing screens and the /api/v1/invoice API.
package invoice

import "time"

// Status enumerates invoice payment states as they travel on the wire.
type Status string

const (
	StatusPaid   Status = "Paid"
	StatusUnpaid Status = "Unpaid"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPaid || s == StatusUnpaid
}

// GSTRates lists the slab percentages an invoice may carry.
var GSTRates = []float64{0, 1, 5, 12, 18, 28, 35}

// ValidGSTRate reports whether rate is one of the allowed slabs.
func ValidGSTRate(rate float64) bool {
	for _, r := range GSTRates {
		if rate == r {
			return true
		}
	}
	return false
}

// DateLayout is the wire and form representation of invoice dates.
const DateLayout = "2006-01-02"

// Invoice is the single domain entity. Derived totals are persisted alongside
// the inputs for reporting but are always recomputed server-side on write.
type Invoice struct {
	ID            int64
	Number        string
	CompanyName   string
	CustomerName  string
	ContactNumber string
	EmailAddress  string
	Address       string
	GSTNumber     string
	ProductName   string
	Amount        float64
	Discount      float64
	GSTRate       float64
	Status        Status
	Date          time.Time
	IsActive      bool

	TotalWithoutGST float64
	CGST            float64
	SGST            float64
	TotalWithGST    float64
	PaidAmount      float64
	RemainingAmount float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Unpaid reports whether the invoice still owes money.
func (i Invoice) Unpaid() bool {
	return i.Status == StatusUnpaid
}
