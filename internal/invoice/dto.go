package invoice

import "time"

// Payload is the wire shape shared by the create and update endpoints. Field
// names are pinned to the legacy client contract and must not change. Derived
// totals sent by clients are accepted for compatibility but recomputed before
// anything is stored.
type Payload struct {
	CompanyName   string  `json:"companyName" validate:"required"`
	CustomerName  string  `json:"customerName" validate:"required"`
	ContactNumber string  `json:"contactNumber"`
	EmailAddress  string  `json:"emailAddress" validate:"omitempty,email"`
	Address       string  `json:"address"`
	GSTNumber     string  `json:"gstNumber"`
	ProductName   string  `json:"productName"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	Discount      float64 `json:"discount" validate:"gte=0,lte=100"`
	GSTRate       float64 `json:"gstRate" validate:"gstslab"`
	Status        Status  `json:"status" validate:"oneof=Paid Unpaid"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	IsActive      *bool   `json:"isActive,omitempty"`

	TotalWithoutGST float64 `json:"totalWithoutGst"`
	TotalWithGST    float64 `json:"totalWithGst"`
	PaidAmount      float64 `json:"paidAmount"`
	RemainingAmount float64 `json:"remainingAmount"`
}

// View is the wire representation of a stored invoice.
type View struct {
	ID              int64   `json:"id"`
	CompanyName     string  `json:"companyName"`
	CustomerName    string  `json:"customerName"`
	ContactNumber   string  `json:"contactNumber"`
	EmailAddress    string  `json:"emailAddress"`
	Address         string  `json:"address"`
	GSTNumber       string  `json:"gstNumber"`
	ProductName     string  `json:"productName"`
	Amount          float64 `json:"amount"`
	Discount        float64 `json:"discount"`
	GSTRate         float64 `json:"gstRate"`
	Status          Status  `json:"status"`
	Date            string  `json:"date"`
	IsActive        bool    `json:"isActive"`
	TotalWithoutGST float64 `json:"totalWithoutGst"`
	TotalWithGST    float64 `json:"totalWithGst"`
	PaidAmount      float64 `json:"paidAmount"`
	RemainingAmount float64 `json:"remainingAmount"`
}

// NewView maps a domain invoice to its wire representation.
func NewView(inv Invoice) View {
	return View{
		ID:              inv.ID,
		CompanyName:     inv.CompanyName,
		CustomerName:    inv.CustomerName,
		ContactNumber:   inv.ContactNumber,
		EmailAddress:    inv.EmailAddress,
		Address:         inv.Address,
		GSTNumber:       inv.GSTNumber,
		ProductName:     inv.ProductName,
		Amount:          inv.Amount,
		Discount:        inv.Discount,
		GSTRate:         inv.GSTRate,
		Status:          inv.Status,
		Date:            inv.Date.Format(DateLayout),
		IsActive:        inv.IsActive,
		TotalWithoutGST: inv.TotalWithoutGST,
		TotalWithGST:    inv.TotalWithGST,
		PaidAmount:      inv.PaidAmount,
		RemainingAmount: inv.RemainingAmount,
	}
}

// NewViews maps a slice of domain invoices.
func NewViews(invoices []Invoice) []View {
	views := make([]View, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, NewView(inv))
	}
	return views
}

// parseDate converts the wire date, tolerating full RFC3339 timestamps that
// older clients occasionally sent.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
