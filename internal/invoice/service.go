package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates the invoice does not exist.
	ErrNotFound = errors.New("invoice not found")
	// ErrValidation indicates the payload failed validation.
	ErrValidation = errors.New("invoice validation failed")
)

// RepositoryPort defines data access methods for invoices.
type RepositoryPort interface {
	Create(ctx context.Context, inv Invoice) (int64, error)
	Update(ctx context.Context, inv Invoice) error
	Get(ctx context.Context, id int64) (*Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
	ListUnpaid(ctx context.Context) ([]Invoice, error)
}

// Service handles invoice business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{
		repo:     repo,
		validate: newValidator(),
		now:      time.Now,
	}
}

// newValidator registers the GST slab check; the builtin oneof tag only
// handles string and integer kinds.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("gstslab", func(fl validator.FieldLevel) bool {
		return ValidGSTRate(fl.Field().Float())
	})
	return v
}

// Create stores a new invoice with totals derived by Calculate, where a paid
// invoice reports zero outstanding.
func (s *Service) Create(ctx context.Context, p Payload) (*Invoice, error) {
	return s.create(ctx, p, Calculate)
}

// CreateQuickEntry stores a new invoice with totals derived by
// CalculateLegacy. The quick-entry screen and the invoiceAdd endpoint that
// serves it have always reported the grand total as outstanding even when the
// invoice is marked paid.
func (s *Service) CreateQuickEntry(ctx context.Context, p Payload) (*Invoice, error) {
	return s.create(ctx, p, CalculateLegacy)
}

func (s *Service) create(ctx context.Context, p Payload, calc func(float64, float64, float64, Status) Totals) (*Invoice, error) {
	inv, err := s.build(p, calc)
	if err != nil {
		return nil, err
	}
	inv.Number = generateNumber()
	inv.CreatedAt = s.now()
	inv.UpdatedAt = inv.CreatedAt

	id, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	inv.ID = id
	return &inv, nil
}

// Update replaces an existing invoice. The edit path always nets the paid
// amount off the outstanding balance.
func (s *Service) Update(ctx context.Context, id int64, p Payload) (*Invoice, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	inv, err := s.build(p, Calculate)
	if err != nil {
		return nil, err
	}
	inv.ID = id
	inv.Number = existing.Number
	inv.CreatedAt = existing.CreatedAt
	inv.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	return &inv, nil
}

// Get returns one invoice by id.
func (s *Service) Get(ctx context.Context, id int64) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv == nil {
		return nil, ErrNotFound
	}
	return inv, nil
}

// List returns all invoices, newest first.
func (s *Service) List(ctx context.Context) ([]Invoice, error) {
	return s.repo.List(ctx)
}

// ListUnpaid returns invoices still owing money.
func (s *Service) ListUnpaid(ctx context.Context) ([]Invoice, error) {
	return s.repo.ListUnpaid(ctx)
}

func (s *Service) build(p Payload, calc func(float64, float64, float64, Status) Totals) (Invoice, error) {
	if err := s.validate.Struct(p); err != nil {
		var fields []string
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
		}
		return Invoice{}, fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
	}

	date, err := parseDate(p.Date)
	if err != nil {
		return Invoice{}, fmt.Errorf("%w: date", ErrValidation)
	}

	totals := calc(p.Amount, p.Discount, p.GSTRate, p.Status)

	isActive := true
	if p.IsActive != nil {
		isActive = *p.IsActive
	}

	return Invoice{
		CompanyName:     p.CompanyName,
		CustomerName:    p.CustomerName,
		ContactNumber:   p.ContactNumber,
		EmailAddress:    p.EmailAddress,
		Address:         p.Address,
		GSTNumber:       p.GSTNumber,
		ProductName:     p.ProductName,
		Amount:          p.Amount,
		Discount:        p.Discount,
		GSTRate:         p.GSTRate,
		Status:          p.Status,
		Date:            date,
		IsActive:        isActive,
		TotalWithoutGST: totals.TotalWithoutGST,
		CGST:            totals.CGST,
		SGST:            totals.SGST,
		TotalWithGST:    totals.TotalWithGST,
		PaidAmount:      totals.PaidAmount,
		RemainingAmount: totals.RemainingAmount,
	}, nil
}

func generateNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}
