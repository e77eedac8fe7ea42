package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/internal/domain/pricing"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/logger"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
	"go.uber.org/zap"
)

// InvoiceService handles invoice-related operations
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	customers   customerResolver
	items       itemResolver
	numbers     numberIssuer
	now         func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	sequence repository.DocumentSequence,
	observer DocumentObserver,
) *InvoiceService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		customers:   customerResolver{customerRepo: customerRepo},
		items:       itemResolver{productRepo: productRepo},
		numbers:     numberIssuer{seq: sequence, observer: observer},
		now:         time.Now,
	}
}

// InvoiceInput carries a full invoice for create and replace
type InvoiceInput struct {
	CustomerID *uuid.UUID
	Customer   *entity.CustomerSnapshot
	Items      []LineItemInput
	Status     enum.InvoiceStatus
	DueDate    *time.Time
	PaidDate   *time.Time
	Notes      *string
	Terms      *string
}

// CreateInvoice numbers and stores a new invoice
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *InvoiceInput) (*entity.Invoice, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if input.DueDate == nil || input.DueDate.IsZero() {
		return nil, apperror.NewFieldError("due_date", "is required")
	}

	invoice := &entity.Invoice{
		TenantID: tenantID,
		Status:   enum.InvoiceStatusDraft,
	}
	if err := s.apply(ctx, invoice, input); err != nil {
		return nil, err
	}

	err = s.numbers.issue(ctx, tenantID, enum.DocumentTypeInvoice, func(number string) error {
		invoice.Number = number
		return s.invoiceRepo.Create(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("invoice created",
		zap.String("number", invoice.Number), zap.Float64("total", invoice.Total))
	return invoice, nil
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices, newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, params *pagination.PaginationParams, filter repository.DocumentFilter) (*pagination.PaginatedResult[entity.Invoice], error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}
	if filter.Status != "" && !enum.InvoiceStatus(filter.Status).IsValid() {
		return nil, apperror.NewFieldError("status", "invalid invoice status")
	}
	return pagination.Paginate(params, func(p *pagination.PaginationParams) ([]entity.Invoice, int64, error) {
		return s.invoiceRepo.List(ctx, p, filter)
	})
}

// UpdateInvoice replaces the editable part of an invoice and recomputes its totals
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *InvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, invoice, input); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, mapWriteError(err, "Invoice")
	}
	return invoice, nil
}

// DeleteInvoice removes an invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	if _, err := tenantFromContext(ctx); err != nil {
		return err
	}
	return mapWriteError(s.invoiceRepo.Delete(ctx, id), "Invoice")
}

func (s *InvoiceService) apply(ctx context.Context, inv *entity.Invoice, input *InvoiceInput) error {
	if input.Status != "" {
		if !input.Status.IsValid() {
			return apperror.NewFieldError("status", "invalid invoice status")
		}
		inv.Status = input.Status
	}
	if err := requireItems(input.Items); err != nil {
		return err
	}

	customerID, snapshot, err := s.customers.resolve(ctx, input.CustomerID, input.Customer)
	if err != nil {
		return err
	}
	items, err := s.items.resolve(ctx, input.Items)
	if err != nil {
		return err
	}

	inv.CustomerID = customerID
	inv.Customer = snapshot
	if input.DueDate != nil && !input.DueDate.IsZero() {
		inv.DueDate = *input.DueDate
	}
	if input.PaidDate != nil && !input.PaidDate.IsZero() {
		paid := *input.PaidDate
		inv.PaidDate = &paid
	}
	if inv.Status == enum.InvoiceStatusPaid && inv.PaidDate == nil {
		paid := s.now()
		inv.PaidDate = &paid
	}
	inv.Notes = optionalString(input.Notes)
	inv.Terms = optionalString(input.Terms)

	totals := pricing.Calculate(items, true)
	inv.Items = items
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total
	return nil
}
