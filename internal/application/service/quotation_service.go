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

// DefaultQuotationValidityDays applies when the service is built without a configured window
const DefaultQuotationValidityDays = 30

// QuotationService handles quotation-related operations
type QuotationService struct {
	quotationRepo repository.QuotationRepository
	invoiceRepo   repository.InvoiceRepository
	presetRepo    repository.PresetRepository
	customers     customerResolver
	items         itemResolver
	numbers       numberIssuer
	validityDays  int
}

// NewQuotationService creates a new quotation service
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	invoiceRepo repository.InvoiceRepository,
	presetRepo repository.PresetRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	sequence repository.DocumentSequence,
	observer DocumentObserver,
	validityDays int,
) *QuotationService {
	if observer == nil {
		observer = nopObserver{}
	}
	if validityDays <= 0 {
		validityDays = DefaultQuotationValidityDays
	}
	return &QuotationService{
		quotationRepo: quotationRepo,
		invoiceRepo:   invoiceRepo,
		presetRepo:    presetRepo,
		customers:     customerResolver{customerRepo: customerRepo},
		items:         itemResolver{productRepo: productRepo},
		numbers:       numberIssuer{seq: sequence, observer: observer},
		validityDays:  validityDays,
	}
}

// QuotationInput carries a full quotation for create and replace. Nil
// pointers keep the current value on replace and take the default on create.
type QuotationInput struct {
	CustomerID *uuid.UUID
	Customer   *entity.CustomerSnapshot
	// PresetID seeds the items when Items is empty, create only
	PresetID   *uuid.UUID
	Items      []LineItemInput
	IncludeGST *bool
	Status     enum.QuotationStatus
	ValidUntil *time.Time
	Notes      *string
	Terms      *string
}

// CreateQuotation numbers and stores a new quotation
func (s *QuotationService) CreateQuotation(ctx context.Context, input *QuotationInput) (*entity.Quotation, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	quotation := &entity.Quotation{
		TenantID:   tenantID,
		IncludeGST: true,
		Status:     enum.QuotationStatusSent,
		ValidUntil: validFrom(time.Now(), s.validityDays),
	}

	var items entity.LineItems
	if len(input.Items) == 0 && input.PresetID != nil {
		items, err = s.presetItems(ctx, *input.PresetID)
	} else {
		items, err = s.resolveItems(ctx, input.Items)
	}
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, quotation, input, items); err != nil {
		return nil, err
	}

	err = s.numbers.issue(ctx, tenantID, enum.DocumentTypeQuotation, func(number string) error {
		quotation.Number = number
		return s.quotationRepo.Create(ctx, quotation)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("quotation created",
		zap.String("number", quotation.Number), zap.Float64("total", quotation.Total))
	return quotation, nil
}

// GetQuotation retrieves a quotation by ID
func (s *QuotationService) GetQuotation(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}

	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

// ListQuotations lists quotations, newest first
func (s *QuotationService) ListQuotations(ctx context.Context, params *pagination.PaginationParams, filter repository.DocumentFilter) (*pagination.PaginatedResult[entity.Quotation], error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}
	if filter.Status != "" && !enum.QuotationStatus(filter.Status).IsValid() {
		return nil, apperror.NewFieldError("status", "invalid quotation status")
	}
	return pagination.Paginate(params, func(p *pagination.PaginationParams) ([]entity.Quotation, int64, error) {
		return s.quotationRepo.List(ctx, p, filter)
	})
}

// UpdateQuotation replaces the editable part of a quotation and recomputes
// its totals. Number and tenant never change.
func (s *QuotationService) UpdateQuotation(ctx context.Context, id uuid.UUID, input *QuotationInput) (*entity.Quotation, error) {
	quotation, err := s.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, quotation, input, items); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.Update(ctx, quotation); err != nil {
		return nil, mapWriteError(err, "Quotation")
	}
	return quotation, nil
}

// DeleteQuotation removes a quotation. Invoices converted from it keep their copy.
func (s *QuotationService) DeleteQuotation(ctx context.Context, id uuid.UUID) error {
	if _, err := tenantFromContext(ctx); err != nil {
		return err
	}
	return mapWriteError(s.quotationRepo.Delete(ctx, id), "Quotation")
}

// DuplicateQuotation stores a copy of a quotation under a new number with
// the status reset to sent and a fresh validity window
func (s *QuotationService) DuplicateQuotation(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	source, err := s.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := source.Duplicate()
	dup.Status = enum.QuotationStatusSent
	dup.ValidUntil = validFrom(time.Now(), s.validityDays)

	err = s.numbers.issue(ctx, source.TenantID, enum.DocumentTypeQuotation, func(number string) error {
		dup.Number = number
		return s.quotationRepo.Create(ctx, dup)
	})
	if err != nil {
		return nil, err
	}
	return dup, nil
}

// ConvertToInvoice creates a draft invoice from a quotation. Invoices are
// always taxed, so totals are recomputed even when the quotation left GST out.
func (s *QuotationService) ConvertToInvoice(ctx context.Context, id uuid.UUID, dueDate *time.Time) (*entity.Invoice, error) {
	if dueDate == nil || dueDate.IsZero() {
		return nil, apperror.NewFieldError("due_date", "is required")
	}

	quotation, err := s.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice := entity.NewInvoiceFromQuotation(quotation, *dueDate)
	totals := pricing.Calculate(invoice.Items, true)
	invoice.Subtotal = totals.Subtotal
	invoice.TaxAmount = totals.TaxAmount
	invoice.Total = totals.Total

	err = s.numbers.issue(ctx, quotation.TenantID, enum.DocumentTypeInvoice, func(number string) error {
		invoice.Number = number
		return s.invoiceRepo.Create(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("quotation converted",
		zap.String("quotation", quotation.Number), zap.String("invoice", invoice.Number))
	return invoice, nil
}

func (s *QuotationService) resolveItems(ctx context.Context, inputs []LineItemInput) (entity.LineItems, error) {
	if err := requireItems(inputs); err != nil {
		return nil, err
	}
	return s.items.resolve(ctx, inputs)
}

func (s *QuotationService) presetItems(ctx context.Context, presetID uuid.UUID) (entity.LineItems, error) {
	preset, err := s.presetRepo.GetByID(ctx, presetID)
	if err != nil {
		return nil, err
	}
	if preset == nil {
		return nil, apperror.NewFieldError("preset_id", "preset not found")
	}
	if len(preset.Items) == 0 {
		return nil, apperror.NewFieldError("preset_id", "preset has no items")
	}
	return preset.Items.Clone(), nil
}

// apply copies input onto q and recomputes totals from items
func (s *QuotationService) apply(ctx context.Context, q *entity.Quotation, input *QuotationInput, items entity.LineItems) error {
	if input.Status != "" {
		if !input.Status.IsValid() {
			return apperror.NewFieldError("status", "invalid quotation status")
		}
		q.Status = input.Status
	}

	customerID, snapshot, err := s.customers.resolve(ctx, input.CustomerID, input.Customer)
	if err != nil {
		return err
	}
	q.CustomerID = customerID
	q.Customer = snapshot

	if input.IncludeGST != nil {
		q.IncludeGST = *input.IncludeGST
	}
	if input.ValidUntil != nil && !input.ValidUntil.IsZero() {
		q.ValidUntil = *input.ValidUntil
	}
	q.Notes = optionalString(input.Notes)
	q.Terms = optionalString(input.Terms)

	totals := pricing.Calculate(items, q.IncludeGST)
	q.Items = items
	q.Subtotal = totals.Subtotal
	q.TaxAmount = totals.TaxAmount
	q.Total = totals.Total
	return nil
}
