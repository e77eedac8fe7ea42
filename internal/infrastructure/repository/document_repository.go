package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
	"gorm.io/gorm"
)

// documentFilter applies the shared listing filters. searchColumns differ
// per document type.
func documentFilter(filter domainRepo.DocumentFilter, searchColumns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(SearchScope(filter.Search, searchColumns...))
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.CustomerID != nil {
			db = db.Where("customer_id = ?", *filter.CustomerID)
		}
		return db
	}
}

type quotationRepository struct {
	db *gorm.DB
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *gorm.DB) domainRepo.QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *entity.Quotation) error {
	return createRow(ctx, r.db, quotation)
}

func (r *quotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	return findScoped[entity.Quotation](ctx, r.db, id)
}

func (r *quotationRepository) Update(ctx context.Context, quotation *entity.Quotation) error {
	return updateScoped(ctx, r.db, quotation, entity.QuotationUpdatableFields)
}

func (r *quotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteScoped[entity.Quotation](ctx, r.db, id)
}

func (r *quotationRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.DocumentFilter) ([]entity.Quotation, int64, error) {
	// customer is a JSON snapshot, searched as text
	return listScoped[entity.Quotation](ctx, r.db, params, "created_at DESC", documentFilter(filter, "number", "CAST(customer AS TEXT)"))
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return createRow(ctx, r.db, invoice)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return findScoped[entity.Invoice](ctx, r.db, id)
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return updateScoped(ctx, r.db, invoice, entity.InvoiceUpdatableFields)
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteScoped[entity.Invoice](ctx, r.db, id)
}

func (r *invoiceRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.DocumentFilter) ([]entity.Invoice, int64, error) {
	return listScoped[entity.Invoice](ctx, r.db, params, "created_at DESC", documentFilter(filter, "number", "CAST(customer AS TEXT)"))
}

type proposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(db *gorm.DB) domainRepo.ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *entity.Proposal) error {
	return createRow(ctx, r.db, proposal)
}

func (r *proposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	return findScoped[entity.Proposal](ctx, r.db, id)
}

func (r *proposalRepository) Update(ctx context.Context, proposal *entity.Proposal) error {
	return updateScoped(ctx, r.db, proposal, entity.ProposalUpdatableFields)
}

func (r *proposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteScoped[entity.Proposal](ctx, r.db, id)
}

func (r *proposalRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.DocumentFilter) ([]entity.Proposal, int64, error) {
	// proposals have no customer link
	filter.CustomerID = nil
	return listScoped[entity.Proposal](ctx, r.db, params, "created_at DESC", documentFilter(filter, "number", "client_name", "client_location"))
}

type presetRepository struct {
	db *gorm.DB
}

// NewPresetRepository creates a new preset repository
func NewPresetRepository(db *gorm.DB) domainRepo.PresetRepository {
	return &presetRepository{db: db}
}

func (r *presetRepository) Create(ctx context.Context, preset *entity.Preset) error {
	return r.db.WithContext(ctx).Create(preset).Error
}

func (r *presetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Preset, error) {
	return findScoped[entity.Preset](ctx, r.db, id)
}

func (r *presetRepository) Update(ctx context.Context, preset *entity.Preset) error {
	return updateScoped(ctx, r.db, preset, entity.PresetUpdatableFields)
}

func (r *presetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteScoped[entity.Preset](ctx, r.db, id)
}

func (r *presetRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Preset, int64, error) {
	return listScoped[entity.Preset](ctx, r.db, params, "name ASC", SearchScope(search, "name", "description"))
}
