package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
)

// DocumentFilter narrows quotation, invoice and proposal listings
type DocumentFilter struct {
	Search     string
	Status     string
	CustomerID *uuid.UUID
}

// DocumentSequence hands out per-tenant document numbers. Next must be
// atomic: two concurrent callers never receive the same value.
type DocumentSequence interface {
	Next(ctx context.Context, tenantID uuid.UUID, docType enum.DocumentType) (int64, error)
}

// QuotationRepository defines the interface for quotation data operations
type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	Update(ctx context.Context, quotation *entity.Quotation) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, filter DocumentFilter) ([]entity.Quotation, int64, error)
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, filter DocumentFilter) ([]entity.Invoice, int64, error)
}

// ProposalRepository defines the interface for proposal data operations
type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	Update(ctx context.Context, proposal *entity.Proposal) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, filter DocumentFilter) ([]entity.Proposal, int64, error)
}

// PresetRepository defines the interface for preset data operations
type PresetRepository interface {
	Create(ctx context.Context, preset *entity.Preset) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Preset, error)
	Update(ctx context.Context, preset *entity.Preset) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Preset, int64, error)
}

// BrandImageRepository defines the interface for the brand image gallery
type BrandImageRepository interface {
	// Create appends the image at the end of the tenant's gallery
	Create(ctx context.Context, image *entity.BrandImage) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BrandImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.BrandImage, error)
}
