package service

import (
	"context"
	"strings"
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

// Proposal defaults
const (
	DefaultProposalValidityDays = 7
	DefaultProposalGSTRate      = 8.9
	DefaultAdvancePercentage    = 70
	DefaultBalancePercentage    = 30
)

// DefaultProposalTerms is printed when a proposal is saved without terms
var DefaultProposalTerms = []string{
	"Prices are valid until the date shown on this proposal.",
	"Advance payment is due with the purchase order, balance on commissioning.",
	"Net metering approval and DISCOM charges are payable by the client.",
	"Civil work beyond standard mounting structure is not included.",
	"Generation figures are estimates and depend on site conditions and weather.",
}

// ProposalConfig holds the defaults stamped onto new proposals
type ProposalConfig struct {
	ValidityDays int
	GSTRate      float64
}

// ProposalService handles solar proposal operations
type ProposalService struct {
	proposalRepo repository.ProposalRepository
	numbers      numberIssuer
	cfg          ProposalConfig
}

// NewProposalService creates a new proposal service
func NewProposalService(
	proposalRepo repository.ProposalRepository,
	sequence repository.DocumentSequence,
	observer DocumentObserver,
	cfg ProposalConfig,
) *ProposalService {
	if observer == nil {
		observer = nopObserver{}
	}
	if cfg.ValidityDays <= 0 {
		cfg.ValidityDays = DefaultProposalValidityDays
	}
	if cfg.GSTRate <= 0 {
		cfg.GSTRate = DefaultProposalGSTRate
	}
	return &ProposalService{
		proposalRepo: proposalRepo,
		numbers:      numberIssuer{seq: sequence, observer: observer},
		cfg:          cfg,
	}
}

// ProposalInput carries a full proposal for create and replace. Nil
// pointers keep the current value on replace and take the default on create.
type ProposalInput struct {
	ClientName        string
	ClientLocation    string
	PlantCapacity     float64
	ProjectType       enum.ProjectType
	RoofType          enum.RoofType
	PricePerKW        float64
	GSTRate           *float64
	AdvancePercentage *float64
	BalancePercentage *float64
	BillOfMaterials   []entity.BOMItem
	// ROI overrides the computed projection field by field
	ROI        *pricing.ROIOverride
	Terms      []string
	ValidUntil *time.Time
	Status     enum.ProposalStatus
}

func (in *ProposalInput) validate() error {
	errs := []*apperror.FieldError{required("client_name", in.ClientName)}
	if in.PlantCapacity <= 0 {
		errs = append(errs, &apperror.FieldError{Field: "plant_capacity", Message: "must be greater than 0"})
	}
	if in.PricePerKW < 0 {
		errs = append(errs, &apperror.FieldError{Field: "price_per_kw", Message: "must not be negative"})
	}
	if !in.ProjectType.IsValid() {
		errs = append(errs, &apperror.FieldError{Field: "project_type", Message: "must be residential, commercial or industrial"})
	}
	if !in.RoofType.IsValid() {
		errs = append(errs, &apperror.FieldError{Field: "roof_type", Message: "must be rcc, metal_sheet, ground_mounted or other"})
	}
	if in.GSTRate != nil && (*in.GSTRate < 0 || *in.GSTRate > 100) {
		errs = append(errs, &apperror.FieldError{Field: "gst_rate", Message: "must be between 0 and 100"})
	}
	errs = append(errs, percentage("advance_percentage", in.AdvancePercentage), percentage("balance_percentage", in.BalancePercentage))
	if in.Status != "" && !in.Status.IsValid() {
		errs = append(errs, &apperror.FieldError{Field: "status", Message: "invalid proposal status"})
	}
	return collect(errs...)
}

// CreateProposal prices, numbers and stores a new proposal
func (s *ProposalService) CreateProposal(ctx context.Context, input *ProposalInput) (*entity.Proposal, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	proposal := &entity.Proposal{
		TenantID:          tenantID,
		GSTRate:           s.cfg.GSTRate,
		AdvancePercentage: DefaultAdvancePercentage,
		BalancePercentage: DefaultBalancePercentage,
		Status:            enum.ProposalStatusDraft,
		ValidUntil:        validFrom(time.Now(), s.cfg.ValidityDays),
	}
	applyProposal(proposal, input)

	err = s.numbers.issue(ctx, tenantID, enum.DocumentTypeProposal, func(number string) error {
		proposal.Number = number
		return s.proposalRepo.Create(ctx, proposal)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("proposal created",
		zap.String("number", proposal.Number), zap.Float64("capacity_kw", proposal.PlantCapacity))
	return proposal, nil
}

// GetProposal retrieves a proposal by ID
func (s *ProposalService) GetProposal(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}

	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, apperror.NewNotFoundError("Proposal")
	}
	return proposal, nil
}

// ListProposals lists proposals, newest first
func (s *ProposalService) ListProposals(ctx context.Context, params *pagination.PaginationParams, filter repository.DocumentFilter) (*pagination.PaginatedResult[entity.Proposal], error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}
	if filter.Status != "" && !enum.ProposalStatus(filter.Status).IsValid() {
		return nil, apperror.NewFieldError("status", "invalid proposal status")
	}
	return pagination.Paginate(params, func(p *pagination.PaginationParams) ([]entity.Proposal, int64, error) {
		return s.proposalRepo.List(ctx, p, filter)
	})
}

// UpdateProposal replaces the editable part of a proposal and reprices it
func (s *ProposalService) UpdateProposal(ctx context.Context, id uuid.UUID, input *ProposalInput) (*entity.Proposal, error) {
	proposal, err := s.GetProposal(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	applyProposal(proposal, input)
	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, mapWriteError(err, "Proposal")
	}
	return proposal, nil
}

// DeleteProposal removes a proposal
func (s *ProposalService) DeleteProposal(ctx context.Context, id uuid.UUID) error {
	if _, err := tenantFromContext(ctx); err != nil {
		return err
	}
	return mapWriteError(s.proposalRepo.Delete(ctx, id), "Proposal")
}

// DuplicateProposal stores a copy under a new number, back in draft with a
// fresh validity window
func (s *ProposalService) DuplicateProposal(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	source, err := s.GetProposal(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := source.Duplicate()
	dup.Status = enum.ProposalStatusDraft
	dup.ValidUntil = validFrom(time.Now(), s.cfg.ValidityDays)

	err = s.numbers.issue(ctx, source.TenantID, enum.DocumentTypeProposal, func(number string) error {
		dup.Number = number
		return s.proposalRepo.Create(ctx, dup)
	})
	if err != nil {
		return nil, err
	}
	return dup, nil
}

// applyProposal copies a validated input onto p and recomputes amounts and ROI.
// The advance and balance split is stored as given.
func applyProposal(p *entity.Proposal, in *ProposalInput) {
	p.ClientName = strings.TrimSpace(in.ClientName)
	p.ClientLocation = strings.TrimSpace(in.ClientLocation)
	p.PlantCapacity = in.PlantCapacity
	p.ProjectType = in.ProjectType
	p.RoofType = in.RoofType
	p.PricePerKW = in.PricePerKW
	if in.GSTRate != nil {
		p.GSTRate = *in.GSTRate
	}
	if in.AdvancePercentage != nil {
		p.AdvancePercentage = *in.AdvancePercentage
	}
	if in.BalancePercentage != nil {
		p.BalancePercentage = *in.BalancePercentage
	}
	if in.ValidUntil != nil && !in.ValidUntil.IsZero() {
		p.ValidUntil = *in.ValidUntil
	}
	if in.Status != "" {
		p.Status = in.Status
	}

	p.BillOfMaterials = cleanBOM(in.BillOfMaterials)
	p.Terms = cleanTerms(in.Terms)
	if len(p.Terms) == 0 {
		p.Terms = append([]string{}, DefaultProposalTerms...)
	}

	amounts := pricing.CalculateProposal(p.PlantCapacity, p.PricePerKW, p.GSTRate)
	p.Amount = amounts.Amount
	p.GSTAmount = amounts.GSTAmount
	p.TotalAmount = amounts.TotalAmount
	p.ROI = pricing.ProjectWithOverride(p.PlantCapacity, in.ROI)
}

func percentage(field string, v *float64) *apperror.FieldError {
	if v != nil && (*v < 0 || *v > 100) {
		return &apperror.FieldError{Field: field, Message: "must be between 0 and 100"}
	}
	return nil
}

func cleanBOM(rows []entity.BOMItem) []entity.BOMItem {
	out := make([]entity.BOMItem, 0, len(rows))
	for _, row := range rows {
		row.Description = strings.TrimSpace(row.Description)
		row.Specification = strings.TrimSpace(row.Specification)
		row.Warranty = strings.TrimSpace(row.Warranty)
		if row.Description == "" && row.Specification == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}

func cleanTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
