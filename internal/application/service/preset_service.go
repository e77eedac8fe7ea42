package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/pricing"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
)

// PresetService handles preset-related operations
type PresetService struct {
	presetRepo repository.PresetRepository
	items      itemResolver
}

// NewPresetService creates a new preset service
func NewPresetService(presetRepo repository.PresetRepository, productRepo repository.ProductRepository) *PresetService {
	return &PresetService{
		presetRepo: presetRepo,
		items:      itemResolver{productRepo: productRepo},
	}
}

// PresetInput carries the full preset for create and replace
type PresetInput struct {
	Name        string
	Description *string
	Items       []LineItemInput
}

// CreatePreset stores a named bundle of items
func (s *PresetService) CreatePreset(ctx context.Context, input *PresetInput) (*entity.Preset, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	preset := &entity.Preset{TenantID: tenantID}
	if err := s.apply(ctx, preset, input); err != nil {
		return nil, err
	}
	if err := s.presetRepo.Create(ctx, preset); err != nil {
		return nil, mapWriteError(err, "Preset")
	}
	return preset, nil
}

// GetPreset retrieves a preset by ID
func (s *PresetService) GetPreset(ctx context.Context, id uuid.UUID) (*entity.Preset, error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}

	preset, err := s.presetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if preset == nil {
		return nil, apperror.NewNotFoundError("Preset")
	}
	return preset, nil
}

// ListPresets lists presets by name
func (s *PresetService) ListPresets(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Preset], error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}
	return pagination.Paginate(params, func(p *pagination.PaginationParams) ([]entity.Preset, int64, error) {
		return s.presetRepo.List(ctx, p, search)
	})
}

// UpdatePreset replaces a preset
func (s *PresetService) UpdatePreset(ctx context.Context, id uuid.UUID, input *PresetInput) (*entity.Preset, error) {
	preset, err := s.GetPreset(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, preset, input); err != nil {
		return nil, err
	}
	if err := s.presetRepo.Update(ctx, preset); err != nil {
		return nil, mapWriteError(err, "Preset")
	}
	return preset, nil
}

// DeletePreset removes a preset
func (s *PresetService) DeletePreset(ctx context.Context, id uuid.UUID) error {
	if _, err := tenantFromContext(ctx); err != nil {
		return err
	}
	return mapWriteError(s.presetRepo.Delete(ctx, id), "Preset")
}

// apply validates input and stores priced items, taxed so the preview
// total matches a GST quotation
func (s *PresetService) apply(ctx context.Context, p *entity.Preset, input *PresetInput) error {
	if err := collect(required("name", input.Name)); err != nil {
		return err
	}
	if err := requireItems(input.Items); err != nil {
		return err
	}

	items, err := s.items.resolve(ctx, input.Items)
	if err != nil {
		return err
	}
	pricing.Calculate(items, true)

	p.Name = strings.TrimSpace(input.Name)
	p.Description = optionalString(input.Description)
	p.Items = items
	return nil
}
