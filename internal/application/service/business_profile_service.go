package service

import (
	"context"

	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/imageutil"
)

// BusinessProfileService manages the letterhead stored on the tenant
type BusinessProfileService struct {
	tenantRepo repository.TenantRepository
	imageSize  int
}

// NewBusinessProfileService creates a new business profile service.
// imageSize is the edge of the square canvas uploaded images are fitted to.
func NewBusinessProfileService(tenantRepo repository.TenantRepository, imageSize int) *BusinessProfileService {
	if imageSize <= 0 {
		imageSize = 300
	}
	return &BusinessProfileService{tenantRepo: tenantRepo, imageSize: imageSize}
}

// GetProfile returns the business profile of the caller's tenant
func (s *BusinessProfileService) GetProfile(ctx context.Context) (*entity.BusinessProfile, error) {
	tenant, err := s.loadTenant(ctx)
	if err != nil {
		return nil, err
	}
	return &tenant.Profile, nil
}

// UpdateProfile replaces the profile. Logo and signature are kept, they only
// change through UploadImage and DeleteImage.
func (s *BusinessProfileService) UpdateProfile(ctx context.Context, profile entity.BusinessProfile) (*entity.BusinessProfile, error) {
	tenant, err := s.loadTenant(ctx)
	if err != nil {
		return nil, err
	}

	profile.Logo = tenant.Profile.Logo
	profile.Signature = tenant.Profile.Signature

	if err := s.tenantRepo.UpdateProfile(ctx, tenant.ID, profile); err != nil {
		return nil, mapWriteError(err, "Business profile")
	}
	return &profile, nil
}

// UploadImage fits data into the square canvas and stores it as a PNG data
// URI in the slot named by kind
func (s *BusinessProfileService) UploadImage(ctx context.Context, kind entity.ProfileImageKind, data []byte) (*entity.BusinessProfile, error) {
	if !kind.IsValid() {
		return nil, apperror.NewBadRequestError("type must be logo or signature")
	}
	if len(data) == 0 {
		return nil, apperror.NewFieldError("image", "is required")
	}

	tenant, err := s.loadTenant(ctx)
	if err != nil {
		return nil, err
	}

	uri, err := imageutil.SquareDataURI(data, s.imageSize)
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not read image, upload a PNG, JPEG or GIF file")
	}

	profile := tenant.Profile
	profile.SetImage(kind, uri)
	if err := s.tenantRepo.UpdateProfile(ctx, tenant.ID, profile); err != nil {
		return nil, mapWriteError(err, "Business profile")
	}
	return &profile, nil
}

// DeleteImage clears the slot named by kind
func (s *BusinessProfileService) DeleteImage(ctx context.Context, kind entity.ProfileImageKind) (*entity.BusinessProfile, error) {
	if !kind.IsValid() {
		return nil, apperror.NewBadRequestError("type must be logo or signature")
	}

	tenant, err := s.loadTenant(ctx)
	if err != nil {
		return nil, err
	}

	profile := tenant.Profile
	profile.SetImage(kind, "")
	if err := s.tenantRepo.UpdateProfile(ctx, tenant.ID, profile); err != nil {
		return nil, mapWriteError(err, "Business profile")
	}
	return &profile, nil
}

func (s *BusinessProfileService) loadTenant(ctx context.Context) (*entity.Tenant, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Business profile")
	}
	return tenant, nil
}
