package service

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/imageutil"
)

// DefaultBrandImageMaxDimension caps either side of a gallery image
const DefaultBrandImageMaxDimension = 500

// BrandImageService manages the "our work" gallery
type BrandImageService struct {
	imageRepo    repository.BrandImageRepository
	maxSize      int64
	maxDimension int
}

// NewBrandImageService creates a new brand image service. maxSize is the
// largest accepted upload in bytes, zero disables the check.
func NewBrandImageService(imageRepo repository.BrandImageRepository, maxSize int64, maxDimension int) *BrandImageService {
	if maxDimension <= 0 {
		maxDimension = DefaultBrandImageMaxDimension
	}
	return &BrandImageService{imageRepo: imageRepo, maxSize: maxSize, maxDimension: maxDimension}
}

// UploadBrandImage validates the image header and appends it to the gallery.
// Pixels are never decoded, only the format header is read.
func (s *BrandImageService) UploadBrandImage(ctx context.Context, name string, data []byte) (*entity.BrandImage, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperror.NewFieldError("image", "is required")
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, apperror.NewBadRequestErrorf("Image is larger than %d bytes", s.maxSize)
	}

	info, err := imageutil.CheckMaxDimensions(data, s.maxDimension)
	if err != nil {
		return nil, err
	}

	image := &entity.BrandImage{
		TenantID: tenantID,
		Name:     imageName(name, info.Format),
		MimeType: info.Format.MimeType(),
		Width:    info.Width,
		Height:   info.Height,
		Size:     int64(len(data)),
		Data:     data,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, mapWriteError(err, "Brand image")
	}
	return image, nil
}

// ListBrandImages returns the gallery in display order
func (s *BrandImageService) ListBrandImages(ctx context.Context) ([]entity.BrandImage, error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}
	return s.imageRepo.List(ctx)
}

// DeleteBrandImage removes an image. Remaining positions are not compacted.
func (s *BrandImageService) DeleteBrandImage(ctx context.Context, id uuid.UUID) error {
	if _, err := tenantFromContext(ctx); err != nil {
		return err
	}
	return mapWriteError(s.imageRepo.Delete(ctx, id), "Brand image")
}

func imageName(name string, format imageutil.Format) string {
	name = strings.TrimSpace(filepath.Base(name))
	if name == "" || name == "." || name == "/" {
		return "image." + string(format)
	}
	return name
}
