package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
)

// BrandImageHandler manages the "Our Work" gallery printed on quotations
type BrandImageHandler struct {
	imageService  *service.BrandImageService
	maxUploadSize int64
}

// NewBrandImageHandler creates a new brand image handler
func NewBrandImageHandler(imageService *service.BrandImageService, maxUploadSize int64) *BrandImageHandler {
	return &BrandImageHandler{imageService: imageService, maxUploadSize: maxUploadSize}
}

// List returns the gallery in display order
func (h *BrandImageHandler) List(c *gin.Context) {
	images, err := h.imageService.ListBrandImages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Brand images retrieved successfully", images)
}

// Upload appends an image to the gallery
func (h *BrandImageHandler) Upload(c *gin.Context) {
	data, filename, err := readUpload(c, "image", h.maxUploadSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	image, err := h.imageService.UploadBrandImage(c.Request.Context(), filename, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Brand image uploaded successfully", image)
}

func (h *BrandImageHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "brand image")
	if !ok {
		return
	}

	if err := h.imageService.DeleteBrandImage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
