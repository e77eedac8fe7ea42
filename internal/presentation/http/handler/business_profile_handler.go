package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
)

// BusinessProfileHandler serves the tenant letterhead and its images
type BusinessProfileHandler struct {
	profileService *service.BusinessProfileService
	maxUploadSize  int64
}

// NewBusinessProfileHandler creates a new business profile handler
func NewBusinessProfileHandler(profileService *service.BusinessProfileService, maxUploadSize int64) *BusinessProfileHandler {
	return &BusinessProfileHandler{profileService: profileService, maxUploadSize: maxUploadSize}
}

// Get handles GET /business-profile
func (h *BusinessProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Business profile retrieved successfully", profile)
}

// Update handles PUT /business-profile
func (h *BusinessProfileHandler) Update(c *gin.Context) {
	var req request.BusinessProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), req.ToProfile())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Business profile updated successfully", profile)
}

// UploadImage handles POST /upload/image?type=logo|signature
func (h *BusinessProfileHandler) UploadImage(c *gin.Context) {
	kind := entity.ProfileImageKind(c.Query("type"))
	if !kind.IsValid() {
		response.BadRequest(c, "type must be logo or signature")
		return
	}

	data, _, err := readUpload(c, "image", h.maxUploadSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.profileService.UploadImage(c.Request.Context(), kind, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Image uploaded successfully", profile)
}

// DeleteImage handles DELETE /upload/image?type=logo|signature
func (h *BusinessProfileHandler) DeleteImage(c *gin.Context) {
	profile, err := h.profileService.DeleteImage(c.Request.Context(), entity.ProfileImageKind(c.Query("type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Image removed successfully", profile)
}
