package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
)

// PresetHandler handles reusable item bundles
type PresetHandler struct {
	presetService *service.PresetService
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(presetService *service.PresetService) *PresetHandler {
	return &PresetHandler{presetService: presetService}
}

func (h *PresetHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.presetService.ListPresets(c.Request.Context(), pageParams(page, perPage), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Presets retrieved successfully", result)
}

func (h *PresetHandler) Create(c *gin.Context) {
	var req request.PresetRequest
	if !bindJSON(c, &req) {
		return
	}

	preset, err := h.presetService.CreatePreset(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Preset created successfully", preset)
}

func (h *PresetHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "preset")
	if !ok {
		return
	}

	preset, err := h.presetService.GetPreset(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Preset retrieved successfully", preset)
}

func (h *PresetHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "preset")
	if !ok {
		return
	}

	var req request.PresetRequest
	if !bindJSON(c, &req) {
		return
	}

	preset, err := h.presetService.UpdatePreset(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Preset updated successfully", preset)
}

func (h *PresetHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "preset")
	if !ok {
		return
	}

	if err := h.presetService.DeletePreset(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
