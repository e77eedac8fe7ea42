package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
)

// ProposalHandler handles solar proposal HTTP requests
type ProposalHandler struct {
	proposalService *service.ProposalService
	renderService   *service.DocumentRenderService
}

// NewProposalHandler creates a new proposal handler
func NewProposalHandler(proposalService *service.ProposalService, renderService *service.DocumentRenderService) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService, renderService: renderService}
}

func (h *ProposalHandler) List(c *gin.Context) {
	params, filter, ok := documentQuery(c)
	if !ok {
		return
	}

	result, err := h.proposalService.ListProposals(c.Request.Context(), params, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Proposals retrieved successfully", result)
}

func (h *ProposalHandler) Create(c *gin.Context) {
	var req request.ProposalRequest
	if !bindJSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.CreateProposal(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Proposal created successfully", proposal)
}

func (h *ProposalHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "proposal")
	if !ok {
		return
	}

	proposal, err := h.proposalService.GetProposal(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proposal retrieved successfully", proposal)
}

func (h *ProposalHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "proposal")
	if !ok {
		return
	}

	var req request.ProposalRequest
	if !bindJSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.UpdateProposal(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proposal updated successfully", proposal)
}

func (h *ProposalHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "proposal")
	if !ok {
		return
	}

	if err := h.proposalService.DeleteProposal(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Duplicate copies a proposal as a new draft
func (h *ProposalHandler) Duplicate(c *gin.Context) {
	id, ok := pathID(c, "proposal")
	if !ok {
		return
	}

	proposal, err := h.proposalService.DuplicateProposal(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Proposal duplicated successfully", proposal)
}

func (h *ProposalHandler) PDF(c *gin.Context) {
	h.render(c, service.OutputPDF)
}

func (h *ProposalHandler) HTML(c *gin.Context) {
	h.render(c, service.OutputHTML)
}

func (h *ProposalHandler) render(c *gin.Context, format service.OutputFormat) {
	id, ok := pathID(c, "proposal")
	if !ok {
		return
	}
	doc, err := h.renderService.RenderProposal(c.Request.Context(), id, format)
	sendRendered(c, doc, err)
}
