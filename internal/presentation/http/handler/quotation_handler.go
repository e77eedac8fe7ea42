package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
)

// QuotationHandler handles quotation-related HTTP requests
type QuotationHandler struct {
	quotationService *service.QuotationService
	renderService    *service.DocumentRenderService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *service.QuotationService, renderService *service.DocumentRenderService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService, renderService: renderService}
}

// List handles listing quotations, filtered by search, status and customer
func (h *QuotationHandler) List(c *gin.Context) {
	params, filter, ok := documentQuery(c)
	if !ok {
		return
	}

	result, err := h.quotationService.ListQuotations(c.Request.Context(), params, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotations retrieved successfully", result)
}

// Create handles creating a quotation
func (h *QuotationHandler) Create(c *gin.Context) {
	var req request.QuotationRequest
	if !bindJSON(c, &req) {
		return
	}

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation created successfully", quotation)
}

// Get handles getting a single quotation
func (h *QuotationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}

// Update handles updating a quotation
func (h *QuotationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	var req request.QuotationRequest
	if !bindJSON(c, &req) {
		return
	}

	quotation, err := h.quotationService.UpdateQuotation(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation updated successfully", quotation)
}

// Delete handles deleting a quotation
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	if err := h.quotationService.DeleteQuotation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Duplicate copies a quotation under a new number
func (h *QuotationHandler) Duplicate(c *gin.Context) {
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	quotation, err := h.quotationService.DuplicateQuotation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation duplicated successfully", quotation)
}

// Convert creates an invoice from a quotation
func (h *QuotationHandler) Convert(c *gin.Context) {
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}

	var req request.ConvertQuotationRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.quotationService.ConvertToInvoice(c.Request.Context(), id, req.DueDate.ToTime())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created from quotation", invoice)
}

// PDF streams the quotation as a PDF download
func (h *QuotationHandler) PDF(c *gin.Context) {
	h.render(c, service.OutputPDF)
}

// HTML returns the printable HTML view of the quotation
func (h *QuotationHandler) HTML(c *gin.Context) {
	h.render(c, service.OutputHTML)
}

func (h *QuotationHandler) render(c *gin.Context, format service.OutputFormat) {
	id, ok := pathID(c, "quotation")
	if !ok {
		return
	}
	doc, err := h.renderService.RenderQuotation(c.Request.Context(), id, format)
	sendRendered(c, doc, err)
}
