package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	renderService  *service.DocumentRenderService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, renderService *service.DocumentRenderService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, renderService: renderService}
}

func (h *InvoiceHandler) List(c *gin.Context) {
	params, filter, ok := documentQuery(c)
	if !ok {
		return
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	var req request.InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func (h *InvoiceHandler) PDF(c *gin.Context) {
	h.render(c, service.OutputPDF)
}

func (h *InvoiceHandler) HTML(c *gin.Context) {
	h.render(c, service.OutputHTML)
}

func (h *InvoiceHandler) render(c *gin.Context, format service.OutputFormat) {
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}
	doc, err := h.renderService.RenderInvoice(c.Request.Context(), id, format)
	sendRendered(c, doc, err)
}
