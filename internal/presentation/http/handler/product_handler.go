package handler

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	maxUploadSize  int64
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, maxUploadSize int64) *ProductHandler {
	return &ProductHandler{productService: productService, maxUploadSize: maxUploadSize}
}

// List handles listing products. ?active=true narrows to products that may
// be added to new documents.
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), pageParams(filter.Page, filter.PerPage), repository.ProductFilter{
		Search: filter.Search,
		Active: filter.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "product")
	if !ok {
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "product")
	if !ok {
		return
	}

	var req request.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "product")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ImportProducts handles bulk creation from an uploaded .xlsx workbook
func (h *ProductHandler) ImportProducts(c *gin.Context) {
	data, _, err := readUpload(c, "file", h.maxUploadSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	rows, err := service.ParseProductSheet(bytes.NewReader(data))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.productService.ImportProducts(c.Request.Context(), rows)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products imported", result)
}
