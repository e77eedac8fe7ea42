package request

import "github.com/sangkips/quotedesk-api/internal/application/service"

// ProductRequest represents a product create or update request
type ProductRequest struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Unit     string   `json:"unit"`
	HSNCode  *string  `json:"hsn_code"`
	TaxRate  *float64 `json:"tax_rate"`
	IsActive *bool    `json:"is_active"`
}

func (r *ProductRequest) ToInput() *service.ProductInput {
	return &service.ProductInput{
		Name:     r.Name,
		Price:    r.Price,
		Unit:     r.Unit,
		HSNCode:  r.HSNCode,
		TaxRate:  r.TaxRate,
		IsActive: r.IsActive,
	}
}

// ProductFilterRequest represents product list query parameters
type ProductFilterRequest struct {
	Search  string `form:"search"`
	Active  *bool  `form:"active"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
