package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/application/service"
)

// LineItemRequest is one item row of a quotation, invoice or preset. With a
// product_id the blank fields are filled from the product.
type LineItemRequest struct {
	ProductID   *uuid.UUID `json:"product_id"`
	ProductName string     `json:"product_name"`
	Description string     `json:"description"`
	HSNCode     string     `json:"hsn_code"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit"`
	Price       *float64   `json:"price"`
	TaxRate     *float64   `json:"tax_rate"`
}

func lineItems(items []LineItemRequest) []service.LineItemInput {
	if items == nil {
		return nil
	}
	out := make([]service.LineItemInput, len(items))
	for i, it := range items {
		out[i] = service.LineItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Description: it.Description,
			HSNCode:     it.HSNCode,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			Price:       it.Price,
			TaxRate:     it.TaxRate,
		}
	}
	return out
}

// DocumentFilterRequest holds the list query of quotations, invoices and proposals
type DocumentFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
