package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
)

// QuotationRequest represents a quotation create or update request. The
// customer is either a saved customer_id or an inline walk-in customer.
type QuotationRequest struct {
	CustomerID *uuid.UUID               `json:"customer_id"`
	Customer   *entity.CustomerSnapshot `json:"customer"`
	PresetID   *uuid.UUID               `json:"preset_id"`
	Items      []LineItemRequest        `json:"items"`
	IncludeGST *bool                    `json:"include_gst"`
	Status     string                   `json:"status"`
	ValidUntil *Date                    `json:"valid_until"`
	Notes      *string                  `json:"notes"`
	Terms      *string                  `json:"terms"`
}

func (r *QuotationRequest) ToInput() *service.QuotationInput {
	return &service.QuotationInput{
		CustomerID: r.CustomerID,
		Customer:   r.Customer,
		PresetID:   r.PresetID,
		Items:      lineItems(r.Items),
		IncludeGST: r.IncludeGST,
		Status:     enum.QuotationStatus(r.Status),
		ValidUntil: r.ValidUntil.ToTime(),
		Notes:      r.Notes,
		Terms:      r.Terms,
	}
}

// ConvertQuotationRequest carries the due date of the invoice being created
type ConvertQuotationRequest struct {
	DueDate *Date `json:"due_date"`
}
