package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
)

// InvoiceRequest represents an invoice create or update request
type InvoiceRequest struct {
	CustomerID *uuid.UUID               `json:"customer_id"`
	Customer   *entity.CustomerSnapshot `json:"customer"`
	Items      []LineItemRequest        `json:"items"`
	Status     string                   `json:"status"`
	DueDate    *Date                    `json:"due_date"`
	PaidDate   *Date                    `json:"paid_date"`
	Notes      *string                  `json:"notes"`
	Terms      *string                  `json:"terms"`
}

func (r *InvoiceRequest) ToInput() *service.InvoiceInput {
	return &service.InvoiceInput{
		CustomerID: r.CustomerID,
		Customer:   r.Customer,
		Items:      lineItems(r.Items),
		Status:     enum.InvoiceStatus(r.Status),
		DueDate:    r.DueDate.ToTime(),
		PaidDate:   r.PaidDate.ToTime(),
		Notes:      r.Notes,
		Terms:      r.Terms,
	}
}
