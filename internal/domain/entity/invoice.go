package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice is a bill to a customer. Tax is always applied.
type Invoice struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoices_tenant_number" json:"tenant_id"`
	Number      string             `gorm:"size:30;not null;uniqueIndex:idx_invoices_tenant_number" json:"number"`
	QuotationID *uuid.UUID         `gorm:"type:uuid;index" json:"quotation_id,omitempty"`
	CustomerID  *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer    CustomerSnapshot   `gorm:"type:jsonb;serializer:json" json:"customer"`
	Items       LineItems          `gorm:"type:jsonb;serializer:json" json:"items"`
	Subtotal    float64            `gorm:"type:decimal(15,2);not null" json:"subtotal"`
	TaxAmount   float64            `gorm:"type:decimal(15,2);not null" json:"tax_amount"`
	Total       float64            `gorm:"type:decimal(15,2);not null" json:"total"`
	Status      enum.InvoiceStatus `gorm:"size:20;not null;index" json:"status"`
	DueDate     time.Time          `gorm:"not null" json:"due_date"`
	PaidDate    *time.Time         `json:"paid_date,omitempty"`
	Notes       *string            `gorm:"type:text" json:"notes,omitempty"`
	Terms       *string            `gorm:"type:text" json:"terms,omitempty"`
	CreatedAt   time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceUpdatableFields lists the columns a full update may replace
var InvoiceUpdatableFields = []string{
	"customer_id", "customer", "items", "subtotal", "tax_amount", "total",
	"status", "due_date", "paid_date", "notes", "terms", "updated_at",
}

// NewInvoiceFromQuotation copies customer, items and notes of q. The source
// quotation is not touched.
func NewInvoiceFromQuotation(q *Quotation, dueDate time.Time) *Invoice {
	quotationID := q.ID
	inv := &Invoice{
		TenantID:    q.TenantID,
		QuotationID: &quotationID,
		Customer:    q.Customer,
		Items:       q.Items.Clone(),
		Status:      enum.InvoiceStatusDraft,
		DueDate:     dueDate,
		Notes:       cloneString(q.Notes),
		Terms:       cloneString(q.Terms),
	}
	if q.CustomerID != nil {
		id := *q.CustomerID
		inv.CustomerID = &id
		inv.Customer.ID = &id
	}
	return inv
}
