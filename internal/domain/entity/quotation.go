package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Quotation is a priced offer to a customer
type Quotation struct {
	ID         uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID            `gorm:"type:uuid;not null;index;uniqueIndex:idx_quotations_tenant_number" json:"tenant_id"`
	Number     string               `gorm:"size:30;not null;uniqueIndex:idx_quotations_tenant_number" json:"number"`
	CustomerID *uuid.UUID           `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer   CustomerSnapshot     `gorm:"type:jsonb;serializer:json" json:"customer"`
	Items      LineItems            `gorm:"type:jsonb;serializer:json" json:"items"`
	Subtotal   float64              `gorm:"type:decimal(15,2);not null" json:"subtotal"`
	TaxAmount  float64              `gorm:"type:decimal(15,2);not null" json:"tax_amount"`
	Total      float64              `gorm:"type:decimal(15,2);not null" json:"total"`
	IncludeGST bool                 `gorm:"column:include_gst;not null" json:"include_gst"`
	Status     enum.QuotationStatus `gorm:"size:20;not null;index" json:"status"`
	ValidUntil time.Time            `gorm:"not null" json:"valid_until"`
	Notes      *string              `gorm:"type:text" json:"notes,omitempty"`
	Terms      *string              `gorm:"type:text" json:"terms,omitempty"`
	CreatedAt  time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new quotation
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// QuotationUpdatableFields lists the columns a full update may replace
var QuotationUpdatableFields = []string{
	"customer_id", "customer", "items", "subtotal", "tax_amount", "total",
	"include_gst", "status", "valid_until", "notes", "terms", "updated_at",
}

// Duplicate copies the quotation body into a fresh, unsaved quotation.
// Identity, number, status and timestamps are left for the caller.
func (q *Quotation) Duplicate() *Quotation {
	dup := &Quotation{
		TenantID:   q.TenantID,
		Customer:   q.Customer,
		Items:      q.Items.Clone(),
		Subtotal:   q.Subtotal,
		TaxAmount:  q.TaxAmount,
		Total:      q.Total,
		IncludeGST: q.IncludeGST,
		Notes:      cloneString(q.Notes),
		Terms:      cloneString(q.Terms),
	}
	if q.CustomerID != nil {
		id := *q.CustomerID
		dup.CustomerID = &id
		dup.Customer.ID = &id
	}
	return dup
}
