package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"gorm.io/gorm"
)

// DefaultTaxRate is applied to products created without a tax rate
const DefaultTaxRate = 18.0

// Product represents a sellable product or service
type Product struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string             `gorm:"size:255;not null" json:"name"`
	Price     float64            `gorm:"type:decimal(15,2);not null" json:"price"`
	Unit      string             `gorm:"size:30;not null" json:"unit"`
	HSNCode   *string            `gorm:"size:20;column:hsn_code" json:"hsn_code,omitempty"`
	TaxRate   float64            `gorm:"type:decimal(5,2);not null" json:"tax_rate"`
	Status    enum.ProductStatus `gorm:"size:20;not null;index" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = enum.ProductStatusActive
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsActive reports whether the product can be picked for new documents
func (p *Product) IsActive() bool {
	return p.Status.IsActive()
}

// MarshalJSON adds the is_active flag clients filter on
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		IsActive bool `json:"is_active"`
	}{
		alias:    alias(p),
		IsActive: p.IsActive(),
	})
}

// ToLineItem snapshots the product into a document row
func (p *Product) ToLineItem(quantity float64) LineItem {
	id := p.ID
	return LineItem{
		ProductID:   &id,
		ProductName: p.Name,
		HSNCode:     stringValue(p.HSNCode),
		Quantity:    quantity,
		Unit:        p.Unit,
		Price:       p.Price,
		TaxRate:     p.TaxRate,
	}
}
