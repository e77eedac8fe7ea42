package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a customer of a tenant
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     *string   `gorm:"size:255" json:"email,omitempty"`
	Phone     *string   `gorm:"size:50" json:"phone,omitempty"`
	GSTNumber *string   `gorm:"size:20;column:gst_number" json:"gst_number,omitempty"`
	Address   Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// Snapshot copies the customer into a document
func (c *Customer) Snapshot() CustomerSnapshot {
	id := c.ID
	return CustomerSnapshot{
		ID:        &id,
		Name:      c.Name,
		Email:     stringValue(c.Email),
		Phone:     stringValue(c.Phone),
		GSTNumber: stringValue(c.GSTNumber),
		Address:   c.Address,
	}
}
