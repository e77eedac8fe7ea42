package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Preset is a named bundle of line items used to seed new quotations
type Preset struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Items       LineItems `gorm:"type:jsonb;serializer:json" json:"items"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new preset
func (p *Preset) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Preset model
func (Preset) TableName() string {
	return "presets"
}

// PresetUpdatableFields lists the columns a full update may replace
var PresetUpdatableFields = []string{"name", "description", "items", "updated_at"}
