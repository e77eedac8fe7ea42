package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentCounter holds the last number issued per tenant and document type
type DocumentCounter struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocType   string    `gorm:"size:20;primaryKey"`
	Value     int64     `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for the DocumentCounter model
func (DocumentCounter) TableName() string {
	return "document_counters"
}
