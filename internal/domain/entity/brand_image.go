package entity

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BrandImage is an ordered "our work" gallery picture appended to quotations
type BrandImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	MimeType  string    `gorm:"size:50;not null" json:"mime_type"`
	Width     int       `gorm:"not null" json:"width"`
	Height    int       `gorm:"not null" json:"height"`
	Size      int64     `gorm:"not null" json:"size"`
	Data      []byte    `gorm:"not null" json:"-"`
	Position  int       `gorm:"not null;index" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new brand image
func (b *BrandImage) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BrandImage model
func (BrandImage) TableName() string {
	return "brand_images"
}

// DataURI embeds the image bytes for browsers
func (b *BrandImage) DataURI() string {
	return "data:" + b.MimeType + ";base64," + base64.StdEncoding.EncodeToString(b.Data)
}

// MarshalJSON adds the inline data URI
func (b BrandImage) MarshalJSON() ([]byte, error) {
	type alias BrandImage
	return json.Marshal(struct {
		alias
		DataURI string `json:"data_uri"`
	}{
		alias:   alias(b),
		DataURI: b.DataURI(),
	})
}
