package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant is an isolated business account. Every other record carries its id.
type Tenant struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Slug      string          `gorm:"size:255;unique;not null" json:"slug"`
	Profile   BusinessProfile `gorm:"type:jsonb;serializer:json" json:"profile"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new tenant
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// BusinessProfile holds the letterhead printed on every document
type BusinessProfile struct {
	BusinessName string      `json:"business_name,omitempty"`
	Tagline      string      `json:"tagline,omitempty"`
	GSTNumber    string      `json:"gst_number,omitempty"`
	Address      Address     `json:"address"`
	Phone        string      `json:"phone,omitempty"`
	Email        string      `json:"email,omitempty"`
	Website      string      `json:"website,omitempty"`
	Logo         string      `json:"logo,omitempty"`      // data URI
	Signature    string      `json:"signature,omitempty"` // data URI
	Bank         BankDetails `json:"bank"`
}

// BankDetails are printed in the payment section of documents
type BankDetails struct {
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
	Branch        string `json:"branch,omitempty"`
	UPIID         string `json:"upi_id,omitempty"`
}

// ProfileImageKind selects which profile image an upload targets
type ProfileImageKind string

const (
	ProfileImageLogo      ProfileImageKind = "logo"
	ProfileImageSignature ProfileImageKind = "signature"
)

func (k ProfileImageKind) IsValid() bool {
	return k == ProfileImageLogo || k == ProfileImageSignature
}

// SetImage stores a data URI in the slot named by kind
func (p *BusinessProfile) SetImage(kind ProfileImageKind, dataURI string) {
	switch kind {
	case ProfileImageLogo:
		p.Logo = dataURI
	case ProfileImageSignature:
		p.Signature = dataURI
	}
}
