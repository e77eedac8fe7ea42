package entity

import (
	"strings"

	"github.com/google/uuid"
)

// Address is a postal address, stored as embedded columns or inside JSON snapshots
type Address struct {
	Street  string `gorm:"size:255" json:"street,omitempty"`
	City    string `gorm:"size:100" json:"city,omitempty"`
	State   string `gorm:"size:100" json:"state,omitempty"`
	Pincode string `gorm:"size:20" json:"pincode,omitempty"`
	Country string `gorm:"size:100" json:"country,omitempty"`
}

// IsZero reports whether no part of the address is set
func (a Address) IsZero() bool {
	return a == Address{}
}

// Lines formats the address for printing, skipping empty parts
func (a Address) Lines() []string {
	var lines []string
	if a.Street != "" {
		lines = append(lines, a.Street)
	}

	var cityLine []string
	for _, part := range []string{a.City, a.State} {
		if part != "" {
			cityLine = append(cityLine, part)
		}
	}
	line := strings.Join(cityLine, ", ")
	if a.Pincode != "" {
		if line != "" {
			line += " - "
		}
		line += a.Pincode
	}
	if line != "" {
		lines = append(lines, line)
	}
	if a.Country != "" {
		lines = append(lines, a.Country)
	}
	return lines
}

// CustomerSnapshot is the customer as it was when a document was written.
// Later edits to the customer record never reach issued documents.
type CustomerSnapshot struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	GSTNumber string     `json:"gst_number,omitempty"`
	Address   Address    `json:"address"`
}

// LineItem is one row of a quotation, invoice or preset. Product fields are
// copied at write time.
type LineItem struct {
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	ProductName string     `json:"product_name"`
	Description string     `json:"description,omitempty"`
	HSNCode     string     `json:"hsn_code,omitempty"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit"`
	Price       float64    `json:"price"`
	TaxRate     float64    `json:"tax_rate"`
	LineTotal   float64    `json:"line_total"`
}

// LineItems keeps document order
type LineItems []LineItem

// Clone returns a deep copy so duplicated documents never share backing arrays
func (l LineItems) Clone() LineItems {
	if l == nil {
		return LineItems{}
	}
	out := make(LineItems, len(l))
	for i, item := range l {
		if item.ProductID != nil {
			id := *item.ProductID
			item.ProductID = &id
		}
		out[i] = item
	}
	return out
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
