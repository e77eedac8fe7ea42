// Package render lays out quotations, invoices and proposals as PDF and HTML.
// Views arrive fully computed and formatted: nothing here adds, multiplies
// or rounds an amount.
package render

import (
	"encoding/base64"
	"html/template"
	"strings"
)

// Placeholders printed when the business profile leaves a field empty
const (
	DefaultBusinessName  = "Your Business Name"
	DefaultAccountName   = "Account Holder Name"
	DefaultAccountNumber = "XXXXXXXXXXXX"
	DefaultBankName      = "Bank Name"
	DefaultIFSC          = "XXXX0000000"
	DefaultBranch        = "Branch"
)

// Picture is an embedded image such as a logo or a gallery photo
type Picture struct {
	Name     string
	MimeType string
	Data     []byte
}

// DataURI inlines the picture for HTML output
func (p Picture) DataURI() template.URL {
	return template.URL("data:" + p.MimeType + ";base64," + base64.StdEncoding.EncodeToString(p.Data))
}

// PictureFromDataURI decodes a base64 data URI. It returns nil for empty or
// malformed input so a broken logo never blocks a document.
func PictureFromDataURI(name, uri string) *Picture {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil
	}
	return &Picture{Name: name, MimeType: strings.TrimSuffix(meta, ";base64"), Data: data}
}

// Bank is the payment block
type Bank struct {
	AccountName   string
	AccountNumber string
	BankName      string
	IFSC          string
	Branch        string
	UPIID         string
}

// Business is the letterhead of the issuing tenant
type Business struct {
	Name         string
	Tagline      string
	GSTNumber    string
	AddressLines []string
	Phone        string
	Email        string
	Website      string
	Logo         *Picture
	Signature    *Picture
	Bank         Bank
}

// withDefaults fills the fields every layout prints unconditionally
func (b Business) withDefaults() Business {
	if b.Name == "" {
		b.Name = DefaultBusinessName
	}
	if b.Bank.AccountName == "" {
		b.Bank.AccountName = DefaultAccountName
	}
	if b.Bank.AccountNumber == "" {
		b.Bank.AccountNumber = DefaultAccountNumber
	}
	if b.Bank.BankName == "" {
		b.Bank.BankName = DefaultBankName
	}
	if b.Bank.IFSC == "" {
		b.Bank.IFSC = DefaultIFSC
	}
	if b.Bank.Branch == "" {
		b.Bank.Branch = DefaultBranch
	}
	return b
}

// Contact joins the non-empty contact channels for a single printed line
func (b Business) Contact() string {
	var parts []string
	for _, p := range []string{b.Phone, b.Email, b.Website} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

// Party is the customer block
type Party struct {
	Name         string
	AddressLines []string
	Email        string
	Phone        string
	GSTNumber    string
}

// Line is one printed table row
type Line struct {
	No          int
	Name        string
	Description string
	HSNCode     string
	Quantity    string
	Unit        string
	Price       string
	TaxRate     string
	Amount      string
}

// Document is a quotation or an invoice ready for layout
type Document struct {
	Title     string // QUOTATION or INVOICE
	Number    string
	Date      string
	DateLabel string // "Valid Until" or "Due Date"
	DateValue string
	Status    string
	PaidOn    string

	Business Business
	Customer Party
	Lines    []Line
	ShowTax  bool

	Subtotal string
	Tax      string
	Total    string

	Notes string
	Terms string

	// Gallery is printed on a trailing "Our Work" page
	Gallery []Picture
}

// BOMRow is a bill-of-materials row
type BOMRow struct {
	No            int
	Description   string
	Specification string
	Warranty      string
}

// Metric is a labelled ROI figure
type Metric struct {
	Label string
	Value string
}

// Proposal is a solar proposal ready for layout
type Proposal struct {
	Number     string
	Date       string
	ValidUntil string
	Status     string

	Business       Business
	ClientName     string
	ClientLocation string

	Capacity    string
	ProjectType string
	RoofType    string

	PricePerKW string
	Amount     string
	GSTRate    string
	GSTAmount  string
	Total      string
	Advance    string
	Balance    string

	BillOfMaterials []BOMRow
	ROI             []Metric
	Payback         string
	Terms           []string
}
