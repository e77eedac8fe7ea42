package enum

// DocumentType identifies a numbered document kind
type DocumentType string

const (
	DocumentTypeQuotation DocumentType = "quotation"
	DocumentTypeInvoice   DocumentType = "invoice"
	DocumentTypeProposal  DocumentType = "proposal"
)

// Prefix is the leading part of the human readable document number
func (d DocumentType) Prefix() string {
	switch d {
	case DocumentTypeQuotation:
		return "QUO"
	case DocumentTypeInvoice:
		return "INV"
	case DocumentTypeProposal:
		return "PROP"
	}
	return ""
}

// TableName is the table holding documents of this type
func (d DocumentType) TableName() string {
	switch d {
	case DocumentTypeQuotation:
		return "quotations"
	case DocumentTypeInvoice:
		return "invoices"
	case DocumentTypeProposal:
		return "proposals"
	}
	return ""
}

func (d DocumentType) IsValid() bool {
	return d.Prefix() != ""
}
