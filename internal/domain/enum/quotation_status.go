package enum

// QuotationStatus represents the status of a quotation
type QuotationStatus string

const (
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
	QuotationStatusExpired  QuotationStatus = "expired"
)

// IsValid reports whether s is a known quotation status
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusSent, QuotationStatusAccepted, QuotationStatusRejected, QuotationStatusExpired:
		return true
	}
	return false
}

func (s QuotationStatus) String() string {
	return string(s)
}
