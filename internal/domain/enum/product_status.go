package enum

// ProductStatus replaces deletion for products: inactive products are hidden
// from item pickers but stay valid on historical documents.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// ProductStatusFromActive maps the is_active API flag onto a status
func ProductStatusFromActive(active bool) ProductStatus {
	if active {
		return ProductStatusActive
	}
	return ProductStatusInactive
}

func (s ProductStatus) IsActive() bool {
	return s == ProductStatusActive
}
