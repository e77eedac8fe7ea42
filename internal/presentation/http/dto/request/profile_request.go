package request

import "github.com/sangkips/quotedesk-api/internal/domain/entity"

// BusinessProfileRequest replaces the letterhead. Logo and signature are
// managed through the image upload endpoint and ignored here.
type BusinessProfileRequest struct {
	BusinessName string             `json:"business_name"`
	Tagline      string             `json:"tagline"`
	GSTNumber    string             `json:"gst_number"`
	Address      entity.Address     `json:"address"`
	Phone        string             `json:"phone"`
	Email        string             `json:"email"`
	Website      string             `json:"website"`
	Bank         entity.BankDetails `json:"bank"`
}

func (r *BusinessProfileRequest) ToProfile() entity.BusinessProfile {
	return entity.BusinessProfile{
		BusinessName: r.BusinessName,
		Tagline:      r.Tagline,
		GSTNumber:    r.GSTNumber,
		Address:      r.Address,
		Phone:        r.Phone,
		Email:        r.Email,
		Website:      r.Website,
		Bank:         r.Bank,
	}
}
