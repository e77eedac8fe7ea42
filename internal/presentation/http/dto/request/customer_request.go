package request

import (
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
)

// CustomerRequest is used for both create and update. Update replaces every field.
type CustomerRequest struct {
	Name      string         `json:"name"`
	Email     *string        `json:"email"`
	Phone     *string        `json:"phone"`
	GSTNumber *string        `json:"gst_number"`
	Address   entity.Address `json:"address"`
}

func (r *CustomerRequest) ToInput() *service.CustomerInput {
	return &service.CustomerInput{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		GSTNumber: r.GSTNumber,
		Address:   r.Address,
	}
}
