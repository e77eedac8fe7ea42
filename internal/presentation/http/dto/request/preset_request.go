package request

import "github.com/sangkips/quotedesk-api/internal/application/service"

// PresetRequest represents a preset create or update request
type PresetRequest struct {
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Items       []LineItemRequest `json:"items"`
}

func (r *PresetRequest) ToInput() *service.PresetInput {
	return &service.PresetInput{
		Name:        r.Name,
		Description: r.Description,
		Items:       lineItems(r.Items),
	}
}
