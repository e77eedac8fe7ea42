package request

import (
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/internal/domain/pricing"
)

// ProposalRequest represents a solar proposal create or update request.
// Amounts are always computed server side.
type ProposalRequest struct {
	ClientName        string               `json:"client_name"`
	ClientLocation    string               `json:"client_location"`
	PlantCapacity     float64              `json:"plant_capacity"`
	ProjectType       string               `json:"project_type"`
	RoofType          string               `json:"roof_type"`
	PricePerKW        float64              `json:"price_per_kw"`
	GSTRate           *float64             `json:"gst_rate"`
	AdvancePercentage *float64             `json:"advance_percentage"`
	BalancePercentage *float64             `json:"balance_percentage"`
	BillOfMaterials   []entity.BOMItem     `json:"bill_of_materials"`
	ROI               *pricing.ROIOverride `json:"roi"`
	Terms             []string             `json:"terms"`
	ValidUntil        *Date                `json:"valid_until"`
	Status            string               `json:"status"`
}

func (r *ProposalRequest) ToInput() *service.ProposalInput {
	return &service.ProposalInput{
		ClientName:        r.ClientName,
		ClientLocation:    r.ClientLocation,
		PlantCapacity:     r.PlantCapacity,
		ProjectType:       enum.ProjectType(r.ProjectType),
		RoofType:          enum.RoofType(r.RoofType),
		PricePerKW:        r.PricePerKW,
		GSTRate:           r.GSTRate,
		AdvancePercentage: r.AdvancePercentage,
		BalancePercentage: r.BalancePercentage,
		BillOfMaterials:   r.BillOfMaterials,
		ROI:               r.ROI,
		Terms:             r.Terms,
		ValidUntil:        r.ValidUntil.ToTime(),
		Status:            enum.ProposalStatus(r.Status),
	}
}
