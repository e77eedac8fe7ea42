package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Proposal is a solar plant offer priced per kW of capacity
type Proposal struct {
	ID                uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	TenantID          uuid.UUID           `gorm:"type:uuid;not null;index;uniqueIndex:idx_proposals_tenant_number" json:"tenant_id"`
	Number            string              `gorm:"size:30;not null;uniqueIndex:idx_proposals_tenant_number" json:"number"`
	ClientName        string              `gorm:"size:255;not null" json:"client_name"`
	ClientLocation    string              `gorm:"size:255" json:"client_location"`
	PlantCapacity     float64             `gorm:"type:decimal(10,2);not null" json:"plant_capacity"`
	ProjectType       enum.ProjectType    `gorm:"size:30;not null" json:"project_type"`
	RoofType          enum.RoofType       `gorm:"size:30;not null" json:"roof_type"`
	PricePerKW        float64             `gorm:"column:price_per_kw;type:decimal(15,2);not null" json:"price_per_kw"`
	GSTRate           float64             `gorm:"column:gst_rate;type:decimal(5,2);not null" json:"gst_rate"`
	Amount            float64             `gorm:"type:decimal(15,2);not null" json:"amount"`
	GSTAmount         float64             `gorm:"column:gst_amount;type:decimal(15,2);not null" json:"gst_amount"`
	TotalAmount       float64             `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	AdvancePercentage float64             `gorm:"type:decimal(5,2);not null" json:"advance_percentage"`
	BalancePercentage float64             `gorm:"type:decimal(5,2);not null" json:"balance_percentage"`
	BillOfMaterials   []BOMItem           `gorm:"type:jsonb;serializer:json" json:"bill_of_materials"`
	ROI               ROIProjection       `gorm:"column:roi;type:jsonb;serializer:json" json:"roi"`
	Terms             []string            `gorm:"type:jsonb;serializer:json" json:"terms"`
	ValidUntil        time.Time           `gorm:"not null" json:"valid_until"`
	Status            enum.ProposalStatus `gorm:"size:20;not null;index" json:"status"`
	CreatedAt         time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new proposal
func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Proposal model
func (Proposal) TableName() string {
	return "proposals"
}

// ProposalUpdatableFields lists the columns a full update may replace
var ProposalUpdatableFields = []string{
	"client_name", "client_location", "plant_capacity", "project_type", "roof_type",
	"price_per_kw", "gst_rate", "amount", "gst_amount", "total_amount",
	"advance_percentage", "balance_percentage", "bill_of_materials", "roi", "terms",
	"valid_until", "status", "updated_at",
}

// BOMItem is one bill-of-materials row
type BOMItem struct {
	Description   string `json:"description"`
	Specification string `json:"specification"`
	Warranty      string `json:"warranty"`
}

// ROIProjection is the savings and environmental estimate of a plant
type ROIProjection struct {
	EnergyGenerationPerYear float64 `json:"energy_generation_per_year"`
	CO2SavingsPerYear       float64 `json:"co2_savings_per_year"`
	TotalSavings25Years     float64 `json:"total_savings_25_years"`
	TreesEquivalent         float64 `json:"trees_equivalent"`
	CO2EliminatedTotal      float64 `json:"co2_eliminated_total"`
	PaybackPeriodMin        float64 `json:"payback_period_min"`
	PaybackPeriodMax        float64 `json:"payback_period_max"`
}

// Duplicate copies the proposal body into a fresh, unsaved proposal
func (p *Proposal) Duplicate() *Proposal {
	dup := *p
	dup.ID = uuid.Nil
	dup.Number = ""
	dup.Status = ""
	dup.CreatedAt = time.Time{}
	dup.UpdatedAt = time.Time{}
	dup.BillOfMaterials = append([]BOMItem{}, p.BillOfMaterials...)
	dup.Terms = append([]string{}, p.Terms...)
	return &dup
}
