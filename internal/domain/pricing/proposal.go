package pricing

import (
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Constants of the solar projection. Savings and CO2 totals use a 22 year
// effective horizon over the 25 year plant life.
const (
	EnergyPerKWPerYear = 1600 // kWh generated per kW of capacity per year
	CO2PerKWPerYear    = 1.3  // tonnes of CO2 avoided per kW per year
	TariffPerKWh       = 8    // currency saved per kWh
	EffectiveYears     = 22
	TreesPerKW         = 62

	DefaultPaybackMin = 2.5
	DefaultPaybackMax = 3.5
)

// ProposalAmounts is the single-line pricing of a proposal
type ProposalAmounts struct {
	Amount      float64
	GSTAmount   float64
	TotalAmount float64
}

// CalculateProposal prices capacity × pricePerKW and adds GST on top
func CalculateProposal(capacityKW, pricePerKW, gstRate float64) ProposalAmounts {
	amount := decimal.NewFromFloat(capacityKW).Mul(decimal.NewFromFloat(pricePerKW)).Round(currencyPlaces)
	gst := amount.Mul(decimal.NewFromFloat(gstRate)).Div(hundred).Round(currencyPlaces)

	return ProposalAmounts{
		Amount:      toFloat(amount),
		GSTAmount:   toFloat(gst),
		TotalAmount: toFloat(amount.Add(gst)),
	}
}

// Project computes the default ROI block for a plant. Payback bounds are
// never derived from capacity, they start at the default pair.
func Project(capacityKW float64) entity.ROIProjection {
	capacity := decimal.NewFromFloat(capacityKW)
	energy := capacity.Mul(decimal.NewFromInt(EnergyPerKWPerYear))
	co2 := capacity.Mul(decimal.NewFromFloat(CO2PerKWPerYear))
	years := decimal.NewFromInt(EffectiveYears)

	return entity.ROIProjection{
		EnergyGenerationPerYear: toFloat(energy),
		CO2SavingsPerYear:       toFloat(co2),
		TotalSavings25Years:     toFloat(energy.Mul(decimal.NewFromInt(TariffPerKWh)).Mul(years)),
		TreesEquivalent:         toFloat(capacity.Mul(decimal.NewFromInt(TreesPerKW))),
		CO2EliminatedTotal:      toFloat(co2.Mul(years)),
		PaybackPeriodMin:        DefaultPaybackMin,
		PaybackPeriodMax:        DefaultPaybackMax,
	}
}

// ROIOverride carries caller supplied ROI figures. A nil field keeps the
// computed value, an explicit zero replaces it.
type ROIOverride struct {
	EnergyGenerationPerYear *float64 `json:"energy_generation_per_year"`
	CO2SavingsPerYear       *float64 `json:"co2_savings_per_year"`
	TotalSavings25Years     *float64 `json:"total_savings_25_years"`
	TreesEquivalent         *float64 `json:"trees_equivalent"`
	CO2EliminatedTotal      *float64 `json:"co2_eliminated_total"`
	PaybackPeriodMin        *float64 `json:"payback_period_min"`
	PaybackPeriodMax        *float64 `json:"payback_period_max"`
}

// ProjectWithOverride starts from Project and lets every supplied field of
// override win
func ProjectWithOverride(capacityKW float64, override *ROIOverride) entity.ROIProjection {
	roi := Project(capacityKW)
	if override == nil {
		return roi
	}

	pick := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	pick(&roi.EnergyGenerationPerYear, override.EnergyGenerationPerYear)
	pick(&roi.CO2SavingsPerYear, override.CO2SavingsPerYear)
	pick(&roi.TotalSavings25Years, override.TotalSavings25Years)
	pick(&roi.TreesEquivalent, override.TreesEquivalent)
	pick(&roi.CO2EliminatedTotal, override.CO2EliminatedTotal)
	pick(&roi.PaybackPeriodMin, override.PaybackPeriodMin)
	pick(&roi.PaybackPeriodMax, override.PaybackPeriodMax)
	return roi
}

// PaymentShare is the part of total due for a split percentage
func PaymentShare(total, percentage float64) float64 {
	share := decimal.NewFromFloat(total).Mul(decimal.NewFromFloat(percentage)).Div(hundred)
	return toFloat(share)
}
