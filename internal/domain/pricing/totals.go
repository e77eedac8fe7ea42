// Package pricing holds the document arithmetic: line-item totals, proposal
// amounts, the ROI projection and number formatting. Everything here is pure.
package pricing

import (
	"fmt"

	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// currencyPlaces is the precision amounts are stored and displayed with
const currencyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Totals are the document level amounts
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// ValidateItems rejects rows the calculator must never see
func ValidateItems(items entity.LineItems) error {
	var fieldErrors []apperror.FieldError
	for i, item := range items {
		prefix := fmt.Sprintf("items[%d]", i)
		if item.ProductName == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: prefix + ".product_name", Message: "is required"})
		}
		if item.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: prefix + ".quantity", Message: "must be greater than 0"})
		}
		if item.Price < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: prefix + ".price", Message: "must not be negative"})
		}
		if item.TaxRate < 0 || item.TaxRate > 100 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: prefix + ".tax_rate", Message: "must be between 0 and 100"})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// Calculate fills LineTotal on every item and returns the document totals.
// Each item is taxed at its own rate. With applyTax false the tax is zero
// and line totals are the bare base amount.
func Calculate(items entity.LineItems, applyTax bool) Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero

	for i := range items {
		base := decimal.NewFromFloat(items[i].Quantity).Mul(decimal.NewFromFloat(items[i].Price))
		line := base
		if applyTax {
			itemTax := base.Mul(decimal.NewFromFloat(items[i].TaxRate)).Div(hundred)
			tax = tax.Add(itemTax)
			line = line.Add(itemTax)
		}
		subtotal = subtotal.Add(base)
		items[i].LineTotal = toFloat(line)
	}

	subtotal = subtotal.Round(currencyPlaces)
	tax = tax.Round(currencyPlaces)

	return Totals{
		Subtotal:  toFloat(subtotal),
		TaxAmount: toFloat(tax),
		Total:     toFloat(subtotal.Add(tax)),
	}
}

// LineTotal is the amount of a single row
func LineTotal(quantity, price, taxRate float64, applyTax bool) float64 {
	items := entity.LineItems{{Quantity: quantity, Price: price, TaxRate: taxRate}}
	Calculate(items, applyTax)
	return items[0].LineTotal
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(currencyPlaces).Float64()
	return f
}
