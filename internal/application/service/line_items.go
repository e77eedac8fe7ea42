package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/pricing"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
)

// LineItemInput is a document row as sent by the client. When ProductID is
// set, omitted name, unit, price, tax rate and HSN code are copied from the
// product as it is right now.
type LineItemInput struct {
	ProductID   *uuid.UUID
	ProductName string
	Description string
	HSNCode     string
	Quantity    float64
	Unit        string
	Price       *float64
	TaxRate     *float64
}

// itemResolver snapshots product fields into line items
type itemResolver struct {
	productRepo repository.ProductRepository
}

// resolve builds validated snapshot rows. Line totals are filled in later
// by the calculator.
func (r itemResolver) resolve(ctx context.Context, inputs []LineItemInput) (entity.LineItems, error) {
	var ids []uuid.UUID
	for _, in := range inputs {
		if in.ProductID != nil && needsProduct(in) {
			ids = append(ids, *in.ProductID)
		}
	}

	products, err := r.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make(entity.LineItems, 0, len(inputs))
	var fieldErrors []apperror.FieldError
	for i, in := range inputs {
		item := entity.LineItem{
			ProductID:   in.ProductID,
			ProductName: strings.TrimSpace(in.ProductName),
			Description: strings.TrimSpace(in.Description),
			HSNCode:     strings.TrimSpace(in.HSNCode),
			Quantity:    in.Quantity,
			Unit:        strings.TrimSpace(in.Unit),
		}
		if in.Price != nil {
			item.Price = *in.Price
		}
		if in.TaxRate != nil {
			item.TaxRate = *in.TaxRate
		}

		if in.ProductID != nil && needsProduct(in) {
			product, ok := products[*in.ProductID]
			if !ok {
				fieldErrors = append(fieldErrors, apperror.FieldError{
					Field:   fmt.Sprintf("items[%d].product_id", i),
					Message: "product not found",
				})
				continue
			}
			if !product.IsActive() {
				fieldErrors = append(fieldErrors, apperror.FieldError{
					Field:   fmt.Sprintf("items[%d].product_id", i),
					Message: "product is inactive",
				})
				continue
			}
			fillFromProduct(&item, in, product)
		}

		if item.Unit == "" {
			item.Unit = DefaultUnit
		}
		items = append(items, item)
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	if err := pricing.ValidateItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

func needsProduct(in LineItemInput) bool {
	return strings.TrimSpace(in.ProductName) == "" || in.Price == nil || in.TaxRate == nil ||
		strings.TrimSpace(in.Unit) == ""
}

func fillFromProduct(item *entity.LineItem, in LineItemInput, p *entity.Product) {
	snapshot := p.ToLineItem(in.Quantity)
	if item.ProductName == "" {
		item.ProductName = snapshot.ProductName
	}
	if in.Price == nil {
		item.Price = snapshot.Price
	}
	if in.TaxRate == nil {
		item.TaxRate = snapshot.TaxRate
	}
	if item.Unit == "" {
		item.Unit = snapshot.Unit
	}
	if item.HSNCode == "" {
		item.HSNCode = snapshot.HSNCode
	}
}
