package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
)

// DefaultUnit is used for products created without a unit of measure
const DefaultUnit = "nos"

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput carries the full product record for create and replace.
// Nil TaxRate and IsActive fall back to 18 and true.
type ProductInput struct {
	Name     string
	Price    float64
	Unit     string
	HSNCode  *string
	TaxRate  *float64
	IsActive *bool
}

func (in *ProductInput) validate() error {
	errs := []*apperror.FieldError{required("name", in.Name)}
	if in.Price < 0 {
		errs = append(errs, &apperror.FieldError{Field: "price", Message: "must not be negative"})
	}
	if in.TaxRate != nil && (*in.TaxRate < 0 || *in.TaxRate > 100) {
		errs = append(errs, &apperror.FieldError{Field: "tax_rate", Message: "must be between 0 and 100"})
	}
	return collect(errs...)
}

func (in *ProductInput) apply(p *entity.Product) {
	p.Name = strings.TrimSpace(in.Name)
	p.Price = in.Price
	p.Unit = strings.TrimSpace(in.Unit)
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}
	p.HSNCode = optionalString(in.HSNCode)
	p.TaxRate = entity.DefaultTaxRate
	if in.TaxRate != nil {
		p.TaxRate = *in.TaxRate
	}
	p.Status = enum.ProductStatusActive
	if in.IsActive != nil {
		p.Status = enum.ProductStatusFromActive(*in.IsActive)
	}
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := &entity.Product{TenantID: tenantID}
	input.apply(product)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, mapWriteError(err, "Product")
	}
	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products. Item pickers pass Active=true so retired
// products never reach new documents.
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, filter repository.ProductFilter) (*pagination.PaginatedResult[entity.Product], error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}
	return pagination.Paginate(params, func(p *pagination.PaginationParams) ([]entity.Product, int64, error) {
		return s.productRepo.List(ctx, p, filter)
	})
}

// UpdateProduct replaces a product. Issued documents keep their snapshots.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	input.apply(product)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, mapWriteError(err, "Product")
	}
	return product, nil
}

// DeleteProduct hard-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := tenantFromContext(ctx); err != nil {
		return err
	}
	return mapWriteError(s.productRepo.Delete(ctx, id), "Product")
}

// ImportProductRow represents a single row from the import file
type ImportProductRow struct {
	// Line is the spreadsheet row number, used in error reports
	Line    int
	Name    string
	Price   string
	Unit    string
	HSNCode string
	TaxRate string
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportProducts validates and bulk-creates products from parsed import
// rows. Invalid rows are reported and skipped, the rest are stored.
func (s *ProductService) ImportProducts(ctx context.Context, rows []ImportProductRow) (*ImportResult, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{TotalRows: len(rows)}
	seenNames := make(map[string]int)
	var valid []entity.Product

	for i, row := range rows {
		rowNum := row.Line
		if rowNum == 0 {
			rowNum = i + 2 // row 1 is the header
		}

		name := strings.TrimSpace(row.Name)
		if name == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}
		if prev, ok := seenNames[strings.ToLower(name)]; ok {
			result.Errors = append(result.Errors, ImportRowError{
				Row:     rowNum,
				Field:   "name",
				Message: fmt.Sprintf("Duplicate name '%s' (same as row %d)", name, prev),
			})
			continue
		}

		price, err := parseCellNumber(row.Price, 0)
		if err != nil || price < 0 {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "price", Message: "Price must be a non-negative number"})
			continue
		}
		taxRate, err := parseCellNumber(row.TaxRate, entity.DefaultTaxRate)
		if err != nil || taxRate < 0 || taxRate > 100 {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "tax_rate", Message: "Tax rate must be between 0 and 100"})
			continue
		}

		seenNames[strings.ToLower(name)] = rowNum

		product := entity.Product{TenantID: tenantID}
		input := ProductInput{Name: name, Price: price, Unit: row.Unit, HSNCode: &row.HSNCode, TaxRate: &taxRate}
		input.apply(&product)
		valid = append(valid, product)
	}

	if err := s.productRepo.CreateBatch(ctx, valid); err != nil {
		return nil, apperror.NewInternalError(fmt.Errorf("import products: %w", err))
	}

	result.Successful = len(valid)
	result.Failed = len(result.Errors)
	return result, nil
}
