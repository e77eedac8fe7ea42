package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
	"gorm.io/gorm"
)

var customerUpdatableFields = []string{
	"name", "email", "phone", "gst_number",
	"address_street", "address_city", "address_state", "address_pincode", "address_country",
	"updated_at",
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return findScoped[entity.Customer](ctx, r.db, id)
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return updateScoped(ctx, r.db, customer, customerUpdatableFields)
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteScoped[entity.Customer](ctx, r.db, id)
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return listScoped[entity.Customer](ctx, r.db, params, "name ASC", SearchScope(search, "name", "email", "phone", "gst_number"))
}
