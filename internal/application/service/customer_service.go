package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/apperror"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput carries the full customer record for create and replace
type CustomerInput struct {
	Name      string
	Email     *string
	Phone     *string
	GSTNumber *string
	Address   entity.Address
}

func (in *CustomerInput) apply(c *entity.Customer) {
	c.Name = strings.TrimSpace(in.Name)
	c.Email = optionalString(in.Email)
	c.Phone = optionalString(in.Phone)
	c.GSTNumber = optionalString(in.GSTNumber)
	c.Address = in.Address
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := collect(required("name", input.Name)); err != nil {
		return nil, err
	}

	customer := &entity.Customer{TenantID: tenantID}
	input.apply(customer)

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, mapWriteError(err, "Customer")
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists the tenant's customers, newest first
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}
	return pagination.Paginate(params, func(p *pagination.PaginationParams) ([]entity.Customer, int64, error) {
		return s.customerRepo.List(ctx, p, search)
	})
}

// UpdateCustomer replaces a customer record
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := collect(required("name", input.Name)); err != nil {
		return nil, err
	}

	input.apply(customer)
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, mapWriteError(err, "Customer")
	}
	return customer, nil
}

// DeleteCustomer hard-deletes a customer. Documents keep their snapshot.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := tenantFromContext(ctx); err != nil {
		return err
	}
	return mapWriteError(s.customerRepo.Delete(ctx, id), "Customer")
}
