package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/repository"
	"github.com/sangkips/quotedesk-api/internal/testutil"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossTenantAccessLooksLikeMissing(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.SeedTenant(t, db, "Acme")
	globex := testutil.SeedTenant(t, db, "Globex")
	customers := repository.NewCustomerRepository(db)

	c := &entity.Customer{TenantID: globex.Tenant.ID, Name: "Globex Client"}
	require.NoError(t, customers.Create(globex.Ctx, c))

	got, err := customers.GetByID(acme.Ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	c.Name = "Hijacked"
	assert.ErrorIs(t, customers.Update(acme.Ctx, c), domainRepo.ErrNotFound)
	assert.ErrorIs(t, customers.Delete(acme.Ctx, c.ID), domainRepo.ErrNotFound)

	stored, err := customers.GetByID(globex.Ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Globex Client", stored.Name)

	list, total, err := customers.List(acme.Ctx, pagination.DefaultPagination(), "")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestMissingTenantMatchesNothing(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.SeedTenant(t, db, "Acme")
	products := repository.NewProductRepository(db)

	p := &entity.Product{TenantID: acme.Tenant.ID, Name: "Panel", Price: 10, Unit: "nos", TaxRate: 18}
	require.NoError(t, products.Create(acme.Ctx, p))

	got, err := products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateIsRestrictedToAllowlist(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.SeedTenant(t, db, "Acme")
	globex := testutil.SeedTenant(t, db, "Globex")
	quotations := repository.NewQuotationRepository(db)

	q := &entity.Quotation{
		TenantID:   acme.Tenant.ID,
		Number:     "QUO-0001",
		Status:     enum.QuotationStatusSent,
		ValidUntil: time.Now().Add(time.Hour),
		Items:      entity.LineItems{{ProductName: "Panel", Quantity: 1, Price: 10}},
	}
	require.NoError(t, quotations.Create(acme.Ctx, q))

	q.Number = "QUO-9999"
	q.TenantID = globex.Tenant.ID
	q.Status = enum.QuotationStatusAccepted
	require.NoError(t, quotations.Update(acme.Ctx, q))

	stored, err := quotations.GetByID(acme.Ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "QUO-0001", stored.Number)
	assert.Equal(t, acme.Tenant.ID, stored.TenantID)
	assert.Equal(t, enum.QuotationStatusAccepted, stored.Status)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Panel", stored.Items[0].ProductName)
}

func TestDuplicateNumberIsConflict(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.SeedTenant(t, db, "Acme")
	globex := testutil.SeedTenant(t, db, "Globex")
	invoices := repository.NewInvoiceRepository(db)

	first := &entity.Invoice{TenantID: acme.Tenant.ID, Number: "INV-0001", Status: enum.InvoiceStatusDraft, DueDate: time.Now()}
	require.NoError(t, invoices.Create(acme.Ctx, first))

	dup := &entity.Invoice{TenantID: acme.Tenant.ID, Number: "INV-0001", Status: enum.InvoiceStatusDraft, DueDate: time.Now()}
	assert.ErrorIs(t, invoices.Create(acme.Ctx, dup), domainRepo.ErrConflict)

	// the same number in another tenant is fine
	other := &entity.Invoice{TenantID: globex.Tenant.ID, Number: "INV-0001", Status: enum.InvoiceStatusDraft, DueDate: time.Now()}
	assert.NoError(t, invoices.Create(globex.Ctx, other))
}

func TestProductListFiltersActive(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.SeedTenant(t, db, "Acme")
	products := repository.NewProductRepository(db)

	require.NoError(t, products.Create(acme.Ctx, &entity.Product{TenantID: acme.Tenant.ID, Name: "Active Panel", Unit: "nos", Status: enum.ProductStatusActive}))
	require.NoError(t, products.Create(acme.Ctx, &entity.Product{TenantID: acme.Tenant.ID, Name: "Old Panel", Unit: "nos", Status: enum.ProductStatusInactive}))

	active := true
	list, total, err := products.List(acme.Ctx, pagination.DefaultPagination(), domainRepo.ProductFilter{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Active Panel", list[0].Name)

	list, total, err = products.List(acme.Ctx, pagination.DefaultPagination(), domainRepo.ProductFilter{Search: "PANEL"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)
}

func TestBrandImagesAppendInOrder(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.SeedTenant(t, db, "Acme")
	images := repository.NewBrandImageRepository(db)

	for _, name := range []string{"roof.png", "farm.jpg", "plant.png"} {
		require.NoError(t, images.Create(acme.Ctx, &entity.BrandImage{
			TenantID: acme.Tenant.ID, Name: name, MimeType: "image/png", Width: 10, Height: 10, Size: 3, Data: []byte{1, 2, 3},
		}))
	}

	list, err := images.List(acme.Ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "roof.png", list[0].Name)
	assert.Equal(t, 1, list[0].Position)
	assert.Equal(t, 3, list[2].Position)
}
