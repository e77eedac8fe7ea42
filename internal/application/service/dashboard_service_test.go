package service_test

import (
	"testing"
	"time"

	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		this, last int64
		want       float64
	}{
		{0, 0, 0},
		{5, 0, 100},
		{3, 3, 0},
		{3, 2, 50},
		{1, 3, -66.7},
		{2, 3, -33.3},
		{10, 4, 150},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, service.PercentageChange(tt.this, tt.last), "%d vs %d", tt.this, tt.last)
	}
}

func TestDashboardStats(t *testing.T) {
	s := newSuite(t)

	for _, name := range []string{"Ravi", "Meera"} {
		_, err := s.customers.CreateCustomer(s.acme.Ctx, &service.CustomerInput{Name: name})
		require.NoError(t, err)
	}
	_, err := s.customers.CreateCustomer(s.globex.Ctx, &service.CustomerInput{Name: "Other"})
	require.NoError(t, err)

	// one customer created two months ago counts towards the total only
	old := &entity.Customer{TenantID: s.acme.Tenant.ID, Name: "Legacy", CreatedAt: time.Now().AddDate(0, -2, -1)}
	require.NoError(t, s.db.Create(old).Error)

	_, err = s.quotations.CreateQuotation(s.acme.Ctx, &service.QuotationInput{Customer: walkInCustomer("Ravi"), Items: panelItem()})
	require.NoError(t, err)

	due := time.Now().AddDate(0, 0, 7)
	_, err = s.invoices.CreateInvoice(s.acme.Ctx, &service.InvoiceInput{
		Customer: walkInCustomer("Ravi"), Items: panelItem(), DueDate: &due, Status: enum.InvoiceStatusPaid,
	})
	require.NoError(t, err)
	_, err = s.invoices.CreateInvoice(s.acme.Ctx, &service.InvoiceInput{
		Customer: walkInCustomer("Meera"), Items: panelItem(), DueDate: &due, Status: enum.InvoiceStatusSent,
	})
	require.NoError(t, err)
	_, err = s.invoices.CreateInvoice(s.acme.Ctx, &service.InvoiceInput{
		Customer: walkInCustomer("Anand"), Items: panelItem(), DueDate: &due,
	})
	require.NoError(t, err)

	stats, err := s.dashboard.GetDashboardStats(s.acme.Ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Customers.Total)
	assert.Equal(t, int64(2), stats.Customers.ThisMonth)
	assert.Equal(t, int64(0), stats.Customers.LastMonth)
	assert.Equal(t, 100.0, stats.Customers.PercentageChange)
	assert.Equal(t, int64(1), stats.Quotations.Total)
	assert.Equal(t, int64(3), stats.Invoices.Total)
	assert.Equal(t, int64(0), stats.Proposals.Total)
	assert.Equal(t, 0.0, stats.Proposals.PercentageChange)
	assert.Equal(t, 236.0, stats.Revenue.Paid)
	assert.Equal(t, 236.0, stats.Revenue.Outstanding)
}
