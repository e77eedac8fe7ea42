package service_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoiceIsAlwaysTaxed(t *testing.T) {
	s := newSuite(t)

	_, err := s.invoices.CreateInvoice(s.acme.Ctx, &service.InvoiceInput{Customer: walkInCustomer("Ravi"), Items: panelItem()})
	requireStatus(t, err, http.StatusBadRequest)

	inv, err := s.invoices.CreateInvoice(s.acme.Ctx, &service.InvoiceInput{
		Customer: walkInCustomer("Ravi"),
		Items:    panelItem(),
		DueDate:  ptr(time.Now().AddDate(0, 0, 10)),
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", inv.Number)
	assert.Equal(t, enum.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, 236.0, inv.Total)
	assert.Nil(t, inv.PaidDate)
	assert.Equal(t, 1, s.observer.issued["invoice"])
}

func TestMarkingInvoicePaidStampsPaidDate(t *testing.T) {
	s := newSuite(t)

	due := time.Now().AddDate(0, 0, 10)
	inv, err := s.invoices.CreateInvoice(s.acme.Ctx, &service.InvoiceInput{Customer: walkInCustomer("Ravi"), Items: panelItem(), DueDate: &due})
	require.NoError(t, err)

	paid, err := s.invoices.UpdateInvoice(s.acme.Ctx, inv.ID, &service.InvoiceInput{
		Customer: walkInCustomer("Ravi"),
		Items:    panelItem(),
		Status:   enum.InvoiceStatusPaid,
	})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidDate)
	assert.WithinDuration(t, time.Now(), *paid.PaidDate, time.Minute)
	assert.WithinDuration(t, due, paid.DueDate, time.Second)

	explicit := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	inv2, err := s.invoices.CreateInvoice(s.acme.Ctx, &service.InvoiceInput{
		Customer: walkInCustomer("Meera"),
		Items:    panelItem(),
		DueDate:  &due,
		Status:   enum.InvoiceStatusPaid,
		PaidDate: &explicit,
	})
	require.NoError(t, err)
	require.NotNil(t, inv2.PaidDate)
	assert.True(t, explicit.Equal(*inv2.PaidDate))
}

func TestInvoiceRejectsUnknownStatus(t *testing.T) {
	s := newSuite(t)

	_, err := s.invoices.CreateInvoice(s.acme.Ctx, &service.InvoiceInput{
		Customer: walkInCustomer("Ravi"),
		Items:    panelItem(),
		DueDate:  ptr(time.Now()),
		Status:   "accepted",
	})
	appErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "status", appErr.Errors[0].Field)
}

func TestInvoicesAreInvisibleAcrossTenants(t *testing.T) {
	s := newSuite(t)

	inv, err := s.invoices.CreateInvoice(s.acme.Ctx, &service.InvoiceInput{Customer: walkInCustomer("Ravi"), Items: panelItem(), DueDate: ptr(time.Now())})
	require.NoError(t, err)

	_, err = s.invoices.GetInvoice(s.globex.Ctx, inv.ID)
	requireNotFound(t, err)
	requireNotFound(t, s.invoices.DeleteInvoice(s.globex.Ctx, inv.ID))
	require.NoError(t, s.invoices.DeleteInvoice(s.acme.Ctx, inv.ID))
}
