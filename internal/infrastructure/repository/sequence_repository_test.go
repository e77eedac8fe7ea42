package repository_test

import (
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/repository"
	"github.com/sangkips/quotedesk-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceStartsAfterExistingDocuments(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.SeedTenant(t, db, "Acme")

	for i := 1; i <= 3; i++ {
		require.NoError(t, db.Create(&entity.Quotation{
			TenantID:   acme.Tenant.ID,
			Number:     fmt.Sprintf("QUO-%04d", i),
			Status:     enum.QuotationStatusSent,
			ValidUntil: time.Now(),
		}).Error)
	}

	seq := repository.NewSequenceRepository(db)

	next, err := seq.Next(acme.Ctx, acme.Tenant.ID, enum.DocumentTypeQuotation)
	require.NoError(t, err)
	assert.Equal(t, int64(4), next)

	next, err = seq.Next(acme.Ctx, acme.Tenant.ID, enum.DocumentTypeQuotation)
	require.NoError(t, err)
	assert.Equal(t, int64(5), next)

	peek, err := seq.Peek(acme.Ctx, acme.Tenant.ID, enum.DocumentTypeQuotation)
	require.NoError(t, err)
	assert.Equal(t, int64(5), peek)
}

func TestSequenceIsPerTenantAndType(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.SeedTenant(t, db, "Acme")
	globex := testutil.SeedTenant(t, db, "Globex")
	seq := repository.NewSequenceRepository(db)

	for i := 1; i <= 3; i++ {
		v, err := seq.Next(acme.Ctx, acme.Tenant.ID, enum.DocumentTypeInvoice)
		require.NoError(t, err)
		assert.Equal(t, int64(i), v)
	}

	v, err := seq.Next(globex.Ctx, globex.Tenant.ID, enum.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = seq.Next(acme.Ctx, acme.Tenant.ID, enum.DocumentTypeProposal)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestSequenceDoesNotReuseNumbersAfterDelete(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.SeedTenant(t, db, "Acme")
	seq := repository.NewSequenceRepository(db)
	quotations := repository.NewQuotationRepository(db)

	var last *entity.Quotation
	for i := 0; i < 2; i++ {
		v, err := seq.Next(acme.Ctx, acme.Tenant.ID, enum.DocumentTypeQuotation)
		require.NoError(t, err)
		last = &entity.Quotation{
			TenantID:   acme.Tenant.ID,
			Number:     fmt.Sprintf("QUO-%04d", v),
			Status:     enum.QuotationStatusSent,
			ValidUntil: time.Now(),
		}
		require.NoError(t, quotations.Create(acme.Ctx, last))
	}

	require.NoError(t, quotations.Delete(acme.Ctx, last.ID))

	v, err := seq.Next(acme.Ctx, acme.Tenant.ID, enum.DocumentTypeQuotation)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
}

func TestSequenceRejectsUnknownType(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.SeedTenant(t, db, "Acme")

	_, err := repository.NewSequenceRepository(db).Next(acme.Ctx, acme.Tenant.ID, enum.DocumentType("receipt"))
	assert.Error(t, err)
}

// drawConcurrently calls Next from n goroutines at once and returns the
// sorted results
func drawConcurrently(t *testing.T, seq *repository.SequenceRepository, tenant *testutil.Tenant, n int) []int64 {
	t.Helper()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		values []int64
		errs   []error
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			v, err := seq.Next(tenant.Ctx, tenant.Tenant.ID, enum.DocumentTypeQuotation)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			values = append(values, v)
		}()
	}
	close(start)
	wg.Wait()

	require.Empty(t, errs)
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}

func TestSequenceConcurrentFirstUse(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.SeedTenant(t, db, "Acme")
	seq := repository.NewSequenceRepository(db)

	const n = 20
	values := drawConcurrently(t, seq, acme, n)

	require.Len(t, values, n)
	for i, v := range values {
		assert.Equal(t, int64(i+1), v)
	}
}

func TestSequenceConcurrentAfterSeeding(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.SeedTenant(t, db, "Acme")

	for i := 1; i <= 2; i++ {
		require.NoError(t, db.Create(&entity.Quotation{
			TenantID:   acme.Tenant.ID,
			Number:     fmt.Sprintf("QUO-%04d", i),
			Status:     enum.QuotationStatusSent,
			ValidUntil: time.Now(),
		}).Error)
	}
	seq := repository.NewSequenceRepository(db)

	const n = 15
	values := drawConcurrently(t, seq, acme, n)

	require.Len(t, values, n)
	for i, v := range values {
		assert.Equal(t, int64(i+3), v)
	}
}
