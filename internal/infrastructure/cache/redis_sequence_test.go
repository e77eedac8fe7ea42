package cache_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/quotedesk-api/internal/config"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSeeder reports a fixed last number per document type
type stubSeeder struct {
	mu    sync.Mutex
	last  map[enum.DocumentType]int64
	err   error
	calls int
}

func (s *stubSeeder) Peek(_ context.Context, _ uuid.UUID, docType enum.DocumentType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.last[docType], nil
}

func newSequence(t *testing.T, seeder cache.Seeder) (*cache.RedisSequence, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewRedisSequence(rdb, seeder, ""), mr
}

func TestRedisSequenceSeedsFromDatabase(t *testing.T) {
	seeder := &stubSeeder{last: map[enum.DocumentType]int64{enum.DocumentTypeQuotation: 7}}
	seq, mr := newSequence(t, seeder)
	ctx := context.Background()
	tenant := uuid.New()

	v, err := seq.Next(ctx, tenant, enum.DocumentTypeQuotation)
	require.NoError(t, err)
	assert.Equal(t, int64(8), v)

	v, err = seq.Next(ctx, tenant, enum.DocumentTypeQuotation)
	require.NoError(t, err)
	assert.Equal(t, int64(9), v)

	assert.Equal(t, 1, seeder.calls)
	stored, err := mr.Get(seq.Key(tenant, enum.DocumentTypeQuotation))
	require.NoError(t, err)
	assert.Equal(t, "9", stored)
}

func TestRedisSequenceKeepsExistingCounter(t *testing.T) {
	seeder := &stubSeeder{last: map[enum.DocumentType]int64{enum.DocumentTypeInvoice: 3}}
	seq, mr := newSequence(t, seeder)
	tenant := uuid.New()

	require.NoError(t, mr.Set(seq.Key(tenant, enum.DocumentTypeInvoice), "41"))

	v, err := seq.Next(context.Background(), tenant, enum.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
	assert.Zero(t, seeder.calls)
}

func TestRedisSequenceIsPerTenantAndType(t *testing.T) {
	seq, _ := newSequence(t, &stubSeeder{})
	ctx := context.Background()
	acme, globex := uuid.New(), uuid.New()

	for i := 1; i <= 3; i++ {
		v, err := seq.Next(ctx, acme, enum.DocumentTypeInvoice)
		require.NoError(t, err)
		assert.Equal(t, int64(i), v)
	}

	v, err := seq.Next(ctx, globex, enum.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = seq.Next(ctx, acme, enum.DocumentTypeProposal)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	assert.NotEqual(t, seq.Key(acme, enum.DocumentTypeInvoice), seq.Key(globex, enum.DocumentTypeInvoice))
}

func TestRedisSequenceConcurrentDraws(t *testing.T) {
	seq, _ := newSequence(t, &stubSeeder{last: map[enum.DocumentType]int64{enum.DocumentTypeQuotation: 5}})
	tenant := uuid.New()

	const n = 25
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		values []int64
		errs   []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := seq.Next(context.Background(), tenant, enum.DocumentTypeQuotation)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			values = append(values, v)
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	require.Len(t, values, n)
	for i, v := range values {
		assert.Equal(t, int64(i+6), v)
	}
}

func TestRedisSequenceErrors(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		seq, _ := newSequence(t, &stubSeeder{})
		_, err := seq.Next(context.Background(), uuid.New(), enum.DocumentType("receipt"))
		assert.Error(t, err)
	})

	t.Run("seeder failure leaves key unset", func(t *testing.T) {
		seq, mr := newSequence(t, &stubSeeder{err: errors.New("db down")})
		tenant := uuid.New()

		_, err := seq.Next(context.Background(), tenant, enum.DocumentTypeQuotation)
		require.Error(t, err)
		assert.False(t, mr.Exists(seq.Key(tenant, enum.DocumentTypeQuotation)))
	})

	t.Run("redis unavailable", func(t *testing.T) {
		seq, mr := newSequence(t, &stubSeeder{})
		mr.Close()

		_, err := seq.Next(context.Background(), uuid.New(), enum.DocumentTypeQuotation)
		assert.Error(t, err)
	})
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := cache.NewRedisClient(context.Background(), &config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	require.NoError(t, rdb.Close())

	addr := mr.Addr()
	mr.Close()
	_, err = cache.NewRedisClient(context.Background(), &config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
