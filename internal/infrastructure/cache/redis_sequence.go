package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/quotedesk-api/internal/config"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
)

// Seeder reports the last number issued before Redis took over a key
type Seeder interface {
	Peek(ctx context.Context, tenantID uuid.UUID, docType enum.DocumentType) (int64, error)
}

// RedisSequence issues document numbers with INCR. A missing key is seeded
// once with SETNX from the database so numbering continues where the SQL
// counter left off.
type RedisSequence struct {
	rdb    *redis.Client
	seeder Seeder
	prefix string
}

var _ domainRepo.DocumentSequence = (*RedisSequence)(nil)

// NewRedisClient connects and pings the configured Redis
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// NewRedisSequence wraps rdb. Keys are namespaced by prefix.
func NewRedisSequence(rdb *redis.Client, seeder Seeder, prefix string) *RedisSequence {
	if prefix == "" {
		prefix = "docseq"
	}
	return &RedisSequence{rdb: rdb, seeder: seeder, prefix: prefix}
}

// Key is the Redis key holding the counter of a tenant and document type
func (s *RedisSequence) Key(tenantID uuid.UUID, docType enum.DocumentType) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, tenantID, docType)
}

func (s *RedisSequence) Next(ctx context.Context, tenantID uuid.UUID, docType enum.DocumentType) (int64, error) {
	if !docType.IsValid() {
		return 0, fmt.Errorf("unknown document type %q", docType)
	}
	key := s.Key(tenantID, docType)

	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis exists %s: %w", key, err)
	}
	if exists == 0 {
		last, err := s.seeder.Peek(ctx, tenantID, docType)
		if err != nil {
			return 0, fmt.Errorf("seed %s: %w", key, err)
		}
		// losing the race to another seeder is fine, both read the same value
		if err := s.rdb.SetNX(ctx, key, last, 0).Err(); err != nil {
			return 0, fmt.Errorf("redis setnx %s: %w", key, err)
		}
	}

	value, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return value, nil
}
