package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/commercelab/orderflow/internal/domain/customer"
	"github.com/commercelab/orderflow/internal/observability"
	"github.com/redis/go-redis/v9"
)

const keyspace = "orderflow"

// CustomerRepository is a read-through cache in front of another customer
// repository. Hits are served from Redis; misses fall through and populate
// the cache best-effort. Not-found results are never cached.
type CustomerRepository struct {
	inner  domain.Repository
	client *redis.Client
	ttl    time.Duration
	log    observability.Logger
}

func NewCustomerRepository(addr string, inner domain.Repository, ttl time.Duration, logger observability.Logger) *CustomerRepository {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &CustomerRepository{
		inner:  inner,
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		log:    logger.With(observability.F("component", "customer_cache")),
	}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	key := cacheKey("customer", id)

	raw, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var c domain.Customer
		if jsonErr := json.Unmarshal([]byte(raw), &c); jsonErr == nil {
			return &c, nil
		}
		// Corrupt entry: drop it and fall through to the source.
		_ = r.client.Del(ctx, key).Err()
	case errors.Is(err, redis.Nil):
		// miss
	default:
		r.log.Warn("cache_read_failed",
			observability.F("key", key),
			observability.F("error", err),
		)
	}

	c, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(c); jsonErr == nil {
		if setErr := r.client.Set(ctx, key, payload, r.ttl).Err(); setErr != nil {
			r.log.Warn("cache_write_failed",
				observability.F("key", key),
				observability.F("error", setErr),
			)
		}
	}

	return c, nil
}

// Close releases the underlying Redis connection pool.
func (r *CustomerRepository) Close() error {
	return r.client.Close()
}

func cacheKey(kind, id string) string {
	return fmt.Sprintf("%s:%s:%s", keyspace, kind, id)
}
