package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/viajastore/backend/internal/domain"
)

// Reserver claims slugs for a short time with SET NX PX.
// It satisfies service.SlugReserver.
type Reserver struct {
	rdb *redis.Client
}

// NewReserver constructs a Reserver on top of an existing client.
func NewReserver(rdb *redis.Client) *Reserver {
	return &Reserver{rdb: rdb}
}

// Key returns the Redis key holding the reservation of slug in collection c.
func Key(c domain.Collection, slug string) string {
	return "slug:" + string(c) + ":" + slug
}

// Reserve claims slug for ttl. It returns false when another caller already
// holds the reservation.
func (r *Reserver) Reserve(ctx context.Context, c domain.Collection, slug string, ttl time.Duration) (bool, error) {
	ok, err := r.rdb.SetNX(ctx, Key(c, slug), time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("cache.Reserver.Reserve: %w", err)
	}
	return ok, nil
}

// Release drops a reservation. Releasing a missing key is not an error.
func (r *Reserver) Release(ctx context.Context, c domain.Collection, slug string) error {
	if err := r.rdb.Del(ctx, Key(c, slug)).Err(); err != nil {
		return fmt.Errorf("cache.Reserver.Release: %w", err)
	}
	return nil
}
