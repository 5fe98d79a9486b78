package redistoken

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"hotel_recommender/internal/adapters/observability"
)

const tokenKey = "amadeus:bearer_token"

// Cache holds the upstream bearer token in Redis so concurrent API processes
// share one OAuth exchange per token lifetime. Any Redis failure is reported
// as a miss; the caller just re-authenticates.
type Cache struct {
	c *redis.Client
}

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (t *Cache) Token(ctx context.Context) (string, bool) {
	v, err := t.c.Get(ctx, tokenKey).Result()
	if err == redis.Nil {
		observability.ObserveCache("token", "miss")
		return "", false
	}
	if err != nil {
		log.Warn().Err(err).Msg("token cache read failed, treating as miss")
		observability.ObserveCache("token", "miss")
		return "", false
	}
	observability.ObserveCache("token", "hit")
	return v, true
}

func (t *Cache) Store(ctx context.Context, token string, ttl time.Duration) error {
	observability.ObserveCache("token", "set")
	return t.c.Set(ctx, tokenKey, token, ttl).Err()
}
