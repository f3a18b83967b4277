package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/timelessstrands/storefront-backend/pkg/logger"
	"github.com/timelessstrands/storefront-backend/pkg/redis"
)

// slotStore is the Redis surface the cart store depends on.
type slotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(token string) string
}

// Store persists one JSON cart slot per shopper token. Carts are a
// convenience cache: a missing or unreadable slot degrades to an empty
// cart rather than an error.
type Store struct {
	redis slotStore
	ttl   time.Duration
	logg  *logger.Logger
}

// NewStore builds a cart store writing slots with the given TTL.
func NewStore(client *redis.Client, ttl time.Duration, logg *logger.Logger) *Store {
	return &Store{redis: client, ttl: ttl, logg: logg}
}

// Load reads the cart slot for the token. Missing and malformed slots both
// yield an empty cart; malformed slots are logged and dropped so the next
// save rewrites them cleanly.
func (s *Store) Load(ctx context.Context, token string) *Cart {
	cart := &Cart{}

	raw, err := s.redis.Get(ctx, s.redis.CartKey(token))
	if err != nil {
		if !redis.IsNilErr(err) && s.logg != nil {
			s.logg.Warn(s.logg.WithCartToken(ctx, token), "loading cart slot failed")
		}
		return cart
	}

	if err := json.Unmarshal([]byte(raw), cart); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithCartToken(ctx, token), "discarding malformed cart slot")
		}
		return &Cart{}
	}

	return cart
}

// Save writes the cart slot, refreshing its TTL. An empty cart deletes the
// slot instead of storing an empty document.
func (s *Store) Save(ctx context.Context, token string, cart *Cart) error {
	key := s.redis.CartKey(token)

	if cart == nil || cart.IsEmpty() {
		return s.redis.Del(ctx, key)
	}

	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key, payload, s.ttl)
}

// Delete drops the cart slot for the token.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.redis.Del(ctx, s.redis.CartKey(token))
}
