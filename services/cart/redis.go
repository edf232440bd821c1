package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resonance/models"

	"github.com/go-redis/redis/v8"
)

// DefaultCartTTL is how long an untouched cart survives.
const DefaultCartTTL = 30 * 24 * time.Hour

// RedisPersister stores each cart as a JSON document.
type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPersister(client *redis.Client, ttl time.Duration) *RedisPersister {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &RedisPersister{client: client, ttl: ttl}
}

func (p *RedisPersister) Load(ctx context.Context, key string) ([]models.CartItem, error) {
	raw, err := p.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// A corrupt cart is discarded rather than blocking the customer.
		_ = p.client.Del(ctx, key).Err()
		return nil, nil
	}
	return items, nil
}

func (p *RedisPersister) Save(ctx context.Context, key string, items []models.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := p.client.Set(ctx, key, raw, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (p *RedisPersister) Delete(ctx context.Context, key string) error {
	if err := p.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
