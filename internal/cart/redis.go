package cart

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const CartTTL = 30 * 24 * time.Hour // 30 jours

// RedisPersistence stocke le panier comme un blob JSON unique dans Redis
type RedisPersistence struct {
	client *redis.Client
}

func NewRedisPersistence(client *redis.Client) *RedisPersistence {
	return &RedisPersistence{client: client}
}

func (r *RedisPersistence) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisPersistence) Save(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, key, data, CartTTL).Err()
}

func (r *RedisPersistence) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisPersistence) Publish(ctx context.Context, channel, event string) error {
	return r.client.Publish(ctx, channel, event).Err()
}
