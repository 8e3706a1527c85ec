package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis server. Records are plain string keys
// holding JSON values with no TTL; the tracking subsystem treats them as
// durable.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing client. All keys are namespaced with prefix to
// keep visitor records apart from other application data.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Load(ctx context.Context, key string, v any) error {
	if key == "" {
		return ErrInvalidKey
	}

	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrNotFound
	}
	return nil
}

func (r *Redis) Save(ctx context.Context, key string, v any) error {
	if key == "" {
		return ErrInvalidKey
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.prefix+key, raw, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
