// Package redisstate implements StateRepository on a Redis client.
package redisstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

// RedisStateRepository keys everything under a configurable prefix so
// multiple deployments can share one Redis.
type RedisStateRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisStateRepository(client *redis.Client, prefix string) *RedisStateRepository {
	if client == nil {
		panic("redis client cannot be nil for RedisStateRepository")
	}
	return &RedisStateRepository{client: client, prefix: prefix}
}

func (r *RedisStateRepository) tagCloudKey() string {
	return r.prefix + "tagcloud"
}

func (r *RedisStateRepository) lastSeenKey(userID uint) string {
	return fmt.Sprintf("%slastseen:%d", r.prefix, userID)
}

func (r *RedisStateRepository) GetTagCloud(ctx context.Context) ([]domain.TagCloudEntry, error) {
	raw, err := r.client.Get(ctx, r.tagCloudKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("redis: get tag cloud: %w", err)
	}
	var cloud []domain.TagCloudEntry
	if err := json.Unmarshal(raw, &cloud); err != nil {
		return nil, fmt.Errorf("redis: unmarshal tag cloud: %w", err)
	}
	return cloud, nil
}

func (r *RedisStateRepository) SetTagCloud(ctx context.Context, cloud []domain.TagCloudEntry, ttl time.Duration) error {
	raw, err := json.Marshal(cloud)
	if err != nil {
		return fmt.Errorf("redis: marshal tag cloud: %w", err)
	}
	if err := r.client.Set(ctx, r.tagCloudKey(), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set tag cloud: %w", err)
	}
	return nil
}

// AllowLastSeenWrite uses SETNX with the window as TTL: the first caller in
// a window wins, everyone else skips the DB write.
func (r *RedisStateRepository) AllowLastSeenWrite(ctx context.Context, userID uint, window time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.lastSeenKey(userID), 1, window).Result()
	if err != nil {
		return false, fmt.Errorf("redis: last-seen throttle for user %d: %w", userID, err)
	}
	return ok, nil
}
