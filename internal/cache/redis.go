package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tablebook/config"
	"tablebook/internal/domain"
)

// RedisCache keeps the floor plan (table list) hot. Occupancy changes every
// few minutes at most, so a short TTL plus explicit invalidation on every
// table mutation keeps reads cheap without serving stale seating state.
type RedisCache struct {
	client    *redis.Client
	tablesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, tablesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		tablesTTL: tablesTTL,
	}
}

func (c *RedisCache) GetTables(ctx context.Context) ([]domain.Table, error) {
	data, err := c.client.Get(ctx, tablesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var tables []domain.Table
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (c *RedisCache) SetTables(ctx context.Context, tables []domain.Table) error {
	payload, err := json.Marshal(tables)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tablesKey(), payload, c.tablesTTL).Err()
}

func (c *RedisCache) InvalidateTables(ctx context.Context) error {
	return c.client.Del(ctx, tablesKey()).Err()
}

func tablesKey() string {
	return "cache:tables"
}
