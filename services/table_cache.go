package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

const tableListKey = "reservations:tables:list"

// TableCache holds the ordered table list between writes.
type TableCache interface {
	Get(ctx context.Context) ([]models.Table, bool)
	Set(ctx context.Context, tables []models.Table)
	Invalidate(ctx context.Context)
}

type NopTableCache struct{}

func (NopTableCache) Get(context.Context) ([]models.Table, bool) { return nil, false }
func (NopTableCache) Set(context.Context, []models.Table)         {}
func (NopTableCache) Invalidate(context.Context)                  {}

// RedisTableCache stores the list as JSON. Cache errors are logged and
// treated as misses.
type RedisTableCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTableCache returns a redis-backed cache, or a no-op cache when client is nil.
func NewTableCache(client *redis.Client, ttl time.Duration) TableCache {
	if client == nil {
		return NopTableCache{}
	}
	return &RedisTableCache{client: client, ttl: ttl}
}

func (c *RedisTableCache) Get(ctx context.Context) ([]models.Table, bool) {
	raw, err := c.client.Get(ctx, tableListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.ErrorLogger.Printf("table cache get: %v", err)
		}
		return nil, false
	}

	var tables []models.Table
	if err := json.Unmarshal(raw, &tables); err != nil {
		return nil, false
	}
	return tables, true
}

func (c *RedisTableCache) Set(ctx context.Context, tables []models.Table) {
	raw, err := json.Marshal(tables)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, tableListKey, raw, c.ttl).Err(); err != nil {
		utils.ErrorLogger.Printf("table cache set: %v", err)
	}
}

func (c *RedisTableCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, tableListKey).Err(); err != nil {
		utils.ErrorLogger.Printf("table cache invalidate: %v", err)
	}
}
