// Package cache is a read-through Redis cache for the public menu view.
// A nil *Cache is valid and disables caching entirely.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const publicMenuTTL = 5 * time.Minute

type Cache struct {
	rdb *redis.Client
}

// New returns nil when no address is configured.
func New(addr, password string) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func PublicMenuKey(menuID string) string {
	return "public_menu:" + menuID
}

// GetJSON reports whether key was present and decoded into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("cache get error:", err)
		}
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, publicMenuTTL).Err(); err != nil {
		log.Println("cache set error:", err)
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Println("cache delete error:", err)
	}
}
