package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	AdvertKeyPrefix = "advert:%d"
	AdvertsListKey  = "adverts:all"
)

const (
	AdvertTTL      = 10 * time.Minute
	AdvertsListTTL = 30 * time.Second
)

func AdvertKey(advertID uint) string {
	return fmt.Sprintf(AdvertKeyPrefix, advertID)
}

// GetJSON fetches key and unmarshals it into dest. Returns false on miss
// or when the cache is unavailable.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Corrupt entry; drop it so the next read repopulates.
		client.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON marshals value and stores it under key with the given TTL.
// Failures are silent; the cache is best-effort.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateAdvert(ctx context.Context, advertID uint) {
	Invalidate(ctx, AdvertKey(advertID))
	Invalidate(ctx, AdvertsListKey)
}

// InvalidateAdvertsList drops only the listing snapshot, used after a publish
// before the advert detail has ever been cached.
func InvalidateAdvertsList(ctx context.Context) {
	Invalidate(ctx, AdvertsListKey)
}
