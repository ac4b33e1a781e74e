package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
)

const latestKey = "coinwatch:latest"

// LatestCache keeps a short-lived snapshot of the latest sample per asset.
// It only ever fronts LatestPerAsset reads; range and summary queries always
// hit the store.
type LatestCache struct {
	Client *redis.Client
	TTL    time.Duration
}

var _ application.LatestCache = (*LatestCache)(nil)

func NewLatestCache(client *redis.Client, ttl time.Duration) *LatestCache {
	return &LatestCache{Client: client, TTL: ttl}
}

func (c *LatestCache) Get(ctx context.Context) (map[domain.Asset]domain.Sample, bool, error) {
	raw, err := c.Client.Get(ctx, latestKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var latest map[domain.Asset]domain.Sample
	if err := json.Unmarshal(raw, &latest); err != nil {
		return nil, false, err
	}
	return latest, true, nil
}

func (c *LatestCache) Set(ctx context.Context, latest map[domain.Asset]domain.Sample) error {
	raw, err := json.Marshal(latest)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, latestKey, raw, c.TTL).Err()
}
