package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// StatusCache keeps the latest evaluated status per report in Redis so read
// paths (e.g. a today-screen style dashboard) do not have to hit the
// reminder database.
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatusCache(redisURL string, ttl time.Duration) (*StatusCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &StatusCache{client: client, ttl: ttl}, nil
}

// SetStatus caches an evaluated status
func (sc *StatusCache) SetStatus(ctx context.Context, status *model.Status) error {
	if status == nil {
		return fmt.Errorf("cannot cache nil status")
	}

	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %v", err)
	}

	key := fmt.Sprintf("status:%s", status.ReportIdentifier)
	if err := sc.client.Set(ctx, key, data, sc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache status: %v", err)
	}
	return nil
}

// GetStatus retrieves a cached status, nil on cache miss
func (sc *StatusCache) GetStatus(ctx context.Context, reportIdentifier string) (*model.Status, error) {
	if reportIdentifier == "" {
		return nil, fmt.Errorf("reportIdentifier cannot be empty")
	}

	key := fmt.Sprintf("status:%s", reportIdentifier)
	data, err := sc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get status from cache: %v", err)
	}

	var status model.Status
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status: %v", err)
	}
	return &status, nil
}

// DeleteStatus drops a cached status, e.g. after its report was deleted
func (sc *StatusCache) DeleteStatus(ctx context.Context, reportIdentifier string) error {
	key := fmt.Sprintf("status:%s", reportIdentifier)
	return sc.client.Del(ctx, key).Err()
}
