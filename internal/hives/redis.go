package hives

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	hiveKeyPrefix  = "hive:"
	tokenKeyPrefix = "hive_token:"
)

// Config holds configuration for the Redis hive registry
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRegistry implements the Registry interface against the hive records
// the surrounding application maintains in Redis
type redisRegistry struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed hive registry
func NewRedis(cfg *Config) (*redisRegistry, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisRegistry{
		client: cfg.RedisClient,
	}, nil
}

// ResolveHive resolves a direct hive identifier, checked against the site
func (r *redisRegistry) ResolveHive(ctx context.Context, siteID, hiveID string) (*Hive, error) {
	if siteID == "" || hiveID == "" {
		return nil, ErrHiveNotFound
	}

	return r.getSiteHive(ctx, siteID, hiveID)
}

// ResolveToken resolves a scanned public token, checked against the site
func (r *redisRegistry) ResolveToken(ctx context.Context, siteID, token string) (*Hive, error) {
	if siteID == "" || token == "" {
		return nil, ErrHiveNotFound
	}

	hiveID, err := r.client.Get(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrHiveNotFound
		}
		return nil, fmt.Errorf("failed to resolve hive token: %w", err)
	}

	return r.getSiteHive(ctx, siteID, hiveID)
}

func (r *redisRegistry) getSiteHive(ctx context.Context, siteID, hiveID string) (*Hive, error) {
	hiveJSON, err := r.client.Get(ctx, hiveKeyPrefix+hiveID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrHiveNotFound
		}
		return nil, fmt.Errorf("failed to get hive: %w", err)
	}

	var hive Hive
	if err := json.Unmarshal([]byte(hiveJSON), &hive); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hive: %w", err)
	}

	// A token or id pointing at a hive on another site is treated as absent,
	// never silently reassigned.
	if hive.SiteID != siteID {
		return nil, ErrHiveNotFound
	}

	return &hive, nil
}
