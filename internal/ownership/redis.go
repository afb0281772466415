package ownership

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const siteKeyPrefix = "site:"

// Site is the slice of the external site registry the guard reads
type Site struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name,omitempty"`
}

// Config holds configuration for the Redis ownership guard
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisGuard implements the Guard interface against the site records the
// surrounding application maintains in Redis
type redisGuard struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed ownership guard
func NewRedis(cfg *Config) (*redisGuard, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisGuard{
		client: cfg.RedisClient,
	}, nil
}

// VerifySiteOwner checks the site record's owner against the operator
func (g *redisGuard) VerifySiteOwner(ctx context.Context, siteID, ownerID string) error {
	if siteID == "" || ownerID == "" {
		return ErrSiteNotFound
	}

	siteJSON, err := g.client.Get(ctx, siteKeyPrefix+siteID).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrSiteNotFound
		}
		return fmt.Errorf("failed to get site: %w", err)
	}

	var site Site
	if err := json.Unmarshal([]byte(siteJSON), &site); err != nil {
		return fmt.Errorf("failed to unmarshal site: %w", err)
	}

	if site.OwnerID != ownerID {
		return ErrSiteNotFound
	}

	return nil
}
