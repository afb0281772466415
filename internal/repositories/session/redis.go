package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/apiarylab/swarmtrack/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix    = "requeue_session:"
	siteActiveKeyPrefix = "site_active_session:"
	ownerIndexKeyPrefix = "owner_sessions:"

	// Retries for the optimistic open transaction before giving up
	maxOpenRetries = 3
)

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionClosed is returned when closing a session that is already closed
	ErrSessionClosed = errors.New("session already closed")

	// ErrConflict is returned when an optimistic transaction lost the race
	ErrConflict = errors.New("concurrent session update conflict")
)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// OpenExclusive persists a new session, superseding any open session on the
// site. The close-old/insert-new pair runs under WATCH on the site's active
// pointer so two concurrent opens can never both leave their session active.
func (r *redisRepository) OpenExclusive(ctx context.Context, input *OpenExclusiveInput) (*models.Session, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}

	sess := input.Session
	siteKey := siteActiveKeyPrefix + sess.SiteID

	txf := func(tx *redis.Tx) error {
		oldID, err := tx.Get(ctx, siteKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to get active session pointer: %w", err)
		}

		var old *models.Session
		if oldID != "" && oldID != sess.ID {
			oldJSON, err := tx.Get(ctx, sessionKeyPrefix+oldID).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return fmt.Errorf("failed to get previous session: %w", err)
			}
			if err == nil {
				old = &models.Session{}
				if err := json.Unmarshal([]byte(oldJSON), old); err != nil {
					return fmt.Errorf("failed to unmarshal previous session: %w", err)
				}
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if old != nil && old.Active {
				endedAt := sess.StartedAt
				old.Active = false
				old.EndedAt = &endedAt

				oldJSON, err := json.Marshal(old)
				if err != nil {
					return fmt.Errorf("failed to marshal previous session: %w", err)
				}
				pipe.Set(ctx, sessionKeyPrefix+old.ID, oldJSON, 0)
			}

			sessJSON, err := json.Marshal(sess)
			if err != nil {
				return fmt.Errorf("failed to marshal session: %w", err)
			}
			pipe.Set(ctx, sessionKeyPrefix+sess.ID, sessJSON, 0)
			pipe.Set(ctx, siteKey, sess.ID, 0)
			pipe.ZAdd(ctx, ownerIndexKeyPrefix+sess.OwnerID, redis.Z{
				Score:  float64(sess.StartedAt.Unix()),
				Member: sess.ID,
			})
			return nil
		})
		return err
	}

	for i := 0; i < maxOpenRetries; i++ {
		err := r.client.Watch(ctx, txf, siteKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return sess, nil
	}

	return nil, ErrConflict
}

// Get retrieves a session by ID from Redis
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessJSON, err := r.client.Get(ctx, sessionKeyPrefix+input.SessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(sessJSON), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &sess, nil
}

// GetActiveBySite retrieves the open session for a site via the site pointer
func (r *redisRepository) GetActiveBySite(ctx context.Context, input *GetActiveBySiteInput) (*models.Session, error) {
	if input == nil || input.SiteID == "" {
		return nil, errors.New("input and site ID cannot be empty")
	}

	siteKey := siteActiveKeyPrefix + input.SiteID
	sessionID, err := r.client.Get(ctx, siteKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active session pointer: %w", err)
	}

	sess, err := r.Get(ctx, &GetInput{SessionID: sessionID})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			// Stale pointer, clear it
			r.client.Del(ctx, siteKey)
			return nil, nil
		}
		return nil, err
	}

	if !sess.Active {
		return nil, nil
	}

	return sess, nil
}

// Close marks an open session as ended. Runs under WATCH on the session key
// so a concurrent close or supersede is detected rather than overwritten.
func (r *redisRepository) Close(ctx context.Context, input *CloseInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionKey := sessionKeyPrefix + input.SessionID
	var closed *models.Session

	txf := func(tx *redis.Tx) error {
		sessJSON, err := tx.Get(ctx, sessionKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to get session: %w", err)
		}

		var sess models.Session
		if err := json.Unmarshal([]byte(sessJSON), &sess); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		if !sess.Active || sess.EndedAt != nil {
			return ErrSessionClosed
		}

		siteKey := siteActiveKeyPrefix + sess.SiteID
		pointerID, err := tx.Get(ctx, siteKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to get active session pointer: %w", err)
		}

		endedAt := input.EndedAt
		sess.Active = false
		sess.EndedAt = &endedAt

		updatedJSON, err := json.Marshal(&sess)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionKey, updatedJSON, 0)
			if pointerID == sess.ID {
				pipe.Del(ctx, siteKey)
			}
			return nil
		})
		if err != nil {
			return err
		}

		closed = &sess
		return nil
	}

	err := r.client.Watch(ctx, txf, sessionKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}

	return closed, nil
}

// ListByOwner retrieves an owner's sessions started within [From, To],
// ordered by start time
func (r *redisRepository) ListByOwner(ctx context.Context, input *ListByOwnerInput) ([]*models.Session, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.New("input and owner ID cannot be empty")
	}

	sessionIDs, err := r.client.ZRangeByScore(ctx, ownerIndexKeyPrefix+input.OwnerID, &redis.ZRangeBy{
		Min: strconv.FormatInt(input.From.Unix(), 10),
		Max: strconv.FormatInt(input.To.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get owner sessions: %w", err)
	}

	if len(sessionIDs) == 0 {
		return []*models.Session{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(sessionIDs))
	for i, id := range sessionIDs {
		cmds[i] = pipe.Get(ctx, sessionKeyPrefix+id)
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(sessionIDs))
	for i, cmd := range cmds {
		sessJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Index entry without a record, skip it
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", sessionIDs[i], err)
		}

		var sess models.Session
		if err := json.Unmarshal([]byte(sessJSON), &sess); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionIDs[i], err)
		}
		sessions = append(sessions, &sess)
	}

	return sessions, nil
}
