package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/apiarylab/swarmtrack/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	alertKeyPrefix         = "alert:"
	colonyOpenPrefix       = "colony_open_alerts:"
	ownerOpenPrefix        = "owner_open_alerts:"
	colonyHistoryKeyPrefix = "colony_alerts:"
)

var (
	// ErrConflict is returned when the close-and-create transaction lost
	// the race to a concurrent update
	ErrConflict = errors.New("concurrent alert update conflict")
)

// Config holds configuration for the Redis alert repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed alert repository
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

// Create persists a new open alert. Any alert still open for the colony is
// resolved inside the same WATCH transaction, so the one-open-alert
// invariant holds even if a caller forgot to resolve first.
func (r *redisRepository) Create(ctx context.Context, input *CreateInput) (*models.Alert, error) {
	if input == nil || input.Alert == nil {
		return nil, errors.New("input and alert cannot be nil")
	}

	a := input.Alert
	openKey := colonyOpenPrefix + a.ColonyID

	alertJSON, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal alert: %w", err)
	}

	txf := func(tx *redis.Tx) error {
		open, err := r.loadOpen(ctx, tx, a.ColonyID)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, prior := range open {
				if err := r.markDone(ctx, pipe, prior, input.Now); err != nil {
					return err
				}
			}

			pipe.Set(ctx, alertKeyPrefix+a.ID, alertJSON, 0)
			pipe.SAdd(ctx, openKey, a.ID)
			pipe.ZAdd(ctx, ownerOpenPrefix+a.OwnerID, redis.Z{
				Score:  float64(a.PlannedFor.Unix()),
				Member: a.ID,
			})
			pipe.ZAdd(ctx, colonyHistoryKeyPrefix+a.ColonyID, redis.Z{
				Score:  float64(a.PlannedFor.UnixNano()),
				Member: a.ID,
			})
			return nil
		})
		return err
	}

	err = r.client.Watch(ctx, txf, openKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}

	return a, nil
}

// ResolveOpen marks a colony's open alerts done
func (r *redisRepository) ResolveOpen(ctx context.Context, input *ResolveOpenInput) (int, error) {
	if input == nil || input.ColonyID == "" {
		return 0, errors.New("input and colony ID cannot be empty")
	}

	openKey := colonyOpenPrefix + input.ColonyID
	resolved := 0

	txf := func(tx *redis.Tx) error {
		open, err := r.loadOpen(ctx, tx, input.ColonyID)
		if err != nil {
			return err
		}

		if len(open) == 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, prior := range open {
				if err := r.markDone(ctx, pipe, prior, input.DoneAt); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		resolved = len(open)
		return nil
	}

	err := r.client.Watch(ctx, txf, openKey)
	if errors.Is(err, redis.TxFailedErr) {
		return 0, ErrConflict
	}
	if err != nil {
		return 0, err
	}

	return resolved, nil
}

// ListOpenByOwner retrieves an owner's open alerts planned within [From, To],
// ordered by planned-for date
func (r *redisRepository) ListOpenByOwner(ctx context.Context, input *ListOpenByOwnerInput) ([]*models.Alert, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.New("input and owner ID cannot be empty")
	}

	alertIDs, err := r.client.ZRangeByScore(ctx, ownerOpenPrefix+input.OwnerID, &redis.ZRangeBy{
		Min: strconv.FormatInt(input.From.Unix(), 10),
		Max: strconv.FormatInt(input.To.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get owner alerts: %w", err)
	}

	return r.getAlerts(ctx, alertIDs, true)
}

// ListByColony retrieves a colony's full alert history ordered by planned-for
func (r *redisRepository) ListByColony(ctx context.Context, input *ListByColonyInput) ([]*models.Alert, error) {
	if input == nil || input.ColonyID == "" {
		return nil, errors.New("input and colony ID cannot be empty")
	}

	alertIDs, err := r.client.ZRange(ctx, colonyHistoryKeyPrefix+input.ColonyID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get colony alerts: %w", err)
	}

	return r.getAlerts(ctx, alertIDs, false)
}

// loadOpen reads the colony's open alerts through the transaction connection
func (r *redisRepository) loadOpen(ctx context.Context, tx *redis.Tx, colonyID string) ([]*models.Alert, error) {
	ids, err := tx.SMembers(ctx, colonyOpenPrefix+colonyID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get open alerts: %w", err)
	}

	open := make([]*models.Alert, 0, len(ids))
	for _, id := range ids {
		alertJSON, err := tx.Get(ctx, alertKeyPrefix+id).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get alert %s: %w", id, err)
		}

		var a models.Alert
		if err := json.Unmarshal([]byte(alertJSON), &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal alert %s: %w", id, err)
		}
		open = append(open, &a)
	}

	return open, nil
}

// markDone queues the writes that resolve one alert
func (r *redisRepository) markDone(ctx context.Context, pipe redis.Pipeliner, a *models.Alert, doneAt time.Time) error {
	a.Done = true
	a.DoneAt = &doneAt

	doneJSON, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	pipe.Set(ctx, alertKeyPrefix+a.ID, doneJSON, 0)
	pipe.SRem(ctx, colonyOpenPrefix+a.ColonyID, a.ID)
	pipe.ZRem(ctx, ownerOpenPrefix+a.OwnerID, a.ID)
	return nil
}

// getAlerts fetches alerts by id, preserving the index order
func (r *redisRepository) getAlerts(ctx context.Context, alertIDs []string, openOnly bool) ([]*models.Alert, error) {
	if len(alertIDs) == 0 {
		return []*models.Alert{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(alertIDs))
	for i, id := range alertIDs {
		cmds[i] = pipe.Get(ctx, alertKeyPrefix+id)
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get alerts: %w", err)
	}

	alerts := make([]*models.Alert, 0, len(alertIDs))
	for i, cmd := range cmds {
		alertJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get alert %s: %w", alertIDs[i], err)
		}

		var a models.Alert
		if err := json.Unmarshal([]byte(alertJSON), &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal alert %s: %w", alertIDs[i], err)
		}

		if openOnly && a.Done {
			continue
		}
		alerts = append(alerts, &a)
	}

	return alerts, nil
}
