package colony

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/apiarylab/swarmtrack/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	colonyKeyPrefix        = "colony:"
	sessionColoniesPrefix  = "session_colonies:"
	sessionHivesPrefix     = "session_hives:"
	eventKeyPrefix         = "colony_event:"
	colonyEventIndexPrefix = "colony_events:"
)

var (
	// ErrColonyNotFound is returned when a colony is not found
	ErrColonyNotFound = errors.New("colony not found")

	// ErrUnexpectedStatus is returned when a guarded transition finds the
	// colony in a status outside the expected set
	ErrUnexpectedStatus = errors.New("colony not in expected status")

	// ErrConflict is returned when a guarded transition lost the race to a
	// concurrent update
	ErrConflict = errors.New("concurrent colony update conflict")
)

// Config holds configuration for the Redis colony repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed colony repository
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

// Create persists a colony, its session membership, the hive-uniqueness
// marker and the registration event in one pipeline
func (r *redisRepository) Create(ctx context.Context, input *CreateInput) (*models.Colony, error) {
	if input == nil || input.Colony == nil || input.Event == nil {
		return nil, errors.New("input, colony and event cannot be nil")
	}

	col := input.Colony

	colonyJSON, err := json.Marshal(col)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal colony: %w", err)
	}

	eventJSON, err := json.Marshal(input.Event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, colonyKeyPrefix+col.ID, colonyJSON, 0)
	pipe.SAdd(ctx, sessionColoniesPrefix+col.SessionID, col.ID)
	pipe.SAdd(ctx, sessionHivesPrefix+col.SessionID, col.HiveID)
	pipe.Set(ctx, eventKeyPrefix+input.Event.ID, eventJSON, 0)
	pipe.ZAdd(ctx, colonyEventIndexPrefix+col.ID, redis.Z{
		Score:  float64(input.Event.Date.UnixNano()),
		Member: input.Event.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to save colony: %w", err)
	}

	return col, nil
}

// Get retrieves a colony by ID from Redis
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*models.Colony, error) {
	if input == nil || input.ColonyID == "" {
		return nil, errors.New("input and colony ID cannot be empty")
	}

	colonyJSON, err := r.client.Get(ctx, colonyKeyPrefix+input.ColonyID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrColonyNotFound
		}
		return nil, fmt.Errorf("failed to get colony: %w", err)
	}

	var col models.Colony
	if err := json.Unmarshal([]byte(colonyJSON), &col); err != nil {
		return nil, fmt.Errorf("failed to unmarshal colony: %w", err)
	}

	return &col, nil
}

// ListBySession retrieves all colonies registered in a session
func (r *redisRepository) ListBySession(ctx context.Context, input *ListBySessionInput) ([]*models.Colony, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	colonyIDs, err := r.client.SMembers(ctx, sessionColoniesPrefix+input.SessionID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session colonies: %w", err)
	}

	if len(colonyIDs) == 0 {
		return []*models.Colony{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(colonyIDs))
	for i, id := range colonyIDs {
		cmds[i] = pipe.Get(ctx, colonyKeyPrefix+id)
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get colonies: %w", err)
	}

	colonies := make([]*models.Colony, 0, len(colonyIDs))
	for i, cmd := range cmds {
		colonyJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get colony %s: %w", colonyIDs[i], err)
		}

		var col models.Colony
		if err := json.Unmarshal([]byte(colonyJSON), &col); err != nil {
			return nil, fmt.Errorf("failed to unmarshal colony %s: %w", colonyIDs[i], err)
		}
		colonies = append(colonies, &col)
	}

	return colonies, nil
}

// HiveRegistered reports whether a hive already has a colony in a session
func (r *redisRepository) HiveRegistered(ctx context.Context, input *HiveRegisteredInput) (bool, error) {
	if input == nil || input.SessionID == "" || input.HiveID == "" {
		return false, errors.New("input, session ID and hive ID cannot be empty")
	}

	registered, err := r.client.SIsMember(ctx, sessionHivesPrefix+input.SessionID, input.HiveID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check hive registration: %w", err)
	}

	return registered, nil
}

// TransitionStatus performs a status-guarded conditional update under WATCH
// on the colony key. The status change and the optional event append commit
// together or not at all. A colony moved by a concurrent call fails with
// ErrConflict; a colony found outside the expected statuses fails with
// ErrUnexpectedStatus.
func (r *redisRepository) TransitionStatus(ctx context.Context, input *TransitionStatusInput) (*models.Colony, error) {
	if input == nil || input.ColonyID == "" || len(input.From) == 0 {
		return nil, errors.New("input, colony ID and expected statuses cannot be empty")
	}

	colonyKey := colonyKeyPrefix + input.ColonyID
	var updated *models.Colony

	txf := func(tx *redis.Tx) error {
		colonyJSON, err := tx.Get(ctx, colonyKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrColonyNotFound
			}
			return fmt.Errorf("failed to get colony: %w", err)
		}

		var col models.Colony
		if err := json.Unmarshal([]byte(colonyJSON), &col); err != nil {
			return fmt.Errorf("failed to unmarshal colony: %w", err)
		}

		expected := false
		for _, from := range input.From {
			if col.Status == from {
				expected = true
				break
			}
		}
		if !expected {
			return fmt.Errorf("%w: colony %s is %s", ErrUnexpectedStatus, col.ID, col.Status)
		}

		col.Status = input.To
		col.UpdatedAt = input.UpdatedAt

		updatedJSON, err := json.Marshal(&col)
		if err != nil {
			return fmt.Errorf("failed to marshal colony: %w", err)
		}

		var eventJSON []byte
		if input.Event != nil {
			eventJSON, err = json.Marshal(input.Event)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, colonyKey, updatedJSON, 0)
			if input.Event != nil {
				pipe.Set(ctx, eventKeyPrefix+input.Event.ID, eventJSON, 0)
				pipe.ZAdd(ctx, colonyEventIndexPrefix+col.ID, redis.Z{
					Score:  float64(input.Event.Date.UnixNano()),
					Member: input.Event.ID,
				})
			}
			return nil
		})
		if err != nil {
			return err
		}

		updated = &col
		return nil
	}

	err := r.client.Watch(ctx, txf, colonyKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ListEvents retrieves a colony's events ordered by event date
func (r *redisRepository) ListEvents(ctx context.Context, input *ListEventsInput) ([]*models.Event, error) {
	if input == nil || input.ColonyID == "" {
		return nil, errors.New("input and colony ID cannot be empty")
	}

	return r.eventsInOrder(ctx, input.ColonyID, false)
}

// LatestIntroduction retrieves a colony's most recent introduction event
func (r *redisRepository) LatestIntroduction(ctx context.Context, input *LatestIntroductionInput) (*models.Event, error) {
	if input == nil || input.ColonyID == "" {
		return nil, errors.New("input and colony ID cannot be empty")
	}

	events, err := r.eventsInOrder(ctx, input.ColonyID, true)
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		if event.Type.IsIntroduction() {
			return event, nil
		}
	}

	return nil, nil
}

func (r *redisRepository) eventsInOrder(ctx context.Context, colonyID string, newestFirst bool) ([]*models.Event, error) {
	indexKey := colonyEventIndexPrefix + colonyID

	var eventIDs []string
	var err error
	if newestFirst {
		eventIDs, err = r.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	} else {
		eventIDs, err = r.client.ZRange(ctx, indexKey, 0, -1).Result()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get colony events: %w", err)
	}

	if len(eventIDs) == 0 {
		return []*models.Event{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(eventIDs))
	for i, id := range eventIDs {
		cmds[i] = pipe.Get(ctx, eventKeyPrefix+id)
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	events := make([]*models.Event, 0, len(eventIDs))
	for i, cmd := range cmds {
		eventJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get event %s: %w", eventIDs[i], err)
		}

		var event models.Event
		if err := json.Unmarshal([]byte(eventJSON), &event); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event %s: %w", eventIDs[i], err)
		}
		events = append(events, &event)
	}

	return events, nil
}
