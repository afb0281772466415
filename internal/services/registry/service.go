package registry

import (
	"context"
	"errors"

	"github.com/apiarylab/swarmtrack/internal/common/clock"
	"github.com/apiarylab/swarmtrack/internal/common/uuid"
	"github.com/apiarylab/swarmtrack/internal/hives"
	"github.com/apiarylab/swarmtrack/internal/models"
	"github.com/apiarylab/swarmtrack/internal/ownership"
	colonyRepo "github.com/apiarylab/swarmtrack/internal/repositories/colony"
	sessionRepo "github.com/apiarylab/swarmtrack/internal/repositories/session"
)

// Config holds the dependencies for the registry service
type Config struct {
	SessionRepo sessionRepo.Repository
	ColonyRepo  colonyRepo.Repository
	Hives       hives.Registry
	Guard       ownership.Guard
	Clock       clock.Clock
	UUID        uuid.UUID
}

// service implements the Service interface
type service struct {
	sessionRepo sessionRepo.Repository
	colonyRepo  colonyRepo.Repository
	hives       hives.Registry
	guard       ownership.Guard
	clock       clock.Clock
	uuid        uuid.UUID
}

// New creates a new registry service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.ColonyRepo == nil {
		return nil, ErrNilColonyRepo
	}

	if cfg.Hives == nil {
		return nil, ErrNilHiveRegistry
	}

	if cfg.Guard == nil {
		return nil, ErrNilGuard
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUID == nil {
		return nil, ErrNilUUID
	}

	return &service{
		sessionRepo: cfg.SessionRepo,
		colonyRepo:  cfg.ColonyRepo,
		hives:       cfg.Hives,
		guard:       cfg.Guard,
		clock:       cfg.Clock,
		uuid:        cfg.UUID,
	}, nil
}

// RegisterColony attaches a hive to an open session. The hive reference is
// either a direct id or a scanned public token; both must resolve to a hive
// on the session's own site. The colony starts pending with a scan_arrival
// event carrying the resolved hive identity.
func (s *service) RegisterColony(ctx context.Context, input *RegisterColonyInput) (*RegisterColonyOutput, error) {
	if input == nil || input.SessionID == "" || input.OwnerID == "" {
		return nil, ErrInvalidArgument
	}

	if (input.HiveID == "") == (input.HiveToken == "") {
		return nil, ErrInvalidArgument
	}

	sess, err := s.sessionRepo.Get(ctx, &sessionRepo.GetInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if sess.OwnerID != input.OwnerID || !sess.Active {
		return nil, ErrInvalidSession
	}

	var hive *hives.Hive
	if input.HiveToken != "" {
		hive, err = s.hives.ResolveToken(ctx, sess.SiteID, input.HiveToken)
	} else {
		hive, err = s.hives.ResolveHive(ctx, sess.SiteID, input.HiveID)
	}
	if err != nil {
		if errors.Is(err, hives.ErrHiveNotFound) {
			return nil, ErrHiveNotFound
		}
		return nil, err
	}

	registered, err := s.colonyRepo.HiveRegistered(ctx, &colonyRepo.HiveRegisteredInput{
		SessionID: sess.ID,
		HiveID:    hive.ID,
	})
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, ErrHiveAlreadyRegistered
	}

	now := s.clock.Now()
	col := &models.Colony{
		ID:        s.uuid.NewUUID(),
		SessionID: sess.ID,
		SiteID:    sess.SiteID,
		HiveID:    hive.ID,
		HiveLabel: hive.Label,
		Status:    models.ColonyStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	event := &models.Event{
		ID:       s.uuid.NewUUID(),
		ColonyID: col.ID,
		Type:     models.EventTypeScanArrival,
		Date:     now,
		Payload: models.EventPayload{
			HiveID:    hive.ID,
			HiveLabel: hive.Label,
		},
	}

	created, err := s.colonyRepo.Create(ctx, &colonyRepo.CreateInput{
		Colony: col,
		Event:  event,
	})
	if err != nil {
		return nil, err
	}

	return &RegisterColonyOutput{Colony: created}, nil
}

// ListColonyEvents returns a colony's audit trail, oldest first
func (s *service) ListColonyEvents(ctx context.Context, input *ListColonyEventsInput) (*ListColonyEventsOutput, error) {
	if input == nil || input.ColonyID == "" || input.OwnerID == "" {
		return nil, ErrInvalidArgument
	}

	col, err := s.colonyRepo.Get(ctx, &colonyRepo.GetInput{
		ColonyID: input.ColonyID,
	})
	if err != nil {
		if errors.Is(err, colonyRepo.ErrColonyNotFound) {
			return nil, ErrColonyNotFound
		}
		return nil, err
	}

	if err := s.guard.VerifySiteOwner(ctx, col.SiteID, input.OwnerID); err != nil {
		if errors.Is(err, ownership.ErrSiteNotFound) {
			return nil, ErrColonyNotFound
		}
		return nil, err
	}

	events, err := s.colonyRepo.ListEvents(ctx, &colonyRepo.ListEventsInput{
		ColonyID: input.ColonyID,
	})
	if err != nil {
		return nil, err
	}

	return &ListColonyEventsOutput{Events: events}, nil
}
