package session

import (
	"context"
	"errors"

	"github.com/apiarylab/swarmtrack/internal/common/clock"
	"github.com/apiarylab/swarmtrack/internal/common/uuid"
	"github.com/apiarylab/swarmtrack/internal/models"
	"github.com/apiarylab/swarmtrack/internal/ownership"
	sessionRepo "github.com/apiarylab/swarmtrack/internal/repositories/session"
)

// Config holds the dependencies for the session service
type Config struct {
	SessionRepo sessionRepo.Repository
	Guard       ownership.Guard
	Clock       clock.Clock
	UUID        uuid.UUID
}

// service implements the Service interface
type service struct {
	sessionRepo sessionRepo.Repository
	guard       ownership.Guard
	clock       clock.Clock
	uuid        uuid.UUID
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
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
		guard:       cfg.Guard,
		clock:       cfg.Clock,
		uuid:        cfg.UUID,
	}, nil
}

// OpenSession opens a new requeening session on a site. Any session still
// open on the site is closed atomically with the creation, so exactly one
// open session exists for the site when this returns.
func (s *service) OpenSession(ctx context.Context, input *OpenSessionInput) (*OpenSessionOutput, error) {
	if input == nil || input.SiteID == "" || input.OwnerID == "" {
		return nil, ErrInvalidArgument
	}

	if err := s.guard.VerifySiteOwner(ctx, input.SiteID, input.OwnerID); err != nil {
		if errors.Is(err, ownership.ErrSiteNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}

	sess := &models.Session{
		ID:        s.uuid.NewUUID(),
		SiteID:    input.SiteID,
		OwnerID:   input.OwnerID,
		Label:     input.Label,
		StartedAt: s.clock.Now(),
		Active:    true,
	}

	opened, err := s.sessionRepo.OpenExclusive(ctx, &sessionRepo.OpenExclusiveInput{
		Session: sess,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return &OpenSessionOutput{Session: opened}, nil
}

// CloseSession ends an open session. Closing an already closed session is
// rejected with ErrAlreadyClosed, never silently accepted.
func (s *service) CloseSession(ctx context.Context, input *CloseSessionInput) (*CloseSessionOutput, error) {
	if input == nil || input.SessionID == "" || input.OwnerID == "" {
		return nil, ErrInvalidArgument
	}

	sess, err := s.sessionRepo.Get(ctx, &sessionRepo.GetInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	// A session that exists but belongs to someone else looks absent, so
	// callers cannot probe for other operators' sessions.
	if sess.OwnerID != input.OwnerID {
		return nil, ErrSessionNotFound
	}

	if !sess.Active || sess.EndedAt != nil {
		return nil, ErrAlreadyClosed
	}

	closed, err := s.sessionRepo.Close(ctx, &sessionRepo.CloseInput{
		SessionID: input.SessionID,
		EndedAt:   s.clock.Now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrSessionNotFound):
			return nil, ErrSessionNotFound
		case errors.Is(err, sessionRepo.ErrSessionClosed):
			return nil, ErrAlreadyClosed
		case errors.Is(err, sessionRepo.ErrConflict):
			return nil, ErrConflict
		}
		return nil, err
	}

	return &CloseSessionOutput{Session: closed}, nil
}

// GetActiveSession returns the site's open session. No open session is a
// regular answer, not an error.
func (s *service) GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*GetActiveSessionOutput, error) {
	if input == nil || input.SiteID == "" || input.OwnerID == "" {
		return nil, ErrInvalidArgument
	}

	if err := s.guard.VerifySiteOwner(ctx, input.SiteID, input.OwnerID); err != nil {
		if errors.Is(err, ownership.ErrSiteNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}

	sess, err := s.sessionRepo.GetActiveBySite(ctx, &sessionRepo.GetActiveBySiteInput{
		SiteID: input.SiteID,
	})
	if err != nil {
		return nil, err
	}

	return &GetActiveSessionOutput{Session: sess}, nil
}
