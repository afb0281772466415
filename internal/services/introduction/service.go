package introduction

import (
	"context"
	"errors"
	"time"

	"github.com/apiarylab/swarmtrack/internal/common/clock"
	"github.com/apiarylab/swarmtrack/internal/common/uuid"
	"github.com/apiarylab/swarmtrack/internal/models"
	"github.com/apiarylab/swarmtrack/internal/ownership"
	colonyRepo "github.com/apiarylab/swarmtrack/internal/repositories/colony"
	sessionRepo "github.com/apiarylab/swarmtrack/internal/repositories/session"
	"github.com/apiarylab/swarmtrack/internal/services/alerting"
)

// Config holds the dependencies for the introduction service
type Config struct {
	SessionRepo sessionRepo.Repository
	ColonyRepo  colonyRepo.Repository
	Alerts      alerting.Service
	Guard       ownership.Guard
	Clock       clock.Clock
	UUID        uuid.UUID

	// MinDelayDays is the smallest accepted laying-check delay; 0 uses 1
	MinDelayDays int

	// MaxDelayDays is the largest accepted laying-check delay; 0 uses 60
	MaxDelayDays int
}

// service implements the Service interface
type service struct {
	sessionRepo  sessionRepo.Repository
	colonyRepo   colonyRepo.Repository
	alerts       alerting.Service
	guard        ownership.Guard
	clock        clock.Clock
	uuid         uuid.UUID
	minDelayDays int
	maxDelayDays int
}

// New creates a new introduction service
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

	if cfg.Alerts == nil {
		return nil, ErrNilAlerts
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

	minDelay := cfg.MinDelayDays
	if minDelay <= 0 {
		minDelay = 1
	}

	maxDelay := cfg.MaxDelayDays
	if maxDelay <= 0 {
		maxDelay = 60
	}

	return &service{
		sessionRepo:  cfg.SessionRepo,
		colonyRepo:   cfg.ColonyRepo,
		alerts:       cfg.Alerts,
		guard:        cfg.Guard,
		clock:        cfg.Clock,
		uuid:         cfg.UUID,
		minDelayDays: minDelay,
		maxDelayDays: maxDelay,
	}, nil
}

// Introduce applies one method and delay to every colony still pending in the
// session. Each colony is transitioned individually with a status guard, so a
// concurrent introduction never double-applies: whoever loses the guard just
// skips that colony.
func (s *service) Introduce(ctx context.Context, input *IntroduceInput) (*IntroduceOutput, error) {
	if input == nil || input.SessionID == "" || input.OwnerID == "" {
		return nil, ErrInvalidArgument
	}

	if err := s.validateIntroduction(input.Method, input.DelayDays); err != nil {
		return nil, err
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

	if sess.OwnerID != input.OwnerID {
		return nil, ErrSessionNotFound
	}

	date := input.Date
	if date.IsZero() {
		date = s.clock.Now()
	}

	cols, err := s.colonyRepo.ListBySession(ctx, &colonyRepo.ListBySessionInput{
		SessionID: sess.ID,
	})
	if err != nil {
		return nil, err
	}

	var pending []*models.Colony
	for _, col := range cols {
		if col.Status == models.ColonyStatusPending {
			pending = append(pending, col)
		}
	}

	if len(pending) == 0 {
		return nil, ErrNoPendingColonies
	}

	output := &IntroduceOutput{}
	for _, col := range pending {
		result, err := s.applyIntroduction(ctx, sess.OwnerID, col, input.Method, input.DelayDays, date, false)
		if err != nil {
			if errors.Is(err, colonyRepo.ErrUnexpectedStatus) || errors.Is(err, colonyRepo.ErrConflict) {
				output.Skipped++
				continue
			}
			return nil, err
		}
		output.Introduced = append(output.Introduced, result)
	}

	return output, nil
}

// RecordOutcome moves a waiting_check colony to its laying-check result and
// closes the open check alerts for it
func (s *service) RecordOutcome(ctx context.Context, input *RecordOutcomeInput) (*RecordOutcomeOutput, error) {
	if input == nil || input.ColonyID == "" || input.OwnerID == "" {
		return nil, ErrInvalidArgument
	}

	if !input.Status.IsOutcome() {
		return nil, ErrInvalidArgument
	}

	col, err := s.getOwnedColony(ctx, input.ColonyID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	updated, err := s.colonyRepo.TransitionStatus(ctx, &colonyRepo.TransitionStatusInput{
		ColonyID:  col.ID,
		From:      []models.ColonyStatus{models.ColonyStatusWaitingCheck},
		To:        input.Status,
		UpdatedAt: s.clock.Now(),
	})
	if err != nil {
		return nil, s.mapTransitionError(err)
	}

	resolved, err := s.alerts.Resolve(ctx, &alerting.ResolveInput{
		ColonyID: col.ID,
	})
	if err != nil {
		return nil, err
	}

	return &RecordOutcomeOutput{
		Colony:         updated,
		ResolvedAlerts: resolved.Resolved,
	}, nil
}

// Reintroduce gives a failed or queenless colony another queen candidate.
// The introduction event is flagged as a retry so the audit trail shows which
// attempt finally took.
func (s *service) Reintroduce(ctx context.Context, input *ReintroduceInput) (*ReintroduceOutput, error) {
	if input == nil || input.ColonyID == "" || input.OwnerID == "" {
		return nil, ErrInvalidArgument
	}

	if err := s.validateIntroduction(input.Method, input.DelayDays); err != nil {
		return nil, err
	}

	col, err := s.getOwnedColony(ctx, input.ColonyID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = s.clock.Now()
	}

	result, err := s.applyIntroduction(ctx, input.OwnerID, col, input.Method, input.DelayDays, date, true)
	if err != nil {
		return nil, s.mapTransitionError(err)
	}

	return &ReintroduceOutput{
		Colony: result.Colony,
		Alert:  result.Alert,
	}, nil
}

func (s *service) validateIntroduction(method models.IntroMethod, delayDays int) error {
	if !method.Valid() {
		return ErrInvalidArgument
	}
	if delayDays < s.minDelayDays || delayDays > s.maxDelayDays {
		return ErrInvalidArgument
	}
	return nil
}

// applyIntroduction transitions one colony to waiting_check with its
// introduction event and schedules the laying check. The allowed source
// statuses follow from retry: fresh introductions come from pending, retries
// from failed or queenless.
func (s *service) applyIntroduction(ctx context.Context, ownerID string, col *models.Colony, method models.IntroMethod, delayDays int, date time.Time, retry bool) (*IntroducedColony, error) {
	from := []models.ColonyStatus{models.ColonyStatusPending}
	if retry {
		from = []models.ColonyStatus{models.ColonyStatusFailed, models.ColonyStatusQueenless}
	}

	event := &models.Event{
		ID:       s.uuid.NewUUID(),
		ColonyID: col.ID,
		Type:     method.EventType(),
		Date:     date,
		Payload: models.EventPayload{
			Method:    method,
			DelayDays: delayDays,
			Retry:     retry,
		},
	}

	updated, err := s.colonyRepo.TransitionStatus(ctx, &colonyRepo.TransitionStatusInput{
		ColonyID:  col.ID,
		From:      from,
		To:        models.ColonyStatusWaitingCheck,
		UpdatedAt: s.clock.Now(),
		Event:     event,
	})
	if err != nil {
		return nil, err
	}

	scheduled, err := s.alerts.Schedule(ctx, &alerting.ScheduleInput{
		ColonyID:   updated.ID,
		SiteID:     updated.SiteID,
		OwnerID:    ownerID,
		HiveLabel:  updated.HiveLabel,
		PlannedFor: date.AddDate(0, 0, delayDays),
	})
	if err != nil {
		return nil, err
	}

	return &IntroducedColony{
		Colony: updated,
		Alert:  scheduled.Alert,
	}, nil
}

// getOwnedColony loads a colony and verifies the caller owns its site.
// Colonies on someone else's site look absent rather than forbidden.
func (s *service) getOwnedColony(ctx context.Context, colonyID, ownerID string) (*models.Colony, error) {
	col, err := s.colonyRepo.Get(ctx, &colonyRepo.GetInput{
		ColonyID: colonyID,
	})
	if err != nil {
		if errors.Is(err, colonyRepo.ErrColonyNotFound) {
			return nil, ErrColonyNotFound
		}
		return nil, err
	}

	if err := s.guard.VerifySiteOwner(ctx, col.SiteID, ownerID); err != nil {
		if errors.Is(err, ownership.ErrSiteNotFound) {
			return nil, ErrColonyNotFound
		}
		return nil, err
	}

	return col, nil
}

func (s *service) mapTransitionError(err error) error {
	switch {
	case errors.Is(err, colonyRepo.ErrUnexpectedStatus):
		return ErrInvalidTransition
	case errors.Is(err, colonyRepo.ErrConflict):
		return ErrConflict
	case errors.Is(err, colonyRepo.ErrColonyNotFound):
		return ErrColonyNotFound
	}
	return err
}
