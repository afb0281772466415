package alerting

import (
	"context"
	"errors"
	"sort"

	"github.com/apiarylab/swarmtrack/internal/common/clock"
	"github.com/apiarylab/swarmtrack/internal/common/uuid"
	"github.com/apiarylab/swarmtrack/internal/models"
	alertRepo "github.com/apiarylab/swarmtrack/internal/repositories/alert"
)

// Config holds the dependencies for the alerting service
type Config struct {
	AlertRepo alertRepo.Repository
	Clock     clock.Clock
	UUID      uuid.UUID

	// DefaultDaysAhead is the Upcoming window into the future when the
	// caller does not give one
	DefaultDaysAhead int

	// DefaultGraceDays is how far overdue checks still surface when the
	// caller does not give a grace window
	DefaultGraceDays int
}

// service implements the Service interface
type service struct {
	alertRepo        alertRepo.Repository
	clock            clock.Clock
	uuid             uuid.UUID
	defaultDaysAhead int
	defaultGraceDays int
}

// New creates a new alerting service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.AlertRepo == nil {
		return nil, ErrNilAlertRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUID == nil {
		return nil, ErrNilUUID
	}

	daysAhead := cfg.DefaultDaysAhead
	if daysAhead <= 0 {
		daysAhead = 7
	}

	graceDays := cfg.DefaultGraceDays
	if graceDays <= 0 {
		graceDays = 14
	}

	return &service{
		alertRepo:        cfg.AlertRepo,
		clock:            cfg.Clock,
		uuid:             cfg.UUID,
		defaultDaysAhead: daysAhead,
		defaultGraceDays: graceDays,
	}, nil
}

// Schedule creates an open check_laying alert. The repository resolves any
// check still open for the colony in the same transaction, so a colony never
// carries two open checks.
func (s *service) Schedule(ctx context.Context, input *ScheduleInput) (*ScheduleOutput, error) {
	if input == nil || input.ColonyID == "" || input.SiteID == "" || input.OwnerID == "" || input.PlannedFor.IsZero() {
		return nil, ErrInvalidArgument
	}

	a := &models.Alert{
		ID:         s.uuid.NewUUID(),
		ColonyID:   input.ColonyID,
		SiteID:     input.SiteID,
		OwnerID:    input.OwnerID,
		HiveLabel:  input.HiveLabel,
		Type:       models.AlertTypeCheckLaying,
		PlannedFor: input.PlannedFor,
	}

	created, err := s.alertRepo.Create(ctx, &alertRepo.CreateInput{
		Alert: a,
		Now:   s.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, alertRepo.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return &ScheduleOutput{Alert: created}, nil
}

// Resolve closes a colony's open laying checks
func (s *service) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil || input.ColonyID == "" {
		return nil, ErrInvalidArgument
	}

	resolved, err := s.alertRepo.ResolveOpen(ctx, &alertRepo.ResolveOpenInput{
		ColonyID: input.ColonyID,
		DoneAt:   s.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, alertRepo.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return &ResolveOutput{Resolved: resolved}, nil
}

// Upcoming lists open checks planned within [now - grace, now + ahead],
// ordered by planned-for date, then site, then hive label, so overdue
// checks surface before future ones.
func (s *service) Upcoming(ctx context.Context, input *UpcomingInput) (*UpcomingOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, ErrInvalidArgument
	}

	daysAhead := input.DaysAhead
	if daysAhead <= 0 {
		daysAhead = s.defaultDaysAhead
	}

	graceDays := input.GraceDays
	if graceDays <= 0 {
		graceDays = s.defaultGraceDays
	}

	now := s.clock.Now()
	alerts, err := s.alertRepo.ListOpenByOwner(ctx, &alertRepo.ListOpenByOwnerInput{
		OwnerID: input.OwnerID,
		From:    now.AddDate(0, 0, -graceDays),
		To:      now.AddDate(0, 0, daysAhead),
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if !alerts[i].PlannedFor.Equal(alerts[j].PlannedFor) {
			return alerts[i].PlannedFor.Before(alerts[j].PlannedFor)
		}
		if alerts[i].SiteID != alerts[j].SiteID {
			return alerts[i].SiteID < alerts[j].SiteID
		}
		return alerts[i].HiveLabel < alerts[j].HiveLabel
	})

	return &UpcomingOutput{Alerts: alerts}, nil
}

// ColonyHistory lists every alert ever scheduled for a colony
func (s *service) ColonyHistory(ctx context.Context, input *ColonyHistoryInput) (*ColonyHistoryOutput, error) {
	if input == nil || input.ColonyID == "" {
		return nil, ErrInvalidArgument
	}

	alerts, err := s.alertRepo.ListByColony(ctx, &alertRepo.ListByColonyInput{
		ColonyID: input.ColonyID,
	})
	if err != nil {
		return nil, err
	}

	return &ColonyHistoryOutput{Alerts: alerts}, nil
}
