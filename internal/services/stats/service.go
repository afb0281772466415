package stats

import (
	"context"
	"errors"
	"math"

	"github.com/apiarylab/swarmtrack/internal/models"
	"github.com/apiarylab/swarmtrack/internal/ownership"
	colonyRepo "github.com/apiarylab/swarmtrack/internal/repositories/colony"
	sessionRepo "github.com/apiarylab/swarmtrack/internal/repositories/session"
)

// Config holds the dependencies for the stats service
type Config struct {
	SessionRepo sessionRepo.Repository
	ColonyRepo  colonyRepo.Repository
	Guard       ownership.Guard
}

// service implements the Service interface
type service struct {
	sessionRepo sessionRepo.Repository
	colonyRepo  colonyRepo.Repository
	guard       ownership.Guard
}

// New creates a new stats service
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

	if cfg.Guard == nil {
		return nil, ErrNilGuard
	}

	return &service{
		sessionRepo: cfg.SessionRepo,
		colonyRepo:  cfg.ColonyRepo,
		guard:       cfg.Guard,
	}, nil
}

// SessionStats tallies one session's colonies by lifecycle status
func (s *service) SessionStats(ctx context.Context, input *SessionStatsInput) (*SessionStatsOutput, error) {
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

	if sess.OwnerID != input.OwnerID {
		return nil, ErrSessionNotFound
	}

	cols, err := s.colonyRepo.ListBySession(ctx, &colonyRepo.ListBySessionInput{
		SessionID: sess.ID,
	})
	if err != nil {
		return nil, err
	}

	counts := newStatusCounts()
	for _, col := range cols {
		counts.add(col.Status)
	}
	counts.finish()

	return &SessionStatsOutput{
		Session: sess,
		Stats:   counts,
	}, nil
}

// OverviewStats aggregates every session the owner started inside the window.
// The per-site breakdown is dropped when the caller already filtered to one
// site.
func (s *service) OverviewStats(ctx context.Context, input *OverviewStatsInput) (*OverviewStatsOutput, error) {
	if input == nil || input.OwnerID == "" || input.From.IsZero() || input.To.IsZero() || input.To.Before(input.From) {
		return nil, ErrInvalidArgument
	}

	if input.SiteID != "" {
		if err := s.guard.VerifySiteOwner(ctx, input.SiteID, input.OwnerID); err != nil {
			if errors.Is(err, ownership.ErrSiteNotFound) {
				return nil, ErrSiteNotFound
			}
			return nil, err
		}
	}

	sessions, err := s.sessionRepo.ListByOwner(ctx, &sessionRepo.ListByOwnerInput{
		OwnerID: input.OwnerID,
		From:    input.From,
		To:      input.To,
	})
	if err != nil {
		return nil, err
	}

	output := &OverviewStatsOutput{
		Stats:    newStatusCounts(),
		ByMethod: make(map[models.IntroMethod]*MethodStats),
	}
	if input.SiteID == "" {
		output.BySite = make(map[string]*StatusCounts)
	}

	for _, sess := range sessions {
		if input.SiteID != "" && sess.SiteID != input.SiteID {
			continue
		}
		output.Sessions++

		cols, err := s.colonyRepo.ListBySession(ctx, &colonyRepo.ListBySessionInput{
			SessionID: sess.ID,
		})
		if err != nil {
			return nil, err
		}

		for _, col := range cols {
			output.Stats.add(col.Status)

			if output.BySite != nil {
				site, ok := output.BySite[col.SiteID]
				if !ok {
					site = newStatusCounts()
					output.BySite[col.SiteID] = site
				}
				site.add(col.Status)
			}

			if err := s.addMethod(ctx, output.ByMethod, col); err != nil {
				return nil, err
			}
		}
	}

	output.Stats.finish()
	for _, site := range output.BySite {
		site.finish()
	}
	for _, method := range output.ByMethod {
		method.SuccessRate = successRate(method.Success, method.Total)
	}

	return output, nil
}

// addMethod attributes a colony to the method of its latest introduction.
// Colonies never introduced carry no method and are left out.
func (s *service) addMethod(ctx context.Context, byMethod map[models.IntroMethod]*MethodStats, col *models.Colony) error {
	intro, err := s.colonyRepo.LatestIntroduction(ctx, &colonyRepo.LatestIntroductionInput{
		ColonyID: col.ID,
	})
	if err != nil {
		return err
	}
	if intro == nil {
		return nil
	}

	method := intro.Type.Method()
	m, ok := byMethod[method]
	if !ok {
		m = &MethodStats{}
		byMethod[method] = m
	}
	m.Total++
	if col.Status == models.ColonyStatusLayingOK {
		m.Success++
	}
	return nil
}

func newStatusCounts() *StatusCounts {
	return &StatusCounts{
		ByStatus: make(map[models.ColonyStatus]int),
	}
}

func (c *StatusCounts) add(status models.ColonyStatus) {
	c.Total++
	c.ByStatus[status]++

	switch {
	case status == models.ColonyStatusLayingOK:
		c.Success++
	case status.IsFailure():
		c.Failures++
	case status == models.ColonyStatusWaitingCheck:
		c.Waiting++
	case status == models.ColonyStatusPending:
		c.Pending++
	}
}

func (c *StatusCounts) finish() {
	c.SuccessRate = successRate(c.Success, c.Total)
}

// successRate is a percentage rounded to one decimal, 0 when nothing was
// counted
func successRate(success, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(1000*float64(success)/float64(total)) / 10
}
