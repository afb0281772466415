package stats

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/apiarylab/swarmtrack/internal/services/stats Service

import "context"

// Service defines the interface for requeening analytics
type Service interface {
	// SessionStats tallies one session's colonies by lifecycle status
	SessionStats(ctx context.Context, input *SessionStatsInput) (*SessionStatsOutput, error)

	// OverviewStats aggregates an owner's sessions over a date window, with
	// breakdowns by site and by introduction method
	OverviewStats(ctx context.Context, input *OverviewStatsInput) (*OverviewStatsOutput, error)
}
