package alerting

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/apiarylab/swarmtrack/internal/services/alerting Service

import "context"

// Service defines the interface for laying-check scheduling
type Service interface {
	// Schedule creates an open check_laying alert for a colony, closing any
	// check still open for it
	Schedule(ctx context.Context, input *ScheduleInput) (*ScheduleOutput, error)

	// Resolve closes a colony's open laying checks; a no-op when none is open
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)

	// Upcoming lists an owner's open checks due soon, overdue ones first
	Upcoming(ctx context.Context, input *UpcomingInput) (*UpcomingOutput, error)

	// ColonyHistory lists every alert ever scheduled for a colony
	ColonyHistory(ctx context.Context, input *ColonyHistoryInput) (*ColonyHistoryOutput, error)
}
