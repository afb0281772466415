package introduction

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/apiarylab/swarmtrack/internal/services/introduction Service

import "context"

// Service defines the interface for the requeening lifecycle
type Service interface {
	// Introduce applies one introduction method to every pending colony in a
	// session, moving each to waiting_check and scheduling its laying check.
	// Colonies that left pending concurrently are skipped, not failed.
	Introduce(ctx context.Context, input *IntroduceInput) (*IntroduceOutput, error)

	// RecordOutcome records the result of a laying check, closing the
	// colony's open check alerts
	RecordOutcome(ctx context.Context, input *RecordOutcomeInput) (*RecordOutcomeOutput, error)

	// Reintroduce gives a failed or queenless colony another queen candidate,
	// moving it back to waiting_check with a fresh laying check
	Reintroduce(ctx context.Context, input *ReintroduceInput) (*ReintroduceOutput, error)
}
