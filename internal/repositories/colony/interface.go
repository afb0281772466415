package colony

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/apiarylab/swarmtrack/internal/repositories/colony Repository

import (
	"context"

	"github.com/apiarylab/swarmtrack/internal/models"
)

// Repository defines the interface for colony and colony-event persistence.
// Events are owned here because they are append-only children of colonies
// and are written atomically with colony state changes.
type Repository interface {
	// Create persists a new colony together with its registration event
	Create(ctx context.Context, input *CreateInput) (*models.Colony, error)

	// Get retrieves a colony by ID
	Get(ctx context.Context, input *GetInput) (*models.Colony, error)

	// ListBySession retrieves all colonies registered in a session
	ListBySession(ctx context.Context, input *ListBySessionInput) ([]*models.Colony, error)

	// HiveRegistered reports whether a hive already has a colony in a session
	HiveRegistered(ctx context.Context, input *HiveRegisteredInput) (bool, error)

	// TransitionStatus moves a colony to a new status only if its current
	// status is one of the expected ones, appending the optional event in
	// the same transaction
	TransitionStatus(ctx context.Context, input *TransitionStatusInput) (*models.Colony, error)

	// ListEvents retrieves a colony's events ordered by event date
	ListEvents(ctx context.Context, input *ListEventsInput) ([]*models.Event, error)

	// LatestIntroduction retrieves a colony's most recent introduction
	// event, nil when none was logged
	LatestIntroduction(ctx context.Context, input *LatestIntroductionInput) (*models.Event, error)
}
