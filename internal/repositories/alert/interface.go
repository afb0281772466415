package alert

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/apiarylab/swarmtrack/internal/repositories/alert Repository

import (
	"context"

	"github.com/apiarylab/swarmtrack/internal/models"
)

// Repository defines the interface for alert persistence
type Repository interface {
	// Create persists a new open alert, resolving any alert of the same
	// type still open for the colony in the same transaction. A colony
	// therefore never has two open laying checks.
	Create(ctx context.Context, input *CreateInput) (*models.Alert, error)

	// ResolveOpen marks a colony's open alerts done. Resolving when none is
	// open is a no-op, not an error; returns how many were resolved.
	ResolveOpen(ctx context.Context, input *ResolveOpenInput) (int, error)

	// ListOpenByOwner retrieves an owner's open alerts planned within a
	// time window, ordered by planned-for date
	ListOpenByOwner(ctx context.Context, input *ListOpenByOwnerInput) ([]*models.Alert, error)

	// ListByColony retrieves a colony's full alert history
	ListByColony(ctx context.Context, input *ListByColonyInput) ([]*models.Alert, error)
}
