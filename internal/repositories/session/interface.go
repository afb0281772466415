package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/apiarylab/swarmtrack/internal/repositories/session Repository

import (
	"context"

	"github.com/apiarylab/swarmtrack/internal/models"
)

// Repository defines the interface for session persistence
type Repository interface {
	// OpenExclusive persists a new session and atomically closes any other
	// open session on the same site. After it returns, the stored session is
	// the only active one for the site.
	OpenExclusive(ctx context.Context, input *OpenExclusiveInput) (*models.Session, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, input *GetInput) (*models.Session, error)

	// GetActiveBySite retrieves the open session for a site, nil when none
	GetActiveBySite(ctx context.Context, input *GetActiveBySiteInput) (*models.Session, error)

	// Close marks an open session as ended
	Close(ctx context.Context, input *CloseInput) (*models.Session, error)

	// ListByOwner retrieves an owner's sessions started within a time window
	ListByOwner(ctx context.Context, input *ListByOwnerInput) ([]*models.Session, error)
}
