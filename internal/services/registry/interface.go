package registry

import "context"

// Service defines the interface for colony registration
type Service interface {
	// RegisterColony attaches a hive to an open session, creating a pending
	// colony and logging its arrival scan
	RegisterColony(ctx context.Context, input *RegisterColonyInput) (*RegisterColonyOutput, error)

	// ListColonyEvents returns a colony's audit trail, oldest first
	ListColonyEvents(ctx context.Context, input *ListColonyEventsInput) (*ListColonyEventsOutput, error)
}
