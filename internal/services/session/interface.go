package session

import "context"

// Service defines the interface for session management.
// It enforces that a site has at most one open session at a time.
type Service interface {
	// OpenSession opens a requeening session on a site, superseding any
	// session still open there
	OpenSession(ctx context.Context, input *OpenSessionInput) (*OpenSessionOutput, error)

	// CloseSession ends an open session; closing a closed session is an error
	CloseSession(ctx context.Context, input *CloseSessionInput) (*CloseSessionOutput, error)

	// GetActiveSession returns the site's open session, or none
	GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*GetActiveSessionOutput, error)
}
