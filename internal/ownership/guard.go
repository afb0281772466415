package ownership

import (
	"context"
	"errors"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_guard.go github.com/apiarylab/swarmtrack/internal/ownership Guard

// ErrSiteNotFound is returned when a site does not exist or does not belong
// to the operator. The two cases are deliberately indistinguishable so
// callers cannot probe for sites they do not own.
var ErrSiteNotFound = errors.New("site not found")

// Guard verifies that a site belongs to the requesting operator before any
// read or mutation is allowed. Site and operator records themselves are
// managed outside the requeening core.
type Guard interface {
	// VerifySiteOwner returns nil when the site exists and belongs to the
	// operator, ErrSiteNotFound otherwise
	VerifySiteOwner(ctx context.Context, siteID, ownerID string) error
}
