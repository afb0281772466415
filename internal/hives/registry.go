package hives

import (
	"context"
	"errors"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_registry.go github.com/apiarylab/swarmtrack/internal/hives Registry

// ErrHiveNotFound is returned when a hive reference does not resolve to a
// hive on the given site. Cross-site references resolve to this error too,
// never to the hive on the other site.
var ErrHiveNotFound = errors.New("hive not found")

// Hive is the identity slice of the external hive registry the core reads
type Hive struct {
	// ID is the hive's canonical identifier
	ID string `json:"id"`

	// SiteID is the site the hive currently sits on
	SiteID string `json:"site_id"`

	// Label is the hive's display label
	Label string `json:"label,omitempty"`

	// PublicToken is the opaque token printed on the hive's scan tag
	PublicToken string `json:"public_token,omitempty"`
}

// Registry resolves hive references during colony registration. Hive records
// are managed by the surrounding application; the requeening core only reads
// identity from them.
type Registry interface {
	// ResolveHive resolves a direct hive identifier, checked against the site
	ResolveHive(ctx context.Context, siteID, hiveID string) (*Hive, error)

	// ResolveToken resolves a scanned public token, checked against the site
	ResolveToken(ctx context.Context, siteID, token string) (*Hive, error)
}
