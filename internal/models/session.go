package models

import (
	"time"
)

// Session represents one requeening campaign on one apiary site
type Session struct {
	// ID is the unique identifier for this session
	ID string `json:"id"`

	// SiteID is the apiary site this session runs on
	SiteID string `json:"site_id"`

	// OwnerID is the operator who owns the site and opened the session
	OwnerID string `json:"owner_id"`

	// Label is an optional operator-supplied name for the campaign
	Label string `json:"label,omitempty"`

	// StartedAt is when the session was opened
	StartedAt time.Time `json:"started_at"`

	// EndedAt is when the session was closed, nil while open
	EndedAt *time.Time `json:"ended_at,omitempty"`

	// Active indicates if this is the current open session for the site.
	// At most one session per site is active at any time.
	Active bool `json:"active"`
}
