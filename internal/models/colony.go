package models

import (
	"time"
)

// ColonyStatus represents where a colony is in the requeening lifecycle
type ColonyStatus string

const (
	// ColonyStatusPending indicates a colony is registered but has had no introduction yet
	ColonyStatusPending ColonyStatus = "pending"

	// ColonyStatusWaitingCheck indicates an introduction was applied and a laying check is scheduled
	ColonyStatusWaitingCheck ColonyStatus = "waiting_check"

	// ColonyStatusLayingOK indicates the new queen started laying (terminal success)
	ColonyStatusLayingOK ColonyStatus = "laying_ok"

	// ColonyStatusFailed indicates the introduction did not take (retryable)
	ColonyStatusFailed ColonyStatus = "failed"

	// ColonyStatusQueenless indicates the colony lost its queen candidate (retryable)
	ColonyStatusQueenless ColonyStatus = "queenless"

	// ColonyStatusDead indicates the colony died (terminal, not retryable)
	ColonyStatusDead ColonyStatus = "dead"
)

// Colony represents one hive's participation in a requeening session
type Colony struct {
	// ID is the unique identifier for the colony record
	ID string `json:"id"`

	// SessionID is the session the colony was registered into
	SessionID string `json:"session_id"`

	// SiteID is denormalized from the session for fast ownership checks
	SiteID string `json:"site_id"`

	// HiveID references the physical hive in the hive registry
	HiveID string `json:"hive_id"`

	// HiveLabel is the hive's display label at registration time
	HiveLabel string `json:"hive_label,omitempty"`

	// Status is the colony's current lifecycle state
	Status ColonyStatus `json:"status"`

	// CreatedAt is when the colony was registered
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the colony last changed state
	UpdatedAt time.Time `json:"updated_at"`
}

// transitions is the single source of truth for legal status moves.
// Introductions move pending/failed/queenless colonies to waiting_check;
// recording an outcome is the only way out of waiting_check.
var transitions = map[ColonyStatus][]ColonyStatus{
	ColonyStatusPending:      {ColonyStatusWaitingCheck},
	ColonyStatusWaitingCheck: {ColonyStatusLayingOK, ColonyStatusFailed, ColonyStatusQueenless, ColonyStatusDead},
	ColonyStatusFailed:       {ColonyStatusWaitingCheck},
	ColonyStatusQueenless:    {ColonyStatusWaitingCheck},
	ColonyStatusLayingOK:     {},
	ColonyStatusDead:         {},
}

// CanTransition reports whether moving a colony from one status to another is legal
func CanTransition(from, to ColonyStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Valid reports whether the status is a known lifecycle state
func (s ColonyStatus) Valid() bool {
	switch s {
	case ColonyStatusPending, ColonyStatusWaitingCheck, ColonyStatusLayingOK,
		ColonyStatusFailed, ColonyStatusQueenless, ColonyStatusDead:
		return true
	}
	return false
}

// IsOutcome reports whether the status can be recorded as a laying-check outcome
func (s ColonyStatus) IsOutcome() bool {
	switch s {
	case ColonyStatusLayingOK, ColonyStatusFailed, ColonyStatusQueenless, ColonyStatusDead:
		return true
	}
	return false
}

// IsRetryable reports whether a colony in this status can be reintroduced
func (s ColonyStatus) IsRetryable() bool {
	return s == ColonyStatusFailed || s == ColonyStatusQueenless
}

// IsFailure reports whether the status counts against the success rate
func (s ColonyStatus) IsFailure() bool {
	switch s {
	case ColonyStatusFailed, ColonyStatusQueenless, ColonyStatusDead:
		return true
	}
	return false
}
