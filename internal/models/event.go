package models

import (
	"time"
)

// EventType represents the kind of audit event logged against a colony
type EventType string

const (
	// EventTypeScanArrival indicates a hive was scanned into a session
	EventTypeScanArrival EventType = "scan_arrival"

	// EventTypeIntroCell indicates a ripe queen cell was introduced
	EventTypeIntroCell EventType = "intro_cell"

	// EventTypeIntroVirgin indicates a virgin queen was introduced
	EventTypeIntroVirgin EventType = "intro_virgin"

	// EventTypeIntroMated indicates a mated queen was introduced
	EventTypeIntroMated EventType = "intro_mated"
)

// IntroMethod represents how a queen candidate is given to a colony
type IntroMethod string

const (
	// IntroMethodCell introduces a ripe queen cell
	IntroMethodCell IntroMethod = "cell"

	// IntroMethodVirgin introduces a virgin queen
	IntroMethodVirgin IntroMethod = "virgin"

	// IntroMethodMated introduces a mated queen
	IntroMethodMated IntroMethod = "mated"
)

// Valid reports whether the method is one of the three known introduction methods
func (m IntroMethod) Valid() bool {
	switch m {
	case IntroMethodCell, IntroMethodVirgin, IntroMethodMated:
		return true
	}
	return false
}

// EventType returns the audit event type logged for this method
func (m IntroMethod) EventType() EventType {
	switch m {
	case IntroMethodCell:
		return EventTypeIntroCell
	case IntroMethodVirgin:
		return EventTypeIntroVirgin
	case IntroMethodMated:
		return EventTypeIntroMated
	}
	return ""
}

// IsIntroduction reports whether the event type records a queen introduction
func (t EventType) IsIntroduction() bool {
	switch t {
	case EventTypeIntroCell, EventTypeIntroVirgin, EventTypeIntroMated:
		return true
	}
	return false
}

// Method returns the introduction method behind an introduction event type
func (t EventType) Method() IntroMethod {
	switch t {
	case EventTypeIntroCell:
		return IntroMethodCell
	case EventTypeIntroVirgin:
		return IntroMethodVirgin
	case EventTypeIntroMated:
		return IntroMethodMated
	}
	return ""
}

// EventPayload carries the structured details of an event
type EventPayload struct {
	// Method is the introduction method, set on introduction events
	Method IntroMethod `json:"method,omitempty"`

	// DelayDays is the laying-check delay used for the introduction
	DelayDays int `json:"delay_days,omitempty"`

	// Retry indicates the introduction was a re-introduction after a failure
	Retry bool `json:"retry,omitempty"`

	// HiveID is the resolved hive identity at scan time, kept for
	// traceability even if the hive record changes later
	HiveID string `json:"hive_id,omitempty"`

	// HiveLabel is the hive's label at scan time
	HiveLabel string `json:"hive_label,omitempty"`
}

// Event is an append-only audit log entry tied to a colony.
// Events are never mutated or deleted.
type Event struct {
	// ID is the unique identifier for the event
	ID string `json:"id"`

	// ColonyID is the colony the event belongs to
	ColonyID string `json:"colony_id"`

	// Type is the kind of event
	Type EventType `json:"type"`

	// Date is when the event happened (operator-supplied, not necessarily
	// when it was recorded)
	Date time.Time `json:"date"`

	// Payload carries the structured event details
	Payload EventPayload `json:"payload"`
}
