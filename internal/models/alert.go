package models

import (
	"time"
)

// AlertType represents the kind of scheduled follow-up
type AlertType string

const (
	// AlertTypeCheckLaying is the follow-up inspection confirming the new
	// queen began laying
	AlertTypeCheckLaying AlertType = "check_laying"
)

// Alert is a scheduled follow-up on a colony
type Alert struct {
	// ID is the unique identifier for the alert
	ID string `json:"id"`

	// ColonyID is the colony the alert is about
	ColonyID string `json:"colony_id"`

	// SiteID is the site the colony sits on
	SiteID string `json:"site_id"`

	// OwnerID is the operator the alert belongs to
	OwnerID string `json:"owner_id"`

	// HiveLabel is the colony's hive label, kept here so due lists can be
	// ordered without loading every colony
	HiveLabel string `json:"hive_label,omitempty"`

	// Type is the kind of follow-up
	Type AlertType `json:"type"`

	// PlannedFor is the date the follow-up is due
	PlannedFor time.Time `json:"planned_for"`

	// Done indicates the follow-up was carried out
	Done bool `json:"done"`

	// DoneAt is when the follow-up was resolved, nil while open
	DoneAt *time.Time `json:"done_at,omitempty"`
}
