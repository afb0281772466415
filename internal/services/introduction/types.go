package introduction

import (
	"time"

	"github.com/apiarylab/swarmtrack/internal/models"
)

type IntroduceInput struct {
	SessionID string
	OwnerID   string
	Method    models.IntroMethod

	// DelayDays is how many days after the introduction the laying check
	// falls due
	DelayDays int

	// Date is when the introduction happened in the field; zero means now
	Date time.Time
}

// IntroducedColony pairs a colony moved to waiting_check with the laying
// check scheduled for it
type IntroducedColony struct {
	Colony *models.Colony
	Alert  *models.Alert
}

type IntroduceOutput struct {
	Introduced []*IntroducedColony

	// Skipped counts colonies that left pending between the snapshot and the
	// guarded transition
	Skipped int
}

type RecordOutcomeInput struct {
	ColonyID string
	OwnerID  string
	Status   models.ColonyStatus
}

type RecordOutcomeOutput struct {
	Colony *models.Colony

	// ResolvedAlerts is how many open laying checks the outcome closed
	ResolvedAlerts int
}

type ReintroduceInput struct {
	ColonyID string
	OwnerID  string
	Method   models.IntroMethod

	// DelayDays is how many days after the reintroduction the laying check
	// falls due
	DelayDays int

	// Date is when the reintroduction happened in the field; zero means now
	Date time.Time
}

type ReintroduceOutput struct {
	Colony *models.Colony
	Alert  *models.Alert
}
