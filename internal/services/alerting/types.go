package alerting

import (
	"time"

	"github.com/apiarylab/swarmtrack/internal/models"
)

type ScheduleInput struct {
	ColonyID   string
	SiteID     string
	OwnerID    string
	HiveLabel  string
	PlannedFor time.Time
}

type ScheduleOutput struct {
	Alert *models.Alert
}

type ResolveInput struct {
	ColonyID string
}

type ResolveOutput struct {
	// Resolved is how many open alerts were closed
	Resolved int
}

type UpcomingInput struct {
	OwnerID string

	// DaysAhead bounds the window into the future; 0 uses the configured
	// default
	DaysAhead int

	// GraceDays bounds how far overdue checks still surface; 0 uses the
	// configured default
	GraceDays int
}

type UpcomingOutput struct {
	Alerts []*models.Alert
}

type ColonyHistoryInput struct {
	ColonyID string
}

type ColonyHistoryOutput struct {
	Alerts []*models.Alert
}
