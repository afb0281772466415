package stats

import (
	"time"

	"github.com/apiarylab/swarmtrack/internal/models"
)

// StatusCounts tallies colonies by lifecycle status. SuccessRate is the share
// of all counted colonies that reached laying_ok, as a percentage with one
// decimal.
type StatusCounts struct {
	Total       int                        `json:"total"`
	ByStatus    map[models.ColonyStatus]int `json:"by_status"`
	Success     int                        `json:"success"`
	Failures    int                        `json:"failures"`
	Waiting     int                        `json:"waiting"`
	Pending     int                        `json:"pending"`
	SuccessRate float64                    `json:"success_rate"`
}

// MethodStats tallies colonies by the introduction method of their most
// recent introduction
type MethodStats struct {
	Total       int     `json:"total"`
	Success     int     `json:"success"`
	SuccessRate float64 `json:"success_rate"`
}

type SessionStatsInput struct {
	SessionID string
	OwnerID   string
}

type SessionStatsOutput struct {
	Session *models.Session
	Stats   *StatusCounts
}

type OverviewStatsInput struct {
	OwnerID string
	From    time.Time
	To      time.Time

	// SiteID, when set, restricts the overview to one site
	SiteID string
}

type OverviewStatsOutput struct {
	// Sessions is how many sessions fell inside the window
	Sessions int

	Stats *StatusCounts

	// ByMethod breaks colonies down by their latest introduction method;
	// colonies never introduced are not counted here
	ByMethod map[models.IntroMethod]*MethodStats

	// BySite breaks colonies down per site; nil when the overview was
	// already filtered to one site
	BySite map[string]*StatusCounts
}
