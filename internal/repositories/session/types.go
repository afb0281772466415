package session

import (
	"time"

	"github.com/apiarylab/swarmtrack/internal/models"
)

type OpenExclusiveInput struct {
	Session *models.Session
}

type GetInput struct {
	SessionID string
}

type GetActiveBySiteInput struct {
	SiteID string
}

type CloseInput struct {
	SessionID string
	EndedAt   time.Time
}

type ListByOwnerInput struct {
	OwnerID string
	From    time.Time
	To      time.Time
}
