package alert

import (
	"time"

	"github.com/apiarylab/swarmtrack/internal/models"
)

type CreateInput struct {
	Alert *models.Alert

	// Now stamps done-at on any open alert the creation supersedes
	Now time.Time
}

type ResolveOpenInput struct {
	ColonyID string
	DoneAt   time.Time
}

type ListOpenByOwnerInput struct {
	OwnerID string
	From    time.Time
	To      time.Time
}

type ListByColonyInput struct {
	ColonyID string
}
