package colony

import (
	"time"

	"github.com/apiarylab/swarmtrack/internal/models"
)

type CreateInput struct {
	Colony *models.Colony
	Event  *models.Event
}

type GetInput struct {
	ColonyID string
}

type ListBySessionInput struct {
	SessionID string
}

type HiveRegisteredInput struct {
	SessionID string
	HiveID    string
}

type TransitionStatusInput struct {
	ColonyID string

	// From lists the statuses the colony is allowed to be in; any other
	// current status fails the transition with ErrUnexpectedStatus
	From []models.ColonyStatus

	To        models.ColonyStatus
	UpdatedAt time.Time

	// Event, when set, is appended in the same transaction as the status
	// change so the pair is never half-applied
	Event *models.Event
}

type ListEventsInput struct {
	ColonyID string
}

type LatestIntroductionInput struct {
	ColonyID string
}
