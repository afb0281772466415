package registry

import "github.com/apiarylab/swarmtrack/internal/models"

type RegisterColonyInput struct {
	SessionID string
	OwnerID   string

	// HiveID is a direct hive identifier. Exactly one of HiveID and
	// HiveToken must be set.
	HiveID string

	// HiveToken is the opaque public token from the hive's scan tag
	HiveToken string
}

type RegisterColonyOutput struct {
	Colony *models.Colony
}

type ListColonyEventsInput struct {
	ColonyID string
	OwnerID  string
}

type ListColonyEventsOutput struct {
	Events []*models.Event
}
