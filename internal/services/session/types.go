package session

import "github.com/apiarylab/swarmtrack/internal/models"

type OpenSessionInput struct {
	SiteID  string
	OwnerID string
	Label   string
}

type OpenSessionOutput struct {
	Session *models.Session
}

type CloseSessionInput struct {
	SessionID string
	OwnerID   string
}

type CloseSessionOutput struct {
	Session *models.Session
}

type GetActiveSessionInput struct {
	SiteID  string
	OwnerID string
}

type GetActiveSessionOutput struct {
	// Session is nil when the site has no open session
	Session *models.Session
}
