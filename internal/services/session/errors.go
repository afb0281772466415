package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSiteNotFound    SessionError = "site not found"
	ErrSessionNotFound SessionError = "session not found"
	ErrAlreadyClosed   SessionError = "session already closed"
	ErrConflict        SessionError = "session was modified concurrently"
	ErrInvalidArgument SessionError = "invalid argument"
	ErrNilConfig       SessionError = "config cannot be nil"
	ErrNilSessionRepo  SessionError = "session repository cannot be nil"
	ErrNilGuard        SessionError = "ownership guard cannot be nil"
	ErrNilClock        SessionError = "clock cannot be nil"
	ErrNilUUID         SessionError = "UUID generator cannot be nil"
)
