package alerting

// AlertingError is a custom error type for alert scheduling errors
type AlertingError string

// Error implements the error interface
func (e AlertingError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidArgument AlertingError = "invalid argument"
	ErrConflict        AlertingError = "alert was modified concurrently"
	ErrNilConfig       AlertingError = "config cannot be nil"
	ErrNilAlertRepo    AlertingError = "alert repository cannot be nil"
	ErrNilClock        AlertingError = "clock cannot be nil"
	ErrNilUUID         AlertingError = "UUID generator cannot be nil"
)
