package introduction

// IntroductionError is a custom error type for introduction errors
type IntroductionError string

// Error implements the error interface
func (e IntroductionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidArgument   IntroductionError = "invalid argument"
	ErrSessionNotFound   IntroductionError = "session not found"
	ErrColonyNotFound    IntroductionError = "colony not found"
	ErrNoPendingColonies IntroductionError = "session has no pending colonies"
	ErrInvalidTransition IntroductionError = "colony status does not allow this operation"
	ErrConflict          IntroductionError = "colony was modified concurrently"
	ErrNilConfig         IntroductionError = "config cannot be nil"
	ErrNilSessionRepo    IntroductionError = "session repository cannot be nil"
	ErrNilColonyRepo     IntroductionError = "colony repository cannot be nil"
	ErrNilAlerts         IntroductionError = "alerting service cannot be nil"
	ErrNilGuard          IntroductionError = "ownership guard cannot be nil"
	ErrNilClock          IntroductionError = "clock cannot be nil"
	ErrNilUUID           IntroductionError = "UUID generator cannot be nil"
)
