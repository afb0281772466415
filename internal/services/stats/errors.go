package stats

// StatsError is a custom error type for analytics errors
type StatsError string

// Error implements the error interface
func (e StatsError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidArgument StatsError = "invalid argument"
	ErrSessionNotFound StatsError = "session not found"
	ErrSiteNotFound    StatsError = "site not found"
	ErrNilConfig       StatsError = "config cannot be nil"
	ErrNilSessionRepo  StatsError = "session repository cannot be nil"
	ErrNilColonyRepo   StatsError = "colony repository cannot be nil"
	ErrNilGuard        StatsError = "ownership guard cannot be nil"
)
