package registry

// RegistryError is a custom error type for colony registration errors
type RegistryError string

// Error implements the error interface
func (e RegistryError) Error() string {
	return string(e)
}

// Define errors
const (
	// ErrInvalidSession covers sessions that are closed as well as sessions
	// the caller does not own
	ErrInvalidSession RegistryError = "session is closed or not available"

	ErrHiveNotFound          RegistryError = "hive not found on this site"
	ErrColonyNotFound        RegistryError = "colony not found"
	ErrHiveAlreadyRegistered RegistryError = "hive already registered in this session"
	ErrInvalidArgument       RegistryError = "invalid argument"
	ErrNilConfig             RegistryError = "config cannot be nil"
	ErrNilSessionRepo        RegistryError = "session repository cannot be nil"
	ErrNilColonyRepo         RegistryError = "colony repository cannot be nil"
	ErrNilHiveRegistry       RegistryError = "hive registry cannot be nil"
	ErrNilGuard              RegistryError = "ownership guard cannot be nil"
	ErrNilClock              RegistryError = "clock cannot be nil"
	ErrNilUUID               RegistryError = "UUID generator cannot be nil"
)
