package driven

// ConfigStore provides persistent key-value application configuration.
// Keys use dotted notation, e.g. "retriever.k" or "llm.model".
type ConfigStore interface {
	// Get retrieves a raw configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if not found or wrong type.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if not found or wrong type.
	GetInt(key string) int

	// GetFloat retrieves a float configuration value.
	// Returns 0 if not found or wrong type.
	GetFloat(key string) float64

	// GetBool retrieves a boolean configuration value.
	// Returns false if not found or wrong type.
	GetBool(key string) bool

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error

	// Load reads configuration from the backing store.
	Load() error
}
