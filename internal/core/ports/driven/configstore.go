package driven

// ConfigStore provides persistent key-value configuration with dot-notation
// keys (e.g. "openai.model").
type ConfigStore interface {
	// GetString retrieves a string value, or "" when absent.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 when absent.
	GetInt(key string) int

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Path returns the backing file path.
	Path() string
}
