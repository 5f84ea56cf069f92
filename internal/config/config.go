// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

// Store backend names accepted by StoreBackend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// VerifyToken is the shared secret Slack sends with each slash command.
	// Empty disables the token check.
	VerifyToken string `koanf:"verify_token"`

	// StoreBackend selects the key-value backend: memory or sqlite.
	StoreBackend string `koanf:"store_backend"`

	// StorePath locates the sqlite database file when StoreBackend is sqlite.
	StorePath string `koanf:"store_path"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":8080",
		VerifyToken:  "",
		StoreBackend: BackendMemory,
		StorePath:    "gong.db",
	}
}
