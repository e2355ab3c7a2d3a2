// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BcryptCost is the work factor for migrated credential hashes.
	BcryptCost int `koanf:"bcrypt_cost"`

	// MentionWeights overrides entries of the interview weight table,
	// keyed by mention name.
	MentionWeights map[string]int `koanf:"mention_weights"`

	// HalfPoint is the per-criterion contribution to the composite score.
	HalfPoint float64 `koanf:"half_point"`

	// MaxImportRows caps the row count accepted by a single bulk import.
	MaxImportRows int `koanf:"max_import_rows"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		BcryptCost:    10,
		HalfPoint:     0.5,
		MaxImportRows: 1000,
	}
}
