// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and EXO_* environment variables on top.
// - Errors are wrapped around this package's sentinel kinds.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`
	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// CORS policy. "*" in origins, methods or headers allows everything.
	CORSAllowedOrigins   []string `koanf:"cors_allowed_origins"`
	CORSAllowedMethods   []string `koanf:"cors_allowed_methods"`
	CORSAllowedHeaders   []string `koanf:"cors_allowed_headers"`
	CORSAllowCredentials bool     `koanf:"cors_allow_credentials"`
	// CORSMaxAge is the preflight cache lifetime in seconds; 0 omits the header.
	CORSMaxAge int `koanf:"cors_max_age"`

	// RateLimit is the sustained request rate per second; 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit"`
	// RateLimitBurst is the token bucket size.
	RateLimitBurst int `koanf:"rate_limit_burst"`

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// DocsEnabled serves the OpenAPI document and ReDoc page.
	DocsEnabled bool `koanf:"docs_enabled"`

	// CatalogFile is a JSON array of planet records loaded instead of the
	// built-in catalog. Empty uses the built-in one.
	CatalogFile string `koanf:"catalog_file"`
}

// New creates a Config with defaults. The CORS defaults are fully
// permissive: the catalog is public, read-only data for a browser front end.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		CORSAllowedOrigins:   []string{"*"},
		CORSAllowedMethods:   []string{"*"},
		CORSAllowedHeaders:   []string{"*"},
		CORSAllowCredentials: true,
		CORSMaxAge:           600,
		RateLimit:            100,
		RateLimitBurst:       200,
		ReadTimeout:          10 * time.Second,
		WriteTimeout:         10 * time.Second,
		IdleTimeout:          60 * time.Second,
		ShutdownTimeout:      30 * time.Second,
		DocsEnabled:          true,
	}
}
