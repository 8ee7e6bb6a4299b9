package config

import (
	"context"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rotisserie/eris"
)

const (
	envPrefix  = "EXO_"
	envFileKey = "EXO_CONFIG"
)

// listKeys are split on commas when they come from the environment.
var listKeys = map[string]bool{
	"cors_allowed_origins": true,
	"cors_allowed_methods": true,
	"cors_allowed_headers": true,
}

// Load builds a Config by layering defaults, optional file, and env vars.
// The context is reserved for remote providers and is currently unused.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if EXO_CONFIG is set
//  3. env (prefix EXO_)
func Load(_ context.Context) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path := os.Getenv(envFileKey); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, eris.Wrapf(ErrLoadConfig, "read %s: %v", path, err)
		}
	}

	// EXO_RATE_LIMIT -> rate_limit. Keys stay flat to match the koanf tags.
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		if key == "config" {
			return "", nil
		}
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, eris.Wrapf(ErrLoadConfig, "environment: %v", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, eris.Wrapf(ErrLoadConfig, "decode: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values Load cannot reject by type alone.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return eris.Wrap(ErrInvalidConfig, "addr must not be empty")
	case c.LogFormat != "text" && c.LogFormat != "json":
		return eris.Wrapf(ErrInvalidConfig, "log_format must be text or json, got %q", c.LogFormat)
	case c.RateLimit < 0:
		return eris.Wrap(ErrInvalidConfig, "rate_limit must not be negative")
	case c.RateLimit > 0 && c.RateLimitBurst < 1:
		return eris.Wrap(ErrInvalidConfig, "rate_limit_burst must be at least 1 when rate limiting")
	case c.CORSMaxAge < 0:
		return eris.Wrap(ErrInvalidConfig, "cors_max_age must not be negative")
	case c.ShutdownTimeout <= 0:
		return eris.Wrap(ErrInvalidConfig, "shutdown_timeout must be positive")
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
