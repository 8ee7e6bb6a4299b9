// Package repository defines the planet catalog store interface and errors.
package repository

import "github.com/okian/exoplanets/pkg/logger"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithSource replaces the embedded fixture with a JSON array of records.
func WithSource(src []byte) Option {
	return func(s *MemStore) {
		if len(src) > 0 {
			s.source = src
		}
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *MemStore) {
		if l != nil {
			s.logger = l
		}
	}
}
