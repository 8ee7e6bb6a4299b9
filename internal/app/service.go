// Package service provides the catalog service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"

	repository "github.com/okian/exoplanets/internal/adapters/repository"
	"github.com/okian/exoplanets/internal/domain/model"
	"github.com/okian/exoplanets/internal/domain/performance"
	"github.com/okian/exoplanets/internal/domain/types"
	"github.com/okian/exoplanets/pkg/logger"
	"github.com/okian/exoplanets/pkg/metrics"
	"github.com/rotisserie/eris"
)

// Service implements the API dependencies for the exoplanet catalog.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	source []byte

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore uses an already loaded store instead of the built-in catalog.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSource loads the catalog from src, a JSON array of records, instead
// of the embedded fixture. cmd passes the configured catalog_file here.
// Ignored when WithStore is given or src is empty.
func WithSource(src []byte) Option {
	return func(s *Service) {
		s.source = src
	}
}

// New constructs a new Service. Call Start before serving requests.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the catalog. Calling Start on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting catalog service...")

	if s.store == nil {
		store, err := repository.NewMemStore(ctx,
			repository.WithSource(s.source),
			repository.WithLogger(s.logger.Named("repository")),
		)
		if err != nil {
			return eris.Wrap(err, "service.start")
		}
		s.store = store
	}

	s.started = true
	s.logger.Info(ctx, "catalog service started", logger.Int("records", s.store.Count(ctx)))
	return nil
}

// Stop marks the service as stopped. The loaded catalog stays readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "catalog service stopped")
}

// List returns every planet record in stored order, duplicates and
// malformed records included.
func (s *Service) List(ctx context.Context) []model.Planet {
	return s.catalog().List(ctx)
}

// Get returns the first record whose id equals id exactly. A miss is a
// NotFound result, not an error.
func (s *Service) Get(ctx context.Context, id string) types.Lookup {
	p, err := s.catalog().FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error(ctx, "planet lookup failed", logger.String("id", id), logger.Error(err))
		}
		metrics.RecordLookup(metrics.LookupNotFound)
		return types.NotFound()
	}
	metrics.RecordLookup(metrics.LookupFound)
	return types.Found(p)
}

// ModelPerformance returns the static performance summary for mission.
// The mission is expected to be validated by the caller.
func (s *Service) ModelPerformance(_ context.Context, mission performance.Mission) (model.PerformanceSummary, bool) {
	summary, ok := performance.For(mission)
	if ok {
		metrics.RecordModelPerformanceRequest(string(mission))
	}
	return summary, ok
}

// Stats returns the catalog statistics computed at load.
func (s *Service) Stats(ctx context.Context) types.CatalogStats {
	return s.catalog().Stats(ctx)
}

// Started reports whether Start has completed.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Service) catalog() repository.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		panic("service not started. Call Start() first")
	}
	return s.store
}
