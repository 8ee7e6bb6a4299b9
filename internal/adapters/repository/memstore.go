// Package repository defines the planet catalog store interface and errors.
package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/okian/exoplanets/internal/domain/model"
	"github.com/okian/exoplanets/internal/domain/types"
	"github.com/okian/exoplanets/pkg/logger"
	"github.com/okian/exoplanets/pkg/metrics"
	"github.com/rotisserie/eris"
)

const nanosecondsPerMillisecond = 1e6

// MemStore is an immutable, ordered in-memory catalog.
//
// Records are loaded once by NewMemStore and never modified, so reads need
// no locking. Lookups are linear scans; the catalog is small and the first
// match in stored order must win when ids repeat.
type MemStore struct {
	source []byte
	logger logger.Logger

	planets []model.Planet
	stats   types.CatalogStats
}

var _ Store = (*MemStore)(nil)

// NewMemStore decodes the catalog source (the embedded fixture unless
// WithSource is given). Malformed records are kept as they are, with
// wrong-typed fields left unset in the typed view; only a source that is not
// a JSON array of objects fails to load.
func NewMemStore(ctx context.Context, opts ...Option) (*MemStore, error) {
	const op = "repository.new_mem_store"
	s := &MemStore{source: Fixture}
	for _, opt := range opts {
		opt(s)
	}

	var planets []model.Planet
	if err := json.Unmarshal(s.source, &planets); err != nil {
		return nil, eris.Wrapf(ErrLoadCatalog, "%s: %v", op, err)
	}
	s.planets = planets
	s.stats = computeStats(planets)
	s.report(ctx)

	metrics.UpdateCatalogRecords(len(planets))
	metrics.UpdateCatalogDuplicateIDs(len(s.stats.DuplicateIDs))
	return s, nil
}

// List returns the records in stored order. The slice is a copy; the
// records share their raw bytes with the store and must not be modified.
func (s *MemStore) List(_ context.Context) []model.Planet {
	out := make([]model.Planet, len(s.planets))
	copy(out, s.planets)
	return out
}

// FindByID returns the first record whose id key equals id exactly.
// Records without an id key never match, not even for "".
func (s *MemStore) FindByID(_ context.Context, id string) (model.Planet, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond)
	}()

	for _, p := range s.planets {
		if p.ID != nil && *p.ID == id {
			return p, nil
		}
	}
	return model.Planet{}, ErrNotFound
}

// Count returns the number of stored records.
func (s *MemStore) Count(_ context.Context) int { return len(s.planets) }

// Stats returns a copy of the load-time statistics.
func (s *MemStore) Stats(_ context.Context) types.CatalogStats {
	st := s.stats
	st.ByMission = cloneCounts(s.stats.ByMission)
	st.DuplicateIDs = cloneCounts(s.stats.DuplicateIDs)
	return st
}

// report logs the data quality issues the catalog is known to carry.
func (s *MemStore) report(ctx context.Context) {
	if s.logger == nil {
		return
	}
	for id, n := range s.stats.DuplicateIDs {
		s.logger.Warn(ctx, "duplicate planet id; lookups return the first record",
			logger.String("id", id), logger.Int("records", n))
	}
	if s.stats.EmptyIDs > 0 {
		s.logger.Warn(ctx, "planet records with an empty id", logger.Int("records", s.stats.EmptyIDs))
	}
	if s.stats.MissingIDs > 0 {
		s.logger.Warn(ctx, "planet records without an id", logger.Int("records", s.stats.MissingIDs))
	}
	s.logger.Info(ctx, "catalog loaded", logger.Int("records", len(s.planets)))
}

func computeStats(planets []model.Planet) types.CatalogStats {
	st := types.CatalogStats{
		Total:        len(planets),
		ByMission:    make(map[string]int),
		DuplicateIDs: make(map[string]int),
	}
	seen := make(map[string]int, len(planets))
	for _, p := range planets {
		st.ByMission[p.MissionValue()]++
		switch {
		case !p.HasID():
			st.MissingIDs++
			continue
		case *p.ID == "":
			st.EmptyIDs++
		}
		seen[*p.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			st.DuplicateIDs[id] = n
		}
	}
	return st
}

func cloneCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
