// Package repository defines the planet catalog store interface and errors.
package repository

import (
	"context"

	"github.com/okian/exoplanets/internal/domain/model"
	"github.com/okian/exoplanets/internal/domain/types"
)

// Store provides read access to the planet catalog.
type Store interface {
	// List returns every record in stored order, duplicates included.
	List(ctx context.Context) []model.Planet

	// FindByID returns the first record whose id equals id exactly.
	// Returns ErrNotFound when no record matches.
	FindByID(ctx context.Context, id string) (model.Planet, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) int

	// Stats describes the stored records.
	Stats(ctx context.Context) types.CatalogStats
}
