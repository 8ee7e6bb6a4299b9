// Package types contains common types used across the application
package types

import "github.com/okian/exoplanets/internal/domain/model"

// NotFoundMessage is the marker returned for a lookup miss.
const NotFoundMessage = "Not found"

// Lookup is the result of fetching a planet by id: either Found with the
// planet set, or a miss.
type Lookup struct {
	Planet model.Planet
	Found  bool
}

// Found wraps a hit.
func Found(p model.Planet) Lookup { return Lookup{Planet: p, Found: true} }

// NotFound is the miss result.
func NotFound() Lookup { return Lookup{} }

// NotFoundBody is the soft-error payload clients receive, with a 200 status,
// when no planet has the requested id.
type NotFoundBody struct {
	Error string `json:"error"`
}

// CatalogStats summarises the loaded catalog.
type CatalogStats struct {
	Total int `json:"total"`
	// ByMission counts records per mission as stored, without case folding.
	// Records without a mission key are counted under "".
	ByMission map[string]int `json:"by_mission"`
	// DuplicateIDs maps every id used by more than one record to its count.
	DuplicateIDs map[string]int `json:"duplicate_ids"`
	EmptyIDs     int            `json:"empty_ids"`
	// MissingIDs counts records without an id key or with a non-string id.
	MissingIDs int `json:"missing_ids"`
}
