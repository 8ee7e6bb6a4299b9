package repository

import _ "embed"

// Fixture is the built-in planet catalog.
//
//go:embed fixtures/exoplanets.json
var Fixture []byte
