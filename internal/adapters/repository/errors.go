package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound    = errors.New("planet not found")
	ErrLoadCatalog = errors.New("load catalog failed")
)
