package probe

import "time"

// Default run parameters.
const (
	DefaultBaseURL  = "http://localhost:9080"
	DefaultTimeout  = 10 * time.Second
	DefaultWorkers  = 8
	DefaultRequests = 500
)

// WorkerChannelMultiplier sizes the job channel relative to the worker count.
const WorkerChannelMultiplier = 2

// unknownPlanetID is an id the catalog is expected not to contain.
const unknownPlanetID = "does-not-exist"
