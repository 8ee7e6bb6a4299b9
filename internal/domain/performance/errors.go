package performance

import "errors"

// Sentinel kinds for mission validation.
var (
	ErrInvalidMission = errors.New("mission must match " + MissionPattern)
)
