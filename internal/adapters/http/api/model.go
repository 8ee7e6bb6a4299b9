// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/exoplanets/internal/domain/performance"
	"github.com/okian/exoplanets/pkg/metrics"
)

const missionParam = "mission"

// ModelHandler serves the mocked classifier performance reports.
type ModelHandler struct {
	deps ModelDependencies
}

// NewModelHandler creates a new model handler.
func NewModelHandler(deps ModelDependencies) *ModelHandler {
	return &ModelHandler{deps: deps}
}

// HandleGet handles GET /ai_model?mission= requests. The mission must be
// exactly "kepler" or "tess"; anything else is rejected with 422.
func (h *ModelHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	values, ok := r.URL.Query()[missionParam]
	if !ok || len(values) == 0 {
		metrics.RecordValidationRejection(missionParam, "missing")
		writeValidationError(w, missingQueryParam(missionParam))
		return
	}

	// Repeated parameters resolve to the last value.
	raw := values[len(values)-1]
	mission, err := performance.ParseMission(raw)
	if err != nil {
		metrics.RecordValidationRejection(missionParam, "pattern")
		writeValidationError(w, patternMismatch(missionParam, performance.MissionPattern))
		return
	}

	summary, ok := h.deps.ModelPerformance(r.Context(), mission)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
