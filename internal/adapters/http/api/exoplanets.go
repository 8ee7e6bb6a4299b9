// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/okian/exoplanets/internal/domain/types"
)

// ExoplanetHandler serves the planet catalog.
type ExoplanetHandler struct {
	deps ExoplanetDependencies
}

// NewExoplanetHandler creates a new exoplanet handler.
func NewExoplanetHandler(deps ExoplanetDependencies) *ExoplanetHandler {
	return &ExoplanetHandler{deps: deps}
}

// HandleList handles GET /exoplanets requests.
func (h *ExoplanetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.List(r.Context()))
}

// HandleGet handles GET /exoplanets/{planet_id} requests. A miss is not an
// HTTP error: it answers 200 with {"error":"Not found"}.
func (h *ExoplanetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	res := h.deps.Get(r.Context(), planetID(r))
	if !res.Found {
		writeJSON(w, http.StatusOK, types.NotFoundBody{Error: types.NotFoundMessage})
		return
	}
	writeJSON(w, http.StatusOK, res.Planet)
}

// planetID returns the decoded path parameter. chi routes on RawPath when
// the request carries one, leaving the parameter escaped.
func planetID(r *http.Request) string {
	id := chi.URLParam(r, "planet_id")
	if r.URL.RawPath == "" {
		return id
	}
	if dec, err := url.PathUnescape(id); err == nil {
		return dec
	}
	return id
}
