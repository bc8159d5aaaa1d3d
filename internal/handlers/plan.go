package handlers

import (
	"net/http"

	"github.com/claimsketch-com/claimsketchgo/internal/sketch"
)

// getPlan returns the assembled plan document for an inspection
func (rt *Router) getPlan(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}
	st, err := rt.store.LoadState(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load sketch state")
		return
	}
	respondJSON(w, http.StatusOK, sketch.BuildPlan(id, st, rt.sketchParams()))
}

// getPlanSVG renders the plan as an SVG document
func (rt *Router) getPlanSVG(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}
	st, err := rt.store.LoadState(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load sketch state")
		return
	}

	params := rt.sketchParams()
	svg := sketch.RenderSVG(sketch.BuildPlan(id, st, params), params)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}
