package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/claimsketch-com/claimsketchgo/internal/buildinfo"
	"github.com/claimsketch-com/claimsketchgo/internal/config"
	"github.com/claimsketch-com/claimsketchgo/internal/middleware"
	"github.com/claimsketch-com/claimsketchgo/internal/services/claims"
	"github.com/claimsketch-com/claimsketchgo/internal/sketch"
	"github.com/claimsketch-com/claimsketchgo/internal/store"
	"github.com/claimsketch-com/claimsketchgo/internal/websocket"
	"github.com/claimsketch-com/claimsketchgo/web"
)

// Router wraps the mux router with everything the handlers need.
type Router struct {
	*mux.Router
	store  *store.Store
	hub    *websocket.Hub
	cfg    *config.Config
	log    *zap.SugaredLogger
	claims *claims.ExportService // nil when the bridge is not configured
}

// NewRouter creates the HTTP router with all routes.
func NewRouter(st *store.Store, hub *websocket.Hub, cfg *config.Config, log *zap.SugaredLogger) *Router {
	rt := &Router{
		Router: mux.NewRouter(),
		store:  st,
		hub:    hub,
		cfg:    cfg,
		log:    log,
	}

	rt.Use(middleware.RequestLogger(log))

	// Health check endpoint
	rt.HandleFunc("/health", rt.healthCheck).Methods("GET")

	// API routes
	api := rt.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", rt.getStatus).Methods("GET")

	// Inspection CRUD
	api.HandleFunc("/inspections", rt.listInspections).Methods("GET")
	api.HandleFunc("/inspections", rt.createInspection).Methods("POST")
	api.HandleFunc("/inspections/{id}", rt.getInspection).Methods("GET")
	api.HandleFunc("/inspections/{id}", rt.updateInspection).Methods("PATCH")
	api.HandleFunc("/inspections/{id}", rt.deleteInspection).Methods("DELETE")

	// Sketch entities
	api.HandleFunc("/inspections/{id}/rooms", rt.listRooms).Methods("GET")
	api.HandleFunc("/inspections/{id}/rooms", rt.createRoom).Methods("POST")
	api.HandleFunc("/rooms/{id}", rt.getRoom).Methods("GET")
	api.HandleFunc("/rooms/{id}", rt.updateRoom).Methods("PATCH")
	api.HandleFunc("/rooms/{id}", rt.deleteRoom).Methods("DELETE")

	api.HandleFunc("/inspections/{id}/openings", rt.listOpenings).Methods("GET")
	api.HandleFunc("/inspections/{id}/openings", rt.createOpening).Methods("POST")
	api.HandleFunc("/openings/{id}", rt.getOpening).Methods("GET")
	api.HandleFunc("/openings/{id}", rt.updateOpening).Methods("PATCH")
	api.HandleFunc("/openings/{id}", rt.deleteOpening).Methods("DELETE")

	api.HandleFunc("/inspections/{id}/adjacencies", rt.listAdjacencies).Methods("GET")
	api.HandleFunc("/inspections/{id}/adjacencies", rt.createAdjacency).Methods("POST")
	api.HandleFunc("/adjacencies/{id}", rt.deleteAdjacency).Methods("DELETE")

	api.HandleFunc("/inspections/{id}/annotations", rt.listAnnotations).Methods("GET")
	api.HandleFunc("/inspections/{id}/annotations", rt.createAnnotation).Methods("POST")
	api.HandleFunc("/annotations/{id}", rt.getAnnotation).Methods("GET")
	api.HandleFunc("/annotations/{id}", rt.updateAnnotation).Methods("PATCH")
	api.HandleFunc("/annotations/{id}", rt.deleteAnnotation).Methods("DELETE")

	// Assembled plan and exports
	api.HandleFunc("/inspections/{id}/plan", rt.getPlan).Methods("GET")
	api.HandleFunc("/inspections/{id}/plan.svg", rt.getPlanSVG).Methods("GET")
	api.HandleFunc("/inspections/{id}/report.pdf", rt.getReportPDF).Methods("GET")
	api.HandleFunc("/inspections/{id}/schedule.xlsx", rt.getScheduleXLSX).Methods("GET")
	api.HandleFunc("/inspections/{id}/export", rt.exportInspection).Methods("POST")

	// Live sketch editing
	rt.HandleFunc("/ws/sketch/{id}", rt.serveSketch)

	// Static viewer (embedded web module)
	if fsys, err := web.GetFileSystem(); err == nil {
		rt.PathPrefix("/").Handler(http.FileServer(http.FS(fsys)))
	} else {
		log.Warnf("⚠️ Viewer assets unavailable: %v", err)
	}

	return rt
}

// SetClaimsService wires the claims bridge once it is constructed.
func (rt *Router) SetClaimsService(svc *claims.ExportService) {
	rt.claims = svc
}

func (rt *Router) sketchParams() sketch.Params {
	return sketch.Params{
		Scale:     rt.cfg.Sketch.Scale,
		MinRoomW:  rt.cfg.Sketch.MinRoomW,
		MinRoomH:  rt.cfg.Sketch.MinRoomH,
		Tolerance: rt.cfg.Sketch.WallTolerance,
	}
}

// serveSketch upgrades the request into a live edit session.
func (rt *Router) serveSketch(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	if _, err := rt.store.GetInspection(req.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "Inspection not found")
		return
	}
	websocket.ServeSketch(rt.hub, rt.store, rt.log, rt.sketchParams(), id, w, req)
}

// healthCheck returns the health status of the API
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": "local",
	})
}

// getStatus returns the current service status
func (rt *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	dbStatus := "ok"
	inspections, rooms, err := rt.store.Counts(req.Context())
	if err != nil {
		dbStatus = "error"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "running",
		"version":   buildinfo.Short(),
		"startedAt": buildinfo.StartTime,
		"database":  dbStatus,
		"counts": map[string]int64{
			"inspections": inspections,
			"rooms":       rooms,
		},
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
