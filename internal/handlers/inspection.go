package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

// listInspections returns all inspections with room counts, newest first
func (rt *Router) listInspections(w http.ResponseWriter, req *http.Request) {
	inspections, err := rt.store.ListInspections(req.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch inspections")
		return
	}
	respondJSON(w, http.StatusOK, inspections)
}

// getInspection returns a single inspection by ID
func (rt *Router) getInspection(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	insp, err := rt.store.GetInspection(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Inspection not found")
		return
	}
	respondJSON(w, http.StatusOK, insp)
}

// createInspection creates a new inspection
func (rt *Router) createInspection(w http.ResponseWriter, req *http.Request) {
	var insp models.Inspection
	if err := json.NewDecoder(req.Body).Decode(&insp); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if insp.ClaimNumber == "" {
		respondError(w, http.StatusBadRequest, "claimNumber is required")
		return
	}
	if insp.ID == "" {
		insp.ID = uuid.NewString()
	}
	if insp.Status == "" {
		insp.Status = models.InspectionDraft
	}
	if !validInspectionStatus(insp.Status) {
		respondError(w, http.StatusBadRequest, "Invalid status: "+insp.Status)
		return
	}

	if err := rt.store.CreateInspection(req.Context(), &insp); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create inspection")
		return
	}
	respondJSON(w, http.StatusCreated, insp)
}

// updateInspection applies a partial field update
func (rt *Router) updateInspection(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var body map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	fields := patchColumns(body, inspectionColumns)
	if len(fields) == 0 {
		respondError(w, http.StatusBadRequest, "No updatable fields in payload")
		return
	}
	if status, ok := fields["status"].(string); ok && !validInspectionStatus(status) {
		respondError(w, http.StatusBadRequest, "Invalid status: "+status)
		return
	}

	if err := rt.store.UpdateInspection(req.Context(), id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Inspection not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update inspection")
		return
	}

	insp, err := rt.store.GetInspection(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reload inspection")
		return
	}
	respondJSON(w, http.StatusOK, insp)
}

// deleteInspection removes an inspection and all its sketch entities
func (rt *Router) deleteInspection(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	if err := rt.store.DeleteInspection(req.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Inspection not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete inspection")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Inspection deleted successfully",
	})
}

func validInspectionStatus(s string) bool {
	switch s {
	case models.InspectionDraft, models.InspectionInProgress, models.InspectionComplete:
		return true
	}
	return false
}
