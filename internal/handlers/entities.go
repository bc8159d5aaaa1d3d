package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
	"github.com/claimsketch-com/claimsketchgo/internal/sketch"
)

// PATCH bodies arrive as camelCase field maps; GORM Updates wants
// column names. Each allowlist maps the one to the other and drops
// anything a client must not touch (ids, timestamps, foreign keys).
var (
	inspectionColumns = map[string]string{
		"claimNumber":  "claim_number",
		"policyNumber": "policy_number",
		"insuredName":  "insured_name",
		"address":      "address",
		"status":       "status",
		"metadata":     "metadata",
	}

	roomColumns = map[string]string{
		"name":         "name",
		"status":       "status",
		"roomType":     "room_type",
		"viewType":     "view_type",
		"shapeType":    "shape_type",
		"structure":    "structure",
		"parentRoomId": "parent_room_id",
		"lengthFt":     "length_ft",
		"widthFt":      "width_ft",
		"heightFt":     "height_ft",
		"facetLabel":   "facet_label",
		"pitch":        "pitch",
		"sortOrder":    "sort_order",
	}

	openingColumns = map[string]string{
		"openingType":    "opening_type",
		"wallDirection":  "wall_direction",
		"wallIndex":      "wall_index",
		"positionOnWall": "position_on_wall",
		"widthFt":        "width_ft",
		"heightFt":       "height_ft",
		"quantity":       "quantity",
	}

	annotationColumns = map[string]string{
		"annotationType": "annotation_type",
		"label":          "label",
		"value":          "value",
		"posX":           "pos_x",
		"posY":           "pos_y",
	}
)

func patchColumns(body map[string]interface{}, allowed map[string]string) map[string]interface{} {
	fields := make(map[string]interface{})
	for key, value := range body {
		if col, ok := allowed[key]; ok {
			fields[col] = value
		}
	}
	return fields
}

// requireInspection loads the inspection named in the route, writing a
// 404 and returning false when it does not exist.
func (rt *Router) requireInspection(w http.ResponseWriter, req *http.Request) (string, bool) {
	id := mux.Vars(req)["id"]
	if _, err := rt.store.GetInspection(req.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "Inspection not found")
		return "", false
	}
	return id, true
}

// --- Rooms ---

func (rt *Router) listRooms(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}
	st, err := rt.store.LoadState(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}
	respondJSON(w, http.StatusOK, st.Rooms)
}

func (rt *Router) getRoom(w http.ResponseWriter, req *http.Request) {
	room, err := rt.store.GetRoom(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Room not found")
		return
	}
	respondJSON(w, http.StatusOK, room)
}

func (rt *Router) createRoom(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}

	var room models.Room
	if err := json.NewDecoder(req.Body).Decode(&room); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if room.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	room.InspectionID = id
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if room.Status == "" {
		room.Status = models.RoomNotStarted
	}

	if err := rt.store.CreateRoom(req.Context(), &room); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create room")
		return
	}
	respondJSON(w, http.StatusCreated, room)
}

func (rt *Router) updateRoom(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var body map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	fields := patchColumns(body, roomColumns)
	if len(fields) == 0 {
		respondError(w, http.StatusBadRequest, "No updatable fields in payload")
		return
	}

	if err := rt.store.UpdateRoom(req.Context(), id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Room not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update room")
		return
	}

	room, err := rt.store.GetRoom(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reload room")
		return
	}
	respondJSON(w, http.StatusOK, room)
}

func (rt *Router) deleteRoom(w http.ResponseWriter, req *http.Request) {
	if err := rt.store.DeleteRoom(req.Context(), mux.Vars(req)["id"]); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Room not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete room")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Room deleted successfully",
	})
}

// --- Openings ---

func (rt *Router) listOpenings(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}
	st, err := rt.store.LoadState(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch openings")
		return
	}
	respondJSON(w, http.StatusOK, st.Openings)
}

func (rt *Router) getOpening(w http.ResponseWriter, req *http.Request) {
	op, err := rt.store.GetOpening(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Opening not found")
		return
	}
	respondJSON(w, http.StatusOK, op)
}

// decodeOpening reads an opening create payload. The position defaults
// to the wall midpoint only when the key is absent, so an explicit 0
// (the wall's reference corner) survives the round trip.
func decodeOpening(r io.Reader) (models.Opening, error) {
	var body struct {
		models.Opening
		PositionOnWall *float64 `json:"positionOnWall"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return models.Opening{}, err
	}
	op := body.Opening
	op.PositionOnWall = 0.5
	if body.PositionOnWall != nil {
		op.PositionOnWall = *body.PositionOnWall
	}
	return op, nil
}

func (rt *Router) createOpening(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}

	op, err := decodeOpening(req.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if op.OpeningType == "" {
		respondError(w, http.StatusBadRequest, "openingType is required")
		return
	}
	room, err := rt.store.GetRoom(req.Context(), op.RoomID)
	if err != nil || room.InspectionID != id {
		respondError(w, http.StatusBadRequest, "roomId does not belong to this inspection")
		return
	}
	if op.ID == "" {
		op.ID = uuid.NewString()
	}

	if err := rt.store.CreateOpening(req.Context(), &op); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create opening")
		return
	}
	respondJSON(w, http.StatusCreated, op)
}

func (rt *Router) updateOpening(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var body map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	fields := patchColumns(body, openingColumns)
	if len(fields) == 0 {
		respondError(w, http.StatusBadRequest, "No updatable fields in payload")
		return
	}

	if err := rt.store.UpdateOpening(req.Context(), id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Opening not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update opening")
		return
	}

	op, err := rt.store.GetOpening(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reload opening")
		return
	}
	respondJSON(w, http.StatusOK, op)
}

func (rt *Router) deleteOpening(w http.ResponseWriter, req *http.Request) {
	if err := rt.store.DeleteOpening(req.Context(), mux.Vars(req)["id"]); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Opening not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete opening")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Opening deleted successfully",
	})
}

// --- Adjacencies ---

func (rt *Router) listAdjacencies(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}
	st, err := rt.store.LoadState(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch adjacencies")
		return
	}
	respondJSON(w, http.StatusOK, st.Adjacencies)
}

func (rt *Router) createAdjacency(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}

	var adj models.Adjacency
	if err := json.NewDecoder(req.Body).Decode(&adj); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	dirA, ok := sketch.ParseDirection(adj.WallDirectionA)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid wallDirectionA: "+adj.WallDirectionA)
		return
	}
	// The reciprocal side is derived when omitted and checked when not:
	// two rooms can only share a wall through opposite directions.
	if adj.WallDirectionB == "" {
		adj.WallDirectionB = dirA.Opposite().String()
	} else if dirB, ok := sketch.ParseDirection(adj.WallDirectionB); !ok || dirB != dirA.Opposite() {
		respondError(w, http.StatusBadRequest, "wallDirectionB must be opposite wallDirectionA")
		return
	}

	for _, roomID := range []string{adj.RoomIDA, adj.RoomIDB} {
		room, err := rt.store.GetRoom(req.Context(), roomID)
		if err != nil || room.InspectionID != id {
			respondError(w, http.StatusBadRequest, "Adjacency references a room outside this inspection")
			return
		}
	}
	adj.InspectionID = id
	if adj.ID == "" {
		adj.ID = uuid.NewString()
	}

	if err := rt.store.CreateAdjacency(req.Context(), &adj); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create adjacency")
		return
	}
	respondJSON(w, http.StatusCreated, adj)
}

func (rt *Router) deleteAdjacency(w http.ResponseWriter, req *http.Request) {
	if err := rt.store.DeleteAdjacency(req.Context(), mux.Vars(req)["id"]); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Adjacency not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete adjacency")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Adjacency deleted successfully",
	})
}

// --- Annotations ---

func (rt *Router) listAnnotations(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}
	st, err := rt.store.LoadState(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch annotations")
		return
	}
	respondJSON(w, http.StatusOK, st.Annotations)
}

func (rt *Router) getAnnotation(w http.ResponseWriter, req *http.Request) {
	a, err := rt.store.GetAnnotation(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Annotation not found")
		return
	}
	respondJSON(w, http.StatusOK, a)
}

// decodeAnnotation reads an annotation create payload. Marker
// coordinates default to the room center only for absent keys; an
// explicit 0 pins the marker to the rectangle's edge.
func decodeAnnotation(r io.Reader) (models.Annotation, error) {
	var body struct {
		models.Annotation
		PosX *float64 `json:"posX"`
		PosY *float64 `json:"posY"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return models.Annotation{}, err
	}
	a := body.Annotation
	a.PosX, a.PosY = 0.5, 0.5
	if body.PosX != nil {
		a.PosX = *body.PosX
	}
	if body.PosY != nil {
		a.PosY = *body.PosY
	}
	return a, nil
}

func (rt *Router) createAnnotation(w http.ResponseWriter, req *http.Request) {
	id, ok := rt.requireInspection(w, req)
	if !ok {
		return
	}

	a, err := decodeAnnotation(req.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if a.AnnotationType == "" {
		respondError(w, http.StatusBadRequest, "annotationType is required")
		return
	}
	room, err := rt.store.GetRoom(req.Context(), a.RoomID)
	if err != nil || room.InspectionID != id {
		respondError(w, http.StatusBadRequest, "roomId does not belong to this inspection")
		return
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	if err := rt.store.CreateAnnotation(req.Context(), &a); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create annotation")
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

func (rt *Router) updateAnnotation(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var body map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	fields := patchColumns(body, annotationColumns)
	if len(fields) == 0 {
		respondError(w, http.StatusBadRequest, "No updatable fields in payload")
		return
	}

	if err := rt.store.UpdateAnnotation(req.Context(), id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Annotation not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update annotation")
		return
	}

	a, err := rt.store.GetAnnotation(req.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reload annotation")
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (rt *Router) deleteAnnotation(w http.ResponseWriter, req *http.Request) {
	if err := rt.store.DeleteAnnotation(req.Context(), mux.Vars(req)["id"]); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Annotation not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete annotation")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Annotation deleted successfully",
	})
}
