package sketch

import (
	"context"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

// historyLimit bounds the undo stack; the oldest entry falls off when
// a new edit would exceed it.
const historyLimit = 50

// historyEntry is one undoable edit. undo and redo re-apply the edit
// against the store; the session never mutates its own copy of state,
// the transport reloads after either direction runs.
type historyEntry interface {
	undo(ctx context.Context, p Persister) error
	redo(ctx context.Context, p Persister) error
	kind() string
}

type historyStack struct {
	undoStack []historyEntry
	redoStack []historyEntry
}

// push records a new edit. Any redo tail is discarded: editing after
// an undo forks history.
func (h *historyStack) push(e historyEntry) {
	h.undoStack = append(h.undoStack, e)
	if len(h.undoStack) > historyLimit {
		h.undoStack = h.undoStack[1:]
	}
	h.redoStack = h.redoStack[:0]
}

func (h *historyStack) popUndo() (historyEntry, bool) {
	if len(h.undoStack) == 0 {
		return nil, false
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	return e, true
}

func (h *historyStack) pushRedo(e historyEntry) {
	h.redoStack = append(h.redoStack, e)
}

func (h *historyStack) popRedo() (historyEntry, bool) {
	if len(h.redoStack) == 0 {
		return nil, false
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	return e, true
}

func (h *historyStack) pushUndoOnly(e historyEntry) {
	h.undoStack = append(h.undoStack, e)
	if len(h.undoStack) > historyLimit {
		h.undoStack = h.undoStack[1:]
	}
}

// resizeEntry captures a room resize as before/after dimensions.
type resizeEntry struct {
	roomID    string
	oldLength float64
	oldWidth  float64
	newLength float64
	newWidth  float64
}

func (e *resizeEntry) kind() string { return "resize_room" }

func (e *resizeEntry) undo(ctx context.Context, p Persister) error {
	return p.UpdateRoom(ctx, e.roomID, map[string]interface{}{
		"length_ft": e.oldLength,
		"width_ft":  e.oldWidth,
	})
}

func (e *resizeEntry) redo(ctx context.Context, p Persister) error {
	return p.UpdateRoom(ctx, e.roomID, map[string]interface{}{
		"length_ft": e.newLength,
		"width_ft":  e.newWidth,
	})
}

type addOpeningEntry struct {
	opening models.Opening
}

func (e *addOpeningEntry) kind() string { return "add_opening" }

func (e *addOpeningEntry) undo(ctx context.Context, p Persister) error {
	return p.DeleteOpening(ctx, e.opening.ID)
}

func (e *addOpeningEntry) redo(ctx context.Context, p Persister) error {
	op := e.opening
	return p.CreateOpening(ctx, &op)
}

type deleteOpeningEntry struct {
	opening models.Opening
}

func (e *deleteOpeningEntry) kind() string { return "delete_opening" }

func (e *deleteOpeningEntry) undo(ctx context.Context, p Persister) error {
	op := e.opening
	return p.CreateOpening(ctx, &op)
}

func (e *deleteOpeningEntry) redo(ctx context.Context, p Persister) error {
	return p.DeleteOpening(ctx, e.opening.ID)
}

// moveOpeningEntry records an opening slide along its wall. The final
// offset lands in newOffset when the gesture ends, so one drag is one
// entry.
type moveOpeningEntry struct {
	openingID string
	oldOffset float64
	newOffset float64
}

func (e *moveOpeningEntry) kind() string { return "move_opening" }

func (e *moveOpeningEntry) undo(ctx context.Context, p Persister) error {
	return p.UpdateOpening(ctx, e.openingID, map[string]interface{}{
		"position_on_wall": e.oldOffset,
	})
}

func (e *moveOpeningEntry) redo(ctx context.Context, p Persister) error {
	return p.UpdateOpening(ctx, e.openingID, map[string]interface{}{
		"position_on_wall": e.newOffset,
	})
}

// addRoomEntry owns both the room and the adjacency that anchors it.
type addRoomEntry struct {
	room      models.Room
	adjacency *models.Adjacency
}

func (e *addRoomEntry) kind() string { return "add_room" }

func (e *addRoomEntry) undo(ctx context.Context, p Persister) error {
	if e.adjacency != nil {
		if err := p.DeleteAdjacency(ctx, e.adjacency.ID); err != nil {
			return err
		}
	}
	return p.DeleteRoom(ctx, e.room.ID)
}

func (e *addRoomEntry) redo(ctx context.Context, p Persister) error {
	room := e.room
	if err := p.CreateRoom(ctx, &room); err != nil {
		return err
	}
	if e.adjacency != nil {
		adj := *e.adjacency
		return p.CreateAdjacency(ctx, &adj)
	}
	return nil
}

type addAnnotationEntry struct {
	annotation models.Annotation
}

func (e *addAnnotationEntry) kind() string { return "add_annotation" }

func (e *addAnnotationEntry) undo(ctx context.Context, p Persister) error {
	return p.DeleteAnnotation(ctx, e.annotation.ID)
}

func (e *addAnnotationEntry) redo(ctx context.Context, p Persister) error {
	a := e.annotation
	return p.CreateAnnotation(ctx, &a)
}

type editAnnotationEntry struct {
	annotationID string
	oldLabel     string
	oldValue     string
	newLabel     string
	newValue     string
}

func (e *editAnnotationEntry) kind() string { return "edit_annotation" }

func (e *editAnnotationEntry) undo(ctx context.Context, p Persister) error {
	return p.UpdateAnnotation(ctx, e.annotationID, map[string]interface{}{
		"label": e.oldLabel,
		"value": e.oldValue,
	})
}

func (e *editAnnotationEntry) redo(ctx context.Context, p Persister) error {
	return p.UpdateAnnotation(ctx, e.annotationID, map[string]interface{}{
		"label": e.newLabel,
		"value": e.newValue,
	})
}

type deleteAnnotationEntry struct {
	annotation models.Annotation
}

func (e *deleteAnnotationEntry) kind() string { return "delete_annotation" }

func (e *deleteAnnotationEntry) undo(ctx context.Context, p Persister) error {
	a := e.annotation
	return p.CreateAnnotation(ctx, &a)
}

func (e *deleteAnnotationEntry) redo(ctx context.Context, p Persister) error {
	return p.DeleteAnnotation(ctx, e.annotation.ID)
}
