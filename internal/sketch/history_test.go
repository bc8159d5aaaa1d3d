package sketch

import (
	"fmt"
	"testing"
)

func TestHistoryStackDropsOldest(t *testing.T) {
	var h historyStack
	for i := 0; i < historyLimit+5; i++ {
		h.push(&resizeEntry{roomID: fmt.Sprintf("room-%d", i)})
	}

	if len(h.undoStack) != historyLimit {
		t.Fatalf("stack depth: got %d, want %d", len(h.undoStack), historyLimit)
	}
	oldest := h.undoStack[0].(*resizeEntry)
	if oldest.roomID != "room-5" {
		t.Errorf("oldest surviving entry: got %s, want room-5", oldest.roomID)
	}
	newest := h.undoStack[len(h.undoStack)-1].(*resizeEntry)
	if newest.roomID != "room-54" {
		t.Errorf("newest entry: got %s, want room-54", newest.roomID)
	}
}

func TestHistoryStackPushClearsRedo(t *testing.T) {
	var h historyStack
	h.push(&resizeEntry{roomID: "a"})
	e, ok := h.popUndo()
	if !ok {
		t.Fatal("expected an entry to pop")
	}
	h.pushRedo(e)
	if len(h.redoStack) != 1 {
		t.Fatalf("redo depth: got %d, want 1", len(h.redoStack))
	}

	h.push(&resizeEntry{roomID: "b"})
	if len(h.redoStack) != 0 {
		t.Error("a new edit must clear the redo stack")
	}
}

func TestHistoryStackRedoRoundTrip(t *testing.T) {
	var h historyStack
	h.push(&resizeEntry{roomID: "a"})
	h.push(&resizeEntry{roomID: "b"})

	e, _ := h.popUndo()
	h.pushRedo(e)

	r, ok := h.popRedo()
	if !ok {
		t.Fatal("expected a redo entry")
	}
	if r.(*resizeEntry).roomID != "b" {
		t.Errorf("redo entry: got %s, want b", r.(*resizeEntry).roomID)
	}

	// re-applying moves it back without disturbing the redo tail
	h.pushUndoOnly(r)
	if len(h.undoStack) != 2 {
		t.Errorf("undo depth after redo: got %d, want 2", len(h.undoStack))
	}
	if len(h.redoStack) != 0 {
		t.Errorf("redo depth after redo: got %d, want 0", len(h.redoStack))
	}

	if _, ok := h.popRedo(); ok {
		t.Error("empty redo stack should not pop")
	}
}
