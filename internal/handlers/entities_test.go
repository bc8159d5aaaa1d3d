package handlers

import (
	"strings"
	"testing"
)

func TestDecodeOpeningKeepsExplicitZeroPosition(t *testing.T) {
	op, err := decodeOpening(strings.NewReader(
		`{"roomId":"room-1","openingType":"door","wallDirection":"north","positionOnWall":0,"widthFt":3,"heightFt":6.8}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if op.PositionOnWall != 0 {
		t.Errorf("explicit zero position: got %v, want 0", op.PositionOnWall)
	}
	if op.OpeningType != "door" || op.WallDirection != "north" {
		t.Errorf("decoded fields: got %q on %q", op.OpeningType, op.WallDirection)
	}
}

func TestDecodeOpeningDefaultsAbsentPosition(t *testing.T) {
	op, err := decodeOpening(strings.NewReader(
		`{"roomId":"room-1","openingType":"window","wallDirection":"east","widthFt":3,"heightFt":4}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if op.PositionOnWall != 0.5 {
		t.Errorf("absent position: got %v, want 0.5", op.PositionOnWall)
	}
}

func TestDecodeAnnotationKeepsExplicitZeroCorner(t *testing.T) {
	a, err := decodeAnnotation(strings.NewReader(
		`{"roomId":"room-1","annotationType":"damage","label":"Water stain","posX":0,"posY":0.3}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.PosX != 0 || a.PosY != 0.3 {
		t.Errorf("marker position: got (%v, %v), want (0, 0.3)", a.PosX, a.PosY)
	}
}

func TestDecodeAnnotationDefaultsToCenter(t *testing.T) {
	a, err := decodeAnnotation(strings.NewReader(`{"roomId":"room-1","annotationType":"note"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.PosX != 0.5 || a.PosY != 0.5 {
		t.Errorf("default position: got (%v, %v), want (0.5, 0.5)", a.PosX, a.PosY)
	}
}
