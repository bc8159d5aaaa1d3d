package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/claimsketch-com/claimsketchgo/internal/sketch"
)

func TestBuildXLSX(t *testing.T) {
	got, err := BuildXLSX(testInspection(), testState())
	if err != nil {
		t.Fatalf("BuildXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(got))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(roomsSheet)
	if err != nil {
		t.Fatalf("read rooms sheet: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("room rows: got %d, want 6", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][8] != "Damage Notes" {
		t.Errorf("header row: got %v", rows[0])
	}

	lr := rows[1]
	if lr[0] != "Living Room" {
		t.Errorf("name: got %q", lr[0])
	}
	if lr[1] != "Main Structure" {
		t.Errorf("structure: got %q", lr[1])
	}
	if lr[2] != "Interior" {
		t.Errorf("view: got %q", lr[2])
	}
	if lr[3] != "18" || lr[4] != "14" || lr[5] != "8" {
		t.Errorf("dims: got %q %q %q", lr[3], lr[4], lr[5])
	}
	if lr[6] != "252" {
		t.Errorf("area: got %q, want 252", lr[6])
	}
	if lr[7] != "Complete" {
		t.Errorf("status: got %q", lr[7])
	}
	if lr[8] != "Water stain" {
		t.Errorf("damage notes: got %q", lr[8])
	}

	if rows[3][0] != "Kitchen / Pantry" {
		t.Errorf("sub-area name: got %q, want Kitchen / Pantry", rows[3][0])
	}
	if rows[4][2] != "Roof facet" {
		t.Errorf("facet view: got %q", rows[4][2])
	}

	ops, err := f.GetRows(openingsSheet)
	if err != nil {
		t.Fatalf("read openings sheet: %v", err)
	}
	if len(ops) != 3 {
		t.Fatalf("opening rows: got %d, want 3", len(ops))
	}
	door := ops[1]
	if door[0] != "Living Room" || door[1] != "Door" || door[2] != "South" {
		t.Errorf("door row: got %v", door)
	}
	if door[3] != "0.5" || door[4] != "3" || door[5] != "6.8" || door[6] != "1" {
		t.Errorf("door values: got %v", door)
	}
	window := ops[2]
	if window[1] != "Window" || window[6] != "2" {
		t.Errorf("window row: got %v", window)
	}
}

func TestBuildXLSXEmptyState(t *testing.T) {
	got, err := BuildXLSX(testInspection(), sketch.State{})
	if err != nil {
		t.Fatalf("BuildXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(got))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(roomsSheet)
	if err != nil {
		t.Fatalf("read rooms sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("empty state should leave only the header: got %d rows", len(rows))
	}
}
