package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
	"github.com/claimsketch-com/claimsketchgo/internal/sketch"
)

const (
	roomsSheet    = "Rooms"
	openingsSheet = "Openings"
)

var roomsHeader = []string{
	"Name", "Structure", "View", "Length (ft)", "Width (ft)", "Height (ft)",
	"Area (sq ft)", "Status", "Damage Notes",
}

var openingsHeader = []string{
	"Room", "Type", "Wall", "Position", "Width (ft)", "Height (ft)", "Quantity",
}

// BuildXLSX renders the room schedule workbook: a Rooms sheet with
// measurements and damage notes, and an Openings sheet.
func BuildXLSX(insp *models.Inspection, st sketch.State) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open; Close runs after writing or on error.

	_ = f.SetDocProps(&excelize.DocProperties{
		Title:   "Room schedule for claim " + insp.ClaimNumber,
		Creator: "ClaimSketch",
	})

	if err := f.SetSheetName("Sheet1", roomsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(openingsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create openings sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeHeaderRow(f, roomsSheet, roomsHeader, headerStyle,
		[]float64{28, 18, 12, 11, 11, 11, 12, 14, 40}); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeHeaderRow(f, openingsSheet, openingsHeader, headerStyle,
		[]float64{26, 15, 10, 10, 11, 11, 10}); err != nil {
		f.Close()
		return nil, err
	}

	nameByID := make(map[string]string, len(st.Rooms))
	for _, r := range st.Rooms {
		nameByID[r.ID] = r.Name
	}
	notesByRoom := make(map[string][]string)
	for _, a := range st.Annotations {
		if a.AnnotationType != models.AnnotationDamage && a.AnnotationType != models.AnnotationHailCount {
			continue
		}
		note := a.Label
		if a.Value != "" {
			note += ": " + a.Value
		}
		if note != "" {
			notesByRoom[a.RoomID] = append(notesByRoom[a.RoomID], note)
		}
	}

	for i, r := range st.Rooms {
		row := i + 2
		name := r.Name
		if r.ParentRoomID != nil && *r.ParentRoomID != "" {
			if parent := nameByID[*r.ParentRoomID]; parent != "" {
				name = parent + " / " + r.Name
			}
		}
		structure := r.Structure
		if structure == "" {
			structure = "Main Structure"
		}

		cells := []interface{}{
			name, structure, viewLabel(&r), nil, nil, nil, nil,
			statusLabel(r.Status), strings.Join(notesByRoom[r.ID], "; "),
		}
		if r.LengthFt != nil {
			cells[3] = *r.LengthFt
		}
		if r.WidthFt != nil {
			cells[4] = *r.WidthFt
		}
		if r.HeightFt != nil {
			cells[5] = *r.HeightFt
		}
		if length, width, ok := r.Dims(); ok {
			cells[6] = length * width
		}
		if err := writeRow(f, roomsSheet, row, cells); err != nil {
			f.Close()
			return nil, err
		}
	}

	for i, op := range st.Openings {
		row := i + 2
		cells := []interface{}{
			nameByID[op.RoomID], openingLabel(op.OpeningType), wallLabel(&op),
			op.PositionOnWall, op.WidthFt, op.HeightFt, op.Quantity,
		}
		if err := writeRow(f, openingsSheet, row, cells); err != nil {
			f.Close()
			return nil, err
		}
	}

	for _, sheet := range []string{roomsSheet, openingsSheet} {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to freeze panes: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, style int, widths []float64) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to style header cell %s: %w", cell, err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if col < len(widths) {
			if err := f.SetColWidth(sheet, name, name, widths[col]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for col, value := range cells {
		if value == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

func viewLabel(r *models.Room) string {
	switch r.ViewType {
	case models.ViewRoofPlan:
		return "Roof facet"
	case models.ViewElevation:
		return "Elevation"
	case models.ViewExteriorOther:
		return "Exterior"
	}
	return "Interior"
}

func openingLabel(t string) string {
	switch t {
	case models.OpeningDoor:
		return "Door"
	case models.OpeningWindow:
		return "Window"
	case models.OpeningSlidingDoor:
		return "Sliding door"
	case models.OpeningFrenchDoor:
		return "French door"
	case models.OpeningOverheadDoor:
		return "Overhead door"
	case models.OpeningMissingWall:
		return "Missing wall"
	case models.OpeningPassThrough:
		return "Pass-through"
	case models.OpeningArchway:
		return "Archway"
	case models.OpeningCasedOpening:
		return "Cased opening"
	}
	return t
}

func wallLabel(op *models.Opening) string {
	dir := op.WallDirection
	if dir == "" && op.WallIndex != nil {
		if d, ok := sketch.DirectionFromWallIndex(*op.WallIndex); ok {
			dir = d.String()
		}
	}
	if dir == "" {
		return ""
	}
	return strings.ToUpper(dir[:1]) + dir[1:]
}
