// Package report renders inspection deliverables: the PDF field
// report and the XLSX room schedule.
package report

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
	"github.com/claimsketch-com/claimsketchgo/internal/sketch"
)

// A4 dimensions and layout, in millimeters.
const (
	pageWidth     = 210.0
	pageHeight    = 297.0
	pageMargin    = 15.0
	contentWidth  = pageWidth - 2*pageMargin
	maxPlanHeight = 140.0
	maxPlanScale  = 0.6 // mm per plan pixel, so small sketches stay small
)

// BuildPDF renders the inspection report: claim header with a QR link
// to the hosted viewer, the drawn plan per structure, and a room
// schedule table.
func BuildPDF(insp *models.Inspection, plan sketch.Plan, viewerURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Inspection "+insp.ClaimNumber, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	writeHeader(pdf, tr, insp, viewerURL)

	for i := range plan.Structures {
		drawStructure(pdf, tr, &plan.Structures[i])
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(pdf *gofpdf.Fpdf, tr func(string) string, insp *models.Inspection, viewerURL string) {
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(140, 10, "Field Inspection Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	rows := [][2]string{
		{"Claim", insp.ClaimNumber},
		{"Policy", insp.PolicyNumber},
		{"Insured", insp.InsuredName},
		{"Address", insp.Address},
		{"Status", statusLabel(insp.Status)},
		{"Updated", insp.UpdatedAt.Format("2006-01-02")},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(25, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(115, 6, tr(row[1]), "", 1, "L", false, 0, "")
	}

	// QR code linking the paper report back to the live viewer
	if viewerURL != "" {
		if png, err := qrcode.Encode(viewerURL, qrcode.Medium, 256); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
			pdf.RegisterImageOptionsReader("viewer_qr", opts, bytes.NewReader(png))
			pdf.ImageOptions("viewer_qr", pageWidth-pageMargin-30, pageMargin, 30, 30, false, opts, 0, "")
			pdf.SetFont("Arial", "", 6)
			pdf.SetXY(pageWidth-pageMargin-30, pageMargin+30)
			pdf.CellFormat(30, 3, "Scan to view sketch", "", 1, "C", false, 0, "")
		}
	}

	if pdf.GetY() < pageMargin+36 {
		pdf.SetY(pageMargin + 36)
	}
	pdf.Ln(2)
}

func drawStructure(pdf *gofpdf.Fpdf, tr func(string) string, sp *sketch.StructurePlan) {
	ensureSpace(pdf, 20)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(contentWidth, 8, tr(sp.Name), "", 1, "L", false, 0, "")

	if len(sp.Rooms) > 0 {
		drawFloor(pdf, tr, sp)
	}
	if sp.Roof != nil && len(sp.Roof.Facets) > 0 {
		drawRoof(pdf, tr, sp.Roof)
	}
	if len(sp.Elevations) > 0 {
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(contentWidth, 5, tr("Elevations: "+strings.Join(sp.Elevations, ", ")), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	if len(sp.Rooms) > 0 {
		scheduleTable(pdf, tr, sp.Rooms)
	}
	pdf.Ln(4)
}

// drawFloor paints the placed rooms with their openings and markers,
// scaled to fit the content width.
func drawFloor(pdf *gofpdf.Fpdf, tr func(string) string, sp *sketch.StructurePlan) {
	b := sp.Bounds
	if b.W <= 0 || b.H <= 0 {
		return
	}
	k := fitScale(b.W, b.H)
	planH := b.H * k
	ensureSpace(pdf, planH+8)

	originX := pageMargin + (contentWidth-b.W*k)/2
	originY := pdf.GetY() + 2
	at := func(p sketch.Point) (float64, float64) {
		return originX + (p.X-b.X)*k, originY + (p.Y-b.Y)*k
	}

	// Rectangles first so opening gaps can overdraw shared walls.
	for _, room := range sp.Rooms {
		x, y := at(sketch.Point{X: room.Rect.X, Y: room.Rect.Y})
		fr, fg, fb := statusFill(room.Status)
		pdf.SetFillColor(fr, fg, fb)
		pdf.SetDrawColor(51, 51, 51)
		pdf.SetLineWidth(0.4)
		pdf.Rect(x, y, room.Rect.W*k, room.Rect.H*k, "FD")
	}

	for _, room := range sp.Rooms {
		for _, sym := range room.Openings {
			drawOpening(pdf, tr, sym, at, k)
		}

		cx, cy := at(sketch.Point{X: room.Rect.X + room.Rect.W/2, Y: room.Rect.Y + room.Rect.H/2})
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "B", 7)
		centeredText(pdf, cx, cy-1, tr(room.Name))
		if room.DimLabel != "" {
			pdf.SetFont("Arial", "", 6)
			centeredText(pdf, cx, cy+2, tr(room.DimLabel))
		}
		if len(room.SubAreas) > 0 {
			pdf.SetFont("Arial", "I", 6)
			centeredText(pdf, cx, cy+5, tr(strings.Join(room.SubAreas, ", ")))
		}

		for _, m := range room.Markers {
			mx, my := at(m.At)
			if m.Type == models.AnnotationDamage || m.Type == models.AnnotationHailCount {
				pdf.SetFillColor(229, 57, 53)
			} else {
				pdf.SetFillColor(30, 136, 229)
			}
			pdf.Circle(mx, my, 1.1, "F")
			text := m.Label
			if m.Value != "" {
				text += ": " + m.Value
			}
			if text != "" {
				pdf.SetFont("Arial", "", 6)
				pdf.SetTextColor(80, 80, 80)
				pdf.Text(mx+2, my+1, tr(text))
			}
		}
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(originY + planH + 5)
}

func drawOpening(pdf *gofpdf.Fpdf, tr func(string) string, sym sketch.OpeningSymbol, at func(sketch.Point) (float64, float64), k float64) {
	// Erase the wall across the gap, then draw the symbol.
	x1, y1 := at(sym.GapStart)
	x2, y2 := at(sym.GapEnd)
	pdf.SetDrawColor(255, 255, 255)
	pdf.SetLineWidth(1.0)
	pdf.Line(x1, y1, x2, y2)

	pdf.SetDrawColor(51, 51, 51)
	pdf.SetLineWidth(0.25)
	for _, ln := range sym.Lines {
		ax, ay := at(ln.From)
		bx, by := at(ln.To)
		pdf.Line(ax, ay, bx, by)
	}
	if len(sym.DashedLines) > 0 {
		pdf.SetDashPattern([]float64{1.5, 1.0}, 0)
		for _, ln := range sym.DashedLines {
			ax, ay := at(ln.From)
			bx, by := at(ln.To)
			pdf.Line(ax, ay, bx, by)
		}
		pdf.SetDashPattern([]float64{}, 0)
	}
	for _, a := range sym.Arcs {
		drawArc(pdf, a, at, k)
	}
	if sym.CountLabel != "" {
		lx, ly := at(sym.CountAt)
		pdf.SetFont("Arial", "", 6)
		pdf.SetTextColor(80, 80, 80)
		pdf.Text(lx, ly, tr(sym.CountLabel))
		pdf.SetTextColor(0, 0, 0)
	}
}

func drawArc(pdf *gofpdf.Fpdf, a sketch.Arc, at func(sketch.Point) (float64, float64), k float64) {
	cx, cy := at(a.Center)
	a1 := pdfAngle(a.Center, a.Start)
	a2 := pdfAngle(a.Center, a.End)
	if a2 < a1 {
		a1, a2 = a2, a1
	}
	// Door swings are quarter circles; always draw the minor arc.
	if a2-a1 > 180 {
		a1, a2 = a2, a1+360
	}
	pdf.Arc(cx, cy, a.Radius*k, a.Radius*k, 0, a1, a2, "D")
}

// pdfAngle converts a screen-space direction (y grows down) into the
// counterclockwise degrees gofpdf measures arcs with.
func pdfAngle(c, p sketch.Point) float64 {
	deg := -math.Atan2(p.Y-c.Y, p.X-c.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

func drawRoof(pdf *gofpdf.Fpdf, tr func(string) string, roof *sketch.RoofPlan) {
	minX, minY, maxX, maxY := roofExtent(roof)
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return
	}
	k := fitScale(w, h)
	planH := h * k
	ensureSpace(pdf, planH+8)

	originX := pageMargin + (contentWidth-w*k)/2
	originY := pdf.GetY() + 2
	at := func(p sketch.Point) (float64, float64) {
		return originX + (p.X-minX)*k, originY + (p.Y-minY)*k
	}

	pdf.SetFillColor(248, 248, 248)
	pdf.SetDrawColor(51, 51, 51)
	pdf.SetLineWidth(0.4)
	for _, f := range roof.Facets {
		pts := make([]gofpdf.PointType, len(f.Polygon))
		for i, p := range f.Polygon {
			x, y := at(p)
			pts[i] = gofpdf.PointType{X: x, Y: y}
		}
		pdf.Polygon(pts, "FD")
	}

	pdf.SetLineWidth(0.2)
	for _, hip := range roof.HipLines {
		ax, ay := at(hip.From)
		bx, by := at(hip.To)
		pdf.Line(ax, ay, bx, by)
	}
	pdf.SetDrawColor(34, 34, 34)
	pdf.SetLineWidth(0.8)
	if roof.Ridge != nil {
		ax, ay := at(roof.Ridge.From)
		bx, by := at(roof.Ridge.To)
		pdf.Line(ax, ay, bx, by)
	}
	if roof.RidgePoint != nil {
		px, py := at(*roof.RidgePoint)
		pdf.SetFillColor(34, 34, 34)
		pdf.Circle(px, py, 0.8, "F")
	}

	pdf.SetTextColor(0, 0, 0)
	for _, f := range roof.Facets {
		c := centroid(f.Polygon)
		cx, cy := at(c)
		pdf.SetFont("Arial", "B", 7)
		centeredText(pdf, cx, cy, tr(f.Label))
		if f.Pitch != "" {
			pdf.SetFont("Arial", "", 6)
			centeredText(pdf, cx, cy+3, tr(f.Pitch))
		}
	}

	pdf.SetDrawColor(51, 51, 51)
	pdf.SetLineWidth(0.2)
	for _, dim := range roof.Dimensions {
		drawDimension(pdf, tr, dim, at)
	}

	drawCompass(pdf, roof.Compass, at, k)
	pdf.SetY(originY + planH + 5)
}

// drawDimension draws an eave dimension line with perpendicular end
// ticks and a centered label.
func drawDimension(pdf *gofpdf.Fpdf, tr func(string) string, dim sketch.DimensionLine, at func(sketch.Point) (float64, float64)) {
	ax, ay := at(dim.From)
	bx, by := at(dim.To)
	pdf.Line(ax, ay, bx, by)

	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// unit normal for the tick marks
	nx, ny := -dy/length, dx/length
	const tick = 1.5
	pdf.Line(ax-nx*tick, ay-ny*tick, ax+nx*tick, ay+ny*tick)
	pdf.Line(bx-nx*tick, by-ny*tick, bx+nx*tick, by+ny*tick)

	mx, my := (ax+bx)/2, (ay+by)/2
	pdf.SetFont("Arial", "", 7)
	if math.Abs(dx) >= math.Abs(dy) {
		centeredText(pdf, mx, my+3.5, tr(dim.Label))
	} else {
		w := pdf.GetStringWidth(tr(dim.Label))
		pdf.Text(mx-w-2, my+1, tr(dim.Label))
	}
}

func drawCompass(pdf *gofpdf.Fpdf, c sketch.Compass, at func(sketch.Point) (float64, float64), k float64) {
	if c.Radius <= 0 {
		return
	}
	cx, cy := at(c.Center)
	r := c.Radius * k
	pdf.SetDrawColor(51, 51, 51)
	pdf.SetLineWidth(0.3)
	pdf.Circle(cx, cy, r, "D")
	pdf.Line(cx, cy+r-1, cx, cy-r+1)
	pdf.Line(cx, cy-r+1, cx-1, cy-r+2.5)
	pdf.Line(cx, cy-r+1, cx+1, cy-r+2.5)
	pdf.SetFont("Arial", "B", 7)
	centeredText(pdf, cx, cy-r-1, "N")
}

func scheduleTable(pdf *gofpdf.Fpdf, tr func(string) string, rooms []sketch.PlanRoom) {
	widths := []float64{60, 30, 25, 30, 35}
	headers := []string{"Room", "Dimensions", "Area (sq ft)", "Status", "Damage"}

	ensureSpace(pdf, 14)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.2)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, room := range rooms {
		area := ""
		if room.LengthFt > 0 && room.WidthFt > 0 {
			area = strconv.FormatFloat(room.LengthFt*room.WidthFt, 'f', 0, 64)
		}
		damage := ""
		if n := damageCount(room.Markers); n > 0 {
			damage = strconv.Itoa(n)
		}
		name := room.Name
		if len(room.SubAreas) > 0 {
			name += " (" + strings.Join(room.SubAreas, ", ") + ")"
		}

		cells := []string{name, room.DimLabel, area, statusLabel(room.Status), damage}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(2)
}

func damageCount(markers []sketch.AnnotationMarker) int {
	n := 0
	for _, m := range markers {
		if m.Type == models.AnnotationDamage || m.Type == models.AnnotationHailCount {
			n++
		}
	}
	return n
}

func statusLabel(s string) string {
	switch s {
	case models.RoomNotStarted:
		return "Not started"
	case models.RoomInProgress:
		return "In progress"
	case models.RoomComplete:
		return "Complete"
	case models.InspectionDraft:
		return "Draft"
	}
	return s
}

func statusFill(status string) (int, int, int) {
	switch status {
	case models.RoomInProgress:
		return 255, 247, 224
	case models.RoomComplete:
		return 232, 245, 233
	}
	return 255, 255, 255
}

func fitScale(w, h float64) float64 {
	k := contentWidth / w
	if hk := maxPlanHeight / h; hk < k {
		k = hk
	}
	if k > maxPlanScale {
		k = maxPlanScale
	}
	return k
}

func centeredText(pdf *gofpdf.Fpdf, x, y float64, s string) {
	if s == "" {
		return
	}
	pdf.Text(x-pdf.GetStringWidth(s)/2, y, s)
}

func centroid(poly []sketch.Point) sketch.Point {
	var c sketch.Point
	if len(poly) == 0 {
		return c
	}
	for _, p := range poly {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(poly))
	c.Y /= float64(len(poly))
	return c
}

// roofExtent is the bounding box of everything the roof diagram draws,
// including dimension lines and the compass.
func roofExtent(roof *sketch.RoofPlan) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	for _, f := range roof.Facets {
		for _, p := range f.Polygon {
			grow(p.X, p.Y)
		}
	}
	for _, dim := range roof.Dimensions {
		grow(dim.From.X, dim.From.Y)
		grow(dim.To.X, dim.To.Y)
	}
	if roof.Compass.Radius > 0 {
		grow(roof.Compass.Center.X-roof.Compass.Radius, roof.Compass.Center.Y-roof.Compass.Radius)
		grow(roof.Compass.Center.X+roof.Compass.Radius, roof.Compass.Center.Y+roof.Compass.Radius)
	}
	if minX > maxX {
		return 0, 0, 0, 0
	}
	// room for tick labels outside the lines
	return minX - 8, minY - 6, maxX + 8, maxY + 8
}

func ensureSpace(pdf *gofpdf.Fpdf, need float64) {
	if pdf.GetY()+need > pageHeight-pageMargin {
		pdf.AddPage()
	}
}
