package sketch

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

const (
	svgMargin   = 20.0
	blockGap    = 60.0
	titleHeight = 28.0
	roofGap     = 40.0

	wallStroke  = "#333333"
	ridgeStroke = "#222222"
	roofFill    = "#f8f8f8"
)

// RenderSVG draws the plan as a standalone SVG document. Structures
// stack vertically; within a structure the interior cluster comes
// first, then the roof diagram, then the elevation list. Output is
// deterministic for identical plans.
func RenderSVG(plan Plan, p Params) string {
	var body strings.Builder
	maxW := 0.0
	y := svgMargin

	for _, sp := range plan.Structures {
		y, maxW = renderStructure(&body, sp, y, maxW)
		y += blockGap
	}
	if len(plan.Structures) > 0 {
		y -= blockGap
	}
	y += svgMargin

	totalW := maxW + 2*svgMargin
	if totalW < 200 {
		totalW = 200
	}
	if y < 100 {
		y = 100
	}

	var out strings.Builder
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="Helvetica, Arial, sans-serif">`,
		fmtF(totalW), fmtF(y), fmtF(totalW), fmtF(y))
	out.WriteString("\n")
	fmt.Fprintf(&out, `<rect x="0" y="0" width="%s" height="%s" fill="#ffffff"/>`, fmtF(totalW), fmtF(y))
	out.WriteString("\n")
	out.WriteString(body.String())
	out.WriteString("</svg>\n")
	return out.String()
}

func renderStructure(b *strings.Builder, sp StructurePlan, y, maxW float64) (float64, float64) {
	fmt.Fprintf(b, `<text x="%s" y="%s" font-size="16" font-weight="bold" fill="#111111">%s</text>`,
		fmtF(svgMargin), fmtF(y+18), escapeText(sp.Name))
	b.WriteString("\n")
	y += titleHeight

	ox := svgMargin - sp.Bounds.X
	oy := y - sp.Bounds.Y
	for _, room := range sp.Rooms {
		renderRoomRect(b, room, ox, oy)
	}
	for _, room := range sp.Rooms {
		renderRoomDecor(b, room, ox, oy)
	}
	if len(sp.Rooms) > 0 {
		if w := sp.Bounds.W; w > maxW {
			maxW = w
		}
		y += sp.Bounds.H
	}

	if sp.Roof != nil {
		if len(sp.Rooms) > 0 {
			y += roofGap
		}
		// left dimension line and its label hang outside the eave
		// rectangle, the compass hangs off the right side
		rx := svgMargin + dimensionOffset + 14
		roofW := sp.Roof.Footprint.W + dimensionOffset + 14 + 30 + 2*compassRadius
		roofH := sp.Roof.Footprint.H + dimensionOffset + 14
		renderRoof(b, *sp.Roof, rx, y)
		if roofW > maxW {
			maxW = roofW
		}
		y += roofH
	}

	if len(sp.Elevations) > 0 {
		y += 24
		fmt.Fprintf(b, `<text x="%s" y="%s" font-size="12" fill="#555555">Elevations: %s</text>`,
			fmtF(svgMargin), fmtF(y), escapeText(strings.Join(sp.Elevations, ", ")))
		b.WriteString("\n")
		y += 8
	}
	return y, maxW
}

func renderRoomRect(b *strings.Builder, room PlanRoom, ox, oy float64) {
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="2"/>`,
		fmtF(room.X+ox), fmtF(room.Y+oy), fmtF(room.W), fmtF(room.H), statusFill(room.Status), wallStroke)
	b.WriteString("\n")
}

func renderRoomDecor(b *strings.Builder, room PlanRoom, ox, oy float64) {
	cx := room.X + room.W/2 + ox
	cy := room.Y + room.H/2 + oy
	fmt.Fprintf(b, `<text x="%s" y="%s" font-size="12" text-anchor="middle" fill="#111111">%s</text>`,
		fmtF(cx), fmtF(cy-2), escapeText(room.Name))
	b.WriteString("\n")
	if room.DimLabel != "" {
		fmt.Fprintf(b, `<text x="%s" y="%s" font-size="10" text-anchor="middle" fill="#555555">%s</text>`,
			fmtF(cx), fmtF(cy+12), escapeText(room.DimLabel))
		b.WriteString("\n")
	}
	if len(room.SubAreas) > 0 {
		fmt.Fprintf(b, `<text x="%s" y="%s" font-size="9" text-anchor="middle" fill="#777777">incl. %s</text>`,
			fmtF(cx), fmtF(cy+24), escapeText(strings.Join(room.SubAreas, ", ")))
		b.WriteString("\n")
	}

	for _, sym := range room.Openings {
		renderOpeningSymbol(b, sym, ox, oy)
	}
	for _, m := range room.Markers {
		renderMarker(b, m, ox, oy)
	}
}

func renderOpeningSymbol(b *strings.Builder, sym OpeningSymbol, ox, oy float64) {
	// erase the wall across the gap first
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#ffffff" stroke-width="4"/>`,
		fmtF(sym.GapStart.X+ox), fmtF(sym.GapStart.Y+oy), fmtF(sym.GapEnd.X+ox), fmtF(sym.GapEnd.Y+oy))
	b.WriteString("\n")

	for _, l := range sym.Lines {
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1.5"/>`,
			fmtF(l.From.X+ox), fmtF(l.From.Y+oy), fmtF(l.To.X+ox), fmtF(l.To.Y+oy), wallStroke)
		b.WriteString("\n")
	}
	for _, l := range sym.DashedLines {
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1.5" stroke-dasharray="6,4"/>`,
			fmtF(l.From.X+ox), fmtF(l.From.Y+oy), fmtF(l.To.X+ox), fmtF(l.To.Y+oy), wallStroke)
		b.WriteString("\n")
	}
	for _, a := range sym.Arcs {
		sweep := "0"
		if a.Sweep {
			sweep = "1"
		}
		fmt.Fprintf(b, `<path d="M %s %s A %s %s 0 0 %s %s %s" fill="none" stroke="%s" stroke-width="1"/>`,
			fmtF(a.Start.X+ox), fmtF(a.Start.Y+oy), fmtF(a.Radius), fmtF(a.Radius), sweep,
			fmtF(a.End.X+ox), fmtF(a.End.Y+oy), wallStroke)
		b.WriteString("\n")
	}
	if sym.CountLabel != "" {
		fmt.Fprintf(b, `<text x="%s" y="%s" font-size="9" text-anchor="middle" fill="#111111">%s</text>`,
			fmtF(sym.CountAt.X+ox), fmtF(sym.CountAt.Y+oy), escapeText(sym.CountLabel))
		b.WriteString("\n")
	}
}

func renderMarker(b *strings.Builder, m AnnotationMarker, ox, oy float64) {
	fill := "#1e88e5"
	if m.Type == models.AnnotationDamage || m.Type == models.AnnotationHailCount {
		fill = "#e53935"
	}
	fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="4" fill="%s"/>`, fmtF(m.At.X+ox), fmtF(m.At.Y+oy), fill)
	b.WriteString("\n")
	if m.Label != "" {
		label := m.Label
		if m.Value != "" {
			label += ": " + m.Value
		}
		fmt.Fprintf(b, `<text x="%s" y="%s" font-size="9" text-anchor="middle" fill="#333333">%s</text>`,
			fmtF(m.At.X+ox), fmtF(m.At.Y+oy-7), escapeText(label))
		b.WriteString("\n")
	}
}

func renderRoof(b *strings.Builder, roof RoofPlan, ox, oy float64) {
	for _, f := range roof.Facets {
		if len(f.Polygon) == 0 {
			continue
		}
		var pts []string
		for _, p := range f.Polygon {
			pts = append(pts, fmtF(p.X+ox)+","+fmtF(p.Y+oy))
		}
		fmt.Fprintf(b, `<polygon points="%s" fill="%s" stroke="%s" stroke-width="1.5"/>`,
			strings.Join(pts, " "), roofFill, wallStroke)
		b.WriteString("\n")
	}
	for _, h := range roof.HipLines {
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`,
			fmtF(h.From.X+ox), fmtF(h.From.Y+oy), fmtF(h.To.X+ox), fmtF(h.To.Y+oy), wallStroke)
		b.WriteString("\n")
	}
	if roof.Ridge != nil {
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="3"/>`,
			fmtF(roof.Ridge.From.X+ox), fmtF(roof.Ridge.From.Y+oy), fmtF(roof.Ridge.To.X+ox), fmtF(roof.Ridge.To.Y+oy), ridgeStroke)
		b.WriteString("\n")
	}
	if roof.RidgePoint != nil {
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="3" fill="%s"/>`,
			fmtF(roof.RidgePoint.X+ox), fmtF(roof.RidgePoint.Y+oy), ridgeStroke)
		b.WriteString("\n")
	}

	for _, f := range roof.Facets {
		if f.Label == "" || len(f.Polygon) == 0 {
			continue
		}
		c := polygonCenter(f.Polygon)
		fmt.Fprintf(b, `<text x="%s" y="%s" font-size="11" text-anchor="middle" fill="#111111">%s</text>`,
			fmtF(c.X+ox), fmtF(c.Y+oy), escapeText(f.Label))
		b.WriteString("\n")
		if f.Pitch != "" {
			fmt.Fprintf(b, `<text x="%s" y="%s" font-size="9" text-anchor="middle" fill="#555555">%s</text>`,
				fmtF(c.X+ox), fmtF(c.Y+oy+12), escapeText(f.Pitch))
			b.WriteString("\n")
		}
	}

	for _, dim := range roof.Dimensions {
		renderDimension(b, dim, ox, oy)
	}
	renderCompass(b, roof.Compass, ox, oy)
}

func renderDimension(b *strings.Builder, dim DimensionLine, ox, oy float64) {
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#777777" stroke-width="1"/>`,
		fmtF(dim.From.X+ox), fmtF(dim.From.Y+oy), fmtF(dim.To.X+ox), fmtF(dim.To.Y+oy))
	b.WriteString("\n")

	// end ticks perpendicular to the line
	dx := dim.To.X - dim.From.X
	dy := dim.To.Y - dim.From.Y
	length := math.Hypot(dx, dy)
	if length > 0 {
		nx := -dy / length * 4
		ny := dx / length * 4
		for _, p := range [...]Point{dim.From, dim.To} {
			fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#777777" stroke-width="1"/>`,
				fmtF(p.X+ox-nx), fmtF(p.Y+oy-ny), fmtF(p.X+ox+nx), fmtF(p.Y+oy+ny))
			b.WriteString("\n")
		}
	}

	mx := (dim.From.X+dim.To.X)/2 + ox
	my := (dim.From.Y+dim.To.Y)/2 + oy
	if dx == 0 { // vertical dimension, label beside the line
		mx -= 6
	} else {
		my += 12
	}
	fmt.Fprintf(b, `<text x="%s" y="%s" font-size="10" text-anchor="middle" fill="#555555">%s</text>`,
		fmtF(mx), fmtF(my), escapeText(dim.Label))
	b.WriteString("\n")
}

func renderCompass(b *strings.Builder, c Compass, ox, oy float64) {
	if c.Radius <= 0 {
		return
	}
	cx := c.Center.X + ox
	cy := c.Center.Y + oy
	fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="#777777" stroke-width="1"/>`,
		fmtF(cx), fmtF(cy), fmtF(c.Radius))
	b.WriteString("\n")
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#777777" stroke-width="1.5"/>`,
		fmtF(cx), fmtF(cy+c.Radius-2), fmtF(cx), fmtF(cy-c.Radius+2))
	b.WriteString("\n")
	fmt.Fprintf(b, `<text x="%s" y="%s" font-size="10" text-anchor="middle" fill="#555555">N</text>`,
		fmtF(cx), fmtF(cy-c.Radius-4))
	b.WriteString("\n")
}

func polygonCenter(pts []Point) Point {
	var c Point
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pts))
	return Point{X: c.X / n, Y: c.Y / n}
}

func statusFill(status string) string {
	switch status {
	case models.RoomInProgress:
		return "#fff7e0"
	case models.RoomComplete:
		return "#e8f5e9"
	default:
		return "#ffffff"
	}
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
