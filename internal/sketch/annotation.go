package sketch

import "github.com/claimsketch-com/claimsketchgo/internal/models"

// AnnotationMarker is an annotation placed at its fractional position
// inside the room rectangle.
type AnnotationMarker struct {
	AnnotationID string `json:"annotationId"`
	Type         string `json:"type"`
	Label        string `json:"label"`
	Value        string `json:"value,omitempty"`
	At           Point  `json:"at"`
}

// PlaceAnnotations maps room annotations into plan coordinates. The
// stored position is a fraction of the room extent, so markers stay in
// place through resizes.
func PlaceAnnotations(anns []models.Annotation, rect Rect) []AnnotationMarker {
	if len(anns) == 0 {
		return nil
	}
	markers := make([]AnnotationMarker, 0, len(anns))
	for _, a := range anns {
		markers = append(markers, AnnotationMarker{
			AnnotationID: a.ID,
			Type:         a.AnnotationType,
			Label:        a.Label,
			Value:        a.Value,
			At: Point{
				X: rect.X + clamp01(a.PosX)*rect.W,
				Y: rect.Y + clamp01(a.PosY)*rect.H,
			},
		})
	}
	return markers
}
