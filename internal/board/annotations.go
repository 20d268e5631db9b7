package board

// Annotation is one table-derived label shown in the annotation stack.
type Annotation struct {
	ID      int
	Content string
}

const (
	annotationWidth  = 100
	annotationHeight = 30
	annotationMargin = 10
	textInsetX       = 5
	textInsetY       = 20
)

// AnnotationBox is the placement of one annotation on the surface.
type AnnotationBox struct {
	Annotation
	Rect Rect
	// Text is the left end of the text baseline.
	Text Point
}

// LayoutAnnotations stacks the list bottom-up so that the last entry sits
// annotationMargin pixels above the bottom edge of a buffer of the given height.
func LayoutAnnotations(list []Annotation, bufferHeight int) []AnnotationBox {
	if len(list) == 0 {
		return nil
	}
	startY := float64(bufferHeight - len(list)*annotationHeight - annotationMargin)
	boxes := make([]AnnotationBox, 0, len(list))
	for i, a := range list {
		x := float64(annotationMargin)
		y := startY + float64(i*annotationHeight)
		boxes = append(boxes, AnnotationBox{
			Annotation: a,
			Rect:       Rect{X: x, Y: y, Width: annotationWidth, Height: annotationHeight},
			Text:       Point{X: x + textInsetX, Y: y + textInsetY},
		})
	}
	return boxes
}
