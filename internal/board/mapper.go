package board

// Pointer is one pointer sample from the windowing layer, in the widget's
// own (on-screen) units. For touch input Touches carries the active touch
// points; only the first one is used and the rest are ignored.
type Pointer struct {
	Position Point
	Touches  []Point
}

// MousePointer builds a Pointer for a mouse sample.
func MousePointer(x, y float64) Pointer {
	return Pointer{Position: Point{X: x, Y: y}}
}

// TouchPointer builds a Pointer for a touch sample.
func TouchPointer(points ...Point) Pointer {
	return Pointer{Touches: points}
}

func (p Pointer) client() Point {
	if len(p.Touches) > 0 {
		return p.Touches[0]
	}
	return p.Position
}

// MapPointer converts a pointer sample to buffer coordinates. box is the
// rendered bounding box of the surface; bufW/bufH is the buffer's logical
// pixel size. Each axis is scaled independently. Results are not clamped.
func MapPointer(ev Pointer, box Rect, bufW, bufH int) Point {
	c := ev.client()
	scaleX, scaleY := 1.0, 1.0
	if box.Width > 0 {
		scaleX = float64(bufW) / box.Width
	}
	if box.Height > 0 {
		scaleY = float64(bufH) / box.Height
	}
	return Point{
		X: (c.X - box.X) * scaleX,
		Y: (c.Y - box.Y) * scaleY,
	}
}
