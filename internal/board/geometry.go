package board

// Point is a position in buffer coordinates unless stated otherwise.
type Point struct {
	X, Y float64
}

// Size is a width/height pair in buffer pixels.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned box. Contains treats both edges as inside,
// matching how hit tests on the overlay image behave.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

func (r Rect) Max() Point {
	return Point{X: r.X + r.Width, Y: r.Y + r.Height}
}
