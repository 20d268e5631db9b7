package board

import (
	"image"
	"math"
)

const (
	// MinImageSize is the floor for either overlay dimension while resizing.
	MinImageSize = 50
	// HandleZone is the square at the bottom-right of the overlay that grabs a resize.
	HandleZone = 10
)

// Overlay is the user-uploaded image positioned independently of strokes.
type Overlay struct {
	Source   image.Image
	Position Point
	Size     Size
}

// NewOverlay places img at the origin at its natural pixel size.
func NewOverlay(img image.Image) Overlay {
	b := img.Bounds()
	return Overlay{
		Source: img,
		Size:   Size{Width: float64(b.Dx()), Height: float64(b.Dy())},
	}
}

func (o Overlay) Present() bool {
	return o.Source != nil
}

func (o Overlay) Bounds() Rect {
	return Rect{X: o.Position.X, Y: o.Position.Y, Width: o.Size.Width, Height: o.Size.Height}
}

// Hit reports whether p lies on the overlay image.
func (o Overlay) Hit(p Point) bool {
	return o.Present() && o.Bounds().Contains(p)
}

// OnHandle reports whether p lies on the image and inside the resize zone.
func (o Overlay) OnHandle(p Point) bool {
	if !o.Hit(p) {
		return false
	}
	max := o.Bounds().Max()
	return p.X >= max.X-HandleZone && p.Y >= max.Y-HandleZone
}

// resizeTo returns the size that puts the bottom-right corner at p,
// never smaller than MinImageSize on either axis.
func resizeTo(origin, p Point) Size {
	return Size{
		Width:  math.Max(MinImageSize, p.X-origin.X),
		Height: math.Max(MinImageSize, p.Y-origin.Y),
	}
}

// dragTo returns the origin for a drag that holds the image by offset,
// clamped so the image stays inside the buffer.
func dragTo(p, offset Point, size Size, bufW, bufH int) Point {
	return Point{
		X: clamp(p.X-offset.X, 0, float64(bufW)-size.Width),
		Y: clamp(p.Y-offset.Y, 0, float64(bufH)-size.Height),
	}
}

// clamp matches max(lo, min(v, hi)): when hi < lo the low bound wins.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
