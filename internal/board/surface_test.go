package board

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceSnapshotRestore(t *testing.T) {
	s := NewSurface(100, 80, black)
	snap := s.Snapshot()
	s.StrokeSegment(Point{X: 0, Y: 40}, Point{X: 100, Y: 40}, white, 4)
	require.Equal(t, white, s.At(50, 40))

	s.Restore(snap)
	assert.Equal(t, black, s.At(50, 40))
}

func TestSurfaceRestoreIgnoresOtherSize(t *testing.T) {
	s := NewSurface(100, 80, black)
	snap := s.Snapshot()
	s.Resize(50, 50)
	s.StrokeSegment(Point{X: 0, Y: 25}, Point{X: 50, Y: 25}, white, 4)

	s.Restore(snap)
	assert.Equal(t, white, s.At(25, 25))
}

func TestSurfaceTriangleApexAtAnchor(t *testing.T) {
	s := NewSurface(200, 200, black)
	style := Style{Tool: ToolTriangle, Color: "#FF0000", BrushWidth: 1, Fill: true}
	s.DrawShape(ToolTriangle, Point{X: 100, Y: 20}, Point{X: 160, Y: 180}, style)

	assert.Equal(t, red, s.At(100, 150))
	assert.Equal(t, red, s.At(60, 170))
	assert.Equal(t, black, s.At(20, 30))
	assert.Equal(t, black, s.At(100, 190))
}

func TestSurfaceLineIgnoresFill(t *testing.T) {
	s := NewSurface(100, 100, black)
	style := Style{Tool: ToolLine, Color: "#FF0000", BrushWidth: 2, Fill: true}
	s.DrawShape(ToolLine, Point{X: 10, Y: 10}, Point{X: 90, Y: 90}, style)

	assert.Equal(t, black, s.At(80, 20))
}

func TestSurfaceFreehandToolsDrawNoShape(t *testing.T) {
	s := NewSurface(50, 50, black)
	before := s.Snapshot()
	s.DrawShape(ToolBrush, Point{}, Point{X: 40, Y: 40}, Style{Color: "#FFFFFF", BrushWidth: 5})
	assert.Equal(t, before.pix, s.Snapshot().pix)
}

func TestSurfaceEncodePNG(t *testing.T) {
	s := NewSurface(32, 16, black)
	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 16), img.Bounds())
}
