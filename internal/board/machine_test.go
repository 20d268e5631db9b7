package board

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type segment struct {
	from, to Point
	color    color.Color
	width    float64
}

type shapeCall struct {
	kind           Tool
	anchor, cursor Point
}

// recordingCanvas logs every call the machine makes.
type recordingCanvas struct {
	width, height int
	segments      []segment
	shapes        []shapeCall
	snapshots     int
	restores      int
}

func (c *recordingCanvas) Ready() bool { return c.width > 0 && c.height > 0 }
func (c *recordingCanvas) Size() (int, int) { return c.width, c.height }

func (c *recordingCanvas) StrokeSegment(from, to Point, col color.Color, width float64) {
	c.segments = append(c.segments, segment{from: from, to: to, color: col, width: width})
}

func (c *recordingCanvas) DrawShape(kind Tool, anchor, cursor Point, _ Style) {
	c.shapes = append(c.shapes, shapeCall{kind: kind, anchor: anchor, cursor: cursor})
}

func (c *recordingCanvas) Snapshot() Snapshot {
	c.snapshots++
	return Snapshot{width: c.width, height: c.height, pix: []byte{1}}
}

func (c *recordingCanvas) Restore(Snapshot) { c.restores++ }

var black = color.RGBA{A: 255}

func newTestMachine(tool Tool) (*Machine, *recordingCanvas, *Overlay) {
	canvas := &recordingCanvas{width: 800, height: 600}
	cfg := NewConfig()
	cfg.SetTool(tool)
	overlay := &Overlay{}
	return NewMachine(canvas, cfg, overlay, black), canvas, overlay
}

func TestFreehandOneSegmentPerMove(t *testing.T) {
	m, canvas, _ := newTestMachine(ToolBrush)
	m.Down(Point{X: 10, Y: 10})
	require.Equal(t, ModeFreehand, m.Mode())

	path := []Point{{X: 20, Y: 10}, {X: 30, Y: 15}, {X: 30, Y: 40}, {X: 5, Y: 40}}
	for i, p := range path {
		m.Move(p)
		assert.Len(t, canvas.segments, i+1)
	}

	prev := Point{X: 10, Y: 10}
	for i, seg := range canvas.segments {
		assert.Equal(t, prev, seg.from)
		assert.Equal(t, path[i], seg.to)
		assert.Equal(t, 5.0, seg.width)
		prev = seg.to
	}

	m.Up()
	assert.Equal(t, ModeIdle, m.Mode())
	m.Move(Point{X: 100, Y: 100})
	assert.Len(t, canvas.segments, len(path))
}

func TestEraserUsesBackground(t *testing.T) {
	m, canvas, _ := newTestMachine(ToolEraser)
	m.Down(Point{})
	m.Move(Point{X: 10, Y: 10})
	require.Len(t, canvas.segments, 1)
	assert.Equal(t, black, canvas.segments[0].color)
}

func TestShapePreviewRestoresEveryFrame(t *testing.T) {
	m, canvas, _ := newTestMachine(ToolTriangle)
	m.Down(Point{X: 100, Y: 100})
	require.Equal(t, ModeShapePreview, m.Mode())
	assert.Equal(t, 1, canvas.snapshots)

	m.Move(Point{X: 150, Y: 200})
	m.Move(Point{X: 160, Y: 210})
	m.Move(Point{X: 170, Y: 220})

	assert.Equal(t, 1, canvas.snapshots)
	assert.Equal(t, 3, canvas.restores)
	require.Len(t, canvas.shapes, 3)
	for _, s := range canvas.shapes {
		assert.Equal(t, ToolTriangle, s.kind)
		assert.Equal(t, Point{X: 100, Y: 100}, s.anchor)
	}
	assert.Empty(t, canvas.segments)
}

func TestDownIgnoredWithoutCanvas(t *testing.T) {
	m, canvas, _ := newTestMachine(ToolBrush)
	canvas.width = 0
	m.Down(Point{X: 1, Y: 1})
	assert.Equal(t, ModeIdle, m.Mode())
}

func TestDownIgnoredWhileActive(t *testing.T) {
	m, _, overlay := newTestMachine(ToolBrush)
	m.Down(Point{X: 300, Y: 300})
	require.Equal(t, ModeFreehand, m.Mode())

	*overlay = Overlay{Source: image.NewRGBA(image.Rect(0, 0, 100, 100)), Size: Size{Width: 100, Height: 100}}
	m.Down(Point{X: 50, Y: 50})
	assert.Equal(t, ModeFreehand, m.Mode())
}

func TestDownPriority(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	tests := []struct {
		name  string
		tool  Tool
		point Point
		want  Mode
	}{
		{"handle beats tool", ToolBrush, Point{X: 205, Y: 155}, ModeResizingImage},
		{"handle corner inclusive", ToolCircle, Point{X: 210, Y: 160}, ModeResizingImage},
		{"inside image drags", ToolBrush, Point{X: 50, Y: 50}, ModeDraggingImage},
		{"top-left edge inside", ToolLine, Point{X: 10, Y: 10}, ModeDraggingImage},
		{"outside with brush", ToolBrush, Point{X: 400, Y: 400}, ModeFreehand},
		{"outside with eraser", ToolEraser, Point{X: 400, Y: 400}, ModeFreehand},
		{"outside with shape", ToolRectangle, Point{X: 400, Y: 400}, ModeShapePreview},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, overlay := newTestMachine(tt.tool)
			*overlay = Overlay{Source: src, Position: Point{X: 10, Y: 10}, Size: Size{Width: 200, Height: 150}}
			m.Down(tt.point)
			assert.Equal(t, tt.want, m.Mode())
		})
	}
}

func TestResizeCallbacksOnlyOnChange(t *testing.T) {
	m, _, overlay := newTestMachine(ToolBrush)
	*overlay = Overlay{
		Source:   image.NewRGBA(image.Rect(0, 0, 10, 10)),
		Position: Point{X: 10, Y: 10},
		Size:     Size{Width: 200, Height: 150},
	}
	var sizes []Size
	m.OnOverlayResize = func(s Size) { sizes = append(sizes, s) }

	m.Down(Point{X: 205, Y: 155})
	m.Move(Point{X: 260, Y: 200})
	m.Move(Point{X: 260, Y: 200})
	m.Move(Point{X: 0, Y: 0})
	m.Move(Point{X: -40, Y: 20})

	assert.Equal(t, []Size{{Width: 250, Height: 190}, {Width: 50, Height: 50}}, sizes)
	assert.Equal(t, Size{Width: 50, Height: 50}, overlay.Size)
}

func TestDragKeepsOffset(t *testing.T) {
	m, _, overlay := newTestMachine(ToolBrush)
	*overlay = Overlay{
		Source:   image.NewRGBA(image.Rect(0, 0, 10, 10)),
		Position: Point{X: 100, Y: 100},
		Size:     Size{Width: 200, Height: 100},
	}
	var moves []Point
	m.OnOverlayMove = func(p Point) { moves = append(moves, p) }

	m.Down(Point{X: 150, Y: 120})
	m.Move(Point{X: 250, Y: 220})
	assert.Equal(t, Point{X: 200, Y: 200}, overlay.Position)

	m.Move(Point{X: 10000, Y: -500})
	assert.Equal(t, Point{X: 600, Y: 0}, overlay.Position)
	assert.Len(t, moves, 2)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "shape-preview", ModeShapePreview.String())
	assert.Equal(t, "resizing-image", ModeResizingImage.String())
}
