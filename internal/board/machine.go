package board

import (
	"fmt"
	"image/color"
)

// Mode is the state of the interaction machine.
type Mode int

const (
	ModeIdle Mode = iota
	ModeFreehand
	ModeShapePreview
	ModeDraggingImage
	ModeResizingImage
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeFreehand:
		return "freehand"
	case ModeShapePreview:
		return "shape-preview"
	case ModeDraggingImage:
		return "dragging-image"
	case ModeResizingImage:
		return "resizing-image"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// session lives from pointer-down to pointer-up/cancel.
type session struct {
	mode   Mode
	style  Style
	anchor Point
	last   Point
	offset Point
	backup Snapshot
}

// Machine classifies pointer-downs and dispatches moves to freehand
// stroking, shape preview, or overlay drag/resize.
type Machine struct {
	canvas     Canvas
	preview    *Preview
	config     *Config
	overlay    *Overlay
	background color.Color
	session    session

	// OnOverlayMove fires after a drag changed the overlay position.
	OnOverlayMove func(Point)
	// OnOverlayResize fires after a resize changed the overlay size.
	OnOverlayResize func(Size)
}

func NewMachine(c Canvas, cfg *Config, overlay *Overlay, background color.Color) *Machine {
	return &Machine{
		canvas:     c,
		preview:    NewPreview(c),
		config:     cfg,
		overlay:    overlay,
		background: background,
	}
}

func (m *Machine) Mode() Mode {
	return m.session.mode
}

// Down starts a gesture at p. It is ignored while another gesture is open
// or while the canvas has no buffer yet.
func (m *Machine) Down(p Point) {
	if m.session.mode != ModeIdle || !m.canvas.Ready() {
		return
	}
	style := m.config.Style()
	s := session{style: style, anchor: p, last: p}

	switch {
	case m.overlay.OnHandle(p):
		s.mode = ModeResizingImage
	case m.overlay.Hit(p):
		s.mode = ModeDraggingImage
		s.offset = Point{X: p.X - m.overlay.Position.X, Y: p.Y - m.overlay.Position.Y}
	case style.Tool.Freehand():
		s.mode = ModeFreehand
	default:
		s.mode = ModeShapePreview
		s.backup = m.preview.Begin()
	}
	m.session = s
}

// Move advances the open gesture to p.
func (m *Machine) Move(p Point) {
	s := &m.session
	switch s.mode {
	case ModeResizingImage:
		size := resizeTo(m.overlay.Position, p)
		if size == m.overlay.Size {
			return
		}
		m.overlay.Size = size
		if m.OnOverlayResize != nil {
			m.OnOverlayResize(size)
		}
	case ModeDraggingImage:
		w, h := m.canvas.Size()
		pos := dragTo(p, s.offset, m.overlay.Size, w, h)
		if pos == m.overlay.Position {
			return
		}
		m.overlay.Position = pos
		if m.OnOverlayMove != nil {
			m.OnOverlayMove(pos)
		}
	case ModeFreehand:
		m.canvas.StrokeSegment(s.last, p, m.strokeColor(), float64(s.style.BrushWidth))
		s.last = p
	case ModeShapePreview:
		m.preview.Frame(s.backup, s.style.Tool, s.anchor, p, s.style)
		s.last = p
	}
}

// Up ends the gesture. Whatever the last move painted stays on the buffer.
func (m *Machine) Up() {
	m.session = session{}
}

// strokeColor is the background for the eraser: it paints over rather
// than revealing anything underneath.
func (m *Machine) strokeColor() color.Color {
	if m.session.style.Tool == ToolEraser {
		return m.background
	}
	return m.session.style.Paint()
}
