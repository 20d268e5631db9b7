package board

import "image/color"

// Canvas is the drawing target the interaction machine paints on.
// *Surface is the production implementation.
type Canvas interface {
	Ready() bool
	Size() (int, int)
	StrokeSegment(from, to Point, c color.Color, width float64)
	DrawShape(kind Tool, anchor, cursor Point, style Style)
	Snapshot() Snapshot
	Restore(snap Snapshot)
}

// Preview gives shape tools live feedback without leaving trails: the
// buffer is captured once when the gesture starts and every frame restores
// that capture before drawing the candidate shape, so only one outline is
// ever visible and the final frame does not depend on the path taken.
type Preview struct {
	canvas Canvas
}

func NewPreview(c Canvas) *Preview {
	return &Preview{canvas: c}
}

// Begin captures the pre-gesture buffer.
func (p *Preview) Begin() Snapshot {
	return p.canvas.Snapshot()
}

// Frame restores backup and draws one candidate shape in the same step.
func (p *Preview) Frame(backup Snapshot, kind Tool, anchor, cursor Point, style Style) {
	p.canvas.Restore(backup)
	p.canvas.DrawShape(kind, anchor, cursor, style)
}
