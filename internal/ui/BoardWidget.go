package ui

import (
	"image"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"MatrixBoard/internal/board"
)

// BoardWidget shows the engine's buffer and feeds it pointer input. The
// buffer follows the widget's size in device pixels.
type BoardWidget struct {
	widget.BaseWidget
	engine    *board.Engine
	raster    *canvas.Raster
	statusBar *widget.Label
	rendering bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

func NewBoardWidget(engine *board.Engine) *BoardWidget {
	b := &BoardWidget{
		engine:    engine,
		statusBar: widget.NewLabel("Ready"),
	}
	b.raster = canvas.NewRaster(b.render)
	b.raster.ScaleMode = canvas.ImageScalePixels
	engine.OnRedraw = b.redraw
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) Engine() *board.Engine {
	return b.engine
}

// StatusBar is the label user-facing board messages are written to.
func (b *BoardWidget) StatusBar() *widget.Label {
	return b.statusBar
}

// SetStatus may be called from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

func (b *BoardWidget) render(w, h int) image.Image {
	b.rendering = true
	b.engine.Resize(w, h)
	b.rendering = false
	if img := b.engine.Image(); img != nil {
		return img
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

func (b *BoardWidget) redraw() {
	if b.rendering {
		return
	}
	b.raster.Refresh()
}

// toBuffer maps a position inside the widget to buffer pixels.
func (b *BoardWidget) toBuffer(pos fyne.Position) board.Point {
	size := b.Size()
	box := board.Rect{Width: float64(size.Width), Height: float64(size.Height)}
	return b.engine.Map(board.MousePointer(float64(pos.X), float64(pos.Y)), box)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.engine.PointerDown(b.toBuffer(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.engine.PointerUp()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.engine.PointerMove(b.toBuffer(e.Position))
}

func (b *BoardWidget) DragEnd() {
	b.engine.PointerUp()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

// MouseOut ends any gesture in progress when the pointer leaves the board.
func (b *BoardWidget) MouseOut() {
	if b.engine.Mode() != board.ModeIdle {
		log.Printf("[BOARD] pointer left during %s, ending gesture", b.engine.Mode())
	}
	b.engine.PointerCancel()
}

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) {
	b.engine.PointerDown(b.toBuffer(e.Position))
}

func (b *BoardWidget) TouchUp(*mobile.TouchEvent) {
	b.engine.PointerUp()
}

func (b *BoardWidget) TouchCancel(*mobile.TouchEvent) {
	b.engine.PointerCancel()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{board: b}
}

type boardWidgetRenderer struct {
	board *BoardWidget
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.raster}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.raster.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.raster.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}
