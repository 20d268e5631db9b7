package board

import (
	"image"
	"image/color"
	"log"
)

// Engine is the drawing-and-overlay core behind the board widget. All
// methods must be called from the goroutine that owns the widget.
type Engine struct {
	config     *Config
	surface    *Surface
	scene      scene
	machine    *Machine
	compositor *Compositor
	background color.RGBA
	dispatch   Dispatcher

	// OnPositionChange and OnSizeChange report drag/resize results so the
	// owner can persist them.
	OnPositionChange func(Point)
	OnSizeChange     func(Size)
	// OnImageLoaded fires once a decoded image has been placed.
	OnImageLoaded func(Overlay)
	// OnError reports asset failures to the user.
	OnError func(error)
	// OnRedraw fires whenever the buffer changed and needs presenting.
	OnRedraw func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithDispatcher sets how decode completions get back onto the owning
// goroutine. The default runs them in place, which only suits tests.
func WithDispatcher(d Dispatcher) Option {
	return func(e *Engine) { e.dispatch = d }
}

// WithBackground overrides the background fill.
func WithBackground(c color.RGBA) Option {
	return func(e *Engine) { e.background = c }
}

func NewEngine(cfg *Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = NewConfig()
	}
	bg, _ := ParseHexColor(BackgroundColor)
	e := &Engine{config: cfg, background: bg}
	for _, opt := range opts {
		opt(e)
	}

	e.surface = NewSurface(0, 0, e.background)
	e.machine = NewMachine(e.surface, cfg, &e.scene.overlay, e.background)
	e.compositor = newCompositor(e.surface, &e.scene, e.background, e.dispatch)

	e.machine.OnOverlayMove = func(p Point) {
		e.compositor.Compose()
		if e.OnPositionChange != nil {
			e.OnPositionChange(p)
		}
	}
	e.machine.OnOverlayResize = func(s Size) {
		e.compositor.Compose()
		if e.OnSizeChange != nil {
			e.OnSizeChange(s)
		}
	}
	e.compositor.OnLoaded = func(o Overlay) {
		e.redraw()
		if e.OnImageLoaded != nil {
			e.OnImageLoaded(o)
		}
	}
	e.compositor.OnError = func(err error) {
		e.redraw()
		if e.OnError != nil {
			e.OnError(err)
		}
	}
	return e
}

func (e *Engine) Config() *Config { return e.config }

func (e *Engine) Surface() *Surface { return e.surface }

func (e *Engine) Mode() Mode { return e.machine.Mode() }

func (e *Engine) Background() color.RGBA { return e.background }

// Image returns the live buffer, nil until the first Resize.
func (e *Engine) Image() image.Image {
	return e.surface.Image()
}

func (e *Engine) BufferSize() (int, int) {
	return e.surface.Size()
}

// Resize follows the rendered box of the widget. Any change reallocates
// and clears the buffer, so freehand work is lost; the overlay and the
// annotations are recomposited from their own state.
func (e *Engine) Resize(width, height int) {
	if w, h := e.surface.Size(); w == width && h == height {
		return
	}
	e.machine.Up()
	e.surface.Resize(width, height)
	e.compositor.Compose()
	log.Printf("[BOARD] buffer resized to %dx%d", width, height)
	e.redraw()
}

// Map converts a pointer sample inside the rendered box to buffer coordinates.
func (e *Engine) Map(ev Pointer, box Rect) Point {
	w, h := e.surface.Size()
	return MapPointer(ev, box, w, h)
}

func (e *Engine) PointerDown(p Point) {
	e.machine.Down(p)
}

func (e *Engine) PointerMove(p Point) {
	if e.machine.Mode() == ModeIdle {
		return
	}
	e.machine.Move(p)
	e.redraw()
}

func (e *Engine) PointerUp() {
	e.machine.Up()
}

// PointerCancel ends the gesture exactly like PointerUp.
func (e *Engine) PointerCancel() {
	e.machine.Up()
}

// Clear wipes the buffer and drops the overlay image and the annotations.
// Image loads still in flight are discarded when they complete.
func (e *Engine) Clear() {
	e.machine.Up()
	e.compositor.Invalidate()
	e.scene = scene{}
	e.compositor.Compose()
	e.redraw()
}

// LoadImage decodes data asynchronously and places it at the origin at
// its natural size.
func (e *Engine) LoadImage(data []byte) {
	e.compositor.Load(data)
}

// Overlay returns a copy of the current overlay state.
func (e *Engine) Overlay() Overlay {
	return e.scene.overlay
}

// SetOverlay replaces the overlay state, for owners restoring geometry.
func (e *Engine) SetOverlay(o Overlay) {
	e.compositor.Invalidate()
	e.scene.overlay = o
	e.compositor.Compose()
	e.redraw()
}

// SetAnnotations replaces the annotation stack.
func (e *Engine) SetAnnotations(list []Annotation) {
	e.scene.annotations = append([]Annotation(nil), list...)
	e.compositor.Compose()
	e.redraw()
}

func (e *Engine) Annotations() []Annotation {
	return append([]Annotation(nil), e.scene.annotations...)
}

func (e *Engine) redraw() {
	if e.OnRedraw != nil {
		e.OnRedraw()
	}
}
