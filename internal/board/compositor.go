package board

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var ErrImageDecode = errors.New("failed to load background image")

// Dispatcher runs f on the goroutine that owns the board. Decoding happens
// elsewhere and always re-enters through it.
type Dispatcher func(f func())

func immediate(f func()) { f() }

// scene is the structural state the compositor re-renders from.
type scene struct {
	overlay     Overlay
	annotations []Annotation
}

// Compositor re-renders the whole surface on structural change:
// background, then overlay image with border and handle, then the
// annotation stack. It is never run for individual stroke or preview moves.
type Compositor struct {
	surface    *Surface
	scene      *scene
	background color.Color
	dispatch   Dispatcher
	generation uint64

	OnLoaded func(Overlay)
	OnError  func(error)
}

func newCompositor(s *Surface, sc *scene, background color.Color, dispatch Dispatcher) *Compositor {
	if dispatch == nil {
		dispatch = immediate
	}
	return &Compositor{surface: s, scene: sc, background: background, dispatch: dispatch}
}

// Compose redraws the surface from the current scene.
func (c *Compositor) Compose() {
	if !c.surface.Ready() {
		return
	}
	c.surface.Clear(c.background)
	if o := c.scene.overlay; o.Present() {
		c.surface.BlitImage(o.Source, o.Position, o.Size)
	}
	c.surface.BlitAnnotations(c.scene.annotations)
}

// Load decodes data off the board goroutine. Only the completion of the
// most recent request is applied; anything older is dropped.
func (c *Compositor) Load(data []byte) uint64 {
	c.generation++
	gen := c.generation
	go func() {
		img, err := decodeImage(data)
		c.dispatch(func() { c.finish(gen, img, err) })
	}()
	return gen
}

// Invalidate makes every pending load stale.
func (c *Compositor) Invalidate() {
	c.generation++
}

func (c *Compositor) finish(gen uint64, img image.Image, err error) {
	if gen != c.generation {
		log.Printf("[BOARD] dropping stale image load (generation %d, current %d)", gen, c.generation)
		return
	}
	if err != nil {
		log.Printf("[BOARD] %v", err)
		c.scene.overlay = Overlay{}
		c.Compose()
		if c.OnError != nil {
			c.OnError(err)
		}
		return
	}
	c.scene.overlay = NewOverlay(img)
	c.Compose()
	if c.OnLoaded != nil {
		c.OnLoaded(c.scene.overlay)
	}
}

func decodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrImageDecode)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: %s image has no pixels", ErrImageDecode, format)
	}
	log.Printf("[BOARD] decoded %s image %dx%d", format, b.Dx(), b.Dy())
	return img, nil
}
