package board

import (
	"errors"
	"image"
	"image/color"
	"io"
	"log"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	borderWidth = 2
	handleSize  = 8
	labelSize   = 12
)

var (
	ErrNoSurface = errors.New("surface not initialized")

	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	faceOnce sync.Once
	face     font.Face
)

// labelFace returns the 12px face used for annotation text. When the
// embedded font cannot be parsed gg keeps its built-in bitmap face.
func labelFace() font.Face {
	faceOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("[BOARD] label font unavailable, using fallback: %v", err)
			return
		}
		face = truetype.NewFace(f, &truetype.Options{
			Size:    labelSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return face
}

// Snapshot is a raw copy of the whole pixel buffer.
type Snapshot struct {
	width, height int
	pix           []byte
}

func (s Snapshot) Empty() bool {
	return len(s.pix) == 0
}

// Surface owns the single raster buffer every drawing operation targets.
// A zero-sized surface has no drawing context and ignores all calls.
type Surface struct {
	dc         *gg.Context
	background color.RGBA
}

func NewSurface(width, height int, background color.RGBA) *Surface {
	s := &Surface{background: background}
	s.Resize(width, height)
	return s
}

func (s *Surface) Ready() bool {
	return s != nil && s.dc != nil
}

func (s *Surface) Size() (int, int) {
	if !s.Ready() {
		return 0, 0
	}
	return s.dc.Width(), s.dc.Height()
}

func (s *Surface) Background() color.RGBA {
	return s.background
}

// Resize reallocates the buffer and fills it with the background color.
// Everything previously painted is lost.
func (s *Surface) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		s.dc = nil
		return
	}
	s.dc = gg.NewContext(width, height)
	if f := labelFace(); f != nil {
		s.dc.SetFontFace(f)
	}
	s.Clear(s.background)
}

// Clear fills the entire buffer with c.
func (s *Surface) Clear(c color.Color) {
	if !s.Ready() {
		return
	}
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *Surface) pen(c color.Color, width float64) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
}

// StrokeSegment paints one round-capped segment of a freehand stroke.
func (s *Surface) StrokeSegment(from, to Point, c color.Color, width float64) {
	if !s.Ready() {
		return
	}
	s.pen(c, width)
	s.dc.ClearPath()
	s.dc.MoveTo(from.X, from.Y)
	s.dc.LineTo(to.X, to.Y)
	s.dc.Stroke()
}

// DrawShape draws the shape spanned by anchor and cursor for a shape tool.
// Freehand tools are ignored.
func (s *Surface) DrawShape(kind Tool, anchor, cursor Point, style Style) {
	if !s.Ready() {
		return
	}
	s.dc.ClearPath()
	switch kind {
	case ToolRectangle:
		s.dc.DrawRectangle(anchor.X, anchor.Y, cursor.X-anchor.X, cursor.Y-anchor.Y)
	case ToolCircle:
		r := math.Hypot(cursor.X-anchor.X, cursor.Y-anchor.Y)
		s.dc.DrawCircle(anchor.X, anchor.Y, r)
	case ToolTriangle:
		s.dc.MoveTo(anchor.X, anchor.Y)
		s.dc.LineTo(cursor.X, cursor.Y)
		s.dc.LineTo(anchor.X-(cursor.X-anchor.X), cursor.Y)
		s.dc.ClosePath()
	case ToolLine:
		s.dc.MoveTo(anchor.X, anchor.Y)
		s.dc.LineTo(cursor.X, cursor.Y)
	default:
		return
	}

	paint := style.Paint()
	s.pen(paint, float64(style.BrushWidth))
	if style.Fill && kind != ToolLine {
		s.dc.FillPreserve()
	}
	s.dc.Stroke()
}

// BlitImage scales img into the box at pos/size, then outlines the box and
// draws the resize handle in its bottom-right corner.
func (s *Surface) BlitImage(img image.Image, pos Point, size Size) {
	if !s.Ready() || img == nil || size.Width <= 0 || size.Height <= 0 {
		return
	}
	dst := s.rgba()
	box := image.Rect(
		int(math.Round(pos.X)), int(math.Round(pos.Y)),
		int(math.Round(pos.X+size.Width)), int(math.Round(pos.Y+size.Height)),
	)
	xdraw.BiLinear.Scale(dst, box, img, img.Bounds(), xdraw.Over, nil)

	s.dc.ClearPath()
	s.pen(white, borderWidth)
	s.dc.DrawRectangle(pos.X, pos.Y, size.Width, size.Height)
	s.dc.Stroke()

	s.dc.DrawRectangle(pos.X+size.Width-handleSize, pos.Y+size.Height-handleSize, handleSize, handleSize)
	s.dc.Fill()
}

// BlitAnnotations draws the annotation stack along the bottom-left edge.
func (s *Surface) BlitAnnotations(list []Annotation) {
	if !s.Ready() || len(list) == 0 {
		return
	}
	_, h := s.Size()
	s.dc.ClearPath()
	s.dc.SetColor(white)
	s.dc.SetLineWidth(1)
	if f := labelFace(); f != nil {
		s.dc.SetFontFace(f)
	}
	for _, box := range LayoutAnnotations(list, h) {
		s.dc.DrawRectangle(box.Rect.X, box.Rect.Y, box.Rect.Width, box.Rect.Height)
		s.dc.Stroke()
		s.dc.DrawString(box.Content, box.Text.X, box.Text.Y)
	}
}

func (s *Surface) Snapshot() Snapshot {
	if !s.Ready() {
		return Snapshot{}
	}
	im := s.rgba()
	pix := make([]byte, len(im.Pix))
	copy(pix, im.Pix)
	w, h := s.Size()
	return Snapshot{width: w, height: h, pix: pix}
}

// Restore copies snap back over the buffer. Snapshots taken at a different
// buffer size are ignored.
func (s *Surface) Restore(snap Snapshot) {
	if !s.Ready() || snap.Empty() {
		return
	}
	w, h := s.Size()
	if snap.width != w || snap.height != h {
		return
	}
	copy(s.rgba().Pix, snap.pix)
}

// Image returns the live buffer, or nil before the first resize.
func (s *Surface) Image() image.Image {
	if !s.Ready() {
		return nil
	}
	return s.rgba()
}

// At reads back one pixel.
func (s *Surface) At(x, y int) color.RGBA {
	if !s.Ready() {
		return color.RGBA{}
	}
	return s.rgba().RGBAAt(x, y)
}

func (s *Surface) EncodePNG(w io.Writer) error {
	if !s.Ready() {
		return ErrNoSurface
	}
	return s.dc.EncodePNG(w)
}

func (s *Surface) rgba() *image.RGBA {
	return s.dc.Image().(*image.RGBA)
}
