package board

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"
)

// Tool is the active drawing tool.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolRectangle
	ToolCircle
	ToolTriangle
	ToolLine
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolBrush, ToolEraser, ToolRectangle, ToolCircle, ToolTriangle, ToolLine}

var toolNames = map[Tool]string{
	ToolBrush:     "brush",
	ToolEraser:    "eraser",
	ToolRectangle: "rectangle",
	ToolCircle:    "circle",
	ToolTriangle:  "triangle",
	ToolLine:      "line",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// Freehand reports whether the tool paints continuous strokes rather than shapes.
func (t Tool) Freehand() bool {
	return t == ToolBrush || t == ToolEraser
}

// ParseTool looks a tool up by its name.
func ParseTool(name string) (Tool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range toolNames {
		if n == name {
			return t, nil
		}
	}
	return ToolBrush, fmt.Errorf("unknown tool %q", name)
}

const (
	DefaultColor      = "#FFFFFF"
	DefaultBrushWidth = 5
	BackgroundColor   = "#000000"
)

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidWidth = errors.New("brush width must be positive")

	hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// ParseHexColor parses "#RGB" or "#RRGGBB" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	if !hexColor.MatchString(s) {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// HexColor formats any color as "#RRGGBB", dropping alpha.
func HexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}

// Style is a read-only view of the tool/style configuration.
type Style struct {
	Tool       Tool
	Color      string
	BrushWidth int
	Fill       bool
}

// Paint returns the stroke color. Style colors are validated on the way in,
// so a parse failure can only come from a zero Style and falls back to white.
func (s Style) Paint() color.RGBA {
	c, err := ParseHexColor(s.Color)
	if err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c
}

// Config holds the active tool, color, brush width and fill flag. It is
// owned by the board container and only changes through its setters.
type Config struct {
	style    Style
	OnChange func(Style)
}

func NewConfig() *Config {
	return &Config{style: Style{
		Tool:       ToolBrush,
		Color:      DefaultColor,
		BrushWidth: DefaultBrushWidth,
	}}
}

func (c *Config) Style() Style {
	return c.style
}

func (c *Config) SetTool(t Tool) {
	if _, ok := toolNames[t]; !ok {
		return
	}
	c.style.Tool = t
	c.changed()
}

func (c *Config) SetColor(hex string) error {
	if _, err := ParseHexColor(hex); err != nil {
		return err
	}
	c.style.Color = strings.ToUpper(hex)
	c.changed()
	return nil
}

func (c *Config) SetBrushWidth(w int) error {
	if w < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, w)
	}
	c.style.BrushWidth = w
	c.changed()
	return nil
}

func (c *Config) SetFill(fill bool) {
	c.style.Fill = fill
	c.changed()
}

func (c *Config) changed() {
	if c.OnChange != nil {
		c.OnChange(c.style)
	}
}
