package ui

import (
	"image/color"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MatrixBoard/internal/board"
)

const maxBrushWidth = 30

var palette = []color.Color{
	color.White,
	color.Black,
	color.NRGBA{R: 255, A: 255},         // Red
	color.NRGBA{G: 255, A: 255},         // Green
	color.NRGBA{B: 255, A: 255},         // Blue
	color.NRGBA{R: 255, G: 255, A: 255}, // Yellow
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar edits a board.Config: tool, colour, brush width and fill.
type Toolbar struct {
	config  *board.Config
	window  fyne.Window
	buttons map[board.Tool]*widget.Button
	current *canvas.Rectangle
	slider  *widget.Slider
	fill    *widget.Check
	content fyne.CanvasObject

	// OnStyleChange fires after every edit, for persisting defaults.
	OnStyleChange func(board.Style)
}

func toolIcon(t board.Tool) fyne.Resource {
	switch t {
	case board.ToolBrush:
		return theme.DocumentCreateIcon()
	case board.ToolEraser:
		return theme.ContentClearIcon()
	}
	return nil
}

func toolLabel(t board.Tool) string {
	name := t.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

func NewToolbar(cfg *board.Config, w fyne.Window) *Toolbar {
	t := &Toolbar{
		config:  cfg,
		window:  w,
		buttons: make(map[board.Tool]*widget.Button),
	}
	style := cfg.Style()

	tools := container.NewHBox()
	for _, tool := range board.Tools {
		tool := tool
		btn := widget.NewButtonWithIcon(toolLabel(tool), toolIcon(tool), func() {
			cfg.SetTool(tool)
		})
		t.buttons[tool] = btn
		tools.Add(btn)
	}

	onColorTapped := func(c color.Color) {
		if err := cfg.SetColor(board.HexColor(c)); err != nil {
			log.Printf("[BOARD] %v", err)
		}
	}
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}
	t.current = canvas.NewRectangle(style.Paint())
	t.current.SetMinSize(fyne.NewSize(28, 28))
	pick := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), t.pickColor)

	t.slider = widget.NewSlider(1, maxBrushWidth)
	t.slider.Step = 1
	t.slider.SetValue(float64(style.BrushWidth))
	t.slider.OnChanged = func(val float64) {
		if err := cfg.SetBrushWidth(int(val)); err != nil {
			log.Printf("[BOARD] %v", err)
		}
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.slider)

	t.fill = widget.NewCheck("Fill", cfg.SetFill)
	t.fill.SetChecked(style.Fill)

	cfg.OnChange = t.sync
	t.sync(cfg.Style())

	t.content = container.NewHBox(
		widget.NewLabel("Tool:"),
		tools,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		pick,
		t.current,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		t.fill,
		layout.NewSpacer(),
	)
	return t
}

func (t *Toolbar) Content() fyne.CanvasObject {
	return t.content
}

func (t *Toolbar) pickColor() {
	picker := dialog.NewColorPicker("Stroke colour", "Pick a colour for drawing", func(c color.Color) {
		if err := t.config.SetColor(board.HexColor(c)); err != nil {
			log.Printf("[BOARD] %v", err)
		}
	}, t.window)
	picker.Advanced = true
	picker.Show()
}

// sync mirrors the config into the controls. The selected tool is the
// highlighted button.
func (t *Toolbar) sync(s board.Style) {
	for tool, btn := range t.buttons {
		want := widget.MediumImportance
		if tool == s.Tool {
			want = widget.HighImportance
		}
		if btn.Importance != want {
			btn.Importance = want
			btn.Refresh()
		}
	}
	t.current.FillColor = s.Paint()
	t.current.Refresh()
	if t.OnStyleChange != nil {
		t.OnStyleChange(s)
	}
}
