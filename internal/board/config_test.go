package board

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	s := NewConfig().Style()
	assert.Equal(t, ToolBrush, s.Tool)
	assert.Equal(t, "#FFFFFF", s.Color)
	assert.Equal(t, 5, s.BrushWidth)
	assert.False(t, s.Fill)
}

func TestConfigSetters(t *testing.T) {
	cfg := NewConfig()
	var changes []Style
	cfg.OnChange = func(s Style) { changes = append(changes, s) }

	cfg.SetTool(ToolCircle)
	require.NoError(t, cfg.SetColor("#ff0000"))
	require.NoError(t, cfg.SetBrushWidth(12))
	cfg.SetFill(true)

	s := cfg.Style()
	assert.Equal(t, ToolCircle, s.Tool)
	assert.Equal(t, "#FF0000", s.Color)
	assert.Equal(t, 12, s.BrushWidth)
	assert.True(t, s.Fill)
	assert.Len(t, changes, 4)
}

func TestConfigRejectsInvalidValues(t *testing.T) {
	cfg := NewConfig()

	err := cfg.SetColor("red")
	assert.ErrorIs(t, err, ErrInvalidColor)
	err = cfg.SetBrushWidth(0)
	assert.ErrorIs(t, err, ErrInvalidWidth)
	cfg.SetTool(Tool(42))

	assert.Equal(t, NewConfig().Style(), cfg.Style())
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#0f8")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x00, G: 0xff, B: 0x88, A: 0xff}, c)

	c, err = ParseHexColor("#123456")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}, c)

	_, err = ParseHexColor("#12345")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#FF8000", HexColor(color.NRGBA{R: 255, G: 128, A: 255}))
}

func TestParseTool(t *testing.T) {
	for _, tool := range Tools {
		got, err := ParseTool(tool.String())
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	}
	_, err := ParseTool("spray")
	assert.Error(t, err)
}
