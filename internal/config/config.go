// Package config holds the user-adjustable defaults, persisted in the
// application preferences.
package config

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"

	"MatrixBoard/internal/board"
)

const (
	// SignalPort is where the host runs the signaling hub.
	SignalPort = 3030

	keyBackground   = "board.background"
	keyDefaultColor = "board.color"
	keyDefaultWidth = "board.width"
	keySignalPort   = "signal.port"
	keyRoomHint     = "call.room"
)

type Config struct {
	Background   string
	DefaultColor string
	DefaultWidth int
	SignalPort   int
	RoomHint     string
}

func Default() Config {
	return Config{
		Background:   board.BackgroundColor,
		DefaultColor: board.DefaultColor,
		DefaultWidth: board.DefaultBrushWidth,
		SignalPort:   SignalPort,
	}
}

// Load reads the config from p, keeping the default for anything unset
// or invalid.
func Load(p fyne.Preferences) Config {
	def := Default()
	c := Config{
		Background:   p.StringWithFallback(keyBackground, def.Background),
		DefaultColor: p.StringWithFallback(keyDefaultColor, def.DefaultColor),
		DefaultWidth: p.IntWithFallback(keyDefaultWidth, def.DefaultWidth),
		SignalPort:   p.IntWithFallback(keySignalPort, def.SignalPort),
		RoomHint:     p.String(keyRoomHint),
	}
	if _, err := board.ParseHexColor(c.Background); err != nil {
		log.Printf("[BOARD] ignoring background %q: %v", c.Background, err)
		c.Background = def.Background
	}
	if _, err := board.ParseHexColor(c.DefaultColor); err != nil {
		log.Printf("[BOARD] ignoring default color %q: %v", c.DefaultColor, err)
		c.DefaultColor = def.DefaultColor
	}
	if c.DefaultWidth < 1 {
		c.DefaultWidth = def.DefaultWidth
	}
	if c.SignalPort <= 0 || c.SignalPort > 65535 {
		c.SignalPort = def.SignalPort
	}
	return c
}

func (c Config) Save(p fyne.Preferences) {
	p.SetString(keyBackground, c.Background)
	p.SetString(keyDefaultColor, c.DefaultColor)
	p.SetInt(keyDefaultWidth, c.DefaultWidth)
	p.SetInt(keySignalPort, c.SignalPort)
	p.SetString(keyRoomHint, c.RoomHint)
}

// BoardConfig builds the tool config the board starts with.
func (c Config) BoardConfig() *board.Config {
	cfg := board.NewConfig()
	if err := cfg.SetColor(c.DefaultColor); err != nil {
		log.Printf("[BOARD] %v", err)
	}
	if err := cfg.SetBrushWidth(c.DefaultWidth); err != nil {
		log.Printf("[BOARD] %v", err)
	}
	return cfg
}

// BackgroundRGBA is the parsed background, or black when it is invalid.
func (c Config) BackgroundRGBA() color.RGBA {
	bg, err := board.ParseHexColor(c.Background)
	if err != nil {
		bg, _ = board.ParseHexColor(board.BackgroundColor)
	}
	return bg
}
