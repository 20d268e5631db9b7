package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MatrixBoard/internal/board"
	"MatrixBoard/internal/call"
	"MatrixBoard/internal/config"
	"MatrixBoard/internal/state"
)

// Options are the pieces main hands the window.
type Options struct {
	Config    config.Config
	Store     *state.Store
	Session   *call.Session
	ShareLink string
}

// MainWindow is the application window and its three pages.
type MainWindow struct {
	Window fyne.Window
	Board  *BoardView
	Table  *TablePage
	Call   *CallPage
	Tabs   *container.AppTabs
}

func NewMainWindow(a fyne.App, opts Options) *MainWindow {
	w := a.NewWindow("MatrixBoard")
	w.Resize(fyne.NewSize(1024, 768))

	cfg := opts.Config
	engine := board.NewEngine(cfg.BoardConfig(),
		board.WithBackground(cfg.BackgroundRGBA()),
		board.WithDispatcher(fyne.Do),
	)

	m := &MainWindow{
		Window: w,
		Board:  NewBoardView(w, engine, opts.Store),
		Table:  NewTablePage(w, opts.Store),
		Call:   NewCallPage(opts.Session, cfg.RoomHint),
	}

	m.Board.Toolbar.OnStyleChange = func(s board.Style) {
		cfg.DefaultColor, cfg.DefaultWidth = s.Color, s.BrushWidth
		cfg.Save(a.Preferences())
	}
	m.Call.OnRoomChange = func(room string) {
		cfg.RoomHint = room
		cfg.Save(a.Preferences())
	}

	boardPage := m.Board.Content()
	if opts.ShareLink != "" {
		link := widget.NewLabel("Share link: " + opts.ShareLink)
		link.Selectable = true
		boardPage = container.NewBorder(link, nil, nil, nil, boardPage)
	}

	m.Tabs = container.NewAppTabs(
		container.NewTabItemWithIcon("Board", theme.DocumentCreateIcon(), boardPage),
		container.NewTabItemWithIcon("Table", theme.ListIcon(), m.Table.Content()),
		container.NewTabItemWithIcon("Video Call", theme.MediaVideoIcon(), m.Call.Content()),
	)
	m.Tabs.SetTabLocation(container.TabLocationLeading)
	m.Tabs.OnSelected = func(t *container.TabItem) {
		if t.Text == "Board" {
			m.Board.SyncTable()
		}
	}

	w.SetContent(m.Tabs)
	return m
}

// SetStatus writes to the board's status bar from any goroutine.
func (m *MainWindow) SetStatus(text string) {
	m.Board.Board.SetStatus(text)
}

func RunApp(a fyne.App, opts Options) {
	NewMainWindow(a, opts).Window.ShowAndRun()
}
