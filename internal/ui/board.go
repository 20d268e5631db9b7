package ui

import (
	"fmt"
	"io"
	"log"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MatrixBoard/internal/board"
	"MatrixBoard/internal/state"
)

const (
	statusCleared  = "Canvas and background image cleared."
	statusUploaded = "Image uploaded successfully!"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// BoardView is the integrated board page: toolbar, drawing surface and
// the action row for images, table annotations and export.
type BoardView struct {
	Board   *BoardWidget
	Toolbar *Toolbar
	store   *state.Store
	window  fyne.Window
	content fyne.CanvasObject
}

func NewBoardView(w fyne.Window, engine *board.Engine, store *state.Store) *BoardView {
	v := &BoardView{
		Board:  NewBoardWidget(engine),
		store:  store,
		window: w,
	}
	v.Toolbar = NewToolbar(engine.Config(), w)

	engine.OnImageLoaded = func(o board.Overlay) {
		log.Printf("[BOARD] image placed at %.0fx%.0f", o.Size.Width, o.Size.Height)
		v.Board.SetStatus(statusUploaded)
	}
	engine.OnError = func(err error) {
		v.Board.SetStatus(err.Error())
		dialog.ShowError(err, w)
	}

	actions := container.NewHBox(
		widget.NewButtonWithIcon("Clear Canvas", theme.DeleteIcon(), v.ClearCanvas),
		widget.NewButtonWithIcon("Upload Image", theme.FolderOpenIcon(), v.showUpload),
		widget.NewButtonWithIcon("Show Table", theme.ListIcon(), v.ShowTable),
		widget.NewButtonWithIcon("Save PNG", theme.DocumentSaveIcon(), v.showSavePNG),
		widget.NewButtonWithIcon("Export PDF", theme.DocumentPrintIcon(), v.showExportPDF),
	)
	bottom := container.NewVBox(actions, v.Board.StatusBar())
	v.content = container.NewBorder(v.Toolbar.Content(), bottom, nil, nil, v.Board)
	return v
}

func (v *BoardView) Content() fyne.CanvasObject {
	return v.content
}

func (v *BoardView) Engine() *board.Engine {
	return v.Board.Engine()
}

// ClearCanvas wipes strokes, the overlay image and the annotations.
func (v *BoardView) ClearCanvas() {
	v.Engine().Clear()
	v.Board.SetStatus(statusCleared)
}

// ShowTable puts the table rows on the board as annotations.
func (v *BoardView) ShowTable() {
	list := v.store.Annotations()
	v.Engine().SetAnnotations(list)
	v.Board.SetStatus(fmt.Sprintf("Showing %d table rows.", len(list)))
}

// SyncTable refreshes annotations already on the board from the table.
// The board is only recomposited when the rows actually changed, since a
// recomposite drops the strokes drawn so far.
func (v *BoardView) SyncTable() bool {
	current := v.Engine().Annotations()
	if len(current) == 0 {
		return false
	}
	list := v.store.Annotations()
	if slices.Equal(list, current) {
		return false
	}
	v.Engine().SetAnnotations(list)
	return true
}

// LoadImage reads r fully and starts decoding it onto the board.
func (v *BoardView) LoadImage(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	v.Engine().LoadImage(data)
	return nil
}

func (v *BoardView) showUpload() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		if reader == nil {
			return
		}
		defer func() {
			if err := reader.Close(); err != nil {
				log.Printf("Error closing reader: %v", err)
			}
		}()
		log.Printf("[BOARD] loading image %s", reader.URI().Name())
		if err := v.LoadImage(reader); err != nil {
			dialog.ShowError(err, v.window)
		}
	}, v.window)
	d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	d.Show()
}
