package ui

import (
	"fmt"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"MatrixBoard/internal/export"
)

// SavePNG writes the board buffer to w as PNG.
func (v *BoardView) SavePNG(w io.Writer) error {
	return export.PNG(w, v.Engine().Image())
}

// ExportPDF writes the board buffer to w as a one-page PDF.
func (v *BoardView) ExportPDF(w io.Writer) error {
	return export.PDF(w, v.Engine().Image(), "MatrixBoard")
}

func (v *BoardView) showSavePNG() {
	v.showSave("board.png", "PNG", v.SavePNG)
}

func (v *BoardView) showExportPDF() {
	v.showSave("board.pdf", "PDF", v.ExportPDF)
}

func (v *BoardView) showSave(name, kind string, write func(io.Writer) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("Error closing writer: %v", err)
			}
		}()
		if err := write(writer); err != nil {
			log.Printf("[EXPORT] %s export failed: %v", kind, err)
			v.Board.SetStatus(fmt.Sprintf("Error exporting %s", kind))
			dialog.ShowError(err, v.window)
			return
		}
		log.Printf("[EXPORT] saved %s to %s", kind, writer.URI())
		v.Board.SetStatus(fmt.Sprintf("Saved board as %s", writer.URI().Name()))
	}, v.window)
	d.SetFileName(name)
	d.Show()
}
