package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"StrokeBoard/internal/export"
)

// NewToolbar builds the board controls: clear, PDF export and the drawing
// toggle.
func NewToolbar(board *BoardWidget, win fyne.Window) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), board.ClearPaths),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
				if err != nil {
					dialog.ShowError(err, win)
					return
				}
				if w == nil {
					return
				}
				board.SaveToFile(w)
			}, win)
		}),
	)

	draw := widget.NewCheck("Draw", board.SetDrawing)
	draw.SetChecked(board.Capture.InputEnabled())

	return container.NewHBox(
		widget.NewLabel("Board:"),
		tb,
		widget.NewSeparator(),
		draw,
		layout.NewSpacer(),
	)
}

// SaveToFile exports the board as a PDF into writer and closes it.
func (b *BoardWidget) SaveToFile(writer fyne.URIWriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("[BOARD] Error closing writer: %v", err)
		}
	}()

	strokes := b.Strokes()
	if err := export.WritePDF(writer, strokes); err != nil {
		log.Printf("[BOARD] Export failed: %v", err)
		b.SetStatus("Error exporting board")
		return
	}
	log.Printf("[BOARD] Exported %d strokes to %s", len(strokes), writer.URI())
	b.SetStatus(fmt.Sprintf("Exported %d drawings", len(strokes)))
}
