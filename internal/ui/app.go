package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RunApp shows the board window and blocks until it is closed. A non-empty
// shareLink is shown so clients can join.
func RunApp(a fyne.App, shareLink string, board *BoardWidget) {
	win := a.NewWindow("StrokeBoard")
	win.Resize(fyne.NewSize(1024, 768))

	bottom := fyne.CanvasObject(board.StatusBar())
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		bottom = container.NewBorder(nil, nil, widget.NewLabel("Share:"), nil, container.NewVBox(link, board.StatusBar()))
	}

	win.SetContent(container.NewBorder(NewToolbar(board, win), bottom, nil, nil, board))
	win.ShowAndRun()
}
