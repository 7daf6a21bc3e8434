package ui

import (
	"context"

	"PaintBoard/internal/config"
	"PaintBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
)

// NewMainWindow lays out the toolbar, board and status bar for c in a new
// window of a. Closing the window cancels exports still in flight.
func NewMainWindow(a fyne.App, cfg *config.Config, c *state.Canvas) fyne.Window {
	w := a.NewWindow("PaintBoard")
	w.Resize(fyne.NewSize(1024, 768))

	ctx, cancel := context.WithCancel(context.Background())
	w.SetOnClosed(cancel)

	board := NewBoard(c)
	sel := state.NewSelection(state.HexString(state.DefaultColor))
	toolbar := NewToolbar(ctx, board, w, cfg, sel)

	w.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyZ,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) { c.Undo() })

	w.SetContent(container.NewBorder(toolbar, board.StatusBar(), nil, nil, board))
	return w
}

func RunApp(cfg *config.Config, c *state.Canvas) {
	myApp := app.New()
	NewMainWindow(myApp, cfg, c).ShowAndRun()
}
