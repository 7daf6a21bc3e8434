package ui

import (
	"fmt"

	"PaintBoard/internal/export"
	"PaintBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// saveAs asks for a destination and exports the surface there. Encoding
// runs off the UI goroutine on a snapshot, so drawing can continue.
func (t *toolbar) saveAs() {
	f := t.cfg.ExportFormat()
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.win)
			return
		}
		if w == nil {
			return // cancelled
		}
		done := t.board.Canvas().ExportAsync(t.ctx, w, f)
		go func() {
			err := <-done
			if cerr := w.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("close %s: %w", w.URI().Name(), cerr)
			}
			t.report(w.URI().Name(), err)
		}()
	}, t.win)
	d.SetFileName(export.FileName(f))
	d.Show()
}

// download writes a fresh myPaint file into the configured directory, or
// falls back to saveAs when none is set.
func (t *toolbar) download() {
	dir := t.cfg.ExportDir()
	if dir == "" {
		t.saveAs()
		return
	}
	img := t.board.Canvas().Snapshot()
	f := t.cfg.ExportFormat()
	go func() {
		path, err := export.ToFile(t.ctx, dir, img, f)
		t.report(path, err)
	}()
}

func (t *toolbar) report(name string, err error) {
	if err != nil {
		state.Logger().Error("save failed", "file", name, "error", err)
		t.board.SetStatus("Save failed")
		fyne.Do(func() { dialog.ShowError(err, t.win) })
		return
	}
	state.Logger().Info("saved", "file", name)
	t.board.SetStatus("Saved " + name)
}
