package ui

import (
	"errors"
	"image/color"
	"sync/atomic"

	"PaintBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// Board shows a state.Canvas and feeds it pointer input. Mouse and touch
// both map press/move/release onto BeginStroke/ExtendStroke/EndStroke.
type Board struct {
	widget.BaseWidget
	canvas    *state.Canvas
	statusBar *widget.Label
	pending   atomic.Bool // a refresh is queued on the UI goroutine
}

var _ fyne.Widget = (*Board)(nil)
var _ fyne.Draggable = (*Board)(nil)
var _ desktop.Mouseable = (*Board)(nil)
var _ mobile.Touchable = (*Board)(nil)

// NewBoard wraps c, which must already be initialized, and subscribes to
// its changes.
func NewBoard(c *state.Canvas) *Board {
	b := &Board{
		canvas:    c,
		statusBar: widget.NewLabel("Ready"),
	}
	b.ExtendBaseWidget(b)
	c.SetObserver(b.changed)
	return b
}

// Canvas returns the canvas the board draws.
func (b *Board) Canvas() *state.Canvas { return b.canvas }

// StatusBar returns the label the board reports export results on.
func (b *Board) StatusBar() *widget.Label { return b.statusBar }

// SetStatus updates the status label from any goroutine.
func (b *Board) SetStatus(text string) {
	fyne.Do(func() { b.statusBar.SetText(text) })
}

// changed runs for every canvas Op. Bursts of move events collapse into a
// single queued refresh.
func (b *Board) changed(state.Op) {
	if b.pending.Swap(true) {
		return
	}
	fyne.Do(func() {
		b.pending.Store(false)
		b.Refresh()
	})
}

// toSurface maps a widget position to surface pixels. The surface is drawn
// scaled to fit and centred, matching canvas.ImageFillContain.
func (b *Board) toSurface(pos fyne.Position) (float32, float32) {
	w, h := b.canvas.Size()
	size := b.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return pos.X, pos.Y
	}
	scale := min(size.Width/float32(w), size.Height/float32(h))
	offX := (size.Width - float32(w)*scale) / 2
	offY := (size.Height - float32(h)*scale) / 2
	return (pos.X - offX) / scale, (pos.Y - offY) / scale
}

func (b *Board) press(pos fyne.Position) {
	b.canvas.BeginStroke(b.toSurface(pos))
}

func (b *Board) move(pos fyne.Position) {
	x, y := b.toSurface(pos)
	ignoreIdle(b.canvas.ExtendStroke(x, y))
}

func (b *Board) release() {
	ignoreIdle(b.canvas.EndStroke())
}

// ignoreIdle drops ErrNoActiveStroke. Drivers deliver both MouseUp and
// DragEnd for one gesture, and moves can arrive after an undo.
func ignoreIdle(err error) {
	if err != nil && !errors.Is(err, state.ErrNoActiveStroke) {
		state.Logger().Warn("board input", "error", err)
	}
}

func (b *Board) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.press(e.Position)
	}
}

func (b *Board) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.release()
	}
}

func (b *Board) Dragged(e *fyne.DragEvent) {
	if b.canvas.Drawing() {
		b.move(e.Position)
	}
}

func (b *Board) DragEnd() { b.release() }

func (b *Board) TouchDown(e *mobile.TouchEvent) { b.press(e.Position) }
func (b *Board) TouchUp(*mobile.TouchEvent)     { b.release() }
func (b *Board) TouchCancel(*mobile.TouchEvent) { b.release() }
func (b *Board) MouseIn(*desktop.MouseEvent)    {}
func (b *Board) MouseOut()                      {}
func (b *Board) MouseMoved(*desktop.MouseEvent) {}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.background = canvas.NewRectangle(color.Gray{Y: 0xe0})
	r.image = canvas.NewImageFromImage(b.canvas.Snapshot())
	r.image.FillMode = canvas.ImageFillContain
	r.image.ScaleMode = canvas.ImageScalePixels
	r.rendered = b.canvas.Revision()
	return r
}

type boardRenderer struct {
	board      *Board
	background *canvas.Rectangle
	image      *canvas.Image
	rendered   uint64 // canvas revision shown by image
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.image}
}

// Refresh repaints only when the canvas published a change since the last
// paint. The image gets a private snapshot so an export running on another
// goroutine never repaints pixels the driver is uploading.
func (r *boardRenderer) Refresh() {
	if rev := r.board.canvas.Revision(); rev != r.rendered {
		r.image.Image = r.board.canvas.Snapshot()
		r.rendered = rev
	}
	r.image.Refresh()
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.image.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardRenderer) Destroy() {}
