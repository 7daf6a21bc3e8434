package ui

import (
	"context"
	"image/color"
	"strconv"
	"strings"

	"PaintBoard/internal/config"
	"PaintBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const blurCancel = "cancel"

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	Color    color.Color
	OnTapped func(hex string)

	selected bool
	border   *canvas.Rectangle
}

func newColorSwatch(hex string, c color.Color, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, Color: c, OnTapped: tapped}
	s.border = canvas.NewRectangle(color.Transparent)
	s.styleBorder()
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))
	return widget.NewSimpleRenderer(container.NewStack(rect, s.border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

func (s *colorSwatch) SetSelected(selected bool) {
	if s.selected == selected {
		return
	}
	s.selected = selected
	s.styleBorder()
	s.border.Refresh()
}

func (s *colorSwatch) styleBorder() {
	if s.selected {
		s.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
		s.border.StrokeWidth = 3
		return
	}
	s.border.StrokeColor = color.Gray{Y: 150}
	s.border.StrokeWidth = 1
}

// toolbar turns menu choices into canvas commands. It owns no drawing
// state: the tool lives in the canvas and the highlighted color in sel.
type toolbar struct {
	ctx   context.Context
	board *Board
	win   fyne.Window
	cfg   *config.Config
	sel   *state.Selection

	lastColor string // restored by the pen after erasing
	lastWidth int

	content  fyne.CanvasObject
	swatches []*colorSwatch
	sizes    *widget.Select
	eraser   *widget.Select
	blur     *widget.Select
}

// NewToolbar builds the tool row for board. Every control shares sel, so
// picking the eraser or cancelling blur is reflected in the palette.
func NewToolbar(ctx context.Context, board *Board, win fyne.Window, cfg *config.Config, sel *state.Selection) fyne.CanvasObject {
	return newToolbar(ctx, board, win, cfg, sel).content
}

func newToolbar(ctx context.Context, board *Board, win fyne.Window, cfg *config.Config, sel *state.Selection) *toolbar {
	t := &toolbar{
		ctx:       ctx,
		board:     board,
		win:       win,
		cfg:       cfg,
		sel:       sel,
		lastColor: state.HexString(state.DefaultColor),
		lastWidth: state.DefaultBrushSize,
	}

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), t.pen),
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			t.dispatch(state.Command{Action: state.ActionUndo})
		}),
		widget.NewToolbarAction(theme.ContentClearIcon(), t.confirmClear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), t.saveAs),
		widget.NewToolbarAction(theme.DownloadIcon(), t.download),
	)

	colorBox := container.NewHBox()
	for _, hex := range cfg.Palette {
		c, err := state.ParseHexColor(hex)
		if err != nil {
			state.Logger().Warn("palette entry skipped", "color", hex, "error", err)
			continue
		}
		sw := newColorSwatch(strings.ToLower(hex), c, t.pickColor)
		t.swatches = append(t.swatches, sw)
		colorBox.Add(sw)
	}
	t.highlight(sel.Get())
	sel.OnChanged(func(hex string) {
		fyne.Do(func() { t.highlight(hex) })
	})

	t.sizes = widget.NewSelect(sizeLabels(cfg.Brush.Sizes), nil)
	t.sizes.SetSelected(strconv.Itoa(state.DefaultBrushSize))
	t.sizes.OnChanged = t.pickSize

	t.eraser = widget.NewSelect(sizeLabels(cfg.Brush.EraserSizes), t.pickEraser)
	t.eraser.PlaceHolder = "Eraser"

	t.blur = widget.NewSelect([]string{
		state.BlurNormal.String(), state.BlurInner.String(),
		state.BlurOuter.String(), state.BlurSolid.String(), blurCancel,
	}, t.pickBlur)
	t.blur.PlaceHolder = "Blur"

	selectSize := fyne.NewSize(110, 35)
	t.content = container.NewHBox(
		tb,
		widget.NewSeparator(),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		container.New(layout.NewGridWrapLayout(selectSize), t.sizes),
		container.New(layout.NewGridWrapLayout(selectSize), t.eraser),
		container.New(layout.NewGridWrapLayout(selectSize), t.blur),
		layout.NewSpacer(),
	)
	return t
}

func sizeLabels(sizes []int) []string {
	labels := make([]string, len(sizes))
	for i, s := range sizes {
		labels[i] = strconv.Itoa(s)
	}
	return labels
}

func (t *toolbar) dispatch(cmd state.Command) bool {
	if err := t.board.Canvas().Dispatch(cmd); err != nil {
		t.board.SetStatus(err.Error())
		return false
	}
	return true
}

func (t *toolbar) highlight(hex string) {
	for _, sw := range t.swatches {
		sw.SetSelected(strings.EqualFold(sw.Hex, hex))
	}
}

func (t *toolbar) pickColor(hex string) {
	if !t.dispatch(state.Command{Action: state.ActionSetColor, Color: hex}) {
		return
	}
	t.lastColor = hex
	t.sel.Set(hex)
}

func (t *toolbar) pickSize(label string) {
	w, err := strconv.Atoi(label)
	if err != nil {
		return
	}
	if t.dispatch(state.Command{Action: state.ActionSetBrushWidth, Width: w}) {
		t.lastWidth = w
	}
}

// pen leaves the eraser and returns to the last brush color and size.
func (t *toolbar) pen() {
	t.dispatch(state.Command{Action: state.ActionSetColor, Color: t.lastColor})
	t.dispatch(state.Command{Action: state.ActionSetBrushWidth, Width: t.lastWidth})
	t.eraser.ClearSelected()
	t.sel.Set(t.lastColor)
}

func (t *toolbar) pickEraser(label string) {
	w, err := strconv.Atoi(label)
	if err != nil {
		return
	}
	if t.dispatch(state.Command{Action: state.ActionSetEraser, Width: w}) {
		t.sel.Set(state.HexString(t.board.Canvas().Background()))
	}
}

func (t *toolbar) pickBlur(label string) {
	switch label {
	case "":
		return
	case blurCancel:
		t.resetBrush()
		return
	}
	kind, err := state.ParseBlurKind(label)
	if err != nil {
		return
	}
	t.dispatch(state.Command{Action: state.ActionSetBlur, Blur: kind})
}

// resetBrush restores the default brush and the controls showing it.
func (t *toolbar) resetBrush() {
	t.dispatch(state.Command{Action: state.ActionResetBrush})
	t.lastColor = state.HexString(state.DefaultColor)
	t.lastWidth = state.DefaultBrushSize
	t.sizes.OnChanged = nil
	t.sizes.SetSelected(strconv.Itoa(state.DefaultBrushSize))
	t.sizes.OnChanged = t.pickSize
	t.eraser.ClearSelected()
	t.blur.ClearSelected()
	t.sel.Set(t.lastColor)
}

func (t *toolbar) confirmClear() {
	dialog.ShowConfirm("New Sheet", "Start new drawing?", func(ok bool) {
		if !ok {
			return
		}
		t.dispatch(state.Command{Action: state.ActionClear})
		t.resetBrush()
	}, t.win)
}
