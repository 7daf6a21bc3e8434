package state

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"
	"time"

	"PaintBoard/internal/export"

	"github.com/google/uuid"
)

const (
	DefaultBrushSize = 5
	// DefaultTouchTolerance accepts every move sample.
	DefaultTouchTolerance = 0
)

var (
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidWidth    = errors.New("brush width must be positive")
	ErrInvalidBlurKind = errors.New("invalid blur kind")
	ErrNoActiveStroke  = errors.New("no stroke in progress")
)

// Painter repaints a surface from a background color and the strokes in
// z-order. It is called with the canvas locked and must not retain strokes.
type Painter interface {
	Paint(dst *image.RGBA, background color.RGBA, strokes []Stroke)
}

// DefaultTool is the brush restored by Init, Clear and ResetToDefaultBrush.
func DefaultTool() Tool {
	return Tool{Color: DefaultColor, Width: DefaultBrushSize}
}

// Canvas records strokes from press/move/release input and renders them
// onto a persistent surface.
type Canvas struct {
	mu         sync.RWMutex
	painter    Painter
	surface    *image.RGBA
	strokes    []Stroke
	drawing    bool  // last stroke is still receiving points
	last       Point // previous raw touch sample
	background color.RGBA
	tool       Tool
	tolerance  float32

	revision uint64
	obsMu    sync.RWMutex
	onChange func(Op)
}

type Option func(*Canvas)

// WithTouchTolerance sets the minimum per-axis displacement for a move
// sample to extend the stroke.
func WithTouchTolerance(t float32) Option {
	return func(c *Canvas) { c.tolerance = t }
}

// WithObserver registers fn to receive every change published by the canvas.
func WithObserver(fn func(Op)) Option {
	return func(c *Canvas) { c.onChange = fn }
}

// New returns a canvas painted by p. Init must be called before any input.
func New(p Painter, opts ...Option) *Canvas {
	c := &Canvas{
		painter:    p,
		background: DefaultBackground,
		tool:       DefaultTool(),
		tolerance:  DefaultTouchTolerance,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetObserver replaces the change observer. Pass nil to stop notifications.
func (c *Canvas) SetObserver(fn func(Op)) {
	c.obsMu.Lock()
	c.onChange = fn
	c.obsMu.Unlock()
}

// Init allocates the surface and restores the default brush.
func (c *Canvas) Init(width, height int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("state: invalid surface size %dx%d", width, height))
	}
	c.mu.Lock()
	c.surface = image.NewRGBA(image.Rect(0, 0, width, height))
	c.tool = DefaultTool()
	c.mu.Unlock()
	Logger().Info("canvas initialized", "width", width, "height", height)
}

// mustInit panics before Init. It takes the read lock itself so the
// panic never leaves c.mu held.
func (c *Canvas) mustInit() {
	if !c.Initialized() {
		panic("state: canvas used before Init")
	}
}

// mustInitLocked is mustInit for callers holding c.mu with a deferred unlock.
func (c *Canvas) mustInitLocked() {
	if c.surface == nil {
		panic("state: canvas used before Init")
	}
}

// Initialized reports whether Init has been called.
func (c *Canvas) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.surface != nil
}

// Size returns the surface dimensions in pixels.
func (c *Canvas) Size() (width, height int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.mustInitLocked()
	b := c.surface.Bounds()
	return b.Dx(), b.Dy()
}

// SetColor parses a "#rrggbb" string and makes it the active color.
func (c *Canvas) SetColor(hex string) error {
	clr, err := ParseHexColor(hex)
	if err != nil {
		return fmt.Errorf("state: set color: %w", err)
	}
	c.SetColorRGBA(clr)
	return nil
}

func (c *Canvas) SetColorRGBA(clr color.RGBA) {
	c.mu.Lock()
	c.tool.Color = clr
	c.mu.Unlock()
	c.emit(Op{Type: OpTool})
}

func (c *Canvas) SetBrushWidth(width int) error {
	if width <= 0 {
		return fmt.Errorf("state: set brush width %d: %w", width, ErrInvalidWidth)
	}
	c.mu.Lock()
	c.tool.Width = width
	c.mu.Unlock()
	c.emit(Op{Type: OpTool})
	return nil
}

// SetEraser switches to painting in the background color. Erasing covers
// earlier strokes where paths overlap; nothing is removed from the list.
func (c *Canvas) SetEraser(width int) error {
	if width <= 0 {
		return fmt.Errorf("state: set eraser %d: %w", width, ErrInvalidWidth)
	}
	c.mu.Lock()
	c.tool = Tool{Color: c.background, Width: width}
	c.mu.Unlock()
	c.emit(Op{Type: OpTool})
	return nil
}

func (c *Canvas) ResetToDefaultBrush() {
	c.mu.Lock()
	c.tool = DefaultTool()
	c.mu.Unlock()
	c.emit(Op{Type: OpTool})
}

func (c *Canvas) SetBlurEnabled(enabled bool) {
	c.mu.Lock()
	c.tool.Blurred = enabled
	c.mu.Unlock()
	c.emit(Op{Type: OpTool})
}

func (c *Canvas) SetBlurKind(kind BlurKind) error {
	if !kind.valid() {
		return fmt.Errorf("state: set blur kind: %w: %v", ErrInvalidBlurKind, kind)
	}
	c.mu.Lock()
	c.tool.Blur = kind
	c.mu.Unlock()
	c.emit(Op{Type: OpTool})
	return nil
}

// Tool returns the settings the next stroke will use.
func (c *Canvas) Tool() Tool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tool
}

func (c *Canvas) Background() color.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.background
}

// BeginStroke starts a stroke at (x, y) with a copy of the active tool.
// A stroke still in progress is ended first.
func (c *Canvas) BeginStroke(x, y float32) {
	c.mustInit()
	c.mu.Lock()
	var ended string
	if c.drawing {
		ended, _ = c.endLocked()
	}
	s := Stroke{
		ID:      uuid.NewString(),
		Color:   c.tool.Color,
		Width:   c.tool.Width,
		Blurred: c.tool.Blurred,
		Blur:    c.tool.Blur,
		Time:    time.Now(),
	}
	s.Path.Start(toFixed(x, y))
	c.strokes = append(c.strokes, s)
	c.last = Point{x, y}
	c.drawing = true
	c.mu.Unlock()

	if ended != "" {
		c.emit(Op{Type: OpEndStroke, StrokeID: ended})
	}
	Logger().Debug("stroke begun", "id", s.ID, "width", s.Width, "blurred", s.Blurred)
	c.emit(Op{Type: OpBeginStroke, StrokeID: s.ID})
}

// ExtendStroke smooths the stroke towards (x, y). The new segment curves
// through the previous sample and ends halfway between it and (x, y).
// Samples closer than the touch tolerance on both axes are dropped.
func (c *Canvas) ExtendStroke(x, y float32) error {
	c.mustInit()
	c.mu.Lock()
	if !c.drawing {
		c.mu.Unlock()
		return fmt.Errorf("state: extend stroke: %w", ErrNoActiveStroke)
	}
	dx, dy := abs32(x-c.last.X), abs32(y-c.last.Y)
	if dx < c.tolerance && dy < c.tolerance {
		c.mu.Unlock()
		return nil
	}
	s := &c.strokes[len(c.strokes)-1]
	s.Path.QuadBezier(toFixed(c.last.X, c.last.Y), toFixed((x+c.last.X)/2, (y+c.last.Y)/2))
	c.last = Point{x, y}
	id := s.ID
	c.mu.Unlock()

	c.emit(Op{Type: OpExtendStroke, StrokeID: id})
	return nil
}

// EndStroke draws the final segment to the last sample and freezes the stroke.
func (c *Canvas) EndStroke() error {
	c.mustInit()
	c.mu.Lock()
	if !c.drawing {
		c.mu.Unlock()
		return fmt.Errorf("state: end stroke: %w", ErrNoActiveStroke)
	}
	id, began := c.endLocked()
	c.mu.Unlock()

	Logger().Debug("stroke ended", "id", id, "duration", time.Since(began))
	c.emit(Op{Type: OpEndStroke, StrokeID: id})
	return nil
}

// endLocked closes the active stroke and returns its ID and start time.
func (c *Canvas) endLocked() (string, time.Time) {
	s := &c.strokes[len(c.strokes)-1]
	s.Path.Line(toFixed(c.last.X, c.last.Y))
	c.drawing = false
	return s.ID, s.Time
}

// Drawing reports whether a stroke is in progress.
func (c *Canvas) Drawing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.drawing
}

// Undo drops the most recent stroke. A stroke in progress is cancelled.
func (c *Canvas) Undo() {
	c.mu.Lock()
	if len(c.strokes) == 0 {
		c.mu.Unlock()
		return
	}
	last := c.strokes[len(c.strokes)-1]
	c.strokes[len(c.strokes)-1] = Stroke{}
	c.strokes = c.strokes[:len(c.strokes)-1]
	c.drawing = false
	remaining := len(c.strokes)
	c.mu.Unlock()

	Logger().Debug("stroke undone", "id", last.ID, "remaining", remaining)
	c.emit(Op{Type: OpUndo, StrokeID: last.ID})
}

// Clear removes every stroke and restores the default background and brush.
func (c *Canvas) Clear() {
	c.mu.Lock()
	n := len(c.strokes)
	c.strokes = nil
	c.drawing = false
	c.background = DefaultBackground
	c.tool = DefaultTool()
	c.mu.Unlock()

	Logger().Info("canvas cleared", "strokes", n)
	c.emit(Op{Type: OpClear})
}

func (c *Canvas) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.strokes)
}

// Strokes returns a copy of the recorded strokes in z-order.
func (c *Canvas) Strokes() []Stroke {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Stroke, len(c.strokes))
	for i, s := range c.strokes {
		out[i] = s.clone()
	}
	return out
}

// Render repaints the surface from scratch and returns it. The image stays
// owned by the canvas and is overwritten by the next Render; use Snapshot
// for a stable copy.
func (c *Canvas) Render() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mustInitLocked()
	c.painter.Paint(c.surface, c.background, c.strokes)
	return c.surface
}

// Snapshot renders and returns a private copy of the surface.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mustInitLocked()
	c.painter.Paint(c.surface, c.background, c.strokes)
	img := image.NewRGBA(c.surface.Rect)
	copy(img.Pix, c.surface.Pix)
	return img
}

// ExportToImage writes the surface as a quality 100 JPEG.
func (c *Canvas) ExportToImage(w io.Writer) error {
	return c.Export(context.Background(), w, export.FormatJPEG)
}

// Export writes a snapshot of the surface in format f. The canvas is
// unchanged whatever the outcome.
func (c *Canvas) Export(ctx context.Context, w io.Writer, f export.Format) error {
	return encode(ctx, w, c.Snapshot(), f)
}

// ExportAsync snapshots the surface immediately and encodes it on a new
// goroutine, so input may keep mutating the canvas meanwhile. The channel
// receives exactly one result.
func (c *Canvas) ExportAsync(ctx context.Context, w io.Writer, f export.Format) <-chan error {
	img := c.Snapshot()
	done := make(chan error, 1)
	go func() {
		done <- encode(ctx, w, img, f)
	}()
	return done
}

func encode(ctx context.Context, w io.Writer, img image.Image, f export.Format) error {
	if err := export.Encode(ctx, w, img, f); err != nil {
		Logger().Warn("export failed", "format", f, "error", err)
		return err
	}
	Logger().Info("export written", "format", f, "size", img.Bounds().Size())
	return nil
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
