package state_test

import (
	"bytes"
	"context"
	"image/color"
	"image/jpeg"
	"sync"
	"testing"

	"PaintBoard/internal/export"
	"PaintBoard/internal/paint"
	"PaintBoard/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCanvas(t *testing.T, opts ...state.Option) *state.Canvas {
	t.Helper()
	c := state.New(paint.NewRenderer(paint.NewRasterDriver()), opts...)
	c.Init(100, 100)
	return c
}

func drawLine(t *testing.T, c *state.Canvas, x0, y0, x1, y1 float32) {
	t.Helper()
	c.BeginStroke(x0, y0)
	require.NoError(t, c.ExtendStroke((x0+x1)/2, (y0+y1)/2))
	require.NoError(t, c.ExtendStroke(x1, y1))
	require.NoError(t, c.EndStroke())
}

func TestStrokeLifecycle(t *testing.T) {
	c := newCanvas(t)

	c.BeginStroke(10, 10)
	assert.True(t, c.Drawing())
	require.NoError(t, c.ExtendStroke(20, 20))
	require.NoError(t, c.EndStroke())
	assert.False(t, c.Drawing())

	strokes := c.Strokes()
	require.Len(t, strokes, 1)
	s := strokes[0]
	assert.NotEmpty(t, s.ID)
	assert.GreaterOrEqual(t, len(s.Points()), 2)
	assert.Equal(t, state.DefaultColor, s.Color)
	assert.Equal(t, state.DefaultBrushSize, s.Width)
	assert.False(t, s.Blurred)
	assert.False(t, s.Time.IsZero())
}

func TestStrokeSmoothing(t *testing.T) {
	c := newCanvas(t)
	c.BeginStroke(1, 2)
	require.NoError(t, c.ExtendStroke(3, 4))
	require.NoError(t, c.EndStroke())

	p := c.Strokes()[0].Path
	assert.Equal(t, "M1.000,2.000 Q1.000,2.000,2.000,3.000 L3.000,4.000", p.String())
	assert.Equal(t, []state.Point{{1, 2}, {2, 3}, {3, 4}}, p.Points())
	assert.Equal(t, state.Rect{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}, p.Bounds())
}

func TestTouchTolerance(t *testing.T) {
	c := newCanvas(t, state.WithTouchTolerance(4))
	c.BeginStroke(0, 0)
	require.NoError(t, c.ExtendStroke(2, 3)) // dropped
	require.NoError(t, c.ExtendStroke(5, 1))
	require.NoError(t, c.EndStroke())

	// The release segment runs to the last accepted sample.
	assert.Equal(t, "M0.000,0.000 Q0.000,0.000,2.500,0.500 L5.000,1.000", c.Strokes()[0].Path.String())
}

func TestExtendWithoutStroke(t *testing.T) {
	c := newCanvas(t)
	assert.ErrorIs(t, c.ExtendStroke(1, 1), state.ErrNoActiveStroke)
	assert.ErrorIs(t, c.EndStroke(), state.ErrNoActiveStroke)

	drawLine(t, c, 0, 0, 10, 10)
	assert.ErrorIs(t, c.EndStroke(), state.ErrNoActiveStroke)
	assert.Equal(t, 1, c.Len())
}

func TestBeginEndsActiveStroke(t *testing.T) {
	c := newCanvas(t)
	c.BeginStroke(0, 0)
	require.NoError(t, c.ExtendStroke(4, 4))
	c.BeginStroke(50, 50)
	require.NoError(t, c.EndStroke())

	strokes := c.Strokes()
	require.Len(t, strokes, 2)
	assert.IsType(t, state.LineTo{}, strokes[0].Path[len(strokes[0].Path)-1])
	assert.Equal(t, state.Point{X: 4, Y: 4}, strokes[0].Points()[len(strokes[0].Path)-1])
}

func TestUsedBeforeInit(t *testing.T) {
	assert.Panics(t, func() {
		state.New(paint.NewRenderer(paint.NewRasterDriver())).BeginStroke(1, 1)
	})
	assert.Panics(t, func() {
		state.New(paint.NewRenderer(paint.NewRasterDriver())).Render()
	})
	assert.Panics(t, func() { state.New(nil).Init(0, 10) })
	assert.False(t, state.New(nil).Initialized())
}

func TestRecoversAfterUsedBeforeInit(t *testing.T) {
	c := state.New(paint.NewRenderer(paint.NewRasterDriver()))
	assert.Panics(t, func() { c.BeginStroke(1, 1) })
	assert.Panics(t, func() { _ = c.ExtendStroke(2, 2) })
	assert.Panics(t, func() { _ = c.EndStroke() })

	// The panics must not leave the canvas locked.
	c.Init(10, 10)
	c.BeginStroke(1, 1)
	require.NoError(t, c.EndStroke())
	assert.Equal(t, 1, c.Len())
}

func TestUndo(t *testing.T) {
	c := newCanvas(t)
	for i := 0; i < 3; i++ {
		drawLine(t, c, 10, float32(10+i*20), 90, float32(10+i*20))
	}
	first := c.Strokes()[0].ID

	c.Undo()
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, first, c.Strokes()[0].ID)

	for i := 0; i < 3; i++ {
		c.Undo()
	}
	assert.Zero(t, c.Len())
}

func TestUndoCancelsActiveStroke(t *testing.T) {
	c := newCanvas(t)
	c.BeginStroke(5, 5)
	c.Undo()
	assert.Zero(t, c.Len())
	assert.False(t, c.Drawing())
	assert.ErrorIs(t, c.ExtendStroke(6, 6), state.ErrNoActiveStroke)
}

func TestClear(t *testing.T) {
	c := newCanvas(t)
	require.NoError(t, c.SetColor("#ff0000"))
	require.NoError(t, c.SetBrushWidth(20))
	c.SetBlurEnabled(true)
	drawLine(t, c, 0, 0, 50, 50)
	c.BeginStroke(1, 1)

	c.Clear()
	assert.Zero(t, c.Len())
	assert.False(t, c.Drawing())
	assert.Equal(t, state.DefaultTool(), c.Tool())
	assert.Equal(t, state.DefaultBackground, c.Background())

	img := c.Render()
	for i := 0; i < len(img.Pix); i++ {
		if img.Pix[i] != 0xff {
			t.Fatalf("pixel byte %d = %d after clear, want 255", i, img.Pix[i])
		}
	}
}

func TestStrokeKeepsToolSnapshot(t *testing.T) {
	c := newCanvas(t)
	drawLine(t, c, 10, 10, 90, 90)

	require.NoError(t, c.SetColor("#ff0000"))
	require.NoError(t, c.SetBrushWidth(30))
	c.SetBlurEnabled(true)

	s := c.Strokes()[0]
	assert.Equal(t, state.DefaultColor, s.Color)
	assert.Equal(t, state.DefaultBrushSize, s.Width)
	assert.False(t, s.Blurred)

	drawLine(t, c, 10, 90, 90, 10)
	s = c.Strokes()[1]
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, s.Color)
	assert.Equal(t, 30, s.Width)
	assert.True(t, s.Blurred)
	assert.Equal(t, state.BlurNormal, s.Blur)
}

func TestStrokesReturnsCopies(t *testing.T) {
	c := newCanvas(t)
	drawLine(t, c, 10, 10, 90, 90)

	got := c.Strokes()
	got[0].Path = got[0].Path[:1]
	got[0].Width = 99
	assert.Len(t, c.Strokes()[0].Path, 4)
	assert.Equal(t, state.DefaultBrushSize, c.Strokes()[0].Width)
}

func TestToolSetters(t *testing.T) {
	c := newCanvas(t)

	assert.ErrorIs(t, c.SetColor("red"), state.ErrInvalidColor)
	assert.ErrorIs(t, c.SetBrushWidth(0), state.ErrInvalidWidth)
	assert.ErrorIs(t, c.SetEraser(-3), state.ErrInvalidWidth)
	assert.ErrorIs(t, c.SetBlurKind(state.BlurKind(9)), state.ErrInvalidBlurKind)
	assert.Equal(t, state.DefaultTool(), c.Tool())

	require.NoError(t, c.SetBrushWidth(12))
	require.NoError(t, c.SetBlurKind(state.BlurSolid))
	c.SetBlurEnabled(true)
	require.NoError(t, c.SetEraser(35))
	assert.Equal(t, state.Tool{Color: state.DefaultBackground, Width: 35}, c.Tool())

	c.ResetToDefaultBrush()
	assert.Equal(t, state.DefaultTool(), c.Tool())
}

func TestObserverRevisions(t *testing.T) {
	var (
		mu  sync.Mutex
		ops []state.Op
	)
	c := newCanvas(t, state.WithObserver(func(op state.Op) {
		mu.Lock()
		ops = append(ops, op)
		mu.Unlock()
	}))

	c.BeginStroke(1, 1)
	require.NoError(t, c.ExtendStroke(5, 5))
	require.NoError(t, c.EndStroke())
	c.Undo()
	c.ResetToDefaultBrush()
	c.Clear()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, ops, 6)
	want := []state.OpType{
		state.OpBeginStroke, state.OpExtendStroke, state.OpEndStroke,
		state.OpUndo, state.OpTool, state.OpClear,
	}
	for i, op := range ops {
		assert.Equal(t, want[i], op.Type, "op %d", i)
		assert.Equal(t, uint64(i+1), op.Revision, "op %d", i)
	}
	assert.Equal(t, ops[0].StrokeID, ops[3].StrokeID)
	assert.Equal(t, uint64(6), c.Revision())
}

func TestObserverMayReadCanvas(t *testing.T) {
	c := newCanvas(t)
	var lens []int
	c.SetObserver(func(state.Op) { lens = append(lens, c.Len()) })
	drawLine(t, c, 0, 0, 10, 10)
	assert.Equal(t, []int{1, 1, 1, 1}, lens)

	c.SetObserver(nil)
	c.Undo()
	assert.Len(t, lens, 4)
}

func TestExportToImage(t *testing.T) {
	c := newCanvas(t)
	require.NoError(t, c.SetBrushWidth(20))
	drawLine(t, c, 10, 50, 90, 50)
	strokes := c.Len()

	var buf bytes.Buffer
	require.NoError(t, c.ExportToImage(&buf))
	assert.Equal(t, strokes, c.Len())

	img, err := jpeg.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	r, _, _, _ := img.At(50, 50).RGBA()
	assert.Less(t, r>>8, uint32(40), "stroke centre should be dark")
	r, _, _, _ = img.At(50, 5).RGBA()
	assert.Greater(t, r>>8, uint32(215), "background should stay white")
}

func TestExportAsync(t *testing.T) {
	c := newCanvas(t)
	drawLine(t, c, 10, 50, 90, 50)

	var buf bytes.Buffer
	done := c.ExportAsync(context.Background(), &buf, export.FormatJPEG)
	// Mutating while the encode runs does not affect the snapshot.
	c.Clear()
	require.NoError(t, <-done)

	_, err := jpeg.Decode(&buf)
	require.NoError(t, err)
}

func TestExportCancelled(t *testing.T) {
	c := newCanvas(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	assert.ErrorIs(t, c.Export(ctx, &buf, export.FormatJPEG), context.Canceled)
	assert.Zero(t, buf.Len())
	assert.ErrorIs(t, <-c.ExportAsync(ctx, &buf, export.FormatPDF), context.Canceled)
}
