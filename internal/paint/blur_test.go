package paint

import (
	"image"
	"image/draw"
	"testing"

	"PaintBoard/internal/state"

	"github.com/stretchr/testify/assert"
)

func TestGaussianKernel(t *testing.T) {
	for _, sigma := range []float64{0.5, 1, 3.3868, 6.27} {
		k := gaussianKernel(sigma)
		assert.Equal(t, 1, len(k)%2, "kernel size must be odd")

		var sum float32
		for _, v := range k {
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-4, "sigma %v", sigma)

		half := len(k) / 2
		for i := 0; i < half; i++ {
			assert.InDelta(t, k[i], k[len(k)-1-i], 1e-6)
			assert.Less(t, k[i], k[i+1])
		}
	}
	assert.Equal(t, []float32{1}, gaussianKernel(0))
}

func TestBlurExtent(t *testing.T) {
	assert.Equal(t, 0, blurExtent(0))
	assert.Equal(t, 11, blurExtent(5))
	assert.Same(t, &cachedKernel(5)[0], &cachedKernel(5)[0])
}

// blockMask returns a 60x60 mask with full coverage in [20,40)².
func blockMask() *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, 60, 60))
	draw.Draw(m, image.Rect(20, 20, 40, 40), image.Opaque, image.Point{}, draw.Src)
	return m
}

func TestMaskFilterKinds(t *testing.T) {
	const radius = 5
	inside := image.Pt(30, 30) // far from any edge
	edgeIn := image.Pt(21, 30)
	edgeOut := image.Pt(18, 30)
	far := image.Pt(2, 2)

	tests := []struct {
		kind                         state.BlurKind
		inside, edgeIn, edgeOut, far func(uint8) bool
	}{
		{
			kind:    state.BlurNormal,
			inside:  func(v uint8) bool { return v > 240 },
			edgeIn:  func(v uint8) bool { return v > 127 && v < 255 },
			edgeOut: func(v uint8) bool { return v > 0 && v < 127 },
			far:     func(v uint8) bool { return v == 0 },
		},
		{
			kind:    state.BlurSolid,
			inside:  func(v uint8) bool { return v == 255 },
			edgeIn:  func(v uint8) bool { return v == 255 },
			edgeOut: func(v uint8) bool { return v > 0 },
			far:     func(v uint8) bool { return v == 0 },
		},
		{
			kind:    state.BlurOuter,
			inside:  func(v uint8) bool { return v == 0 },
			edgeIn:  func(v uint8) bool { return v == 0 },
			edgeOut: func(v uint8) bool { return v > 0 },
			far:     func(v uint8) bool { return v == 0 },
		},
		{
			kind:    state.BlurInner,
			inside:  func(v uint8) bool { return v > 240 },
			edgeIn:  func(v uint8) bool { return v < 255 },
			edgeOut: func(v uint8) bool { return v == 0 },
			far:     func(v uint8) bool { return v == 0 },
		},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m := blockMask()
			applyMaskFilter(m, m.Bounds(), radius, tt.kind)

			check := func(name string, p image.Point, ok func(uint8) bool) {
				v := m.AlphaAt(p.X, p.Y).A
				assert.True(t, ok(v), "%s %v: coverage %d", name, p, v)
			}
			check("inside", inside, tt.inside)
			check("inner edge", edgeIn, tt.edgeIn)
			check("outer edge", edgeOut, tt.edgeOut)
			check("far", far, tt.far)
		})
	}
}

func TestMaskFilterStaysInRect(t *testing.T) {
	m := blockMask()
	applyMaskFilter(m, image.Rect(0, 0, 30, 60), 5, state.BlurNormal)
	assert.Equal(t, uint8(255), m.AlphaAt(35, 30).A)
	assert.Equal(t, uint8(0), m.AlphaAt(45, 30).A)
}
