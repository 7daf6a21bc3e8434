package paint

import (
	"image"
	"math"
	"sync"

	"PaintBoard/internal/state"
)

// blurSigma converts a mask filter radius to the Gaussian standard
// deviation, using the same mapping as common 2D mask filters.
func blurSigma(radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return 0.57735*radius + 0.5
}

// blurExtent is how far a blur spreads coverage beyond the stroke edge.
func blurExtent(radius float64) int {
	return int(math.Ceil(blurSigma(radius) * 3))
}

// gaussianKernel returns a normalized 1D kernel of size 2*ceil(3σ)+1.
func gaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}
	half := int(math.Ceil(sigma * 3))
	kernel := make([]float32, half*2+1)
	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// Brush widths repeat constantly, so kernels are cached by radius.
var kernels = struct {
	mu sync.RWMutex
	m  map[float64][]float32
}{m: make(map[float64][]float32)}

func cachedKernel(radius float64) []float32 {
	kernels.mu.RLock()
	k, ok := kernels.m[radius]
	kernels.mu.RUnlock()
	if ok {
		return k
	}
	k = gaussianKernel(blurSigma(radius))
	kernels.mu.Lock()
	kernels.m[radius] = k
	kernels.mu.Unlock()
	return k
}

// applyMaskFilter rewrites the coverage of mask inside r according to kind.
// Coverage outside r is taken as zero.
func applyMaskFilter(mask *image.Alpha, r image.Rectangle, radius float64, kind state.BlurKind) {
	r = r.Intersect(mask.Bounds())
	if r.Empty() {
		return
	}
	blurred := gaussianBlur(mask, r, cachedKernel(radius))

	w := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := mask.Pix[mask.PixOffset(r.Min.X, y):]
		brow := blurred[(y-r.Min.Y)*w:]
		for x := 0; x < w; x++ {
			m, b := int(row[x]), int(brow[x])
			switch kind {
			case state.BlurNormal:
				m = b
			case state.BlurSolid:
				m = max(m, b)
			case state.BlurOuter:
				m = (b*(255-m) + 127) / 255
			case state.BlurInner:
				m = (b*m + 127) / 255
			}
			row[x] = uint8(m)
		}
	}
}

// gaussianBlur runs a separable blur over r: a horizontal pass into a
// float buffer, then a vertical pass back to 8-bit coverage.
func gaussianBlur(mask *image.Alpha, r image.Rectangle, kernel []float32) []uint8 {
	w, h := r.Dx(), r.Dy()
	half := len(kernel) / 2
	temp := make([]float32, w*h)

	for y := 0; y < h; y++ {
		row := mask.Pix[mask.PixOffset(r.Min.X, r.Min.Y+y):]
		for x := 0; x < w; x++ {
			var acc float32
			for k, weight := range kernel {
				kx := x + k - half
				if kx < 0 || kx >= w {
					continue
				}
				acc += float32(row[kx]) * weight
			}
			temp[y*w+x] = acc
		}
	}

	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float32
			for k, weight := range kernel {
				ky := y + k - half
				if ky < 0 || ky >= h {
					continue
				}
				acc += temp[ky*w+x] * weight
			}
			out[y*w+x] = clampUint8(acc)
		}
	}
	return out
}

func clampUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
