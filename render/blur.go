package render

import (
	"math"
)

// blurPasses is the number of box passes approximating one gaussian
const blurPasses = 3

// boxSizes returns odd box widths whose successive application approximates a gaussian of sigma
func boxSizes(sigma float64, n int) []int {
	wIdeal := math.Sqrt(12*sigma*sigma/float64(n) + 1)
	wl := int(math.Floor(wIdeal))
	if wl%2 == 0 {
		wl--
	}
	wu := wl + 2

	mIdeal := (12*sigma*sigma - float64(n*wl*wl) - 4*float64(n*wl) - 3*float64(n)) / (-4*float64(wl) - 4)
	m := int(math.Round(mIdeal))

	sizes := make([]int, n)
	for i := range sizes {
		if i < m {
			sizes[i] = wl
		} else {
			sizes[i] = wu
		}
	}
	return sizes
}

// blurrer owns scratch storage for layer blurs
type blurrer struct {
	scratch []float32
}

// blur applies a gaussian-like blur of sigma pixels in place; the area outside the layer is transparent
func (b *blurrer) blur(l *Layer, sigma float64) {
	if sigma < 0.5 || l.Width == 0 || l.Height == 0 {
		return
	}
	if cap(b.scratch) < len(l.Pix) {
		b.scratch = make([]float32, len(l.Pix))
	}
	tmp := b.scratch[:len(l.Pix)]

	for _, size := range boxSizes(sigma, blurPasses) {
		r := (size - 1) / 2
		boxBlur(l.Pix, tmp, l.Width, l.Height, r, 4, l.Width*4)
		boxBlur(tmp, l.Pix, l.Height, l.Width, r, l.Width*4, 4)
	}
}

// boxBlur runs a 1D box of radius r along lines of n samples
// step is the distance between samples of a line, stride between lines
func boxBlur(src, dst []float32, n, lines, r, step, stride int) {
	if r <= 0 {
		copy(dst, src)
		return
	}
	inv := 1 / float32(2*r+1)

	for line := 0; line < lines; line++ {
		base := line * stride
		var acc [4]float32

		for i := 0; i <= r && i < n; i++ {
			p := base + i*step
			acc[0] += src[p]
			acc[1] += src[p+1]
			acc[2] += src[p+2]
			acc[3] += src[p+3]
		}

		for i := 0; i < n; i++ {
			p := base + i*step
			dst[p] = acc[0] * inv
			dst[p+1] = acc[1] * inv
			dst[p+2] = acc[2] * inv
			dst[p+3] = acc[3] * inv

			if in := i + r + 1; in < n {
				q := base + in*step
				acc[0] += src[q]
				acc[1] += src[q+1]
				acc[2] += src[q+2]
				acc[3] += src[q+3]
			}
			if out := i - r; out >= 0 {
				q := base + out*step
				acc[0] -= src[q]
				acc[1] -= src[q+1]
				acc[2] -= src[q+2]
				acc[3] -= src[q+3]
			}
		}
	}
}
