package render

// Layer is a premultiplied RGBA float buffer, channels in [0, 1] after clamping
// Strokes accumulate additively so channel values may exceed 1 until composited
type Layer struct {
	Width, Height int
	Pix           []float32 // row-major, 4 floats per pixel
}

// Reset resizes the layer and zeroes it, reusing storage when possible
func (l *Layer) Reset(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	n := width * height * 4
	if cap(l.Pix) < n {
		l.Pix = make([]float32, n)
	} else {
		l.Pix = l.Pix[:n]
	}
	l.Width, l.Height = width, height
	l.Clear()
}

// Clear zeroes every channel
func (l *Layer) Clear() {
	clear(l.Pix)
}

// offset returns the index of pixel (x, y) or -1 outside the layer
func (l *Layer) offset(x, y int) int {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return -1
	}
	return (y*l.Width + x) * 4
}

// AddPremul accumulates a straight-alpha color at (x, y)
func (l *Layer) AddPremul(x, y int, r, g, b, a float32) {
	i := l.offset(x, y)
	if i < 0 {
		return
	}
	p := l.Pix[i : i+4 : i+4]
	p[0] += r * a
	p[1] += g * a
	p[2] += b * a
	p[3] += a
}

// At returns the clamped premultiplied channels at (x, y)
func (l *Layer) At(x, y int) (r, g, b, a float32) {
	i := l.offset(x, y)
	if i < 0 {
		return 0, 0, 0, 0
	}
	return clamp01(l.Pix[i]), clamp01(l.Pix[i+1]), clamp01(l.Pix[i+2]), clamp01(l.Pix[i+3])
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
