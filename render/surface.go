package render

import (
	"image"

	"github.com/lixenwraith/beams/beam"
)

// Surface is a beam surface whose composited frame can be read back
type Surface interface {
	beam.Surface

	// Image returns the last composited frame, reused across frames
	Image() *image.RGBA

	// Frames returns the number of presented frames
	Frames() int

	// SetOnPresent registers a callback run after each Present
	SetOnPresent(fn func(img *image.RGBA))
}
