package beam

// FrameID identifies a scheduled frame callback
type FrameID uint64

// Scheduler delivers animation frames, one callback invocation per display refresh
type Scheduler interface {
	// RequestFrame schedules fn for the next frame
	RequestFrame(fn func()) FrameID

	// CancelFrame drops a pending callback, unknown ids are ignored
	CancelFrame(id FrameID)
}

// Viewport describes the host area the field covers
type Viewport interface {
	// Size returns the viewport extent in layout units
	Size() (width, height int)

	// PixelRatio returns surface pixels per layout unit
	PixelRatio() float64

	// OnResize registers fn for resize notifications and returns its deregistration
	OnResize(fn func()) (cancel func())
}

// ColorStop is one gradient stop; Alpha may exceed 1 and is clamped by the surface
type ColorStop struct {
	Offset float64
	Color  RGB
	Alpha  float64
}

// Stroke is one beam paint: a Width x Length rectangle spanning [-Width/2, Width/2] x [0, Length]
// in beam space, rotated by Angle (radians) around the anchor (X, Y) and filled with a
// linear gradient running along the length
type Stroke struct {
	X, Y   float64
	Angle  float64
	Width  float64
	Length float64
	Stops  [6]ColorStop
}

// Surface is a 2D drawing target
type Surface interface {
	// Resize sets the drawing buffer extent in surface pixels and clears it
	Resize(width, height int)

	// Clear erases the beam pass
	Clear()

	// SetBlur sets the blur radius for subsequent strokes
	SetBlur(radius float64)

	// FillStroke paints a stroke
	FillStroke(s Stroke)

	// Present commits the frame
	Present()
}
