// Package beam implements the beam field: a fixed set of softly pulsing diagonal light
// streaks that drift upward and are painted every animation frame onto a 2D surface.
//
// The field owns no goroutines. Frames come from a Scheduler, surface dimensions and
// resize notifications from a Viewport, and pixels go to a Surface. All randomness is
// drawn from an injected Source so a seeded field replays identically.
package beam
