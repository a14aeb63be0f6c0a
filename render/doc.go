// Package render rasterizes beam strokes and composites them onto a backdrop.
//
// Two surfaces implement beam.Surface: Raster, a software rasterizer that accumulates
// strokes into a premultiplied float layer, and Canvas, which paints through an
// HTML5-canvas style API. Both hand their beam layer to a Backdrop, which applies the
// blur passes, the container background and the animated translucency overlay, and
// produces an opaque RGBA frame.
package render
