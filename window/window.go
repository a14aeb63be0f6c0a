// Package window hosts a beam field in a desktop window.
//
// The ebiten host is compiled with the gui build tag; without it Run reports
// ErrUnavailable so headless builds carry no graphics dependencies.
package window

import (
	"errors"

	"go.uber.org/zap"

	"github.com/lixenwraith/beams/beam"
	"github.com/lixenwraith/beams/render"
)

// ErrUnavailable is returned by Run in builds without the gui tag
var ErrUnavailable = errors.New("window host unavailable: built without the gui tag")

// Options configures the window host
type Options struct {
	Title         string
	Width, Height int // logical window size
	Config        beam.Config
	Surface       render.Surface
	Logger        *zap.Logger
	FieldOptions  []beam.Option
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "beams"
	}
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Surface == nil {
		o.Surface = render.NewRaster(2, render.DefaultBackdrop())
	}
	return o
}

// action is the effect of one key press
type action uint8

const (
	actionNone action = iota
	actionConfigure
	actionQuit
)

// keyAction maps a key to a configuration change: 1/2/3 intensity, c color mode, q quit
func keyAction(cfg beam.Config, key rune) (beam.Config, action) {
	switch key {
	case 'q', 'Q':
		return cfg, actionQuit
	case '1':
		cfg.Intensity = beam.IntensitySubtle
	case '2':
		cfg.Intensity = beam.IntensityMedium
	case '3':
		cfg.Intensity = beam.IntensityStrong
	case 'c', 'C':
		if cfg.ColorMode == beam.ColorModeCustom {
			cfg.ColorMode = beam.ColorModeDefault
		} else {
			cfg.ColorMode = beam.ColorModeCustom
		}
	default:
		return cfg, actionNone
	}
	return cfg, actionConfigure
}
