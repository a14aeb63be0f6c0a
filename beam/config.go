package beam

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownIntensity = errors.New("unknown intensity")
	ErrUnknownColorMode = errors.New("unknown color mode")
)

// Intensity is a named opacity multiplier applied to every beam
type Intensity uint8

const (
	IntensitySubtle Intensity = iota
	IntensityMedium
	IntensityStrong
)

// intensityFactors keeps medium far dimmer than subtle; the ordering is intentional product behavior
var intensityFactors = [...]float64{
	IntensitySubtle: 0.8,
	IntensityMedium: 0.10,
	IntensityStrong: 1.0,
}

var intensityNames = [...]string{
	IntensitySubtle: "subtle",
	IntensityMedium: "medium",
	IntensityStrong: "strong",
}

// Factor returns the opacity multiplier, strong for out-of-range values
func (i Intensity) Factor() float64 {
	if int(i) >= len(intensityFactors) {
		return intensityFactors[IntensityStrong]
	}
	return intensityFactors[i]
}

func (i Intensity) String() string {
	if int(i) >= len(intensityNames) {
		return fmt.Sprintf("Intensity(%d)", uint8(i))
	}
	return intensityNames[i]
}

// ParseIntensity accepts subtle, medium or strong (case-insensitive)
func ParseIntensity(s string) (Intensity, error) {
	for i, name := range intensityNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Intensity(i), nil
		}
	}
	return IntensityStrong, fmt.Errorf("%w: %q", ErrUnknownIntensity, s)
}

// ColorMode selects how beam hues are derived
type ColorMode uint8

const (
	ColorModeDefault ColorMode = iota // hue band 190..260
	ColorModeCustom                   // hues from CustomColors
)

func (m ColorMode) String() string {
	switch m {
	case ColorModeDefault:
		return "default"
	case ColorModeCustom:
		return "custom"
	}
	return fmt.Sprintf("ColorMode(%d)", uint8(m))
}

// ParseColorMode accepts default or custom (case-insensitive)
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default":
		return ColorModeDefault, nil
	case "custom":
		return ColorModeCustom, nil
	}
	return ColorModeDefault, fmt.Errorf("%w: %q", ErrUnknownColorMode, s)
}

const (
	DefaultMinimumBeams = 20
	DefaultBlur         = 30.0
	DefaultBackground   = "#ffffff"
)

// DefaultCustomColors is the palette the backdrop ships with
var DefaultCustomColors = []string{"#ffffff", "#9058ff", "#FFF2AF"}

// Config is the construction-time field configuration
type Config struct {
	Intensity    Intensity
	ColorMode    ColorMode
	CustomColors []string

	// Background is a cosmetic container color consumed by hosts, the field never reads it
	Background string

	// MinimumBeams scaled by 1.5 gives the beam count
	MinimumBeams int

	// Blur is the beam-pass blur radius in surface units
	Blur float64
}

// DefaultConfig mirrors the backdrop defaults: strong, custom palette, white container
func DefaultConfig() Config {
	return Config{
		Intensity:    IntensityStrong,
		ColorMode:    ColorModeCustom,
		CustomColors: append([]string(nil), DefaultCustomColors...),
		Background:   DefaultBackground,
		MinimumBeams: DefaultMinimumBeams,
		Blur:         DefaultBlur,
	}
}

// BeamCount returns round(MinimumBeams * 1.5)
func (c Config) BeamCount() int {
	n := c.MinimumBeams
	if n <= 0 {
		n = DefaultMinimumBeams
	}
	return (n*3 + 1) / 2
}

// palette returns the active custom palette, nil when default hues apply
func (c Config) palette() []string {
	if c.ColorMode != ColorModeCustom || len(c.CustomColors) == 0 {
		return nil
	}
	return c.CustomColors
}

// clone detaches the palette slice from the caller
func (c Config) clone() Config {
	c.CustomColors = append([]string(nil), c.CustomColors...)
	return c
}
