package beam

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels
type RGB struct {
	R, G, B uint8
}

// Beam paint lightness and saturation for hue-derived colors
const (
	hueSaturation = 1.0
	hueLightness  = 0.45
)

// substitutions route palette colors that wash out on a light container to higher-contrast paints
var substitutions = map[string]string{
	"#ffffff": "#c8c8ff",
	"#fff":    "#c8c8ff",
	"#9058ff": "#7030ff",
	"#f4f8d3": "#FFF2AF",
}

// Substitute returns the paint used for a palette color
func Substitute(hex string) string {
	if sub, ok := substitutions[strings.ToLower(strings.TrimSpace(hex))]; ok {
		return sub
	}
	return hex
}

// ParseHex parses #rgb, #rgba, #rrggbb or #rrggbbaa, the leading # is optional
// Alpha digits are validated and ignored
func ParseHex(hex string) (RGB, bool) {
	digits := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	for _, r := range digits {
		if !isHexDigit(r) {
			return RGB{}, false
		}
	}
	switch len(digits) {
	case 3, 6:
	case 4, 8:
		digits = digits[:len(digits)*3/4]
	default:
		return RGB{}, false
	}
	c, err := colorful.Hex("#" + strings.ToLower(digits))
	if err != nil {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// HexToHue extracts the HSL hue in degrees [0, 360) of a hex color
// Achromatic and unparsable colors map to 0
func HexToHue(hex string) float64 {
	c, ok := ParseHex(hex)
	if !ok {
		return 0
	}
	return rgbHue(c)
}

func rgbHue(c RGB) float64 {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	hi := max(r, g, b)
	lo := min(r, g, b)
	if hi == lo {
		return 0
	}

	d := hi - lo
	var h float64
	switch hi {
	case r:
		// (g-b)/d lies in [-1, 1]; adding 6 below zero is the mod 6
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60
}

// HueColor returns the paint for a hue at the fixed beam saturation and lightness
func HueColor(hue float64) RGB {
	r, g, b := colorful.Hsl(hue, hueSaturation, hueLightness).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// PaletteIndex maps a beam hue back onto the palette: floor(hue/360*n) mod n
func PaletteIndex(hue float64, n int) int {
	if n <= 0 {
		return 0
	}
	idx := int(hue / 360 * float64(n))
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
