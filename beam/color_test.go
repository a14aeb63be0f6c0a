package beam

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToHue(t *testing.T) {
	tests := []struct {
		hex  string
		want float64
	}{
		{"#ff0000", 0},
		{"#ffff00", 60},
		{"#00ff00", 120},
		{"#00ffff", 180},
		{"#0000ff", 240},
		{"#ff00ff", 300},
		{"#9058ff", 60 * (4 + 56.0/167.0)},
		{"9058ff", 60 * (4 + 56.0/167.0)},
		{"#9058FF", 60 * (4 + 56.0/167.0)},
		{"#f00", 0},
		{"#0f0", 120},
		{"#808080", 0},
		{"#ffffff", 0},
		{"#000000", 0},
		{"#fff", 0},
		{"not-a-color", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			assert.InDelta(t, tt.want, HexToHue(tt.hex), 1e-9)
		})
	}
}

func TestHexToHuePurpleExample(t *testing.T) {
	// 56/167 of the way from blue toward red
	assert.InDelta(t, 260.12, HexToHue("#9058ff"), 0.01)
}

func TestHexToHueRange(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)
				h := HexToHue(hex)
				require.GreaterOrEqual(t, h, 0.0, hex)
				require.Less(t, h, 360.0, hex)
				if r == g && g == b {
					require.Zero(t, h, hex)
				}
			}
		}
	}
}

func TestHexToHueRedMaxBelowZero(t *testing.T) {
	// Red max with blue above green wraps into the top of the circle
	h := HexToHue("#ff0080")
	assert.Greater(t, h, 300.0)
	assert.Less(t, h, 360.0)
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#ffffff", "#c8c8ff"},
		{"#FFFFFF", "#c8c8ff"},
		{"#fff", "#c8c8ff"},
		{"#9058ff", "#7030ff"},
		{"#9058FF", "#7030ff"},
		{"#F4F8D3", "#FFF2AF"},
		{"#f4f8d3", "#FFF2AF"},
		{"#FFF2AF", "#FFF2AF"},
		{"#123456", "#123456"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Substitute(tt.in), tt.in)
	}
}

func TestParseHex(t *testing.T) {
	c, ok := ParseHex("#7030ff")
	require.True(t, ok)
	assert.Equal(t, RGB{R: 0x70, G: 0x30, B: 0xff}, c)

	c, ok = ParseHex("#abc")
	require.True(t, ok)
	assert.Equal(t, RGB{R: 0xaa, G: 0xbb, B: 0xcc}, c)

	_, ok = ParseHex("#12345")
	assert.False(t, ok)
}

func TestParseHexIgnoresAlpha(t *testing.T) {
	c, ok := ParseHex("#7030ff80")
	require.True(t, ok)
	assert.Equal(t, RGB{R: 0x70, G: 0x30, B: 0xff}, c)

	c, ok = ParseHex("abc0")
	require.True(t, ok)
	assert.Equal(t, RGB{R: 0xaa, G: 0xbb, B: 0xcc}, c)

	_, ok = ParseHex("#7030ffzz")
	assert.False(t, ok)

	assert.InDelta(t, HexToHue("#9058ff"), HexToHue("#9058ffcc"), 1e-9)
}

func TestPaletteIndex(t *testing.T) {
	tests := []struct {
		hue  float64
		n    int
		want int
	}{
		{0, 3, 0},
		{119.9, 3, 0},
		{120, 3, 1},
		{260.12, 3, 2},
		{359.9, 3, 2},
		{360, 3, 0},
		{45, 1, 0},
		{45, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PaletteIndex(tt.hue, tt.n), "hue=%v n=%d", tt.hue, tt.n)
	}
}

func TestHueColor(t *testing.T) {
	red := HueColor(0)
	assert.Greater(t, red.R, uint8(200))
	assert.Zero(t, red.G)
	assert.Zero(t, red.B)

	blue := HueColor(240)
	assert.Greater(t, blue.B, uint8(200))
	assert.Zero(t, blue.R)
	assert.Zero(t, blue.G)
}
