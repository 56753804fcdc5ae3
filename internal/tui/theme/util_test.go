package theme

import (
	"image/color"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#cba6f7", "#cba6f7"},
		{"cba6f7", "#cba6f7"},
		{"#fff", "#ffffff"},
		{"bogus", "#000000"},
		{"#12345", "#000000"},
		{"", "#000000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseHex(tt.in).Hex())
		})
	}
}

func TestInterpolateColor(t *testing.T) {
	assert.Equal(t, "#000000", InterpolateColor("#000000", "#ffffff", 0))
	assert.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 1))
	assert.Equal(t, "#808080", InterpolateColor("#000000", "#ffffff", 0.5))
	assert.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 1.5), "out of range is clamped")
	assert.Equal(t, "#cba6f7", InterpolateColor("nope", "#cba6f7", 1))
}

func TestHexToColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x11, G: 0x11, B: 0x1b, A: 0xff}, HexToColor("#11111b"))
	assert.Equal(t, color.RGBA{A: 0xff}, HexToColor("bogus"))
}

func TestApplyGradient(t *testing.T) {
	assert.Empty(t, ApplyGradient("", "#000000", "#ffffff"))
	assert.Equal(t, "taskr", ansi.Strip(ApplyGradient("taskr", "#000000", "#ffffff")))
}

func TestCurrent(t *testing.T) {
	defer SetCurrent(nil)

	assert.Equal(t, "catppuccin-mocha", Current().Name)

	custom := NewCatppuccinMocha()
	custom.Name = "custom"
	SetCurrent(custom)
	assert.Same(t, custom, Current())
	assert.NotNil(t, Current().S())
}
