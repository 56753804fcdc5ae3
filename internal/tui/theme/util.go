package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var black = colorful.Color{}

// parseHex reads "#rrggbb" or "#rgb", with or without the leading '#'.
// Anything else is black.
func parseHex(hex string) colorful.Color {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return black
	}
	return c
}

// InterpolateColor blends two hex colors in RGB space, pos running from
// 0 (colorA) to 1 (colorB).
func InterpolateColor(colorA, colorB string, pos float64) string {
	return parseHex(colorA).BlendRgb(parseHex(colorB), pos).Clamped().Hex()
}

// HexToColor converts a hex string to an opaque color.Color.
func HexToColor(hex string) color.Color {
	r, g, b := parseHex(hex).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// ApplyGradient renders text with a left-to-right foreground gradient.
func ApplyGradient(text, from, to string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	start, end := parseHex(from), parseHex(to)
	var sb strings.Builder
	for i, r := range runes {
		pos := 0.0
		if len(runes) > 1 {
			pos = float64(i) / float64(len(runes)-1)
		}
		c := start.BlendRgb(end, pos).Clamped()
		sb.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(r)))
	}
	return sb.String()
}
