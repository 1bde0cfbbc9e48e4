package styles

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RGB is a color with float channels in 0-255.
type RGB struct {
	R, G, B float64
}

// HexToRGB parses #RRGGBB (alpha ignored). Invalid input yields black.
func HexToRGB(hex string) RGB {
	if !IsValidHexColor(hex) {
		return RGB{}
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#")[:6], 16, 32)
	if err != nil {
		return RGB{}
	}
	return RGB{R: float64(v >> 16 & 0xFF), G: float64(v >> 8 & 0xFF), B: float64(v & 0xFF)}
}

func contrastRatio(fg, bg RGB) float64 {
	l1 := relativeLuminance(fg)
	l2 := relativeLuminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(c RGB) float64 {
	r := linearize(c.R / 255.0)
	g := linearize(c.G / 255.0)
	b := linearize(c.B / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ReadableForeground picks black or white, whichever contrasts more with
// a hex background.
func ReadableForeground(bg string) string {
	c := HexToRGB(bg)
	if contrastRatio(RGB{0, 0, 0}, c) >= contrastRatio(RGB{255, 255, 255}, c) {
		return "#000000"
	}
	return "#FFFFFF"
}

// readableOn returns a foreground for bg. Non-hex colors keep TextPrimary.
func readableOn(bg lipgloss.Color) lipgloss.Color {
	if !IsValidHexColor(string(bg)) {
		return TextPrimary
	}
	return lipgloss.Color(ReadableForeground(string(bg)))
}

// RGBToHex formats c as lowercase #rrggbb, clamping channels.
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// Luminance returns the relative luminance (0-1) of a hex color.
func Luminance(hex string) float64 {
	return relativeLuminance(HexToRGB(hex))
}

// ContrastRatio returns the WCAG contrast ratio (1 to 21) of two hex colors.
func ContrastRatio(fg, bg string) float64 {
	return contrastRatio(HexToRGB(fg), HexToRGB(bg))
}
