package community

import (
	"math"

	"github.com/marcus/daygrid/internal/styles"
)

// Blend mixes two hex colors: result = (1-t)*c1 + t*c2. t is clamped to [0,1].
func Blend(c1, c2 string, t float64) string {
	t = math.Max(0, math.Min(1, t))
	rgb1 := styles.HexToRGB(c1)
	rgb2 := styles.HexToRGB(c2)
	return styles.RGBToHex(styles.RGB{
		R: rgb1.R*(1-t) + rgb2.R*t,
		G: rgb1.G*(1-t) + rgb2.G*t,
		B: rgb1.B*(1-t) + rgb2.B*t,
	})
}

// Lighten moves hex toward white by pct (0-1).
func Lighten(hex string, pct float64) string {
	return Blend(hex, "#ffffff", pct)
}

// Darken moves hex toward black by pct (0-1).
func Darken(hex string, pct float64) string {
	return Blend(hex, "#000000", pct)
}

// IsDark reports whether a background wants light text.
func IsDark(hex string) bool {
	return styles.Luminance(hex) < 0.5
}

// EnsureContrast blends fg toward the better pole (white or black) until
// its contrast against bg reaches minRatio. fg is returned unchanged if
// it already passes.
func EnsureContrast(fg, bg string, minRatio float64) string {
	if styles.ContrastRatio(fg, bg) >= minRatio {
		return fg
	}
	pole := "#000000"
	if IsDark(bg) {
		pole = "#ffffff"
	}
	if styles.ContrastRatio(pole, bg) < minRatio {
		return pole
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < 16; i++ {
		mid := (lo + hi) / 2
		if styles.ContrastRatio(Blend(fg, pole, mid), bg) >= minRatio {
			hi = mid
		} else {
			lo = mid
		}
	}
	return Blend(fg, pole, hi)
}
