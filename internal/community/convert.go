package community

import "github.com/marcus/daygrid/internal/styles"

// Convert maps a CommunityScheme onto a full grid ColorPalette.
func Convert(scheme *CommunityScheme) styles.ColorPalette {
	bg := scheme.Background
	dark := IsDark(bg)

	elapsed := scheme.SelectionBackground
	if elapsed == "" || styles.ContrastRatio(elapsed, bg) < 1.1 {
		elapsed = adjustBg(bg, 0.16, dark)
	}
	textPrimary := EnsureContrast(scheme.Foreground, bg, 4.5)
	textMuted := EnsureContrast(scheme.BrightBlack, bg, 3.0)

	return styles.ColorPalette{
		TextPrimary: textPrimary,
		TextMuted:   textMuted,
		BgPrimary:   bg,
		BgSecondary: adjustBg(bg, 0.08, dark),

		HeaderFg:    textMuted,
		GutterFg:    textPrimary,
		ElapsedBg:   elapsed,
		EventBg:     scheme.Blue,
		ScheduledBg: scheme.Purple,
		ClockedBg:   scheme.Green,
		TimedBg:     scheme.Cyan,
		ConflictBg:  scheme.Red,
		CursorBg:    scheme.Yellow,

		Success:      scheme.Green,
		Error:        scheme.Red,
		BorderActive: scheme.Blue,
	}
}

// PaletteToOverrides serializes a ColorPalette to the override map format of config.json.
func PaletteToOverrides(p styles.ColorPalette) map[string]interface{} {
	return map[string]interface{}{
		"textPrimary":  p.TextPrimary,
		"textMuted":    p.TextMuted,
		"bgPrimary":    p.BgPrimary,
		"bgSecondary":  p.BgSecondary,
		"headerFg":     p.HeaderFg,
		"gutterFg":     p.GutterFg,
		"elapsedBg":    p.ElapsedBg,
		"eventBg":      p.EventBg,
		"scheduledBg":  p.ScheduledBg,
		"clockedBg":    p.ClockedBg,
		"timedBg":      p.TimedBg,
		"conflictBg":   p.ConflictBg,
		"cursorBg":     p.CursorBg,
		"success":      p.Success,
		"error":        p.Error,
		"borderActive": p.BorderActive,
	}
}

// adjustBg lightens for dark themes, darkens for light themes.
func adjustBg(bg string, amount float64, isDark bool) string {
	if isDark {
		return Lighten(bg, amount)
	}
	return Darken(bg, amount)
}
