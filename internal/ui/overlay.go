// Package ui provides compositing helpers for the viewer: popups drawn over
// a rendered grid.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle applies a dim gray color to background content behind modals.
// Existing ANSI codes are stripped first because SGR 2 (faint) doesn't
// reliably combine with existing color codes in most terminals.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// maxLineWidth returns the maximum visual width of the given lines.
func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// dimLine strips ANSI codes and applies dim gray styling.
func dimLine(s string) string {
	return DimStyle.Render(ansi.Strip(s))
}

// compositeRow puts boxLine over bgLine starting at column x. With dim the
// background is stripped and grayed; otherwise its styling is kept.
func compositeRow(bgLine, boxLine string, x, boxWidth int, dim bool) string {
	var result strings.Builder

	src := bgLine
	if dim {
		src = ansi.Strip(bgLine)
	}
	bgWidth := ansi.StringWidth(src)
	paint := func(s string) string {
		if dim {
			return DimStyle.Render(s)
		}
		return s
	}

	if x > 0 {
		left := ansi.Truncate(src, x, "")
		result.WriteString(paint(left))
		if w := ansi.StringWidth(left); w < x {
			result.WriteString(strings.Repeat(" ", x-w))
		}
	}

	result.WriteString(boxLine)
	if pad := boxWidth - ansi.StringWidth(boxLine); pad > 0 {
		result.WriteString(strings.Repeat(" ", pad))
	}

	if right := x + boxWidth; bgWidth > right {
		result.WriteString(paint(ansi.Cut(src, right, bgWidth)))
	}
	return result.String()
}

// Overlay draws box over background with its top-left corner at (x, y),
// shifted as needed to stay inside width x height. The result has exactly
// height lines.
func Overlay(background, box string, x, y, width, height int, dim bool) string {
	bgLines := strings.Split(background, "\n")
	boxLines := strings.Split(box, "\n")
	boxWidth := maxLineWidth(boxLines)

	x = clampOrigin(x, boxWidth, width)
	y = clampOrigin(y, len(boxLines), height)

	result := make([]string, 0, height)
	for row := 0; row < height; row++ {
		bgLine := ""
		if row < len(bgLines) {
			bgLine = bgLines[row]
		}
		if i := row - y; i >= 0 && i < len(boxLines) {
			result = append(result, compositeRow(bgLine, boxLines[i], x, boxWidth, dim))
		} else if dim {
			result = append(result, dimLine(bgLine))
		} else {
			result = append(result, bgLine)
		}
	}
	return strings.Join(result, "\n")
}

// OverlayModal composites a modal centered on a dimmed background.
func OverlayModal(background, modal string, width, height int) string {
	lines := strings.Split(modal, "\n")
	x := (width - maxLineWidth(lines)) / 2
	y := (height - len(lines)) / 2
	return Overlay(background, modal, x, y, width, height, true)
}

// PopupOrigin places a boxW x boxH popup next to an anchor cell: below and
// to the right when it fits, otherwise above or to the left.
func PopupOrigin(anchorX, anchorY, boxW, boxH, width, height int) (x, y int) {
	x = anchorX + 1
	if x+boxW > width {
		x = anchorX - boxW
	}
	y = anchorY + 1
	if y+boxH > height {
		y = anchorY - boxH
	}
	return clampOrigin(x, boxW, width), clampOrigin(y, boxH, height)
}

func clampOrigin(pos, size, limit int) int {
	if pos+size > limit {
		pos = limit - size
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}
