// Package view turns a rendered grid into output: plain text, ANSI text and
// a JSON region table.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/daygrid/internal/timeline"
)

// Resolver maps a timeline style token to a concrete terminal style.
type Resolver func(timeline.Style) lipgloss.Style

var (
	headerStyle  = timeline.NamedStyle("header")
	elapsedStyle = timeline.NamedStyle("elapsed")
	gutterStyle  = timeline.NamedStyle("gutter")
)

// Text renders the grid as plain rows joined by newlines.
func Text(g *timeline.Grid, gutter int) string {
	return strings.Join(g.Lines(gutter), "\n")
}

// ANSI renders the grid with terminal styling. Each run of cells sharing a
// style is emitted through one lipgloss style.
func ANSI(g *timeline.Grid, resolve Resolver, gutter int) string {
	lines := make([]string, len(g.Rows))
	for i, row := range g.Rows {
		lines[i] = ANSIRow(row, resolve, gutter)
	}
	return strings.Join(lines, "\n")
}

// ANSIRow renders a single row.
func ANSIRow(row timeline.Row, resolve Resolver, gutter int) string {
	if gutter < 1 {
		gutter = 1
	}
	var sb strings.Builder
	sb.WriteString(resolve(gutterStyle).Render(timeline.PadLabel(row.Label, gutter)))
	for _, r := range runs(row) {
		var text strings.Builder
		for _, c := range row.Cells[r.start:r.end] {
			text.WriteRune(c.Char)
		}
		sb.WriteString(r.key.resolved(resolve).Render(text.String()))
	}
	return sb.String()
}

// cellKey is what decides a cell's terminal style.
type cellKey struct {
	header   bool
	occupied bool
	elapsed  bool
	style    timeline.Style
}

func keyOf(kind timeline.RowKind, c timeline.Cell) cellKey {
	k := cellKey{header: kind == timeline.RowHeader, elapsed: c.Elapsed}
	if c.Occupied {
		k.occupied = true
		k.style = c.Style
	}
	return k
}

func (k cellKey) resolved(resolve Resolver) lipgloss.Style {
	switch {
	case k.header && k.elapsed:
		return resolve(headerStyle).Inherit(resolve(elapsedStyle))
	case k.header:
		return resolve(headerStyle)
	case k.occupied:
		return resolve(k.style)
	case k.elapsed:
		return resolve(elapsedStyle)
	default:
		return lipgloss.NewStyle()
	}
}

type run struct {
	start, end int // cell indices, end exclusive
	key        cellKey
}

// runs splits the cells after the label column into maximal equal-key runs.
func runs(row timeline.Row) []run {
	var out []run
	for i := 1; i < len(row.Cells); i++ {
		k := keyOf(row.Kind, row.Cells[i])
		if n := len(out); n > 0 && out[n-1].key == k {
			out[n-1].end = i + 1
			continue
		}
		out = append(out, run{start: i, end: i + 1, key: k})
	}
	return out
}
