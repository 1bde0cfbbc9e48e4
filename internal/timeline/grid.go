package timeline

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/mattn/go-runewidth"
)

// RowKind distinguishes the header from day-rows.
type RowKind int

const (
	RowHeader RowKind = iota
	RowDay
)

// Cell is one quantum of one row.
type Cell struct {
	Char     rune
	Style    Style
	Occupied bool   // claimed by some interval
	Overlap  bool   // painted with the conflict style
	Elapsed  bool   // before the injected now on the current day
	Label    string // annotation of the region covering the cell
}

// Region describes one painted interval: columns [StartColumn, EndColumn)
// of row Row.
type Region struct {
	Row         int
	StartColumn int
	EndColumn   int
	Style       Style
	Overlap     bool
	Label       string
	Interval    Interval // the interval painted, before clamping
}

// Contains reports whether column lies inside the region.
func (r Region) Contains(column int) bool {
	return column >= r.StartColumn && column < r.EndColumn
}

// Row is the header or a single calendar day.
type Row struct {
	Kind    RowKind
	Day     int // absolute day; zero for the header
	Label   string
	Cells   []Cell
	Regions []Region // in paint order
}

// Grid is the rendered timeline. Rows[0] is the header.
type Grid struct {
	Layout Layout
	Rows   []Row
}

// Header returns the header row.
func (g *Grid) Header() Row {
	return g.Rows[0]
}

// Days returns the day-rows.
func (g *Grid) Days() []Row {
	return g.Rows[1:]
}

// Width returns the number of cells per row.
func (g *Grid) Width() int {
	return g.Layout.Width()
}

// Regions returns every region, by row and then in paint order.
func (g *Grid) Regions() []Region {
	var out []Region
	for _, row := range g.Rows {
		out = append(out, row.Regions...)
	}
	return out
}

// RegionAt returns the last-painted region covering a cell.
func (g *Grid) RegionAt(row, column int) (Region, bool) {
	if row < 0 || row >= len(g.Rows) {
		return Region{}, false
	}
	regions := g.Rows[row].Regions
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].Contains(column) {
			return regions[i], true
		}
	}
	return Region{}, false
}

// Lines renders each row as plain text with the label column padded to
// gutter display cells.
func (g *Grid) Lines(gutter int) []string {
	if gutter < 1 {
		gutter = 1
	}
	lines := make([]string, len(g.Rows))
	for i, row := range g.Rows {
		var sb strings.Builder
		sb.WriteString(PadLabel(row.Label, gutter))
		for _, cell := range row.Cells[1:] {
			sb.WriteRune(cell.Char)
		}
		lines[i] = sb.String()
	}
	return lines
}

// String renders the grid with a one-cell gutter.
func (g *Grid) String() string {
	return strings.Join(g.Lines(1), "\n")
}

// Fingerprint hashes the text and region table of the grid.
func (g *Grid) Fingerprint() uint64 {
	d := xxhash.New()
	for _, line := range g.Lines(1) {
		_, _ = d.WriteString(line)
		_, _ = d.WriteString("\n")
	}
	for _, row := range g.Rows {
		_, _ = d.WriteString(row.Label)
		for _, c := range row.Cells {
			if c.Elapsed {
				_, _ = d.WriteString("e")
			} else {
				_, _ = d.WriteString("_")
			}
		}
		for _, r := range row.Regions {
			_, _ = d.WriteString(strconv.Itoa(r.Row))
			_, _ = d.WriteString(":")
			_, _ = d.WriteString(strconv.Itoa(r.StartColumn))
			_, _ = d.WriteString("-")
			_, _ = d.WriteString(strconv.Itoa(r.EndColumn))
			_, _ = d.WriteString(r.Style.String())
			_, _ = d.WriteString(strconv.FormatBool(r.Overlap))
			_, _ = d.WriteString(r.Label)
			_, _ = d.WriteString(";")
		}
	}
	return d.Sum64()
}

// PadLabel truncates or pads a label to exactly width display cells.
func PadLabel(label string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(label, width, ""), width)
}
