package timeline

import "fmt"

// OverlapPolicy selects how a new region is tested against occupied cells.
type OverlapPolicy int

const (
	// OverlapEndpoints samples only the first and the end column of the new
	// region. Overlaps touching neither column go undetected.
	OverlapEndpoints OverlapPolicy = iota
	// OverlapRange scans every column of the new region.
	OverlapRange
)

func (p OverlapPolicy) String() string {
	if p == OverlapRange {
		return "range"
	}
	return "endpoints"
}

// ParseOverlapPolicy accepts "endpoints" or "range".
func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	switch s {
	case "", "endpoints":
		return OverlapEndpoints, nil
	case "range":
		return OverlapRange, nil
	}
	return OverlapEndpoints, fmt.Errorf("unknown overlap policy %q", s)
}

// Glyphs are the characters written into cells.
type Glyphs struct {
	Empty   rune
	Filled  rune
	Overlap rune
	Hour    rune
}

// DefaultGlyphs returns the plain-text glyph set.
func DefaultGlyphs() Glyphs {
	return Glyphs{Empty: ' ', Filled: '#', Overlap: 'X', Hour: '|'}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithNow injects the current instant in epoch minutes. Without it no
// cell is shaded as elapsed.
func WithNow(minute int) Option {
	return func(r *Renderer) {
		r.now = minute
		r.hasNow = true
	}
}

// WithConflictStyle sets the style stamped on overlapping regions.
func WithConflictStyle(s Style) Option {
	return func(r *Renderer) { r.conflict = s }
}

// WithOverlapPolicy selects the overlap test.
func WithOverlapPolicy(p OverlapPolicy) Option {
	return func(r *Renderer) { r.policy = p }
}

// WithGlyphs sets the cell characters.
func WithGlyphs(g Glyphs) Option {
	return func(r *Renderer) { r.glyphs = g }
}

// WithDayLabel sets the label function for day-rows.
func WithDayLabel(fn func(day int) string) Option {
	return func(r *Renderer) { r.dayLabel = fn }
}

// Renderer lays canonical intervals out on a Grid. A Renderer holds no
// state between calls and may be shared.
type Renderer struct {
	layout   Layout
	now      int
	hasNow   bool
	conflict Style
	policy   OverlapPolicy
	glyphs   Glyphs
	dayLabel func(day int) string
}

// NewRenderer creates a renderer for layout.
func NewRenderer(layout Layout, opts ...Option) *Renderer {
	r := &Renderer{
		layout:   layout,
		conflict: NamedStyle("conflict"),
		glyphs:   DefaultGlyphs(),
		dayLabel: WeekdayLabel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WeekdayLabel labels a day-row with its weekday abbreviation.
func WeekdayLabel(day int) string {
	return DayTime(day).Format("Mon")
}

// Render paints intervals, which must be sorted by ascending Start, onto
// a fresh grid. Days between the first and last interval get a row even
// when nothing starts on them.
func (r *Renderer) Render(intervals []Interval) (*Grid, error) {
	if err := r.layout.Validate(); err != nil {
		return nil, err
	}
	if err := checkIntervals(intervals); err != nil {
		return nil, err
	}

	g := &Grid{Layout: r.layout}
	g.Rows = append(g.Rows, r.headerRow())

	var currentDay int
	for i, iv := range intervals {
		day := iv.Day()
		if i == 0 {
			currentDay = day
			g.Rows = append(g.Rows, r.dayRow(day))
		}
		for currentDay < day {
			currentDay++
			g.Rows = append(g.Rows, r.dayRow(currentDay))
		}
		r.paint(g, len(g.Rows)-1, iv)
	}
	return g, nil
}

func (r *Renderer) blankCells() []Cell {
	cells := make([]Cell, r.layout.Width())
	for i := range cells {
		cells[i].Char = r.glyphs.Empty
	}
	return cells
}

func (r *Renderer) headerRow() Row {
	row := Row{Kind: RowHeader, Cells: r.blankCells()}
	perHour := 60 / r.layout.Quantum
	for _, m := range r.layout.HourMarks() {
		var text []rune
		switch {
		case perHour >= 3:
			text = []rune(fmt.Sprintf("%c%02d", r.glyphs.Hour, m.Hour))
		case perHour == 2:
			text = []rune(fmt.Sprintf("%02d", m.Hour))
		default:
			text = []rune{r.glyphs.Hour}
		}
		for i, ch := range text {
			if c := m.Column + i; c < len(row.Cells) {
				row.Cells[c].Char = ch
			}
		}
	}
	if r.hasNow {
		r.shade(row.Cells)
	}
	return row
}

func (r *Renderer) dayRow(day int) Row {
	row := Row{Kind: RowDay, Day: day, Label: r.dayLabel(day), Cells: r.blankCells()}
	if r.hasNow && day == floorDiv(r.now, MinutesPerDay) {
		r.shade(row.Cells)
	}
	return row
}

// shade marks the cells before now's column as elapsed.
func (r *Renderer) shade(cells []Cell) {
	nowCol := r.layout.Column(floorMod(r.now, MinutesPerDay))
	for c := 1; c < nowCol && c < len(cells); c++ {
		cells[c].Elapsed = true
	}
}

// span maps an interval to columns of its start day. An interval that
// would leave the row is clamped to the row end. The wrap is decided in
// minutes: a span ending in its own start column a day later still wraps.
func (r *Renderer) span(iv Interval) (start, end int) {
	startOfDay := floorMod(iv.Start, MinutesPerDay)
	start = r.layout.Column(startOfDay)
	rel := floorMod(startOfDay-r.layout.DayStartOffset, MinutesPerDay)
	if rel+iv.Duration() >= MinutesPerDay {
		return start, r.layout.Width()
	}
	return start, r.layout.Column(floorMod(iv.End, MinutesPerDay))
}

func (r *Renderer) overlaps(cells []Cell, start, end int) bool {
	if r.policy == OverlapRange {
		hi := end
		if hi == start {
			hi = start + 1
		}
		for c := start; c < hi && c < len(cells); c++ {
			if cells[c].Occupied {
				return true
			}
		}
		return false
	}
	if cells[start].Occupied {
		return true
	}
	return end < len(cells) && cells[end].Occupied
}

func (r *Renderer) paint(g *Grid, rowIndex int, iv Interval) {
	row := &g.Rows[rowIndex]
	start, end := r.span(iv)
	overlap := r.overlaps(row.Cells, start, end)
	if end == start {
		// point events still take one cell
		end = start + 1
	}

	style, glyph := iv.Style, r.glyphs.Filled
	if overlap {
		style, glyph = r.conflict, r.glyphs.Overlap
	}
	for c := start; c < end; c++ {
		cell := &row.Cells[c]
		cell.Char = glyph
		cell.Style = style
		cell.Occupied = true
		if overlap {
			cell.Overlap = true
		}
		if iv.Label != "" {
			cell.Label = iv.Label
		}
	}
	row.Regions = append(row.Regions, Region{
		Row:         rowIndex,
		StartColumn: start,
		EndColumn:   end,
		Style:       style,
		Overlap:     overlap,
		Label:       iv.Label,
		Interval:    iv,
	})
}
