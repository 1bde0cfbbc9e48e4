// Package viewer is the interactive grid viewer built on Bubble Tea.
package viewer

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/daygrid/internal/mouse"
	"github.com/marcus/daygrid/internal/msg"
	"github.com/marcus/daygrid/internal/state"
	"github.com/marcus/daygrid/internal/styles"
	"github.com/marcus/daygrid/internal/timeline"
	"github.com/marcus/daygrid/internal/view"
)

// chromeLines is the title, header and footer around the viewport.
const chromeLines = 3

// Request is what the viewer asks a Loader to render.
type Request struct {
	Now     int // epoch minute
	Overlap timeline.OverlapPolicy
}

// Loader produces a fresh grid, typically by re-reading the source.
type Loader func(Request) (*timeline.Grid, error)

type (
	gridMsg struct {
		grid *timeline.Grid
		now  int
		err  error
	}
	tickMsg        time.Time
	fileChangedMsg struct{}
)

// Option configures a Model.
type Option func(*Model)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(m *Model) { m.clock = clock }
}

// WithWatch reloads whenever ch delivers.
func WithWatch(ch <-chan struct{}) Option {
	return func(m *Model) { m.watch = ch }
}

// WithRefreshInterval sets how often now is re-read. Zero disables it.
func WithRefreshInterval(d time.Duration) Option {
	return func(m *Model) { m.refresh = d }
}

// WithGutter sets the label column width.
func WithGutter(n int) Option {
	return func(m *Model) { m.gutter = n }
}

// WithOverlap sets the initial overlap policy.
func WithOverlap(p timeline.OverlapPolicy) Option {
	return func(m *Model) { m.overlap = p }
}

// WithTitle sets the text shown in the title bar, usually the source path.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copy = write }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// Model is the viewer state.
type Model struct {
	load    Loader
	clock   func() time.Time
	watch   <-chan struct{}
	refresh time.Duration
	gutter  int
	overlap timeline.OverlapPolicy
	title   string
	copy    func(string) error
	logger  *slog.Logger

	grid        *timeline.Grid
	fingerprint uint64
	layouts     int
	now         int

	cursorRow  int // index into grid.Rows; 0 when there are no days
	cursorCol  int
	showDetail bool

	keys     keyMap
	mouse    *mouse.Handler
	help     help.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool

	statusMsg     string
	statusIsError bool
	statusExpiry  time.Time
}

// New creates a viewer over load.
func New(load Loader, opts ...Option) Model {
	m := Model{
		load:    load,
		clock:   time.Now,
		refresh: time.Minute,
		gutter:  4,
		copy:    clipboard.WriteAll,
		logger:  slog.Default(),
		keys:    keys,
		mouse:   mouse.NewHandler(),
		help:    help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts loading, the clock and the file watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd(), m.watchCmd())
}

func (m Model) loadCmd() tea.Cmd {
	load := m.load
	req := Request{Now: timeline.MinuteOf(m.clock()), Overlap: m.overlap}
	return func() tea.Msg {
		g, err := load(req)
		return gridMsg{grid: g, now: req.Now, err: err}
	}
}

func (m Model) tickCmd() tea.Cmd {
	if m.refresh <= 0 {
		return nil
	}
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) watchCmd() tea.Cmd {
	ch := m.watch
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(text string, duration time.Duration, isError bool) {
	m.statusMsg = text
	m.statusIsError = isError
	m.statusExpiry = m.clock().Add(duration)
}

// ClearToast clears any expired toast message.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && m.clock().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// Update handles messages.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.help.Width = message.Width
		m.ready = true
		m.resize()
		return m, nil

	case gridMsg:
		m.applyGrid(message)
		return m, nil

	case tickMsg:
		m.ClearToast()
		return m, tea.Batch(m.loadCmd(), m.tickCmd())

	case fileChangedMsg:
		return m, tea.Batch(m.loadCmd(), m.watchCmd())

	case msg.ToastMsg:
		m.ShowToast(message.Message, message.Duration, message.IsError)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(message)

	case tea.MouseMsg:
		return m.handleMouse(message)
	}
	return m, nil
}

func (m *Model) applyGrid(g gridMsg) {
	if g.err != nil {
		m.logger.Warn("reload failed", "err", g.err)
		m.ShowToast("Reload failed: "+g.err.Error(), 5*time.Second, true)
		return
	}
	m.now = g.now
	fp := g.grid.Fingerprint()
	if m.grid != nil && fp == m.fingerprint {
		return
	}
	first := m.grid == nil
	m.grid = g.grid
	m.fingerprint = fp
	m.layouts++
	if first {
		m.jumpToNow()
	}
	m.clampCursor()
	m.refreshBody()
}

// jumpToNow puts the cursor on now's cell, or the last day when now is
// outside the grid.
func (m *Model) jumpToNow() {
	if m.grid == nil {
		return
	}
	m.cursorRow = len(m.grid.Rows) - 1
	today := m.now / timeline.MinutesPerDay
	for i, row := range m.grid.Rows {
		if row.Kind == timeline.RowDay && row.Day == today {
			m.cursorRow = i
		}
	}
	m.cursorCol = m.grid.Layout.Column(m.now % timeline.MinutesPerDay)
}

func (m *Model) clampCursor() {
	if m.grid == nil || len(m.grid.Rows) <= 1 {
		m.cursorRow = 0
		return
	}
	m.cursorRow = clamp(m.cursorRow, 1, len(m.grid.Rows)-1)
	m.cursorCol = clamp(m.cursorCol, 1, m.grid.Layout.Columns())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *Model) resize() {
	h := m.height - chromeLines
	if h < 1 {
		h = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	m.refreshBody()
}

// refreshBody re-renders the day rows into the viewport and keeps the
// cursor row in view.
func (m *Model) refreshBody() {
	if m.grid == nil {
		return
	}
	m.viewport.SetContent(m.bodyContent())

	line := m.cursorRow - 1
	if line >= 0 {
		if line < m.viewport.YOffset {
			m.viewport.SetYOffset(line)
		} else if m.viewport.Height > 0 && line >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(line - m.viewport.Height + 1)
		}
	}
	m.registerHitRegions()
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDetail {
		switch {
		case key.Matches(k, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.Close), key.Matches(k, m.keys.Detail):
			m.showDetail = false
			return m, nil
		}
		// movement keys fall through and keep the popup open
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(k, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(k, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(k, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(k, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(k, m.keys.PrevHour):
		m.moveCursor(0, -m.columnsPerHour())
	case key.Matches(k, m.keys.NextHour):
		m.moveCursor(0, m.columnsPerHour())
	case key.Matches(k, m.keys.PageUp):
		m.moveCursor(-m.viewport.Height, 0)
	case key.Matches(k, m.keys.PageDown):
		m.moveCursor(m.viewport.Height, 0)
	case key.Matches(k, m.keys.Now):
		m.jumpToNow()
		m.clampCursor()
		m.refreshBody()

	case key.Matches(k, m.keys.Detail):
		if m.cursorRow > 0 {
			m.showDetail = true
		}

	case key.Matches(k, m.keys.Close):
		m.showDetail = false

	case key.Matches(k, m.keys.Copy):
		return m, m.copyGrid()

	case key.Matches(k, m.keys.Reload):
		return m, tea.Batch(m.loadCmd(), msg.ShowToast("Reloading", 2*time.Second))

	case key.Matches(k, m.keys.Overlap):
		if m.overlap == timeline.OverlapEndpoints {
			m.overlap = timeline.OverlapRange
		} else {
			m.overlap = timeline.OverlapEndpoints
		}
		if err := state.SetOverlap(m.overlap.String()); err != nil {
			m.logger.Warn("save overlap preference", "err", err)
		}
		return m, tea.Batch(m.loadCmd(), msg.ShowToast("Overlap check: "+m.overlap.String(), 2*time.Second))

	case key.Matches(k, m.keys.Theme):
		next := styles.NextTheme(styles.GetCurrentThemeName())
		styles.ApplyTheme(next)
		if err := state.SetTheme(next); err != nil {
			m.logger.Warn("save theme preference", "err", err)
		}
		m.refreshBody()
		return m, msg.ShowToast("Theme: "+styles.GetTheme(next).DisplayName, 2*time.Second)
	}
	return m, nil
}

func (m *Model) moveCursor(dRow, dCol int) {
	if m.grid == nil || m.cursorRow == 0 {
		return
	}
	m.cursorRow += dRow
	m.cursorCol += dCol
	m.clampCursor()
	m.refreshBody()
}

func (m Model) columnsPerHour() int {
	if m.grid == nil {
		return 1
	}
	return 60 / m.grid.Layout.Quantum
}

func (m Model) copyGrid() tea.Cmd {
	if m.grid == nil {
		return nil
	}
	if err := m.copy(view.Text(m.grid, m.gutter)); err != nil {
		return msg.ShowError(err, 3*time.Second)
	}
	return msg.ShowToast("Copied grid", 2*time.Second)
}
