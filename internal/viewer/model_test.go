package viewer

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/daygrid/internal/msg"
	"github.com/marcus/daygrid/internal/styles"
	"github.com/marcus/daygrid/internal/timeline"
	"github.com/marcus/daygrid/internal/view"
)

const testDay = 20741 // 2026-10-15

func at(day, hour, minute int) int {
	return day*timeline.MinutesPerDay + hour*60 + minute
}

type fakeSource struct {
	intervals []timeline.Interval
	calls     int
	err       error
}

func (f *fakeSource) load(req Request) (*timeline.Grid, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	r := timeline.NewRenderer(timeline.DefaultLayout(),
		timeline.WithNow(req.Now),
		timeline.WithOverlapPolicy(req.Overlap))
	return r.Render(f.intervals)
}

// testClock is a settable clock on 2026-10-15.
type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newClock(hour, minute int) *testClock {
	return &testClock{t: time.Date(2026, 10, 15, hour, minute, 0, 0, time.Local)}
}

func standupSource() *fakeSource {
	return &fakeSource{intervals: []timeline.Interval{
		{Start: at(testDay, 10, 0), End: at(testDay, 11, 0), Label: "standup", Style: timeline.NamedStyle("clocked")},
	}}
}

func update(t *testing.T, m Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(message)
	return next.(Model), cmd
}

// reload runs the load command synchronously and applies its result.
func reload(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, m.loadCmd()())
	return m
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var km tea.KeyMsg
		switch k {
		case "enter":
			km = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			km = tea.KeyMsg{Type: tea.KeyEsc}
		case "pgdown":
			km = tea.KeyMsg{Type: tea.KeyPgDown}
		default:
			km = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, cmd = update(t, m, km)
	}
	return m, cmd
}

func newLoaded(t *testing.T, src *fakeSource, clock *testClock, opts ...Option) Model {
	t.Helper()
	opts = append([]Option{WithClock(clock.now), WithClipboard(func(string) error { return nil })}, opts...)
	m := New(src.load, opts...)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 20})
	return reload(t, m)
}

func TestLoad_PlacesCursorAtNow(t *testing.T) {
	m := newLoaded(t, standupSource(), newClock(10, 15))
	if m.grid == nil {
		t.Fatal("grid not loaded")
	}
	if m.cursorRow != 1 || m.cursorCol != 35 {
		t.Errorf("cursor = (%d, %d), want (1, 35)", m.cursorRow, m.cursorCol)
	}
	if m.layouts != 1 {
		t.Errorf("layouts = %d, want 1", m.layouts)
	}
}

func TestUnchangedGridSkipsRelayout(t *testing.T) {
	src := standupSource()
	clock := newClock(10, 15)
	m := newLoaded(t, src, clock)

	m = reload(t, m)
	if src.calls != 2 {
		t.Fatalf("loader calls = %d, want 2", src.calls)
	}
	if m.layouts != 1 {
		t.Errorf("layouts = %d after identical reload, want 1", m.layouts)
	}

	// moving into the next quantum shades one more cell
	clock.t = clock.t.Add(10 * time.Minute)
	m = reload(t, m)
	if m.layouts != 2 {
		t.Errorf("layouts = %d after clock moved, want 2", m.layouts)
	}
}

func TestLoadError_KeepsGrid(t *testing.T) {
	src := standupSource()
	m := newLoaded(t, src, newClock(10, 15))
	before := m.grid

	src.err = errors.New("disk on fire")
	m = reload(t, m)
	if m.grid != before {
		t.Error("grid replaced after a failed load")
	}
	if !m.statusIsError || !strings.Contains(m.statusMsg, "disk on fire") {
		t.Errorf("status = %q (error %v), want error toast", m.statusMsg, m.statusIsError)
	}
}

func TestCursorMovementClamps(t *testing.T) {
	m := newLoaded(t, standupSource(), newClock(10, 15))

	m, _ = press(t, m, "h")
	if m.cursorCol != 34 {
		t.Errorf("cursorCol = %d, want 34", m.cursorCol)
	}
	m, _ = press(t, m, "L")
	if m.cursorCol != 40 {
		t.Errorf("cursorCol after hour jump = %d, want 40", m.cursorCol)
	}
	for i := 0; i < 30; i++ {
		m, _ = press(t, m, "H")
	}
	if m.cursorCol != 1 {
		t.Errorf("cursorCol = %d, want clamped to 1", m.cursorCol)
	}
	m, _ = press(t, m, "k", "k", "j")
	if m.cursorRow != 1 {
		t.Errorf("cursorRow = %d, want 1 (single day)", m.cursorRow)
	}
	m, _ = press(t, m, "n")
	if m.cursorCol != 35 {
		t.Errorf("cursorCol after jump to now = %d, want 35", m.cursorCol)
	}
}

func TestDetailPopup(t *testing.T) {
	m := newLoaded(t, standupSource(), newClock(10, 15))

	m, _ = press(t, m, "h", "enter")
	if !m.showDetail {
		t.Fatal("enter should open the detail popup")
	}
	out := m.View()
	for _, want := range []string{"standup", "10:00 - 11:00 (60m)", "namedStyle:clocked"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail view missing %q", want)
		}
	}

	m, _ = press(t, m, "esc")
	if m.showDetail {
		t.Error("esc should close the popup")
	}

	// a free cell says so
	m, _ = press(t, m, "H", "H", "enter")
	if out := m.View(); !strings.Contains(out, "free") {
		t.Error("free cell detail should say free")
	}
}

func TestCopyGrid(t *testing.T) {
	var copied string
	m := newLoaded(t, standupSource(), newClock(10, 15), WithClipboard(func(s string) error {
		copied = s
		return nil
	}))

	_, cmd := press(t, m, "y")
	if cmd == nil {
		t.Fatal("copy should return a toast command")
	}
	toast, ok := cmd().(msg.ToastMsg)
	if !ok || toast.IsError {
		t.Fatalf("got %#v, want success toast", toast)
	}
	if want := view.Text(m.grid, 4); copied != want {
		t.Errorf("copied text differs from plain grid")
	}
}

func TestCopyGrid_Error(t *testing.T) {
	m := newLoaded(t, standupSource(), newClock(10, 15), WithClipboard(func(string) error {
		return errors.New("no clipboard")
	}))
	_, cmd := press(t, m, "y")
	toast, ok := cmd().(msg.ToastMsg)
	if !ok || !toast.IsError {
		t.Errorf("got %#v, want error toast", toast)
	}
}

func TestQuit(t *testing.T) {
	m := newLoaded(t, standupSource(), newClock(10, 15))
	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestOverlapToggle(t *testing.T) {
	src := &fakeSource{intervals: []timeline.Interval{
		{Start: at(testDay, 2, 0), End: at(testDay, 2, 30), Label: "early"},
		{Start: at(testDay, 23, 0), End: at(testDay+1, 3, 0), Label: "late"},
	}}
	m := newLoaded(t, src, newClock(10, 15))
	if countOverlaps(m.grid) != 0 {
		t.Fatal("endpoint sampling should miss the interior overlap")
	}

	m, cmd := press(t, m, "o")
	if m.overlap != timeline.OverlapRange {
		t.Fatalf("overlap = %v, want range", m.overlap)
	}
	if cmd == nil {
		t.Fatal("toggling should reload")
	}
	m = reload(t, m)
	if countOverlaps(m.grid) == 0 {
		t.Error("range check should flag the interior overlap")
	}
}

func countOverlaps(g *timeline.Grid) int {
	n := 0
	for _, r := range g.Regions() {
		if r.Overlap {
			n++
		}
	}
	return n
}

func TestThemeCycle(t *testing.T) {
	t.Cleanup(func() { styles.ApplyTheme("default") })
	styles.ApplyTheme("default")

	m := newLoaded(t, standupSource(), newClock(10, 15))
	_, cmd := press(t, m, "t")
	if got := styles.GetCurrentThemeName(); got != "light" {
		t.Errorf("theme = %q, want light", got)
	}
	if toast, ok := cmd().(msg.ToastMsg); !ok || !strings.Contains(toast.Message, "Light") {
		t.Errorf("got %#v, want theme toast", toast)
	}
}

func TestToastExpiresOnTick(t *testing.T) {
	clock := newClock(10, 15)
	m := newLoaded(t, standupSource(), clock)
	m, _ = update(t, m, msg.ToastMsg{Message: "hello", Duration: time.Second})
	if !strings.Contains(m.View(), "hello") {
		t.Error("toast not shown in footer")
	}

	clock.t = clock.t.Add(2 * time.Second)
	m, cmd := update(t, m, tickMsg(clock.t))
	if m.statusMsg != "" {
		t.Errorf("status = %q, want cleared", m.statusMsg)
	}
	if cmd == nil {
		t.Error("tick should schedule a reload")
	}
}

func TestWatchCmd(t *testing.T) {
	ch := make(chan struct{}, 1)
	m := New(standupSource().load, WithWatch(ch))

	ch <- struct{}{}
	if _, ok := m.watchCmd()().(fileChangedMsg); !ok {
		t.Error("a change should produce fileChangedMsg")
	}
	close(ch)
	if got := m.watchCmd()(); got != nil {
		t.Errorf("closed watch = %#v, want nil", got)
	}
	if New(standupSource().load).watchCmd() != nil {
		t.Error("no watch channel should mean no command")
	}

	_, cmd := update(t, m, fileChangedMsg{})
	if cmd == nil {
		t.Error("file change should reload")
	}
}

func TestEmptySource(t *testing.T) {
	m := newLoaded(t, &fakeSource{}, newClock(10, 15))
	if m.cursorRow != 0 {
		t.Errorf("cursorRow = %d, want 0", m.cursorRow)
	}
	m, _ = press(t, m, "enter", "j")
	if m.showDetail {
		t.Error("detail should not open without days")
	}
	if !strings.Contains(m.View(), "No activities") {
		t.Error("empty view should say so")
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	src := &fakeSource{}
	for d := 0; d < 30; d++ {
		src.intervals = append(src.intervals, timeline.Interval{
			Start: at(testDay+d, 9, 0), End: at(testDay+d, 10, 0), Label: fmt.Sprintf("day %d", d),
		})
	}
	m := newLoaded(t, src, newClock(10, 15))
	if m.viewport.Height != 17 {
		t.Fatalf("viewport height = %d, want 17", m.viewport.Height)
	}

	m, _ = press(t, m, "pgdown", "pgdown")
	if m.cursorRow != 1+2*17 && m.cursorRow != 30 {
		t.Errorf("cursorRow = %d", m.cursorRow)
	}
	line := m.cursorRow - 1
	if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
		t.Errorf("cursor line %d outside viewport [%d, %d)", line, m.viewport.YOffset, m.viewport.YOffset+m.viewport.Height)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newLoaded(t, standupSource(), newClock(10, 15))
	m, _ = press(t, m, "?")
	if !m.help.ShowAll {
		t.Fatal("? should show full help")
	}
	if !strings.Contains(m.View(), "next theme") {
		t.Error("full help should list the theme key")
	}
}
