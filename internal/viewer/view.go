package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/daygrid/internal/styles"
	"github.com/marcus/daygrid/internal/timeline"
	"github.com/marcus/daygrid/internal/ui"
	"github.com/marcus/daygrid/internal/view"
)

var cursorStyle = timeline.NamedStyle("cursor")

// View renders the viewer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.grid == nil {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderTitle(), styles.Muted.Render("Loading..."), m.renderFooter())
	}

	body := m.viewport.View()
	if m.cursorRow == 0 {
		body = styles.Muted.Render("No activities")
	}
	out := strings.Join([]string{
		m.renderTitle(),
		view.ANSIRow(m.grid.Header(), styles.Resolve, m.gutter),
		body,
		m.renderFooter(),
	}, "\n")

	if m.showDetail && m.cursorRow > 0 {
		box := m.renderDetail()
		anchorX := m.gutter + m.cursorCol - 1
		anchorY := bodyY + m.cursorRow - 1 - m.viewport.YOffset
		x, y := ui.PopupOrigin(anchorX, anchorY, lipgloss.Width(box), lipgloss.Height(box), m.width, m.height)
		out = ui.Overlay(out, box, x, y, m.width, m.height, false)
	}
	if m.help.ShowAll {
		out = ui.OverlayModal(out, styles.Popup.Render(m.help.View(m.keys)), m.width, m.height)
	}
	return out
}

func (m Model) renderTitle() string {
	parts := []string{styles.Title.Render("daygrid")}
	if m.title != "" {
		parts = append(parts, m.title)
	}
	if m.grid != nil {
		parts = append(parts, timeline.FormatMinute(m.now), "overlap: "+m.overlap.String())
	}
	return ansi.Truncate(strings.Join(parts, styles.Muted.Render("  ·  ")), m.width, "…")
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		toastStyle := styles.ToastSuccess
		if m.statusIsError {
			toastStyle = styles.ToastError
		}
		return toastStyle.Render(m.statusMsg)
	}
	short := m.help.ShowAll
	m.help.ShowAll = false
	hints := m.help.View(m.keys)
	m.help.ShowAll = short
	return hints
}

// bodyContent renders the day-rows, the cursor cell highlighted.
func (m Model) bodyContent() string {
	days := m.grid.Rows[1:]
	lines := make([]string, len(days))
	for i, row := range days {
		if i+1 == m.cursorRow {
			row = withCursor(row, m.cursorCol)
		}
		lines[i] = view.ANSIRow(row, styles.Resolve, m.gutter)
	}
	return strings.Join(lines, "\n")
}

func withCursor(row timeline.Row, col int) timeline.Row {
	cells := make([]timeline.Cell, len(row.Cells))
	copy(cells, row.Cells)
	if col > 0 && col < len(cells) {
		cells[col].Style = cursorStyle
		cells[col].Occupied = true
	}
	row.Cells = cells
	return row
}

// detailLines describes the cell under the cursor.
func (m Model) detailLines() []string {
	row := m.grid.Rows[m.cursorRow]
	at := row.Day*timeline.MinutesPerDay + m.grid.Layout.MinuteAt(m.cursorCol)
	lines := []string{styles.Muted.Render(timeline.FormatMinute(at))}

	region, ok := m.grid.RegionAt(m.cursorRow, m.cursorCol)
	if !ok {
		return append(lines, "free")
	}
	iv := region.Interval
	label := region.Label
	if label == "" {
		label = "(no label)"
	}
	lines = append(lines,
		styles.Title.Render(label),
		fmt.Sprintf("%s - %s (%dm)", timeline.FormatMinute(iv.Start)[11:], timeline.FormatMinute(iv.End)[11:], iv.Duration()),
		"style: "+iv.Style.String(),
	)
	if region.Overlap {
		lines = append(lines, styles.ToastError.Render("overlaps an earlier activity"))
	}
	covering := 0
	for _, r := range row.Regions {
		if r.Contains(m.cursorCol) {
			covering++
		}
	}
	if covering > 1 {
		lines = append(lines, styles.Muted.Render(fmt.Sprintf("%d activities share this cell", covering)))
	}
	return lines
}

func (m Model) renderDetail() string {
	return styles.Popup.Render(strings.Join(m.detailLines(), "\n"))
}
