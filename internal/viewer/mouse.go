package viewer

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/daygrid/internal/mouse"
)

// Hit region IDs
const (
	regionHeader = "header"
	regionGrid   = "grid"
)

// Screen rows of the header and the first visible day-row.
const (
	headerY = 1
	bodyY   = 2
)

// registerHitRegions records where the header and the visible day-rows
// are drawn.
func (m *Model) registerHitRegions() {
	m.mouse.Clear()
	if m.grid == nil {
		return
	}
	cols := m.grid.Layout.Columns()
	m.mouse.HitMap.AddRect(regionHeader, m.gutter, headerY, cols, 1, nil)

	visible := len(m.grid.Rows) - 1 - m.viewport.YOffset
	if visible > m.viewport.Height {
		visible = m.viewport.Height
	}
	if visible > 0 {
		m.mouse.HitMap.AddRect(regionGrid, m.gutter, bodyY, cols, visible, nil)
	}
}

func (m Model) handleMouse(message tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.help.ShowAll {
		return m, nil
	}
	action := m.mouse.HandleMouse(message)

	switch action.Type {
	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		m.moveCursor(action.Delta, 0)

	case mouse.ActionClick, mouse.ActionDoubleClick:
		if action.Region == nil {
			m.showDetail = false
			return m, nil
		}
		m.clickCell(action)
		if action.Type == mouse.ActionDoubleClick && action.Region.ID == regionGrid {
			m.showDetail = true
		}
	}
	return m, nil
}

// clickCell moves the cursor to the clicked cell. A click on the header
// only changes the column.
func (m *Model) clickCell(action mouse.MouseAction) {
	if m.grid == nil || m.cursorRow == 0 {
		return
	}
	m.cursorCol = action.X - m.gutter + 1
	if action.Region.ID == regionGrid {
		m.cursorRow = m.viewport.YOffset + action.Y - bodyY + 1
	}
	m.clampCursor()
	m.refreshBody()
}
