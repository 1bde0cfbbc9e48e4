// Package mouse maps terminal mouse events onto named screen regions.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// doubleClickWindow is the longest gap between two clicks on the same
// cell that still counts as a double-click.
const doubleClickWindow = 400 * time.Millisecond

// Rect is a screen rectangle in cells. The right and bottom edges are
// exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a hit target.
type Region struct {
	ID   string
	Rect Rect
	Data interface{}
}

// HitMap holds the regions of the last rendered frame.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region. Later regions sit on top of earlier ones.
func (h *HitMap) Add(id string, r Rect, data interface{}) {
	h.regions = append(h.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect is Add with the rectangle spelled out.
func (h *HitMap) AddRect(id string, x, y, w, height int, data interface{}) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: height}, data)
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear drops every region.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns a copy of the registered regions.
func (h *HitMap) Regions() []Region {
	out := make([]Region, len(h.regions))
	copy(out, h.regions)
	return out
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionScrollUp
	ActionScrollDown
)

// MouseAction is a classified mouse event. Region is the hit region under
// the pointer, if any.
type MouseAction struct {
	Type   ActionType
	X, Y   int
	Delta  int // rows to scroll; negative is up
	Region *Region
}

// Handler turns raw tea.MouseMsg events into actions.
type Handler struct {
	HitMap *HitMap

	clock     func() time.Time
	lastClick time.Time
	lastX     int
	lastY     int
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), clock: time.Now}
}

// Clear drops the hit regions, usually before a re-render.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleMouse classifies msg.
func (h *Handler) HandleMouse(msg tea.MouseMsg) MouseAction {
	action := MouseAction{X: msg.X, Y: msg.Y, Region: h.HitMap.Test(msg.X, msg.Y)}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		action.Type = ActionScrollUp
		action.Delta = -1
		return action
	case tea.MouseButtonWheelDown:
		action.Type = ActionScrollDown
		action.Delta = 1
		return action
	case tea.MouseButtonLeft:
	default:
		return action
	}
	if msg.Action != tea.MouseActionPress {
		return action
	}

	now := h.clock()
	if msg.X == h.lastX && msg.Y == h.lastY && !h.lastClick.IsZero() && now.Sub(h.lastClick) <= doubleClickWindow {
		action.Type = ActionDoubleClick
		h.lastClick = time.Time{}
		return action
	}
	action.Type = ActionClick
	h.lastClick = now
	h.lastX, h.lastY = msg.X, msg.Y
	return action
}
