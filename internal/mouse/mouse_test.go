package mouse

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	tests := []struct {
		name   string
		x, y   int
		expect bool
	}{
		{"inside", 15, 30, true},
		{"top-left corner", 10, 20, true},
		{"right edge exclusive", 40, 30, false},
		{"bottom edge exclusive", 15, 60, false},
		{"just inside right", 39, 30, true},
		{"just inside bottom", 15, 59, true},
		{"left of rect", 9, 30, false},
		{"above rect", 15, 19, false},
		{"far outside", 100, 100, false},
		{"negative coords inside", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Rect%+v.Contains(%d, %d) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRect_Contains_ZeroSize(t *testing.T) {
	zeroW := Rect{X: 5, Y: 5, W: 0, H: 10}
	if zeroW.Contains(5, 5) {
		t.Error("zero-width rect should not contain any point")
	}

	zeroH := Rect{X: 5, Y: 5, W: 10, H: 0}
	if zeroH.Contains(5, 5) {
		t.Error("zero-height rect should not contain any point")
	}

	zeroBoth := Rect{X: 5, Y: 5, W: 0, H: 0}
	if zeroBoth.Contains(5, 5) {
		t.Error("zero-size rect should not contain any point")
	}
}

func TestHitMap_AddAndTest(t *testing.T) {
	hm := NewHitMap()
	hm.Add("a", Rect{X: 0, Y: 0, W: 10, H: 10}, "data-a")
	hm.Add("b", Rect{X: 20, Y: 20, W: 10, H: 10}, "data-b")

	r := hm.Test(5, 5)
	if r == nil || r.ID != "a" {
		t.Fatalf("expected region 'a', got %v", r)
	}
	if r.Data != "data-a" {
		t.Errorf("expected data 'data-a', got %v", r.Data)
	}

	r = hm.Test(25, 25)
	if r == nil || r.ID != "b" {
		t.Fatalf("expected region 'b', got %v", r)
	}
}

func TestHitMap_OverlappingRegions(t *testing.T) {
	hm := NewHitMap()
	hm.Add("bottom", Rect{X: 0, Y: 0, W: 20, H: 20}, "bottom-data")
	hm.Add("top", Rect{X: 5, Y: 5, W: 10, H: 10}, "top-data")

	r := hm.Test(7, 7)
	if r == nil || r.ID != "top" {
		t.Fatalf("overlapping point should hit 'top' (last added), got %v", r)
	}

	r = hm.Test(2, 2)
	if r == nil || r.ID != "bottom" {
		t.Fatalf("non-overlapping point should hit 'bottom', got %v", r)
	}
}

func TestHitMap_Clear(t *testing.T) {
	hm := NewHitMap()
	hm.Add("a", Rect{X: 0, Y: 0, W: 10, H: 10}, nil)

	if hm.Test(5, 5) == nil {
		t.Fatal("expected hit before clear")
	}

	hm.Clear()

	if hm.Test(5, 5) != nil {
		t.Fatal("expected nil after clear")
	}
}

func TestHitMap_AddRect(t *testing.T) {
	hm := NewHitMap()
	hm.AddRect("r", 10, 20, 30, 40, "rect-data")

	r := hm.Test(15, 30)
	if r == nil || r.ID != "r" {
		t.Fatalf("expected region 'r', got %v", r)
	}
	if r.Rect.X != 10 || r.Rect.Y != 20 || r.Rect.W != 30 || r.Rect.H != 40 {
		t.Errorf("unexpected rect values: %+v", r.Rect)
	}
	if r.Data != "rect-data" {
		t.Errorf("expected data 'rect-data', got %v", r.Data)
	}
}

func TestHitMap_Regions(t *testing.T) {
	hm := NewHitMap()
	hm.Add("a", Rect{X: 0, Y: 0, W: 10, H: 10}, nil)
	hm.Add("b", Rect{X: 20, Y: 20, W: 10, H: 10}, nil)

	regions := hm.Regions()
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}

	regions[0].ID = "mutated"
	if hm.Regions()[0].ID == "mutated" {
		t.Error("Regions() should return a copy, but mutation affected original")
	}
}

func TestHitMap_TestMiss(t *testing.T) {
	hm := NewHitMap()
	hm.Add("a", Rect{X: 0, Y: 0, W: 5, H: 5}, nil)

	if hm.Test(50, 50) != nil {
		t.Error("expected nil for point outside all regions")
	}

	empty := NewHitMap()
	if empty.Test(0, 0) != nil {
		t.Error("expected nil on empty hit map")
	}
}

func TestHandler_Clear(t *testing.T) {
	h := NewHandler()
	h.HitMap.Add("btn", Rect{X: 0, Y: 0, W: 10, H: 10}, nil)

	if h.HitMap.Test(5, 5) == nil {
		t.Fatal("expected hit before clear")
	}

	h.Clear()

	if h.HitMap.Test(5, 5) != nil {
		t.Error("expected no hit after clear")
	}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func TestHandler_Click(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	h := NewHandler()
	h.clock = func() time.Time { return now }
	h.HitMap.AddRect("grid", 4, 2, 144, 10, nil)

	a := h.HandleMouse(press(10, 3))
	if a.Type != ActionClick {
		t.Fatalf("got %v, want ActionClick", a.Type)
	}
	if a.Region == nil || a.Region.ID != "grid" {
		t.Fatalf("got region %v, want grid", a.Region)
	}

	now = now.Add(200 * time.Millisecond)
	if a := h.HandleMouse(press(10, 3)); a.Type != ActionDoubleClick {
		t.Errorf("got %v, want ActionDoubleClick", a.Type)
	}

	// a third click starts over
	now = now.Add(100 * time.Millisecond)
	if a := h.HandleMouse(press(10, 3)); a.Type != ActionClick {
		t.Errorf("got %v, want ActionClick", a.Type)
	}

	now = now.Add(time.Second)
	if a := h.HandleMouse(press(10, 3)); a.Type != ActionClick {
		t.Errorf("slow second click: got %v, want ActionClick", a.Type)
	}
}

func TestHandler_ClickElsewhereIsNotDouble(t *testing.T) {
	h := NewHandler()
	h.HandleMouse(press(1, 1))
	if a := h.HandleMouse(press(2, 1)); a.Type != ActionClick {
		t.Errorf("got %v, want ActionClick", a.Type)
	}
}

func TestHandler_Wheel(t *testing.T) {
	h := NewHandler()
	tests := []struct {
		button tea.MouseButton
		want   ActionType
		delta  int
	}{
		{tea.MouseButtonWheelUp, ActionScrollUp, -1},
		{tea.MouseButtonWheelDown, ActionScrollDown, 1},
		{tea.MouseButtonRight, ActionNone, 0},
	}
	for _, tt := range tests {
		a := h.HandleMouse(tea.MouseMsg{Button: tt.button, Action: tea.MouseActionPress})
		if a.Type != tt.want || a.Delta != tt.delta {
			t.Errorf("button %v: got (%v, %d), want (%v, %d)", tt.button, a.Type, a.Delta, tt.want, tt.delta)
		}
	}
}

func TestHandler_ReleaseIgnored(t *testing.T) {
	h := NewHandler()
	a := h.HandleMouse(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if a.Type != ActionNone {
		t.Errorf("got %v, want ActionNone", a.Type)
	}
}
