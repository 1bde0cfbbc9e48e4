package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/daygrid/internal/timeline"
)

func TestColorValue(t *testing.T) {
	tests := []struct {
		in   string
		want lipgloss.Color
	}{
		{"#FF0000", "#FF0000"},
		{"212", "212"},
		{"Red", "1"},
		{"grey", "8"},
		{"256", ""},
		{"chartreuse", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ColorValue(tt.in); got != tt.want {
			t.Errorf("ColorValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_Color(t *testing.T) {
	st := Resolve(timeline.ColorStyle("#FFFFFF"))
	if st.GetBackground() != lipgloss.Color("#FFFFFF") {
		t.Errorf("background = %v, want #FFFFFF", st.GetBackground())
	}
	if st.GetForeground() != lipgloss.Color("#000000") {
		t.Errorf("foreground = %v, want #000000", st.GetForeground())
	}

	// unknown colour words fall back to the event style
	st = Resolve(timeline.ColorStyle("chartreuse"))
	if st.GetBackground() != Event.GetBackground() {
		t.Errorf("background = %v, want event background", st.GetBackground())
	}
}

func TestResolve_Named(t *testing.T) {
	t.Cleanup(ResetNamedStyles)

	if got := Resolve(timeline.NamedStyle("conflict")); got.GetBackground() != ConflictBg {
		t.Errorf("conflict background = %v, want %v", got.GetBackground(), ConflictBg)
	}
	if got := Resolve(timeline.NamedStyle("clocked")); got.GetBackground() != ClockedBg {
		t.Errorf("clocked background = %v, want %v", got.GetBackground(), ClockedBg)
	}
	if got := Resolve(timeline.NamedStyle("unheard-of")); got.GetBackground() != EventBg {
		t.Errorf("fallback background = %v, want %v", got.GetBackground(), EventBg)
	}

	RegisterNamedStyle("conflict", timeline.StyleSpec{Background: "#00FF00", Underline: true})
	got := Resolve(timeline.NamedStyle("conflict"))
	if got.GetBackground() != lipgloss.Color("#00FF00") || !got.GetUnderline() {
		t.Errorf("registered class not used: bg=%v underline=%v", got.GetBackground(), got.GetUnderline())
	}
}

func TestResolve_Structured(t *testing.T) {
	st := Resolve(timeline.StructuredStyle(timeline.StyleSpec{
		Foreground: "yellow",
		Background: "#000000",
		Bold:       true,
		Italic:     true,
	}))
	if st.GetForeground() != lipgloss.Color("3") {
		t.Errorf("foreground = %v, want 3", st.GetForeground())
	}
	if st.GetBackground() != lipgloss.Color("#000000") {
		t.Errorf("background = %v, want #000000", st.GetBackground())
	}
	if !st.GetBold() || !st.GetItalic() || st.GetReverse() {
		t.Errorf("attributes = bold %v italic %v reverse %v", st.GetBold(), st.GetItalic(), st.GetReverse())
	}
}

func TestResolve_None(t *testing.T) {
	st := Resolve(timeline.Style{})
	if _, ok := st.GetBackground().(lipgloss.NoColor); !ok {
		t.Errorf("background = %#v, want NoColor", st.GetBackground())
	}
}
