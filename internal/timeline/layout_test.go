package timeline

import (
	"errors"
	"testing"
	"time"
)

func TestLayoutColumn(t *testing.T) {
	l := DefaultLayout()

	tests := []struct {
		minute int
		want   int
	}{
		{4*60 + 30, 1},
		{5 * 60, 4},
		{10 * 60, 34},
		{10*60 + 30, 37},
		{23*60 + 59, 117},
		{0, 118},
		{4*60 + 29, 144},
	}

	for _, tc := range tests {
		if got := l.Column(tc.minute); got != tc.want {
			t.Errorf("Column(%d) = %d, want %d", tc.minute, got, tc.want)
		}
	}
}

func TestLayoutColumnMonotonicInWindow(t *testing.T) {
	for _, l := range []Layout{DefaultLayout(), {DayStartOffset: 0, Quantum: 15}, {DayStartOffset: 1200, Quantum: 5}} {
		prev := 0
		for k := 0; k < MinutesPerDay; k++ {
			col := l.Column((l.DayStartOffset + k) % MinutesPerDay)
			if col < prev {
				t.Fatalf("layout %+v: column went from %d to %d at offset minute %d", l, prev, col, k)
			}
			if col < 1 || col > l.Columns() {
				t.Fatalf("layout %+v: column %d out of range", l, col)
			}
			prev = col
		}
	}
}

func TestLayoutMinuteAt(t *testing.T) {
	l := DefaultLayout()
	for col := 1; col <= l.Columns(); col++ {
		if got := l.Column(l.MinuteAt(col)); got != col {
			t.Fatalf("Column(MinuteAt(%d)) = %d", col, got)
		}
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		ok     bool
	}{
		{"default", DefaultLayout(), true},
		{"quarter hours", Layout{DayStartOffset: 0, Quantum: 15}, true},
		{"quantum does not divide hour", Layout{DayStartOffset: 270, Quantum: 7}, false},
		{"zero quantum", Layout{DayStartOffset: 270}, false},
		{"offset past midnight", Layout{DayStartOffset: MinutesPerDay, Quantum: 10}, false},
		{"negative offset", Layout{DayStartOffset: -1, Quantum: 10}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.layout.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("got %v, want ErrInvalidLayout", err)
			}
		})
	}
}

func TestHourMarks(t *testing.T) {
	marks := DefaultLayout().HourMarks()
	if len(marks) != 24 {
		t.Fatalf("got %d marks, want 24", len(marks))
	}
	if marks[0] != (HourMark{Column: 4, Hour: 5}) {
		t.Errorf("first mark = %+v, want column 4 hour 5", marks[0])
	}
	if marks[23] != (HourMark{Column: 142, Hour: 4}) {
		t.Errorf("last mark = %+v, want column 142 hour 4", marks[23])
	}
	for i := 1; i < len(marks); i++ {
		if marks[i].Column <= marks[i-1].Column {
			t.Errorf("marks not ascending at %d: %+v then %+v", i, marks[i-1], marks[i])
		}
	}
}

func TestAbsoluteDayAndMinuteOf(t *testing.T) {
	ts := time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC)
	if got := AbsoluteDay(ts); got != 20741 {
		t.Errorf("AbsoluteDay = %d, want 20741", got)
	}
	if got := MinuteOf(ts); got != 20741*MinutesPerDay+630 {
		t.Errorf("MinuteOf = %d, want %d", got, 20741*MinutesPerDay+630)
	}

	// The calendar date of the instant's own zone is used.
	zone := time.FixedZone("UTC+9", 9*3600)
	local := time.Date(2026, 10, 16, 1, 0, 0, 0, zone)
	if got := AbsoluteDay(local); got != 20742 {
		t.Errorf("AbsoluteDay in +9 = %d, want 20742", got)
	}
	if got := DayTime(20741).Format("2006-01-02 Mon"); got != "2026-10-15 Thu" {
		t.Errorf("DayTime = %q", got)
	}
	if got := FormatMinute(20742*MinutesPerDay + 23*60 + 20); got != "2026-10-16 23:20" {
		t.Errorf("FormatMinute = %q", got)
	}
}
