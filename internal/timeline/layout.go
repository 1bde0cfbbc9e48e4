package timeline

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout is returned when a Layout cannot describe a day-row.
var ErrInvalidLayout = errors.New("invalid layout")

const (
	// DefaultDayStartOffset places the start of each row at 04:30.
	DefaultDayStartOffset = 270
	// DefaultQuantum is the number of minutes covered by one column.
	DefaultQuantum = 10
)

// Layout maps minutes of the day onto grid columns. Column 0 is the
// label column; time columns run from 1 to Columns().
type Layout struct {
	DayStartOffset int // minutes after midnight where a row begins
	Quantum        int // minutes per column
}

// DefaultLayout returns the 04:30-based, 10-minute layout.
func DefaultLayout() Layout {
	return Layout{DayStartOffset: DefaultDayStartOffset, Quantum: DefaultQuantum}
}

// Validate checks that the quantum divides an hour and the offset lies
// within one day.
func (l Layout) Validate() error {
	if l.Quantum <= 0 || 60%l.Quantum != 0 {
		return fmt.Errorf("%w: quantum %d does not divide 60", ErrInvalidLayout, l.Quantum)
	}
	if l.DayStartOffset < 0 || l.DayStartOffset >= MinutesPerDay {
		return fmt.Errorf("%w: day start offset %d outside [0,%d)", ErrInvalidLayout, l.DayStartOffset, MinutesPerDay)
	}
	return nil
}

// Columns returns the number of time columns in a row.
func (l Layout) Columns() int {
	return MinutesPerDay / l.Quantum
}

// Width returns the number of cells in a row, label column included.
func (l Layout) Width() int {
	return l.Columns() + 1
}

// Column maps a minute of the day to its column. Minutes before the day
// start offset wrap to the end of the row.
func (l Layout) Column(minuteOfDay int) int {
	return 1 + floorMod(minuteOfDay-l.DayStartOffset, MinutesPerDay)/l.Quantum
}

// MinuteAt returns the first minute of the day covered by column.
func (l Layout) MinuteAt(column int) int {
	return floorMod(l.DayStartOffset+(column-1)*l.Quantum, MinutesPerDay)
}

// HourMark is an hour boundary inside the display window.
type HourMark struct {
	Column int
	Hour   int
}

// HourMarks lists the 24 hour boundaries of the window in column order.
func (l Layout) HourMarks() []HourMark {
	first := (l.DayStartOffset + 59) / 60
	marks := make([]HourMark, 0, 24)
	for k := 0; k < 24; k++ {
		hour := (first + k) % 24
		marks = append(marks, HourMark{Column: l.Column(hour * 60), Hour: hour})
	}
	return marks
}
