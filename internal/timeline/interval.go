package timeline

import (
	"fmt"
	"time"
)

// MinutesPerDay is the length of one day-row in the linear time unit.
const MinutesPerDay = 1440

// Interval is a canonical activity span in minutes since the epoch.
// Start is inclusive, End is exclusive and End >= Start.
type Interval struct {
	Start int
	End   int
	Label string // empty when the activity has no annotation
	Style Style
}

// Day returns the absolute day the interval starts on.
func (iv Interval) Day() int {
	return iv.Start / MinutesPerDay
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", FormatMinute(iv.Start), FormatMinute(iv.End))
}

// AbsoluteDay returns the number of days between 1970-01-01 and t's
// calendar date in t's own location.
func AbsoluteDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// MinuteOf converts a wall-clock instant to minutes since the epoch.
func MinuteOf(t time.Time) int {
	return AbsoluteDay(t)*MinutesPerDay + t.Hour()*60 + t.Minute()
}

// DayTime returns midnight UTC of an absolute day, for labelling.
func DayTime(day int) time.Time {
	return time.Unix(int64(day)*86400, 0).UTC()
}

// FormatMinute renders an epoch minute as "2006-01-02 15:04".
func FormatMinute(m int) string {
	day := floorDiv(m, MinutesPerDay)
	mod := m - day*MinutesPerDay
	return fmt.Sprintf("%s %02d:%02d", DayTime(day).Format("2006-01-02"), mod/60, mod%60)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
