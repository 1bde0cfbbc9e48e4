package timeline

import "fmt"

// PreconditionError reports input the renderer refuses to lay out.
// Index is the position of the offending interval; Prev is set when the
// violation is an ordering problem.
type PreconditionError struct {
	Index  int
	Prev   Interval
	Next   Interval
	Reason string
}

const reasonUnsorted = "not sorted by start"

func (e *PreconditionError) Error() string {
	if e.Reason == reasonUnsorted {
		return fmt.Sprintf("interval %d %s: %s (previous %s)", e.Index, e.Next, e.Reason, e.Prev)
	}
	return fmt.Sprintf("interval %d %s: %s", e.Index, e.Next, e.Reason)
}

// checkIntervals enforces Start >= 0, End >= Start and ascending Start.
func checkIntervals(intervals []Interval) error {
	for i, iv := range intervals {
		switch {
		case iv.Start < 0:
			return &PreconditionError{Index: i, Next: iv, Reason: "start before epoch"}
		case iv.End < iv.Start:
			return &PreconditionError{Index: i, Next: iv, Reason: "end before start"}
		}
		if i > 0 && iv.Start < intervals[i-1].Start {
			return &PreconditionError{Index: i, Prev: intervals[i-1], Next: iv, Reason: reasonUnsorted}
		}
	}
	return nil
}
