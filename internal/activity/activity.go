// Package activity turns raw agenda records into canonical intervals.
package activity

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/marcus/daygrid/internal/timeline"
)

// Recognized record kinds.
const (
	KindScheduled = "scheduled"
	KindClocked   = "clocked"
	KindTimed     = "timed"
)

// Bounds on what a record may describe. Longer spans are clamped to one
// row by the renderer anyway; these keep End from overflowing.
const (
	MaxDuration = 7 * timeline.MinutesPerDay // minutes
	MaxDay      = 1 << 20                    // absolute days, around the year 4840
)

// DefaultKinds are admitted when no kinds are configured.
var DefaultKinds = []string{KindScheduled, KindClocked, KindTimed}

// TimeOfDay is an hour and minute on the record's day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Record is an activity as delivered by a host. Nil fields are absent.
type Record struct {
	Day      *int       // absolute day, see timeline.AbsoluteDay
	At       *TimeOfDay // start time on Day
	Kind     string
	Duration *float64 // minutes; negative means the span crosses midnight
	Label    string
	Style    timeline.Style
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithDefaultDuration sets the duration used when a record has none.
func WithDefaultDuration(minutes float64) Option {
	return func(n *Normalizer) {
		n.defaultDuration = &minutes
	}
}

// WithKinds replaces the admitted record kinds.
func WithKinds(kinds ...string) Option {
	return func(n *Normalizer) {
		n.kinds = make(map[string]bool, len(kinds))
		for _, k := range kinds {
			n.kinds[strings.ToLower(k)] = true
		}
	}
}

// WithLogger sets the logger used to report dropped records.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// Normalizer converts records into timeline intervals.
type Normalizer struct {
	defaultDuration *float64
	kinds           map[string]bool
	logger          *slog.Logger
}

// NewNormalizer creates a Normalizer admitting DefaultKinds.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{logger: slog.Default()}
	WithKinds(DefaultKinds...)(n)
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Admits reports whether records of kind are laid out.
func (n *Normalizer) Admits(kind string) bool {
	return n.kinds[strings.ToLower(kind)]
}

// Interval converts one record. It returns false when the record is
// filtered out or malformed.
func (n *Normalizer) Interval(r Record) (timeline.Interval, bool) {
	iv, reason := n.convert(r)
	if reason != "" {
		return timeline.Interval{}, false
	}
	return iv, true
}

func (n *Normalizer) convert(r Record) (timeline.Interval, string) {
	if !n.Admits(r.Kind) {
		return timeline.Interval{}, "kind not recognized"
	}
	if r.Day == nil || r.At == nil {
		return timeline.Interval{}, "missing start"
	}
	if *r.Day < 0 {
		return timeline.Interval{}, "day before epoch"
	}
	if *r.Day > MaxDay {
		return timeline.Interval{}, "day out of range"
	}
	if r.At.Hour < 0 || r.At.Hour > 23 || r.At.Minute < 0 || r.At.Minute > 59 {
		return timeline.Interval{}, "time of day out of range"
	}

	var duration float64
	switch {
	case r.Duration != nil:
		duration = *r.Duration
	case n.defaultDuration != nil:
		duration = *n.defaultDuration
	}
	if duration < 0 {
		duration += timeline.MinutesPerDay
	}
	if math.IsNaN(duration) {
		return timeline.Interval{}, "duration is not a number"
	}
	if duration < 0 {
		return timeline.Interval{}, "duration below minus one day"
	}
	if duration > MaxDuration {
		return timeline.Interval{}, "duration longer than a week"
	}

	start := *r.Day*timeline.MinutesPerDay + r.At.Hour*60 + r.At.Minute
	return timeline.Interval{
		Start: start,
		End:   int(math.Round(float64(start) + duration)),
		Label: r.Label,
		Style: r.Style,
	}, ""
}

// Normalize converts records in order, dropping those Interval rejects.
func (n *Normalizer) Normalize(records []Record) []timeline.Interval {
	out := make([]timeline.Interval, 0, len(records))
	for i, r := range records {
		iv, reason := n.convert(r)
		if reason != "" {
			n.logger.Debug("record dropped", "index", i, "kind", r.Kind, "label", r.Label, "reason", reason)
			continue
		}
		out = append(out, iv)
	}
	return out
}

// SortByStart orders intervals by ascending start, keeping the input order
// of intervals that start together.
func SortByStart(intervals []timeline.Interval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start < intervals[j].Start
	})
}
