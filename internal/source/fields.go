package source

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/daygrid/internal/activity"
	"github.com/marcus/daygrid/internal/timeline"
)

// rawRecord is a row as read, before field parsing.
type rawRecord struct {
	Date     string
	Time     string
	Kind     string
	Duration string
	Label    string
	Style    string
	// StyleValue is set by readers that decode structured styles themselves.
	StyleValue *timeline.Style
}

var dateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func (r rawRecord) record(log *slog.Logger) activity.Record {
	rec := activity.Record{
		Kind:  strings.TrimSpace(r.Kind),
		Label: strings.TrimSpace(r.Label),
	}

	day, at, err := parseDate(r.Date)
	if err != nil {
		log.Debug("malformed date", "value", r.Date, "err", err)
	} else {
		rec.Day = day
		rec.At = at
	}

	if strings.TrimSpace(r.Time) != "" {
		tod, err := ParseTimeOfDay(r.Time)
		if err != nil {
			log.Debug("malformed time", "value", r.Time, "err", err)
			rec.At = nil
		} else {
			rec.At = &tod
		}
	}

	d, ok, err := ParseDuration(r.Duration)
	switch {
	case err != nil:
		// a duration we cannot read makes the end unknown
		log.Debug("malformed duration", "value", r.Duration, "err", err)
		rec.At = nil
	case ok:
		rec.Duration = &d
	}

	if r.StyleValue != nil {
		rec.Style = *r.StyleValue
	} else {
		rec.Style = ParseStyle(r.Style)
	}
	return rec
}

func parseDate(s string) (*int, *activity.TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil, fmt.Errorf("empty date")
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		day := timeline.AbsoluteDay(t)
		return &day, nil, nil
	}
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			continue
		}
		day := timeline.AbsoluteDay(t)
		tod := activity.TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
		return &day, &tod, nil
	}
	return nil, nil, fmt.Errorf("unrecognized date %q", s)
}

// ParseTimeOfDay reads "15:04" or "15:04:05"; seconds are dropped.
func ParseTimeOfDay(s string) (activity.TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return activity.TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return activity.TimeOfDay{}, fmt.Errorf("unrecognized time of day %q", s)
}

// ParseDuration reads a duration in minutes: "45", "12.5", "1:30" (H:MM) or a
// Go duration such as "90m" or "1h15m". ok is false for an empty value.
// Negative values are kept; the normalizer folds them.
func ParseDuration(s string) (minutes float64, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false, fmt.Errorf("unrecognized duration %q", s)
		}
		return v, true, nil
	}
	if h, m, found := strings.Cut(s, ":"); found {
		neg := strings.HasPrefix(h, "-")
		hours, err1 := strconv.Atoi(strings.TrimPrefix(h, "-"))
		mins, err2 := strconv.Atoi(m)
		if err1 != nil || err2 != nil || mins < 0 || mins > 59 || len(m) != 2 {
			return 0, false, fmt.Errorf("unrecognized duration %q", s)
		}
		v := float64(hours*60 + mins)
		if neg {
			v = -v
		}
		return v, true, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false, fmt.Errorf("unrecognized duration %q", s)
	}
	return d.Minutes(), true, nil
}

var styleAttrs = map[string]func(*timeline.StyleSpec){
	"bold":      func(s *timeline.StyleSpec) { s.Bold = true },
	"italic":    func(s *timeline.StyleSpec) { s.Italic = true },
	"underline": func(s *timeline.StyleSpec) { s.Underline = true },
	"reverse":   func(s *timeline.StyleSpec) { s.Reverse = true },
}

// ParseStyle reads the scalar style grammar used by CSV and SQLite columns
// and by YAML scalars:
//
//	""                       no style
//	"red", "#ff0000", "212"  colour
//	"@clocked"               named style
//	"fg=red bg=#000 bold"    structured
func ParseStyle(s string) timeline.Style {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return timeline.Style{}
	case strings.HasPrefix(s, "@"):
		return timeline.NamedStyle(strings.TrimPrefix(s, "@"))
	}

	fields := strings.Fields(s)
	structured := len(fields) > 1
	for _, f := range fields {
		if strings.Contains(f, "=") || styleAttrs[strings.ToLower(f)] != nil {
			structured = true
		}
	}
	if !structured {
		return timeline.ColorStyle(s)
	}

	var spec timeline.StyleSpec
	for _, f := range fields {
		key, value, hasValue := strings.Cut(f, "=")
		key = strings.ToLower(key)
		switch {
		case hasValue && key == "fg":
			spec.Foreground = value
		case hasValue && key == "bg":
			spec.Background = value
		case !hasValue && styleAttrs[key] != nil:
			styleAttrs[key](&spec)
		}
	}
	return timeline.StructuredStyle(spec)
}
