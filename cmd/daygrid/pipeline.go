package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/marcus/daygrid/internal/activity"
	"github.com/marcus/daygrid/internal/config"
	"github.com/marcus/daygrid/internal/source"
	"github.com/marcus/daygrid/internal/styles"
	"github.com/marcus/daygrid/internal/timeline"
	"github.com/marcus/daygrid/internal/view"
)

// pipeline turns a source file into a grid.
type pipeline struct {
	cfg    *config.Config
	path   string
	logger *slog.Logger
}

func (p pipeline) grid(ctx context.Context, now int, overlap timeline.OverlapPolicy) (*timeline.Grid, error) {
	records, err := source.Load(ctx, p.path, source.WithLogger(p.logger))
	if err != nil {
		return nil, err
	}

	opts := []activity.Option{
		activity.WithKinds(p.cfg.Activities.Kinds...),
		activity.WithLogger(p.logger),
	}
	if d := p.cfg.Grid.DefaultDuration; d != nil {
		opts = append(opts, activity.WithDefaultDuration(*d))
	}
	intervals := activity.NewNormalizer(opts...).Normalize(records)
	if p.cfg.Grid.SortInput {
		activity.SortByStart(intervals)
	}
	p.logger.Debug("normalized", "records", len(records), "intervals", len(intervals))

	r := timeline.NewRenderer(p.cfg.Grid.Layout(),
		timeline.WithNow(now),
		timeline.WithOverlapPolicy(overlap),
		timeline.WithGlyphs(p.cfg.Grid.CellGlyphs()),
	)
	return r.Render(intervals)
}

// parseNow reads the -now flag in local time. Empty means the current time.
func parseNow(s string, clock func() time.Time) (int, error) {
	if s == "" {
		return timeline.MinuteOf(clock()), nil
	}
	t, err := parseClock(s)
	if err != nil {
		return 0, err
	}
	return timeline.MinuteOf(t), nil
}

// parseClock parses a -now value as a local wall-clock time.
func parseClock(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid -now %q: want YYYY-MM-DD HH:MM", s)
}

// writeGrid prints g in the named output format.
func writeGrid(w io.Writer, g *timeline.Grid, format string, gutter int, colour bool) error {
	switch format {
	case "text", "":
		_, err := io.WriteString(w, view.Text(g, gutter)+"\n")
		return err
	case "ansi":
		_, err := io.WriteString(w, view.ANSI(g, styles.Resolve, gutter)+"\n")
		return err
	case "json":
		return view.WriteJSON(w, g, colour)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
