// Package source reads raw activity records from files: YAML or JSON lists,
// CSV tables and SQLite databases.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/marcus/daygrid/internal/activity"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// Format identifies a reader.
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

// DetectFormat picks the reader for a path by extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for malformed fields.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Load reads every record of the file at path. Malformed fields leave the
// record incomplete for the normalizer to drop; only I/O and syntax errors
// are returned.
func Load(ctx context.Context, path string, opts ...Option) ([]activity.Record, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var raws []rawRecord
	switch format {
	case FormatYAML:
		raws, err = readYAML(path)
	case FormatCSV:
		raws, err = readCSV(path)
	case FormatSQLite:
		raws, err = readSQLite(ctx, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	records := make([]activity.Record, len(raws))
	for i, raw := range raws {
		records[i] = raw.record(o.logger.With("source", path, "row", i+1))
	}
	return records, nil
}
