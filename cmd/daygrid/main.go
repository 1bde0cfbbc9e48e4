package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/marcus/daygrid/internal/config"
	"github.com/marcus/daygrid/internal/source"
	"github.com/marcus/daygrid/internal/state"
	"github.com/marcus/daygrid/internal/styles"
	"github.com/marcus/daygrid/internal/theme"
	"github.com/marcus/daygrid/internal/timeline"
	"github.com/marcus/daygrid/internal/viewer"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	formatFlag   = flag.String("format", "text", "output format: text, ansi or json")
	nowFlag      = flag.String("now", "", "current time as YYYY-MM-DD HH:MM (default: now)")
	overlapFlag  = flag.String("overlap", "", "overlap check: endpoints or range (default: from config)")
	themeFlag    = flag.String("theme", "", "color theme for ansi output and the viewer")
	tuiFlag      = flag.Bool("tui", false, "open the interactive viewer")
	initConfig   = flag.Bool("init-config", false, "write the default config file and exit")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

var errNoSource = errors.New("no source file given and no previous source recorded")

func main() {
	flag.Parse()

	// Handle version flag
	if *versionFlag || *shortVersion {
		fmt.Printf("daygrid version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if *initConfig {
		if err := writeDefaultConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Load persistent state (ignore errors - state is optional)
	_ = state.Init()

	applyTheme(cfg, *themeFlag, *tuiFlag, logger)

	path, err := resolveSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		flag.Usage()
		os.Exit(1)
	}
	p := pipeline{cfg: cfg, path: path, logger: logger}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *tuiFlag {
		err = runViewer(ctx, p, logger)
	} else {
		err = runOnce(ctx, p)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, p pipeline) error {
	now, err := parseNow(*nowFlag, time.Now)
	if err != nil {
		return err
	}
	overlap, err := overlapPolicy(p.cfg, *overlapFlag, "")
	if err != nil {
		return err
	}
	g, err := p.grid(ctx, now, overlap)
	if err != nil {
		return err
	}
	colour := term.IsTerminal(int(os.Stdout.Fd()))
	return writeGrid(os.Stdout, g, *formatFlag, p.cfg.Grid.LabelWidth, colour)
}

func runViewer(ctx context.Context, p pipeline, logger *slog.Logger) error {
	var watch <-chan struct{}
	if ch, err := source.Watch(ctx, p.path); err != nil {
		logger.Warn("file watch unavailable", "path", p.path, "err", err)
	} else {
		watch = ch
	}

	model, err := newViewer(ctx, p, *nowFlag, *overlapFlag, watch)
	if err != nil {
		return err
	}
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = prog.Run()
	return err
}

// newViewer builds the viewer model. A fixed -now freezes the viewer's clock.
// The TUI owns the terminal, so the viewer and the pipeline it drives log
// nowhere; failures reach the user as toasts.
func newViewer(ctx context.Context, p pipeline, nowText, overlapText string, watch <-chan struct{}) (viewer.Model, error) {
	overlap, err := overlapPolicy(p.cfg, overlapText, state.GetOverlap())
	if err != nil {
		return viewer.Model{}, err
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	p.logger = quiet

	opts := []viewer.Option{
		viewer.WithTitle("daygrid " + filepath.Base(p.path)),
		viewer.WithOverlap(overlap),
		viewer.WithRefreshInterval(p.cfg.UI.RefreshInterval),
		viewer.WithGutter(p.cfg.Grid.LabelWidth),
		viewer.WithLogger(quiet),
	}
	if nowText != "" {
		fixed, err := parseClock(nowText)
		if err != nil {
			return viewer.Model{}, err
		}
		opts = append(opts, viewer.WithClock(func() time.Time { return fixed }))
	}
	if watch != nil {
		opts = append(opts, viewer.WithWatch(watch))
	}

	load := func(req viewer.Request) (*timeline.Grid, error) {
		return p.grid(ctx, req.Now, req.Overlap)
	}
	return viewer.New(load, opts...), nil
}

// overlapPolicy picks the overlap test: the flag, then saved viewer state,
// then config.
func overlapPolicy(cfg *config.Config, flagValue, saved string) (timeline.OverlapPolicy, error) {
	if flagValue != "" {
		return timeline.ParseOverlapPolicy(flagValue)
	}
	if saved != "" {
		if p, err := timeline.ParseOverlapPolicy(saved); err == nil {
			return p, nil
		}
	}
	return cfg.Grid.OverlapPolicy(), nil
}

// applyTheme installs the theme: the flag wins, then the theme last picked
// in the viewer, then config.
func applyTheme(cfg *config.Config, flagTheme string, viewerMode bool, logger *slog.Logger) {
	name := cfg.UI.Theme.Name
	if saved := state.GetTheme(); viewerMode && saved != "" && styles.IsValidTheme(saved) {
		name = saved
	}
	if flagTheme != "" {
		if !styles.IsValidTheme(flagTheme) {
			logger.Warn("unknown theme", "name", flagTheme, "available", styles.ListThemes())
		} else {
			name = flagTheme
		}
	}
	cfg.UI.Theme.Name = name
	theme.ApplyResolved(theme.ResolveTheme(cfg))
}

// resolveSource returns the source path from the argument or the last one
// used, and remembers it.
func resolveSource(arg string) (string, error) {
	path := arg
	if path == "" {
		path = state.GetLastSource()
	}
	if path == "" {
		return "", errNoSource
	}
	path = config.ExpandPath(path)
	if _, err := source.DetectFormat(path); err != nil {
		return "", err
	}
	_ = state.SetLastSource(path)
	return path, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func writeDefaultConfig(path string) error {
	if path == "" {
		path = config.ConfigPath()
	}
	if path == "" {
		return errors.New("no config location")
	}
	if err := config.SaveTo(path, config.Default()); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	// Try to get version from Go build info
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	// Check module version
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	// Fall back to VCS info
	var revision string
	var dirty bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}

	return "devel"
}

func init() {
	// Customize usage output
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: daygrid [options] <activities.yaml|.csv|.db>\n\n")
		fmt.Fprintf(os.Stderr, "Lays activities out on a day-by-time grid.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
