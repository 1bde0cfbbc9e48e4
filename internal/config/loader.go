package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/daygrid"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Grid       rawGridConfig    `json:"grid"`
	Activities ActivitiesConfig `json:"activities"`
	UI         rawUIConfig      `json:"ui"`
}

type rawGridConfig struct {
	DayStartOffset  *int         `json:"dayStartOffsetMinutes"`
	Quantum         *int         `json:"quantumMinutes"`
	DefaultDuration *float64     `json:"defaultDurationMinutes"`
	Overlap         string       `json:"overlap"`
	LabelWidth      *int         `json:"labelWidth"`
	SortInput       *bool        `json:"sortInput"`
	Glyphs          GlyphsConfig `json:"glyphs"`
}

type rawUIConfig struct {
	Theme           ThemeConfig            `json:"theme"`
	Styles          map[string]StyleConfig `json:"styles"`
	RefreshInterval string                 `json:"refreshInterval"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/daygrid/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil // Return defaults on error
		}
	}

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Grid
	if raw.Grid.DayStartOffset != nil {
		cfg.Grid.DayStartOffset = *raw.Grid.DayStartOffset
	}
	if raw.Grid.Quantum != nil {
		cfg.Grid.Quantum = *raw.Grid.Quantum
	}
	if raw.Grid.DefaultDuration != nil {
		d := *raw.Grid.DefaultDuration
		cfg.Grid.DefaultDuration = &d
	}
	if raw.Grid.Overlap != "" {
		cfg.Grid.Overlap = raw.Grid.Overlap
	}
	if raw.Grid.LabelWidth != nil {
		cfg.Grid.LabelWidth = *raw.Grid.LabelWidth
	}
	if raw.Grid.SortInput != nil {
		cfg.Grid.SortInput = *raw.Grid.SortInput
	}
	if raw.Grid.Glyphs.Empty != "" {
		cfg.Grid.Glyphs.Empty = raw.Grid.Glyphs.Empty
	}
	if raw.Grid.Glyphs.Filled != "" {
		cfg.Grid.Glyphs.Filled = raw.Grid.Glyphs.Filled
	}
	if raw.Grid.Glyphs.Overlap != "" {
		cfg.Grid.Glyphs.Overlap = raw.Grid.Glyphs.Overlap
	}
	if raw.Grid.Glyphs.Hour != "" {
		cfg.Grid.Glyphs.Hour = raw.Grid.Glyphs.Hour
	}

	// Activities
	if len(raw.Activities.Kinds) > 0 {
		cfg.Activities.Kinds = append([]string(nil), raw.Activities.Kinds...)
	}

	// UI
	if raw.UI.Theme.Community != "" {
		cfg.UI.Theme.Community = raw.UI.Theme.Community
	}
	if raw.UI.Theme.Name != "" {
		cfg.UI.Theme.Name = raw.UI.Theme.Name
	}
	for k, v := range raw.UI.Theme.Overrides {
		cfg.UI.Theme.Overrides[k] = v
	}
	for name, s := range raw.UI.Styles {
		cfg.UI.Styles[name] = s
	}
	if raw.UI.RefreshInterval != "" {
		if d, err := time.ParseDuration(raw.UI.RefreshInterval); err == nil {
			cfg.UI.RefreshInterval = d
		}
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// testConfigPath overrides ConfigPath in tests.
var testConfigPath string

// SetTestConfigPath points ConfigPath at path. For tests only.
func SetTestConfigPath(path string) {
	testConfigPath = path
}

// ResetTestConfigPath restores the default config location.
func ResetTestConfigPath() {
	testConfigPath = ""
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
