package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Grid       GridConfig       `json:"grid"`
	Activities ActivitiesConfig `json:"activities"`
	UI         saveUIConfig     `json:"ui"`
}

type saveUIConfig struct {
	Theme           ThemeConfig            `json:"theme"`
	Styles          map[string]StyleConfig `json:"styles,omitempty"`
	RefreshInterval string                 `json:"refreshInterval,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Grid:       cfg.Grid,
		Activities: cfg.Activities,
		UI: saveUIConfig{
			Theme:           cfg.UI.Theme,
			Styles:          cfg.UI.Styles,
			RefreshInterval: cfg.UI.RefreshInterval.String(),
		},
	}
}

// Save writes the config to ~/.config/daygrid/config.json. Keys of an
// existing file that Save does not manage are kept.
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg *Config) error {
	path = ExpandPath(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		// An unreadable file is replaced rather than merged.
		_ = json.Unmarshal(existing, &merged)
	}

	managed, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(managed, &fields); err != nil {
		return err
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
