// Package state persists viewer preferences between runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// maxRecentSources bounds the recent source list.
const maxRecentSources = 10

// State holds persistent user preferences.
type State struct {
	LastSource    string   `json:"lastSource,omitempty"`    // absolute path of the last file shown
	RecentSources []string `json:"recentSources,omitempty"` // most recent first
	Theme         string   `json:"theme,omitempty"`         // theme picked in the viewer
	Overlap       string   `json:"overlap,omitempty"`       // "endpoints" or "range", empty = config
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "daygrid"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetLastSource returns the last source path, or "".
func GetLastSource() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.LastSource
}

// SetLastSource records src as the last source and moves it to the front
// of the recent list.
func SetLastSource(src string) error {
	if abs, err := filepath.Abs(src); err == nil {
		src = abs
	}

	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.LastSource = src
	recent := []string{src}
	for _, p := range current.RecentSources {
		if p != src && len(recent) < maxRecentSources {
			recent = append(recent, p)
		}
	}
	current.RecentSources = recent
	mu.Unlock()
	return Save()
}

// GetRecentSources returns a copy of the recent source list.
func GetRecentSources() []string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return nil
	}
	return append([]string(nil), current.RecentSources...)
}

// GetTheme returns the theme picked in the viewer, or "".
func GetTheme() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.Theme
}

// SetTheme saves the theme preference.
func SetTheme(name string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.Theme = name
	mu.Unlock()
	return Save()
}

// GetOverlap returns the overlap policy picked in the viewer, or "".
func GetOverlap() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.Overlap
}

// SetOverlap saves the overlap policy preference.
func SetOverlap(policy string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.Overlap = policy
	mu.Unlock()
	return Save()
}
