package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

// useTempState points the package at a fresh state file for one test.
func useTempState(t *testing.T) string {
	t.Helper()
	originalPath := path
	originalCurrent := current
	t.Cleanup(func() {
		path = originalPath
		current = originalCurrent
	})

	dir := filepath.Join(t.TempDir(), ".config", "daygrid")
	if err := InitWithDir(dir); err != nil {
		t.Fatalf("InitWithDir() failed: %v", err)
	}
	return filepath.Join(dir, "state.json")
}

func TestInit_Defaults(t *testing.T) {
	useTempState(t)
	if current == nil {
		t.Fatal("current state should be initialized")
	}
	if GetLastSource() != "" || GetTheme() != "" || GetOverlap() != "" {
		t.Errorf("defaults = %+v, want empty", *current)
	}
}

func TestLoad_ExistingFile(t *testing.T) {
	file := useTempState(t)
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		t.Fatal(err)
	}
	data := `{"lastSource": "/tmp/day.yaml", "theme": "light", "overlap": "range"}`
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := GetLastSource(); got != "/tmp/day.yaml" {
		t.Errorf("LastSource = %q, want /tmp/day.yaml", got)
	}
	if got := GetTheme(); got != "light" {
		t.Errorf("Theme = %q, want light", got)
	}
	if got := GetOverlap(); got != "range" {
		t.Errorf("Overlap = %q, want range", got)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	file := useTempState(t)
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Load(); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestSetLastSource_RecentList(t *testing.T) {
	file := useTempState(t)

	for _, p := range []string{"/a.yaml", "/b.csv", "/a.yaml"} {
		if err := SetLastSource(p); err != nil {
			t.Fatalf("SetLastSource(%s) failed: %v", p, err)
		}
	}
	if got := GetLastSource(); got != "/a.yaml" {
		t.Errorf("LastSource = %q, want /a.yaml", got)
	}
	want := []string{"/a.yaml", "/b.csv"}
	if got := GetRecentSources(); !reflect.DeepEqual(got, want) {
		t.Errorf("RecentSources = %v, want %v", got, want)
	}

	// persisted
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("state file not written: %v", err)
	}
	var saved State
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatal(err)
	}
	if saved.LastSource != "/a.yaml" {
		t.Errorf("saved LastSource = %q, want /a.yaml", saved.LastSource)
	}
}

func TestSetLastSource_Bounded(t *testing.T) {
	useTempState(t)
	for i := 0; i < maxRecentSources+5; i++ {
		if err := SetLastSource(fmt.Sprintf("/day%d.yaml", i)); err != nil {
			t.Fatal(err)
		}
	}
	got := GetRecentSources()
	if len(got) != maxRecentSources {
		t.Fatalf("got %d recent sources, want %d", len(got), maxRecentSources)
	}
	if got[0] != fmt.Sprintf("/day%d.yaml", maxRecentSources+4) {
		t.Errorf("most recent = %q", got[0])
	}
}

func TestSetTheme_InitializesNilState(t *testing.T) {
	useTempState(t)
	current = nil

	if err := SetTheme("light"); err != nil {
		t.Fatalf("SetTheme() failed: %v", err)
	}
	if got := GetTheme(); got != "light" {
		t.Errorf("Theme = %q, want light", got)
	}
}

func TestSave_NoPath(t *testing.T) {
	originalPath := path
	originalCurrent := current
	defer func() {
		path = originalPath
		current = originalCurrent
	}()

	path = ""
	current = &State{Theme: "light"}
	if err := Save(); err != nil {
		t.Errorf("Save() without a path = %v, want nil", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	useTempState(t)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			if err := SetTheme(fmt.Sprintf("theme-%d", n)); err != nil {
				errs <- err
			}
		}(i)
		go func() {
			defer wg.Done()
			_ = GetTheme()
			_ = GetRecentSources()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent access error: %v", err)
	}
}
