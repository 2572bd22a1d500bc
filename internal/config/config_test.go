package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Slideshow.Speed != 3.0 {
		t.Errorf("Speed = %v, want 3.0", cfg.Slideshow.Speed)
	}
	if cfg.Slideshow.Repeat {
		t.Error("Repeat should default to false")
	}
	if cfg.Web.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Web.Port)
	}
	if cfg.Tools.BaseName != "tool" {
		t.Errorf("BaseName = %q, want tool", cfg.Tools.BaseName)
	}
	if !cfg.Files.EnableTrash || cfg.Files.MaxUndoHistory != 50 {
		t.Errorf("file operations defaults = %+v", cfg.Files)
	}
}

func TestLoad_DefaultBindings(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	next := cfg.Hotkeys.Common["navigate_next"]
	if !slices.Contains(next, "right") || !slices.Contains(next, "pgdown") {
		t.Errorf("navigate_next tokens = %v", next)
	}
	if got := cfg.Hotkeys.GUI["toggle_always_on_top"]; !slices.Equal(got, []string{"t"}) {
		t.Errorf("toggle_always_on_top = %v, want [t]", got)
	}
	if got := cfg.Gestures.Common["navigate_next"]; !slices.Equal(got, []string{"swipe_left"}) {
		t.Errorf("gesture navigate_next = %v, want [swipe_left]", got)
	}
	if got := cfg.Gestures.Web["three_finger_tap"]; len(got) != 0 {
		t.Errorf("gestures are keyed by action, got token key: %v", got)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	content := `
[slideshow]
speed = 7.5
repeat = true

[web]
port = 9000

[hotkeys.common]
navigate_next = "n"
toggle_pause = ["p", "k"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Slideshow.Speed != 7.5 {
		t.Errorf("Speed = %v, want 7.5", cfg.Slideshow.Speed)
	}
	if !cfg.Slideshow.Repeat {
		t.Error("Repeat should be overridden to true")
	}
	if cfg.Web.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Web.Port)
	}
	// Untouched settings keep their defaults.
	if cfg.Web.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want default", cfg.Web.Host)
	}

	// Single-string and list token values both normalize to slices.
	if got := cfg.Hotkeys.Common["navigate_next"]; !slices.Equal(got, []string{"n"}) {
		t.Errorf("navigate_next = %v, want [n]", got)
	}
	if got := cfg.Hotkeys.Common["toggle_pause"]; !slices.Equal(got, []string{"p", "k"}) {
		t.Errorf("toggle_pause = %v, want [p k]", got)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load("/no/such/config.toml"); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qss.toml")

	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}

	// The generated file must load back cleanly.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Slideshow.Speed != 3.0 {
		t.Errorf("Speed = %v, want 3.0", cfg.Slideshow.Speed)
	}
}
