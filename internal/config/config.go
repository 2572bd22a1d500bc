// Package config loads qss settings from TOML files, layered over the
// built-in defaults: defaults, then the user config, then a config file
// in the working directory, then an explicit --config path.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Slideshow SlideshowConfig `koanf:"slideshow"`
	Images    ImagesConfig    `koanf:"images"`
	Web       WebConfig       `koanf:"web"`
	Tools     ToolsConfig     `koanf:"external_tools"`
	Files     FilesConfig     `koanf:"file_operations"`

	// Binding tables, keyed action -> token(s). Extracted separately
	// because token values may be a single string or a list.
	Hotkeys  BindingLayers
	Gestures BindingLayers
}

// SlideshowConfig holds playback settings.
type SlideshowConfig struct {
	Speed         float64 `koanf:"speed"`
	Repeat        bool    `koanf:"repeat"`
	Shuffle       bool    `koanf:"shuffle"`
	AlwaysOnTop   bool    `koanf:"always_on_top"`
	PausedOnStart bool    `koanf:"paused_on_start"`
	StatusFormat  string  `koanf:"status_format"`
	RememberFile  string  `koanf:"remember_file"`
	NotesFile     string  `koanf:"notes_file"`
}

// ImagesConfig holds discovery settings.
type ImagesConfig struct {
	Recursive       bool     `koanf:"recursive"`
	ExcludePatterns []string `koanf:"exclude_patterns"`
	Extensions      []string `koanf:"extensions"` // additions beyond the defaults
}

// WebConfig holds the HTTP server settings.
type WebConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
}

// ToolsConfig controls external tool discovery.
type ToolsConfig struct {
	BaseName  string `koanf:"base_name"`
	SearchDir string `koanf:"search_dir"`
}

// FilesConfig controls trash and undo behavior.
type FilesConfig struct {
	EnableTrash     bool `koanf:"enable_trash"`
	EnableUndo      bool `koanf:"enable_undo"`
	MaxUndoHistory  int  `koanf:"max_undo_history"`
	AutoCleanupDays int  `koanf:"auto_cleanup_days"`
}

// BindingLayers are the two configuration layers of one input modality.
// Each maps action name to one token or a list of equivalent tokens.
type BindingLayers struct {
	Common map[string][]string
	GUI    map[string][]string
	Web    map[string][]string
}

// Load reads configuration, later files overriding earlier ones. An
// empty explicitPath is skipped; a non-empty one must exist.
func Load(explicitPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, fmt.Errorf("parse built-in defaults: %w", err)
	}

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, fmt.Errorf("config file not found: %s", explicitPath)
		}
		if err := k.Load(file.Provider(explicitPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicitPath, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Hotkeys = bindingLayers(k, "hotkeys")
	cfg.Gestures = bindingLayers(k, "gestures")

	cfg.Slideshow.RememberFile = expandPath(cfg.Slideshow.RememberFile)
	cfg.Slideshow.NotesFile = expandPath(cfg.Slideshow.NotesFile)
	cfg.Tools.SearchDir = expandPath(cfg.Tools.SearchDir)

	return cfg, nil
}

func configPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, "qss", "config.toml"),
		"qss.toml",
	}
}

// bindingLayers reads one modality's layered tables. Token values may be
// a plain string or a list of strings.
func bindingLayers(k *koanf.Koanf, prefix string) BindingLayers {
	return BindingLayers{
		Common: bindingTable(k, prefix+".common"),
		GUI:    bindingTable(k, prefix+".gui"),
		Web:    bindingTable(k, prefix+".web"),
	}
}

func bindingTable(k *koanf.Koanf, path string) map[string][]string {
	raw, ok := k.Get(path).(map[string]any)
	if !ok {
		return nil
	}
	table := make(map[string][]string, len(raw))
	for action, value := range raw {
		switch v := value.(type) {
		case string:
			table[action] = []string{v}
		case []any:
			tokens := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					tokens = append(tokens, s)
				}
			}
			if len(tokens) > 0 {
				table[action] = tokens
			}
		}
	}
	return table
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// WriteDefault writes the built-in default configuration to path, for
// the generate-config command.
func WriteDefault(path string) error {
	return os.WriteFile(path, defaultConfig, 0o644)
}
