// Package config loads and saves editor input settings: grid snapping,
// undo depth, and per-tool shortcut/cursor overrides. JSON files are
// read with gjson and written with sjson so unknown settings survive a
// round trip; YAML is supported for hand-maintained files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/easelkit/easel/internal/input/key"
)

// Errors returned by configuration operations.
var (
	// ErrUnsupportedFormat indicates the file extension is not handled.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalidShortcut indicates a tool shortcut failed to parse.
	ErrInvalidShortcut = errors.New("invalid shortcut")
)

// ToolConfig overrides one tool's presentation and binding.
type ToolConfig struct {
	Shortcut string `yaml:"shortcut,omitempty"`
	Cursor   string `yaml:"cursor,omitempty"`
}

// Config holds the input controller's user-tunable settings.
type Config struct {
	// SnapEnabled toggles grid snapping.
	SnapEnabled bool `yaml:"snap_enabled"`

	// GridSpacing is the snap grid cell size in world units.
	GridSpacing float64 `yaml:"grid_spacing"`

	// HistoryLimit caps the undo stack depth. Zero means the history
	// package default.
	HistoryLimit int `yaml:"history_limit"`

	// ActiveTool is the tool to activate at startup.
	ActiveTool string `yaml:"active_tool,omitempty"`

	// Tools maps tool ids to overrides.
	Tools map[string]ToolConfig `yaml:"tools,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		SnapEnabled: true,
		GridSpacing: 10,
		ActiveTool:  "select",
	}
}

// Validate checks that every tool shortcut override parses.
func (c Config) Validate() error {
	for id, tc := range c.Tools {
		if tc.Shortcut == "" {
			continue
		}
		if _, err := key.ParseShortcut(tc.Shortcut); err != nil {
			return fmt.Errorf("%w for tool %q: %v", ErrInvalidShortcut, id, err)
		}
	}
	return nil
}

// ParseJSON reads settings from JSON, leaving defaults in place for
// absent keys.
func ParseJSON(data []byte) (Config, error) {
	if !gjson.ValidBytes(data) {
		return Config{}, fmt.Errorf("parse config: invalid JSON")
	}

	c := Default()
	root := gjson.ParseBytes(data)

	if v := root.Get("snap_enabled"); v.Exists() {
		c.SnapEnabled = v.Bool()
	}
	if v := root.Get("grid_spacing"); v.Exists() {
		c.GridSpacing = v.Float()
	}
	if v := root.Get("history_limit"); v.Exists() {
		c.HistoryLimit = int(v.Int())
	}
	if v := root.Get("active_tool"); v.Exists() {
		c.ActiveTool = v.String()
	}

	if tools := root.Get("tools"); tools.IsObject() {
		c.Tools = make(map[string]ToolConfig)
		tools.ForEach(func(id, v gjson.Result) bool {
			c.Tools[id.String()] = ToolConfig{
				Shortcut: v.Get("shortcut").String(),
				Cursor:   v.Get("cursor").String(),
			}
			return true
		})
	}

	return c, c.Validate()
}

// MarshalJSON renders the settings as JSON.
func (c Config) MarshalJSON() ([]byte, error) {
	out := "{}"
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.Set(out, path, value)
	}

	set("snap_enabled", c.SnapEnabled)
	set("grid_spacing", c.GridSpacing)
	set("history_limit", c.HistoryLimit)
	if c.ActiveTool != "" {
		set("active_tool", c.ActiveTool)
	}
	for id, tc := range c.Tools {
		if tc.Shortcut != "" {
			set("tools."+id+".shortcut", tc.Shortcut)
		}
		if tc.Cursor != "" {
			set("tools."+id+".cursor", tc.Cursor)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return []byte(out), nil
}

// ParseYAML reads settings from YAML, leaving defaults in place for
// absent keys.
func ParseYAML(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return c, c.Validate()
}

// MarshalYAML renders the settings as YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Load reads a config file, choosing the codec by extension
// (.json, .yaml, .yml).
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Save writes a config file, choosing the codec by extension.
func Save(path string, c Config) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = c.MarshalJSON()
	case ".yaml", ".yml":
		data, err = c.MarshalYAML()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
