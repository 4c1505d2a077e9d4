package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/easelkit/easel/internal/scene"
	"github.com/easelkit/easel/internal/tool"
)

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"snap_enabled": false,
		"grid_spacing": 25,
		"history_limit": 50,
		"active_tool": "pan",
		"tools": {
			"rect": {"shortcut": "ctrl+r", "cursor": "cell"}
		}
	}`)

	c, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if c.SnapEnabled {
		t.Error("SnapEnabled should be false")
	}
	if c.GridSpacing != 25 {
		t.Errorf("GridSpacing = %v, want 25", c.GridSpacing)
	}
	if c.HistoryLimit != 50 {
		t.Errorf("HistoryLimit = %d, want 50", c.HistoryLimit)
	}
	if c.ActiveTool != "pan" {
		t.Errorf("ActiveTool = %q, want pan", c.ActiveTool)
	}
	if tc := c.Tools["rect"]; tc.Shortcut != "ctrl+r" || tc.Cursor != "cell" {
		t.Errorf("rect override = %+v", tc)
	}
}

func TestParseJSONDefaultsForAbsentKeys(t *testing.T) {
	c, err := ParseJSON([]byte(`{"grid_spacing": 5}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if !c.SnapEnabled {
		t.Error("absent snap_enabled should keep the default")
	}
	if c.GridSpacing != 5 {
		t.Errorf("GridSpacing = %v, want 5", c.GridSpacing)
	}
	if c.ActiveTool != "select" {
		t.Errorf("ActiveTool = %q, want default select", c.ActiveTool)
	}
}

func TestParseJSONRejectsGarbage(t *testing.T) {
	if _, err := ParseJSON([]byte(`{not json`)); err == nil {
		t.Error("invalid JSON should fail")
	}
}

func TestParseRejectsBadShortcut(t *testing.T) {
	data := []byte(`{"tools": {"rect": {"shortcut": "bogus+x+"}}}`)
	if _, err := ParseJSON(data); !errors.Is(err, ErrInvalidShortcut) {
		t.Errorf("err = %v, want ErrInvalidShortcut", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	orig := Default()
	orig.SnapEnabled = false
	orig.GridSpacing = 8
	orig.Tools = map[string]ToolConfig{"pan": {Shortcut: "space"}}

	data, err := orig.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	got, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.SnapEnabled != orig.SnapEnabled || got.GridSpacing != orig.GridSpacing {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Tools["pan"].Shortcut != "space" {
		t.Errorf("pan override lost: %+v", got.Tools)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	orig := Default()
	orig.GridSpacing = 16
	orig.Tools = map[string]ToolConfig{"select": {Cursor: "pointer"}}

	data, err := orig.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}

	got, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if got.GridSpacing != 16 {
		t.Errorf("GridSpacing = %v, want 16", got.GridSpacing)
	}
	if got.Tools["select"].Cursor != "pointer" {
		t.Errorf("select override lost: %+v", got.Tools)
	}
}

func TestLoadSaveByExtension(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"conf.json", "conf.yaml"} {
		path := filepath.Join(dir, name)
		c := Default()
		c.GridSpacing = 42

		if err := Save(path, c); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load %s: %v", name, err)
		}
		if got.GridSpacing != 42 {
			t.Errorf("%s: GridSpacing = %v, want 42", name, got.GridSpacing)
		}
	}

	bad := filepath.Join(dir, "conf.toml")
	if err := os.WriteFile(bad, []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

type stubTool struct {
	*tool.Base
}

func newStubTool(m *tool.Manager, id, shortcut string) *stubTool {
	t := &stubTool{}
	t.Base = tool.NewBase(m, tool.Options{ID: id, Shortcut: shortcut, Cursor: "default"}, nil)
	return t
}

func TestApply(t *testing.T) {
	m := tool.NewManager()
	grid := scene.NewGrid(10)
	m.SetGrid(grid)
	m.Register(newStubTool(m, "select", "v"))
	m.Register(newStubTool(m, "rect", "r"))

	c := Config{
		SnapEnabled: false,
		GridSpacing: 20,
		ActiveTool:  "rect",
		Tools: map[string]ToolConfig{
			"rect":    {Shortcut: "ctrl+r", Cursor: "cell"},
			"unknown": {Shortcut: "q"},
		},
	}
	Apply(c, m, grid)

	if m.SnapEnabled() {
		t.Error("snapping should be disabled")
	}
	if grid.Spacing != 20 {
		t.Errorf("Spacing = %v, want 20", grid.Spacing)
	}

	rect, _ := m.Tool("rect")
	if rect.Shortcut() != "ctrl+r" {
		t.Errorf("Shortcut = %q, want ctrl+r", rect.Shortcut())
	}
	if rect.Cursor() != "cell" {
		t.Errorf("Cursor = %q, want cell", rect.Cursor())
	}
	if m.ActiveTool() == nil || m.ActiveTool().ID() != "rect" {
		t.Error("active_tool should activate rect")
	}
}
