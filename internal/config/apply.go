package config

import (
	"github.com/easelkit/easel/internal/logging"
	"github.com/easelkit/easel/internal/scene"
	"github.com/easelkit/easel/internal/tool"
)

// Apply pushes the settings onto a manager and its collaborators.
// Overrides for unknown tools are logged and skipped, never fatal.
func Apply(c Config, m *tool.Manager, grid *scene.Grid) {
	m.SetSnapEnabled(c.SnapEnabled)
	if grid != nil && c.GridSpacing > 0 {
		grid.Spacing = c.GridSpacing
	}

	for id, tc := range c.Tools {
		t, ok := m.Tool(id)
		if !ok {
			logging.Logger().Warn("config override for unknown tool", "id", id)
			continue
		}
		if tc.Shortcut != "" {
			if s, ok := t.(interface{ SetShortcut(string) }); ok {
				s.SetShortcut(tc.Shortcut)
			}
		}
		if tc.Cursor != "" {
			if s, ok := t.(interface{ SetCursor(string) }); ok {
				s.SetCursor(tc.Cursor)
			}
		}
	}

	if c.ActiveTool != "" {
		if _, ok := m.Tool(c.ActiveTool); ok {
			m.Activate(c.ActiveTool)
		}
	}
}
