package tools

import (
	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/input/pointer"
	"github.com/easelkit/easel/internal/scene"
	"github.com/easelkit/easel/internal/tool"
)

// Pan scrolls the viewport by dragging. It works in screen space so
// panning feels identical at every zoom level.
type Pan struct {
	*tool.Base
	tool.NopHooks

	vp   *scene.Viewport
	last geom.Point
}

// NewPan creates the pan tool. The concrete viewport is needed because
// this tool mutates it; the manager only reads it.
func NewPan(m *tool.Manager, vp *scene.Viewport) *Pan {
	p := &Pan{vp: vp}
	p.Base = tool.NewBase(m, tool.Options{
		ID:          "pan",
		Name:        "Pan",
		Description: "Scroll the canvas",
		Shortcut:    "h",
		Cursor:      "grab",
	}, p)
	return p
}

// OnDragStart anchors at the gesture start and applies the
// displacement accumulated before the drag threshold was crossed.
func (p *Pan) OnDragStart(ev pointer.Event) {
	p.last = p.State().StartScreen
	p.OnDrag(ev)
}

// OnDrag shifts the viewport by the screen-space movement since the
// last event.
func (p *Pan) OnDrag(ev pointer.Event) {
	if p.vp == nil {
		return
	}
	p.vp.PanBy(ev.Screen.Sub(p.last))
	p.last = ev.Screen
	p.RequestRedraw()
}

// Cursor reports a grabbing cursor mid-drag.
func (p *Pan) Cursor() string {
	if p.State().IsDragging {
		return "grabbing"
	}
	return p.Base.Cursor()
}
