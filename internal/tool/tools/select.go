package tools

import (
	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/history"
	"github.com/easelkit/easel/internal/input/key"
	"github.com/easelkit/easel/internal/input/pointer"
	"github.com/easelkit/easel/internal/scene"
	"github.com/easelkit/easel/internal/tool"
)

// dragMode is what a select-tool drag is manipulating.
type dragMode int

const (
	dragNone dragMode = iota
	dragMove
	dragResize
	dragMarquee
)

// Select is the default selection tool: click to select, drag objects
// to move them, drag resize handles to scale, drag empty canvas for a
// marquee selection. Shift extends the selection on click and locks
// the aspect ratio while resizing.
type Select struct {
	*tool.Base
	tool.NopHooks

	sel *scene.Selection

	mode       dragMode
	handle     scene.Handle
	origBounds geom.Rect
	marquee    geom.Rect
	hasMarquee bool
}

// NewSelect creates the selection tool. The concrete selection is
// needed because this tool mutates it; the manager only reads it.
func NewSelect(m *tool.Manager, sel *scene.Selection) *Select {
	s := &Select{sel: sel}
	s.Base = tool.NewBase(m, tool.Options{
		ID:          "select",
		Name:        "Select",
		Description: "Select, move and resize objects",
		Shortcut:    "v",
		Cursor:      "default",
	}, s)
	return s
}

// Marquee returns the in-progress marquee rectangle in world space.
func (s *Select) Marquee() (geom.Rect, bool) {
	return s.marquee, s.hasMarquee
}

// OnClick selects the object under the pointer, extends the selection
// with shift, or clears it on empty canvas. Clicking a handle changes
// nothing.
func (s *Select) OnClick(ev pointer.Event) {
	hit := s.HitTest(s.State().CurrentPoint, tool.HitTestOptions{})
	switch hit.Kind {
	case tool.HitHandle:
		return
	case tool.HitObject:
		if ev.Modifiers.HasShift() {
			s.sel.Add(hit.Object)
		} else {
			s.sel.Set(hit.Object)
		}
	default:
		s.sel.Clear()
	}
	s.RequestRedraw()
}

// OnDoubleClick selects everything overlapping the clicked object's
// bounds, a cheap stand-in for enter-group editing.
func (s *Select) OnDoubleClick(ev pointer.Event) {
	p := s.ScreenToWorld(ev.Screen)
	hit := s.HitTest(p, tool.HitTestOptions{})
	if hit.Kind != tool.HitObject {
		return
	}
	b, ok := hit.Object.(scene.Bounded)
	if !ok {
		return
	}
	s.sel.Set(s.ObjectsInRect(b.Bounds(), tool.RectQueryOptions{})...)
	s.RequestRedraw()
}

// OnDragStart classifies the drag: a handle hit resizes, an object hit
// moves, empty canvas starts a marquee.
func (s *Select) OnDragStart(pointer.Event) {
	start := s.State().StartPoint

	hit := s.HitTest(start, tool.HitTestOptions{})
	switch hit.Kind {
	case tool.HitHandle:
		if !hit.Handle.Kind.IsResize() {
			s.mode = dragNone
			return
		}
		s.mode = dragResize
		s.handle = hit.Handle
		if b, ok := s.sel.Bounds(); ok {
			s.origBounds = b
		}
	case tool.HitObject:
		if !s.sel.Contains(hit.Object) {
			s.sel.Set(hit.Object)
		}
		s.mode = dragMove
		// Apply the displacement accumulated before the drag threshold
		// was crossed, so the objects land under the pointer.
		s.moveSelection(s.State().Delta())
	default:
		s.mode = dragMarquee
		s.sel.Clear()
	}
}

// OnDrag applies the in-progress edit for live feedback. The edit is
// recorded for undo once at drag end.
func (s *Select) OnDrag(ev pointer.Event) {
	switch s.mode {
	case dragMove:
		s.moveSelection(s.State().MoveDelta())
	case dragResize:
		s.applyResize(ev)
	case dragMarquee:
		s.marquee = geom.FromPoints(s.State().StartPoint, s.State().CurrentPoint)
		s.hasMarquee = true
	}
	s.RequestRedraw()
}

// OnDragEnd finalizes the gesture and records one undo step.
func (s *Select) OnDragEnd(ev pointer.Event) {
	switch s.mode {
	case dragMove:
		if len(s.sel.Objects()) > 0 {
			s.PushEdit(history.NewMoveCommand(s.State().Delta(), s.sel.Objects()...))
			s.CommitAction("Move")
		}
	case dragResize:
		if target, ok := s.handle.Target.(interface {
			Bounds() geom.Rect
			SetBounds(geom.Rect)
		}); ok {
			after := target.Bounds()
			cmd := history.NewSetBoundsCommand(s.handle.Target, after)
			cmd.Before = s.origBounds
			s.PushEdit(cmd)
			s.CommitAction("Resize")
		}
	case dragMarquee:
		rect := geom.FromPoints(s.State().StartPoint, s.State().CurrentPoint)
		s.sel.Set(s.ObjectsInRect(rect, tool.RectQueryOptions{})...)
	}

	s.mode = dragNone
	s.hasMarquee = false
	s.RequestRedraw()
}

func (s *Select) moveSelection(d geom.Point) {
	for _, obj := range s.sel.Objects() {
		if m, ok := obj.(interface{ MoveBy(geom.Point) }); ok {
			m.MoveBy(d)
		}
	}
}

// applyResize recomputes the target's bounds from the dragged handle
// and the pointer's world position. Shift locks the original aspect
// ratio.
func (s *Select) applyResize(ev pointer.Event) {
	target, ok := s.handle.Target.(interface {
		Bounds() geom.Rect
		SetBounds(geom.Rect)
	})
	if !ok {
		return
	}

	p := s.SnapToGrid(s.State().CurrentPoint)
	anchor := resizeAnchor(s.handle.Kind, s.origBounds)

	if ev.Modifiers.HasShift() {
		ratio := 1.0
		if h := s.origBounds.Height(); h != 0 {
			ratio = s.origBounds.Width() / h
		}
		p = tool.ConstrainAspectRatio(anchor, p, ratio)
	}

	b := s.origBounds
	switch s.handle.Kind {
	case scene.HandleResizeNW:
		b.Min = p
	case scene.HandleResizeNE:
		b.Min.Y, b.Max.X = p.Y, p.X
	case scene.HandleResizeSE:
		b.Max = p
	case scene.HandleResizeSW:
		b.Min.X, b.Max.Y = p.X, p.Y
	case scene.HandleResizeN:
		b.Min.Y = p.Y
	case scene.HandleResizeS:
		b.Max.Y = p.Y
	case scene.HandleResizeE:
		b.Max.X = p.X
	case scene.HandleResizeW:
		b.Min.X = p.X
	}
	target.SetBounds(b)
}

// resizeAnchor is the corner or edge that stays fixed while the
// opposite handle is dragged.
func resizeAnchor(kind scene.HandleKind, b geom.Rect) geom.Point {
	switch kind {
	case scene.HandleResizeNW:
		return b.Max
	case scene.HandleResizeNE:
		return geom.Pt(b.Min.X, b.Max.Y)
	case scene.HandleResizeSE:
		return b.Min
	case scene.HandleResizeSW:
		return geom.Pt(b.Max.X, b.Min.Y)
	case scene.HandleResizeN:
		return geom.Pt(b.Center().X, b.Max.Y)
	case scene.HandleResizeS:
		return geom.Pt(b.Center().X, b.Min.Y)
	case scene.HandleResizeE:
		return geom.Pt(b.Min.X, b.Center().Y)
	case scene.HandleResizeW:
		return geom.Pt(b.Max.X, b.Center().Y)
	default:
		return b.Center()
	}
}

// OnKeyDown deletes the selection on delete/backspace and clears it on
// escape.
func (s *Select) OnKeyDown(ev key.Event) bool {
	switch ev.Key {
	case "delete", "backspace":
		objs := append([]scene.Object(nil), s.sel.Objects()...)
		if len(objs) == 0 {
			return false
		}
		s.BeginAction("Delete")
		for _, obj := range objs {
			s.RemoveObject(obj)
		}
		s.EndAction()
		s.sel.Clear()
		s.RequestRedraw()
		return true
	case "escape":
		if !s.sel.HasSelection() {
			return false
		}
		s.sel.Clear()
		s.RequestRedraw()
		return true
	}
	return false
}

// Cursor reports a grabbing cursor while moving objects.
func (s *Select) Cursor() string {
	if s.mode == dragMove {
		return "grabbing"
	}
	return s.Base.Cursor()
}
