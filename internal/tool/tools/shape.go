package tools

import (
	"fmt"

	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/input/pointer"
	"github.com/easelkit/easel/internal/scene"
	"github.com/easelkit/easel/internal/tool"
)

// minShapeSize is the smallest width or height, in world units, a
// drawn shape may have. Smaller drags are discarded as accidental.
const minShapeSize = 1.0

// shapeKind selects which object a Shape tool creates.
type shapeKind int

const (
	shapeRect shapeKind = iota
	shapeEllipse
)

// Shape draws rectangles or ellipses by dragging out their bounding
// box. Shift locks a square/circle, and endpoints snap to the grid
// when snapping is on.
type Shape struct {
	*tool.Base
	tool.NopHooks

	kind       shapeKind
	preview    geom.Rect
	hasPreview bool
	seq        int
}

// NewRect creates the rectangle-drawing tool.
func NewRect(m *tool.Manager) *Shape {
	s := &Shape{kind: shapeRect}
	s.Base = tool.NewBase(m, tool.Options{
		ID:          "rect",
		Name:        "Rectangle",
		Description: "Draw rectangles",
		Shortcut:    "r",
		Cursor:      "crosshair",
	}, s)
	return s
}

// NewEllipse creates the ellipse-drawing tool.
func NewEllipse(m *tool.Manager) *Shape {
	s := &Shape{kind: shapeEllipse}
	s.Base = tool.NewBase(m, tool.Options{
		ID:          "ellipse",
		Name:        "Ellipse",
		Description: "Draw ellipses",
		Shortcut:    "e",
		Cursor:      "crosshair",
	}, s)
	return s
}

// Preview returns the in-progress shape bounds in world space.
func (s *Shape) Preview() (geom.Rect, bool) {
	return s.preview, s.hasPreview
}

// bounds derives the shape's bounding box from the gesture, applying
// grid snapping and the shift aspect lock.
func (s *Shape) bounds(ev pointer.Event) geom.Rect {
	start := s.SnapToGrid(s.State().StartPoint)
	end := s.State().CurrentPoint
	if ev.Modifiers.HasShift() {
		end = tool.ConstrainAspectRatio(start, end, 1)
	}
	end = s.SnapToGrid(end)
	return geom.FromPoints(start, end)
}

// OnDragStart begins the preview.
func (s *Shape) OnDragStart(ev pointer.Event) {
	s.preview = s.bounds(ev)
	s.hasPreview = true
}

// OnDrag updates the preview.
func (s *Shape) OnDrag(ev pointer.Event) {
	s.preview = s.bounds(ev)
	s.RequestRedraw()
}

// OnDragEnd creates the object and records the edit. Degenerate drags
// are discarded.
func (s *Shape) OnDragEnd(ev pointer.Event) {
	defer func() {
		s.hasPreview = false
		s.RequestRedraw()
	}()

	b := s.bounds(ev)
	if b.Width() < minShapeSize || b.Height() < minShapeSize {
		return
	}

	s.seq++
	var obj scene.Object
	var action string
	switch s.kind {
	case shapeEllipse:
		obj = scene.NewEllipseObject(fmt.Sprintf("Ellipse %d", s.seq), b)
		action = "Draw Ellipse"
	default:
		obj = scene.NewRectObject(fmt.Sprintf("Rectangle %d", s.seq), b)
		action = "Draw Rectangle"
	}

	s.AddObject(obj)
	s.CommitAction(action)
}
