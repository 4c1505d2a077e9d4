package scene

import "github.com/easelkit/easel/internal/geom"

// HandleKind identifies a selection handle.
type HandleKind string

// Selection handle kinds: eight resize grips plus a rotation grip.
const (
	HandleResizeNW HandleKind = "resize-nw"
	HandleResizeN  HandleKind = "resize-n"
	HandleResizeNE HandleKind = "resize-ne"
	HandleResizeE  HandleKind = "resize-e"
	HandleResizeSE HandleKind = "resize-se"
	HandleResizeS  HandleKind = "resize-s"
	HandleResizeSW HandleKind = "resize-sw"
	HandleResizeW  HandleKind = "resize-w"
	HandleRotate   HandleKind = "rotate"
)

// IsResize reports whether the handle is one of the resize grips.
func (k HandleKind) IsResize() bool {
	return k != HandleRotate && k != ""
}

// Handle is a selection-adjacent interactive control, distinct from
// document content. Handles always outrank objects in hit-testing.
type Handle struct {
	// Kind identifies which grip this is.
	Kind HandleKind

	// Pos is the handle's position in world space.
	Pos geom.Point

	// Target is the object the handle manipulates. For multi-object
	// selections this is the first selected object.
	Target Object
}

// rotateHandleOffset is the world-space distance of the rotation grip
// above the selection's top edge.
const rotateHandleOffset = 20.0

// Selection tracks the currently selected objects and derives their
// interactive handles.
type Selection struct {
	objects []Object
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// HasSelection reports whether any object is selected.
func (s *Selection) HasSelection() bool {
	return len(s.objects) > 0
}

// Objects returns the selected objects in selection order.
func (s *Selection) Objects() []Object { return s.objects }

// Set replaces the selection.
func (s *Selection) Set(objects ...Object) {
	s.objects = append(s.objects[:0], objects...)
}

// Add appends an object if not already selected.
func (s *Selection) Add(obj Object) {
	for _, o := range s.objects {
		if o == obj {
			return
		}
	}
	s.objects = append(s.objects, obj)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.objects = s.objects[:0]
}

// Contains reports whether the object is selected.
func (s *Selection) Contains(obj Object) bool {
	for _, o := range s.objects {
		if o == obj {
			return true
		}
	}
	return false
}

// Bounds returns the union of the selected objects' bounds.
// ok is false when nothing bounded is selected.
func (s *Selection) Bounds() (geom.Rect, bool) {
	var out geom.Rect
	found := false
	for _, o := range s.objects {
		b, okb := o.(Bounded)
		if !okb {
			continue
		}
		if !found {
			out = b.Bounds()
			found = true
			continue
		}
		out = out.Union(b.Bounds())
	}
	return out, found
}

// Handles derives the selection's grips from its bounds: eight resize
// grips on the corners and edge midpoints plus a rotation grip above
// the top edge. An empty or unbounded selection has no handles.
func (s *Selection) Handles() []Handle {
	b, ok := s.Bounds()
	if !ok {
		return nil
	}

	var target Object
	if len(s.objects) > 0 {
		target = s.objects[0]
	}

	cx := (b.Min.X + b.Max.X) / 2
	cy := (b.Min.Y + b.Max.Y) / 2

	mk := func(kind HandleKind, x, y float64) Handle {
		return Handle{Kind: kind, Pos: geom.Pt(x, y), Target: target}
	}

	return []Handle{
		mk(HandleResizeNW, b.Min.X, b.Min.Y),
		mk(HandleResizeN, cx, b.Min.Y),
		mk(HandleResizeNE, b.Max.X, b.Min.Y),
		mk(HandleResizeE, b.Max.X, cy),
		mk(HandleResizeSE, b.Max.X, b.Max.Y),
		mk(HandleResizeS, cx, b.Max.Y),
		mk(HandleResizeSW, b.Min.X, b.Max.Y),
		mk(HandleResizeW, b.Min.X, cy),
		mk(HandleRotate, cx, b.Min.Y-rotateHandleOffset),
	}
}

// HitTestHandles returns the first handle within tol of p.
// ok is false when no handle is hit or nothing is selected.
func (s *Selection) HitTestHandles(p geom.Point, tol float64) (Handle, bool) {
	for _, h := range s.Handles() {
		if h.Pos.Distance(p) <= tol {
			return h, true
		}
	}
	return Handle{}, false
}
