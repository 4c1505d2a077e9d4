package tool

import (
	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/scene"
)

// HitTest returns the topmost interactive entity under a world point.
//
// Selection handles are tested first and always outrank document
// content. Document layers are then walked top to bottom (last-drawn
// first), and within each layer children last to first, recursing into
// groups; the first object whose own predicate matches wins. Hidden
// and locked entities are skipped unless the options include them.
func (m *Manager) HitTest(p geom.Point, opts HitTestOptions) Hit {
	tol := opts.Tolerance
	if tol <= 0 {
		tol = DefaultHitTolerance
	}

	if m.selection != nil && m.selection.HasSelection() {
		if h, ok := m.selection.HitTestHandles(p, tol); ok && handleAllowed(h.Kind, opts.HandleKinds) {
			return Hit{Kind: HitHandle, Handle: h, Object: h.Target}
		}
	}

	if m.document == nil {
		return Hit{}
	}

	layers := m.document.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		if !opts.IncludeHidden && !layer.Visible() {
			continue
		}
		if !opts.IncludeLocked && layer.Locked() {
			continue
		}
		if obj := hitChildren(layer.Children(), p, tol, opts); obj != nil {
			return Hit{Kind: HitObject, Object: obj, Layer: layer}
		}
	}
	return Hit{}
}

// hitChildren walks children last-to-first (topmost first), recursing
// into containers.
func hitChildren(children []scene.Object, p geom.Point, tol float64, opts HitTestOptions) scene.Object {
	for i := len(children) - 1; i >= 0; i-- {
		obj := children[i]
		if !opts.IncludeHidden && !obj.Visible() {
			continue
		}
		if !opts.IncludeLocked && obj.Locked() {
			continue
		}
		if c, ok := obj.(scene.Container); ok {
			if hit := hitChildren(c.Children(), p, tol, opts); hit != nil {
				return hit
			}
			continue
		}
		if hitObject(obj, p, tol) {
			return obj
		}
	}
	return nil
}

// hitObject applies the object's own hit predicate when it has one,
// falling back to a tolerance-grown bounds test. Objects with neither
// cannot be hit.
func hitObject(obj scene.Object, p geom.Point, tol float64) bool {
	if ht, ok := obj.(scene.HitTester); ok {
		return ht.HitTest(p, tol)
	}
	if b, ok := obj.(scene.Bounded); ok {
		return b.Bounds().Inset(-tol).Contains(p)
	}
	return false
}

func handleAllowed(kind scene.HandleKind, allowed []scene.HandleKind) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}

// ObjectsInRect collects every object (recursing into groups) whose
// bounds intersect the rectangle, or are fully contained by it when
// the options require containment. Results are in document order,
// back to front. Objects without bounds are never returned.
func (m *Manager) ObjectsInRect(r geom.Rect, opts RectQueryOptions) []scene.Object {
	if m.document == nil {
		return nil
	}
	r = r.Canon()

	var out []scene.Object
	for _, layer := range m.document.Layers() {
		if !opts.IncludeHidden && !layer.Visible() {
			continue
		}
		if !opts.IncludeLocked && layer.Locked() {
			continue
		}
		out = collectInRect(layer.Children(), r, opts, out)
	}
	return out
}

func collectInRect(children []scene.Object, r geom.Rect, opts RectQueryOptions, out []scene.Object) []scene.Object {
	for _, obj := range children {
		if !opts.IncludeHidden && !obj.Visible() {
			continue
		}
		if !opts.IncludeLocked && obj.Locked() {
			continue
		}
		if c, ok := obj.(scene.Container); ok {
			out = collectInRect(c.Children(), r, opts, out)
			continue
		}
		b, ok := obj.(scene.Bounded)
		if !ok {
			continue
		}
		bounds := b.Bounds()
		if opts.Contained {
			if r.ContainsRect(bounds) {
				out = append(out, obj)
			}
		} else if r.Intersects(bounds) {
			out = append(out, obj)
		}
	}
	return out
}
