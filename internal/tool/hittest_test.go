package tool

import (
	"testing"

	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/scene"
)

func newHitFixture() (*Manager, *scene.Document) {
	m := NewManager()
	doc := scene.NewDocument()
	m.SetDocument(doc)
	return m, doc
}

func TestHitTestTopmostWins(t *testing.T) {
	m, doc := newHitFixture()
	bottom := scene.NewRectObject("bottom", geom.R(0, 0, 100, 100))
	top := scene.NewRectObject("top", geom.R(40, 40, 60, 60))
	doc.ActiveLayer().AddChild(bottom)
	doc.ActiveLayer().AddChild(top)

	hit := m.HitTest(geom.Pt(50, 50), HitTestOptions{})
	if hit.Kind != HitObject {
		t.Fatalf("Kind = %v, want object", hit.Kind)
	}
	if hit.Object != scene.Object(top) {
		t.Error("last-drawn object should win")
	}
	if hit.Layer != doc.ActiveLayer() {
		t.Error("hit should carry the containing layer")
	}

	hit = m.HitTest(geom.Pt(10, 10), HitTestOptions{})
	if hit.Object != scene.Object(bottom) {
		t.Error("point outside top should reach bottom")
	}
}

func TestHitTestTopLayerWins(t *testing.T) {
	m, doc := newHitFixture()
	back := scene.NewRectObject("back", geom.R(0, 0, 100, 100))
	front := scene.NewRectObject("front", geom.R(0, 0, 100, 100))
	doc.ActiveLayer().AddChild(back)

	l2 := scene.NewLayer("Layer 2")
	l2.AddChild(front)
	doc.AddLayer(l2)

	hit := m.HitTest(geom.Pt(50, 50), HitTestOptions{})
	if hit.Object != scene.Object(front) {
		t.Error("front layer should be tested first")
	}
}

func TestHitTestSkipsHiddenAndLocked(t *testing.T) {
	m, doc := newHitFixture()
	obj := scene.NewRectObject("r", geom.R(0, 0, 100, 100))
	doc.ActiveLayer().AddChild(obj)

	obj.SetVisible(false)
	if hit := m.HitTest(geom.Pt(50, 50), HitTestOptions{}); hit.Kind != HitNone {
		t.Error("hidden object should be skipped")
	}
	if hit := m.HitTest(geom.Pt(50, 50), HitTestOptions{IncludeHidden: true}); hit.Kind != HitObject {
		t.Error("IncludeHidden should reach the object")
	}

	obj.SetVisible(true)
	obj.SetLocked(true)
	if hit := m.HitTest(geom.Pt(50, 50), HitTestOptions{}); hit.Kind != HitNone {
		t.Error("locked object should be skipped")
	}
	if hit := m.HitTest(geom.Pt(50, 50), HitTestOptions{IncludeLocked: true}); hit.Kind != HitObject {
		t.Error("IncludeLocked should reach the object")
	}
}

func TestHitTestRecursesIntoGroups(t *testing.T) {
	m, doc := newHitFixture()
	inner := scene.NewRectObject("inner", geom.R(10, 10, 20, 20))

	g := scene.NewGroup()
	g.AddChild(inner)
	outer := scene.NewGroup()
	outer.AddChild(g)
	doc.ActiveLayer().AddChild(outer)

	hit := m.HitTest(geom.Pt(15, 15), HitTestOptions{})
	if hit.Object != scene.Object(inner) {
		t.Error("hit-testing should recurse through nested groups to the leaf")
	}
}

func TestHitTestHandlePrecedence(t *testing.T) {
	m, doc := newHitFixture()
	selected := scene.NewRectObject("sel", geom.R(0, 0, 100, 50))
	other := scene.NewRectObject("other", geom.R(90, 40, 200, 200))
	doc.ActiveLayer().AddChild(selected)
	doc.ActiveLayer().AddChild(other)

	sel := scene.NewSelection()
	sel.Set(selected)
	m.SetSelection(sel)

	// The SE handle at (100,50) is inside "other"; the handle must
	// still outrank it.
	hit := m.HitTest(geom.Pt(100, 50), HitTestOptions{})
	if hit.Kind != HitHandle {
		t.Fatalf("Kind = %v, want handle", hit.Kind)
	}
	if hit.Handle.Kind != scene.HandleResizeSE {
		t.Errorf("handle = %v, want resize-se", hit.Handle.Kind)
	}
	if hit.Object != scene.Object(selected) {
		t.Error("handle hit should carry its target object")
	}
}

func TestHitTestHandleKindFilter(t *testing.T) {
	m, doc := newHitFixture()
	selected := scene.NewRectObject("sel", geom.R(0, 0, 100, 50))
	doc.ActiveLayer().AddChild(selected)

	sel := scene.NewSelection()
	sel.Set(selected)
	m.SetSelection(sel)

	opts := HitTestOptions{HandleKinds: []scene.HandleKind{scene.HandleRotate}}
	hit := m.HitTest(geom.Pt(100, 50), opts)
	if hit.Kind == HitHandle {
		t.Error("resize handle should be filtered out")
	}

	hit = m.HitTest(geom.Pt(50, -20), opts)
	if hit.Kind != HitHandle || hit.Handle.Kind != scene.HandleRotate {
		t.Error("rotate handle should pass the filter")
	}
}

func TestHitTestTolerance(t *testing.T) {
	m, doc := newHitFixture()
	obj := scene.NewRectObject("r", geom.R(10, 10, 20, 20))
	doc.ActiveLayer().AddChild(obj)

	// Default tolerance is 5 world units.
	if hit := m.HitTest(geom.Pt(24, 15), HitTestOptions{}); hit.Kind != HitObject {
		t.Error("point within default tolerance should hit")
	}
	if hit := m.HitTest(geom.Pt(26, 15), HitTestOptions{}); hit.Kind != HitNone {
		t.Error("point beyond default tolerance should miss")
	}
	if hit := m.HitTest(geom.Pt(21, 15), HitTestOptions{Tolerance: 0.5}); hit.Kind != HitNone {
		t.Error("explicit tolerance should narrow the hit area")
	}
}

func TestObjectsInRectIntersectVsContained(t *testing.T) {
	m, doc := newHitFixture()
	inside := scene.NewRectObject("inside", geom.R(10, 10, 20, 20))
	straddling := scene.NewRectObject("straddling", geom.R(45, 10, 60, 20))
	outside := scene.NewRectObject("outside", geom.R(80, 80, 90, 90))
	doc.ActiveLayer().AddChild(inside)
	doc.ActiveLayer().AddChild(straddling)
	doc.ActiveLayer().AddChild(outside)

	r := geom.R(0, 0, 50, 50)

	intersecting := m.ObjectsInRect(r, RectQueryOptions{})
	if len(intersecting) != 2 {
		t.Fatalf("intersecting = %d objects, want 2", len(intersecting))
	}

	contained := m.ObjectsInRect(r, RectQueryOptions{Contained: true})
	if len(contained) != 1 || contained[0] != scene.Object(inside) {
		t.Fatalf("contained = %v, want just the inside object", contained)
	}

	// Containment results are always a subset of intersection results.
	for _, c := range contained {
		found := false
		for _, i := range intersecting {
			if i == c {
				found = true
				break
			}
		}
		if !found {
			t.Error("contained object missing from intersect query")
		}
	}
}

func TestObjectsInRectRecursesAndSkips(t *testing.T) {
	m, doc := newHitFixture()

	grouped := scene.NewRectObject("grouped", geom.R(5, 5, 15, 15))
	g := scene.NewGroup()
	g.AddChild(grouped)
	doc.ActiveLayer().AddChild(g)

	hidden := scene.NewRectObject("hidden", geom.R(5, 5, 15, 15))
	hidden.SetVisible(false)
	doc.ActiveLayer().AddChild(hidden)

	got := m.ObjectsInRect(geom.R(0, 0, 50, 50), RectQueryOptions{})
	if len(got) != 1 || got[0] != scene.Object(grouped) {
		t.Errorf("got %v, want just the grouped object", got)
	}

	got = m.ObjectsInRect(geom.R(0, 0, 50, 50), RectQueryOptions{IncludeHidden: true})
	if len(got) != 2 {
		t.Errorf("IncludeHidden: got %d objects, want 2", len(got))
	}
}

func TestQueriesWithoutDocument(t *testing.T) {
	m := NewManager()

	if hit := m.HitTest(geom.Pt(0, 0), HitTestOptions{}); hit.Kind != HitNone {
		t.Error("HitTest without a document should return none")
	}
	if objs := m.ObjectsInRect(geom.R(0, 0, 10, 10), RectQueryOptions{}); objs != nil {
		t.Error("ObjectsInRect without a document should return nil")
	}
}
