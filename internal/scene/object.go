// Package scene provides the minimal scene-graph surface the input
// controller needs: layered documents, recursive groups, hit-testable
// objects, selection handles, grid snapping, and the viewport transform.
//
// The object model is deliberately small. The controller only requires
// visibility/lock flags plus two optional capabilities, discovered by
// interface assertion: HitTester for precise hit predicates and Bounded
// for rectangle queries.
package scene

import "github.com/easelkit/easel/internal/geom"

// Object is any entity placed in a layer or group.
type Object interface {
	// Visible reports whether the object participates in hit-testing
	// and queries by default.
	Visible() bool

	// Locked reports whether the object rejects interaction.
	Locked() bool
}

// HitTester is an optional Object capability: a precise hit predicate.
// Objects without it fall back to their bounds, if any.
type HitTester interface {
	HitTest(p geom.Point, tol float64) bool
}

// Bounded is an optional Object capability: an axis-aligned bounding box
// in world space.
type Bounded interface {
	Bounds() geom.Rect
}

// Container is implemented by objects that hold ordered children
// (groups and layers). Children are ordered back to front.
type Container interface {
	Children() []Object
	AddChild(obj Object)
	RemoveChild(obj Object) bool
}
