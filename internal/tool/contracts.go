package tool

import (
	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/history"
	"github.com/easelkit/easel/internal/scene"
)

// Viewport maps between screen space (host pixels) and world space
// (document coordinates).
type Viewport interface {
	ScreenToWorld(geom.Point) geom.Point
	WorldToScreen(geom.Point) geom.Point
}

// Grid snaps world points to a document grid.
type Grid interface {
	SnapPoint(geom.Point) geom.Point
}

// History records edits for undo/redo. The manager only forwards
// action brackets and already-applied commands; it holds no undo state
// itself.
type History interface {
	Commit(name string)
	BeginCompound(name string)
	EndCompound()
	Push(cmd history.Command)
}

// Selection exposes the selected objects' handles for hit-testing.
type Selection interface {
	HasSelection() bool
	HitTestHandles(p geom.Point, tol float64) (scene.Handle, bool)
}

// Document is the layered object tree tools edit. Layers are ordered
// back to front.
type Document interface {
	Layers() []*scene.Layer
	ActiveLayer() *scene.Layer
}

// Canvas is the host surface the manager is bound to. The manager
// refreshes its cursor after every pointer event; the host delivers
// input by calling the manager's Handle methods from its event loop.
type Canvas interface {
	SetCursor(name string)
}

// DrawContext is the host's drawing surface handed to tools that paint
// gesture feedback. Its concrete type is host-specific.
type DrawContext = any

// HitKind distinguishes what a hit test found.
type HitKind int

const (
	// HitNone means nothing interactive was under the point.
	HitNone HitKind = iota

	// HitHandle means a selection handle was hit. Handles always
	// outrank document content.
	HitHandle

	// HitObject means a document object was hit.
	HitObject
)

// String returns the hit kind name.
func (k HitKind) String() string {
	switch k {
	case HitHandle:
		return "handle"
	case HitObject:
		return "object"
	default:
		return "none"
	}
}

// Hit is the result of a point query: the topmost interactive entity
// under the point.
type Hit struct {
	Kind HitKind

	// Handle is set when Kind is HitHandle.
	Handle scene.Handle

	// Object is the hit object, or the handle's target.
	Object scene.Object

	// Layer is the layer containing the object, when known.
	Layer *scene.Layer
}

// DefaultHitTolerance is the hit-test tolerance in world units used
// when the caller does not supply one.
const DefaultHitTolerance = 5.0

// HitTestOptions tunes HitTest. The zero value tests visible, unlocked
// entities with the default tolerance and allows every handle kind.
type HitTestOptions struct {
	IncludeHidden bool
	IncludeLocked bool

	// HandleKinds restricts which handle kinds may be returned.
	// Empty allows all kinds.
	HandleKinds []scene.HandleKind

	// Tolerance in world units. Non-positive means DefaultHitTolerance.
	Tolerance float64
}

// RectQueryOptions tunes ObjectsInRect. The zero value collects
// visible, unlocked objects intersecting the rectangle.
type RectQueryOptions struct {
	IncludeHidden bool
	IncludeLocked bool

	// Contained requires objects to be fully inside the rectangle
	// instead of merely intersecting it.
	Contained bool
}

// ToolChange is the payload of a tool-changed notification.
type ToolChange struct {
	New      Tool
	Previous Tool
}
