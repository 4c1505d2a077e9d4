package tool

import (
	"time"

	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/history"
	"github.com/easelkit/easel/internal/input/key"
	"github.com/easelkit/easel/internal/input/pointer"
	"github.com/easelkit/easel/internal/scene"
)

// Tool is one pluggable editing behavior, selected at runtime through
// the Manager's registry.
type Tool interface {
	ID() string
	Name() string
	Description() string

	// Shortcut is the binding spec ("v", "ctrl+k") that activates the
	// tool, or "" for none.
	Shortcut() string

	// Cursor is the cursor name the host should show while the tool is
	// active. Tools may report a dynamic cursor.
	Cursor() string

	// Activate and Deactivate bracket the tool's tenure as the active
	// tool. Both reset gesture state.
	Activate()
	Deactivate()
	Active() bool

	// Pointer events, routed by the Manager. Cancel is delivered as
	// PointerUp so an interrupted gesture cannot strand the machine.
	PointerDown(ev pointer.Event)
	PointerMove(ev pointer.Event)
	PointerUp(ev pointer.Event)
	DoubleClick(ev pointer.Event)

	// Key events. The return value reports whether the event was
	// consumed and default handling should be suppressed.
	KeyDown(ev key.Event) bool
	KeyUp(ev key.Event) bool

	// Render paints gesture feedback. The default is a no-op.
	Render(ctx DrawContext)
}

// Hooks are the gesture callbacks a concrete tool supplies. The Base
// state machine classifies raw pointer events and invokes these. Embed
// NopHooks and override what you need.
type Hooks interface {
	OnClick(ev pointer.Event)
	OnDoubleClick(ev pointer.Event)
	OnDragStart(ev pointer.Event)
	OnDrag(ev pointer.Event)
	OnDragEnd(ev pointer.Event)
	OnKeyDown(ev key.Event) bool
	OnKeyUp(ev key.Event) bool
}

// NopHooks implements Hooks with no-ops.
type NopHooks struct{}

func (NopHooks) OnClick(pointer.Event)       {}
func (NopHooks) OnDoubleClick(pointer.Event) {}
func (NopHooks) OnDragStart(pointer.Event)   {}
func (NopHooks) OnDrag(pointer.Event)        {}
func (NopHooks) OnDragEnd(pointer.Event)     {}
func (NopHooks) OnKeyDown(key.Event) bool    { return false }
func (NopHooks) OnKeyUp(key.Event) bool      { return false }

// Options configures a tool's identity and presentation.
type Options struct {
	ID          string
	Name        string
	Description string
	Shortcut    string
	Icon        string
	Cursor      string
}

// Base implements the shared tool plumbing: identity, the pointer
// gesture state machine, collaborator proxies through the manager, and
// constraint helpers. Concrete tools embed *Base and pass themselves
// as the Hooks implementation.
type Base struct {
	opts   Options
	mgr    *Manager
	state  State
	active bool
	hooks  Hooks
}

// NewBase creates the shared tool core. hooks may be nil for a tool
// with no gesture behavior.
func NewBase(mgr *Manager, opts Options, hooks Hooks) *Base {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &Base{opts: opts, mgr: mgr, hooks: hooks}
}

// ID returns the tool's registry identifier.
func (b *Base) ID() string { return b.opts.ID }

// Name returns the tool's display name.
func (b *Base) Name() string { return b.opts.Name }

// Description returns the tool's display description.
func (b *Base) Description() string { return b.opts.Description }

// Shortcut returns the tool's activation binding spec.
func (b *Base) Shortcut() string { return b.opts.Shortcut }

// Icon returns the tool's icon name.
func (b *Base) Icon() string { return b.opts.Icon }

// SetShortcut rebinds the tool's activation shortcut. Used by the
// config layer; shortcuts are user-configurable.
func (b *Base) SetShortcut(spec string) { b.opts.Shortcut = spec }

// SetCursor replaces the tool's configured cursor.
func (b *Base) SetCursor(name string) { b.opts.Cursor = name }

// Cursor returns the configured cursor. Tools with a dynamic cursor
// shadow this method.
func (b *Base) Cursor() string { return b.opts.Cursor }

// Active reports whether the tool is the manager's active tool.
func (b *Base) Active() bool { return b.active }

// State returns the tool's gesture record.
func (b *Base) State() *State { return &b.state }

// Manager returns the owning manager, or nil for an unbound tool.
func (b *Base) Manager() *Manager { return b.mgr }

// Activate marks the tool active and resets gesture state.
func (b *Base) Activate() {
	b.active = true
	b.state.Reset()
}

// Deactivate marks the tool inactive and resets gesture state.
func (b *Base) Deactivate() {
	b.active = false
	b.state.Reset()
}

// Render is a no-op by default.
func (b *Base) Render(DrawContext) {}

// Collaborator proxies. Each forwards through the manager and returns
// the zero value when the manager or collaborator is unset, keeping
// tools unit-testable in isolation.

// Document returns the manager's document, or nil.
func (b *Base) Document() Document {
	if b.mgr == nil {
		return nil
	}
	return b.mgr.Document()
}

// Viewport returns the manager's viewport, or nil.
func (b *Base) Viewport() Viewport {
	if b.mgr == nil {
		return nil
	}
	return b.mgr.Viewport()
}

// Canvas returns the manager's bound canvas, or nil.
func (b *Base) Canvas() Canvas {
	if b.mgr == nil {
		return nil
	}
	return b.mgr.Canvas()
}

// Selection returns the manager's selection, or nil.
func (b *Base) Selection() Selection {
	if b.mgr == nil {
		return nil
	}
	return b.mgr.Selection()
}

// ScreenToWorld converts a screen point through the manager's
// viewport, falling back to the identity transform when none is bound.
func (b *Base) ScreenToWorld(p geom.Point) geom.Point {
	if v := b.Viewport(); v != nil {
		return v.ScreenToWorld(p)
	}
	return p
}

// WorldToScreen converts a world point through the manager's viewport,
// falling back to the identity transform when none is bound.
func (b *Base) WorldToScreen(p geom.Point) geom.Point {
	if v := b.Viewport(); v != nil {
		return v.WorldToScreen(p)
	}
	return p
}

// SnapToGrid snaps p through the manager's grid when grid snapping is
// enabled; otherwise returns p unchanged.
func (b *Base) SnapToGrid(p geom.Point) geom.Point {
	if b.mgr == nil {
		return p
	}
	return b.mgr.Snap(p)
}

// Manager pass-throughs: the sanctioned mutation path. Concrete tools
// never mutate the document directly; they go through these so the
// manager can notify and record history. Each degrades to a no-op when
// the manager is unset.

// RequestRedraw asks the host to repaint.
func (b *Base) RequestRedraw() {
	if b.mgr != nil {
		b.mgr.RequestRedraw()
	}
}

// AddObject inserts an object into the document's active layer.
func (b *Base) AddObject(obj scene.Object) {
	if b.mgr != nil {
		b.mgr.AddObject(obj)
	}
}

// RemoveObject removes an object from the document.
func (b *Base) RemoveObject(obj scene.Object) {
	if b.mgr != nil {
		b.mgr.RemoveObject(obj)
	}
}

// BeginAction opens a compound undo step.
func (b *Base) BeginAction(name string) {
	if b.mgr != nil {
		b.mgr.BeginAction(name)
	}
}

// EndAction closes the compound undo step.
func (b *Base) EndAction() {
	if b.mgr != nil {
		b.mgr.EndAction()
	}
}

// CommitAction records a single-step edit under the given name.
func (b *Base) CommitAction(name string) {
	if b.mgr != nil {
		b.mgr.CommitAction(name)
	}
}

// PushEdit records an already-applied command for undo.
func (b *Base) PushEdit(cmd history.Command) {
	if b.mgr != nil {
		b.mgr.PushEdit(cmd)
	}
}

// HitTest returns the topmost interactive entity under a world point.
func (b *Base) HitTest(p geom.Point, opts HitTestOptions) Hit {
	if b.mgr == nil {
		return Hit{}
	}
	return b.mgr.HitTest(p, opts)
}

// ObjectsInRect returns document objects overlapping a world rectangle.
func (b *Base) ObjectsInRect(r geom.Rect, opts RectQueryOptions) []scene.Object {
	if b.mgr == nil {
		return nil
	}
	return b.mgr.ObjectsInRect(r, opts)
}

// Gesture state machine: Idle -> Down -> (Click | Dragging) -> Idle.

// PointerDown records the gesture start. Classification is deferred
// until the pointer moves or lifts.
func (b *Base) PointerDown(ev pointer.Event) {
	world := b.ScreenToWorld(ev.Screen)

	b.state.Reset()
	b.state.IsDown = true
	b.state.StartScreen = ev.Screen
	b.state.CurrentScreen = ev.Screen
	b.state.StartPoint = world
	b.state.CurrentPoint = world
	b.state.PreviousPoint = world
	b.state.Button = ev.Button
	b.state.Modifiers = ev.Modifiers
	b.state.StartTime = ev.Timestamp
	if b.state.StartTime.IsZero() {
		b.state.StartTime = time.Now()
	}
}

// PointerMove updates the gesture record and classifies: once the
// pointer, while down, travels beyond DragThreshold on screen, the
// gesture enters Dragging with one OnDragStart call; every subsequent
// move calls OnDrag.
func (b *Base) PointerMove(ev pointer.Event) {
	world := b.ScreenToWorld(ev.Screen)

	b.state.PreviousPoint = b.state.CurrentPoint
	b.state.CurrentPoint = world
	b.state.CurrentScreen = ev.Screen
	b.state.Modifiers = ev.Modifiers

	switch {
	case b.state.IsDown && !b.state.IsDragging &&
		ev.Screen.Distance(b.state.StartScreen) > DragThreshold:
		b.state.IsDragging = true
		b.hooks.OnDragStart(ev)
	case b.state.IsDragging:
		b.hooks.OnDrag(ev)
	}
}

// PointerUp finishes the gesture: a gesture that entered Dragging gets
// OnDragEnd, one that never did gets OnClick. The machine always
// returns to Idle. A stray up with no prior down is ignored.
func (b *Base) PointerUp(ev pointer.Event) {
	world := b.ScreenToWorld(ev.Screen)

	b.state.PreviousPoint = b.state.CurrentPoint
	b.state.CurrentPoint = world
	b.state.CurrentScreen = ev.Screen
	b.state.Modifiers = ev.Modifiers

	if !b.state.IsDown {
		return
	}

	wasDragging := b.state.IsDragging
	if wasDragging {
		b.hooks.OnDragEnd(ev)
	} else {
		b.hooks.OnClick(ev)
	}

	b.state.IsDown = false
	b.state.IsDragging = false
}

// DoubleClick forwards to the OnDoubleClick hook. It is independent of
// the single-click machine.
func (b *Base) DoubleClick(ev pointer.Event) {
	b.hooks.OnDoubleClick(ev)
}

// KeyDown updates modifiers and forwards to the OnKeyDown hook.
func (b *Base) KeyDown(ev key.Event) bool {
	b.state.UpdateModifiers(ev.Modifiers)
	return b.hooks.OnKeyDown(ev)
}

// KeyUp updates modifiers and forwards to the OnKeyUp hook.
func (b *Base) KeyUp(ev key.Event) bool {
	b.state.UpdateModifiers(ev.Modifiers)
	return b.hooks.OnKeyUp(ev)
}
