package tool

import (
	"github.com/easelkit/easel/internal/event"
	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/history"
	"github.com/easelkit/easel/internal/input/key"
	"github.com/easelkit/easel/internal/input/pointer"
	"github.com/easelkit/easel/internal/logging"
	"github.com/easelkit/easel/internal/scene"
)

// Manager owns the tool registry, tracks the active tool, routes host
// input, dispatches keyboard shortcuts, answers spatial queries, and
// brokers undo actions. One Manager serves one editing session, bound
// to one host canvas via Attach/Detach.
//
// Collaborators (document, viewport, selection, grid, history) are
// owned by the host and merely referenced; Detach never destroys them.
type Manager struct {
	tools map[string]Tool
	order []string

	active   Tool
	previous Tool

	document  Document
	viewport  Viewport
	selection Selection
	grid      Grid
	history   History
	canvas    Canvas

	notifier *event.Notifier

	snapEnabled bool
	captured    bool
}

// NewManager creates a manager with an empty registry. Grid snapping
// defaults to enabled; it only takes effect once a grid is bound.
func NewManager() *Manager {
	return &Manager{
		tools:       make(map[string]Tool),
		notifier:    event.NewNotifier(),
		snapEnabled: true,
	}
}

// Notifier returns the manager's notification bus.
func (m *Manager) Notifier() *event.Notifier { return m.notifier }

// Collaborator binding. All are optional; every dependent operation
// degrades to a neutral no-op while a collaborator is unset.

// SetDocument binds the document tree.
func (m *Manager) SetDocument(d Document) { m.document = d }

// Document returns the bound document, or nil.
func (m *Manager) Document() Document { return m.document }

// SetViewport binds the screen/world transform.
func (m *Manager) SetViewport(v Viewport) { m.viewport = v }

// Viewport returns the bound viewport, or nil.
func (m *Manager) Viewport() Viewport { return m.viewport }

// SetSelection binds the selection.
func (m *Manager) SetSelection(s Selection) { m.selection = s }

// Selection returns the bound selection, or nil.
func (m *Manager) Selection() Selection { return m.selection }

// SetGrid binds the snapping grid.
func (m *Manager) SetGrid(g Grid) { m.grid = g }

// Grid returns the bound grid, or nil.
func (m *Manager) Grid() Grid { return m.grid }

// SetHistory binds the undo history.
func (m *Manager) SetHistory(h History) { m.history = h }

// History returns the bound history, or nil.
func (m *Manager) History() History { return m.history }

// Canvas returns the attached host canvas, or nil.
func (m *Manager) Canvas() Canvas { return m.canvas }

// SetSnapEnabled toggles grid snapping.
func (m *Manager) SetSnapEnabled(on bool) { m.snapEnabled = on }

// SnapEnabled reports whether grid snapping is on.
func (m *Manager) SnapEnabled() bool { return m.snapEnabled }

// Snap snaps a world point through the grid when snapping is enabled
// and a grid is bound; otherwise returns the point unchanged.
func (m *Manager) Snap(p geom.Point) geom.Point {
	if !m.snapEnabled || m.grid == nil {
		return p
	}
	return m.grid.SnapPoint(p)
}

// Attach binds the manager to a host canvas. The host delivers input
// by calling HandlePointer, HandleKeyDown, HandleKeyUp and
// HandleContextMenu from its event loop.
func (m *Manager) Attach(c Canvas) {
	m.canvas = c
	m.refreshCursor()
}

// Detach unbinds the host and clears the registry, deactivating the
// active tool first. Safe to call without a prior Attach.
func (m *Manager) Detach() {
	if m.active != nil {
		m.active.Deactivate()
	}
	m.active = nil
	m.previous = nil
	m.captured = false
	m.canvas = nil
	m.tools = make(map[string]Tool)
	m.order = nil
}

// Registry.

// Register adds a tool to the registry. A tool with an empty or
// duplicate id is rejected with a log, never an error: registration
// problems must not crash an input pipeline.
func (m *Manager) Register(t Tool) {
	if t == nil || t.ID() == "" {
		logging.Logger().Warn("tool registration rejected", "reason", "empty id")
		return
	}
	if _, exists := m.tools[t.ID()]; exists {
		logging.Logger().Warn("tool registration rejected", "id", t.ID(), "reason", "duplicate id")
		return
	}

	m.tools[t.ID()] = t
	m.order = append(m.order, t.ID())
	m.notifier.Publish(event.TopicToolRegistered, t)
}

// Unregister removes a tool. Unregistering the active tool deactivates
// it and leaves the manager toolless; there is no automatic fallback.
func (m *Manager) Unregister(id string) {
	t, ok := m.tools[id]
	if !ok {
		return
	}

	if m.active == t {
		t.Deactivate()
		m.active = nil
		m.captured = false
	}
	if m.previous == t {
		m.previous = nil
	}

	delete(m.tools, id)
	for i, tid := range m.order {
		if tid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.notifier.Publish(event.TopicToolUnregistered, t)
}

// Tool looks up a tool by id.
func (m *Manager) Tool(id string) (Tool, bool) {
	t, ok := m.tools[id]
	return t, ok
}

// Tools returns all registered tools in registration order.
func (m *Manager) Tools() []Tool {
	out := make([]Tool, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.tools[id])
	}
	return out
}

// ActiveTool returns the active tool, or nil.
func (m *Manager) ActiveTool() Tool { return m.active }

// Activation.

// Activate makes the named tool active. Activating the already-active
// tool is a no-op with no notification. An unknown id is logged and
// ignored, since shortcuts are user-configurable.
func (m *Manager) Activate(id string) {
	m.activate(id, false)
}

// TempActivate activates the named tool while remembering the current
// one, so RestorePrevious can switch back. The slot holds a single
// tool, not a stack.
func (m *Manager) TempActivate(id string) {
	m.activate(id, true)
}

// RestorePrevious reactivates the tool remembered by TempActivate and
// clears the slot. A call with nothing remembered is a no-op.
func (m *Manager) RestorePrevious() {
	prev := m.previous
	m.previous = nil
	if prev == nil {
		return
	}
	m.activate(prev.ID(), false)
}

func (m *Manager) activate(id string, savePrevious bool) {
	t, ok := m.tools[id]
	if !ok {
		logging.Logger().Warn("activate unknown tool", "id", id)
		return
	}
	if m.active == t {
		return
	}

	prev := m.active
	if prev != nil {
		prev.Deactivate()
	}
	if savePrevious {
		m.previous = prev
	}

	m.active = t
	t.Activate()
	m.refreshCursor()
	m.notifier.Publish(event.TopicToolChanged, ToolChange{New: t, Previous: prev})
}

// Pointer routing.

// HandlePointer routes a host pointer event to the active tool. Down
// acquires pointer capture; up and cancel release it. Cancel is
// treated identically to up so an externally interrupted gesture
// cannot strand the state machine in Dragging. With no active tool the
// event is dropped, though a held capture is still released on up.
func (m *Manager) HandlePointer(ev pointer.Event) {
	if m.active == nil {
		if ev.Phase == pointer.PhaseUp || ev.Phase == pointer.PhaseCancel {
			m.releaseCapture()
		}
		logging.Logger().Debug("pointer event dropped", "reason", "no active tool", "phase", ev.Phase.String())
		return
	}

	switch ev.Phase {
	case pointer.PhaseDown:
		m.acquireCapture()
		m.active.PointerDown(ev)
	case pointer.PhaseMove:
		m.active.PointerMove(ev)
	case pointer.PhaseUp, pointer.PhaseCancel:
		m.active.PointerUp(ev)
		m.releaseCapture()
	default:
		return
	}

	m.refreshCursor()
	m.RequestRedraw()
}

// HandleDoubleClick forwards a double click to the active tool,
// bypassing the click/drag classifier.
func (m *Manager) HandleDoubleClick(ev pointer.Event) {
	if m.active == nil {
		return
	}
	m.active.DoubleClick(ev)
	m.refreshCursor()
	m.RequestRedraw()
}

// Captured reports whether a pointer capture is outstanding.
func (m *Manager) Captured() bool { return m.captured }

// acquireCapture sets the capture flag. Acquiring while held is a
// guarded no-op: the model assumes one live pointer.
func (m *Manager) acquireCapture() {
	if m.captured {
		logging.Logger().Debug("pointer capture already held")
		return
	}
	m.captured = true
}

func (m *Manager) releaseCapture() {
	if !m.captured {
		return
	}
	m.captured = false
}

// Key routing.

// HandleKeyDown dispatches a key event. Unless an editable host
// control is focused, tools are scanned in registration order for a
// shortcut exactly matching the event's key and modifier set; the
// first match activates that tool and consumes the event. Otherwise
// the event goes to the active tool, and is consumed only if the tool
// reports so.
func (m *Manager) HandleKeyDown(ev key.Event, editableFocused bool) bool {
	if !editableFocused {
		for _, id := range m.order {
			t := m.tools[id]
			spec := t.Shortcut()
			if spec == "" {
				continue
			}
			sc, err := key.ParseShortcut(spec)
			if err != nil {
				logging.Logger().Warn("invalid tool shortcut", "tool", id, "spec", spec, "error", err)
				continue
			}
			if sc.Matches(ev) {
				m.Activate(id)
				return true
			}
		}
	}

	if m.active == nil {
		return false
	}
	return m.active.KeyDown(ev)
}

// HandleKeyUp forwards a key release to the active tool
// unconditionally, with the same consumption-based suppression.
func (m *Manager) HandleKeyUp(ev key.Event) bool {
	if m.active == nil {
		return false
	}
	return m.active.KeyUp(ev)
}

// HandleContextMenu suppresses the host's context menu and re-emits it
// as a notification. Always returns true (consumed).
func (m *Manager) HandleContextMenu(ev pointer.Event) bool {
	m.notifier.Publish(event.TopicContextMenu, ev)
	return true
}

// Document mutation. These are the sanctioned path for tools: they
// mutate, record history, notify, and request a repaint.

// AddObject inserts an object into the document's active layer and
// records the edit for undo.
func (m *Manager) AddObject(obj scene.Object) {
	if m.document == nil {
		logging.Logger().Debug("add object dropped", "reason", "no document")
		return
	}
	layer := m.document.ActiveLayer()
	if layer == nil {
		logging.Logger().Debug("add object dropped", "reason", "no active layer")
		return
	}

	cmd := history.NewAddObjectCommand(layer, obj)
	if err := cmd.Apply(); err != nil {
		logging.Logger().Warn("add object failed", "error", err)
		return
	}
	m.PushEdit(cmd)

	m.notifier.Publish(event.TopicObjectAdded, obj)
	m.RequestRedraw()
}

// RemoveObject removes an object from whichever layer or group holds
// it and records the edit for undo. Unknown objects are ignored.
func (m *Manager) RemoveObject(obj scene.Object) {
	if m.document == nil {
		return
	}

	parent := findParent(m.document.Layers(), obj)
	if parent == nil {
		logging.Logger().Debug("remove object dropped", "reason", "not in document")
		return
	}

	cmd := history.NewRemoveObjectCommand(parent, obj)
	if err := cmd.Apply(); err != nil {
		logging.Logger().Warn("remove object failed", "error", err)
		return
	}
	m.PushEdit(cmd)

	m.notifier.Publish(event.TopicObjectRemoved, obj)
	m.RequestRedraw()
}

// findParent locates the container directly holding obj, recursing
// into groups.
func findParent(layers []*scene.Layer, obj scene.Object) scene.Container {
	for _, layer := range layers {
		if c := findParentIn(layer, obj); c != nil {
			return c
		}
	}
	return nil
}

func findParentIn(c scene.Container, obj scene.Object) scene.Container {
	for _, child := range c.Children() {
		if child == obj {
			return c
		}
		if sub, ok := child.(scene.Container); ok {
			if found := findParentIn(sub, obj); found != nil {
				return found
			}
		}
	}
	return nil
}

// Action brokering. The manager forwards to the externally-owned
// history and emits notifications; it holds no undo state itself.

// BeginAction opens a compound undo step bracketing a composite edit.
func (m *Manager) BeginAction(name string) {
	if m.history != nil {
		m.history.BeginCompound(name)
	}
	m.notifier.Publish(event.TopicActionBegun, name)
}

// EndAction closes the compound undo step.
func (m *Manager) EndAction() {
	if m.history != nil {
		m.history.EndCompound()
	}
	m.notifier.Publish(event.TopicActionEnded, nil)
}

// CommitAction records a single-step edit under the given name.
func (m *Manager) CommitAction(name string) {
	if m.history != nil {
		m.history.Commit(name)
	}
	m.notifier.Publish(event.TopicActionCommitted, name)
}

// PushEdit records an already-applied command for undo.
func (m *Manager) PushEdit(cmd history.Command) {
	if m.history != nil {
		m.history.Push(cmd)
	}
}

// RequestRedraw emits a redraw notification for the host.
func (m *Manager) RequestRedraw() {
	m.notifier.Publish(event.TopicRedraw, nil)
}

// refreshCursor pushes the active tool's cursor to the host after
// every pointer event; tools may report a dynamic cursor.
func (m *Manager) refreshCursor() {
	if m.canvas == nil || m.active == nil {
		return
	}
	m.canvas.SetCursor(m.active.Cursor())
}
