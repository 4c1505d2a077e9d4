package tool

import (
	"testing"

	"github.com/easelkit/easel/internal/event"
	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/history"
	"github.com/easelkit/easel/internal/input/key"
	"github.com/easelkit/easel/internal/input/pointer"
	"github.com/easelkit/easel/internal/scene"
)

type fakeCanvas struct {
	cursor string
	sets   int
}

func (c *fakeCanvas) SetCursor(name string) {
	c.cursor = name
	c.sets++
}

func countTopic(m *Manager, topic event.Topic) *int {
	n := new(int)
	m.Notifier().Subscribe(topic, func(event.Envelope) { *n++ })
	return n
}

func TestRegisterAndLookup(t *testing.T) {
	m := NewManager()
	registered := countTopic(m, event.TopicToolRegistered)

	a := newRecordingTool(m, Options{ID: "a", Name: "A"})
	b := newRecordingTool(m, Options{ID: "b", Name: "B"})
	m.Register(a)
	m.Register(b)

	if *registered != 2 {
		t.Errorf("toolRegistered notifications = %d, want 2", *registered)
	}
	if got, ok := m.Tool("a"); !ok || got != Tool(a) {
		t.Error("lookup of a failed")
	}
	if tools := m.Tools(); len(tools) != 2 || tools[0].ID() != "a" || tools[1].ID() != "b" {
		t.Errorf("Tools() order wrong: %v", tools)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	m := NewManager()
	m.Register(newRecordingTool(m, Options{ID: "a"}))
	m.Register(newRecordingTool(m, Options{ID: "a"}))
	m.Register(newRecordingTool(m, Options{ID: ""}))

	if len(m.Tools()) != 1 {
		t.Errorf("registry size = %d, want 1", len(m.Tools()))
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	m := NewManager()
	changed := countTopic(m, event.TopicToolChanged)
	m.Register(newRecordingTool(m, Options{ID: "a"}))

	m.Activate("a")
	m.Activate("a")

	if *changed != 1 {
		t.Errorf("toolChanged notifications = %d, want 1", *changed)
	}
}

func TestActivateUnknownIsNoOp(t *testing.T) {
	m := NewManager()
	changed := countTopic(m, event.TopicToolChanged)

	m.Activate("nope")

	if m.ActiveTool() != nil {
		t.Error("unknown activation should not set an active tool")
	}
	if *changed != 0 {
		t.Error("unknown activation should not notify")
	}
}

func TestActivateSwitchesAndNotifies(t *testing.T) {
	m := NewManager()
	a := newRecordingTool(m, Options{ID: "a"})
	b := newRecordingTool(m, Options{ID: "b"})
	m.Register(a)
	m.Register(b)

	var change ToolChange
	m.Notifier().Subscribe(event.TopicToolChanged, func(e event.Envelope) {
		change = e.Payload.(ToolChange)
	})

	m.Activate("a")
	if change.New != Tool(a) || change.Previous != nil {
		t.Errorf("first change = {%v %v}, want {a nil}", change.New, change.Previous)
	}

	m.Activate("b")
	if change.New != Tool(b) || change.Previous != Tool(a) {
		t.Error("second change should carry previous tool")
	}
	if a.Active() {
		t.Error("a should be deactivated")
	}
	if !b.Active() {
		t.Error("b should be active")
	}
}

func TestTempActivateAndRestore(t *testing.T) {
	m := NewManager()
	m.Register(newRecordingTool(m, Options{ID: "select"}))
	m.Register(newRecordingTool(m, Options{ID: "pan"}))

	m.Activate("select")
	m.TempActivate("pan")
	if m.ActiveTool().ID() != "pan" {
		t.Fatal("temp activation failed")
	}

	m.RestorePrevious()
	if m.ActiveTool().ID() != "select" {
		t.Errorf("active = %q, want select", m.ActiveTool().ID())
	}

	// Slot is cleared: a second restore changes nothing.
	m.Activate("pan")
	m.RestorePrevious()
	if m.ActiveTool().ID() != "pan" {
		t.Error("second restore should be a no-op")
	}
}

func TestUnregisterActiveToolLeavesManagerToolless(t *testing.T) {
	m := NewManager()
	a := newRecordingTool(m, Options{ID: "a"})
	m.Register(a)
	m.Activate("a")

	m.Unregister("a")

	if m.ActiveTool() != nil {
		t.Error("no automatic fallback tool expected")
	}
	if a.Active() {
		t.Error("unregistered tool should be deactivated")
	}

	// Events to a toolless manager are dropped, not panics.
	m.HandlePointer(pointer.At(1, 1, pointer.PhaseDown, pointer.ButtonLeft))
}

func TestPointerRoutingAndCapture(t *testing.T) {
	m := NewManager()
	a := newRecordingTool(m, Options{ID: "a"})
	m.Register(a)
	m.Activate("a")

	m.HandlePointer(pointer.At(10, 10, pointer.PhaseDown, pointer.ButtonLeft))
	if !m.Captured() {
		t.Error("down should acquire capture")
	}

	// Second down while captured: guarded no-op on the capture flag.
	m.HandlePointer(pointer.At(11, 10, pointer.PhaseDown, pointer.ButtonLeft))
	if !m.Captured() {
		t.Error("capture should still be held")
	}

	m.HandlePointer(pointer.At(10, 11, pointer.PhaseMove, pointer.ButtonLeft))
	m.HandlePointer(pointer.At(10, 11, pointer.PhaseUp, pointer.ButtonLeft))
	if m.Captured() {
		t.Error("up should release capture")
	}
}

func TestPointerCancelActsAsUp(t *testing.T) {
	m := NewManager()
	a := newRecordingTool(m, Options{ID: "a"})
	m.Register(a)
	m.Activate("a")

	m.HandlePointer(pointer.At(10, 10, pointer.PhaseDown, pointer.ButtonLeft))
	m.HandlePointer(pointer.At(30, 10, pointer.PhaseMove, pointer.ButtonLeft))
	m.HandlePointer(pointer.At(30, 10, pointer.PhaseCancel, pointer.ButtonLeft))

	if a.dragEnds != 1 {
		t.Errorf("dragEnds = %d, want 1 (cancel terminates the gesture)", a.dragEnds)
	}
	if m.Captured() {
		t.Error("cancel should release capture")
	}
	if a.State().IsDown || a.State().IsDragging {
		t.Error("cancel must not strand the machine mid-gesture")
	}
}

func TestPointerEventsEmitRedraw(t *testing.T) {
	m := NewManager()
	m.Register(newRecordingTool(m, Options{ID: "a"}))
	m.Activate("a")
	redraws := countTopic(m, event.TopicRedraw)

	m.HandlePointer(pointer.At(10, 10, pointer.PhaseDown, pointer.ButtonLeft))
	m.HandlePointer(pointer.At(10, 11, pointer.PhaseMove, pointer.ButtonLeft))
	m.HandlePointer(pointer.At(10, 11, pointer.PhaseUp, pointer.ButtonLeft))

	if *redraws != 3 {
		t.Errorf("redraw notifications = %d, want 3", *redraws)
	}
}

func TestCursorRefresh(t *testing.T) {
	m := NewManager()
	c := &fakeCanvas{}
	m.Attach(c)
	m.Register(newRecordingTool(m, Options{ID: "a", Cursor: "crosshair"}))

	m.Activate("a")
	if c.cursor != "crosshair" {
		t.Errorf("cursor = %q, want crosshair", c.cursor)
	}

	c.sets = 0
	m.HandlePointer(pointer.At(10, 10, pointer.PhaseMove, pointer.ButtonNone))
	if c.sets != 1 {
		t.Errorf("cursor refreshes after pointer event = %d, want 1", c.sets)
	}
}

func TestShortcutActivation(t *testing.T) {
	m := NewManager()
	changed := countTopic(m, event.TopicToolChanged)
	m.Register(newRecordingTool(m, Options{ID: "a", Shortcut: "v"}))

	consumed := m.HandleKeyDown(key.NewEvent("v", key.ModNone), false)

	if !consumed {
		t.Error("shortcut match should consume the event")
	}
	if m.ActiveTool() == nil || m.ActiveTool().ID() != "a" {
		t.Error("shortcut should activate the tool")
	}
	if *changed != 1 {
		t.Errorf("toolChanged notifications = %d, want 1", *changed)
	}
}

func TestShortcutExactModifierMatch(t *testing.T) {
	m := NewManager()
	m.Register(newRecordingTool(m, Options{ID: "a", Shortcut: "ctrl+k"}))

	if m.HandleKeyDown(key.NewEvent("k", key.ModNone), false) {
		t.Error("subset of modifiers must not match")
	}
	if m.HandleKeyDown(key.NewEvent("k", key.ModCtrl|key.ModShift), false) {
		t.Error("superset of modifiers must not match")
	}
	if m.ActiveTool() != nil {
		t.Fatal("no activation expected yet")
	}

	if !m.HandleKeyDown(key.NewEvent("k", key.ModCtrl), false) {
		t.Error("exact modifier set should match")
	}
}

func TestShortcutSuppressedWhenEditableFocused(t *testing.T) {
	m := NewManager()
	m.Register(newRecordingTool(m, Options{ID: "a", Shortcut: "v"}))

	if m.HandleKeyDown(key.NewEvent("v", key.ModNone), true) {
		t.Error("editable focus should suppress shortcut activation")
	}
	if m.ActiveTool() != nil {
		t.Error("tool should not activate while editing text")
	}
}

func TestKeyForwardingConsumption(t *testing.T) {
	m := NewManager()
	a := newRecordingTool(m, Options{ID: "a"})
	m.Register(a)
	m.Activate("a")

	if m.HandleKeyDown(key.NewEvent("x", key.ModNone), false) {
		t.Error("unconsumed key should not be suppressed")
	}

	a.consumeKeys = true
	if !m.HandleKeyDown(key.NewEvent("x", key.ModNone), false) {
		t.Error("consumed key should be suppressed")
	}
	if !m.HandleKeyUp(key.NewEvent("x", key.ModNone)) {
		t.Error("key up uses the same consumption rule")
	}
}

func TestContextMenuSuppressedAndNotified(t *testing.T) {
	m := NewManager()
	menus := countTopic(m, event.TopicContextMenu)

	if !m.HandleContextMenu(pointer.At(5, 5, pointer.PhaseDown, pointer.ButtonRight)) {
		t.Error("context menu must always be suppressed")
	}
	if *menus != 1 {
		t.Errorf("contextMenu notifications = %d, want 1", *menus)
	}
}

func TestAddRemoveObjectBrokering(t *testing.T) {
	m := NewManager()
	doc := scene.NewDocument()
	h := history.NewHistory(0)
	m.SetDocument(doc)
	m.SetHistory(h)

	added := countTopic(m, event.TopicObjectAdded)
	removed := countTopic(m, event.TopicObjectRemoved)

	obj := scene.NewRectObject("r", geom.R(0, 0, 10, 10))
	m.AddObject(obj)

	if *added != 1 {
		t.Errorf("objectAdded = %d, want 1", *added)
	}
	if len(doc.ActiveLayer().Children()) != 1 {
		t.Fatal("object not in active layer")
	}
	if !h.CanUndo() {
		t.Error("add should be undoable")
	}

	m.RemoveObject(obj)
	if *removed != 1 {
		t.Errorf("objectRemoved = %d, want 1", *removed)
	}
	if len(doc.ActiveLayer().Children()) != 0 {
		t.Error("object still in layer")
	}

	// Removing an unknown object is a logged no-op.
	m.RemoveObject(scene.NewRectObject("ghost", geom.R(0, 0, 1, 1)))
	if *removed != 1 {
		t.Error("unknown removal should not notify")
	}
}

func TestActionBrokering(t *testing.T) {
	m := NewManager()
	h := history.NewHistory(0)
	doc := scene.NewDocument()
	m.SetDocument(doc)
	m.SetHistory(h)

	begun := countTopic(m, event.TopicActionBegun)
	ended := countTopic(m, event.TopicActionEnded)
	committed := countTopic(m, event.TopicActionCommitted)

	m.BeginAction("Move objects")
	m.AddObject(scene.NewRectObject("a", geom.R(0, 0, 1, 1)))
	m.AddObject(scene.NewRectObject("b", geom.R(2, 2, 3, 3)))
	m.EndAction()

	if *begun != 1 || *ended != 1 {
		t.Errorf("begun=%d ended=%d, want 1/1", *begun, *ended)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1 compound step", h.UndoCount())
	}

	m.AddObject(scene.NewRectObject("c", geom.R(4, 4, 5, 5)))
	m.CommitAction("Draw Rectangle")
	if *committed != 1 {
		t.Errorf("committed = %d, want 1", *committed)
	}
	if info, ok := h.PeekUndo(); !ok || info.Description != "Draw Rectangle" {
		t.Errorf("top entry = %+v, want Draw Rectangle", info)
	}

	// Without a history collaborator the brokering degrades to
	// notifications only.
	m.SetHistory(nil)
	m.BeginAction("x")
	m.CommitAction("x")
	m.EndAction()
}

func TestSnapConfiguration(t *testing.T) {
	m := NewManager()
	p := geom.Pt(12, 17)

	if got := m.Snap(p); got != p {
		t.Error("snap with no grid should be identity")
	}

	m.SetGrid(scene.NewGrid(10))
	if got := m.Snap(p); got != geom.Pt(10, 20) {
		t.Errorf("Snap = %v, want {10 20}", got)
	}

	m.SetSnapEnabled(false)
	if got := m.Snap(p); got != p {
		t.Error("snap disabled should be identity")
	}
}

func TestDetachClearsRegistryNotCollaborators(t *testing.T) {
	m := NewManager()
	doc := scene.NewDocument()
	m.SetDocument(doc)
	a := newRecordingTool(m, Options{ID: "a"})
	m.Register(a)
	m.Activate("a")

	m.Detach()

	if len(m.Tools()) != 0 {
		t.Error("registry should be cleared")
	}
	if m.ActiveTool() != nil {
		t.Error("active tool should be cleared")
	}
	if a.Active() {
		t.Error("active tool should be deactivated")
	}
	if m.Document() == nil {
		t.Error("collaborators are referenced, never destroyed")
	}

	// Detach without a prior Attach is safe.
	NewManager().Detach()
}
