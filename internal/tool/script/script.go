// Package script lets editing tools be written in Lua. A script
// declares a global `tool` table with identity fields and callback
// functions; the Go side adapts them onto the shared gesture machine
// and exposes a small `editor` API for document edits.
//
// gopher-lua's LState is not goroutine-safe, but the input controller
// is single-threaded by design, so every callback runs on the event
// loop with no extra synchronization. Script errors are logged and
// degrade to no-ops; a misbehaving tool script must not crash the
// input pipeline.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/input/key"
	"github.com/easelkit/easel/internal/input/pointer"
	"github.com/easelkit/easel/internal/logging"
	"github.com/easelkit/easel/internal/scene"
	"github.com/easelkit/easel/internal/tool"
)

// Callback names a script may define on its `tool` table.
var callbackNames = []string{
	"on_activate",
	"on_deactivate",
	"on_click",
	"on_double_click",
	"on_drag_start",
	"on_drag",
	"on_drag_end",
	"on_key_down",
	"on_key_up",
}

// Tool is an editing tool whose behavior lives in a Lua script.
type Tool struct {
	*tool.Base
	tool.NopHooks

	L         *lua.LState
	callbacks map[string]*lua.LFunction
	seq       int
}

// Load reads and runs a tool script from a file.
func Load(m *tool.Manager, path string) (*Tool, error) {
	return load(m, func(L *lua.LState) error { return L.DoFile(path) })
}

// LoadString runs a tool script from source. Useful for tests and
// embedded scripts.
func LoadString(m *tool.Manager, src string) (*Tool, error) {
	return load(m, func(L *lua.LState) error { return L.DoString(src) })
}

func load(m *tool.Manager, run func(*lua.LState) error) (*Tool, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	t := &Tool{L: L, callbacks: make(map[string]*lua.LFunction)}
	t.registerEditorAPI()

	if err := run(L); err != nil {
		L.Close()
		return nil, fmt.Errorf("tool script: %w", err)
	}

	spec, ok := L.GetGlobal("tool").(*lua.LTable)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("tool script: no global 'tool' table")
	}

	opts := tool.Options{
		ID:          tableString(spec, "id"),
		Name:        tableString(spec, "name"),
		Description: tableString(spec, "description"),
		Shortcut:    tableString(spec, "shortcut"),
		Icon:        tableString(spec, "icon"),
		Cursor:      tableString(spec, "cursor"),
	}
	if opts.ID == "" {
		L.Close()
		return nil, fmt.Errorf("tool script: 'tool.id' is required")
	}
	if opts.Cursor == "" {
		opts.Cursor = "crosshair"
	}

	for _, name := range callbackNames {
		if fn, ok := spec.RawGetString(name).(*lua.LFunction); ok {
			t.callbacks[name] = fn
		}
	}

	t.Base = tool.NewBase(m, opts, t)
	return t, nil
}

// openSafeLibraries opens only side-effect-free Lua standard
// libraries. io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// Close releases the Lua state. The tool must be unregistered first.
func (t *Tool) Close() {
	if t.L != nil {
		t.L.Close()
		t.L = nil
	}
}

// call invokes a script callback, logging rather than raising errors.
// The first return value is returned as a bool (false when absent).
func (t *Tool) call(name string, args ...lua.LValue) bool {
	fn, ok := t.callbacks[name]
	if !ok || t.L == nil {
		return false
	}

	err := t.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		logging.Logger().Warn("tool script callback failed",
			"tool", t.ID(), "callback", name, "error", err)
		return false
	}

	ret := t.L.Get(-1)
	t.L.Pop(1)
	return lua.LVAsBool(ret)
}

func (t *Tool) pointArgs(p geom.Point) []lua.LValue {
	return []lua.LValue{lua.LNumber(p.X), lua.LNumber(p.Y)}
}

// Activate runs the shared activation then the script's on_activate.
func (t *Tool) Activate() {
	t.Base.Activate()
	t.call("on_activate")
}

// Deactivate runs the script's on_deactivate then the shared teardown.
func (t *Tool) Deactivate() {
	t.call("on_deactivate")
	t.Base.Deactivate()
}

// Gesture hooks, forwarded with world coordinates.

func (t *Tool) OnClick(pointer.Event) {
	t.call("on_click", t.pointArgs(t.State().CurrentPoint)...)
}

func (t *Tool) OnDoubleClick(ev pointer.Event) {
	t.call("on_double_click", t.pointArgs(t.ScreenToWorld(ev.Screen))...)
}

func (t *Tool) OnDragStart(pointer.Event) {
	t.call("on_drag_start", t.pointArgs(t.State().StartPoint)...)
}

func (t *Tool) OnDrag(pointer.Event) {
	s := t.State()
	args := append(t.pointArgs(s.CurrentPoint), t.pointArgs(s.MoveDelta())...)
	t.call("on_drag", args...)
}

func (t *Tool) OnDragEnd(pointer.Event) {
	t.call("on_drag_end", t.pointArgs(t.State().CurrentPoint)...)
}

func (t *Tool) OnKeyDown(ev key.Event) bool {
	return t.call("on_key_down", lua.LString(ev.Key))
}

func (t *Tool) OnKeyUp(ev key.Event) bool {
	return t.call("on_key_up", lua.LString(ev.Key))
}

// registerEditorAPI installs the `editor` table: the sanctioned
// document-mutation surface for scripts, mirroring the pass-throughs
// concrete Go tools get from Base.
func (t *Tool) registerEditorAPI() {
	ed := t.L.NewTable()

	t.L.SetField(ed, "add_rect", t.L.NewFunction(func(L *lua.LState) int {
		r := geom.FromPoints(
			geom.Pt(float64(L.CheckNumber(1)), float64(L.CheckNumber(2))),
			geom.Pt(float64(L.CheckNumber(3)), float64(L.CheckNumber(4))),
		)
		t.seq++
		t.AddObject(scene.NewRectObject(fmt.Sprintf("%s %d", t.Name(), t.seq), r))
		return 0
	}))

	t.L.SetField(ed, "add_ellipse", t.L.NewFunction(func(L *lua.LState) int {
		r := geom.FromPoints(
			geom.Pt(float64(L.CheckNumber(1)), float64(L.CheckNumber(2))),
			geom.Pt(float64(L.CheckNumber(3)), float64(L.CheckNumber(4))),
		)
		t.seq++
		t.AddObject(scene.NewEllipseObject(fmt.Sprintf("%s %d", t.Name(), t.seq), r))
		return 0
	}))

	t.L.SetField(ed, "commit", t.L.NewFunction(func(L *lua.LState) int {
		t.CommitAction(L.CheckString(1))
		return 0
	}))

	t.L.SetField(ed, "begin_action", t.L.NewFunction(func(L *lua.LState) int {
		t.BeginAction(L.CheckString(1))
		return 0
	}))

	t.L.SetField(ed, "end_action", t.L.NewFunction(func(L *lua.LState) int {
		t.EndAction()
		return 0
	}))

	t.L.SetField(ed, "redraw", t.L.NewFunction(func(L *lua.LState) int {
		t.RequestRedraw()
		return 0
	}))

	t.L.SetField(ed, "snap", t.L.NewFunction(func(L *lua.LState) int {
		p := t.SnapToGrid(geom.Pt(float64(L.CheckNumber(1)), float64(L.CheckNumber(2))))
		L.Push(lua.LNumber(p.X))
		L.Push(lua.LNumber(p.Y))
		return 2
	}))

	t.L.SetGlobal("editor", ed)
}

func tableString(t *lua.LTable, field string) string {
	if s, ok := t.RawGetString(field).(lua.LString); ok {
		return string(s)
	}
	return ""
}
