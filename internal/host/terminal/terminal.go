// Package terminal hosts the editor in a terminal with tcell. It is a
// debugging surface more than a drawing surface: shapes render as
// box-drawn outlines, one world unit per cell, and the bottom row shows
// the active tool. Pointer and key events are translated into the
// normalized events the tool manager routes.
package terminal

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/easelkit/easel/internal/event"
	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/input/pointer"
	"github.com/easelkit/easel/internal/scene"
	"github.com/easelkit/easel/internal/style"
	"github.com/easelkit/easel/internal/tool"
)

// doubleClickWindow is how close two presses must be, in time and
// cells, to count as a double click. Terminals do not report double
// clicks natively.
const (
	doubleClickWindow = 400 * time.Millisecond
	doubleClickSlop   = 1.0
)

// Host runs the editor event loop on a tcell screen.
type Host struct {
	screen tcell.Screen
	mgr    *tool.Manager
	doc    *scene.Document
	sel    *scene.Selection
	vp     *scene.Viewport
	theme  style.Theme

	cursor   string
	prevMask tcell.ButtonMask
	dirty    bool

	lastPress    time.Time
	lastPressPos geom.Point
}

// New creates a host bound to a new tcell screen. Init must be called
// before Run.
func New(mgr *tool.Manager, doc *scene.Document, sel *scene.Selection, vp *scene.Viewport, theme style.Theme) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return &Host{
		screen: screen,
		mgr:    mgr,
		doc:    doc,
		sel:    sel,
		vp:     vp,
		theme:  theme,
	}, nil
}

// Init initializes the screen, enables mouse reporting, and attaches
// the manager so cursor updates and redraw requests reach the host.
func (h *Host) Init() error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	h.screen.EnableMouse()
	h.screen.SetStyle(h.baseStyle())

	h.mgr.Attach(h)
	h.mgr.Notifier().Subscribe(event.TopicRedraw, func(event.Envelope) {
		h.dirty = true
	})
	h.dirty = true
	return nil
}

// SetCursor records the pointer cursor name. Terminals cannot change
// the pointer shape; the name is surfaced in the status line instead.
func (h *Host) SetCursor(name string) { h.cursor = name }

// Stop interrupts a running event loop from another goroutine.
func (h *Host) Stop() {
	h.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Run drives the event loop until ctrl+q or Stop. The screen is
// finalized and the manager detached on return.
func (h *Host) Run() error {
	defer h.screen.Fini()
	defer h.mgr.Detach()

	for {
		if h.dirty {
			h.draw()
			h.dirty = false
		}

		ev := h.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			h.screen.Sync()
			h.dirty = true
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlQ {
				return nil
			}
			if kev, ok := TranslateKey(ev); ok {
				h.mgr.HandleKeyDown(kev, false)
				h.dirty = true
			}
		case *tcell.EventMouse:
			h.handleMouse(ev)
		}
	}
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := geom.Pt(float64(x), float64(y))
	mods := TranslateModifiers(ev.Modifiers())

	if factor := WheelZoom(ev.Buttons()); factor != 1 {
		h.vp.ZoomAt(pos, factor)
		h.dirty = true
		return
	}

	mask := ev.Buttons() &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)
	for _, tr := range ButtonTransitions(h.prevMask, mask) {
		pev := pointer.Event{
			Screen:    pos,
			Button:    tr.Button,
			Modifiers: mods,
			Phase:     tr.Phase,
			Timestamp: ev.When(),
		}
		if tr.Phase == pointer.PhaseDown && h.isDoubleClick(pos, ev.When()) {
			h.mgr.HandleDoubleClick(pev)
		} else {
			h.mgr.HandlePointer(pev)
		}
	}
	h.prevMask = mask
}

// isDoubleClick folds consecutive nearby presses into a double click
// and tracks press history as a side effect.
func (h *Host) isDoubleClick(pos geom.Point, at time.Time) bool {
	isDouble := !h.lastPress.IsZero() &&
		at.Sub(h.lastPress) <= doubleClickWindow &&
		pos.Distance(h.lastPressPos) <= doubleClickSlop
	if isDouble {
		h.lastPress = time.Time{}
	} else {
		h.lastPress = at
		h.lastPressPos = pos
	}
	return isDouble
}

// Rendering.

func (h *Host) baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(toTcell(h.theme.Background))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (h *Host) draw() {
	h.screen.Fill(' ', h.baseStyle())

	for _, layer := range h.doc.Layers() {
		if !layer.Visible() {
			continue
		}
		h.drawContainer(layer)
	}
	h.drawSelection()
	h.drawStatus()

	h.screen.Show()
}

func (h *Host) drawContainer(c scene.Container) {
	for _, child := range c.Children() {
		if !child.Visible() {
			continue
		}
		if sub, ok := child.(scene.Container); ok {
			h.drawContainer(sub)
			continue
		}
		b, ok := child.(scene.Bounded)
		if !ok {
			continue
		}
		corner := '+'
		if _, ok := child.(*scene.EllipseObject); ok {
			corner = 'o'
		}
		st := h.baseStyle().Foreground(toTcell(h.theme.PreviewStroke))
		h.drawBox(b.Bounds(), corner, st)
	}
}

func (h *Host) drawSelection() {
	bounds, ok := h.sel.Bounds()
	if !ok {
		return
	}
	st := h.baseStyle().Foreground(toTcell(h.theme.SelectionStroke))
	h.drawBox(bounds, '#', st)

	hst := h.baseStyle().Foreground(toTcell(h.theme.HandleFill))
	for _, hd := range h.sel.Handles() {
		p := h.vp.WorldToScreen(hd.Pos)
		h.screen.SetContent(int(p.X), int(p.Y), '■', nil, hst)
	}
}

// drawBox outlines a world rect with line runes, corners in the given
// rune.
func (h *Host) drawBox(r geom.Rect, corner rune, st tcell.Style) {
	min := h.vp.WorldToScreen(r.Min)
	max := h.vp.WorldToScreen(r.Max)
	x0, y0 := int(min.X), int(min.Y)
	x1, y1 := int(max.X), int(max.Y)

	for x := x0 + 1; x < x1; x++ {
		h.screen.SetContent(x, y0, '─', nil, st)
		h.screen.SetContent(x, y1, '─', nil, st)
	}
	for y := y0 + 1; y < y1; y++ {
		h.screen.SetContent(x0, y, '│', nil, st)
		h.screen.SetContent(x1, y, '│', nil, st)
	}
	h.screen.SetContent(x0, y0, corner, nil, st)
	h.screen.SetContent(x1, y0, corner, nil, st)
	h.screen.SetContent(x0, y1, corner, nil, st)
	h.screen.SetContent(x1, y1, corner, nil, st)
}

func (h *Host) drawStatus() {
	w, hgt := h.screen.Size()
	y := hgt - 1
	if y < 0 {
		return
	}

	name := "(no tool)"
	if t := h.mgr.ActiveTool(); t != nil {
		name = t.Name()
	}
	line := fmt.Sprintf(" %s | cursor: %s | zoom: %.2f | ctrl+q to quit", name, h.cursor, h.vp.Zoom)

	st := h.baseStyle().Reverse(true)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		h.screen.SetContent(x, y, r, nil, st)
	}
}
