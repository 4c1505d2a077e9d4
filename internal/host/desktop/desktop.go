// Package desktop hosts the editor in a native window via shiny. The
// event loop owns the window: it translates shiny mouse and key events
// into the normalized events the tool manager routes, and repaints the
// scene into a software buffer whenever the manager requests a redraw.
package desktop

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	mkey "golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/easelkit/easel/internal/event"
	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/input/pointer"
	"github.com/easelkit/easel/internal/logging"
	"github.com/easelkit/easel/internal/scene"
	"github.com/easelkit/easel/internal/style"
	"github.com/easelkit/easel/internal/tool"
)

// Options configures the window.
type Options struct {
	Title  string
	Width  int
	Height int
}

const (
	doubleClickWindow = 400 * time.Millisecond
	doubleClickSlop   = 4.0

	handleSize = 7
)

// Host carries the per-window state the event loop mutates.
type Host struct {
	mgr   *tool.Manager
	doc   *scene.Document
	sel   *scene.Selection
	vp    *scene.Viewport
	theme style.Theme

	win    screen.Window
	cursor string

	lastPress    time.Time
	lastPressPos geom.Point
}

// Run opens a window and drives the editor until it closes. It must be
// called from the program's main goroutine; driver.Main does not
// return until the window is dead.
func Run(mgr *tool.Manager, doc *scene.Document, sel *scene.Selection, vp *scene.Viewport, theme style.Theme, opts Options) {
	if opts.Width <= 0 {
		opts.Width = 1024
	}
	if opts.Height <= 0 {
		opts.Height = 768
	}

	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  opts.Title,
			Width:  opts.Width,
			Height: opts.Height,
		})
		if err != nil {
			logging.Logger().Error("create window", "error", err)
			return
		}
		defer w.Release()

		h := &Host{mgr: mgr, doc: doc, sel: sel, vp: vp, theme: theme, win: w}
		mgr.Attach(h)
		defer mgr.Detach()

		sub := mgr.Notifier().Subscribe(event.TopicRedraw, func(event.Envelope) {
			w.Send(paint.Event{})
		})
		defer mgr.Notifier().Unsubscribe(sub)

		var buf screen.Buffer
		defer func() {
			if buf != nil {
				buf.Release()
			}
		}()

		for {
			switch e := w.NextEvent().(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case size.Event:
				if buf != nil {
					buf.Release()
					buf = nil
				}
				buf, err = s.NewBuffer(e.Size())
				if err != nil {
					logging.Logger().Error("create buffer", "error", err)
					return
				}
				w.Send(paint.Event{})

			case paint.Event:
				if buf == nil {
					continue
				}
				h.paint(buf.RGBA())
				w.Upload(image.Point{}, buf, buf.Bounds())
				w.Publish()

			case mouse.Event:
				h.handleMouse(e)

			case mkey.Event:
				kev, ok := TranslateKey(e)
				if !ok {
					continue
				}
				switch e.Direction {
				case mkey.DirPress:
					h.mgr.HandleKeyDown(kev, false)
					w.Send(paint.Event{})
				case mkey.DirRelease:
					h.mgr.HandleKeyUp(kev)
				}

			case error:
				logging.Logger().Error("window event", "error", e)
			}
		}
	})
}

// SetCursor records the requested cursor name. Shiny's software driver
// has no cursor API, so the name is kept for debugging only.
func (h *Host) SetCursor(name string) { h.cursor = name }

func (h *Host) handleMouse(e mouse.Event) {
	pos := geom.Pt(float64(e.X), float64(e.Y))

	if factor := WheelZoom(e.Button); factor != 1 {
		// Wheel clicks arrive as DirStep; some drivers report
		// press/release pairs, so only the leading edge zooms.
		if e.Direction == mouse.DirStep || e.Direction == mouse.DirPress {
			h.vp.ZoomAt(pos, factor)
			h.win.Send(paint.Event{})
		}
		return
	}

	pev := pointer.Event{
		Screen:    pos,
		Button:    TranslateButton(e.Button),
		Modifiers: TranslateModifiers(e.Modifiers),
		Phase:     TranslatePhase(e.Direction),
		Timestamp: time.Now(),
	}

	if pev.Phase == pointer.PhaseDown && pev.Button == pointer.ButtonLeft && h.isDoubleClick(pos, pev.Timestamp) {
		h.mgr.HandleDoubleClick(pev)
		return
	}
	h.mgr.HandlePointer(pev)
}

// isDoubleClick folds two nearby presses into a double click, tracking
// press history as a side effect.
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

// Rendering. Everything is software-drawn into the window buffer:
// object outlines, then selection chrome, then the active tool's
// marquee or shape preview on top.

func (h *Host) paint(m *image.RGBA) {
	draw.Draw(m, m.Bounds(), image.NewUniform(style.RGBA(h.theme.Background, 255)), image.Point{}, draw.Src)

	for _, layer := range h.doc.Layers() {
		if !layer.Visible() {
			continue
		}
		h.paintContainer(m, layer)
	}
	h.paintSelection(m)
	h.paintToolOverlay(m)
	h.paintStatus(m)
}

// paintStatus draws the active tool's name in the bottom-left corner.
func (h *Host) paintStatus(m *image.RGBA) {
	name := "(no tool)"
	if t := h.mgr.ActiveTool(); t != nil {
		name = t.Name()
	}
	d := &font.Drawer{
		Dst:  m,
		Src:  image.NewUniform(style.RGBA(h.theme.PreviewStroke, 255)),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(m.Bounds().Min.X+8, m.Bounds().Max.Y-8),
	}
	d.DrawString(name)
}

func (h *Host) paintContainer(m *image.RGBA, c scene.Container) {
	stroke := style.RGBA(h.theme.PreviewStroke, 255)
	for _, child := range c.Children() {
		if !child.Visible() {
			continue
		}
		if sub, ok := child.(scene.Container); ok {
			h.paintContainer(m, sub)
			continue
		}
		b, ok := child.(scene.Bounded)
		if !ok {
			continue
		}
		if _, ok := child.(*scene.EllipseObject); ok {
			strokeEllipse(m, h.screenRect(b.Bounds()), stroke)
		} else {
			strokeRect(m, h.screenRect(b.Bounds()), stroke)
		}
	}
}

func (h *Host) paintSelection(m *image.RGBA) {
	bounds, ok := h.sel.Bounds()
	if !ok {
		return
	}
	strokeRect(m, h.screenRect(bounds), style.RGBA(h.theme.SelectionStroke, 255))

	fill := style.RGBA(h.theme.HandleFill, 255)
	border := style.RGBA(h.theme.SelectionStroke, 255)
	for _, hd := range h.sel.Handles() {
		p := h.vp.WorldToScreen(hd.Pos)
		r := image.Rect(
			int(p.X)-handleSize/2, int(p.Y)-handleSize/2,
			int(p.X)+handleSize/2+1, int(p.Y)+handleSize/2+1,
		)
		fillRect(m, r, fill)
		strokeRect(m, r, border)
	}
}

func (h *Host) paintToolOverlay(m *image.RGBA) {
	t := h.mgr.ActiveTool()
	if t == nil {
		return
	}

	if mt, ok := t.(interface{ Marquee() (geom.Rect, bool) }); ok {
		if r, live := mt.Marquee(); live {
			sr := h.screenRect(r)
			fillRect(m, sr, style.RGBA(h.theme.MarqueeFill, 40))
			strokeRect(m, sr, style.RGBA(h.theme.SelectionStroke, 255))
		}
	}
	if pt, ok := t.(interface{ Preview() (geom.Rect, bool) }); ok {
		if r, live := pt.Preview(); live {
			strokeRect(m, h.screenRect(r), style.RGBA(h.theme.PreviewStroke, 255))
		}
	}
	t.Render(m)
}

func (h *Host) screenRect(r geom.Rect) image.Rectangle {
	min := h.vp.WorldToScreen(r.Min)
	max := h.vp.WorldToScreen(r.Max)
	return image.Rect(int(min.X), int(min.Y), int(max.X), int(max.Y)).Canon()
}

func fillRect(m *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(m, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// strokeRect draws a one-pixel outline as four filled strips.
func strokeRect(m *image.RGBA, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	fillRect(m, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fillRect(m, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fillRect(m, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fillRect(m, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// strokeEllipse plots the ellipse inscribed in r parametrically. Step
// count scales with the perimeter so outlines stay closed under zoom.
func strokeEllipse(m *image.RGBA, r image.Rectangle, c color.RGBA) {
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	cx := float64(r.Min.X) + rx
	cy := float64(r.Min.Y) + ry

	steps := int(4 * (rx + ry))
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := int(cx + rx*math.Cos(a))
		y := int(cy + ry*math.Sin(a))
		if image.Pt(x, y).In(m.Bounds()) {
			m.SetRGBA(x, y, c)
		}
	}
}
