package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/easelkit/easel/internal/input/key"
	"github.com/easelkit/easel/internal/input/pointer"
)

// Transition is one pointer phase change derived from a tcell button
// mask diff.
type Transition struct {
	Phase  pointer.Phase
	Button pointer.Button
}

// buttonBits maps the tcell button bits we route. Wheel bits are
// handled separately as zoom.
var buttonBits = []struct {
	mask   tcell.ButtonMask
	button pointer.Button
}{
	{tcell.Button1, pointer.ButtonLeft},
	{tcell.Button2, pointer.ButtonMiddle},
	{tcell.Button3, pointer.ButtonRight},
}

// ButtonTransitions diffs two tcell button masks into pointer phase
// transitions. tcell reports the full held-button set on every mouse
// event, so presses are bits that appeared and releases are bits that
// vanished; an unchanged mask is a move.
func ButtonTransitions(prev, cur tcell.ButtonMask) []Transition {
	var out []Transition
	for _, b := range buttonBits {
		was := prev&b.mask != 0
		is := cur&b.mask != 0
		switch {
		case is && !was:
			out = append(out, Transition{Phase: pointer.PhaseDown, Button: b.button})
		case was && !is:
			out = append(out, Transition{Phase: pointer.PhaseUp, Button: b.button})
		}
	}
	if len(out) == 0 {
		out = append(out, Transition{Phase: pointer.PhaseMove, Button: heldButton(cur)})
	}
	return out
}

func heldButton(mask tcell.ButtonMask) pointer.Button {
	for _, b := range buttonBits {
		if mask&b.mask != 0 {
			return b.button
		}
	}
	return pointer.ButtonNone
}

// WheelZoom returns the zoom factor for wheel bits in a button mask,
// or 1 when no wheel movement is present.
func WheelZoom(mask tcell.ButtonMask) float64 {
	switch {
	case mask&tcell.WheelUp != 0:
		return 1.1
	case mask&tcell.WheelDown != 0:
		return 1 / 1.1
	default:
		return 1
	}
}

// TranslateModifiers converts a tcell modifier mask.
func TranslateModifiers(m tcell.ModMask) key.Modifier {
	var out key.Modifier
	if m&tcell.ModShift != 0 {
		out = out.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		out = out.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		out = out.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		out = out.With(key.ModMeta)
	}
	return out
}

// specialKeyNames maps tcell keys to the normalized names the shortcut
// layer uses.
var specialKeyNames = map[tcell.Key]string{
	tcell.KeyEscape:     "escape",
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pageup",
	tcell.KeyPgDn:       "pagedown",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyF1:         "f1",
	tcell.KeyF2:         "f2",
	tcell.KeyF3:         "f3",
	tcell.KeyF4:         "f4",
	tcell.KeyF5:         "f5",
	tcell.KeyF6:         "f6",
	tcell.KeyF7:         "f7",
	tcell.KeyF8:         "f8",
	tcell.KeyF9:         "f9",
	tcell.KeyF10:        "f10",
	tcell.KeyF11:        "f11",
	tcell.KeyF12:        "f12",
}

// TranslateKey converts a tcell key event into the normalized key
// event the manager dispatches on. ok is false for keys with no
// mapping (control sequences the editor does not use).
func TranslateKey(ev *tcell.EventKey) (key.Event, bool) {
	if name, found := specialKeyNames[ev.Key()]; found {
		return key.NewEvent(name, TranslateModifiers(ev.Modifiers())), true
	}
	if ev.Key() == tcell.KeyRune {
		return key.NewEvent(string(ev.Rune()), TranslateModifiers(ev.Modifiers())), true
	}
	// Ctrl+letter arrives as a dedicated key code; recover the letter.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + (ev.Key() - tcell.KeyCtrlA))
		return key.NewEvent(string(r), TranslateModifiers(ev.Modifiers()).With(key.ModCtrl)), true
	}
	return key.Event{}, false
}
