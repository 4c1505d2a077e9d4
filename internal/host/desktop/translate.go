package desktop

import (
	mkey "golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/easelkit/easel/internal/input/key"
	"github.com/easelkit/easel/internal/input/pointer"
)

// TranslateButton converts a shiny mouse button. Wheel buttons map to
// none; they are routed as zoom, not pointer input.
func TranslateButton(b mouse.Button) pointer.Button {
	switch b {
	case mouse.ButtonLeft:
		return pointer.ButtonLeft
	case mouse.ButtonMiddle:
		return pointer.ButtonMiddle
	case mouse.ButtonRight:
		return pointer.ButtonRight
	default:
		return pointer.ButtonNone
	}
}

// TranslatePhase converts a shiny mouse direction. DirNone is a move;
// shiny has no cancel direction, so cancel never originates here.
func TranslatePhase(d mouse.Direction) pointer.Phase {
	switch d {
	case mouse.DirPress:
		return pointer.PhaseDown
	case mouse.DirRelease:
		return pointer.PhaseUp
	default:
		return pointer.PhaseMove
	}
}

// WheelZoom returns the zoom factor for a wheel button, or 1 for
// everything else.
func WheelZoom(b mouse.Button) float64 {
	switch b {
	case mouse.ButtonWheelUp:
		return 1.1
	case mouse.ButtonWheelDown:
		return 1 / 1.1
	default:
		return 1
	}
}

// TranslateModifiers converts shiny key modifiers.
func TranslateModifiers(m mkey.Modifiers) key.Modifier {
	var out key.Modifier
	if m&mkey.ModShift != 0 {
		out = out.With(key.ModShift)
	}
	if m&mkey.ModControl != 0 {
		out = out.With(key.ModCtrl)
	}
	if m&mkey.ModAlt != 0 {
		out = out.With(key.ModAlt)
	}
	if m&mkey.ModMeta != 0 {
		out = out.With(key.ModMeta)
	}
	return out
}

// specialCodeNames maps shiny key codes to normalized key names.
var specialCodeNames = map[mkey.Code]string{
	mkey.CodeEscape:          "escape",
	mkey.CodeReturnEnter:     "enter",
	mkey.CodeTab:             "tab",
	mkey.CodeDeleteBackspace: "backspace",
	mkey.CodeDeleteForward:   "delete",
	mkey.CodeHome:            "home",
	mkey.CodeEnd:             "end",
	mkey.CodePageUp:          "pageup",
	mkey.CodePageDown:        "pagedown",
	mkey.CodeUpArrow:         "up",
	mkey.CodeDownArrow:       "down",
	mkey.CodeLeftArrow:       "left",
	mkey.CodeRightArrow:      "right",
	mkey.CodeSpacebar:        "space",
	mkey.CodeF1:              "f1",
	mkey.CodeF2:              "f2",
	mkey.CodeF3:              "f3",
	mkey.CodeF4:              "f4",
	mkey.CodeF5:              "f5",
	mkey.CodeF6:              "f6",
	mkey.CodeF7:              "f7",
	mkey.CodeF8:              "f8",
	mkey.CodeF9:              "f9",
	mkey.CodeF10:             "f10",
	mkey.CodeF11:             "f11",
	mkey.CodeF12:             "f12",
}

// TranslateKey converts a shiny key event into a normalized key event.
// ok is false for keys with neither a printable rune nor a mapped code.
func TranslateKey(e mkey.Event) (key.Event, bool) {
	mods := TranslateModifiers(e.Modifiers)
	if name, found := specialCodeNames[e.Code]; found {
		return key.NewEvent(name, mods), true
	}
	if e.Rune > ' ' {
		return key.NewEvent(string(e.Rune), mods), true
	}
	return key.Event{}, false
}
