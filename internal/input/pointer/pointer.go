// Package pointer models the pointer side of the input pipeline.
// Events carry screen-space coordinates; world-space conversion is the
// tool layer's responsibility.
package pointer

import (
	"time"

	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/input/key"
)

// Button represents a pointer button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) button.
	ButtonLeft
	// ButtonMiddle is the middle button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Phase represents where in a gesture a pointer event falls.
type Phase uint8

const (
	// PhaseNone indicates no phase.
	PhaseNone Phase = iota
	// PhaseDown indicates a button press.
	PhaseDown
	// PhaseMove indicates pointer movement.
	PhaseMove
	// PhaseUp indicates a button release.
	PhaseUp
	// PhaseCancel indicates the gesture was interrupted by the host
	// (window lost focus, capture revoked). Handled identically to
	// PhaseUp so a gesture can never be stranded mid-drag.
	PhaseCancel
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Event represents a pointer input event in screen space.
type Event struct {
	// Screen is the position local to the bound host surface, in pixels.
	Screen geom.Point

	// Button is the pointer button involved.
	Button Button

	// Modifiers are the keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Phase is where in the gesture this event falls.
	Phase Phase

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// At is a convenience constructor for an event at the given screen
// position with the current timestamp.
func At(x, y float64, phase Phase, button Button) Event {
	return Event{
		Screen:    geom.Pt(x, y),
		Button:    button,
		Phase:     phase,
		Timestamp: time.Now(),
	}
}
