package tool

import (
	"time"

	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/input/key"
	"github.com/easelkit/easel/internal/input/pointer"
)

// Gesture classification thresholds.
const (
	// ClickDistanceThreshold is the maximum screen displacement, in
	// pixels, for a gesture to still count as a click.
	ClickDistanceThreshold = 5.0

	// ClickTimeThreshold is the maximum gesture duration for a click.
	ClickTimeThreshold = 200 * time.Millisecond

	// DragThreshold is the screen displacement, in pixels, beyond which
	// a held pointer enters the dragging state.
	DragThreshold = 3.0
)

// State is the per-gesture record a tool mutates while handling
// pointer input. One persistent instance is owned by each tool and
// reset at gesture and activation boundaries, so gestures allocate
// nothing.
type State struct {
	// IsDown is set from pointer-down until pointer-up or cancel.
	IsDown bool

	// IsDragging is set once the pointer, while down, moves further
	// than DragThreshold from its start. It implies IsDown was set
	// earlier in the same gesture.
	IsDragging bool

	// World-space gesture positions. PreviousPoint is always assigned
	// before CurrentPoint is overwritten on each move, so MoveDelta is
	// exact for every handler call.
	StartPoint    geom.Point
	CurrentPoint  geom.Point
	PreviousPoint geom.Point

	// Screen-space positions, used for click/drag classification.
	StartScreen   geom.Point
	CurrentScreen geom.Point

	// StartTime is when the gesture began.
	StartTime time.Time

	// Button is the pointer button that started the gesture.
	Button pointer.Button

	// Modifiers holds the modifier keys as of the latest event.
	Modifiers key.Modifier

	// Data is an opaque per-gesture payload for the owning tool.
	Data any
}

// UpdateModifiers copies the modifier flags from an input event.
func (s *State) UpdateModifiers(mods key.Modifier) {
	s.Modifiers = mods
}

// Delta returns the total world-space displacement of the gesture.
func (s *State) Delta() geom.Point {
	return s.CurrentPoint.Sub(s.StartPoint)
}

// MoveDelta returns the world-space displacement since the previous event.
func (s *State) MoveDelta() geom.Point {
	return s.CurrentPoint.Sub(s.PreviousPoint)
}

// Distance returns the world-space Euclidean distance from the
// gesture's start to its current point.
func (s *State) Distance() float64 {
	return s.CurrentPoint.Distance(s.StartPoint)
}

// ScreenDistance returns the screen-space displacement from the
// gesture's start. Classification uses screen space so zoom level does
// not change what counts as a click or a drag.
func (s *State) ScreenDistance() float64 {
	return s.CurrentScreen.Distance(s.StartScreen)
}

// ElapsedTime returns how long the gesture has been running.
func (s *State) ElapsedTime() time.Duration {
	return time.Since(s.StartTime)
}

// IsClick reports whether the gesture qualifies as a click under the
// default thresholds: both the distance and time bounds must hold;
// exceeding either reclassifies the gesture as a drag.
func (s *State) IsClick() bool {
	return s.IsClickWithin(ClickDistanceThreshold, ClickTimeThreshold)
}

// IsClickWithin is IsClick with explicit thresholds.
func (s *State) IsClickWithin(maxDist float64, maxElapsed time.Duration) bool {
	return s.ScreenDistance() < maxDist && s.ElapsedTime() < maxElapsed
}

// Reset zeroes all fields.
func (s *State) Reset() {
	*s = State{}
}
