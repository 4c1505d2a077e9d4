package key

import (
	"strings"
	"time"
)

// Event represents a single key press or release.
// Key holds the normalized lowercase key name: "a", "7", "enter",
// "escape", "f1". Hosts normalize before dispatch; Normalize is
// provided for that purpose.
type Event struct {
	// Key is the normalized key name.
	Key string

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(key string, mods Modifier) Event {
	return Event{
		Key:       Normalize(key),
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// Normalize lowercases and trims a key name so lookups are case-insensitive.
func Normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Equals returns true if two events represent the same key press.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key && e.Modifiers == other.Modifiers
}

// String returns a canonical representation like "ctrl+shift+k".
func (e Event) String() string {
	return Shortcut{Key: e.Key, Modifiers: e.Modifiers}.String()
}
