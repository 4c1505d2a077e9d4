package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty shortcut specification")
	ErrInvalidSpec = errors.New("invalid shortcut specification")
)

// Shortcut is a parsed key binding: one key plus an exact modifier set.
type Shortcut struct {
	// Key is the normalized key name ("v", "enter", "f2").
	Key string

	// Modifiers is the exact set of modifiers the binding requires.
	Modifiers Modifier
}

// ParseShortcut parses a shortcut specification string.
//
// The spec is split on "+"; the last token is the key (case-insensitive)
// and every earlier token names a required modifier: "ctrl", "shift",
// "alt", "meta" (also "cmd"/"super"). Examples: "v", "ctrl+k",
// "ctrl+shift+z".
func ParseShortcut(spec string) (Shortcut, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Shortcut{}, ErrEmptySpec
	}

	parts := strings.Split(spec, "+")

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Shortcut{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(strings.TrimSpace(p))
		if mod == ModNone {
			return Shortcut{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return Shortcut{Key: Normalize(keyPart), Modifiers: mods}, nil
}

// MustParseShortcut parses a shortcut specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseShortcut(spec string) Shortcut {
	s, err := ParseShortcut(spec)
	if err != nil {
		panic("invalid shortcut specification: " + spec + ": " + err.Error())
	}
	return s
}

// Matches reports whether the event satisfies this shortcut.
// The key must be equal and the modifier set must match exactly:
// both missing and extra modifiers reject the match.
func (s Shortcut) Matches(e Event) bool {
	return s.Key == e.Key && s.Modifiers == e.Modifiers
}

// String returns the canonical spec form, parseable by ParseShortcut.
func (s Shortcut) String() string {
	var parts []string
	if s.Modifiers.HasCtrl() {
		parts = append(parts, "ctrl")
	}
	if s.Modifiers.HasAlt() {
		parts = append(parts, "alt")
	}
	if s.Modifiers.HasShift() {
		parts = append(parts, "shift")
	}
	if s.Modifiers.HasMeta() {
		parts = append(parts, "meta")
	}
	parts = append(parts, s.Key)
	return strings.Join(parts, "+")
}
