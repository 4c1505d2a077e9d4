package key

import (
	"errors"
	"testing"
)

func TestParseShortcut(t *testing.T) {
	tests := []struct {
		spec string
		want Shortcut
	}{
		{"v", Shortcut{Key: "v"}},
		{"V", Shortcut{Key: "v"}},
		{"ctrl+k", Shortcut{Key: "k", Modifiers: ModCtrl}},
		{"Ctrl+Shift+Z", Shortcut{Key: "z", Modifiers: ModCtrl | ModShift}},
		{"cmd+s", Shortcut{Key: "s", Modifiers: ModMeta}},
		{"meta+alt+x", Shortcut{Key: "x", Modifiers: ModMeta | ModAlt}},
		{"enter", Shortcut{Key: "enter"}},
		{" shift + F2 ", Shortcut{Key: "f2", Modifiers: ModShift}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseShortcut(tt.spec)
			if err != nil {
				t.Fatalf("ParseShortcut(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseShortcut(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseShortcutErrors(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want error
	}{
		{"empty", "", ErrEmptySpec},
		{"whitespace", "   ", ErrEmptySpec},
		{"unknown modifier", "hyper+k", ErrInvalidSpec},
		{"missing key", "ctrl+", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseShortcut(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseShortcut(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestShortcutMatchesExactModifiers(t *testing.T) {
	s := MustParseShortcut("ctrl+k")

	tests := []struct {
		name string
		ev   Event
		want bool
	}{
		{"exact", Event{Key: "k", Modifiers: ModCtrl}, true},
		{"missing modifier", Event{Key: "k"}, false},
		{"extra modifier", Event{Key: "k", Modifiers: ModCtrl | ModShift}, false},
		{"wrong key", Event{Key: "j", Modifiers: ModCtrl}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Matches(tt.ev); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestShortcutMatchesBareKey(t *testing.T) {
	s := MustParseShortcut("v")

	if !s.Matches(Event{Key: "v"}) {
		t.Error("bare key should match unmodified event")
	}
	if s.Matches(Event{Key: "v", Modifiers: ModCtrl}) {
		t.Error("bare key must not match modified event")
	}
}

func TestShortcutStringRoundTrip(t *testing.T) {
	specs := []string{"v", "ctrl+k", "ctrl+shift+z", "meta+enter"}

	for _, spec := range specs {
		s := MustParseShortcut(spec)
		back, err := ParseShortcut(s.String())
		if err != nil {
			t.Fatalf("reparse %q: %v", s.String(), err)
		}
		if back != s {
			t.Errorf("round trip %q -> %q -> %+v", spec, s.String(), back)
		}
	}
}

func TestModifierOps(t *testing.T) {
	m := ModNone.With(ModCtrl).With(ModShift)

	if !m.HasCtrl() || !m.HasShift() {
		t.Error("With should set modifiers")
	}
	if m.HasAlt() || m.HasMeta() {
		t.Error("unset modifiers should not be reported")
	}

	m = m.Without(ModShift)
	if m.HasShift() {
		t.Error("Without should clear the modifier")
	}
	if m.IsEmpty() {
		t.Error("Ctrl should remain set")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		m    Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModCtrl | ModShift, "Ctrl+Shift"},
		{ModCtrl | ModAlt | ModShift | ModMeta, "Ctrl+Alt+Shift+Meta"},
	}

	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Modifier(%b).String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}
