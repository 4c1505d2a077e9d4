// Package style defines the editor's interaction colors: selection
// outlines, handle grips, and marquee fills. Colors are parsed and
// blended with go-colorful so hover and disabled variants stay
// perceptually even.
package style

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme holds the interaction colors for one editor session.
type Theme struct {
	// SelectionStroke outlines selected objects and the marquee.
	SelectionStroke colorful.Color

	// HandleFill fills selection handle grips.
	HandleFill colorful.Color

	// MarqueeFill tints the in-progress marquee rectangle.
	MarqueeFill colorful.Color

	// PreviewStroke outlines in-progress shape previews.
	PreviewStroke colorful.Color

	// Background is the canvas clear color.
	Background colorful.Color
}

// DefaultTheme returns the stock light theme.
func DefaultTheme() Theme {
	return Theme{
		SelectionStroke: mustHex("#1a73e8"),
		HandleFill:      mustHex("#ffffff"),
		MarqueeFill:     mustHex("#1a73e8"),
		PreviewStroke:   mustHex("#5f6368"),
		Background:      mustHex("#fafafa"),
	}
}

// ParseTheme builds a theme from hex color strings, falling back to
// the default for empty fields.
func ParseTheme(selection, handle, marquee, preview, background string) (Theme, error) {
	th := DefaultTheme()

	assign := func(dst *colorful.Color, hex string) error {
		if hex == "" {
			return nil
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return fmt.Errorf("parse theme color %q: %w", hex, err)
		}
		*dst = c
		return nil
	}

	for _, pair := range []struct {
		dst *colorful.Color
		hex string
	}{
		{&th.SelectionStroke, selection},
		{&th.HandleFill, handle},
		{&th.MarqueeFill, marquee},
		{&th.PreviewStroke, preview},
		{&th.Background, background},
	} {
		if err := assign(pair.dst, pair.hex); err != nil {
			return Theme{}, err
		}
	}
	return th, nil
}

// Hover returns c blended 25% toward white, for hovered handles.
func Hover(c colorful.Color) colorful.Color {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendLab(white, 0.25).Clamped()
}

// Dim returns c blended halfway toward the background, for locked or
// inactive chrome.
func Dim(c, background colorful.Color) colorful.Color {
	return c.BlendLab(background, 0.5).Clamped()
}

// RGBA converts a theme color for use with image/draw hosts.
func RGBA(c colorful.Color, alpha uint8) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("bad builtin theme color: " + s)
	}
	return c
}
