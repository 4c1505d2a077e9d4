package scene

import "github.com/easelkit/easel/internal/geom"

// Viewport maps between screen space (host pixels) and world space
// (document coordinates) through a pan offset and a zoom factor.
type Viewport struct {
	// Pan is the world coordinate shown at the screen origin.
	Pan geom.Point

	// Zoom is the screen-pixels-per-world-unit scale. Zero or negative
	// zoom is treated as 1.
	Zoom float64
}

// NewViewport creates an identity viewport (no pan, zoom 1).
func NewViewport() *Viewport {
	return &Viewport{Zoom: 1}
}

func (v *Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// ScreenToWorld converts a screen point to world coordinates.
func (v *Viewport) ScreenToWorld(p geom.Point) geom.Point {
	return p.Div(v.zoom()).Add(v.Pan)
}

// WorldToScreen converts a world point to screen coordinates.
func (v *Viewport) WorldToScreen(p geom.Point) geom.Point {
	return p.Sub(v.Pan).Mul(v.zoom())
}

// PanBy shifts the viewport by a screen-space delta.
func (v *Viewport) PanBy(screenDelta geom.Point) {
	v.Pan = v.Pan.Sub(screenDelta.Div(v.zoom()))
}

// ZoomAt scales the zoom by factor, keeping the world point under the
// given screen position fixed.
func (v *Viewport) ZoomAt(screen geom.Point, factor float64) {
	if factor <= 0 {
		return
	}
	anchor := v.ScreenToWorld(screen)
	v.Zoom = v.zoom() * factor
	// Re-pan so the anchor maps back to the same screen position.
	v.Pan = anchor.Sub(screen.Div(v.zoom()))
}
