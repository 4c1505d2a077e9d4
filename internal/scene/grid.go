package scene

import (
	"math"

	"github.com/easelkit/easel/internal/geom"
)

// Grid snaps world points to a square grid.
type Grid struct {
	// Spacing is the grid cell size in world units.
	Spacing float64

	// Origin anchors the grid; points snap relative to it.
	Origin geom.Point
}

// NewGrid creates a grid with the given spacing.
func NewGrid(spacing float64) *Grid {
	return &Grid{Spacing: spacing}
}

// SnapPoint returns p snapped to the nearest grid intersection.
// A grid with non-positive spacing returns p unchanged.
func (g *Grid) SnapPoint(p geom.Point) geom.Point {
	if g.Spacing <= 0 {
		return p
	}
	return geom.Pt(
		g.Origin.X+math.Round((p.X-g.Origin.X)/g.Spacing)*g.Spacing,
		g.Origin.Y+math.Round((p.Y-g.Origin.Y)/g.Spacing)*g.Spacing,
	)
}
