package tool

import (
	"math"

	"github.com/easelkit/easel/internal/geom"
)

// Constraint helpers. These are pure and state-free so shape and
// selection tools can share them.

// ConstrainAspectRatio adjusts end so that the delta from start keeps
// the given width:height ratio. Whichever axis dominates after
// normalizing by the ratio is kept and the other recomputed, so the
// result follows the pointer's stronger direction. A non-positive
// ratio is treated as 1.
func ConstrainAspectRatio(start, end geom.Point, ratio float64) geom.Point {
	if ratio <= 0 {
		ratio = 1
	}

	dx := end.X - start.X
	dy := end.Y - start.Y

	if math.Abs(dx)/ratio > math.Abs(dy) {
		return geom.Pt(end.X, start.Y+sign(dy)*math.Abs(dx)/ratio)
	}
	return geom.Pt(start.X+sign(dx)*math.Abs(dy)*ratio, end.Y)
}

// ConstrainAngle snaps the direction start->end to the nearest 45
// degree increment, preserving the distance.
func ConstrainAngle(start, end geom.Point) geom.Point {
	dist := start.Distance(end)
	if dist == 0 {
		return end
	}

	const step = math.Pi / 4
	angle := math.Atan2(end.Y-start.Y, end.X-start.X)
	snapped := math.Round(angle/step) * step

	return geom.Pt(
		start.X+dist*math.Cos(snapped),
		start.Y+dist*math.Sin(snapped),
	)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
