package geom

import (
	"math"
	"testing"
)

func TestPointAddSub(t *testing.T) {
	p := Pt(3, 4)
	q := Pt(1, -2)

	sum := p.Add(q)
	if sum != Pt(4, 2) {
		t.Errorf("Add = %v, want {4 2}", sum)
	}

	diff := p.Sub(q)
	if diff != Pt(2, 6) {
		t.Errorf("Sub = %v, want {2 6}", diff)
	}
}

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p, q     Point
		expected float64
	}{
		{"same point", Pt(5, 5), Pt(5, 5), 0},
		{"pythagorean", Pt(0, 0), Pt(3, 4), 5},
		{"negative coords", Pt(-1, -1), Pt(2, 3), 5},
		{"horizontal", Pt(10, 0), Pt(3, 0), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Distance(tt.q); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Distance(%v, %v) = %v, want %v", tt.p, tt.q, got, tt.expected)
			}
		})
	}
}

func TestPointNormalize(t *testing.T) {
	n := Pt(3, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("Normalize length = %v, want 1", n.Length())
	}

	// Zero vector normalizes to itself rather than NaN.
	z := Pt(0, 0).Normalize()
	if z != (Point{}) {
		t.Errorf("Normalize(zero) = %v, want zero", z)
	}
}

func TestPointRotate(t *testing.T) {
	p := Pt(1, 0).Rotate(math.Pi / 2)
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y-1) > 1e-9 {
		t.Errorf("Rotate(90deg) = %v, want {0 1}", p)
	}
}

func TestPointLerp(t *testing.T) {
	p := Pt(0, 0)
	q := Pt(10, 20)

	if mid := p.Lerp(q, 0.5); mid != Pt(5, 10) {
		t.Errorf("Lerp(0.5) = %v, want {5 10}", mid)
	}
	if start := p.Lerp(q, 0); start != p {
		t.Errorf("Lerp(0) = %v, want %v", start, p)
	}
	if end := p.Lerp(q, 1); end != q {
		t.Errorf("Lerp(1) = %v, want %v", end, q)
	}
}

func TestPointAngle(t *testing.T) {
	if a := Pt(0, 1).Angle(); math.Abs(a-math.Pi/2) > 1e-9 {
		t.Errorf("Angle = %v, want pi/2", a)
	}
}
