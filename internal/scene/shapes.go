package scene

import (
	"math"

	"github.com/easelkit/easel/internal/geom"
)

// RectObject is a rectangular shape.
type RectObject struct {
	name    string
	rect    geom.Rect
	visible bool
	locked  bool
}

// NewRectObject creates a visible, unlocked rectangle.
func NewRectObject(name string, r geom.Rect) *RectObject {
	return &RectObject{name: name, rect: r.Canon(), visible: true}
}

// Name returns the object's display name.
func (o *RectObject) Name() string { return o.name }

// Visible reports whether the object is visible.
func (o *RectObject) Visible() bool { return o.visible }

// SetVisible toggles visibility.
func (o *RectObject) SetVisible(v bool) { o.visible = v }

// Locked reports whether the object is locked.
func (o *RectObject) Locked() bool { return o.locked }

// SetLocked toggles the lock.
func (o *RectObject) SetLocked(v bool) { o.locked = v }

// Bounds returns the rectangle in world space.
func (o *RectObject) Bounds() geom.Rect { return o.rect }

// SetBounds replaces the rectangle.
func (o *RectObject) SetBounds(r geom.Rect) { o.rect = r.Canon() }

// HitTest reports whether p falls inside the rectangle grown by tol.
func (o *RectObject) HitTest(p geom.Point, tol float64) bool {
	return o.rect.Inset(-tol).Contains(p)
}

// MoveBy translates the rectangle by the given delta.
func (o *RectObject) MoveBy(d geom.Point) {
	o.rect.Min = o.rect.Min.Add(d)
	o.rect.Max = o.rect.Max.Add(d)
}

// EllipseObject is an axis-aligned ellipse defined by its bounding box.
type EllipseObject struct {
	name    string
	rect    geom.Rect
	visible bool
	locked  bool
}

// NewEllipseObject creates a visible, unlocked ellipse.
func NewEllipseObject(name string, r geom.Rect) *EllipseObject {
	return &EllipseObject{name: name, rect: r.Canon(), visible: true}
}

// Name returns the object's display name.
func (o *EllipseObject) Name() string { return o.name }

// Visible reports whether the object is visible.
func (o *EllipseObject) Visible() bool { return o.visible }

// SetVisible toggles visibility.
func (o *EllipseObject) SetVisible(v bool) { o.visible = v }

// Locked reports whether the object is locked.
func (o *EllipseObject) Locked() bool { return o.locked }

// SetLocked toggles the lock.
func (o *EllipseObject) SetLocked(v bool) { o.locked = v }

// Bounds returns the ellipse's bounding box in world space.
func (o *EllipseObject) Bounds() geom.Rect { return o.rect }

// SetBounds replaces the bounding box.
func (o *EllipseObject) SetBounds(r geom.Rect) { o.rect = r.Canon() }

// HitTest reports whether p falls inside the ellipse grown by tol.
func (o *EllipseObject) HitTest(p geom.Point, tol float64) bool {
	rx := o.rect.Width()/2 + tol
	ry := o.rect.Height()/2 + tol
	if rx <= 0 || ry <= 0 {
		return false
	}
	c := o.rect.Center()
	dx := (p.X - c.X) / rx
	dy := (p.Y - c.Y) / ry
	return math.Sqrt(dx*dx+dy*dy) <= 1
}
