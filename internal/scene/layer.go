package scene

import "github.com/easelkit/easel/internal/geom"

// Layer is a top-level drawing layer in a document.
// Children are ordered back to front: the last child draws on top.
type Layer struct {
	name     string
	visible  bool
	locked   bool
	children []Object
}

// NewLayer creates an empty visible, unlocked layer.
func NewLayer(name string) *Layer {
	return &Layer{name: name, visible: true}
}

// Name returns the layer's display name.
func (l *Layer) Name() string { return l.name }

// Visible reports whether the layer is visible.
func (l *Layer) Visible() bool { return l.visible }

// SetVisible toggles layer visibility.
func (l *Layer) SetVisible(v bool) { l.visible = v }

// Locked reports whether the layer is locked.
func (l *Layer) Locked() bool { return l.locked }

// SetLocked toggles the layer lock.
func (l *Layer) SetLocked(v bool) { l.locked = v }

// Children returns the layer's objects, ordered back to front.
func (l *Layer) Children() []Object { return l.children }

// AddChild appends an object on top of the layer.
func (l *Layer) AddChild(obj Object) {
	l.children = append(l.children, obj)
}

// RemoveChild removes the first matching object.
// Returns false if the object is not a direct child.
func (l *Layer) RemoveChild(obj Object) bool {
	for i, c := range l.children {
		if c == obj {
			l.children = append(l.children[:i], l.children[i+1:]...)
			return true
		}
	}
	return false
}

// Group is a nested collection of objects that moves as one unit.
// Groups are recursive: a group may contain other groups.
type Group struct {
	visible  bool
	locked   bool
	children []Object
}

// NewGroup creates an empty visible, unlocked group.
func NewGroup() *Group {
	return &Group{visible: true}
}

// Visible reports whether the group is visible.
func (g *Group) Visible() bool { return g.visible }

// SetVisible toggles group visibility.
func (g *Group) SetVisible(v bool) { g.visible = v }

// Locked reports whether the group is locked.
func (g *Group) Locked() bool { return g.locked }

// SetLocked toggles the group lock.
func (g *Group) SetLocked(v bool) { g.locked = v }

// Children returns the group's objects, ordered back to front.
func (g *Group) Children() []Object { return g.children }

// AddChild appends an object on top of the group.
func (g *Group) AddChild(obj Object) {
	g.children = append(g.children, obj)
}

// RemoveChild removes the first matching object.
func (g *Group) RemoveChild(obj Object) bool {
	for i, c := range g.children {
		if c == obj {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return true
		}
	}
	return false
}

// Bounds returns the union of the children's bounds.
// A group with no bounded children reports a zero rect.
func (g *Group) Bounds() geom.Rect {
	var out geom.Rect
	first := true
	for _, c := range g.children {
		b, ok := c.(Bounded)
		if !ok {
			continue
		}
		if first {
			out = b.Bounds()
			first = false
			continue
		}
		out = out.Union(b.Bounds())
	}
	return out
}
