package history

import (
	"fmt"

	"github.com/easelkit/easel/internal/geom"
	"github.com/easelkit/easel/internal/scene"
)

// Command represents a composable document edit that can be applied
// and reverted.
type Command interface {
	// Apply performs the edit and returns an error if it fails.
	Apply() error

	// Revert reverses the edit and returns an error if it fails.
	Revert() error

	// Description returns a human-readable description of the edit.
	Description() string
}

// MoveCommand translates objects by a delta.
type MoveCommand struct {
	Objects []scene.Object
	Delta   geom.Point
}

// NewMoveCommand creates a move command for the given objects.
func NewMoveCommand(delta geom.Point, objects ...scene.Object) *MoveCommand {
	return &MoveCommand{Objects: objects, Delta: delta}
}

type mover interface {
	MoveBy(geom.Point)
}

// Apply moves every movable object by the delta.
func (c *MoveCommand) Apply() error {
	for _, o := range c.Objects {
		if m, ok := o.(mover); ok {
			m.MoveBy(c.Delta)
		}
	}
	return nil
}

// Revert moves the objects back.
func (c *MoveCommand) Revert() error {
	back := c.Delta.Mul(-1)
	for _, o := range c.Objects {
		if m, ok := o.(mover); ok {
			m.MoveBy(back)
		}
	}
	return nil
}

// Description returns a human-readable description.
func (c *MoveCommand) Description() string {
	if len(c.Objects) == 1 {
		return "Move object"
	}
	return fmt.Sprintf("Move %d objects", len(c.Objects))
}

type boundsSetter interface {
	Bounds() geom.Rect
	SetBounds(geom.Rect)
}

// SetBoundsCommand resizes an object by replacing its bounds.
type SetBoundsCommand struct {
	Target scene.Object
	Before geom.Rect
	After  geom.Rect
}

// NewSetBoundsCommand creates a resize command. Before is captured from
// the object's current bounds when it supports them.
func NewSetBoundsCommand(target scene.Object, after geom.Rect) *SetBoundsCommand {
	cmd := &SetBoundsCommand{Target: target, After: after.Canon()}
	if b, ok := target.(boundsSetter); ok {
		cmd.Before = b.Bounds()
	}
	return cmd
}

// Apply sets the new bounds.
func (c *SetBoundsCommand) Apply() error {
	b, ok := c.Target.(boundsSetter)
	if !ok {
		return fmt.Errorf("object %T does not support resizing", c.Target)
	}
	b.SetBounds(c.After)
	return nil
}

// Revert restores the previous bounds.
func (c *SetBoundsCommand) Revert() error {
	b, ok := c.Target.(boundsSetter)
	if !ok {
		return fmt.Errorf("object %T does not support resizing", c.Target)
	}
	b.SetBounds(c.Before)
	return nil
}

// Description returns a human-readable description.
func (c *SetBoundsCommand) Description() string { return "Resize object" }

// AddObjectCommand inserts an object into a container.
type AddObjectCommand struct {
	Parent scene.Container
	Object scene.Object
}

// NewAddObjectCommand creates an insertion command.
func NewAddObjectCommand(parent scene.Container, obj scene.Object) *AddObjectCommand {
	return &AddObjectCommand{Parent: parent, Object: obj}
}

// Apply adds the object to the container.
func (c *AddObjectCommand) Apply() error {
	if c.Parent == nil {
		return fmt.Errorf("add object: nil parent")
	}
	c.Parent.AddChild(c.Object)
	return nil
}

// Revert removes the object from the container.
func (c *AddObjectCommand) Revert() error {
	if c.Parent == nil {
		return fmt.Errorf("add object: nil parent")
	}
	c.Parent.RemoveChild(c.Object)
	return nil
}

// Description returns a human-readable description.
func (c *AddObjectCommand) Description() string { return "Add object" }

// RemoveObjectCommand removes an object from a container.
type RemoveObjectCommand struct {
	Parent scene.Container
	Object scene.Object
}

// NewRemoveObjectCommand creates a removal command.
func NewRemoveObjectCommand(parent scene.Container, obj scene.Object) *RemoveObjectCommand {
	return &RemoveObjectCommand{Parent: parent, Object: obj}
}

// Apply removes the object.
func (c *RemoveObjectCommand) Apply() error {
	if c.Parent == nil {
		return fmt.Errorf("remove object: nil parent")
	}
	if !c.Parent.RemoveChild(c.Object) {
		return fmt.Errorf("remove object: not found in parent")
	}
	return nil
}

// Revert re-adds the object. It is appended rather than restored to
// its original stacking position.
func (c *RemoveObjectCommand) Revert() error {
	if c.Parent == nil {
		return fmt.Errorf("remove object: nil parent")
	}
	c.Parent.AddChild(c.Object)
	return nil
}

// Description returns a human-readable description.
func (c *RemoveObjectCommand) Description() string { return "Remove object" }

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{Name: name, Commands: commands}
}

// Apply runs all commands in order. On failure it reverts the commands
// that already applied.
func (c *CompoundCommand) Apply() error {
	for i, cmd := range c.Commands {
		if err := cmd.Apply(); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Revert()
			}
			return fmt.Errorf("compound command %q step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Revert reverses all commands in reverse order.
func (c *CompoundCommand) Revert() error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Revert(); err != nil {
			return fmt.Errorf("revert compound command %q step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add appends a command to the compound command.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty returns true if the compound command has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}
