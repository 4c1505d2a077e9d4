package history

import (
	"errors"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// OperationInfo describes an entry on the undo or redo stack.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

// History manages undo/redo state for a document. It is used from the
// single-threaded event loop and is not safe for concurrent use.
type History struct {
	undoStack []*undoEntry
	redoStack []*undoEntry

	// Grouping state
	grouping  bool
	groupName string
	groupCmds []Command

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000 // Default
	}
	return &History{maxEntries: maxEntries}
}

// Execute runs a command and adds it to the undo stack.
func (h *History) Execute(cmd Command) error {
	if err := cmd.Apply(); err != nil {
		return err
	}
	h.Push(cmd)
	return nil
}

// Push adds an already-applied command to the undo stack.
// Clears the redo stack. While grouping, the command is collected into
// the pending group instead.
func (h *History) Push(cmd Command) {
	if h.grouping {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}
	h.push(cmd)
}

func (h *History) push(cmd Command) {
	h.undoStack = append(h.undoStack, &undoEntry{
		command:   cmd,
		timestamp: time.Now(),
	})

	// Clear redo stack
	h.redoStack = nil

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the last command.
func (h *History) Undo() error {
	if len(h.undoStack) == 0 {
		return ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	if err := entry.command.Revert(); err != nil {
		// Restore entry on failure
		h.undoStack = append(h.undoStack, entry)
		return err
	}

	h.redoStack = append(h.redoStack, entry)
	return nil
}

// Redo re-applies the last undone command.
func (h *History) Redo() error {
	if len(h.redoStack) == 0 {
		return ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	if err := entry.command.Apply(); err != nil {
		// Restore entry on failure
		h.redoStack = append(h.redoStack, entry)
		return err
	}

	h.undoStack = append(h.undoStack, entry)
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int { return len(h.undoStack) }

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int { return len(h.redoStack) }

// BeginGroup starts a command group.
// Commands pushed while grouping are combined into a single undo unit.
// Nested calls are ignored.
func (h *History) BeginGroup(name string) {
	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupCmds = nil
}

// EndGroup finishes a command group.
// All commands since BeginGroup are combined into a CompoundCommand.
// An empty group adds nothing to the stack.
func (h *History) EndGroup() {
	if !h.grouping {
		return
	}
	h.grouping = false

	if len(h.groupCmds) == 0 {
		h.groupCmds = nil
		return
	}

	compound := &CompoundCommand{
		Name:     h.groupName,
		Commands: h.groupCmds,
	}
	h.push(compound)
	h.groupCmds = nil
}

// CancelGroup reverts and discards the pending group. Collected
// commands are reverted in reverse order so the document returns to
// its pre-group state.
func (h *History) CancelGroup() {
	if !h.grouping {
		return
	}
	h.grouping = false

	for i := len(h.groupCmds) - 1; i >= 0; i-- {
		_ = h.groupCmds[i].Revert()
	}
	h.groupCmds = nil
}

// IsGrouping returns true if currently in a command group.
func (h *History) IsGrouping() bool { return h.grouping }

// BeginCompound starts a named undo group. It is the action-bracket
// form of BeginGroup used by the input layer.
func (h *History) BeginCompound(name string) { h.BeginGroup(name) }

// EndCompound closes the current undo group.
func (h *History) EndCompound() { h.EndGroup() }

// Commit names the edit produced by the current gesture. An open group
// is closed under the given name; otherwise the most recent entry is
// renamed. A commit with no recorded edits does nothing.
func (h *History) Commit(name string) {
	if h.grouping {
		h.groupName = name
		h.EndGroup()
		return
	}
	if n := len(h.undoStack); n > 0 {
		top := h.undoStack[n-1]
		top.command = &CompoundCommand{Name: name, Commands: []Command{top.command}}
	}
}

// Transaction executes a function within a grouped undo context.
// If the function returns an error, the group is cancelled and its
// commands reverted. Otherwise the group is ended normally.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)

	if err := fn(); err != nil {
		h.CancelGroup()
		return err
	}

	h.EndGroup()
	return nil
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupCmds = nil
}

// UndoInfo returns info about available undo operations, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	result := make([]OperationInfo, len(h.undoStack))
	for i, entry := range h.undoStack {
		result[i] = OperationInfo{
			Description: entry.command.Description(),
			Timestamp:   entry.timestamp,
		}
	}
	return result
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	entry := h.undoStack[len(h.undoStack)-1]
	return OperationInfo{
		Description: entry.command.Description(),
		Timestamp:   entry.timestamp,
	}, true
}

// PeekRedo returns info about the next redo operation without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	entry := h.redoStack[len(h.redoStack)-1]
	return OperationInfo{
		Description: entry.command.Description(),
		Timestamp:   entry.timestamp,
	}, true
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = 1000
	}
	h.maxEntries = max

	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int { return h.maxEntries }
