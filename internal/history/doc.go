// Package history provides undo/redo for document edits.
//
// Edits are expressed as Commands that know how to apply and revert
// themselves. The History type keeps undo and redo stacks and supports
// grouping several commands into a single undo unit, which is how
// multi-step gestures (a drag that moves several objects, for example)
// undo atomically.
package history
