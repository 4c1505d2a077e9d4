// Package tool is the interactive input controller: it turns raw
// pointer and keyboard events into semantic editing actions against a
// layered object tree.
//
// A Tool is one pluggable editing behavior. The Base type implements
// the shared gesture state machine (Idle -> Down -> Click or Dragging
// -> Idle) once; concrete tools embed it and supply Hooks for the
// gesture callbacks they care about. The Manager owns the tool
// registry, routes host input to the active tool, dispatches keyboard
// shortcuts, answers hit-test and spatial queries, and brokers undo
// actions to an externally-owned history.
//
// Everything here is single-threaded and event-driven: each handler
// runs to completion before the next event is processed, so no locking
// is required. Hosts must not re-enter the Manager from inside a
// handler call.
package tool
