// Package key models the keyboard side of the input pipeline: modifier
// bitmasks, normalized key events, and shortcut specifications.
//
// Shortcuts are user-configurable strings like "v" or "ctrl+shift+z".
// Matching is exact: a binding's modifier set must equal the event's
// modifier set, so "ctrl+k" activates neither on "k" nor on
// "ctrl+shift+k".
package key
