// Package editor implements caret, selection, and undo/redo orchestration
// over an abstract text-storage capability.
//
// The Controller never touches a concrete buffer type: it edits through the
// narrow TextStore interface, so it is testable against a plain string
// store and production code can wire it to the piece table identically.
// Interactive operations clamp out-of-range requests and treat
// nothing-to-do cases as silent no-ops; only the storage layer fails loudly.
package editor
