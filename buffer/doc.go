// Package buffer implements the piece-table document storage for mewtext.
//
// A Buffer stores text as an ordered list of pieces referencing two
// append-only backing slices (the original text and everything added
// since). Edits restructure the piece list in O(edit size) and never copy
// the whole document. Indexes are 0-based rune offsets.
//
// Every mutation increments Version by exactly one; Version is the only
// staleness signal the layout caches trust.
package buffer
