package editor

import "unicode"

// Word boundaries use whitespace heuristics only, mirroring conventional
// word-navigation UX. The backward and forward walks are deliberately
// asymmetric: backward stops at the start of a word, forward stops after
// the whitespace that follows one.

// prevWordBoundary walks backward from pos past trailing whitespace, then
// past the word itself, stopping at the word start.
func prevWordBoundary(store TextStore, pos int) int {
	i := clampInt(pos, 0, store.Len())
	for i > 0 && unicode.IsSpace(store.CharAt(i-1)) {
		i--
	}
	for i > 0 && !unicode.IsSpace(store.CharAt(i-1)) {
		i--
	}
	return i
}

// nextWordBoundary walks forward from pos past the current word, then past
// the whitespace that follows it.
func nextWordBoundary(store TextStore, pos int) int {
	n := store.Len()
	i := clampInt(pos, 0, n)
	for i < n && !unicode.IsSpace(store.CharAt(i)) {
		i++
	}
	for i < n && unicode.IsSpace(store.CharAt(i)) {
		i++
	}
	return i
}
