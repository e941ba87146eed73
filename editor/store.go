package editor

// TextStore is the storage capability the Controller edits through.
// *buffer.Buffer satisfies it; tests use an in-memory string store.
//
// Indexes are 0-based rune offsets. Implementations are expected to fail
// fast on out-of-range arguments; the Controller only issues in-range
// calls.
type TextStore interface {
	Len() int
	CharAt(i int) rune
	TextRange(start, end int) string
	Insert(i int, text string)
	Remove(i, n int)
}
