package buffer

import "fmt"

type pieceSource uint8

const (
	sourceOriginal pieceSource = iota
	sourceAdded
)

// piece references a run of text inside one of the backing slices.
// Pieces partition [0, Len()) with no gaps or overlaps.
type piece struct {
	src pieceSource
	off int
	n   int
}

// RangeError reports an out-of-range index or length passed to a Buffer
// operation. Buffer methods panic with *RangeError on misuse instead of
// clamping: a bad document index is a caller bug, not an interactive edge
// case.
type RangeError struct {
	Op    string
	Index int
	N     int
	Len   int
}

func (e *RangeError) Error() string {
	if e.N != 0 {
		return fmt.Sprintf("buffer: %s: range [%d,%d) out of bounds for length %d", e.Op, e.Index, e.Index+e.N, e.Len)
	}
	return fmt.Sprintf("buffer: %s: index %d out of bounds for length %d", e.Op, e.Index, e.Len)
}
