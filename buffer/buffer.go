package buffer

import "strings"

// Buffer is a piece-table text document.
//
// Buffer is not safe for concurrent use; the owning view must serialize
// access.
type Buffer struct {
	original []rune
	added    []rune
	pieces   []piece
	length   int
	version  uint64

	lineStarts  []int
	lineVersion uint64
	lineValid   bool
}

// New returns a Buffer holding text.
func New(text string) *Buffer {
	b := &Buffer{}
	b.reset(text)
	return b
}

func (b *Buffer) reset(text string) {
	b.original = []rune(text)
	b.added = nil
	b.pieces = b.pieces[:0]
	if len(b.original) > 0 {
		b.pieces = append(b.pieces, piece{src: sourceOriginal, off: 0, n: len(b.original)})
	}
	b.length = len(b.original)
	b.lineValid = false
}

// SetText replaces the whole document. Both backing slices restart empty;
// undo state held by higher layers must be cleared by the caller.
func (b *Buffer) SetText(text string) {
	b.reset(text)
	b.version++
}

// Clear empties the document.
func (b *Buffer) Clear() {
	b.reset("")
	b.version++
}

// Len returns the document length in runes.
func (b *Buffer) Len() int { return b.length }

// Version returns the mutation counter. It increases by exactly one per
// mutating call and never on reads.
func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) backing(src pieceSource) []rune {
	if src == sourceOriginal {
		return b.original
	}
	return b.added
}

// CharAt returns the rune at index i.
func (b *Buffer) CharAt(i int) rune {
	if i < 0 || i >= b.length {
		panic(&RangeError{Op: "CharAt", Index: i, Len: b.length})
	}
	pos := 0
	for _, p := range b.pieces {
		if i < pos+p.n {
			return b.backing(p.src)[p.off+(i-pos)]
		}
		pos += p.n
	}
	// Unreachable while pieces partition [0, length).
	panic(&RangeError{Op: "CharAt", Index: i, Len: b.length})
}

// Text returns the whole document as a string.
func (b *Buffer) Text() string {
	var sb strings.Builder
	sb.Grow(b.length)
	for _, p := range b.pieces {
		sb.WriteString(string(b.backing(p.src)[p.off : p.off+p.n]))
	}
	return sb.String()
}

// TextRange returns the text in [start, end).
func (b *Buffer) TextRange(start, end int) string {
	if start < 0 || end < start || end > b.length {
		panic(&RangeError{Op: "TextRange", Index: start, N: end - start, Len: b.length})
	}
	if start == end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	pos := 0
	for _, p := range b.pieces {
		pStart, pEnd := pos, pos+p.n
		pos = pEnd
		if pEnd <= start {
			continue
		}
		if pStart >= end {
			break
		}
		from := p.off + maxInt(start-pStart, 0)
		to := p.off + p.n - maxInt(pEnd-end, 0)
		sb.WriteString(string(b.backing(p.src)[from:to]))
	}
	return sb.String()
}

// CopyTo copies runes starting at start into dst and returns the number
// copied: min(len(dst), Len()-start).
func (b *Buffer) CopyTo(dst []rune, start int) int {
	if start < 0 || start > b.length {
		panic(&RangeError{Op: "CopyTo", Index: start, Len: b.length})
	}
	want := minInt(len(dst), b.length-start)
	if want == 0 {
		return 0
	}
	end := start + want
	written := 0
	pos := 0
	for _, p := range b.pieces {
		pStart, pEnd := pos, pos+p.n
		pos = pEnd
		if pEnd <= start {
			continue
		}
		if pStart >= end {
			break
		}
		from := p.off + maxInt(start-pStart, 0)
		to := p.off + p.n - maxInt(pEnd-end, 0)
		written += copy(dst[written:], b.backing(p.src)[from:to])
	}
	return written
}

// Insert inserts text at index i. Inserting the empty string is a no-op
// and does not bump Version.
func (b *Buffer) Insert(i int, text string) {
	if i < 0 || i > b.length {
		panic(&RangeError{Op: "Insert", Index: i, Len: b.length})
	}
	if text == "" {
		return
	}

	runes := []rune(text)
	next := piece{src: sourceAdded, off: len(b.added), n: len(runes)}
	b.added = append(b.added, runes...)

	switch {
	case len(b.pieces) == 0:
		b.pieces = append(b.pieces, next)
	case i == b.length:
		b.pieces = append(b.pieces, next)
	default:
		idx, pStart := b.pieceContaining(i)
		p := b.pieces[idx]
		if i == pStart {
			// Piece boundary: slide the tail and drop the new piece in.
			b.pieces = append(b.pieces, piece{})
			copy(b.pieces[idx+1:], b.pieces[idx:])
			b.pieces[idx] = next
		} else {
			// Split p into left/new/right.
			left := piece{src: p.src, off: p.off, n: i - pStart}
			right := piece{src: p.src, off: p.off + left.n, n: p.n - left.n}
			b.pieces = append(b.pieces, piece{}, piece{})
			copy(b.pieces[idx+3:], b.pieces[idx+1:])
			b.pieces[idx] = left
			b.pieces[idx+1] = next
			b.pieces[idx+2] = right
		}
	}

	b.length += len(runes)
	b.version++
}

// Remove deletes n runes starting at index i. Removing zero runes is a
// no-op and does not bump Version.
func (b *Buffer) Remove(i, n int) {
	if i < 0 || n < 0 || i+n > b.length {
		panic(&RangeError{Op: "Remove", Index: i, N: n, Len: b.length})
	}
	if n == 0 {
		return
	}

	end := i + n
	out := make([]piece, 0, len(b.pieces)+1)
	pos := 0
	for _, p := range b.pieces {
		pStart, pEnd := pos, pos+p.n
		pos = pEnd
		if pEnd <= i || pStart >= end {
			out = append(out, p)
			continue
		}
		if pStart < i {
			out = append(out, piece{src: p.src, off: p.off, n: i - pStart})
		}
		if pEnd > end {
			keep := pEnd - end
			out = append(out, piece{src: p.src, off: p.off + p.n - keep, n: keep})
		}
	}
	b.pieces = out
	b.length -= n
	b.version++
}

// pieceContaining returns the index of the piece holding document offset i
// and the document offset at which that piece starts. i must be < length.
func (b *Buffer) pieceContaining(i int) (idx, start int) {
	pos := 0
	for k, p := range b.pieces {
		if i < pos+p.n {
			return k, pos
		}
		pos += p.n
	}
	return len(b.pieces) - 1, pos - b.pieces[len(b.pieces)-1].n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
