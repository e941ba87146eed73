package buffer

import "sort"

// ensureLineIndex rebuilds the line-start index when the stamped version no
// longer matches the document. One linear scan across all pieces counting
// '\n'; nothing is rebuilt on reads that follow without an intervening edit.
func (b *Buffer) ensureLineIndex() {
	if b.lineValid && b.lineVersion == b.version {
		return
	}
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	pos := 0
	for _, p := range b.pieces {
		src := b.backing(p.src)
		for k, r := range src[p.off : p.off+p.n] {
			if r == '\n' {
				b.lineStarts = append(b.lineStarts, pos+k+1)
			}
		}
		pos += p.n
	}
	b.lineVersion = b.version
	b.lineValid = true
}

// LineCount returns the number of logical lines. An empty document has one
// line.
func (b *Buffer) LineCount() int {
	b.ensureLineIndex()
	return len(b.lineStarts)
}

// LineFromIndex returns the logical line containing rune index i. i may
// equal Len(), mapping to the last line.
func (b *Buffer) LineFromIndex(i int) int {
	if i < 0 || i > b.length {
		panic(&RangeError{Op: "LineFromIndex", Index: i, Len: b.length})
	}
	b.ensureLineIndex()
	// First line whose start is beyond i, minus one.
	return sort.Search(len(b.lineStarts), func(k int) bool {
		return b.lineStarts[k] > i
	}) - 1
}

// LineStartIndex returns the rune index at which line starts.
func (b *Buffer) LineStartIndex(line int) int {
	b.ensureLineIndex()
	if line < 0 || line >= len(b.lineStarts) {
		panic(&RangeError{Op: "LineStartIndex", Index: line, Len: len(b.lineStarts)})
	}
	return b.lineStarts[line]
}

// LineLength returns the rune length of line, excluding its trailing '\n'
// if present.
func (b *Buffer) LineLength(line int) int {
	start, end := b.LineSpan(line)
	return end - start
}

// LineSpan returns the [start, end) rune range of line's content. The
// trailing '\n' separating it from the next line is not included.
func (b *Buffer) LineSpan(line int) (start, end int) {
	b.ensureLineIndex()
	if line < 0 || line >= len(b.lineStarts) {
		panic(&RangeError{Op: "LineSpan", Index: line, Len: len(b.lineStarts)})
	}
	start = b.lineStarts[line]
	if line+1 < len(b.lineStarts) {
		end = b.lineStarts[line+1] - 1
	} else {
		end = b.length
	}
	return start, end
}

// LineText returns line's content without its trailing '\n'.
func (b *Buffer) LineText(line int) string {
	start, end := b.LineSpan(line)
	return b.TextRange(start, end)
}

// AppendLine appends line's content (without trailing '\n') to dst and
// returns the extended slice. Callers reuse dst to avoid per-line
// allocation.
func (b *Buffer) AppendLine(dst []rune, line int) []rune {
	start, end := b.LineSpan(line)
	need := end - start
	if need == 0 {
		return dst
	}
	base := len(dst)
	if cap(dst)-base < need {
		grown := make([]rune, base, base+need)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:base+need]
	b.CopyTo(dst[base:], start)
	return dst
}
