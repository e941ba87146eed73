package layout

import "sort"

// measureChunkSize is the fixed chunk granularity for per-line prefix
// widths. 64 keeps chunk re-measurement cheap while the prefix array stays
// tiny even on very long lines.
const measureChunkSize = 64

// LineMeasure is a chunked measurement of one line span.
//
// The line is split into fixed-size chunks; each chunk is measured once
// and a kerning adjustment is captured at every chunk boundary by
// comparing the measured boundary pair against the two characters measured
// alone. A prefix-sum array over chunk widths plus adjustments answers
// "width up to column k" by measuring only the partial remainder inside
// the containing chunk.
type LineMeasure struct {
	Version uint64
	Font    FontKey
	Start   int
	End     int
	Text    string

	runes      []rune
	prefix     []float64 // prefix[i] = width of complete chunks [0,i)
	kern       []float64 // boundary adjustment entering chunk i; kern[0] = 0
	TotalWidth float64
}

func (lm *LineMeasure) matches(version uint64, font FontKey, start, end int) bool {
	return lm.Version == version && lm.Font == font && lm.Start == start && lm.End == end
}

// buildLineMeasure measures text and returns the populated entry. Empty
// spans produce a single zero-width entry without invoking the measurer.
func buildLineMeasure(version uint64, font FontKey, start, end int, text string, m Measurer) *LineMeasure {
	lm := &LineMeasure{Version: version, Font: font, Start: start, End: end}
	if end <= start || text == "" {
		lm.prefix = []float64{0}
		lm.kern = []float64{0}
		return lm
	}

	lm.Text = text
	lm.runes = []rune(text)
	n := len(lm.runes)
	chunks := (n + measureChunkSize - 1) / measureChunkSize

	lm.prefix = make([]float64, chunks+1)
	lm.kern = make([]float64, chunks)
	for c := 0; c < chunks; c++ {
		from := c * measureChunkSize
		to := minInt(from+measureChunkSize, n)
		w, _ := m.MeasureText(string(lm.runes[from:to]), font)

		if c > 0 {
			lm.kern[c] = boundaryAdjustment(m, font, lm.runes[from-1], lm.runes[from])
		}
		lm.prefix[c+1] = lm.prefix[c] + lm.kern[c] + w
	}
	lm.TotalWidth = lm.prefix[chunks]
	return lm
}

// boundaryAdjustment captures cross-chunk kerning/ligature effects: the
// measured width of the boundary pair minus the two characters measured
// individually.
func boundaryAdjustment(m Measurer, font FontKey, prev, next rune) float64 {
	pair, _ := m.MeasureText(string([]rune{prev, next}), font)
	a, _ := m.MeasureText(string(prev), font)
	b, _ := m.MeasureText(string(next), font)
	return pair - (a + b)
}

// PrefixWidth returns the width of columns [0, col). Only the partial
// remainder inside the containing chunk is re-measured.
func (lm *LineMeasure) PrefixWidth(m Measurer, col int) float64 {
	col = clampInt(col, 0, len(lm.runes))
	if col == 0 {
		return 0
	}
	chunk := col / measureChunkSize
	rem := col % measureChunkSize
	if rem == 0 {
		return lm.prefix[chunk]
	}
	w, _ := m.MeasureText(string(lm.runes[chunk*measureChunkSize:col]), lm.Font)
	return lm.prefix[chunk] + lm.kern[chunk] + w
}

// SpanWidth returns the width of columns [startCol, endCol).
func (lm *LineMeasure) SpanWidth(m Measurer, startCol, endCol int) float64 {
	if endCol <= startCol {
		return 0
	}
	return lm.PrefixWidth(m, endCol) - lm.PrefixWidth(m, startCol)
}

// CharIndexFromX maps a horizontal offset to the nearest column: a binary
// search over the chunk prefix array locates the containing chunk, then a
// binary search over columns inside it. Offsets past the line end clamp to
// the final column.
func (lm *LineMeasure) CharIndexFromX(m Measurer, x float64) int {
	n := len(lm.runes)
	if n == 0 || x <= 0 {
		return 0
	}
	if x >= lm.TotalWidth {
		return n
	}

	// Last chunk whose prefix is <= x.
	chunk := sort.Search(len(lm.prefix), func(i int) bool {
		return lm.prefix[i] > x
	}) - 1
	chunk = clampInt(chunk, 0, len(lm.kern)-1)

	lo := chunk * measureChunkSize
	hi := minInt(lo+measureChunkSize, n)

	// Last column in the chunk whose prefix width is <= x.
	col := lo + sort.Search(hi-lo, func(i int) bool {
		return lm.PrefixWidth(m, lo+i+1) > x
	})

	if col < n {
		before := lm.PrefixWidth(m, col)
		after := lm.PrefixWidth(m, col+1)
		if x > (before+after)/2 {
			col++
		}
	}
	return clampInt(col, 0, n)
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
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
