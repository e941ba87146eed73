package layout

import "sync"

// inlineLineRunes is the scratch size measured on the stack; longer lines
// borrow a pooled slice instead of allocating per line.
const inlineLineRunes = 128

var lineScratchPool = sync.Pool{
	New: func() any {
		s := make([]rune, 0, 1024)
		return &s
	},
}

// LineSource is the document capability the WidthEstimator scans.
// *buffer.Buffer satisfies it.
type LineSource interface {
	Version() uint64
	LineCount() int
	LineLength(line int) int
	AppendLine(dst []rune, line int) []rune
}

// WidthEstimator caches the maximum measured line width of a document for
// horizontal-extent computation, supporting incremental re-scan of edited
// sub-ranges seeded from the prior cached maximum.
type WidthEstimator struct {
	valid   bool
	version uint64
	font    FontKey

	maxWidth float64
	maxLine  int
}

// MaxLineWidth returns the widest line's measured width, rescanning the
// whole document only when the cached result's version or font is stale.
func (e *WidthEstimator) MaxLineWidth(src LineSource, m Measurer, font FontKey) float64 {
	if e.valid && e.version == src.Version() && e.font == font {
		return e.maxWidth
	}
	e.scan(src, m, font, 0, src.LineCount()-1, 0, 0)
	return e.maxWidth
}

// RescanRange recomputes the maximum after an edit confined to lines
// [fromLine, toLine]. When the previous maximum lies outside the edited
// range it seeds the scan, so only the edited lines are re-measured; when
// it lies inside, the whole document is rescanned.
func (e *WidthEstimator) RescanRange(src LineSource, m Measurer, font FontKey, fromLine, toLine int) float64 {
	if !e.valid || e.font != font {
		return e.MaxLineWidth(src, m, font)
	}
	fromLine = clampInt(fromLine, 0, src.LineCount()-1)
	toLine = clampInt(toLine, fromLine, src.LineCount()-1)

	if e.maxLine >= fromLine && e.maxLine <= toLine {
		e.scan(src, m, font, 0, src.LineCount()-1, 0, 0)
		return e.maxWidth
	}
	e.scan(src, m, font, fromLine, toLine, e.maxWidth, e.maxLine)
	return e.maxWidth
}

// Invalidate drops the cached maximum entirely.
func (e *WidthEstimator) Invalidate() {
	e.valid = false
}

func (e *WidthEstimator) scan(src LineSource, m Measurer, font FontKey, fromLine, toLine int, seedWidth float64, seedLine int) {
	var inline [inlineLineRunes]rune

	maxWidth, maxLine := seedWidth, seedLine
	for line := fromLine; line <= toLine; line++ {
		var scratch []rune
		var pooled *[]rune
		if src.LineLength(line) <= inlineLineRunes {
			scratch = inline[:0]
		} else {
			pooled = lineScratchPool.Get().(*[]rune)
			scratch = (*pooled)[:0]
		}

		scratch = src.AppendLine(scratch, line)
		w, _ := m.MeasureText(string(scratch), font)

		if pooled != nil {
			*pooled = scratch[:0]
			lineScratchPool.Put(pooled)
		}

		if w > maxWidth {
			maxWidth, maxLine = w, line
		}
	}

	e.valid = true
	e.version = src.Version()
	e.font = font
	e.maxWidth = maxWidth
	e.maxLine = maxLine
}
