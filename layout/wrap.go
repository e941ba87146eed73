package layout

import (
	"math"
	"sort"
)

// Virtualizer tuning. The scan budget bounds worst-case CPU per query in
// the sparse-anchor regime; when it runs out the returned mapping is a
// bounded approximation, which is accepted behavior rather than grounds
// for an unbounded scan.
const (
	defaultLargeDocThreshold = 10000
	anchorInterval           = 64
	scanBudgetLines          = 512
	maxSegmentsPerLine       = 4096
	wrapCacheCapacity        = 1024

	// analyticCharWidthFactor relates font size to an estimated average
	// character width for extent estimation.
	analyticCharWidthFactor = 0.5

	// minExtentSamples is how many measured lines the empirical wrap
	// ratio needs before it is preferred over the analytic estimate.
	minExtentSamples = 10
)

// Source provides the document the Virtualizer maps. *buffer.Buffer
// satisfies it.
type Source interface {
	Version() uint64
	Len() int
	LineCount() int
	LineText(line int) string
}

// WrapLayout is the soft-wrap segmentation of one logical line at one
// width. SegmentStarts begins at 0, is strictly increasing, and the final
// segment implicitly ends at the line's full length. Each start is one
// visual row.
type WrapLayout struct {
	Version       uint64
	Width         float64
	SegmentStarts []int
}

// Rows returns the number of visual rows the line occupies.
func (wl WrapLayout) Rows() int { return len(wl.SegmentStarts) }

// Anchor is a sparse checkpoint for large-document row mapping: the
// cumulative visual row at which a line starts. Anchors are monotonic in
// both fields and are discarded wholesale when the wrap width changes.
type Anchor struct {
	Line     int
	StartRow int
}

// Virtualizer maps logical lines to soft-wrapped visual rows and back. It
// keeps an exact cumulative-row prefix for small and medium documents and
// switches to sparse anchors with a bounded forward scan once the document
// crosses the large-document threshold.
type Virtualizer struct {
	src Source

	layouts map[int]WrapLayout

	// Exact regime: rowPrefix[i] = visual rows before line i, extended
	// lazily and rebuilt wholesale on version or width change.
	rowPrefix        []int
	rowPrefixVersion uint64
	rowPrefixWidth   float64

	// Sparse regime.
	anchors        []Anchor
	anchorsVersion uint64
	anchorsWidth   float64

	// Empirical extent sampling, stamped with the version and width the
	// samples were taken under so mixed-width ratios never blend.
	sampleLines   int
	sampleRows    int
	sampleVersion uint64
	sampleWidth   float64

	// largeDocThreshold is variable for tests; defaultLargeDocThreshold
	// otherwise.
	largeDocThreshold int
}

// NewVirtualizer returns a Virtualizer over src.
func NewVirtualizer(src Source) *Virtualizer {
	return &Virtualizer{
		src:               src,
		layouts:           make(map[int]WrapLayout),
		largeDocThreshold: defaultLargeDocThreshold,
	}
}

// Reset discards all cached layouts, prefixes, anchors, and samples.
func (v *Virtualizer) Reset() {
	clear(v.layouts)
	v.rowPrefix = nil
	v.anchors = nil
	v.sampleLines = 0
	v.sampleRows = 0
}

func (v *Virtualizer) sparse() bool {
	return v.src.LineCount() >= v.largeDocThreshold
}

// GetWrapLayout returns the segmentation of line at width, reusing the
// cached entry when its Version and Width still match.
func (v *Virtualizer) GetWrapLayout(line int, width float64, m Measurer, font FontKey) WrapLayout {
	line = clampInt(line, 0, v.src.LineCount()-1)
	version := v.src.Version()
	if wl, ok := v.layouts[line]; ok && wl.Version == version && wl.Width == width {
		return wl
	}

	wl := WrapLayout{
		Version:       version,
		Width:         width,
		SegmentStarts: wrapSegments(v.src.LineText(line), width, m, font),
	}
	v.storeLayout(line, wl)

	v.ensureSamples(version, width)
	v.sampleLines++
	v.sampleRows += wl.Rows()
	return wl
}

// ensureSamples discards the empirical row samples when the version or
// width they were collected under is no longer current.
func (v *Virtualizer) ensureSamples(version uint64, width float64) {
	if v.sampleVersion != version || v.sampleWidth != width {
		v.sampleLines = 0
		v.sampleRows = 0
		v.sampleVersion = version
		v.sampleWidth = width
	}
}

// storeLayout inserts wl under a capacity bound, dropping stale entries
// first and clearing entirely only when everything is current.
func (v *Virtualizer) storeLayout(line int, wl WrapLayout) {
	if len(v.layouts) >= wrapCacheCapacity {
		for k, cached := range v.layouts {
			if cached.Version != wl.Version || cached.Width != wl.Width {
				delete(v.layouts, k)
			}
		}
		if len(v.layouts) >= wrapCacheCapacity {
			clear(v.layouts)
		}
	}
	v.layouts[line] = wl
}

// wrapSegments splits text into wrap segments within width. Break offsets
// come from a pure measured-width binary search; every segment advances at
// least one character even when a single glyph exceeds the budget, and a
// hard segment cap bounds pathological unbroken tokens.
func wrapSegments(text string, width float64, m Measurer, font FontKey) []int {
	starts := []int{0}
	if text == "" || width <= 0 {
		return starts
	}

	runes := []rune(text)
	pos := 0
	for pos < len(runes) {
		if len(starts) >= maxSegmentsPerLine {
			break
		}
		if w, _ := m.MeasureText(string(runes[pos:]), font); w <= width {
			break
		}

		// Largest count of runes from pos whose width stays within
		// budget: search the smallest overflowing prefix, then step
		// back one.
		n := len(runes) - pos
		fit := sort.Search(n, func(i int) bool {
			w, _ := m.MeasureText(string(runes[pos:pos+i+1]), font)
			return w > width
		})
		if fit < 1 {
			fit = 1
		}
		pos += fit
		if pos >= len(runes) {
			break
		}
		starts = append(starts, pos)
	}
	return starts
}

func (v *Virtualizer) lineRows(line int, width float64, m Measurer, font FontKey) int {
	return v.GetWrapLayout(line, width, m, font).Rows()
}

// ensureRowPrefix extends the exact cumulative-row prefix through line
// upto (exclusive upper line index bound), rebuilding from scratch when
// the version or width changed.
func (v *Virtualizer) ensureRowPrefix(upto int, width float64, m Measurer, font FontKey) {
	version := v.src.Version()
	if len(v.rowPrefix) == 0 || v.rowPrefixVersion != version || v.rowPrefixWidth != width {
		v.rowPrefix = v.rowPrefix[:0]
		v.rowPrefix = append(v.rowPrefix, 0)
		v.rowPrefixVersion = version
		v.rowPrefixWidth = width
	}
	upto = clampInt(upto, 0, v.src.LineCount())
	for len(v.rowPrefix)-1 < upto {
		line := len(v.rowPrefix) - 1
		v.rowPrefix = append(v.rowPrefix, v.rowPrefix[line]+v.lineRows(line, width, m, font))
	}
}

// MapVisualRowToLine maps a visual row to its logical line, the row within
// that line, and the line's first visual row. Out-of-range rows clamp;
// rows beyond the document resolve to the last line, row 0.
func (v *Virtualizer) MapVisualRowToLine(visualRow int, width float64, m Measurer, font FontKey) (line, rowInLine, lineStartRow int) {
	if visualRow < 0 {
		visualRow = 0
	}
	if v.sparse() {
		return v.mapRowSparse(visualRow, width, m, font)
	}
	return v.mapRowExact(visualRow, width, m, font)
}

func (v *Virtualizer) mapRowExact(visualRow int, width float64, m Measurer, font FontKey) (line, rowInLine, lineStartRow int) {
	lineCount := v.src.LineCount()

	// Extend the prefix until it covers the requested row or the
	// document ends.
	v.ensureRowPrefix(0, width, m, font)
	for len(v.rowPrefix)-1 < lineCount && v.rowPrefix[len(v.rowPrefix)-1] <= visualRow {
		v.ensureRowPrefix(len(v.rowPrefix), width, m, font)
	}

	total := v.rowPrefix[len(v.rowPrefix)-1]
	if len(v.rowPrefix)-1 == lineCount && visualRow >= total {
		return lineCount - 1, 0, v.rowPrefix[lineCount-1]
	}

	// Last line whose start row is <= visualRow.
	line = sort.Search(len(v.rowPrefix), func(i int) bool {
		return v.rowPrefix[i] > visualRow
	}) - 1
	line = clampInt(line, 0, lineCount-1)
	lineStartRow = v.rowPrefix[line]
	return line, visualRow - lineStartRow, lineStartRow
}

func (v *Virtualizer) mapRowSparse(visualRow int, width float64, m Measurer, font FontKey) (line, rowInLine, lineStartRow int) {
	v.ensureAnchors(width)
	lineCount := v.src.LineCount()

	// Nearest anchor at or below the target row.
	i := sort.Search(len(v.anchors), func(k int) bool {
		return v.anchors[k].StartRow > visualRow
	}) - 1
	cur, row := 0, 0
	if i >= 0 {
		cur, row = v.anchors[i].Line, v.anchors[i].StartRow
	}

	for scanned := 0; cur < lineCount; scanned++ {
		rows := v.lineRows(cur, width, m, font)
		v.maybeRecordAnchor(cur, row)
		if visualRow < row+rows {
			return cur, visualRow - row, row
		}
		if scanned >= scanBudgetLines {
			// Budget exhausted: report the furthest line reached. The
			// row-in-line is an approximation bounded by the scan cap.
			return cur, clampInt(visualRow-row, 0, rows-1), row
		}
		row += rows
		cur++
	}
	last := lineCount - 1
	return last, 0, maxInt(row-v.lineRows(last, width, m, font), 0)
}

// GetVisualRowStartForLine returns the visual row at which line starts.
func (v *Virtualizer) GetVisualRowStartForLine(line int, width float64, m Measurer, font FontKey) int {
	line = clampInt(line, 0, v.src.LineCount()-1)
	if !v.sparse() {
		v.ensureRowPrefix(line, width, m, font)
		return v.rowPrefix[line]
	}

	v.ensureAnchors(width)
	i := sort.Search(len(v.anchors), func(k int) bool {
		return v.anchors[k].Line > line
	}) - 1
	cur, row := 0, 0
	if i >= 0 {
		cur, row = v.anchors[i].Line, v.anchors[i].StartRow
	}
	for scanned := 0; cur < line && scanned <= scanBudgetLines; scanned++ {
		row += v.lineRows(cur, width, m, font)
		cur++
		v.maybeRecordAnchor(cur, row)
	}
	return row
}

// ensureAnchors resets the anchor list when the width (or version) it was
// recorded under is no longer current.
func (v *Virtualizer) ensureAnchors(width float64) {
	version := v.src.Version()
	if v.anchorsWidth != width || v.anchorsVersion != version {
		v.anchors = v.anchors[:0]
		v.anchorsWidth = width
		v.anchorsVersion = version
	}
}

// maybeRecordAnchor records (line, startRow) opportunistically when a scan
// crosses an interval boundary past the last recorded anchor.
func (v *Virtualizer) maybeRecordAnchor(line, startRow int) {
	if line%anchorInterval != 0 {
		return
	}
	if n := len(v.anchors); n > 0 && v.anchors[n-1].Line >= line {
		return
	}
	v.anchors = append(v.anchors, Anchor{Line: line, StartRow: startRow})
}

// GetExtentHeight estimates the total pixel height of the wrapped
// document. Small and medium documents sum exact per-line row counts;
// large documents blend an analytic estimate with the empirical wrap ratio
// once enough lines have been measured.
func (v *Virtualizer) GetExtentHeight(width, lineHeight, fontSize float64, m Measurer, font FontKey) float64 {
	lineCount := v.src.LineCount()
	if lineCount == 0 {
		return 0
	}
	if !v.sparse() {
		v.ensureRowPrefix(lineCount, width, m, font)
		return float64(v.rowPrefix[lineCount]) * lineHeight
	}

	rowsPerLine := v.analyticRowsPerLine(width, fontSize, lineCount)
	v.ensureSamples(v.src.Version(), width)
	if v.sampleLines >= minExtentSamples {
		rowsPerLine = float64(v.sampleRows) / float64(v.sampleLines)
	}
	if rowsPerLine < 1 {
		rowsPerLine = 1
	}
	return math.Ceil(float64(lineCount)*rowsPerLine) * lineHeight
}

func (v *Virtualizer) analyticRowsPerLine(width, fontSize float64, lineCount int) float64 {
	if fontSize <= 0 {
		fontSize = 12
	}
	charsPerLine := width / (fontSize * analyticCharWidthFactor)
	if charsPerLine < 1 {
		charsPerLine = 1
	}
	avgLineLen := float64(v.src.Len()) / float64(lineCount)
	return math.Ceil(avgLineLen / charsPerLine)
}

// SetLargeDocThreshold overrides the exact/sparse switchover. Primarily
// for tests and hosts with unusual documents.
func (v *Virtualizer) SetLargeDocThreshold(lines int) {
	if lines < 1 {
		lines = 1
	}
	v.largeDocThreshold = lines
}
