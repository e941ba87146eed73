package layout

// Line-measure cache capacities. Most invalidations are wholesale (font or
// version changes), so eviction clears the entire cache instead of tracking
// recency per line.
const (
	lineCacheCapacity         = 256
	lineCacheCapacityLargeDoc = 1024
)

// LineMeasureCache holds one LineMeasure per visible line of a multi-line
// view, keyed by line index.
type LineMeasureCache struct {
	entries  map[int]*LineMeasure
	capacity int
}

// NewLineMeasureCache returns a cache bounded at capacity entries.
// capacity <= 0 selects the default.
func NewLineMeasureCache(capacity int) *LineMeasureCache {
	if capacity <= 0 {
		capacity = lineCacheCapacity
	}
	return &LineMeasureCache{
		entries:  make(map[int]*LineMeasure),
		capacity: capacity,
	}
}

// NewLineMeasureCacheForDoc sizes the cache by document scale.
func NewLineMeasureCacheForDoc(lineCount int) *LineMeasureCache {
	if lineCount >= defaultLargeDocThreshold {
		return NewLineMeasureCache(lineCacheCapacityLargeDoc)
	}
	return NewLineMeasureCache(lineCacheCapacity)
}

// Ensure returns a valid LineMeasure for line, rebuilding it when the
// stored Version, FontKey, Start, or End no longer match the request.
// textFn is invoked only on a rebuild.
func (c *LineMeasureCache) Ensure(line int, version uint64, font FontKey, start, end int, textFn func() string, m Measurer) *LineMeasure {
	if lm, ok := c.entries[line]; ok && lm.matches(version, font, start, end) {
		return lm
	}

	text := ""
	if end > start {
		text = textFn()
	}
	lm := buildLineMeasure(version, font, start, end, text, m)

	if len(c.entries) >= c.capacity {
		clear(c.entries)
	}
	c.entries[line] = lm
	return lm
}

// Len returns the number of cached entries.
func (c *LineMeasureCache) Len() int { return len(c.entries) }

// Reset discards every entry. Views call this on whole-document
// replacement.
func (c *LineMeasureCache) Reset() {
	clear(c.entries)
}

// SingleLineMeasure is the single-line edit-box instantiation of the same
// chunked measurement: one global entry covering the control's one logical
// line.
type SingleLineMeasure struct {
	entry *LineMeasure
}

// Ensure returns a valid LineMeasure for the control's line, rebuilding on
// any Version/FontKey/span mismatch. textFn is invoked only on a rebuild.
func (s *SingleLineMeasure) Ensure(version uint64, font FontKey, start, end int, textFn func() string, m Measurer) *LineMeasure {
	if s.entry != nil && s.entry.matches(version, font, start, end) {
		return s.entry
	}
	text := ""
	if end > start {
		text = textFn()
	}
	s.entry = buildLineMeasure(version, font, start, end, text, m)
	return s.entry
}

// Reset discards the cached entry.
func (s *SingleLineMeasure) Reset() { s.entry = nil }
