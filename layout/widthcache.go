package layout

import "container/list"

const defaultWidthCacheCapacity = 512

type widthKey struct {
	text string
	font FontKey
}

type widthEntry struct {
	key   widthKey
	width float64
}

// WidthCache is a fixed-capacity strict-LRU cache of whole-string measured
// widths, for controls that re-measure many short repeated strings per
// layout pass. Like the rest of the package it is single-threaded.
type WidthCache struct {
	capacity int
	items    map[widthKey]*list.Element
	order    *list.List
}

// NewWidthCache returns a cache bounded at capacity entries. capacity <= 0
// selects the default.
func NewWidthCache(capacity int) *WidthCache {
	if capacity <= 0 {
		capacity = defaultWidthCacheCapacity
	}
	return &WidthCache{
		capacity: capacity,
		items:    make(map[widthKey]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the cached width for (text, font), promoting the entry to
// most recently used.
func (c *WidthCache) Get(text string, font FontKey) (float64, bool) {
	elem, ok := c.items[widthKey{text: text, font: font}]
	if !ok {
		return 0, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*widthEntry).width, true
}

// Put stores the width for (text, font), evicting the least recently used
// entry when full.
func (c *WidthCache) Put(text string, font FontKey, width float64) {
	key := widthKey{text: text, font: font}
	if elem, ok := c.items[key]; ok {
		elem.Value.(*widthEntry).width = width
		c.order.MoveToFront(elem)
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*widthEntry).key)
		}
	}
	c.items[key] = c.order.PushFront(&widthEntry{key: key, width: width})
}

// Measure returns the cached width for (text, font) or measures and caches
// it.
func (c *WidthCache) Measure(text string, font FontKey, m Measurer) float64 {
	if w, ok := c.Get(text, font); ok {
		return w
	}
	w, _ := m.MeasureText(text, font)
	c.Put(text, font, w)
	return w
}

// Len returns the number of cached entries.
func (c *WidthCache) Len() int { return c.order.Len() }

// Reset discards every entry.
func (c *WidthCache) Reset() {
	clear(c.items)
	c.order.Init()
}
