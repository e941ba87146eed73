// Package textview provides a Bubble Tea host view over the mewtext core:
// it owns a piece-table buffer, an edit controller, and the layout caches,
// and drives them per keystroke and per paint.
//
// The view renders exclusively through the caches: wrap segmentation and
// line measurement are pulled from the Virtualizer and LineMeasureCache,
// never recomputed inline. It doubles as the reference wiring for
// embedding the core under other hosts.
package textview
