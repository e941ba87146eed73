// Package layout implements the measurement and soft-wrap caches that make
// per-keystroke and per-paint glyph queries cheap on large documents.
//
// Nothing here rasterizes text: pixel metrics come from a host-supplied
// Measurer, and every cache treats the document Version (plus wrap width
// and FontKey where relevant) as the only staleness signal. All components
// are single-threaded and must be serialized by the owning view.
package layout
