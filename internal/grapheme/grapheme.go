// Package grapheme provides cluster-aware text helpers shared by the
// measurement code.
package grapheme

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cells sums per-cluster terminal cell widths. Zero-width clusters
// (combining marks measured alone) still occupy one cell so that every
// column stays addressable.
func Cells(text string) int {
	if text == "" {
		return 0
	}
	cells := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := runewidth.StringWidth(g.Str())
		if w < 1 {
			w = 1
		}
		cells += w
	}
	return cells
}
