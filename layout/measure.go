package layout

import (
	"math"

	"github.com/aprillz/mewtext/internal/grapheme"
)

// Measurer is the text-measurement collaborator. Implementations return
// pixel metrics for a span under a font; they never rasterize.
type Measurer interface {
	MeasureText(text string, font FontKey) (width, height float64)

	// MeasureTextWrapped measures text as it would lay out inside
	// maxWidth, returning the widest resulting row and the total height.
	MeasureTextWrapped(text string, font FontKey, maxWidth float64) (width, height float64)
}

// CellMeasurer is the default Measurer for monospace hosts such as
// terminals. Grapheme clusters are sized in cells via go-runewidth and
// scaled to pixels by the font size and DPI. GUI hosts substitute their
// own shaping-backed Measurer.
type CellMeasurer struct{}

// CellAdvance returns the pixel advance of one terminal cell under font.
func (CellMeasurer) CellAdvance(font FontKey) float64 {
	size := font.Size
	if size <= 0 {
		size = 12
	}
	return size * 0.5 * font.dpiScale()
}

// LineHeight returns the pixel height of one text row under font.
func (CellMeasurer) LineHeight(font FontKey) float64 {
	size := font.Size
	if size <= 0 {
		size = 12
	}
	return size * 1.2 * font.dpiScale()
}

func (cm CellMeasurer) MeasureText(text string, font FontKey) (float64, float64) {
	return float64(grapheme.Cells(text)) * cm.CellAdvance(font), cm.LineHeight(font)
}

func (cm CellMeasurer) MeasureTextWrapped(text string, font FontKey, maxWidth float64) (float64, float64) {
	w, h := cm.MeasureText(text, font)
	if maxWidth <= 0 || w <= maxWidth {
		return w, h
	}
	adv := cm.CellAdvance(font)
	cellsPerRow := int(maxWidth / adv)
	if cellsPerRow < 1 {
		cellsPerRow = 1
	}
	rows := int(math.Ceil(float64(grapheme.Cells(text)) / float64(cellsPerRow)))
	if rows < 1 {
		rows = 1
	}
	return float64(cellsPerRow) * adv, float64(rows) * h
}
