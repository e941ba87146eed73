package layout

// FontKey identifies a font configuration for caching. Equality covers
// every attribute that affects glyph metrics; two keys comparing equal
// must produce identical measurements.
type FontKey struct {
	Family string
	Size   float64
	Weight int
	DPI    int
}

func (f FontKey) dpiScale() float64 {
	if f.DPI <= 0 {
		return 1
	}
	return float64(f.DPI) / 96
}
