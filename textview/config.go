package textview

import "github.com/aprillz/mewtext/layout"

// Config configures a textview Model.
type Config struct {
	// Initial document text.
	Text string

	// Initial size in terminal cells. Usually updated again from the
	// first WindowSizeMsg.
	Width  int
	Height int

	// Font identity used for measurement cache keys. Zero value gets a
	// usable monospace default.
	Font layout.FontKey

	// WrapEnabled soft-wraps long lines to the view width.
	WrapEnabled bool

	// Style's zero value renders unstyled text with an invisible caret;
	// use DefaultStyle for a visible caret and selection.
	Style Style
	Keys  KeyMap

	// Forwarded to editor.Options.
	HistoryLimit int
}

func (c Config) withDefaults() Config {
	if c.Font == (layout.FontKey{}) {
		c.Font = layout.FontKey{Family: "mono", Size: 12, Weight: 400, DPI: 96}
	}
	if c.Keys.isZero() {
		c.Keys = DefaultKeyMap()
	}
	return c
}
