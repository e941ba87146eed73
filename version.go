// Package mewtext is a text-editing and virtualized text-layout core: a
// piece-table buffer, an edit controller, and measurement caches that keep
// per-keystroke layout queries cheap on large documents. The subpackages
// buffer, editor, layout, and textview carry the implementation; this
// package only identifies the release.
package mewtext

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the library version in SemVer form, without a leading v.
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}
