package layout

import (
	"strings"
	"testing"

	"github.com/aprillz/mewtext/buffer"
)

func TestWidthEstimator_MaxLineWidth(t *testing.T) {
	b := buffer.New("ab\n" + strings.Repeat("x", 20) + "\ncdef")
	m := &unitMeasurer{}
	var e WidthEstimator

	if got, want := e.MaxLineWidth(b, m, testFont), 200.0; got != want {
		t.Fatalf("max width: got %v, want %v", got, want)
	}

	// Cached: unchanged version and font re-measures nothing.
	calls := m.calls
	e.MaxLineWidth(b, m, testFont)
	if m.calls != calls {
		t.Fatalf("calls after cached query: got %d, want %d", m.calls, calls)
	}

	// Version change forces a rescan.
	b.Insert(0, "!")
	e.MaxLineWidth(b, m, testFont)
	if m.calls == calls {
		t.Fatalf("expected rescan after edit")
	}
}

func TestWidthEstimator_RescanRange_SeedsFromPriorMax(t *testing.T) {
	b := buffer.New("ab\n" + strings.Repeat("x", 20) + "\ncdef")
	m := &unitMeasurer{}
	var e WidthEstimator

	e.MaxLineWidth(b, m, testFont)

	// Edit line 2 only; the prior maximum (line 1) is outside the edited
	// range, so only line 2 is re-measured.
	b.Insert(b.Len(), "gh")
	calls := m.calls
	if got, want := e.RescanRange(b, m, testFont, 2, 2), 200.0; got != want {
		t.Fatalf("max after small edit: got %v, want %v", got, want)
	}
	if got, want := m.calls, calls+1; got != want {
		t.Fatalf("calls: got %d, want %d (one line re-measured)", got, want)
	}

	// Grow line 2 past the old maximum.
	b.Insert(b.Len(), strings.Repeat("y", 30))
	if got, want := e.RescanRange(b, m, testFont, 2, 2), 360.0; got != want {
		t.Fatalf("max after growth: got %v, want %v", got, want)
	}
}

func TestWidthEstimator_RescanRange_MaxLineEditedRescansAll(t *testing.T) {
	b := buffer.New(strings.Repeat("x", 20) + "\nab")
	m := &unitMeasurer{}
	var e WidthEstimator

	if got, want := e.MaxLineWidth(b, m, testFont), 200.0; got != want {
		t.Fatalf("max width: got %v, want %v", got, want)
	}

	// Shrink the widest line: the cached maximum is invalid, so the whole
	// document is rescanned.
	b.Remove(0, 15)
	if got, want := e.RescanRange(b, m, testFont, 0, 0), 50.0; got != want {
		t.Fatalf("max after shrink: got %v, want %v", got, want)
	}
}

func TestWidthEstimator_LongLinesUsePooledScratch(t *testing.T) {
	long := strings.Repeat("z", inlineLineRunes*3)
	b := buffer.New("short\n" + long)
	m := &unitMeasurer{}
	var e WidthEstimator

	if got, want := e.MaxLineWidth(b, m, testFont), float64(inlineLineRunes*3)*10; got != want {
		t.Fatalf("max width: got %v, want %v", got, want)
	}
}
