package grapheme

import "testing"

func TestCells(t *testing.T) {
	if got := Cells("abc"); got != 3 {
		t.Fatalf("cells=%d, want 3", got)
	}
	// CJK occupies two cells per cluster.
	if got := Cells("世界"); got != 4 {
		t.Fatalf("cjk cells=%d, want 4", got)
	}
	// A lone combining mark still claims a cell.
	if got := Cells("́"); got != 1 {
		t.Fatalf("combining mark cells=%d, want 1", got)
	}
	if got := Cells(""); got != 0 {
		t.Fatalf("empty cells=%d, want 0", got)
	}
}
