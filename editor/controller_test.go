package editor

import (
	"testing"

	"github.com/aprillz/mewtext/buffer"
)

// runeStore is the plain mutable-string reference storage. The Controller
// must behave identically over it and over the piece table.
type runeStore struct {
	runes []rune
}

func (s *runeStore) Len() int         { return len(s.runes) }
func (s *runeStore) CharAt(i int) rune { return s.runes[i] }

func (s *runeStore) TextRange(start, end int) string {
	return string(s.runes[start:end])
}

func (s *runeStore) Insert(i int, text string) {
	ins := []rune(text)
	s.runes = append(s.runes[:i:i], append(ins, s.runes[i:]...)...)
}

func (s *runeStore) Remove(i, n int) {
	s.runes = append(s.runes[:i:i], s.runes[i+n:]...)
}

func (s *runeStore) text() string { return string(s.runes) }

func newTestController(text string) (*Controller, *runeStore) {
	s := &runeStore{runes: []rune(text)}
	c := NewController(s, Options{})
	return c, s
}

func TestController_InsertBackspaceUndoRedo_Scenario(t *testing.T) {
	c, s := newTestController("")

	c.InsertTextAtCaret("Hello")
	c.InsertTextAtCaret(" World")
	if got, want := s.text(), "Hello World"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := c.Caret(), 11; got != want {
		t.Fatalf("caret: got %d, want %d", got, want)
	}

	c.Backspace(false)
	if got, want := s.text(), "Hello Worl"; got != want {
		t.Fatalf("text after backspace: got %q, want %q", got, want)
	}
	if got, want := c.Caret(), 10; got != want {
		t.Fatalf("caret after backspace: got %d, want %d", got, want)
	}

	if !c.Undo() {
		t.Fatalf("expected Undo=true")
	}
	if got, want := s.text(), "Hello World"; got != want {
		t.Fatalf("text after undo: got %q, want %q", got, want)
	}
	if got, want := c.Caret(), 11; got != want {
		t.Fatalf("caret after undo: got %d, want %d", got, want)
	}

	if !c.Redo() {
		t.Fatalf("expected Redo=true")
	}
	if got, want := s.text(), "Hello Worl"; got != want {
		t.Fatalf("text after redo: got %q, want %q", got, want)
	}
	if got, want := c.Caret(), 10; got != want {
		t.Fatalf("caret after redo: got %d, want %d", got, want)
	}
}

func TestController_Undo_InverseOfInsertAndDelete(t *testing.T) {
	c, s := newTestController("abc")

	c.SetCaretPosition(1)
	c.InsertTextAtCaret("XY")
	if got, want := s.text(), "aXYbc"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	c.Undo()
	if got, want := s.text(), "abc"; got != want {
		t.Fatalf("text after undo insert: got %q, want %q", got, want)
	}
	if got, want := c.Caret(), 1; got != want {
		t.Fatalf("caret after undo insert: got %d, want %d", got, want)
	}

	c.SetCaretPosition(3)
	c.Delete(false)
	if got, want := s.text(), "ab"; got != want {
		t.Fatalf("text after noop delete at end: got %q, want %q", got, want)
	}
}

func TestController_NewEditClearsRedo(t *testing.T) {
	c, _ := newTestController("")
	c.InsertTextAtCaret("one")
	c.Undo()
	if !c.CanRedo() {
		t.Fatalf("expected CanRedo=true after undo")
	}
	c.InsertTextAtCaret("two")
	if c.CanRedo() {
		t.Fatalf("expected CanRedo=false after fresh edit")
	}
	if c.Redo() {
		t.Fatalf("expected Redo=false")
	}
}

func TestController_OnEditCommitted_OncePerCommit(t *testing.T) {
	var commits []Edit
	s := &runeStore{}
	c := NewController(s, Options{OnEditCommitted: func(e Edit) {
		commits = append(commits, e)
	}})

	c.InsertTextAtCaret("hi")   // 1 commit
	c.Backspace(false)          // 1 commit
	c.Undo()                    // 1 commit (replay)
	c.Redo()                    // 1 commit (replay)
	c.DeleteSelection()         // no-op, no commit
	c.Backspace(false)          // 1 commit
	c.Backspace(false)          // no-op at start after "h" removed? still 1 char left
	if got, want := len(commits), 5; got != want {
		t.Fatalf("commit count: got %d, want %d", got, want)
	}
	if commits[0].Kind != EditInsert || commits[0].Text != "hi" {
		t.Fatalf("first commit: got %+v", commits[0])
	}
	if commits[2].Kind != EditInsert || commits[2].Text != "i" {
		t.Fatalf("undo replay commit: got %+v", commits[2])
	}
}

func TestController_SelectionDelete_AndTypingOverSelection(t *testing.T) {
	c, s := newTestController("Hello World")

	if c.DeleteSelection() {
		t.Fatalf("collapsed selection delete must return false")
	}

	c.SetCaretPosition(5)
	c.SetCaretAndSelection(11, true)
	start, end, ok := c.Selection()
	if !ok || start != 5 || end != 11 {
		t.Fatalf("selection: got [%d,%d) ok=%v, want [5,11) true", start, end, ok)
	}

	c.InsertTextAtCaret("!")
	if got, want := s.text(), "Hello!"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := c.Caret(), 6; got != want {
		t.Fatalf("caret: got %d, want %d", got, want)
	}

	// Typing over a selection is two atomic edits: undo restores in two
	// steps.
	c.Undo()
	if got, want := s.text(), "Hello"; got != want {
		t.Fatalf("text after first undo: got %q, want %q", got, want)
	}
	c.Undo()
	if got, want := s.text(), "Hello World"; got != want {
		t.Fatalf("text after second undo: got %q, want %q", got, want)
	}
}

func TestController_BackwardSelection_Normalizes(t *testing.T) {
	c, _ := newTestController("abcdef")
	c.SetCaretPosition(4)
	c.SetCaretAndSelection(1, true)
	start, end, ok := c.Selection()
	if !ok || start != 1 || end != 4 {
		t.Fatalf("selection: got [%d,%d) ok=%v, want [1,4) true", start, end, ok)
	}
	if got := c.SelectionLength(); got != -3 {
		t.Fatalf("signed length: got %d, want %d", got, -3)
	}
}

func TestController_SelectAll_AndEdgeMoves(t *testing.T) {
	c, _ := newTestController("one two")
	c.SelectAll()
	start, end, ok := c.Selection()
	if !ok || start != 0 || end != 7 {
		t.Fatalf("selection: got [%d,%d) ok=%v, want [0,7) true", start, end, ok)
	}
	if got, want := c.Caret(), 7; got != want {
		t.Fatalf("caret: got %d, want %d", got, want)
	}

	c.MoveCaretToDocumentEdge(false, false)
	if got, want := c.Caret(), 0; got != want {
		t.Fatalf("caret at start: got %d, want %d", got, want)
	}
	if _, _, ok := c.Selection(); ok {
		t.Fatalf("selection must collapse on non-extending move")
	}
	c.MoveCaretToDocumentEdge(true, true)
	start, end, ok = c.Selection()
	if !ok || start != 0 || end != 7 {
		t.Fatalf("extended selection: got [%d,%d) ok=%v, want [0,7) true", start, end, ok)
	}
}

func TestController_CaretClamps(t *testing.T) {
	c, _ := newTestController("abc")
	c.SetCaretPosition(999)
	if got, want := c.Caret(), 3; got != want {
		t.Fatalf("caret: got %d, want %d", got, want)
	}
	c.SetCaretPosition(-5)
	if got, want := c.Caret(), 0; got != want {
		t.Fatalf("caret: got %d, want %d", got, want)
	}
	c.MoveCaretHorizontal(-1, false, false)
	if got, want := c.Caret(), 0; got != want {
		t.Fatalf("caret after move past start: got %d, want %d", got, want)
	}
}

func TestController_NoOpDeletes(t *testing.T) {
	var commits int
	s := &runeStore{runes: []rune("x")}
	c := NewController(s, Options{OnEditCommitted: func(Edit) { commits++ }})

	c.SetCaretPosition(0)
	c.Backspace(false)
	c.Backspace(true)
	c.SetCaretPosition(1)
	c.Delete(false)
	c.Delete(true)
	if commits != 0 {
		t.Fatalf("commits: got %d, want 0", commits)
	}
	if got, want := s.text(), "x"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestController_WordBackspaceAndDelete(t *testing.T) {
	c, s := newTestController("one two  three")

	c.SetCaretPosition(9) // inside the run of spaces after "two"
	c.Backspace(true)
	if got, want := s.text(), "one three"; got != want {
		t.Fatalf("text after word backspace: got %q, want %q", got, want)
	}
	if got, want := c.Caret(), 4; got != want {
		t.Fatalf("caret after word backspace: got %d, want %d", got, want)
	}

	c.Delete(true)
	if got, want := s.text(), "one "; got != want {
		t.Fatalf("text after word delete: got %q, want %q", got, want)
	}
}

func TestController_SetText_ClearsHistory(t *testing.T) {
	c, s := newTestController("old")
	c.InsertTextAtCaret("x")
	if !c.CanUndo() {
		t.Fatalf("expected CanUndo=true")
	}
	c.SetText("new text")
	if got, want := s.text(), "new text"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if c.CanUndo() || c.CanRedo() {
		t.Fatalf("history must be cleared by SetText")
	}
	if got, want := c.Caret(), 0; got != want {
		t.Fatalf("caret: got %d, want %d", got, want)
	}
}

func TestController_HistoryLimit_TrimsOldest(t *testing.T) {
	s := &runeStore{}
	c := NewController(s, Options{HistoryLimit: 2})
	c.InsertTextAtCaret("a")
	c.InsertTextAtCaret("b")
	c.InsertTextAtCaret("c")

	if !c.Undo() || !c.Undo() {
		t.Fatalf("expected two undos available")
	}
	if c.Undo() {
		t.Fatalf("third undo must be unavailable under limit 2")
	}
	if got, want := s.text(), "a"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

// TestController_IdenticalOverPieceTable runs the same script over the
// reference store and the piece table and requires identical outcomes.
func TestController_IdenticalOverPieceTable(t *testing.T) {
	script := func(c *Controller) {
		c.InsertTextAtCaret("the quick brown fox")
		c.SetCaretPosition(9)
		c.Backspace(true)
		c.InsertTextAtCaret("slow ")
		c.MoveCaretHorizontal(1, false, true)
		c.Delete(false)
		c.Undo()
		c.Undo()
		c.Redo()
		c.SetCaretAndSelection(3, true)
		c.DeleteSelection()
	}

	ref := &runeStore{}
	refCtl := NewController(ref, Options{})
	script(refCtl)

	pt := buffer.New("")
	ptCtl := NewController(pt, Options{})
	script(ptCtl)

	if got, want := pt.Text(), ref.text(); got != want {
		t.Fatalf("piece-table text: got %q, want %q", got, want)
	}
	if got, want := ptCtl.Caret(), refCtl.Caret(); got != want {
		t.Fatalf("piece-table caret: got %d, want %d", got, want)
	}
}
