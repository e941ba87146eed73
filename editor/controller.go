package editor

// Options configures a Controller.
type Options struct {
	// OnEditCommitted is invoked exactly once per committed mutation,
	// including undo/redo replays. Hosts use it to trigger re-layout.
	OnEditCommitted func(Edit)

	// HistoryLimit bounds the undo stack. Default: 1000.
	HistoryLimit int
}

// Controller owns caret/selection state and undo/redo over a TextStore.
//
// Caret position is a rune index in [0, Len()]. The selection is the
// normalized range between the anchor and anchor+length; a zero length
// means no selection. Out-of-range caret requests clamp silently.
type Controller struct {
	store TextStore
	opt   Options

	caret  int
	anchor int
	selLen int

	undo []Edit
	redo []Edit

	// replaying suppresses history recording while Undo/Redo reapply
	// edits through the normal commit path.
	replaying bool
}

// NewController returns a Controller editing through store.
func NewController(store TextStore, opt Options) *Controller {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	return &Controller{store: store, opt: opt}
}

// Caret returns the caret position.
func (c *Controller) Caret() int { return c.caret }

// SelectionAnchor returns the raw selection anchor.
func (c *Controller) SelectionAnchor() int { return c.anchor }

// SelectionLength returns the signed selection length relative to the
// anchor.
func (c *Controller) SelectionLength() int { return c.selLen }

// Selection returns the normalized selection range. ok is false when the
// selection is collapsed.
func (c *Controller) Selection() (start, end int, ok bool) {
	if c.selLen == 0 {
		return 0, 0, false
	}
	a, b := c.anchor, c.anchor+c.selLen
	if a > b {
		a, b = b, a
	}
	return a, b, true
}

// SetCaretPosition moves the caret and collapses the selection. Positions
// outside [0, Len()] clamp.
func (c *Controller) SetCaretPosition(pos int) {
	c.caret = clampInt(pos, 0, c.store.Len())
	c.anchor = c.caret
	c.selLen = 0
}

// SetCaretAndSelection moves the caret to pos. When extend is true the
// selection grows from the existing anchor; otherwise it collapses.
func (c *Controller) SetCaretAndSelection(pos int, extend bool) {
	pos = clampInt(pos, 0, c.store.Len())
	if extend {
		c.anchor = clampInt(c.anchor, 0, c.store.Len())
		c.caret = pos
		c.selLen = pos - c.anchor
		return
	}
	c.caret = pos
	c.anchor = pos
	c.selLen = 0
}

// SelectAll selects the whole document and places the caret at its end.
func (c *Controller) SelectAll() {
	c.anchor = 0
	c.selLen = c.store.Len()
	c.caret = c.selLen
}

// MoveCaretHorizontal moves the caret by one character, or to the
// previous/next word boundary when word is true. direction < 0 moves
// backward. When extend is true the selection extends to the new caret.
func (c *Controller) MoveCaretHorizontal(direction int, extend, word bool) {
	pos := clampInt(c.caret, 0, c.store.Len())
	if direction < 0 {
		if word {
			pos = prevWordBoundary(c.store, pos)
		} else {
			pos--
		}
	} else {
		if word {
			pos = nextWordBoundary(c.store, pos)
		} else {
			pos++
		}
	}
	c.SetCaretAndSelection(pos, extend)
}

// MoveCaretToDocumentEdge moves the caret to the start or end of the
// document.
func (c *Controller) MoveCaretToDocumentEdge(end, extend bool) {
	pos := 0
	if end {
		pos = c.store.Len()
	}
	c.SetCaretAndSelection(pos, extend)
}

// InsertTextAtCaret inserts text at the caret, replacing the active
// selection first. Empty text with no selection is a no-op.
func (c *Controller) InsertTextAtCaret(text string) {
	c.DeleteSelection()
	if text == "" {
		return
	}
	index := clampInt(c.caret, 0, c.store.Len())
	c.apply(Edit{Kind: EditInsert, Index: index, Text: text})
}

// Backspace deletes one character before the caret, or back to the
// previous word boundary when word is true. An active selection is deleted
// instead. At document start this is a silent no-op.
func (c *Controller) Backspace(word bool) {
	if c.DeleteSelection() {
		return
	}
	pos := clampInt(c.caret, 0, c.store.Len())
	if pos == 0 {
		return
	}
	start := pos - 1
	if word {
		start = prevWordBoundary(c.store, pos)
	}
	c.apply(Edit{Kind: EditDelete, Index: start, Text: c.store.TextRange(start, pos)})
}

// Delete deletes one character after the caret, or forward to the next
// word boundary when word is true. An active selection is deleted instead.
// At document end this is a silent no-op.
func (c *Controller) Delete(word bool) {
	if c.DeleteSelection() {
		return
	}
	pos := clampInt(c.caret, 0, c.store.Len())
	if pos == c.store.Len() {
		return
	}
	end := pos + 1
	if word {
		end = nextWordBoundary(c.store, pos)
	}
	if end <= pos {
		return
	}
	c.apply(Edit{Kind: EditDelete, Index: pos, Text: c.store.TextRange(pos, end)})
}

// DeleteSelection deletes the active selection. It reports whether
// anything was removed; a collapsed selection is a no-op returning false.
func (c *Controller) DeleteSelection() bool {
	start, end, ok := c.Selection()
	if !ok {
		return false
	}
	c.apply(Edit{Kind: EditDelete, Index: start, Text: c.store.TextRange(start, end)})
	return true
}

// CanUndo reports whether an undo step is available.
func (c *Controller) CanUndo() bool { return len(c.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (c *Controller) CanRedo() bool { return len(c.redo) > 0 }

// Undo replays the inverse of the most recent edit and moves it to the
// redo stack. The caret returns to the edit point.
func (c *Controller) Undo() bool {
	if len(c.undo) == 0 {
		return false
	}
	i := len(c.undo) - 1
	e := c.undo[i]
	c.undo = c.undo[:i]

	c.replaying = true
	c.apply(e.Invert())
	c.replaying = false

	c.redo = append(c.redo, e)
	return true
}

// Redo replays the most recently undone edit and moves it back to the
// undo stack.
func (c *Controller) Redo() bool {
	if len(c.redo) == 0 {
		return false
	}
	i := len(c.redo) - 1
	e := c.redo[i]
	c.redo = c.redo[:i]

	c.replaying = true
	c.apply(e)
	c.replaying = false

	c.undo = append(c.undo, e)
	return true
}

// ClearUndoRedo discards both history stacks.
func (c *Controller) ClearUndoRedo() {
	c.undo = nil
	c.redo = nil
}

// apply performs e against the store, repositions the caret, records
// history (outside replays), and notifies the host. Every committed edit
// passes through here exactly once.
func (c *Controller) apply(e Edit) {
	switch e.Kind {
	case EditInsert:
		c.store.Insert(e.Index, e.Text)
		c.caret = e.Index + e.runeLen()
	case EditDelete:
		c.store.Remove(e.Index, e.runeLen())
		c.caret = e.Index
	}
	c.anchor = c.caret
	c.selLen = 0

	if !c.replaying {
		c.undo = append(c.undo, e)
		if limit := c.opt.HistoryLimit; limit > 0 && len(c.undo) > limit {
			c.undo = c.undo[len(c.undo)-limit:]
		}
		c.redo = nil
	}
	if c.opt.OnEditCommitted != nil {
		c.opt.OnEditCommitted(e)
	}
}

// SetText replaces the whole document and clears both history stacks.
// Wholesale replacement is not a committed edit: no notification fires,
// and the host is expected to Reset() its caches.
func (c *Controller) SetText(text string) {
	if n := c.store.Len(); n > 0 {
		c.store.Remove(0, n)
	}
	if text != "" {
		c.store.Insert(0, text)
	}
	c.caret = 0
	c.anchor = 0
	c.selLen = 0
	c.ClearUndoRedo()
}

// Clear empties the document and clears both history stacks.
func (c *Controller) Clear() {
	c.SetText("")
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
