package textview

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aprillz/mewtext/buffer"
	"github.com/aprillz/mewtext/editor"
	"github.com/aprillz/mewtext/layout"
)

// Model is a Bubble Tea component over the mewtext core.
type Model struct {
	cfg Config

	buf *buffer.Buffer
	ctl *editor.Controller

	measurer  layout.CellMeasurer
	font      layout.FontKey
	lineCache *layout.LineMeasureCache
	wrap      *layout.Virtualizer
	widths    *layout.WidthCache
	estimator layout.WidthEstimator

	width   int
	height  int
	topRow  int
	focused bool

	// followCaret is armed by committed edits and caret movement; the
	// next render scrolls the caret row into view.
	followCaret bool
}

// New returns a Model for cfg.
func New(cfg Config) *Model {
	cfg = cfg.withDefaults()
	m := &Model{
		cfg:     cfg,
		buf:     buffer.New(cfg.Text),
		font:    cfg.Font,
		widths:  layout.NewWidthCache(0),
		width:   cfg.Width,
		height:  cfg.Height,
		focused: true,
	}
	m.lineCache = layout.NewLineMeasureCacheForDoc(m.buf.LineCount())
	m.wrap = layout.NewVirtualizer(m.buf)
	m.ctl = editor.NewController(m.buf, editor.Options{
		HistoryLimit: cfg.HistoryLimit,
		OnEditCommitted: func(editor.Edit) {
			m.followCaret = true
		},
	})
	return m
}

// Buffer exposes the underlying document.
func (m *Model) Buffer() *buffer.Buffer { return m.buf }

// Controller exposes the edit controller for host-driven edits.
func (m *Model) Controller() *editor.Controller { return m.ctl }

func (m *Model) Init() tea.Cmd { return nil }

// SetText replaces the whole document and resets every cache.
func (m *Model) SetText(text string) {
	m.buf.SetText(text)
	m.ctl.ClearUndoRedo()
	m.ctl.SetCaretPosition(0)
	m.lineCache.Reset()
	m.wrap.Reset()
	m.widths.Reset()
	m.estimator.Invalidate()
	m.topRow = 0
}

// SetSize updates the view size in terminal cells.
func (m *Model) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width = width
	m.height = height
	m.followCaret = true
}

func (m *Model) Focus()        { m.focused = true }
func (m *Model) Blur()         { m.focused = false }
func (m *Model) Focused() bool { return m.focused }

// wrapWidth returns the pixel wrap budget for the current view width.
func (m *Model) wrapWidth() float64 {
	if !m.cfg.WrapEnabled || m.width <= 0 {
		// Effectively unwrapped: budget wide enough for any line.
		return m.measurer.CellAdvance(m.font) * 1e9
	}
	return float64(m.width) * m.measurer.CellAdvance(m.font)
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if m.focused {
			m.handleKey(msg)
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	keys := m.cfg.Keys
	switch {
	case key.Matches(msg, keys.Left):
		m.ctl.MoveCaretHorizontal(-1, false, false)
		m.followCaret = true
	case key.Matches(msg, keys.Right):
		m.ctl.MoveCaretHorizontal(1, false, false)
		m.followCaret = true
	case key.Matches(msg, keys.ShiftLeft):
		m.ctl.MoveCaretHorizontal(-1, true, false)
		m.followCaret = true
	case key.Matches(msg, keys.ShiftRight):
		m.ctl.MoveCaretHorizontal(1, true, false)
		m.followCaret = true
	case key.Matches(msg, keys.WordLeft):
		m.ctl.MoveCaretHorizontal(-1, false, true)
		m.followCaret = true
	case key.Matches(msg, keys.WordRight):
		m.ctl.MoveCaretHorizontal(1, false, true)
		m.followCaret = true
	case key.Matches(msg, keys.DocHome):
		m.ctl.MoveCaretToDocumentEdge(false, false)
		m.followCaret = true
	case key.Matches(msg, keys.DocEnd):
		m.ctl.MoveCaretToDocumentEdge(true, false)
		m.followCaret = true
	case key.Matches(msg, keys.SelectAll):
		m.ctl.SelectAll()
	case key.Matches(msg, keys.WordBackspace):
		m.ctl.Backspace(true)
	case key.Matches(msg, keys.WordDelete):
		m.ctl.Delete(true)
	case key.Matches(msg, keys.Backspace):
		m.ctl.Backspace(false)
	case key.Matches(msg, keys.Delete):
		m.ctl.Delete(false)
	case key.Matches(msg, keys.Enter):
		m.ctl.InsertTextAtCaret("\n")
	case key.Matches(msg, keys.Undo):
		m.ctl.Undo()
		m.followCaret = true
	case key.Matches(msg, keys.Redo):
		m.ctl.Redo()
		m.followCaret = true
	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
			m.ctl.InsertTextAtCaret(string(msg.Runes))
		} else if msg.Type == tea.KeySpace {
			m.ctl.InsertTextAtCaret(" ")
		}
	}
}

// caretVisualRow returns the visual row containing the caret.
func (m *Model) caretVisualRow() int {
	caret := m.ctl.Caret()
	line := m.buf.LineFromIndex(caret)
	start, _ := m.buf.LineSpan(line)
	col := caret - start

	width := m.wrapWidth()
	wl := m.wrap.GetWrapLayout(line, width, m.measurer, m.font)
	seg := segmentForCol(wl.SegmentStarts, col)
	return m.wrap.GetVisualRowStartForLine(line, width, m.measurer, m.font) + seg
}

// segmentForCol returns the index of the segment containing col: the last
// start at or below it.
func segmentForCol(starts []int, col int) int {
	seg := 0
	for i := 1; i < len(starts); i++ {
		if starts[i] <= col {
			seg = i
		}
	}
	return seg
}

// scrollToCaret adjusts topRow so the caret row is visible.
func (m *Model) scrollToCaret() {
	if m.height <= 0 {
		return
	}
	row := m.caretVisualRow()
	if row < m.topRow {
		m.topRow = row
	} else if row >= m.topRow+m.height {
		m.topRow = row - m.height + 1
	}
}

// MaxLineWidth returns the pixel width of the widest line, for horizontal
// extent/scrollbar computation.
func (m *Model) MaxLineWidth() float64 {
	return m.estimator.MaxLineWidth(m.buf, m.measurer, m.font)
}

// ExtentHeight returns the estimated pixel height of the wrapped document.
func (m *Model) ExtentHeight() float64 {
	return m.wrap.GetExtentHeight(m.wrapWidth(), m.measurer.LineHeight(m.font), m.font.Size, m.measurer, m.font)
}
