package textview

import "strings"

// View renders the visible visual rows through the layout caches.
func (m *Model) View() string {
	if m.height <= 0 || m.width < 0 {
		return ""
	}
	if m.followCaret {
		m.scrollToCaret()
		m.followCaret = false
	}

	width := m.wrapWidth()
	var sb strings.Builder
	for i := 0; i < m.height; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		r := m.topRow + i
		line, rowInLine, startRow := m.wrap.MapVisualRowToLine(r, width, m.measurer, m.font)
		if startRow+rowInLine != r {
			// Past the last document row.
			continue
		}
		sb.WriteString(m.renderRow(line, rowInLine, width))
	}
	return sb.String()
}

func (m *Model) renderRow(line, rowInLine int, width float64) string {
	wl := m.wrap.GetWrapLayout(line, width, m.measurer, m.font)
	lineStart, lineEnd := m.buf.LineSpan(line)
	lineLen := lineEnd - lineStart

	segStart := wl.SegmentStarts[rowInLine]
	segEnd := lineLen
	if rowInLine+1 < len(wl.SegmentStarts) {
		segEnd = wl.SegmentStarts[rowInLine+1]
	}

	text := m.buf.TextRange(lineStart+segStart, lineStart+segEnd)
	// Short repeated strings recur every paint; keep their widths hot.
	m.widths.Measure(text, m.font, m.measurer)

	runes := []rune(text)
	absStart := lineStart + segStart

	selStart, selEnd, hasSel := m.ctl.Selection()
	caret := m.ctl.Caret()
	caretHere := m.focused && caret >= absStart && caret <= absStart+len(runes) &&
		caretOnRow(caret, absStart, len(runes), lineStart+lineLen)

	var sb strings.Builder
	flush := func(from, to int, selected bool) {
		if to <= from {
			return
		}
		s := string(runes[from-absStart : to-absStart])
		if selected {
			sb.WriteString(m.cfg.Style.Selection.Render(s))
		} else {
			sb.WriteString(m.cfg.Style.Text.Render(s))
		}
	}

	pos := absStart
	for pos < absStart+len(runes) {
		next := absStart + len(runes)
		selected := false
		if hasSel && pos >= selStart && pos < selEnd {
			selected = true
			next = minInt(next, selEnd)
		} else if hasSel && pos < selStart {
			next = minInt(next, selStart)
		}

		if caretHere && caret > pos && caret < next {
			next = caret
		}
		if caretHere && caret == pos {
			sb.WriteString(m.cfg.Style.Cursor.Render(string(runes[pos-absStart])))
			pos++
			continue
		}
		flush(pos, next, selected)
		pos = next
	}
	if caretHere && caret == absStart+len(runes) {
		sb.WriteString(m.cfg.Style.Cursor.Render(" "))
	}
	return sb.String()
}

// caretOnRow reports whether a caret at the row's end boundary belongs to
// this row: only when the row reaches the line's end (otherwise the caret
// renders at the start of the next wrap row).
func caretOnRow(caret, absStart, runeCount, lineAbsEnd int) bool {
	if caret < absStart+runeCount {
		return true
	}
	return absStart+runeCount == lineAbsEnd
}

// CaretX returns the caret's pixel offset within its logical line, served
// from the chunked line-measure cache.
func (m *Model) CaretX() float64 {
	caret := m.ctl.Caret()
	line := m.buf.LineFromIndex(caret)
	start, end := m.buf.LineSpan(line)
	lm := m.lineCache.Ensure(line, m.buf.Version(), m.font, start, end, func() string {
		return m.buf.LineText(line)
	}, m.measurer)
	return lm.PrefixWidth(m.measurer, caret-start)
}

// CharIndexAt maps a pixel offset within a visual row to a document index,
// for mouse hit-testing.
func (m *Model) CharIndexAt(x float64, visualRow int) int {
	width := m.wrapWidth()
	line, rowInLine, _ := m.wrap.MapVisualRowToLine(visualRow, width, m.measurer, m.font)
	wl := m.wrap.GetWrapLayout(line, width, m.measurer, m.font)
	start, end := m.buf.LineSpan(line)

	segStart := wl.SegmentStarts[rowInLine]
	segEnd := end - start
	if rowInLine+1 < len(wl.SegmentStarts) {
		segEnd = wl.SegmentStarts[rowInLine+1]
	}

	lm := m.lineCache.Ensure(line, m.buf.Version(), m.font, start, end, func() string {
		return m.buf.LineText(line)
	}, m.measurer)

	col := lm.CharIndexFromX(m.measurer, lm.PrefixWidth(m.measurer, segStart)+x)
	if col < segStart {
		col = segStart
	}
	if col > segEnd {
		col = segEnd
	}
	return start + col
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
