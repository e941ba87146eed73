package editor

import "unicode/utf8"

// EditKind distinguishes the two primitive mutations.
type EditKind uint8

const (
	EditInsert EditKind = iota
	EditDelete
)

func (k EditKind) String() string {
	switch k {
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	}
	return "unknown"
}

// Edit is one committed atomic mutation: Text inserted at or deleted from
// Index. Edits are immutable once recorded; the inverse of an insert is a
// delete of the same text at the same index, and vice versa.
type Edit struct {
	Kind  EditKind
	Index int
	Text  string
}

// Invert returns the edit that exactly undoes e.
func (e Edit) Invert() Edit {
	if e.Kind == EditInsert {
		return Edit{Kind: EditDelete, Index: e.Index, Text: e.Text}
	}
	return Edit{Kind: EditInsert, Index: e.Index, Text: e.Text}
}

func (e Edit) runeLen() int {
	return utf8.RuneCountInString(e.Text)
}
