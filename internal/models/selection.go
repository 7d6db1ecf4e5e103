package models

import "strings"

// Selection is the active text selection in rune offsets. Start == End means
// nothing is selected.
type Selection struct {
	Start int
	End   int
}

// Empty reports whether there is no active selection.
func (s Selection) Empty() bool {
	return s.End <= s.Start
}

// CursorOffset converts a row/column cursor position into a rune offset into text.
func CursorOffset(text string, row, col int) int {
	lines := strings.Split(text, "\n")
	if row >= len(lines) {
		row = len(lines) - 1
	}

	offset := 0
	for i := 0; i < row; i++ {
		offset += len([]rune(lines[i])) + 1
	}
	if row >= 0 {
		offset += clamp(col, 0, len([]rune(lines[row])))
	}
	return offset
}

// LocateSelection recovers the selection range from the cursor offset and the
// selected text. The cursor sits at one end of the selection; the end it was
// extended towards is tried first.
func LocateSelection(text string, cursor int, selected string) Selection {
	runes := []rune(text)
	want := []rune(selected)
	n := len(want)
	if n == 0 || n > len(runes) {
		return Selection{Start: cursor, End: cursor}
	}

	if start := cursor - n; start >= 0 && cursor <= len(runes) && string(runes[start:cursor]) == selected {
		return Selection{Start: start, End: cursor}
	}
	if cursor >= 0 && cursor+n <= len(runes) && string(runes[cursor:cursor+n]) == selected {
		return Selection{Start: cursor, End: cursor + n}
	}

	if idx := strings.Index(text, selected); idx >= 0 {
		start := len([]rune(text[:idx]))
		return Selection{Start: start, End: start + n}
	}
	return Selection{Start: cursor, End: cursor}
}
