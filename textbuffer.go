package trellis

import "strings"

// TextBuffer is an editable string addressed by grapheme cluster. It exposes
// a Sequence so cursors and selections stay on the same characters while the
// text changes.
type TextBuffer struct {
	clusters []string
	seq      *Sequence

	// Cursor sits between clusters and may be at the end of the text.
	Cursor *Spot
	// Selection is the selected range; invalid when nothing is selected.
	Selection *Interval
}

// NewTextBuffer returns a buffer holding text with the cursor at the end.
func NewTextBuffer(text string) *TextBuffer {
	tb := &TextBuffer{clusters: splitClusters(text)}
	tb.seq = NewSequence(SequenceFuncs{
		Size:   func() int { return len(tb.clusters) },
		Insert: tb.insertClusters,
		Remove: tb.removeClusters,
	})
	tb.Cursor = tb.seq.NewSpot(true, true)
	tb.Selection = tb.seq.NewInterval()
	tb.Cursor.Set(len(tb.clusters))
	return tb
}

// insertClusters stores args[0], a []string of exactly count clusters.
func (tb *TextBuffer) insertClusters(index, count int, args ...any) {
	cs, _ := args[0].([]string)
	if len(cs) != count {
		panic("trellis: text buffer insert without matching clusters")
	}
	tb.clusters = append(tb.clusters[:index], append(append([]string(nil), cs...), tb.clusters[index:]...)...)
}

func (tb *TextBuffer) removeClusters(index, count int) {
	tb.clusters = append(tb.clusters[:index], tb.clusters[index+count:]...)
}

// Sequence returns the buffer's sequence, for registering further spots and
// intervals.
func (tb *TextBuffer) Sequence() *Sequence {
	return tb.seq
}

// Len returns the number of grapheme clusters.
func (tb *TextBuffer) Len() int {
	return len(tb.clusters)
}

// Text returns the whole string.
func (tb *TextBuffer) Text() string {
	return strings.Join(tb.clusters, "")
}

// Slice returns clusters [start, end) as a string.
func (tb *TextBuffer) Slice(start, end int) string {
	return strings.Join(tb.clusters[start:end], "")
}

// Cluster returns the i-th grapheme cluster.
func (tb *TextBuffer) Cluster(i int) string {
	return tb.clusters[i]
}

// SelectedText returns the selected text, or "".
func (tb *TextBuffer) SelectedText() string {
	if tb.Selection.Empty() {
		return ""
	}
	return tb.Slice(tb.Selection.Start(), tb.Selection.End())
}

// InsertText inserts s at the cursor, replacing the selection if there is
// one. The cursor ends up after the inserted text.
func (tb *TextBuffer) InsertText(s string) {
	if !tb.Selection.Empty() {
		tb.DeleteSelection()
	}
	cs := splitClusters(s)
	at := tb.cursor()
	tb.seq.Insert(at, len(cs), cs)
	if len(cs) > 0 {
		tb.Cursor.Set(at + len(cs))
	}
}

// DeleteSelection removes the selected text and places the cursor where it
// was. Panics if nothing is selected.
func (tb *TextBuffer) DeleteSelection() {
	if tb.Selection.Empty() {
		panic("trellis: delete with an empty selection")
	}
	start := tb.Selection.Start()
	tb.Selection.RemoveContent()
	tb.Selection.Clear()
	tb.Cursor.Set(start)
}

// Backspace removes the selection, or the cluster before the cursor.
// Reports whether anything was removed.
func (tb *TextBuffer) Backspace() bool {
	if !tb.Selection.Empty() {
		tb.DeleteSelection()
		return true
	}
	at := tb.cursor()
	if at == 0 {
		return false
	}
	tb.seq.Remove(at-1, 1)
	return true
}

// Delete removes the selection, or the cluster after the cursor. Reports
// whether anything was removed.
func (tb *TextBuffer) Delete() bool {
	if !tb.Selection.Empty() {
		tb.DeleteSelection()
		return true
	}
	at := tb.cursor()
	if at >= len(tb.clusters) {
		return false
	}
	tb.seq.Remove(at, 1)
	return true
}

// MoveCursor moves the cursor by delta clusters, clamped to the text, and
// clears the selection.
func (tb *TextBuffer) MoveCursor(delta int) {
	tb.Selection.Clear()
	tb.Cursor.Set(max(0, min(len(tb.clusters), tb.cursor()+delta)))
}

// Select selects clusters between positions a and b, in either order, and
// moves the cursor to b.
func (tb *TextBuffer) Select(a, b int) {
	tb.Selection.Span(a, b)
	tb.Cursor.Set(b)
}

// cursor returns the cursor position, repairing an invalid cursor to the end.
func (tb *TextBuffer) cursor() int {
	at, ok := tb.Cursor.Index()
	if !ok {
		at = len(tb.clusters)
		tb.Cursor.Set(at)
	}
	return at
}
