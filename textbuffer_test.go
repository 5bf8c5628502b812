package trellis

import "testing"

func TestTextBufferInsert(t *testing.T) {
	tb := NewTextBuffer("héllo")
	if tb.Len() != 5 || spotAt(t, tb.Cursor) != 5 {
		t.Fatalf("len=%d cursor=%d, want 5 and 5", tb.Len(), spotAt(t, tb.Cursor))
	}

	tb.MoveCursor(-3)
	tb.InsertText("XY")
	if got := tb.Text(); got != "héXYllo" {
		t.Errorf("text = %q", got)
	}
	if got := spotAt(t, tb.Cursor); got != 4 {
		t.Errorf("cursor = %d, want 4", got)
	}

	tb.InsertText("")
	if tb.Text() != "héXYllo" || spotAt(t, tb.Cursor) != 4 {
		t.Error("empty insert changed the buffer")
	}
}

func TestTextBufferGraphemeClusters(t *testing.T) {
	// e + combining acute, and a flag made of two regional indicators
	tb := NewTextBuffer("e\u0301\U0001F1EB\U0001F1F7!")
	if tb.Len() != 3 {
		t.Fatalf("len = %d, want 3 clusters", tb.Len())
	}
	if tb.Cluster(1) != "\U0001F1EB\U0001F1F7" {
		t.Errorf("cluster 1 = %q", tb.Cluster(1))
	}
	tb.MoveCursor(-1)
	if !tb.Backspace() {
		t.Fatal("backspace removed nothing")
	}
	if tb.Text() != "e\u0301!" {
		t.Errorf("text = %q, want the flag removed whole", tb.Text())
	}
}

func TestTextBufferBackspaceDelete(t *testing.T) {
	tb := NewTextBuffer("abc")
	if tb.Delete() {
		t.Error("delete at end removed something")
	}
	if !tb.Backspace() || tb.Text() != "ab" || spotAt(t, tb.Cursor) != 2 {
		t.Errorf("backspace: %q cursor %d", tb.Text(), spotAt(t, tb.Cursor))
	}

	tb.MoveCursor(-10)
	if spotAt(t, tb.Cursor) != 0 {
		t.Errorf("cursor not clamped: %d", spotAt(t, tb.Cursor))
	}
	if tb.Backspace() {
		t.Error("backspace at start removed something")
	}
	if !tb.Delete() || tb.Text() != "b" || spotAt(t, tb.Cursor) != 0 {
		t.Errorf("delete: %q cursor %d", tb.Text(), spotAt(t, tb.Cursor))
	}
	tb.MoveCursor(10)
	if spotAt(t, tb.Cursor) != 1 {
		t.Errorf("cursor not clamped at end: %d", spotAt(t, tb.Cursor))
	}
}

func TestTextBufferSelection(t *testing.T) {
	tb := NewTextBuffer("hello world")
	tb.Select(11, 6)
	if got := tb.SelectedText(); got != "world" {
		t.Errorf("selected %q", got)
	}
	if spotAt(t, tb.Cursor) != 6 {
		t.Errorf("cursor = %d, want 6", spotAt(t, tb.Cursor))
	}

	tb.InsertText("there")
	if tb.Text() != "hello there" || !tb.Selection.Empty() {
		t.Errorf("replace: %q selection empty=%v", tb.Text(), tb.Selection.Empty())
	}
	if spotAt(t, tb.Cursor) != 11 {
		t.Errorf("cursor = %d, want 11", spotAt(t, tb.Cursor))
	}

	tb.Select(0, 6)
	if !tb.Backspace() || tb.Text() != "there" || spotAt(t, tb.Cursor) != 0 {
		t.Errorf("backspace selection: %q cursor %d", tb.Text(), spotAt(t, tb.Cursor))
	}
	expectPanic(t, "empty selection", tb.DeleteSelection)

	tb.Select(1, 3)
	tb.MoveCursor(1)
	if tb.SelectedText() != "" {
		t.Error("moving the cursor kept the selection")
	}
}

func TestTextBufferSelectionFollowsEdits(t *testing.T) {
	tb := NewTextBuffer("abcdef")
	tb.Select(2, 4) // "cd"
	tb.Cursor.Set(0)
	tb.seq.Insert(0, 2, []string{"x", "y"})
	if got := tb.SelectedText(); got != "cd" {
		t.Errorf("selection after insert = %q, want cd", got)
	}
	mark := tb.Sequence().NewSpot(false, false)
	mark.Set(5) // "d"
	tb.seq.Remove(0, 3)
	if got := tb.SelectedText(); got != "cd" {
		t.Errorf("selection after remove = %q", got)
	}
	if i := spotAt(t, mark); tb.Cluster(i) != "d" {
		t.Errorf("mark at %d holds %q", i, tb.Cluster(i))
	}
}

func TestTextBufferSlice(t *testing.T) {
	tb := NewTextBuffer("日本語テキスト")
	if got := tb.Slice(1, 3); got != "本語" {
		t.Errorf("slice = %q", got)
	}
}
