package trellis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// focusItem records the focus signals it receives.
type focusItem struct {
	name string
	log  *[]string
	// keyResult is returned for key_press and key_release
	keyResult any
}

func (it *focusItem) Signal(slot Slot, args ...any) any {
	entry := it.name + ":" + string(slot)
	if slot == SlotLoseFocus && len(args) > 0 {
		entry += fmt.Sprintf("(%v)", args[0])
	}
	*it.log = append(*it.log, entry)
	if slot == SlotKeyPress || slot == SlotKeyRelease {
		return it.keyResult
	}
	return nil
}

func newFocusItems(log *[]string, names ...string) []Signaler {
	out := make([]Signaler, len(names))
	for i, n := range names {
		out[i] = &focusItem{name: n, log: log}
	}
	return out
}

func TestFocusChainEmpty(t *testing.T) {
	fc := NewFocusChain()
	if fc.Index() != -1 || fc.Current() != nil || fc.Len() != 0 {
		t.Errorf("empty chain: index=%d current=%v len=%d", fc.Index(), fc.Current(), fc.Len())
	}
	fc.Next()
	fc.Prev()
	if fc.Key(KeyEvent{Key: KeyTab, Down: true}) {
		t.Error("empty chain consumed a key")
	}
	expectPanic(t, "FocusIndex on empty chain", func() { fc.FocusIndex(0) })
}

func TestFocusChainLoad(t *testing.T) {
	var log []string
	fc := NewFocusChain()
	items := newFocusItems(&log, "a", "b")
	fc.Load(items...)

	want := []string{"a:add_to_focus_chain", "b:add_to_focus_chain", "a:gain_focus"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("load (-want +got):\n%s", diff)
	}
	if fc.Index() != 0 || fc.Current() != items[0] {
		t.Errorf("index = %d, want 0", fc.Index())
	}

	log = nil
	fc.Load(newFocusItems(&log, "c")...)
	want = []string{
		"a:lose_focus(true)",
		"a:remove_from_focus_chain", "b:remove_from_focus_chain",
		"c:add_to_focus_chain", "c:gain_focus",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("reload (-want +got):\n%s", diff)
	}

	log = nil
	fc.Clear()
	want = []string{"c:lose_focus(false)", "c:remove_from_focus_chain"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("clear (-want +got):\n%s", diff)
	}
	if fc.Index() != -1 {
		t.Errorf("index after clear = %d", fc.Index())
	}
}

func TestFocusChainLoadNilPanics(t *testing.T) {
	var log []string
	fc := NewFocusChain()
	items := newFocusItems(&log, "a")
	fc.Load(items...)
	log = nil
	expectPanic(t, "nil item", func() { fc.Load(items[0], nil) })
	if len(log) != 0 || fc.Current() != items[0] {
		t.Errorf("rejected load changed the chain: %v", log)
	}
}

func TestFocusRotationReturnsToStart(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			var log []string
			names := make([]string, n)
			for i := range names {
				names[i] = fmt.Sprint(i)
			}
			fc := NewFocusChain()
			fc.Load(newFocusItems(&log, names...)...)
			fc.FocusIndex(n / 2)
			start := fc.Current()

			log = nil
			for range n {
				fc.SetFocus("+")
			}
			if fc.Current() != start {
				t.Errorf("focus ended at %d", fc.Index())
			}
			lose, gain := 0, 0
			for _, e := range log {
				switch {
				case strings.HasSuffix(e, ":lose_focus(false)"):
					lose++
				case strings.HasSuffix(e, ":gain_focus"):
					gain++
				}
			}
			pairs := n
			if n == 1 {
				pairs = 0 // rotating a single item keeps focus in place
			}
			if lose != pairs || gain != pairs {
				t.Errorf("lose=%d gain=%d, want %d each", lose, gain, pairs)
			}
		})
	}
}

func TestFocusSetFocusTargets(t *testing.T) {
	var log []string
	fc := NewFocusChain()
	items := newFocusItems(&log, "a", "b", "c")
	fc.Load(items...)

	fc.SetFocus("-")
	if fc.Index() != 2 {
		t.Errorf("after - index = %d, want 2", fc.Index())
	}
	fc.SetFocus(1)
	if fc.Index() != 1 {
		t.Errorf("after 1 index = %d", fc.Index())
	}
	fc.SetFocus(items[0])
	if fc.Index() != 0 {
		t.Errorf("after item index = %d", fc.Index())
	}

	log = nil
	fc.SetFocus(0)
	if len(log) != 0 {
		t.Errorf("refocusing the current item sent %v", log)
	}

	var other []string
	stranger := newFocusItems(&other, "x")[0]
	for name, target := range map[string]any{
		"out of range": 3,
		"negative":     -1,
		"direction":    "++",
		"foreign item": stranger,
		"wrong type":   1.5,
	} {
		expectPanic(t, name, func() { fc.SetFocus(target) })
	}
}

func TestFocusKey(t *testing.T) {
	var log []string
	fc := NewFocusChain()
	items := newFocusItems(&log, "a", "b")
	fc.Load(items...)

	log = nil
	if fc.Key(KeyEvent{Key: KeyRune, Rune: 'x', Down: true}) {
		t.Error("unanswered rune consumed")
	}
	if fc.Key(KeyEvent{Key: KeyRune, Rune: 'x'}) {
		t.Error("unanswered release consumed")
	}
	want := []string{"a:key_press", "a:key_release"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("key delivery (-want +got):\n%s", diff)
	}

	if !fc.Key(KeyEvent{Key: KeyTab, Down: true}) || fc.Index() != 1 {
		t.Errorf("tab: index = %d, want 1", fc.Index())
	}
	if !fc.Key(KeyEvent{Key: KeyTab, Mods: ModShift, Down: true}) || fc.Index() != 0 {
		t.Errorf("shift-tab: index = %d, want 0", fc.Index())
	}

	// an item answering tab keeps focus
	items[0].(*focusItem).keyResult = true
	if !fc.Key(KeyEvent{Key: KeyTab, Down: true}) || fc.Index() != 0 {
		t.Errorf("answered tab moved focus to %d", fc.Index())
	}
}

func TestFocusChainWithWidgets(t *testing.T) {
	g := NewGroup()
	var rec recorder
	slots := []Slot{SlotGainFocus, SlotLoseFocus, SlotAddToFocusChain}
	a := g.NewWidget(rec.table("a", slots...))
	b := g.NewWidget(rec.table("b", slots...))
	var got KeyEvent
	b.SetHandler(SlotKeyPress, func(_ *Widget, ev *Event) any {
		got, _ = ev.Arg(0).(KeyEvent)
		return true
	})

	fc := NewFocusChain()
	fc.Load(a, b)
	fc.Next()
	want := []string{"a:add_to_focus_chain", "b:add_to_focus_chain", "a:gain_focus", "a:lose_focus", "b:gain_focus"}
	if diff := cmp.Diff(want, rec.log); diff != "" {
		t.Errorf("widget focus (-want +got):\n%s", diff)
	}

	ev := KeyEvent{Key: KeyRune, Rune: 'q', Down: true}
	if !fc.Key(ev) || got != ev {
		t.Errorf("key_press arg = %+v, want %+v", got, ev)
	}
}
