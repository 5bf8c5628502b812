package trellis

import "fmt"

// FocusChain is an ordered list of items taking keyboard-style input, with one
// focused item. Items are notified through signals:
//
//   - add_to_focus_chain / remove_from_focus_chain with the chain as argument
//   - gain_focus
//   - lose_focus with a bool argument, true while the chain is being reloaded
//   - key_press / key_release with a KeyEvent argument (see Key)
type FocusChain struct {
	items []Signaler
	index int
}

// NewFocusChain returns an empty chain.
func NewFocusChain() *FocusChain {
	return &FocusChain{index: -1}
}

// Len returns the number of items.
func (fc *FocusChain) Len() int {
	return len(fc.items)
}

// Index returns the focused position, or -1 when the chain is empty.
func (fc *FocusChain) Index() int {
	if len(fc.items) == 0 {
		return -1
	}
	return fc.index
}

// Current returns the focused item, or nil when the chain is empty.
func (fc *FocusChain) Current() Signaler {
	if len(fc.items) == 0 {
		return nil
	}
	return fc.items[fc.index]
}

// Items returns a copy of the chain.
func (fc *FocusChain) Items() []Signaler {
	return append([]Signaler(nil), fc.items...)
}

// IndexOf returns the position of item, or -1.
func (fc *FocusChain) IndexOf(item Signaler) int {
	for i, it := range fc.items {
		if it == item {
			return i
		}
	}
	return -1
}

// Load replaces the chain with items and focuses the first one. The previous
// focus loses focus (with the reload flag set) and every previous item is
// removed before the new items are added. Panics on a nil item.
func (fc *FocusChain) Load(items ...Signaler) {
	for i, it := range items {
		if it == nil {
			panic(fmt.Sprintf("trellis: focus chain item %d is nil", i))
		}
	}
	fc.clear(true)

	fc.items = append([]Signaler(nil), items...)
	if len(fc.items) == 0 {
		return
	}
	fc.index = 0
	for _, it := range fc.items {
		it.Signal(SlotAddToFocusChain, fc)
	}
	fc.items[0].Signal(SlotGainFocus)
}

// Clear empties the chain, sending lose_focus to the focused item and
// remove_from_focus_chain to every item.
func (fc *FocusChain) Clear() {
	fc.clear(false)
}

func (fc *FocusChain) clear(reloading bool) {
	if cur := fc.Current(); cur != nil {
		cur.Signal(SlotLoseFocus, reloading)
	}
	old := fc.items
	fc.items = nil
	fc.index = -1
	for _, it := range old {
		it.Signal(SlotRemoveFromFocusChain, fc)
	}
}

// SetFocus moves focus to target, which is an int position, "+" or "-" to
// rotate forward or backward with wraparound, or an item of the chain.
// Panics on any other target, an out-of-range position or a foreign item.
func (fc *FocusChain) SetFocus(target any) {
	switch t := target.(type) {
	case int:
		fc.FocusIndex(t)
	case string:
		switch t {
		case "+":
			fc.Next()
		case "-":
			fc.Prev()
		default:
			panic(fmt.Sprintf("trellis: invalid focus direction %q", t))
		}
	case Signaler:
		fc.FocusItem(t)
	default:
		panic(fmt.Sprintf("trellis: invalid focus target %T", target))
	}
}

// Next rotates focus forward. No-op on an empty chain.
func (fc *FocusChain) Next() {
	fc.rotate(1)
}

// Prev rotates focus backward. No-op on an empty chain.
func (fc *FocusChain) Prev() {
	fc.rotate(-1)
}

func (fc *FocusChain) rotate(delta int) {
	n := len(fc.items)
	if n == 0 {
		return
	}
	fc.focus(((fc.index+delta)%n + n) % n)
}

// FocusIndex focuses the item at i.
func (fc *FocusChain) FocusIndex(i int) {
	if i < 0 || i >= len(fc.items) {
		panic(fmt.Sprintf("trellis: focus index %d out of range [0,%d)", i, len(fc.items)))
	}
	fc.focus(i)
}

// FocusItem focuses item.
func (fc *FocusChain) FocusItem(item Signaler) {
	i := fc.IndexOf(item)
	if i < 0 {
		panic("trellis: item is not in the focus chain")
	}
	fc.focus(i)
}

func (fc *FocusChain) focus(i int) {
	if i == fc.index {
		return
	}
	fc.items[fc.index].Signal(SlotLoseFocus, false)
	fc.index = i
	fc.items[i].Signal(SlotGainFocus)
}

// Key forwards ev to the focused item as key_press or key_release. A Tab
// press the item does not answer (nil result) rotates focus, backward with
// Shift. Reports whether the event was consumed.
func (fc *FocusChain) Key(ev KeyEvent) bool {
	cur := fc.Current()
	if cur == nil {
		return false
	}
	slot := SlotKeyRelease
	if ev.Down {
		slot = SlotKeyPress
	}
	if cur.Signal(slot, ev) != nil {
		return true
	}
	if ev.Down && ev.Key == KeyTab {
		if ev.Mods&ModShift != 0 {
			fc.Prev()
		} else {
			fc.Next()
		}
		return true
	}
	return false
}
