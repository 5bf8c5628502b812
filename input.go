package trellis

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key. Printable characters are reported as KeyRune
// with KeyEvent.Rune set.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyRune
	KeyTab
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
)

var keyNames = [...]string{
	KeyUnknown:   "unknown",
	KeyRune:      "rune",
	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyInsert:    "insert",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// ParseKey returns the key with the given name, case-insensitively.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(name)
	for k, n := range keyNames {
		if n == name {
			return Key(k), nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// KeyEvent is one key transition.
type KeyEvent struct {
	Key    Key
	Rune   rune // set for KeyRune
	Mods   KeyModifiers
	Down   bool // press when true, release otherwise
	Repeat bool // synthesized by KeyRepeater
}

func (ev KeyEvent) String() string {
	dir := "up"
	if ev.Down {
		dir = "down"
	}
	if ev.Key == KeyRune {
		return fmt.Sprintf("%q %s", ev.Rune, dir)
	}
	return ev.Key.String() + " " + dir
}

// same reports whether ev and o concern the same physical key.
func (ev KeyEvent) same(o KeyEvent) bool {
	if ev.Key != o.Key {
		return false
	}
	return ev.Key != KeyRune || ev.Rune == o.Rune
}

// InputSource is polled once per frame by the Driver.
type InputSource interface {
	// Cursor returns the pointer position.
	Cursor() (x, y float64)
	// Pressed reports whether the primary pointer button is held.
	Pressed() bool
	// AppendKeys appends the key transitions since the last call to dst.
	AppendKeys(dst []KeyEvent) []KeyEvent
}

// KeyRepeater synthesizes repeated presses for the most recently pressed key
// while it stays down: one after Delay, then one every Interval.
type KeyRepeater struct {
	Delay    float64
	Interval float64

	held     KeyEvent
	holding  bool
	delaying bool
	timer    Timer
}

// NewKeyRepeater returns a repeater with the given timings in seconds.
func NewKeyRepeater(delay, interval float64) *KeyRepeater {
	return &KeyRepeater{Delay: delay, Interval: interval}
}

// Observe tracks the given real key events.
func (kr *KeyRepeater) Observe(events []KeyEvent) {
	for _, ev := range events {
		switch {
		case ev.Down && !ev.Repeat:
			kr.held = ev
			kr.holding = true
			kr.delaying = true
			kr.timer.Start(kr.Delay)
		case !ev.Down && kr.holding && ev.same(kr.held):
			kr.Reset()
		}
	}
}

// Update advances the repeat clock by dt and appends due repeats to dst.
func (kr *KeyRepeater) Update(dt float64, dst []KeyEvent) []KeyEvent {
	if !kr.holding {
		return dst
	}
	kr.timer.Update(dt)
	n := kr.timer.Check(TimerContinue)
	if n == 0 {
		return dst
	}
	if kr.delaying {
		kr.delaying = false
		left := kr.timer.Elapsed()
		kr.timer.Start(kr.Interval)
		kr.timer.Update(left)
		n = 1 + kr.timer.Check(TimerContinue)
	}
	rep := kr.held
	rep.Repeat = true
	for range n {
		dst = append(dst, rep)
	}
	return dst
}

// Reset forgets the held key.
func (kr *KeyRepeater) Reset() {
	kr.holding = false
	kr.delaying = false
	kr.timer.Stop()
}
