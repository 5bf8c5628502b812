package tcellbackend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/trellis"
)

var keyMap = map[tcell.Key]trellis.Key{
	tcell.KeyTab:        trellis.KeyTab,
	tcell.KeyEnter:      trellis.KeyEnter,
	tcell.KeyEscape:     trellis.KeyEscape,
	tcell.KeyBackspace:  trellis.KeyBackspace,
	tcell.KeyBackspace2: trellis.KeyBackspace,
	tcell.KeyDelete:     trellis.KeyDelete,
	tcell.KeyLeft:       trellis.KeyLeft,
	tcell.KeyRight:      trellis.KeyRight,
	tcell.KeyUp:         trellis.KeyUp,
	tcell.KeyDown:       trellis.KeyDown,
	tcell.KeyHome:       trellis.KeyHome,
	tcell.KeyEnd:        trellis.KeyEnd,
	tcell.KeyPgUp:       trellis.KeyPageUp,
	tcell.KeyPgDn:       trellis.KeyPageDown,
	tcell.KeyInsert:     trellis.KeyInsert,
}

// Input implements trellis.InputSource from tcell events fed to
// HandleEvent. Terminals report no key releases, so each key press yields a
// press and release pair.
type Input struct {
	x, y    float64
	pressed bool
	keys    []trellis.KeyEvent
}

// HandleEvent records ev and reports whether it was an input event.
func (in *Input) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		in.x, in.y = float64(x), float64(y)
		in.pressed = ev.Buttons()&tcell.Button1 != 0
		return true
	case *tcell.EventKey:
		kev, ok := translateKey(ev)
		if !ok {
			return true
		}
		release := kev
		release.Down = false
		in.keys = append(in.keys, kev, release)
		return true
	}
	return false
}

func translateKey(ev *tcell.EventKey) (trellis.KeyEvent, bool) {
	mods := translateMods(ev.Modifiers())
	switch k := ev.Key(); k {
	case tcell.KeyRune:
		return trellis.KeyEvent{Key: trellis.KeyRune, Rune: ev.Rune(), Mods: mods, Down: true}, true
	case tcell.KeyBacktab:
		return trellis.KeyEvent{Key: trellis.KeyTab, Mods: mods | trellis.ModShift, Down: true}, true
	default:
		tk, ok := keyMap[k]
		if !ok {
			return trellis.KeyEvent{}, false
		}
		return trellis.KeyEvent{Key: tk, Mods: mods, Down: true}, true
	}
}

func translateMods(m tcell.ModMask) trellis.KeyModifiers {
	var mods trellis.KeyModifiers
	if m&tcell.ModShift != 0 {
		mods |= trellis.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= trellis.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= trellis.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= trellis.ModMeta
	}
	return mods
}

// Cursor implements trellis.InputSource.
func (in *Input) Cursor() (x, y float64) {
	return in.x, in.y
}

// Pressed implements trellis.InputSource.
func (in *Input) Pressed() bool {
	return in.pressed
}

// AppendKeys implements trellis.InputSource.
func (in *Input) AppendKeys(dst []trellis.KeyEvent) []trellis.KeyEvent {
	dst = append(dst, in.keys...)
	in.keys = in.keys[:0]
	return dst
}
