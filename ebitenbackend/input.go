package ebitenbackend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/trellis"
)

var keyMap = map[ebiten.Key]trellis.Key{
	ebiten.KeyTab:         trellis.KeyTab,
	ebiten.KeyEnter:       trellis.KeyEnter,
	ebiten.KeyNumpadEnter: trellis.KeyEnter,
	ebiten.KeyEscape:      trellis.KeyEscape,
	ebiten.KeyBackspace:   trellis.KeyBackspace,
	ebiten.KeyDelete:      trellis.KeyDelete,
	ebiten.KeyArrowLeft:   trellis.KeyLeft,
	ebiten.KeyArrowRight:  trellis.KeyRight,
	ebiten.KeyArrowUp:     trellis.KeyUp,
	ebiten.KeyArrowDown:   trellis.KeyDown,
	ebiten.KeyHome:        trellis.KeyHome,
	ebiten.KeyEnd:         trellis.KeyEnd,
	ebiten.KeyPageUp:      trellis.KeyPageUp,
	ebiten.KeyPageDown:    trellis.KeyPageDown,
	ebiten.KeyInsert:      trellis.KeyInsert,
}

// Input implements trellis.InputSource with Ebitengine's mouse and keyboard
// state. Printable characters arrive as KeyRune press and release pairs.
type Input struct {
	keys  []ebiten.Key
	chars []rune
}

// Cursor implements trellis.InputSource.
func (in *Input) Cursor() (x, y float64) {
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my)
}

// Pressed implements trellis.InputSource.
func (in *Input) Pressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// AppendKeys implements trellis.InputSource.
func (in *Input) AppendKeys(dst []trellis.KeyEvent) []trellis.KeyEvent {
	mods := readModifiers()

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		if tk, ok := keyMap[k]; ok {
			dst = append(dst, trellis.KeyEvent{Key: tk, Mods: mods, Down: true})
		}
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		if tk, ok := keyMap[k]; ok {
			dst = append(dst, trellis.KeyEvent{Key: tk, Mods: mods})
		}
	}

	in.chars = ebiten.AppendInputChars(in.chars[:0])
	for _, r := range in.chars {
		dst = append(dst,
			trellis.KeyEvent{Key: trellis.KeyRune, Rune: r, Mods: mods, Down: true},
			trellis.KeyEvent{Key: trellis.KeyRune, Rune: r, Mods: mods})
	}
	return dst
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() trellis.KeyModifiers {
	var mods trellis.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= trellis.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= trellis.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= trellis.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= trellis.ModMeta
	}
	return mods
}
