package ebitenbackend

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/trellis"
)

func TestBlend(t *testing.T) {
	modes := []struct {
		mode   trellis.BlendMode
		name   string
		expect ebiten.Blend
	}{
		{trellis.BlendNormal, "BlendNormal", ebiten.BlendSourceOver},
		{trellis.BlendAdd, "BlendAdd", ebiten.BlendLighter},
		{trellis.BlendErase, "BlendErase", ebiten.BlendDestinationOut},
		{trellis.BlendNone, "BlendNone", ebiten.BlendCopy},
	}
	for _, tt := range modes {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blend(tt.mode); got != tt.expect {
				t.Errorf("Blend(%s) = %v, want %v", tt.name, got, tt.expect)
			}
		})
	}

	zero := ebiten.Blend{}
	for _, m := range []trellis.BlendMode{trellis.BlendMultiply, trellis.BlendScreen} {
		if Blend(m) == zero {
			t.Errorf("Blend(%d) returned zero blend", m)
		}
	}
}

func TestLoadTTFFontInvalidData(t *testing.T) {
	if _, err := LoadTTFFont([]byte("not a TTF file"), 16); err == nil {
		t.Error("expected error for invalid TTF data, got nil")
	}
}

func TestDebugFont(t *testing.T) {
	var f DebugFont
	if got := f.Width("ab\nabcd"); got != 4*debugGlyphW {
		t.Errorf("Width = %v", got)
	}
	if f.Height() != debugGlyphH {
		t.Errorf("Height = %v", f.Height())
	}
}

func TestKeyMapCoversNavigation(t *testing.T) {
	want := map[trellis.Key]bool{}
	for _, k := range keyMap {
		want[k] = true
	}
	for _, k := range []trellis.Key{trellis.KeyTab, trellis.KeyEnter, trellis.KeyEscape, trellis.KeyLeft, trellis.KeyRight} {
		if !want[k] {
			t.Errorf("%v has no ebiten key", k)
		}
	}
}
