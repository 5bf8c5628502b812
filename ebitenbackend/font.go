package ebitenbackend

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering. It
// implements trellis.Font.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("ebitenbackend: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// Width returns the advance of the widest line of s.
func (f *TTFFont) Width(s string) float64 {
	w, _ := text.Measure(s, f.face, f.lh)
	return w
}

// Height returns the line height.
func (f *TTFFont) Height() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// Debug glyph cell of ebitenutil.DebugPrint.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

// DebugFont measures text drawn with ebitenutil.DebugPrintAt. The renderer
// falls back to it for any font it cannot draw.
type DebugFont struct{}

// Width implements trellis.Font.
func (DebugFont) Width(s string) float64 {
	var w int
	for _, line := range strings.Split(s, "\n") {
		w = max(w, len([]rune(line)))
	}
	return float64(w * debugGlyphW)
}

// Height implements trellis.Font.
func (DebugFont) Height() float64 {
	return debugGlyphH
}
