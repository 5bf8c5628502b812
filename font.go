package trellis

import (
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Font measures text for layout. Backends provide fonts they can also draw.
type Font interface {
	// Width returns the advance of s in pixels.
	Width(s string) float64
	// Height returns the height of one line without spacing.
	Height() float64
}

// TextMetrics adds line spacing and position lookups to a Font.
type TextMetrics struct {
	Font        Font
	LineSpacing float64 // multiplier on Font.Height; 0 means 1
}

// LineHeight returns the distance between consecutive baselines.
func (m TextMetrics) LineHeight() float64 {
	ls := m.LineSpacing
	if ls == 0 {
		ls = 1
	}
	return m.Font.Height() * ls
}

// Height returns the height of n lines.
func (m TextMetrics) Height(lines int) float64 {
	if lines <= 0 {
		return 0
	}
	return m.Font.Height() + float64(lines-1)*m.LineHeight()
}

// Width returns the width of the widest line of s.
func (m TextMetrics) Width(s string) float64 {
	var w float64
	for _, line := range strings.Split(s, "\n") {
		w = max(w, m.Font.Width(line))
	}
	return w
}

// IndexAt returns the grapheme cluster boundary of s closest to x pixels from
// its start, in [0, cluster count]. Useful for placing a text cursor under
// the pointer.
func (m TextMetrics) IndexAt(s string, x float64) int {
	cs := splitClusters(s)
	prefix := func(i int) float64 {
		return m.Font.Width(strings.Join(cs[:i], ""))
	}
	// first boundary at or past x
	i := sort.Search(len(cs)+1, func(i int) bool {
		return prefix(i) >= x
	})
	if i == 0 {
		return 0
	}
	if i > len(cs) {
		return len(cs)
	}
	if x-prefix(i-1) < prefix(i)-x {
		return i - 1
	}
	return i
}

// FaceFont adapts a golang.org/x/image font.Face.
type FaceFont struct {
	Face font.Face
}

// Width implements Font.
func (f FaceFont) Width(s string) float64 {
	return fixedToFloat(font.MeasureString(f.Face, s))
}

// Height implements Font.
func (f FaceFont) Height() float64 {
	return fixedToFloat(f.Face.Metrics().Height)
}

// Ascent returns the distance from the top of a line to its baseline.
func (f FaceFont) Ascent() float64 {
	return fixedToFloat(f.Face.Metrics().Ascent)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
