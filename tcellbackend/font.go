package tcellbackend

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// CellFont measures text in terminal cells. It implements trellis.Font.
type CellFont struct{}

// Width returns the cell width of the widest line of s.
func (CellFont) Width(s string) float64 {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, runewidth.StringWidth(line))
	}
	return float64(w)
}

// Height returns 1: one row per line.
func (CellFont) Height() float64 {
	return 1
}
