package tcellbackend

import (
	"image"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/phanxgames/trellis"
)

// Renderer implements trellis.Renderer on a tcell.Screen. One unit is one
// cell. Colors are drawn opaque; a color with zero alpha draws nothing and
// BlendErase resets cells to the base style.
type Renderer struct {
	screen tcell.Screen
	base   tcell.Style

	clip     image.Rectangle
	clipping bool
}

// NewRenderer returns a renderer drawing to screen over base.
func NewRenderer(screen tcell.Screen, base tcell.Style) *Renderer {
	return &Renderer{screen: screen, base: base}
}

// Screen returns the target screen.
func (r *Renderer) Screen() tcell.Screen {
	return r.screen
}

// bounds returns the drawable cells: the screen, narrowed by the clip.
func (r *Renderer) bounds() image.Rectangle {
	w, h := r.screen.Size()
	b := image.Rect(0, 0, w, h)
	if r.clipping {
		b = b.Intersect(r.clip)
	}
	return b
}

func tcellColor(c trellis.Color) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int32 {
	return int32(max(0, min(1, v))*255 + 0.5)
}

// cellStyle returns the current style of the cell at (x, y).
func (r *Renderer) cellStyle(x, y int) tcell.Style {
	_, _, style, _ := r.screen.GetContent(x, y)
	return style
}

// FillRect implements trellis.Renderer by painting cell backgrounds.
func (r *Renderer) FillRect(rect trellis.Rect, st trellis.GraphicState) {
	if st.Color.A <= 0 && st.Blend != trellis.BlendErase {
		return
	}
	area := trellis.PixelRect(rect).Intersect(r.bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			style := r.base
			if st.Blend != trellis.BlendErase {
				style = style.Background(tcellColor(st.Color))
			}
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// StrokeRect implements trellis.Renderer with box-drawing characters. The
// width is ignored; outlines are always one cell.
func (r *Renderer) StrokeRect(rect trellis.Rect, _ float64, st trellis.GraphicState) {
	if st.Color.A <= 0 {
		return
	}
	box := trellis.PixelRect(rect)
	if box.Dx() < 2 || box.Dy() < 2 {
		return
	}
	fg := tcellColor(st.Color)
	x0, y0, x1, y1 := box.Min.X, box.Min.Y, box.Max.X-1, box.Max.Y-1
	for x := x0 + 1; x < x1; x++ {
		r.put(x, y0, tcell.RuneHLine, fg)
		r.put(x, y1, tcell.RuneHLine, fg)
	}
	for y := y0 + 1; y < y1; y++ {
		r.put(x0, y, tcell.RuneVLine, fg)
		r.put(x1, y, tcell.RuneVLine, fg)
	}
	r.put(x0, y0, tcell.RuneULCorner, fg)
	r.put(x1, y0, tcell.RuneURCorner, fg)
	r.put(x0, y1, tcell.RuneLLCorner, fg)
	r.put(x1, y1, tcell.RuneLRCorner, fg)
}

// put draws ch in fg, keeping the cell's background.
func (r *Renderer) put(x, y int, ch rune, fg tcell.Color) {
	if !(image.Point{X: x, Y: y}).In(r.bounds()) {
		return
	}
	r.screen.SetContent(x, y, ch, nil, r.cellStyle(x, y).Foreground(fg))
}

// DrawImage implements trellis.Renderer by sampling one pixel per cell into
// the cell background. Fully transparent pixels leave the cell alone.
func (r *Renderer) DrawImage(img image.Image, src image.Rectangle, dst trellis.Rect, flip trellis.Flip, st trellis.GraphicState) {
	if src.Empty() || dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	area := trellis.PixelRect(dst).Intersect(r.bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		v := (float64(y) + 0.5 - dst.Y) / dst.Height
		if flip&trellis.FlipY != 0 {
			v = 1 - v
		}
		sy := src.Min.Y + min(src.Dy()-1, max(0, int(v*float64(src.Dy()))))
		for x := area.Min.X; x < area.Max.X; x++ {
			u := (float64(x) + 0.5 - dst.X) / dst.Width
			if flip&trellis.FlipX != 0 {
				u = 1 - u
			}
			sx := src.Min.X + min(src.Dx()-1, max(0, int(u*float64(src.Dx()))))

			pr, pg, pb, pa := img.At(sx, sy).RGBA()
			if pa == 0 {
				continue
			}
			// un-premultiply
			c := trellis.Color{
				R: float64(pr) / float64(pa),
				G: float64(pg) / float64(pa),
				B: float64(pb) / float64(pa),
				A: float64(pa) / 0xffff,
			}
			switch st.ColorMode {
			case trellis.ColorModulate:
				c = c.Mul(st.Color)
			case trellis.ColorCombine:
				c = trellis.Color{R: c.R + st.Color.R, G: c.G + st.Color.G, B: c.B + st.Color.B, A: c.A * st.Color.A}
			}
			if c.A <= 0 {
				continue
			}
			r.screen.SetContent(x, y, ' ', nil, r.base.Background(tcellColor(c)))
		}
	}
}

// DrawText implements trellis.Renderer. Each grapheme cluster occupies as
// many cells as runewidth reports; newlines start a new row at x. Cell
// backgrounds are kept.
func (r *Renderer) DrawText(s string, x, y float64, _ trellis.Font, st trellis.GraphicState) {
	if st.Color.A <= 0 {
		return
	}
	fg := tcellColor(st.Color)
	b := r.bounds()
	row := int(y)
	for _, line := range strings.Split(s, "\n") {
		col := int(x)
		g := uniseg.NewGraphemes(line)
		for g.Next() {
			runes := g.Runes()
			w := runewidth.StringWidth(g.Str())
			if w == 0 {
				continue
			}
			p := image.Point{X: col, Y: row}
			if p.In(b) && (image.Point{X: col + w - 1, Y: row}).In(b) {
				r.screen.SetContent(col, row, runes[0], runes[1:], r.cellStyle(col, row).Foreground(fg))
			}
			col += w
		}
		row++
	}
}

// SetClip implements trellis.Renderer.
func (r *Renderer) SetClip(rect trellis.Rect, active bool) {
	r.clipping = active
	r.clip = trellis.PixelRect(rect)
}
