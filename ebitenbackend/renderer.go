package ebitenbackend

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/trellis"
)

// whitePixel is a 1x1 white image used for solid color fills.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// Renderer implements trellis.Renderer on an ebiten.Image. Call Begin with
// the target at the start of every frame.
type Renderer struct {
	target *ebiten.Image
	dst    *ebiten.Image // target, or its clipped sub-image

	// uploaded copies of non-ebiten pictures
	cache map[image.Image]*ebiten.Image
}

// NewRenderer returns a renderer with an empty picture cache.
func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[image.Image]*ebiten.Image)}
}

// Begin targets screen and lifts any clip.
func (r *Renderer) Begin(screen *ebiten.Image) {
	r.target = screen
	r.dst = screen
}

// Forget drops the uploaded copy of img, e.g. after its pixels changed.
func (r *Renderer) Forget(img image.Image) {
	if e, ok := r.cache[img]; ok {
		e.Deallocate()
		delete(r.cache, img)
	}
}

// FillRect implements trellis.Renderer.
func (r *Renderer) FillRect(rect trellis.Rect, st trellis.GraphicState) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(rect.Width, rect.Height)
	op.GeoM.Translate(rect.X, rect.Y)
	op.ColorScale.ScaleWithColor(st.Color.ToRGBA())
	op.Blend = Blend(st.Blend)
	r.dst.DrawImage(whitePixel, op)
}

// StrokeRect implements trellis.Renderer. Strokes always blend normally.
func (r *Renderer) StrokeRect(rect trellis.Rect, width float64, st trellis.GraphicState) {
	vector.StrokeRect(r.dst,
		float32(rect.X+width/2), float32(rect.Y+width/2),
		float32(rect.Width-width), float32(rect.Height-width),
		float32(width), st.Color.ToRGBA(), false)
}

// DrawImage implements trellis.Renderer.
func (r *Renderer) DrawImage(img image.Image, src image.Rectangle, dst trellis.Rect, flip trellis.Flip, st trellis.GraphicState) {
	if src.Empty() {
		return
	}
	sub := r.upload(img).SubImage(src).(*ebiten.Image)

	var geo ebiten.GeoM
	sx := dst.Width / float64(src.Dx())
	sy := dst.Height / float64(src.Dy())
	geo.Scale(sx, sy)
	if flip&trellis.FlipX != 0 {
		geo.Scale(-1, 1)
		geo.Translate(dst.Width, 0)
	}
	if flip&trellis.FlipY != 0 {
		geo.Scale(1, -1)
		geo.Translate(0, dst.Height)
	}
	geo.Translate(dst.X, dst.Y)

	c := st.Color
	switch st.ColorMode {
	case trellis.ColorCombine:
		var cm colorm.ColorM
		cm.Translate(c.R, c.G, c.B, 0)
		cm.Scale(1, 1, 1, c.A)
		colorm.DrawImage(r.dst, sub, cm, &colorm.DrawImageOptions{GeoM: geo, Blend: Blend(st.Blend)})
	case trellis.ColorReplace:
		op := &ebiten.DrawImageOptions{GeoM: geo, Blend: Blend(st.Blend)}
		r.dst.DrawImage(sub, op)
	default:
		op := &ebiten.DrawImageOptions{GeoM: geo, Blend: Blend(st.Blend)}
		op.ColorScale.ScaleWithColor(c.ToRGBA())
		r.dst.DrawImage(sub, op)
	}
}

func (r *Renderer) upload(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	e, ok := r.cache[img]
	if !ok {
		e = ebiten.NewImageFromImage(img)
		r.cache[img] = e
	}
	return e
}

// DrawText implements trellis.Renderer. Fonts other than *TTFFont are drawn
// with the debug font, which ignores the color.
func (r *Renderer) DrawText(s string, x, y float64, f trellis.Font, st trellis.GraphicState) {
	ttf, ok := f.(*TTFFont)
	if !ok {
		ebitenutil.DebugPrintAt(r.dst, s, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(st.Color.ToRGBA())
	op.LineSpacing = ttf.lh
	op.Blend = Blend(st.Blend)
	text.Draw(r.dst, s, ttf.face, op)
}

// SetClip implements trellis.Renderer.
func (r *Renderer) SetClip(rect trellis.Rect, active bool) {
	if !active {
		r.dst = r.target
		return
	}
	b := trellis.PixelRect(rect).Intersect(r.target.Bounds())
	r.dst = r.target.SubImage(b).(*ebiten.Image)
}
