package trellis

import (
	"image"
	"math"
)

// Renderer is the drawing surface of a backend. Coordinates are screen
// pixels (or cells) with the origin at the top-left. Every call draws with
// the given state.
type Renderer interface {
	FillRect(r Rect, st GraphicState)
	StrokeRect(r Rect, width float64, st GraphicState)
	// DrawImage draws the src region of img into dst, scaling as needed.
	DrawImage(img image.Image, src image.Rectangle, dst Rect, flip Flip, st GraphicState)
	// DrawText draws s with its top-left corner at (x, y).
	DrawText(s string, x, y float64, f Font, st GraphicState)
	// SetClip restricts drawing to r, or lifts the restriction when active
	// is false.
	SetClip(r Rect, active bool)
}

// GraphicState is the drawing state applied to each Renderer call.
type GraphicState struct {
	Color     Color
	Blend     BlendMode
	ColorMode ColorMode
}

// DefaultGraphicState draws opaque white with normal blending.
var DefaultGraphicState = GraphicState{Color: ColorWhite}

// Policy decides whether a state change made inside Graphics.With survives
// the call.
type Policy uint8

const (
	PolicyRestore Policy = iota // put the previous state back
	PolicyKeep                  // leave the changed state in place
)

// Clipper is a stack of clip regions. Pushing with restrict intersects the
// new rect with the current region; pushing without it replaces the region.
type Clipper interface {
	// PushClip pushes r and reports whether the resulting region is
	// non-empty. The push happens either way and must be popped.
	PushClip(r Rect, restrict bool) bool
	PopClip()
	InClip(x, y float64) bool
}

type clipEntry struct {
	rect  Rect
	empty bool
}

// ClipStack is the standard Clipper. It keeps an optional Renderer informed
// of the current region.
type ClipStack struct {
	r     Renderer
	stack []clipEntry
}

// NewClipStack returns an empty stack reporting to r, which may be nil.
func NewClipStack(r Renderer) *ClipStack {
	return &ClipStack{r: r}
}

// PushClip implements Clipper.
func (cs *ClipStack) PushClip(r Rect, restrict bool) bool {
	e := clipEntry{rect: r, empty: r.Width <= 0 || r.Height <= 0}
	if restrict && len(cs.stack) > 0 {
		top := cs.stack[len(cs.stack)-1]
		if top.empty {
			e = top
		} else {
			var ok bool
			e.rect, ok = top.rect.Intersect(r)
			e.empty = !ok
		}
	}
	cs.stack = append(cs.stack, e)
	cs.notify()
	return !e.empty
}

// PopClip implements Clipper. Panics on an empty stack.
func (cs *ClipStack) PopClip() {
	if len(cs.stack) == 0 {
		panic("trellis: clip stack underflow")
	}
	cs.stack = cs.stack[:len(cs.stack)-1]
	cs.notify()
}

// InClip implements Clipper. An empty stack contains every point.
func (cs *ClipStack) InClip(x, y float64) bool {
	if len(cs.stack) == 0 {
		return true
	}
	top := cs.stack[len(cs.stack)-1]
	return !top.empty && top.rect.Contains(x, y)
}

// Current returns the current region. ok is false when the stack is empty.
func (cs *ClipStack) Current() (r Rect, ok bool) {
	if len(cs.stack) == 0 {
		return Rect{}, false
	}
	return cs.stack[len(cs.stack)-1].rect, true
}

// Depth returns the number of pushed regions.
func (cs *ClipStack) Depth() int {
	return len(cs.stack)
}

func (cs *ClipStack) notify() {
	if cs.r == nil {
		return
	}
	if len(cs.stack) == 0 {
		cs.r.SetClip(Rect{}, false)
		return
	}
	top := cs.stack[len(cs.stack)-1]
	if top.empty {
		// a zero rect still clips, so nothing draws
		cs.r.SetClip(Rect{}, true)
		return
	}
	cs.r.SetClip(top.rect, true)
}

// Graphics is handed to render handlers. It couples a Renderer with the
// current GraphicState and the clip stack.
type Graphics struct {
	ClipStack
	State GraphicState
}

// NewGraphics wraps r with the default state.
func NewGraphics(r Renderer) *Graphics {
	return &Graphics{ClipStack: ClipStack{r: r}, State: DefaultGraphicState}
}

// Renderer returns the wrapped renderer.
func (g *Graphics) Renderer() Renderer {
	return g.r
}

// With applies change to the state, runs draw, and then either restores the
// previous state or keeps the change according to policy. change and draw
// may be nil.
func (g *Graphics) With(policy Policy, change func(st *GraphicState), draw func()) {
	saved := g.State
	if policy == PolicyRestore {
		defer func() { g.State = saved }()
	}
	if change != nil {
		change(&g.State)
	}
	if draw != nil {
		draw()
	}
}

// SetColor sets the current color.
func (g *Graphics) SetColor(c Color) { g.State.Color = c }

// SetBlend sets the current blend mode.
func (g *Graphics) SetBlend(b BlendMode) { g.State.Blend = b }

// SetColorMode sets the current color mode.
func (g *Graphics) SetColorMode(m ColorMode) { g.State.ColorMode = m }

// FillRect fills r with the current color.
func (g *Graphics) FillRect(r Rect) {
	g.r.FillRect(r, g.State)
}

// StrokeRect outlines r.
func (g *Graphics) StrokeRect(r Rect, width float64) {
	g.r.StrokeRect(r, width, g.State)
}

// DrawImage draws all of img into dst.
func (g *Graphics) DrawImage(img image.Image, dst Rect, flip Flip) {
	g.r.DrawImage(img, img.Bounds(), dst, flip, g.State)
}

// DrawSubImage draws the src region of img into dst.
func (g *Graphics) DrawSubImage(img image.Image, src image.Rectangle, dst Rect, flip Flip) {
	g.r.DrawImage(img, src, dst, flip, g.State)
}

// DrawText draws s with its top-left corner at (x, y).
func (g *Graphics) DrawText(s string, x, y float64, f Font) {
	g.r.DrawText(s, x, y, f, g.State)
}

// PixelRect rounds r outward to whole pixels.
func PixelRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}
