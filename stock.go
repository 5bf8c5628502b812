package trellis

// Stock signal tables. Combine them with SignalTable.Merge and pass the
// result to Group.NewWidget.

// Color names read by the stock tables.
const (
	ColorFill   = "fill"
	ColorBorder = "border"
	ColorText   = "text"
	ColorTint   = "tint"
)

// PictureMain is the picture name drawn by StockPicture.
const PictureMain = "main"

// hitTest returns w when the cursor is inside its rect and the clip region.
func hitTest(w *Widget, ev *Event) any {
	st := ev.State
	if ev.Rect.Contains(st.CursorX, st.CursorY) && st.InClip(st.CursorX, st.CursorY) {
		return w
	}
	return nil
}

// StockRect hit-tests the widget's rect and renders it filled with the
// "fill" color and outlined with the "border" color, when bound.
func StockRect() SignalTable {
	return SignalTable{
		SlotTest: hitTest,
		SlotRender: func(w *Widget, ev *Event) any {
			gfx := ev.State.Graphics
			if gfx == nil {
				return nil
			}
			if c, ok := w.Color(ColorFill); ok {
				gfx.With(PolicyRestore, func(gs *GraphicState) { gs.Color = c }, func() {
					gfx.FillRect(ev.Rect)
				})
			}
			if c, ok := w.Color(ColorBorder); ok {
				gfx.With(PolicyRestore, func(gs *GraphicState) { gs.Color = c }, func() {
					gfx.StrokeRect(ev.Rect, 1)
				})
			}
			return nil
		},
	}
}

// StockPicture hit-tests like StockRect and draws the "main" picture
// stretched over the widget, tinted by the "tint" color.
func StockPicture() SignalTable {
	return SignalTable{
		SlotTest: hitTest,
		SlotRender: func(w *Widget, ev *Event) any {
			gfx := ev.State.Graphics
			img := w.Picture(PictureMain)
			if gfx == nil || img == nil {
				return nil
			}
			tint, ok := w.Color(ColorTint)
			if !ok {
				tint = ColorWhite
			}
			gfx.With(PolicyRestore, func(gs *GraphicState) {
				gs.Color = tint
				gs.ColorMode = ColorModulate
			}, func() {
				gfx.DrawImage(img, ev.Rect, FlipNone)
			})
			return nil
		},
	}
}

// StockLabel draws the widget's text with its font at the top-left of the
// content rect, in the "text" color. It does not hit-test.
func StockLabel() SignalTable {
	return SignalTable{
		SlotRender: func(w *Widget, ev *Event) any {
			gfx := ev.State.Graphics
			f := w.Font()
			s := w.Text()
			if gfx == nil || f == nil || s == "" {
				return nil
			}
			c, ok := w.Color(ColorText)
			if !ok {
				c = ColorWhite
			}
			r := ev.Rect.Inset(w.Border)
			gfx.With(PolicyRestore, func(gs *GraphicState) { gs.Color = c }, func() {
				gfx.DrawText(s, r.X, r.Y, f)
			})
			return nil
		},
	}
}

// StockClipping clips rendering and hit testing of the widget's children to
// its content rect. Enter and leave calls nest, so one table may serve any
// number of widgets.
func StockClipping() SignalTable {
	// pushed records, per nesting level, whether enter pushed a region
	var pushed []bool
	enter := func(w *Widget, ev *Event) any {
		clip := ev.State.Clip
		if clip == nil {
			pushed = append(pushed, false)
			return nil
		}
		clip.PushClip(ev.Rect.Inset(w.Border), true)
		pushed = append(pushed, true)
		return nil
	}
	leave := func(w *Widget, ev *Event) any {
		n := len(pushed) - 1
		if n < 0 {
			return nil
		}
		if pushed[n] {
			ev.State.Clip.PopClip()
		}
		pushed = pushed[:n]
		return nil
	}
	return SignalTable{
		SlotEnterAttachListRender: enter,
		SlotLeaveAttachListRender: leave,
		SlotEnterAttachListTest:   enter,
		SlotLeaveAttachListTest:   leave,
	}
}
