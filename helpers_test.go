package trellis

import (
	"image"
	"testing"
)

// pointerSlots are every slot IssueEvents and Clear send.
var pointerSlots = []Slot{
	SlotEnter, SlotLeave, SlotGrab, SlotDrop, SlotAbandon,
	SlotEnterChoose, SlotLeaveChoose, SlotEnterUpkeep, SlotLeaveUpkeep,
}

// recorder collects "name:slot" entries from recording handlers.
type recorder struct {
	log []string
}

func (r *recorder) reset() { r.log = nil }

// handler returns a handler that records its slot under name.
func (r *recorder) handler(name string) Handler {
	return func(_ *Widget, ev *Event) any {
		r.log = append(r.log, name+":"+string(ev.Slot))
		return nil
	}
}

// table returns a table recording every given slot under name.
func (r *recorder) table(name string, slots ...Slot) SignalTable {
	t := SignalTable{}
	for _, s := range slots {
		t[s] = r.handler(name)
	}
	return t
}

// newBox creates a hit-testable widget recording every pointer slot.
func newBox(g *Group, rec *recorder, name string) *Widget {
	w := g.NewWidget(StockRect().Merge(rec.table(name, pointerSlots...)))
	w.Name = name
	return w
}

// expectPanic fails the test unless fn panics.
func expectPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for %s, got none", what)
		}
	}()
	fn()
}

// drawCall is one recorded Renderer call.
type drawCall struct {
	Op    string
	Rect  Rect
	Text  string
	State GraphicState
}

// recordingRenderer implements Renderer by logging calls.
type recordingRenderer struct {
	calls []drawCall
	clips []Rect
	clip  bool
}

func (r *recordingRenderer) FillRect(rect Rect, st GraphicState) {
	r.calls = append(r.calls, drawCall{Op: "fill", Rect: rect, State: st})
}

func (r *recordingRenderer) StrokeRect(rect Rect, _ float64, st GraphicState) {
	r.calls = append(r.calls, drawCall{Op: "stroke", Rect: rect, State: st})
}

func (r *recordingRenderer) DrawImage(_ image.Image, _ image.Rectangle, dst Rect, _ Flip, st GraphicState) {
	r.calls = append(r.calls, drawCall{Op: "image", Rect: dst, State: st})
}

func (r *recordingRenderer) DrawText(s string, x, y float64, _ Font, st GraphicState) {
	r.calls = append(r.calls, drawCall{Op: "text", Rect: Rect{X: x, Y: y}, Text: s, State: st})
}

func (r *recordingRenderer) SetClip(rect Rect, active bool) {
	r.clip = active
	if active {
		r.clips = append(r.clips, rect)
	}
}

// monoFont is one unit per rune and one unit high.
type monoFont struct{}

func (monoFont) Width(s string) float64 { return float64(len([]rune(s))) }
func (monoFont) Height() float64        { return 1 }

// named creates a detached widget with a name.
func named(g *Group, name string) *Widget {
	w := g.NewWidget(nil)
	w.Name = name
	return w
}

// names returns the names of ws.
func names(ws []*Widget) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Name
	}
	return out
}
