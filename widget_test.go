package trellis

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// --- Attach / Detach ---

func TestAttachSignals(t *testing.T) {
	g := NewGroup()
	var log []string
	tree := func(name string) SignalTable {
		tbl := SignalTable{}
		for _, s := range []Slot{SlotAttach, SlotAttachedTo, SlotDetach, SlotDetachedFrom} {
			tbl[s] = func(_ *Widget, ev *Event) any {
				log = append(log, name+":"+string(ev.Slot)+":"+ev.Other.Name)
				return nil
			}
		}
		return tbl
	}
	p1 := g.NewWidget(tree("p1"))
	p1.Name = "p1"
	p2 := g.NewWidget(tree("p2"))
	p2.Name = "p2"
	c := g.NewWidget(tree("c"))
	c.Name = "c"

	p1.Attach(c, 1, 2, 3, 4)
	want := []string{"c:attach:p1", "p1:attached_to:c"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("attach (-want +got):\n%s", diff)
	}

	log = nil
	p2.Attach(c, 0, 0, 1, 1)
	want = []string{"c:detach:p1", "p1:detached_from:c", "c:attach:p2", "p2:attached_to:c"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("reparent (-want +got):\n%s", diff)
	}
	if p1.NumChildren() != 0 || p2.NumChildren() != 1 || c.Parent() != p2 {
		t.Errorf("tree after reparent: p1=%d p2=%d parent=%s", p1.NumChildren(), p2.NumChildren(), widgetName(c.Parent()))
	}

	log = nil
	c.Detach()
	want = []string{"c:detach:p2", "p2:detached_from:c"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("detach (-want +got):\n%s", diff)
	}
	if c.IsAttached() {
		t.Error("child still attached")
	}

	log = nil
	c.Detach()
	if len(log) != 0 {
		t.Errorf("second Detach sent %v", log)
	}
}

func TestReattachSameParentUpdatesRectOnly(t *testing.T) {
	g := NewGroup()
	var rec recorder
	p := g.NewWidget(rec.table("p", SlotAttachedTo, SlotDetachedFrom))
	a := g.NewWidget(rec.table("a", SlotAttach, SlotDetach))
	b := g.NewWidget(nil)
	p.Attach(a, 0, 0, 10, 10)
	p.Attach(b, 0, 0, 10, 10)

	rec.reset()
	p.Attach(a, 5, 6, 7, 8)
	if len(rec.log) != 0 {
		t.Errorf("reattach sent %v", rec.log)
	}
	if got, want := a.Rect(false), (Rect{X: 5, Y: 6, Width: 7, Height: 8}); got != want {
		t.Errorf("rect = %v, want %v", got, want)
	}
	// order is unchanged: b stays in front
	if p.Front() != b || p.Back() != a {
		t.Error("reattach changed the attach list order")
	}
}

func TestAttachGoesToFront(t *testing.T) {
	g := NewGroup()
	p := g.NewWidget(nil)
	a, b, c := named(g, "a"), named(g, "b"), named(g, "c")
	p.Attach(a, 0, 0, 1, 1)
	p.Attach(b, 0, 0, 1, 1)
	p.Attach(c, 0, 0, 1, 1)

	if diff := cmp.Diff([]string{"c", "b", "a"}, names(p.Children())); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}
	if b.InFront() != c || b.Behind() != a {
		t.Error("sibling links wrong")
	}

	b.Detach()
	if diff := cmp.Diff([]string{"c", "a"}, names(p.Children())); diff != "" {
		t.Errorf("children after detach (-want +got):\n%s", diff)
	}
	if c.Behind() != a || a.InFront() != c {
		t.Error("sibling links not repaired")
	}
}

func TestAttachPanics(t *testing.T) {
	g := NewGroup()
	other := NewGroup()
	a := g.NewWidget(nil)
	b := g.NewWidget(nil)
	g.Root().Attach(a, 0, 0, 1, 1)
	a.Attach(b, 0, 0, 1, 1)

	cases := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { a.Attach(nil, 0, 0, 1, 1) }},
		{"self", func() { a.Attach(a, 0, 0, 1, 1) }},
		{"root", func() { a.Attach(g.Root(), 0, 0, 1, 1) }},
		{"ancestor", func() { b.Attach(a, 0, 0, 1, 1) }},
		{"root as ancestor", func() { b.Attach(g.Root(), 0, 0, 1, 1) }},
		{"other group", func() { a.Attach(other.NewWidget(nil), 0, 0, 1, 1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectPanic(t, tc.name, tc.fn)
		})
	}
	if b.Parent() != a || a.Parent() != g.Root() {
		t.Error("failed attach modified the tree")
	}
}

func TestPromote(t *testing.T) {
	g := NewGroup()
	a, b, c := named(g, "a"), named(g, "b"), named(g, "c")
	g.Root().Attach(a, 0, 0, 1, 1)
	g.Root().Attach(b, 0, 0, 1, 1)
	g.Root().Attach(c, 0, 0, 1, 1)

	a.Promote()
	if diff := cmp.Diff([]string{"a", "c", "b"}, names(g.Root().Children())); diff != "" {
		t.Errorf("after promote (-want +got):\n%s", diff)
	}
	a.Promote()
	if g.Root().Front() != a || g.Root().NumChildren() != 3 {
		t.Error("promoting the front child changed the list")
	}

	g.NewWidget(nil).Promote() // detached: no-op
}

func TestPromoteChangesHitOrder(t *testing.T) {
	g := NewGroup()
	var rec recorder
	a := newBox(g, &rec, "a")
	b := newBox(g, &rec, "b")
	g.Root().Attach(a, 0, 0, 10, 10)
	g.Root().Attach(b, 0, 0, 10, 10)

	if got := g.Execute(5, 5, false, nil, nil); got != b {
		t.Fatalf("candidate = %s, want b", widgetName(got))
	}
	g.Clear()
	a.Promote()
	if got := g.Execute(5, 5, false, nil, nil); got != a {
		t.Errorf("candidate = %s, want a", widgetName(got))
	}
}

// --- Geometry ---

func TestRectAbsolute(t *testing.T) {
	g := NewGroup()
	parent := g.NewWidget(nil)
	parent.ViewX, parent.ViewY = 5, 0
	child := g.NewWidget(nil)
	g.Root().Attach(parent, 10, 10, 100, 100)
	parent.Attach(child, 20, 30, 40, 50)

	if got, want := child.Rect(false), (Rect{X: 20, Y: 30, Width: 40, Height: 50}); got != want {
		t.Errorf("local = %v, want %v", got, want)
	}
	if got, want := child.Rect(true), (Rect{X: 25, Y: 40, Width: 40, Height: 50}); got != want {
		t.Errorf("absolute = %v, want %v", got, want)
	}

	child.Border = Margins{Left: 1, Top: 2, Right: 3, Bottom: 4}
	if got, want := child.ContentRect(true), (Rect{X: 26, Y: 42, Width: 36, Height: 44}); got != want {
		t.Errorf("content = %v, want %v", got, want)
	}
}

func TestRenderRectMatchesAbsoluteRect(t *testing.T) {
	g := NewGroup()
	parent := g.NewWidget(nil)
	parent.ViewX, parent.ViewY = 3, 4
	var got Rect
	child := g.NewWidget(SignalTable{SlotRender: func(_ *Widget, ev *Event) any {
		got = ev.Rect
		return nil
	}})
	g.Root().Attach(parent, 10, 10, 100, 100)
	parent.Attach(child, 1, 1, 5, 5)

	g.Render(nil)
	if got != child.Rect(true) {
		t.Errorf("render rect = %v, want %v", got, child.Rect(true))
	}
}

// --- Permissions ---

func TestPermissions(t *testing.T) {
	g := NewGroup()
	w := g.NewWidget(nil)
	if !w.Can(PermAll) {
		t.Error("new widget lacks permissions")
	}
	w.Deny(PermRender | PermTest)
	if w.Can(PermRender) || w.Can(PermTest) || !w.Can(PermUpdate) {
		t.Errorf("perms = %b after deny", w.Permissions())
	}
	w.Allow(PermTest)
	if !w.Can(PermTest) {
		t.Error("allow did not restore test")
	}
	w.SetPermissions(PermNone)
	if w.Permissions() != PermNone {
		t.Error("SetPermissions(PermNone) kept bits")
	}
	if g.Root().Can(PermTest) {
		t.Error("root is testable")
	}
}

// --- Signals and resources ---

func TestSignalReturnsHandlerResult(t *testing.T) {
	g := NewGroup()
	w := g.NewWidget(SignalTable{"sum": func(_ *Widget, ev *Event) any {
		return ev.Arg(0).(int) + ev.Arg(1).(int)
	}})
	if got := w.Signal("sum", 2, 3); got != 5 {
		t.Errorf("Signal = %v, want 5", got)
	}
	if got := w.Signal("missing"); got != nil {
		t.Errorf("missing slot = %v, want nil", got)
	}

	ev := &Event{Args: []any{1}}
	if ev.Arg(1) != nil || ev.Arg(-1) != nil {
		t.Error("out-of-range Arg not nil")
	}
}

func TestNewWidgetCopiesTable(t *testing.T) {
	g := NewGroup()
	table := StockRect()
	a := g.NewWidget(table)
	b := g.NewWidget(table)
	a.SetHandler(SlotTest, nil)
	if a.Handler(SlotTest) != nil {
		t.Error("SetHandler(nil) kept the handler")
	}
	if b.Handler(SlotTest) == nil || table[SlotTest] == nil {
		t.Error("removing a handler affected the shared table")
	}
}

func TestMergeOverrides(t *testing.T) {
	base := SignalTable{SlotRender: func(*Widget, *Event) any { return "base" }, SlotTest: hitTest}
	merged := base.Merge(SignalTable{SlotRender: func(*Widget, *Event) any { return "over" }})
	if got := merged[SlotRender](nil, nil); got != "over" {
		t.Errorf("merged render = %v", got)
	}
	if merged[SlotTest] == nil {
		t.Error("merge dropped test")
	}
	if got := base[SlotRender](nil, nil); got != "base" {
		t.Error("merge modified the receiver")
	}
}

func TestResourceResolution(t *testing.T) {
	g := NewGroup()
	w := g.NewWidget(nil)

	if _, ok := w.Color(ColorFill); ok {
		t.Error("unbound color resolved")
	}
	red := Color{R: 1, A: 1}
	w.SetColor(ColorFill, red)
	if c, ok := w.Color(ColorFill); !ok || c != red {
		t.Errorf("color = %v, %v", c, ok)
	}
	n := 0
	w.SetColorFunc(ColorBorder, func() Color { n++; return Color{A: float64(n)} })
	w.Color(ColorBorder)
	if c, _ := w.Color(ColorBorder); c.A != 2 {
		t.Errorf("color func evaluated %v times, want per lookup", c.A)
	}
	w.SetColorFunc(ColorBorder, nil)
	if _, ok := w.Color(ColorBorder); ok {
		t.Error("cleared color func still resolves")
	}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	w.SetPicture(PictureMain, img)
	if w.Picture(PictureMain) != img {
		t.Error("picture not resolved")
	}
	w.SetPictureFunc(PictureMain, func() image.Image { return nil })
	if w.Picture(PictureMain) != nil {
		t.Error("picture func result not used")
	}
	w.SetPicture(PictureMain, nil)
	if w.Picture("nope") != nil || w.Picture(PictureMain) != nil {
		t.Error("unbound picture resolved")
	}

	w.SetText("hello")
	if w.Text() != "hello" {
		t.Errorf("text = %q", w.Text())
	}
	w.SetTextFunc(func() string { return "dynamic" })
	if w.Text() != "dynamic" {
		t.Errorf("text func = %q", w.Text())
	}
	w.SetTextFunc(nil)
	if w.Text() != "" {
		t.Errorf("cleared text = %q", w.Text())
	}

	w.SetFont(monoFont{})
	if w.Font() == nil {
		t.Error("font not set")
	}
}

func TestWalk(t *testing.T) {
	g := NewGroup()
	a, b, c := named(g, "a"), named(g, "b"), named(g, "c")
	g.Root().Attach(a, 0, 0, 1, 1)
	g.Root().Attach(b, 0, 0, 1, 1)
	a.Attach(c, 0, 0, 1, 1)

	var visited []string
	g.Root().Walk(func(w *Widget) bool {
		visited = append(visited, w.Name)
		return true
	})
	if diff := cmp.Diff([]string{"root", "b", "a", "c"}, visited); diff != "" {
		t.Errorf("walk (-want +got):\n%s", diff)
	}

	visited = nil
	g.Root().Walk(func(w *Widget) bool {
		visited = append(visited, w.Name)
		return w != a
	})
	if diff := cmp.Diff([]string{"root", "b", "a"}, visited); diff != "" {
		t.Errorf("pruned walk (-want +got):\n%s", diff)
	}
}
