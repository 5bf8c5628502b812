package trellis

import (
	"fmt"
	"time"
)

// Mode is the group's current traversal phase.
type Mode uint8

const (
	ModeNormal        Mode = iota // no traversal running; the tree may change
	ModeRendering                 // inside Render
	ModeTesting                   // inside Execute, hit-testing
	ModeUpdating                  // inside Update
	ModeIssuingEvents             // inside Execute, resolving pointer state
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeRendering:
		return "rendering"
	case ModeTesting:
		return "testing"
	case ModeUpdating:
		return "updating"
	case ModeIssuingEvents:
		return "issuing_events"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// State is shared by every signal of one traversal. Pointer signals sent by
// Group.Clear carry a nil *State.
type State struct {
	Group *Group

	// Pointer input of the current Execute.
	CursorX, CursorY float64
	Pressed          bool

	// Clip region for the current traversal; may be nil.
	Clip Clipper

	// Graphics is set during Render and may be nil for headless rendering.
	Graphics *Graphics

	// DT is set during Update.
	DT float64

	// Candidate is the widget found by the testing phase, set before event
	// resolution starts.
	Candidate *Widget
}

// InClip reports whether (x, y) lies inside the state's clip region. A state
// without a clip region contains every point.
func (st *State) InClip(x, y float64) bool {
	if st == nil || st.Clip == nil {
		return true
	}
	return st.Clip.InClip(x, y)
}

// Resolver turns a testing-phase candidate into pointer signals. The default
// is Group.IssueEvents; custom resolvers usually filter the candidate and
// then delegate to it.
type Resolver func(g *Group, candidate *Widget, st *State)

// Group owns a widget tree and runs its traversals. Execute, Render and
// Update are mutually exclusive: none may be called from a handler running
// inside another. Tree changes during a traversal must go through
// AddDeferredTask.
type Group struct {
	root *Widget
	mode Mode

	entered *Widget
	grabbed *Widget
	chosen  *Widget

	deferred  []func()
	listeners map[Slot]*Stream[Notice]

	debug bool
	stats debugStats
}

// NewGroup creates a group with a root widget. The root is never a test
// candidate itself but dispatches testing to its children.
func NewGroup() *Group {
	g := &Group{}
	g.root = &Widget{group: g, perms: PermAll &^ PermTest, Name: "root"}
	return g
}

// Root returns the group's root widget.
func (g *Group) Root() *Widget {
	return g.root
}

// Mode returns the current traversal phase.
func (g *Group) Mode() Mode {
	return g.mode
}

// Entered returns the widget the pointer is over, or nil.
func (g *Group) Entered() *Widget { return g.entered }

// Grabbed returns the widget holding a press, or nil.
func (g *Group) Grabbed() *Widget { return g.grabbed }

// Chosen returns the widget owning pointer interaction, or nil.
func (g *Group) Chosen() *Widget { return g.chosen }

// NewWidget creates a detached widget of this group with a copy of table and
// every permission set.
func (g *Group) NewWidget(table SignalTable) *Widget {
	return &Widget{group: g, perms: PermAll, signals: table.Clone()}
}

// SetDebugMode enables per-pass timing and tree shape warnings, logged through
// Logger at debug and warn level.
func (g *Group) SetDebugMode(enabled bool) {
	g.debug = enabled
}

// AddDeferredTask queues fn to run after the current traversal completes.
// Outside a traversal fn runs immediately. Queued tasks run in FIFO order.
func (g *Group) AddDeferredTask(fn func()) {
	if fn == nil {
		panic("trellis: nil deferred task")
	}
	if g.mode == ModeNormal {
		fn()
		return
	}
	g.deferred = append(g.deferred, fn)
}

// Listen registers fn for every pointer signal of slot sent by the group.
// fn is dropped when it returns false or when the handle is removed.
func (g *Group) Listen(slot Slot, fn Task[Notice]) TaskHandle {
	if g.listeners == nil {
		g.listeners = make(map[Slot]*Stream[Notice])
	}
	s := g.listeners[slot]
	if s == nil {
		s = &Stream[Notice]{}
		g.listeners[slot] = s
	}
	return s.Add(fn)
}

// checkMutable panics unless the tree may change.
func (g *Group) checkMutable(op string) {
	if g.mode != ModeNormal {
		panic(fmt.Sprintf("trellis: %s while group is %s; use AddDeferredTask", op, g.mode))
	}
}

// begin enters mode m. Must be paired with a deferred end.
func (g *Group) begin(m Mode) {
	if g.mode != ModeNormal {
		panic(fmt.Sprintf("trellis: cannot start %s while group is %s", m, g.mode))
	}
	g.mode = m
}

// end restores normal mode. On a panic the deferred queue is discarded and the
// panic continues; otherwise the queue is flushed. A task panicking during the
// flush discards the tasks after it.
func (g *Group) end() {
	if r := recover(); r != nil {
		g.mode = ModeNormal
		g.deferred = nil
		panic(r)
	}
	g.mode = ModeNormal
	// tasks run in normal mode, so nothing is queued behind them; a panicking
	// task drops the rest
	queue := g.deferred
	g.deferred = nil
	for _, task := range queue {
		task()
	}
}

// send delivers a pointer slot and notifies listeners.
func (g *Group) send(w *Widget, slot Slot, st *State) {
	w.emit(&Event{Slot: slot, State: st})
	if s := g.listeners[slot]; s != nil {
		s.Run(Notice{Widget: w, Slot: slot, State: st})
	}
}

// --- Execute ---

// Execute hit-tests the tree at (x, y) and resolves the result into pointer
// signals. clip bounds hit testing for handlers that consult it and may be
// nil. resolve replaces IssueEvents when non-nil. Returns the candidate.
func (g *Group) Execute(x, y float64, pressed bool, clip Clipper, resolve Resolver) *Widget {
	g.begin(ModeTesting)
	defer g.end()

	st := &State{Group: g, CursorX: x, CursorY: y, Pressed: pressed, Clip: clip}

	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}
	candidate := g.test(g.root, 0, 0, st)
	st.Candidate = candidate
	if g.debug {
		g.stats.testTime = time.Since(t0)
		t0 = time.Now()
	}

	g.mode = ModeIssuingEvents
	if resolve == nil {
		g.IssueEvents(candidate, st)
	} else {
		resolve(g, candidate, st)
	}
	if g.debug {
		g.stats.issueTime = time.Since(t0)
		g.debugLogExecute(candidate)
	}
	return candidate
}

// test walks the tree front to back. Children are tested before their parent;
// the first non-nil candidate ends the walk.
func (g *Group) test(w *Widget, ox, oy float64, st *State) *Widget {
	x, y := ox+w.X, oy+w.Y
	r := Rect{X: x, Y: y, Width: w.W, Height: w.H}

	if w.first != nil && w.perms&PermAttachListTest != 0 {
		w.emit(&Event{Slot: SlotEnterAttachListTest, State: st, Rect: r})
		cx, cy := x-w.ViewX, y-w.ViewY
		var found *Widget
		for c := w.first; c != nil && found == nil; c = c.next {
			found = g.test(c, cx, cy, st)
		}
		w.emit(&Event{Slot: SlotLeaveAttachListTest, State: st, Rect: r})
		if found != nil {
			return found
		}
	}

	if w.perms&PermTest != 0 {
		if c, ok := w.emit(&Event{Slot: SlotTest, State: st, Rect: r}).(*Widget); ok && c != nil {
			return c
		}
	}
	return nil
}

// IssueEvents is the default resolver. It compares candidate against the
// entered, grabbed and chosen widgets and sends each transition's signal
// exactly once:
//
//   - A chosen widget gets enter_upkeep. A stale entered widget gets leave.
//     If the candidate is still the chosen widget it may be entered or
//     grabbed. A release drops the grabbed widget. The chosen widget is then
//     abandoned unless it is still the candidate or still grabbed, in which
//     case it gets leave_upkeep.
//   - With nothing chosen, a candidate becomes chosen: enter_choose, enter
//     and grab as applicable, leave_choose.
//
// Keeping a grabbed widget chosen while the pointer is outside it lets a drag
// stay bound to the widget where the press began.
func (g *Group) IssueEvents(candidate *Widget, st *State) {
	if g.mode != ModeIssuingEvents {
		panic("trellis: IssueEvents outside of Execute")
	}
	if chosen := g.chosen; chosen != nil {
		g.send(chosen, SlotEnterUpkeep, st)
		if g.entered != nil && g.entered != candidate {
			entered := g.entered
			g.entered = nil
			g.send(entered, SlotLeave, st)
		}
		if candidate == chosen {
			g.enterOrGrab(st)
		}
		if !st.Pressed && g.grabbed != nil {
			grabbed := g.grabbed
			g.grabbed = nil
			g.send(grabbed, SlotDrop, st)
		}
		if candidate != chosen && g.grabbed != chosen {
			g.chosen = nil
			g.send(chosen, SlotAbandon, st)
		} else {
			g.send(chosen, SlotLeaveUpkeep, st)
		}
	}

	if candidate != nil && g.chosen == nil {
		g.chosen = candidate
		g.send(candidate, SlotEnterChoose, st)
		g.enterOrGrab(st)
		g.send(candidate, SlotLeaveChoose, st)
	}
}

func (g *Group) enterOrGrab(st *State) {
	chosen := g.chosen
	if g.entered != chosen {
		g.entered = chosen
		g.send(chosen, SlotEnter, st)
	}
	if st.Pressed && g.grabbed == nil {
		g.grabbed = chosen
		g.send(chosen, SlotGrab, st)
	}
}

// Send delivers a pointer slot to w with listener notification. Custom
// resolvers use it for signals of their own.
func (g *Group) Send(w *Widget, slot Slot, st *State) {
	if w == nil {
		panic("trellis: Send to nil widget")
	}
	g.send(w, slot, st)
}

// Clear resolves any entered, grabbed and chosen widget, sending leave, drop
// and abandon in that order with a nil state. A second call is a no-op.
// Panics during a traversal.
func (g *Group) Clear() {
	if g.mode != ModeNormal {
		panic(fmt.Sprintf("trellis: Clear while group is %s", g.mode))
	}
	g.release(func(*Widget) bool { return true })
}

// release resolves the special widgets matching held with a nil state, in
// Clear's order.
func (g *Group) release(held func(w *Widget) bool) {
	if w := g.entered; w != nil && held(w) {
		g.entered = nil
		g.send(w, SlotLeave, nil)
	}
	if w := g.grabbed; w != nil && held(w) {
		g.grabbed = nil
		g.send(w, SlotDrop, nil)
	}
	if w := g.chosen; w != nil && held(w) {
		g.chosen = nil
		g.send(w, SlotAbandon, nil)
	}
}

// --- Render ---

// Render walks the tree sending render to each widget before its children,
// and visiting children back to front so the front child draws last. gfx may
// be nil.
func (g *Group) Render(gfx *Graphics) {
	g.begin(ModeRendering)
	defer g.end()

	st := &State{Group: g, Graphics: gfx}
	if gfx != nil {
		st.Clip = gfx
	}

	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}
	g.render(g.root, 0, 0, st)
	if g.debug {
		g.stats.renderTime = time.Since(t0)
		g.debugLogPass("render", g.stats.renderTime)
	}
}

func (g *Group) render(w *Widget, ox, oy float64, st *State) {
	x, y := ox+w.X, oy+w.Y
	r := Rect{X: x, Y: y, Width: w.W, Height: w.H}

	if w.perms&PermRender != 0 {
		w.emit(&Event{Slot: SlotRender, State: st, Rect: r})
	}
	if w.last != nil && w.perms&PermAttachListRender != 0 {
		w.emit(&Event{Slot: SlotEnterAttachListRender, State: st, Rect: r})
		cx, cy := x-w.ViewX, y-w.ViewY
		for c := w.last; c != nil; c = c.prev {
			g.render(c, cx, cy, st)
		}
		w.emit(&Event{Slot: SlotLeaveAttachListRender, State: st, Rect: r})
	}
}

// --- Update ---

// Update walks the tree like Render, sending update with dt.
func (g *Group) Update(dt float64) {
	g.begin(ModeUpdating)
	defer g.end()

	st := &State{Group: g, DT: dt}

	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}
	g.update(g.root, 0, 0, st)
	if g.debug {
		g.stats.updateTime = time.Since(t0)
		g.debugLogPass("update", g.stats.updateTime)
	}
}

func (g *Group) update(w *Widget, ox, oy float64, st *State) {
	x, y := ox+w.X, oy+w.Y
	r := Rect{X: x, Y: y, Width: w.W, Height: w.H}

	if w.perms&PermUpdate != 0 {
		w.emit(&Event{Slot: SlotUpdate, State: st, Rect: r, DT: st.DT})
	}
	if w.last != nil && w.perms&PermAttachListUpdate != 0 {
		w.emit(&Event{Slot: SlotEnterAttachListUpdate, State: st, Rect: r, DT: st.DT})
		cx, cy := x-w.ViewX, y-w.ViewY
		for c := w.last; c != nil; c = c.prev {
			g.update(c, cx, cy, st)
		}
		w.emit(&Event{Slot: SlotLeaveAttachListUpdate, State: st, Rect: r, DT: st.DT})
	}
}
