package trellis

import "sort"

type timelineEvent struct {
	at float64
	fn func(tl *Timeline)
}

// Timeline is a clock with a queue of events sorted by time. Advancing the
// clock jumps it to each due event in order before settling on the target.
type Timeline struct {
	now    float64
	target float64
	queue  []*timelineEvent
}

// Now returns the clock.
func (tl *Timeline) Now() float64 {
	return tl.now
}

// Len returns the number of pending events.
func (tl *Timeline) Len() int {
	return len(tl.queue)
}

// At schedules fn at absolute time t. Events at equal times run in the order
// they were added.
func (tl *Timeline) At(t float64, fn func(tl *Timeline)) {
	if fn == nil {
		panic("trellis: nil timeline event")
	}
	ev := &timelineEvent{at: t, fn: fn}
	i := sort.Search(len(tl.queue), func(i int) bool {
		return tl.queue[i].at > t
	})
	tl.queue = append(tl.queue, nil)
	copy(tl.queue[i+1:], tl.queue[i:])
	tl.queue[i] = ev
}

// After schedules fn d seconds after the current clock.
func (tl *Timeline) After(d float64, fn func(tl *Timeline)) {
	tl.At(tl.now+d, fn)
}

// Advance moves the clock forward by dt.
func (tl *Timeline) Advance(dt float64) {
	tl.GoTo(tl.now + dt)
}

// GoTo moves the clock to t, running every event scheduled at or before t.
// The clock reads each event's time while it runs. Events may call GoTo or
// At; the queue and target are re-read after every event.
func (tl *Timeline) GoTo(t float64) {
	tl.target = t
	for len(tl.queue) > 0 && tl.queue[0].at <= tl.target {
		ev := tl.queue[0]
		tl.queue[0] = nil
		tl.queue = tl.queue[1:]
		tl.now = ev.at
		ev.fn(tl)
	}
	tl.now = tl.target
}

// Clear drops every pending event.
func (tl *Timeline) Clear() {
	tl.queue = nil
}
