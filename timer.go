package trellis

import "math"

// TimerPolicy decides what Check does to a timer that has timed out.
type TimerPolicy uint8

const (
	TimerContinue TimerPolicy = iota // report every elapsed timeout and keep running
	TimerPause                       // report one timeout, reset and pause
	TimerStop                        // report one timeout, reset and stop
)

// Timer discretizes continuous time into timeouts of a fixed duration.
// Update accumulates time; Check converts it into a timeout count.
type Timer struct {
	duration float64
	counter  float64
	running  bool
	paused   bool
}

// NewTimer returns a running timer with the given duration.
func NewTimer(duration float64) *Timer {
	t := &Timer{}
	t.Start(duration)
	return t
}

// Start (re)arms the timer with a fresh counter. Panics if duration <= 0.
func (t *Timer) Start(duration float64) {
	if duration <= 0 || math.IsNaN(duration) {
		panic("trellis: timer duration must be positive")
	}
	t.duration = duration
	t.counter = 0
	t.running = true
	t.paused = false
}

// Stop halts the timer and clears its counter.
func (t *Timer) Stop() {
	t.running = false
	t.paused = false
	t.counter = 0
}

// Pause freezes the counter. No-op on a stopped timer.
func (t *Timer) Pause() {
	if t.running {
		t.paused = true
	}
}

// Resume unfreezes a paused timer.
func (t *Timer) Resume() {
	t.paused = false
}

// Update advances a running, unpaused timer by dt seconds.
func (t *Timer) Update(dt float64) {
	if t.running && !t.paused {
		t.counter += dt
	}
}

// Check returns how many whole durations have elapsed and applies policy. A
// stopped timer, or one that has not yet timed out, returns 0.
func (t *Timer) Check(policy TimerPolicy) int {
	if !t.running || t.counter < t.duration {
		return 0
	}
	n := int(math.Floor(t.counter / t.duration))
	switch policy {
	case TimerContinue:
		t.counter -= float64(n) * t.duration
		return n
	case TimerPause:
		t.counter = 0
		t.paused = true
		return 1
	case TimerStop:
		t.Stop()
		return 1
	default:
		panic("trellis: unknown timer policy")
	}
}

// Set moves the counter to elapsed, clamped to [0, duration].
func (t *Timer) Set(elapsed float64) {
	t.counter = math.Max(0, math.Min(elapsed, t.duration))
}

// Elapsed returns the counter.
func (t *Timer) Elapsed() float64 { return t.counter }

// Duration returns the timeout duration.
func (t *Timer) Duration() float64 { return t.duration }

// Running reports whether the timer is started.
func (t *Timer) Running() bool { return t.running }

// Paused reports whether the timer is paused.
func (t *Timer) Paused() bool { return t.paused }

// Progress returns the counter as a fraction of the duration, 0 when stopped.
func (t *Timer) Progress() float64 {
	if !t.running {
		return 0
	}
	return t.counter / t.duration
}
