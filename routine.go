package trellis

import (
	"strings"

	"github.com/rivo/uniseg"
)

// StepFunc advances a routine by dt. It reads and updates r.Stage and
// r.Elapsed and returns false once the routine has finished.
type StepFunc func(r *Routine, dt float64) bool

// Routine is a resumable state object: a step function called once per
// frame with the time since the last call, plus an explicit reset. It stands
// in for code that would otherwise suspend mid-way, such as scripted waits.
type Routine struct {
	// Stage is the routine's position in its script, owned by the step
	// function. Reset sets it to 0.
	Stage int

	// Elapsed is the time spent in the current stage.
	Elapsed float64

	// Data is free for the step function's use.
	Data any

	step    StepFunc
	cleanup func(r *Routine)
	done    bool
}

// NewRoutine creates a routine. cleanup, if non-nil, runs on Reset.
func NewRoutine(step StepFunc, cleanup func(r *Routine)) *Routine {
	if step == nil {
		panic("trellis: nil routine step")
	}
	return &Routine{step: step, cleanup: cleanup}
}

// Resume runs one step and reports whether the routine is still running.
// A finished routine returns false without stepping.
func (r *Routine) Resume(dt float64) bool {
	if r.done {
		return false
	}
	r.Elapsed += dt
	if !r.step(r, dt) {
		r.done = true
	}
	return !r.done
}

// Advance moves the routine to stage, restarting the stage clock.
func (r *Routine) Advance(stage int) {
	r.Stage = stage
	r.Elapsed = 0
}

// Reset abandons the routine's progress, runs cleanup and rewinds it to stage
// 0 so it can run again.
func (r *Routine) Reset() {
	if r.cleanup != nil {
		r.cleanup(r)
	}
	r.Stage = 0
	r.Elapsed = 0
	r.done = false
}

// Done reports whether the routine has finished.
func (r *Routine) Done() bool {
	return r.done
}

// Task adapts the routine for a Stream[float64] fed with frame times.
func (r *Routine) Task() Task[float64] {
	return r.Resume
}

// --- Text reveal ---

// TextReveal shows a string one grapheme cluster at a time at a fixed rate.
type TextReveal struct {
	*Routine
	clusters []string
	shown    int
	rate     float64
}

// NewTextReveal reveals text at rate clusters per second. onReset, if
// non-nil, runs when the reveal is reset.
func NewTextReveal(text string, rate float64, onReset func()) *TextReveal {
	if rate <= 0 {
		panic("trellis: text reveal rate must be positive")
	}
	tr := &TextReveal{clusters: splitClusters(text), rate: rate}
	tr.Routine = NewRoutine(tr.reveal, func(*Routine) {
		tr.shown = 0
		if onReset != nil {
			onReset()
		}
	})
	return tr
}

func (tr *TextReveal) reveal(r *Routine, _ float64) bool {
	if r.Stage == 1 {
		tr.shown = len(tr.clusters)
		return false
	}
	tr.shown = min(len(tr.clusters), int(r.Elapsed*tr.rate))
	return tr.shown < len(tr.clusters)
}

// Skip reveals the rest of the text on the next Resume.
func (tr *TextReveal) Skip() {
	tr.Advance(1)
}

// Visible returns the revealed prefix.
func (tr *TextReveal) Visible() string {
	return joinClusters(tr.clusters[:tr.shown])
}

// Shown returns the number of revealed clusters.
func (tr *TextReveal) Shown() int {
	return tr.shown
}

// --- Blink ---

// Blinker toggles On every period seconds, e.g. for a text cursor. Feed Step
// to a Stream[float64].
type Blinker struct {
	On      bool
	timer   Timer
	stopped bool
}

// NewBlinker returns a blinker that starts on.
func NewBlinker(period float64) *Blinker {
	b := &Blinker{On: true}
	b.timer.Start(period)
	return b
}

// Step advances the blinker by dt. Returns false once stopped.
func (b *Blinker) Step(dt float64) bool {
	if b.stopped {
		return false
	}
	b.timer.Update(dt)
	if b.timer.Check(TimerContinue)%2 == 1 {
		b.On = !b.On
	}
	return true
}

// Reset turns the blinker on and restarts its period, e.g. after the cursor
// moved.
func (b *Blinker) Reset() {
	b.On = true
	b.timer.Start(b.timer.Duration())
}

// Stop unsubscribes the blinker from its stream on the next Step.
func (b *Blinker) Stop() {
	b.stopped = true
}

// --- Grapheme helpers ---

func splitClusters(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func joinClusters(cs []string) string {
	return strings.Join(cs, "")
}
