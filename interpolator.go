package trellis

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// InterpolatorMode selects how an Interpolator moves through [0, 1].
type InterpolatorMode uint8

const (
	InterpolateSuspended     InterpolatorMode = iota // frozen at the current value
	InterpolateOnce                                  // one leg, then suspend
	InterpolateOscillate                             // back and forth forever
	InterpolateOscillateOnce                         // there and back, then suspend
)

// Interpolator drives a function with a normalized time value shaped by an
// easing function. Call Update each frame.
type Interpolator struct {
	fn    func(v float64)
	tween *gween.Tween
	timer Timer

	mode    InterpolatorMode
	resume  InterpolatorMode // mode restored by Resume
	forward bool
	legs    int

	progress float64 // raw time fraction, before easing
	value    float64
}

// NewInterpolator creates a suspended interpolator calling fn with eased
// values. A nil easing is linear.
func NewInterpolator(fn func(v float64), easing ease.TweenFunc) *Interpolator {
	if easing == nil {
		easing = ease.Linear
	}
	return &Interpolator{
		fn:      fn,
		tween:   gween.New(0, 1, 1, easing),
		forward: true,
	}
}

// Start runs the interpolator from 0 toward 1 in mode, with each leg lasting
// duration seconds. fn is called immediately with the start value.
func (ip *Interpolator) Start(mode InterpolatorMode, duration float64) {
	ip.timer.Start(duration)
	ip.mode = mode
	ip.resume = InterpolateSuspended
	ip.forward = true
	ip.legs = 0
	ip.progress = 0
	if mode == InterpolateSuspended {
		ip.timer.Pause()
	}
	ip.apply()
}

// Update advances the interpolator by dt seconds and calls fn with the new
// value. No-op while suspended.
func (ip *Interpolator) Update(dt float64) {
	if ip.mode == InterpolateSuspended {
		return
	}
	ip.timer.Update(dt)
	for n := ip.timer.Check(TimerContinue); n > 0 && ip.mode != InterpolateSuspended; n-- {
		ip.finishLeg()
	}
	if ip.mode != InterpolateSuspended {
		ip.progress = ip.legFraction()
	}
	ip.apply()
}

func (ip *Interpolator) finishLeg() {
	switch ip.mode {
	case InterpolateOnce:
		ip.finish()
	case InterpolateOscillate:
		ip.forward = !ip.forward
	case InterpolateOscillateOnce:
		ip.legs++
		if ip.legs >= 2 {
			ip.finish()
			return
		}
		ip.forward = !ip.forward
	}
}

// finish parks the interpolator at the end of the current leg.
func (ip *Interpolator) finish() {
	if ip.forward {
		ip.progress = 1
	} else {
		ip.progress = 0
	}
	ip.mode = InterpolateSuspended
	ip.resume = InterpolateSuspended
	ip.timer.Stop()
}

func (ip *Interpolator) legFraction() float64 {
	if ip.forward {
		return ip.timer.Progress()
	}
	return 1 - ip.timer.Progress()
}

// Flip reverses direction without jumping: the value continues from where it
// is toward the other end.
func (ip *Interpolator) Flip() {
	ip.forward = !ip.forward
	if !ip.timer.Running() {
		return
	}
	frac := ip.progress
	if !ip.forward {
		frac = 1 - ip.progress
	}
	ip.timer.Set(frac * ip.timer.Duration())
}

// Suspend freezes the interpolator. Resume continues it.
func (ip *Interpolator) Suspend() {
	if ip.mode == InterpolateSuspended {
		return
	}
	ip.resume = ip.mode
	ip.mode = InterpolateSuspended
	ip.timer.Pause()
}

// Resume continues a suspended interpolator in the mode it had. An
// interpolator that finished its run stays suspended.
func (ip *Interpolator) Resume() {
	if ip.mode != InterpolateSuspended || ip.resume == InterpolateSuspended {
		return
	}
	ip.mode = ip.resume
	ip.resume = InterpolateSuspended
	ip.timer.Resume()
}

func (ip *Interpolator) apply() {
	v, _ := ip.tween.Set(float32(ip.progress))
	ip.value = float64(v)
	if ip.fn != nil {
		ip.fn(ip.value)
	}
}

// Mode returns the current mode.
func (ip *Interpolator) Mode() InterpolatorMode { return ip.mode }

// Forward reports whether the interpolator moves toward 1.
func (ip *Interpolator) Forward() bool { return ip.forward }

// Progress returns the raw time fraction in [0, 1].
func (ip *Interpolator) Progress() float64 { return ip.progress }

// Value returns the last eased value.
func (ip *Interpolator) Value() float64 { return ip.value }
