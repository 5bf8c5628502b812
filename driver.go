package trellis

import "fmt"

// advancer is implemented by input sources that step once per frame, such as
// ScriptedInput.
type advancer interface {
	Advance()
}

// Driver runs one group against one input source, frame by frame. Backends
// call Update from their tick and Draw from their paint.
//
// Each Update:
//  1. polls the pointer and runs Group.Execute
//  2. collects key events, adds auto-repeats and hands each one to OnKey,
//     then to the focus chain
//  3. runs Group.Update
//  4. runs the Tasks stream with dt
type Driver struct {
	Group *Group
	Input InputSource
	Focus *FocusChain

	// Clip bounds hit testing. NewDriver installs an empty ClipStack so
	// clipping tables such as StockClipping restrict hit tests; nil disables
	// clipping.
	Clip Clipper
	// Resolver replaces Group.IssueEvents when non-nil.
	Resolver Resolver
	// OnKey sees each key event before the focus chain and returns true to
	// consume it.
	OnKey func(ev KeyEvent) bool

	// Tasks receives the frame time after the group's update pass.
	Tasks Stream[float64]

	cfg    Config
	repeat *KeyRepeater
	keys   []KeyEvent
	frame  int
}

// NewDriver returns a driver for g reading in. The focus chain starts empty.
// Panics if cfg does not pass Validate.
func NewDriver(g *Group, in InputSource, cfg Config) *Driver {
	if g == nil || in == nil {
		panic("trellis: driver needs a group and an input source")
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("trellis: invalid driver config: %v", err))
	}
	g.SetDebugMode(cfg.Debug)
	return &Driver{
		Group:  g,
		Input:  in,
		Focus:  NewFocusChain(),
		Clip:   NewClipStack(nil),
		cfg:    cfg,
		repeat: NewKeyRepeater(cfg.KeyRepeatDelay, cfg.KeyRepeatInterval),
	}
}

// Config returns the driver's configuration.
func (d *Driver) Config() Config {
	return d.cfg
}

// Frame returns the number of completed updates.
func (d *Driver) Frame() int {
	return d.frame
}

// Update advances one frame of dt seconds.
func (d *Driver) Update(dt float64) {
	if a, ok := d.Input.(advancer); ok {
		a.Advance()
	}

	x, y := d.Input.Cursor()
	d.Group.Execute(x, y, d.Input.Pressed(), d.Clip, d.Resolver)

	d.keys = d.Input.AppendKeys(d.keys[:0])
	d.repeat.Observe(d.keys)
	d.keys = d.repeat.Update(dt, d.keys)
	for _, ev := range d.keys {
		if d.OnKey != nil && d.OnKey(ev) {
			continue
		}
		d.Focus.Key(ev)
	}
	clear(d.keys)

	d.Group.Update(dt)
	d.Tasks.Run(dt)
	d.frame++
}

// Draw renders the group into gfx.
func (d *Driver) Draw(gfx *Graphics) {
	d.Group.Render(gfx)
}

// Metrics returns text metrics for f with the configured line spacing.
func (d *Driver) Metrics(f Font) TextMetrics {
	return TextMetrics{Font: f, LineSpacing: d.cfg.LineSpacing}
}

// Blink starts a cursor blinker with the configured period on the Tasks
// stream.
func (d *Driver) Blink() *Blinker {
	b := NewBlinker(d.cfg.BlinkPeriod)
	d.Tasks.Add(b.Step)
	return b
}

// Every runs fn every period seconds on the Tasks stream until fn returns
// false.
func (d *Driver) Every(period float64, fn func() bool) TaskHandle {
	t := NewTimer(period)
	return d.Tasks.Add(func(dt float64) bool {
		t.Update(dt)
		for n := t.Check(TimerContinue); n > 0; n-- {
			if !fn() {
				return false
			}
		}
		return true
	})
}
