package tcellbackend

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/trellis"
)

// Screen couples a tcell.Screen with the renderer, graphics and input that
// drive a trellis.Driver on it.
type Screen struct {
	screen   tcell.Screen
	renderer *Renderer
	gfx      *trellis.Graphics
	input    *Input
}

// NewScreen prepares an initialized screen. Mouse reporting is enabled.
func NewScreen(screen tcell.Screen) *Screen {
	screen.EnableMouse()
	r := NewRenderer(screen, tcell.StyleDefault)
	return &Screen{
		screen:   screen,
		renderer: r,
		gfx:      trellis.NewGraphics(r),
		input:    &Input{},
	}
}

// Input returns the input source to build the driver with.
func (s *Screen) Input() *Input {
	return s.input
}

// Graphics returns the graphics handed to the group on Draw.
func (s *Screen) Graphics() *trellis.Graphics {
	return s.gfx
}

// Frame renders one frame of d to the screen.
func (s *Screen) Frame(d *trellis.Driver) {
	s.screen.Clear()
	s.gfx.State = trellis.DefaultGraphicState
	d.Draw(s.gfx)
	s.screen.Show()
}

// Loop feeds screen events to the input and runs d every period until ctx
// is done. Events are delivered to the frame loop through a channel.
func (s *Screen) Loop(ctx context.Context, d *trellis.Driver, period time.Duration) error {
	events := make(chan tcell.Event, 10)
	quit := make(chan struct{})
	defer close(quit)
	go s.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	w, h := s.screen.Size()
	trellis.Logger().Info("screen loop started", slog.Int("cols", w), slog.Int("rows", h))

	last := time.Now()
	s.Frame(d)
	for {
		select {
		case <-ctx.Done():
			trellis.Logger().Info("screen loop stopped", slog.Int("frames", d.Frame()))
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, resize := ev.(*tcell.EventResize); resize {
				s.screen.Sync()
				continue
			}
			s.input.HandleEvent(ev)
		case now := <-ticker.C:
			d.Update(now.Sub(last).Seconds())
			last = now
			s.Frame(d)
		}
	}
}
