package ebitenbackend

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/trellis"
)

// RunConfig configures a window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	// Background fills the screen before each frame.
	Background trellis.Color

	// Config tunes the driver; nil means trellis.DefaultConfig. Run fails if
	// it does not pass Validate.
	Config *trellis.Config

	// Setup runs once with the driver before the loop starts, e.g. to load
	// the focus chain.
	Setup func(d *trellis.Driver)
}

// Game implements ebiten.Game around a trellis.Driver.
type Game struct {
	Driver *trellis.Driver

	renderer   *Renderer
	gfx        *trellis.Graphics
	background trellis.Color
	width      int
	height     int
}

// NewGame returns a game of the given logical size driving d.
func NewGame(d *trellis.Driver, width, height int) *Game {
	r := NewRenderer()
	return &Game{
		Driver:   d,
		renderer: r,
		gfx:      trellis.NewGraphics(r),
		width:    width,
		height:   height,
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.Driver.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background.ToRGBA())
	g.renderer.Begin(screen)
	g.gfx.State = trellis.DefaultGraphicState
	g.Driver.Draw(g.gfx)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens a window and drives group with Ebitengine's mouse and keyboard
// until the window closes.
func Run(group *trellis.Group, cfg RunConfig) error {
	conf := trellis.DefaultConfig()
	if cfg.Config != nil {
		conf = *cfg.Config
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("ebitenbackend: %w", err)
	}
	d := trellis.NewDriver(group, &Input{}, conf)
	if cfg.ShowFPS {
		group.Root().Attach(NewFPSWidget(group), 0, 0, 100, 32)
	}
	if cfg.Setup != nil {
		cfg.Setup(d)
	}

	game := NewGame(d, cfg.Width, cfg.Height)
	game.background = cfg.Background

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	trellis.Logger().Info("window opened",
		slog.String("title", cfg.Title),
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height))
	err := ebiten.RunGame(game)
	trellis.Logger().Info("window closed", slog.Int("frames", d.Frame()))
	return err
}
