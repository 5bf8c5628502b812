package ebitenbackend

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/trellis"
)

// NewFPSWidget creates a widget that displays the current FPS and TPS.
// The text is refreshed every ~0.5 seconds into an internal image drawn with
// ebitenutil.DebugPrint. The widget does not hit-test.
func NewFPSWidget(g *trellis.Group) *trellis.Widget {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	img := ebiten.NewImage(100, 32)

	var lastUpdate float64
	refresh := func() {
		img.Clear()
		// Semi-transparent background for readability
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	refresh()

	w := g.NewWidget(trellis.StockPicture())
	w.Name = "fps_widget"
	w.Deny(trellis.PermTest)
	w.SetPicture(trellis.PictureMain, img)
	w.SetHandler(trellis.SlotUpdate, func(_ *trellis.Widget, ev *trellis.Event) any {
		lastUpdate += ev.DT
		if lastUpdate < 0.5 {
			return nil
		}
		lastUpdate = 0
		refresh()
		return nil
	})
	return w
}
