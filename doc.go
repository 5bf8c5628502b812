// Package trellis is a retained-mode widget toolkit for 2D game runtimes.
//
// Trellis provides the widget tree, signal dispatch, pointer event
// resolution, focus chain, position-stable sequences and cooperative task
// scheduling that a game UI needs. Drawing and input are left to a backend:
// see trellis/ebitenbackend for [Ebitengine] and trellis/tcellbackend for
// terminals via [tcell].
//
// # Quick start
//
// The simplest way to get started is ebitenbackend.Run, which creates a
// window and game loop for you:
//
//	g := trellis.NewGroup()
//	// ... attach widgets ...
//	ebitenbackend.Run(g, ebitenbackend.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, create a [Driver] yourself and call [Driver.Update] and
// [Driver.Draw] from your own loop.
//
// # Widgets and signals
//
// Every element is a [Widget] created by [Group.NewWidget]. A widget has no
// behavior of its own: it answers the signals its [SignalTable] holds
// handlers for and ignores every other slot.
//
//	box := g.NewWidget(trellis.StockRect())
//	box.SetColor(trellis.ColorFill, trellis.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	g.Root().Attach(box, 10, 10, 80, 40)
//
// Children form the attach list, ordered front to back. [Widget.Attach]
// inserts at the front; [Widget.Promote] brings a child back to the front.
//
// # Execution
//
// [Group.Execute] hit-tests the tree and resolves the result into pointer
// signals: enter, leave, grab, drop and abandon, bracketed by choose and
// upkeep signals. A press keeps the grabbed widget chosen until release, so
// drags stay bound to the widget where they began. [Group.Render] and
// [Group.Update] walk the tree back to front. While any traversal runs the
// tree is frozen; use [Group.AddDeferredTask] to change it.
//
// # Scheduling
//
// [Stream], [Timer], [Interpolator] (easing via [gween]), [Timeline] and
// [Routine] drive time-based behavior from the frame loop without
// goroutines.
//
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
// [gween]: https://github.com/tanema/gween
package trellis
