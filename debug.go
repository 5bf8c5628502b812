package trellis

import (
	"log/slog"
	"time"
)

// debugStats holds per-pass timings. Only populated when Group.debug is true.
type debugStats struct {
	testTime   time.Duration
	issueTime  time.Duration
	renderTime time.Duration
	updateTime time.Duration
}

// debugLogExecute logs the timings of the last Execute.
func (g *Group) debugLogExecute(candidate *Widget) {
	if !g.debug {
		return
	}
	Logger().Debug("execute",
		slog.Duration("test", g.stats.testTime),
		slog.Duration("issue", g.stats.issueTime),
		slog.String("candidate", widgetName(candidate)),
		slog.String("entered", widgetName(g.entered)),
		slog.String("grabbed", widgetName(g.grabbed)),
		slog.String("chosen", widgetName(g.chosen)))
}

// debugLogPass logs the timing of a render or update pass.
func (g *Group) debugLogPass(pass string, d time.Duration) {
	if !g.debug {
		return
	}
	Logger().Debug(pass, slog.Duration("time", d))
}

func widgetName(w *Widget) string {
	if w == nil {
		return ""
	}
	return w.Name
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(w *Widget) {
	depth := 0
	for p := w; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("tree depth exceeds threshold",
			slog.Int("depth", depth),
			slog.Int("threshold", debugMaxTreeDepth),
			slog.String("widget", w.Name))
	}
}

// debugCheckChildCount warns if a widget has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(w *Widget) {
	if w.numChildren > debugMaxChildCount {
		Logger().Warn("attach list exceeds threshold",
			slog.String("widget", w.Name),
			slog.Int("children", w.numChildren),
			slog.Int("threshold", debugMaxChildCount))
	}
}
