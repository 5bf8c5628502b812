package trellis

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is one action of an input script.
type scriptStep struct {
	Action string  `yaml:"action"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Key    string  `yaml:"key,omitempty"`
	Text   string  `yaml:"text,omitempty"`
	Shift  bool    `yaml:"shift,omitempty"`
}

// inputScript is the top-level structure of a script. YAML is a superset of
// JSON, so both formats load.
type inputScript struct {
	Steps []scriptStep `yaml:"steps"`
}

// scriptFrame is the input state of one frame.
type scriptFrame struct {
	x, y    float64
	pressed bool
	keys    []KeyEvent
}

// ScriptedInput is an InputSource that plays back a script one frame at a
// time, for automated testing. Each Advance moves to the next frame; the last
// pointer state persists after the script ends.
//
// Actions:
//
//	move     x, y           pointer moves, button unchanged
//	press    x, y           button goes down
//	release  x, y           button goes up
//	click    x, y           press, then release on the next frame
//	drag     fromX..toY     press, frames-2 moves, release
//	key      key, shift     press and release of a named key
//	type     text           one press and release per character
//	wait     frames         pointer unchanged for frames frames
type ScriptedInput struct {
	frames []scriptFrame
	cursor int
	cur    scriptFrame
}

// LoadScript parses a YAML or JSON input script.
func LoadScript(data []byte) (*ScriptedInput, error) {
	var script inputScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	si := &ScriptedInput{cursor: -1}
	for i, st := range script.Steps {
		if err := si.compile(st); err != nil {
			return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
		}
	}
	return si, nil
}

func (si *ScriptedInput) last() scriptFrame {
	if len(si.frames) == 0 {
		return scriptFrame{}
	}
	f := si.frames[len(si.frames)-1]
	f.keys = nil
	return f
}

func (si *ScriptedInput) pointer(x, y float64, pressed bool) {
	si.frames = append(si.frames, scriptFrame{x: x, y: y, pressed: pressed})
}

func (si *ScriptedInput) compile(st scriptStep) error {
	switch st.Action {
	case "move":
		si.pointer(st.X, st.Y, si.last().pressed)
	case "press":
		si.pointer(st.X, st.Y, true)
	case "release":
		si.pointer(st.X, st.Y, false)
	case "click":
		si.pointer(st.X, st.Y, true)
		si.pointer(st.X, st.Y, false)
	case "drag":
		frames := max(st.Frames, 2)
		si.pointer(st.FromX, st.FromY, true)
		steps := frames - 2
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps+1)
			si.pointer(st.FromX+(st.ToX-st.FromX)*t, st.FromY+(st.ToY-st.FromY)*t, true)
		}
		si.pointer(st.ToX, st.ToY, false)
	case "key":
		k, err := ParseKey(st.Key)
		if err != nil {
			return err
		}
		var mods KeyModifiers
		if st.Shift {
			mods = ModShift
		}
		f := si.last()
		f.keys = []KeyEvent{{Key: k, Mods: mods, Down: true}, {Key: k, Mods: mods}}
		si.frames = append(si.frames, f)
	case "type":
		f := si.last()
		for _, r := range st.Text {
			f.keys = append(f.keys, KeyEvent{Key: KeyRune, Rune: r, Down: true}, KeyEvent{Key: KeyRune, Rune: r})
		}
		si.frames = append(si.frames, f)
	case "wait":
		f := si.last()
		for range max(st.Frames, 1) {
			si.frames = append(si.frames, f)
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Advance moves to the next frame. Driver calls it once per Update.
func (si *ScriptedInput) Advance() {
	if si.cursor+1 >= len(si.frames) {
		si.cursor = len(si.frames)
		si.cur.keys = nil
		return
	}
	si.cursor++
	si.cur = si.frames[si.cursor]
}

// Done reports whether every frame has been played.
func (si *ScriptedInput) Done() bool {
	return si.cursor >= len(si.frames)-1
}

// Len returns the number of frames in the script.
func (si *ScriptedInput) Len() int {
	return len(si.frames)
}

// Cursor implements InputSource.
func (si *ScriptedInput) Cursor() (x, y float64) {
	return si.cur.x, si.cur.y
}

// Pressed implements InputSource.
func (si *ScriptedInput) Pressed() bool {
	return si.cur.pressed
}

// AppendKeys implements InputSource. Each frame's keys are reported once.
func (si *ScriptedInput) AppendKeys(dst []KeyEvent) []KeyEvent {
	dst = append(dst, si.cur.keys...)
	si.cur.keys = nil
	return dst
}
