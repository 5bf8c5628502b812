package trellis

import "slices"

// Task is a stream entry. Returning false unsubscribes it.
type Task[T any] func(arg T) bool

type taskState struct {
	dead bool
}

type streamTask[T any] struct {
	fn    Task[T]
	state *taskState
}

// TaskHandle allows removing a task from its stream.
type TaskHandle struct {
	state *taskState
}

// Remove unsubscribes the task. Safe to call more than once and from inside
// a running stream.
func (h TaskHandle) Remove() {
	if h.state != nil {
		h.state.dead = true
	}
}

// Active reports whether the task is still subscribed.
func (h TaskHandle) Active() bool {
	return h.state != nil && !h.state.dead
}

// Stream is a list of tasks that all receive the same argument on each Run.
// There is no scheduler; the owner calls Run, typically once per frame.
type Stream[T any] struct {
	tasks []streamTask[T]
	// tasks detached by the current Run
	running []streamTask[T]
}

// Add subscribes fn. Tasks added while the stream is running first run on the
// next Run.
func (s *Stream[T]) Add(fn Task[T]) TaskHandle {
	if fn == nil {
		panic("trellis: nil stream task")
	}
	st := &taskState{}
	s.tasks = append(s.tasks, streamTask[T]{fn: fn, state: st})
	return TaskHandle{state: st}
}

// Run calls every live task once with arg, in subscription order, and drops
// tasks that return false or were removed.
func (s *Stream[T]) Run(arg T) {
	live := s.tasks
	s.tasks = nil
	outer := s.running
	s.running = live
	defer func() { s.running = outer }()

	kept := live[:0]
	for _, t := range live {
		if t.state.dead {
			continue
		}
		if t.fn(arg) && !t.state.dead {
			kept = append(kept, t)
		} else {
			t.state.dead = true
		}
	}
	// a task may have removed or cleared tasks that already ran
	kept = slices.DeleteFunc(kept, func(t streamTask[T]) bool { return t.state.dead })
	clear(live[len(kept):])
	s.tasks = append(kept, s.tasks...)
}

// Len returns the number of subscribed tasks, including removed tasks not yet
// dropped by Run.
func (s *Stream[T]) Len() int {
	return len(s.tasks)
}

// Clear drops every task, including those of a Run in progress.
func (s *Stream[T]) Clear() {
	for _, t := range s.running {
		t.state.dead = true
	}
	for _, t := range s.tasks {
		t.state.dead = true
	}
	s.tasks = nil
}
