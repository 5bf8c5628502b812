package trellis

import (
	"image"
)

// Permission gates what the group's traversals do with a widget.
type Permission uint8

const (
	PermRender           Permission = 1 << iota // receive render
	PermTest                                    // receive test
	PermUpdate                                  // receive update
	PermAttachListRender                        // render children
	PermAttachListTest                          // test children
	PermAttachListUpdate                        // update children

	PermNone Permission = 0
	PermAll             = PermRender | PermTest | PermUpdate |
		PermAttachListRender | PermAttachListTest | PermAttachListUpdate
)

// PictureFunc produces a picture on demand.
type PictureFunc func() image.Image

// ColorFunc produces a color on demand.
type ColorFunc func() Color

// TextFunc produces a string on demand.
type TextFunc func() string

// Widget is a node of a group's retained tree. Behavior comes entirely from
// the widget's signal table: two widgets differ only in which handlers they
// hold.
//
// Children form the attach list, ordered front to back. The front child is
// hit-tested first and rendered last.
type Widget struct {
	// Local rect, relative to the parent's view.
	X, Y, W, H float64

	// Border insets; see ContentRect.
	Border Margins

	// View origin, subtracted from the position of every child.
	ViewX, ViewY float64

	// Shadow offsets for handlers that draw a drop shadow.
	ShadowX, ShadowY float64

	// Metadata
	Name     string
	UserData any

	group  *Group
	parent *Widget

	// attach list; first is frontmost
	first, last *Widget
	prev, next  *Widget
	numChildren int

	perms    Permission
	signals  SignalTable
	pictures map[string]any
	colors   map[string]any
	text     any
	font     Font
}

// Group returns the group the widget belongs to.
func (w *Widget) Group() *Group {
	return w.group
}

// Parent returns the widget's parent, or nil if it is detached or the root.
func (w *Widget) Parent() *Widget {
	return w.parent
}

// IsAttached reports whether the widget has a parent.
func (w *Widget) IsAttached() bool {
	return w.parent != nil
}

// Front returns the frontmost child, or nil.
func (w *Widget) Front() *Widget {
	return w.first
}

// Back returns the backmost child, or nil.
func (w *Widget) Back() *Widget {
	return w.last
}

// Behind returns the sibling directly behind w, or nil.
func (w *Widget) Behind() *Widget {
	return w.next
}

// InFront returns the sibling directly in front of w, or nil.
func (w *Widget) InFront() *Widget {
	return w.prev
}

// NumChildren returns the length of the attach list.
func (w *Widget) NumChildren() int {
	return w.numChildren
}

// Children returns the attach list front to back as a new slice.
func (w *Widget) Children() []*Widget {
	out := make([]*Widget, 0, w.numChildren)
	for c := w.first; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// Walk visits w and its descendants in pre-order, front to back. Returning
// false from fn skips the visited widget's children.
func (w *Widget) Walk(fn func(*Widget) bool) {
	if !fn(w) {
		return
	}
	for c := w.first; c != nil; c = c.next {
		c.Walk(fn)
	}
}

// --- Permissions ---

// Permissions returns the widget's permission bitset.
func (w *Widget) Permissions() Permission {
	return w.perms
}

// SetPermissions replaces the widget's permission bitset.
func (w *Widget) SetPermissions(p Permission) {
	w.perms = p
}

// Allow adds p to the widget's permissions.
func (w *Widget) Allow(p Permission) {
	w.perms |= p
}

// Deny removes p from the widget's permissions.
func (w *Widget) Deny(p Permission) {
	w.perms &^= p
}

// Can reports whether every bit of p is permitted.
func (w *Widget) Can(p Permission) bool {
	return w.perms&p == p
}

// --- Signals ---

// Handler returns the handler installed for slot, or nil.
func (w *Widget) Handler(slot Slot) Handler {
	return w.signals[slot]
}

// SetHandler installs h for slot. A nil h removes the slot.
func (w *Widget) SetHandler(slot Slot, h Handler) {
	if h == nil {
		delete(w.signals, slot)
		return
	}
	if w.signals == nil {
		w.signals = make(SignalTable)
	}
	w.signals[slot] = h
}

// Signal sends slot to the widget with free-form arguments and returns the
// handler's result. A missing handler returns nil.
func (w *Widget) Signal(slot Slot, args ...any) any {
	return w.emit(&Event{Slot: slot, Args: args})
}

// emit delivers a prepared event.
func (w *Widget) emit(ev *Event) any {
	h := w.signals[ev.Slot]
	if h == nil {
		return nil
	}
	return h(w, ev)
}

// --- Pictures, colors, text, font ---

// SetPicture binds a picture under name. A nil img removes the binding.
func (w *Widget) SetPicture(name string, img image.Image) {
	if img == nil {
		delete(w.pictures, name)
		return
	}
	w.setPicture(name, img)
}

// SetPictureFunc binds a picture producer under name.
func (w *Widget) SetPictureFunc(name string, fn PictureFunc) {
	if fn == nil {
		delete(w.pictures, name)
		return
	}
	w.setPicture(name, fn)
}

func (w *Widget) setPicture(name string, v any) {
	if w.pictures == nil {
		w.pictures = make(map[string]any)
	}
	w.pictures[name] = v
}

// Picture resolves the picture bound under name, or nil.
func (w *Widget) Picture(name string) image.Image {
	switch v := w.pictures[name].(type) {
	case image.Image:
		return v
	case PictureFunc:
		return v()
	}
	return nil
}

// SetColor binds a color under name.
func (w *Widget) SetColor(name string, c Color) {
	w.setColor(name, c)
}

// SetColorFunc binds a color producer under name. A nil fn removes the binding.
func (w *Widget) SetColorFunc(name string, fn ColorFunc) {
	if fn == nil {
		delete(w.colors, name)
		return
	}
	w.setColor(name, fn)
}

func (w *Widget) setColor(name string, v any) {
	if w.colors == nil {
		w.colors = make(map[string]any)
	}
	w.colors[name] = v
}

// Color resolves the color bound under name. ok is false if nothing is bound.
func (w *Widget) Color(name string) (c Color, ok bool) {
	switch v := w.colors[name].(type) {
	case Color:
		return v, true
	case ColorFunc:
		return v(), true
	}
	return Color{}, false
}

// SetText binds a literal string.
func (w *Widget) SetText(s string) {
	w.text = s
}

// SetTextFunc binds a string producer.
func (w *Widget) SetTextFunc(fn TextFunc) {
	if fn == nil {
		w.text = nil
		return
	}
	w.text = fn
}

// Text resolves the widget's string, or "" if none is bound.
func (w *Widget) Text() string {
	switch v := w.text.(type) {
	case string:
		return v
	case TextFunc:
		return v()
	}
	return ""
}

// SetFont sets the widget's font.
func (w *Widget) SetFont(f Font) {
	w.font = f
}

// Font returns the widget's font, or nil.
func (w *Widget) Font() Font {
	return w.font
}

// --- Tree manipulation ---

// Attach makes child a child of w with the given local rect. A child that
// belongs to another parent is detached from it first. The rect is always
// assigned; attach and attached_to are sent only when the parent changes.
// A newly attached child goes to the front of the attach list.
//
// Panics if child is nil, w itself, the group root, an ancestor of w, or a
// widget of another group, or if the group is not in normal mode.
func (w *Widget) Attach(child *Widget, x, y, width, height float64) {
	if child == nil {
		panic("trellis: cannot attach nil widget")
	}
	if child == w {
		panic("trellis: widget cannot attach to itself")
	}
	if child.group != w.group {
		panic("trellis: cannot attach widget of another group")
	}
	if child == w.group.root {
		panic("trellis: cannot attach the group root")
	}
	w.group.checkMutable("Attach")
	if isAncestor(child, w) {
		panic("trellis: attaching widget would create a cycle")
	}

	reparent := child.parent != w
	if reparent && child.parent != nil {
		child.detach()
	}
	child.X, child.Y, child.W, child.H = x, y, width, height
	if !reparent {
		return
	}
	w.linkFront(child)
	if w.group.debug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(w)
	}
	child.emit(&Event{Slot: SlotAttach, Other: w})
	w.emit(&Event{Slot: SlotAttachedTo, Other: child})
}

// Detach removes w from its parent, sending detach to w and detached_from to
// the old parent. No-op if w is not attached.
//
// If w or one of its descendants is entered, grabbed or chosen, the group
// first sends leave, drop and abandon as Group.Clear does. Moving w to another
// parent with Attach keeps those roles.
//
// Panics if the group is not in normal mode.
func (w *Widget) Detach() {
	if w.parent == nil {
		return
	}
	w.group.checkMutable("Detach")
	w.group.release(func(x *Widget) bool { return isAncestor(w, x) })
	w.detach()
}

// detach unlinks w without touching the group's special widgets. Handlers
// run by release may already have detached w.
func (w *Widget) detach() {
	p := w.parent
	if p == nil {
		return
	}
	p.unlink(w)
	w.emit(&Event{Slot: SlotDetach, Other: p})
	p.emit(&Event{Slot: SlotDetachedFrom, Other: w})
}

// Promote moves w to the front of its parent's attach list, making it the
// first hit-tested and last rendered sibling. No-op if w is not attached.
// Panics if the group is not in normal mode.
func (w *Widget) Promote() {
	p := w.parent
	if p == nil {
		return
	}
	w.group.checkMutable("Promote")
	if p.first == w {
		return
	}
	p.unlink(w)
	p.linkFront(w)
}

// Rect returns the widget's rect. The local rect is relative to the parent's
// view; the absolute rect accumulates every ancestor's position minus its
// view origin.
func (w *Widget) Rect(absolute bool) Rect {
	r := Rect{X: w.X, Y: w.Y, Width: w.W, Height: w.H}
	if !absolute {
		return r
	}
	for p := w.parent; p != nil; p = p.parent {
		r.X += p.X - p.ViewX
		r.Y += p.Y - p.ViewY
	}
	return r
}

// ContentRect returns the rect inside the border, in the requested space.
func (w *Widget) ContentRect(absolute bool) Rect {
	return w.Rect(absolute).Inset(w.Border)
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Widget) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (w *Widget) linkFront(child *Widget) {
	child.parent = w
	child.prev = nil
	child.next = w.first
	if w.first != nil {
		w.first.prev = child
	} else {
		w.last = child
	}
	w.first = child
	w.numChildren++
}

func (w *Widget) unlink(child *Widget) {
	if child.prev != nil {
		child.prev.next = child.next
	} else {
		w.first = child.next
	}
	if child.next != nil {
		child.next.prev = child.prev
	} else {
		w.last = child.prev
	}
	child.prev, child.next, child.parent = nil, nil, nil
	w.numChildren--
}
