package trellis

// Slot names a signal. Widgets answer a slot only if their signal table holds
// a handler for it; any other slot is a silent no-op.
type Slot string

// Traversal slots, sent by Group.Render, Group.Execute and Group.Update.
const (
	SlotRender                Slot = "render"
	SlotTest                  Slot = "test"
	SlotUpdate                Slot = "update"
	SlotEnterAttachListRender Slot = "enter_attach_list_render"
	SlotLeaveAttachListRender Slot = "leave_attach_list_render"
	SlotEnterAttachListTest   Slot = "enter_attach_list_test"
	SlotLeaveAttachListTest   Slot = "leave_attach_list_test"
	SlotEnterAttachListUpdate Slot = "enter_attach_list_update"
	SlotLeaveAttachListUpdate Slot = "leave_attach_list_update"
)

// Pointer slots, sent while the group resolves pointer state.
const (
	SlotEnter       Slot = "enter"
	SlotLeave       Slot = "leave"
	SlotGrab        Slot = "grab"
	SlotDrop        Slot = "drop"
	SlotAbandon     Slot = "abandon"
	SlotEnterChoose Slot = "enter_choose"
	SlotLeaveChoose Slot = "leave_choose"
	SlotEnterUpkeep Slot = "enter_upkeep"
	SlotLeaveUpkeep Slot = "leave_upkeep"
)

// Tree slots, sent by Widget.Attach and Widget.Detach.
const (
	SlotAttach       Slot = "attach"
	SlotAttachedTo   Slot = "attached_to"
	SlotDetach       Slot = "detach"
	SlotDetachedFrom Slot = "detached_from"
)

// Focus slots, sent by FocusChain.
const (
	SlotGainFocus            Slot = "gain_focus"
	SlotLoseFocus            Slot = "lose_focus"
	SlotAddToFocusChain      Slot = "add_to_focus_chain"
	SlotRemoveFromFocusChain Slot = "remove_from_focus_chain"
	SlotKeyPress             Slot = "key_press"
	SlotKeyRelease           Slot = "key_release"
)

// Event carries the arguments of one signal delivery. Which fields are set
// depends on the slot:
//
//   - render, test and the attach-list slots: State and Rect (absolute).
//   - update and its attach-list slots: State, Rect and DT.
//   - pointer slots: State, which is nil when sent by Group.Clear.
//   - attach, attached_to, detach, detached_from: Other.
//   - slots sent through Widget.Signal: Args.
type Event struct {
	Slot  Slot
	State *State
	Rect  Rect
	DT    float64
	Other *Widget
	Args  []any
}

// Arg returns the i-th free-form argument, or nil if there is none.
func (ev *Event) Arg(i int) any {
	if i < 0 || i >= len(ev.Args) {
		return nil
	}
	return ev.Args[i]
}

// Handler answers one slot for one widget. A non-nil result is returned to
// the sender; for SlotTest a *Widget result names the hit candidate.
type Handler func(w *Widget, ev *Event) any

// SignalTable maps slots to handlers. Widgets copy the table they are created
// with, so stock tables can be shared and then overridden per instance.
type SignalTable map[Slot]Handler

// Clone returns a shallow copy of t.
func (t SignalTable) Clone() SignalTable {
	out := make(SignalTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Merge returns a copy of t with every handler of other added, replacing
// handlers t already has for the same slot.
func (t SignalTable) Merge(other SignalTable) SignalTable {
	out := t.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Signaler is anything that answers signals. *Widget implements it; focus
// chains accept any Signaler.
type Signaler interface {
	Signal(slot Slot, args ...any) any
}

// Notice is passed to group listeners for every pointer signal.
type Notice struct {
	Widget *Widget
	Slot   Slot
	State  *State
}
