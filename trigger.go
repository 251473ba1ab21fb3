package nexovera

import "fmt"

// TransitionKind identifies a trigger transition.
type TransitionKind uint8

const (
	EnterForward  TransitionKind = iota // top crossed the enter line scrolling down
	LeaveBackward                       // top went back below the leave line scrolling up
)

func (k TransitionKind) String() string {
	switch k {
	case EnterForward:
		return "EnterForward"
	case LeaveBackward:
		return "LeaveBackward"
	default:
		return fmt.Sprintf("TransitionKind(%d)", uint8(k))
	}
}

// TransitionEvent is emitted by Registry.Poll.
type TransitionEvent struct {
	SectionID string
	Kind      TransitionKind
	// ScrollY is the scroll offset of the poll that produced the event.
	ScrollY float64
	// Top is the element top relative to the viewport at that poll.
	Top float64
}

// TriggerState is the per-binding reveal state.
type TriggerState uint8

const (
	TriggerIdle     TriggerState = iota // never entered
	TriggerPlayed                       // inside the armed zone
	TriggerReversed                     // left backward after playing
)

func (s TriggerState) String() string {
	switch s {
	case TriggerIdle:
		return "idle"
	case TriggerPlayed:
		return "played"
	case TriggerReversed:
		return "reversed"
	default:
		return fmt.Sprintf("TriggerState(%d)", uint8(s))
	}
}

// TriggerLines are viewport-height fractions measured from the top of the
// viewport. The element arms when its top rises to Enter and disarms when
// it drops back below Leave. A zero Leave means "same as Enter".
type TriggerLines struct {
	Enter float64
	Leave float64
}

// Default trigger lines.
const (
	DefaultEnterLine = 0.8
	CardEnterLine    = 0.75
)

func (l TriggerLines) normalize() (TriggerLines, error) {
	if l.Leave == 0 {
		l.Leave = l.Enter
	}
	if l.Enter < 0 || l.Enter > 1 || l.Leave < l.Enter || l.Leave > 1 {
		return l, fmt.Errorf("trigger lines %+v: %w", l, ErrInvalidTriggerLine)
	}
	return l, nil
}

// Geometry measures targets against the viewport. The host supplies it.
type Geometry interface {
	// ViewportHeight returns the current viewport height.
	ViewportHeight() float64
	// OffsetTop returns the target's top edge relative to the viewport top
	// when the document is scrolled to scrollY. ok is false when the target
	// cannot be measured.
	OffsetTop(t Target, scrollY float64) (top float64, ok bool)
}

// EventSink receives every transition after listeners have run. The ECS
// adapter implements it.
type EventSink interface {
	EmitTransition(TransitionEvent)
}

type binding struct {
	id     string
	target Target
	lines  TriggerLines
	state  TriggerState
}

type listener struct {
	fn func(TransitionEvent)
}

// Registry observes registered elements against the viewport and turns
// scroll positions into transition events. State is derived from the
// current position only, so stale or repeated polls cannot corrupt it.
type Registry struct {
	geometry  Geometry
	bindings  []*binding
	byID      map[string]*binding
	listeners []*listener
	sink      EventSink
}

// NewRegistry creates a Registry measuring with g.
func NewRegistry(g Geometry) *Registry {
	return &Registry{geometry: g, byID: make(map[string]*binding)}
}

// Register observes target under id. Re-registering an id replaces its
// binding in place: the registration order slot is kept and the state
// resets to idle.
func (r *Registry) Register(id string, target Target, lines TriggerLines) error {
	_, err := r.register(id, target, lines)
	return err
}

func (r *Registry) register(id string, target Target, lines TriggerLines) (*binding, error) {
	if id == "" {
		return nil, ErrEmptySectionID
	}
	lines, err := lines.normalize()
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", id, err)
	}
	b := &binding{id: id, target: target, lines: lines}
	if old, ok := r.byID[id]; ok {
		Logger().Debug("nexovera: replacing trigger binding", "id", id)
		for i, cur := range r.bindings {
			if cur == old {
				r.bindings[i] = b
				break
			}
		}
	} else {
		r.bindings = append(r.bindings, b)
	}
	r.byID[id] = b
	return b, nil
}

// Unregister removes the binding for id. It reports whether one existed.
func (r *Registry) Unregister(id string) bool {
	b, ok := r.byID[id]
	if !ok {
		return false
	}
	r.unregisterBinding(b)
	return true
}

// unregisterBinding removes b only if it is still the binding for its id.
func (r *Registry) unregisterBinding(b *binding) {
	if r.byID[b.id] != b {
		return
	}
	delete(r.byID, b.id)
	for i, cur := range r.bindings {
		if cur == b {
			copy(r.bindings[i:], r.bindings[i+1:])
			r.bindings[len(r.bindings)-1] = nil
			r.bindings = r.bindings[:len(r.bindings)-1]
			return
		}
	}
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	return len(r.bindings)
}

// State returns the state of id, or TriggerIdle when unknown.
func (r *Registry) State(id string) TriggerState {
	if b, ok := r.byID[id]; ok {
		return b.state
	}
	return TriggerIdle
}

// Subscribe adds fn to the listeners notified synchronously by Poll.
// The returned func removes it.
func (r *Registry) Subscribe(fn func(TransitionEvent)) (unsubscribe func()) {
	l := &listener{fn: fn}
	r.listeners = append(r.listeners, l)
	return func() {
		for i, cur := range r.listeners {
			if cur == l {
				copy(r.listeners[i:], r.listeners[i+1:])
				r.listeners[len(r.listeners)-1] = nil
				r.listeners = r.listeners[:len(r.listeners)-1]
				return
			}
		}
	}
}

// SetEventSink sets the optional sink that receives every event.
func (r *Registry) SetEventSink(sink EventSink) {
	r.sink = sink
}

// Poll evaluates every binding at scrollY and returns the transitions, in
// registration order, after delivering them to listeners and the sink.
// At most one event is produced per binding per poll.
func (r *Registry) Poll(scrollY float64) []TransitionEvent {
	vh := r.geometry.ViewportHeight()
	var events []TransitionEvent
	for _, b := range r.bindings {
		if b.target == nil || !b.target.Valid() {
			continue
		}
		top, ok := r.geometry.OffsetTop(b.target, scrollY)
		if !ok {
			continue
		}
		armed := top <= b.lines.Enter*vh
		disarmed := top > b.lines.Leave*vh

		switch {
		case armed && b.state != TriggerPlayed:
			b.state = TriggerPlayed
			events = append(events, TransitionEvent{SectionID: b.id, Kind: EnterForward, ScrollY: scrollY, Top: top})
		case disarmed && b.state == TriggerPlayed:
			b.state = TriggerReversed
			events = append(events, TransitionEvent{SectionID: b.id, Kind: LeaveBackward, ScrollY: scrollY, Top: top})
		}
	}
	if len(events) == 0 {
		return nil
	}

	listeners := append([]*listener(nil), r.listeners...)
	for _, ev := range events {
		Logger().Debug("nexovera: trigger transition", "id", ev.SectionID, "kind", ev.Kind, "scrollY", ev.ScrollY)
		for _, l := range listeners {
			l.fn(ev)
		}
		if r.sink != nil {
			r.sink.EmitTransition(ev)
		}
	}
	return events
}
