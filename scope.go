package nexovera

// Scope records every tween, timeline, trigger binding and reveal binding
// created through it, and tears them all down on Release. Open one Scope
// per mounted view and release it exactly once when the view unmounts or
// re-initializes.
type Scope struct {
	anim     *Animator
	registry *Registry

	members  []func()
	released bool
}

// Open starts a scope that schedules on anim and registers triggers on
// registry. Either may be nil when the scope never uses it.
func Open(anim *Animator, registry *Registry) *Scope {
	return &Scope{anim: anim, registry: registry}
}

// Open starts a child scope recorded in s. Releasing s releases the child;
// the child may also be released on its own.
func (s *Scope) Open() (*Scope, error) {
	if s.released {
		return nil, ErrScopeReleased
	}
	child := Open(s.anim, s.registry)
	s.members = append(s.members, child.Release)
	return child, nil
}

// Schedule validates spec and schedules it on the scope's Animator.
func (s *Scope) Schedule(spec TweenSpec) (*Tween, error) {
	if s.released {
		return nil, ErrScopeReleased
	}
	t, err := s.anim.Schedule(spec)
	if err != nil {
		return nil, err
	}
	s.members = append(s.members, t.Cancel)
	return t, nil
}

// Timeline builds a timeline on the scope's Animator.
func (s *Scope) Timeline(entries ...Entry) (*Timeline, error) {
	if s.released {
		return nil, ErrScopeReleased
	}
	tl, err := s.anim.Timeline(entries...)
	if err != nil {
		return nil, err
	}
	s.members = append(s.members, tl.Kill)
	return tl, nil
}

// Register adds a trigger binding to the scope's Registry. Releasing the
// scope removes the binding unless another registration has replaced it.
func (s *Scope) Register(id string, target Target, lines TriggerLines) error {
	if s.released {
		return ErrScopeReleased
	}
	b, err := s.registry.register(id, target, lines)
	if err != nil {
		return err
	}
	s.members = append(s.members, func() { s.registry.unregisterBinding(b) })
	return nil
}

// Bind wires tl to the trigger id through o and records the unbind.
func (s *Scope) Bind(o *Orchestrator, id string, tl *Timeline) error {
	if s.released {
		return ErrScopeReleased
	}
	if err := o.Bind(id, tl); err != nil {
		return err
	}
	s.members = append(s.members, func() { o.Unbind(id, tl) })
	return nil
}

// Defer records fn to run on Release.
func (s *Scope) Defer(fn func()) error {
	if s.released {
		return ErrScopeReleased
	}
	s.members = append(s.members, fn)
	return nil
}

// Release cancels and unregisters every member in reverse creation order.
// Calling Release again is a no-op.
func (s *Scope) Release() {
	if s.released {
		return
	}
	s.released = true
	for i := len(s.members) - 1; i >= 0; i-- {
		s.members[i]()
		s.members[i] = nil
	}
	s.members = nil
}

// Released reports whether Release has been called.
func (s *Scope) Released() bool {
	return s.released
}

// Len returns the number of recorded members.
func (s *Scope) Len() int {
	return len(s.members)
}
