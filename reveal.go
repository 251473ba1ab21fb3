package nexovera

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// Orchestrator binds timelines to trigger ids: EnterForward plays them and
// LeaveBackward reverses them, in bind order.
type Orchestrator struct {
	registry    *Registry
	bindings    map[string][]*Timeline
	unsubscribe func()
}

// NewOrchestrator creates an Orchestrator listening to registry.
func NewOrchestrator(registry *Registry) *Orchestrator {
	o := &Orchestrator{registry: registry, bindings: make(map[string][]*Timeline)}
	o.unsubscribe = registry.Subscribe(o.Handle)
	return o
}

// Bind attaches tl to the trigger id and primes it to its pre-reveal
// values. Binding the same timeline twice is a no-op. When the trigger is
// already in its played state the timeline starts right away.
func (o *Orchestrator) Bind(id string, tl *Timeline) error {
	if id == "" {
		return ErrEmptySectionID
	}
	if tl == nil {
		return nil
	}
	for _, cur := range o.bindings[id] {
		if cur == tl {
			return nil
		}
	}
	o.bindings[id] = append(o.bindings[id], tl)
	tl.Prime()
	if o.registry.State(id) == TriggerPlayed {
		tl.Play()
	}
	return nil
}

// Unbind detaches tl from id.
func (o *Orchestrator) Unbind(id string, tl *Timeline) {
	list := o.bindings[id]
	for i, cur := range list {
		if cur == tl {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(o.bindings, id)
		return
	}
	o.bindings[id] = list
}

// Bound returns the timelines bound to id. The slice MUST NOT be mutated.
func (o *Orchestrator) Bound(id string) []*Timeline {
	return o.bindings[id]
}

// Handle applies one transition event.
func (o *Orchestrator) Handle(ev TransitionEvent) {
	for _, tl := range o.bindings[ev.SectionID] {
		switch ev.Kind {
		case EnterForward:
			tl.Play()
		case LeaveBackward:
			tl.Reverse()
		}
	}
}

// Close stops listening to the registry. Bound timelines are left as is.
func (o *Orchestrator) Close() {
	if o.unsubscribe != nil {
		o.unsubscribe()
		o.unsubscribe = nil
	}
}

// RevealGroup configures one independently staggered group of a section,
// such as its headline, body copy or card grid.
type RevealGroup struct {
	Role     Role
	From, To PropertyMap
	Duration float32
	Ease     ease.TweenFunc
	// Delay is the group start delay relative to the trigger.
	Delay float32
	// Stagger is the per-item start increment.
	Stagger float32
	// First limits the group to the first matching element.
	First bool
	// EnterLine overrides the section's trigger line when non-zero. The
	// group then gets its own trigger registered as "<section>#<role>".
	EnterLine float64
	// Sections limits the group to the named sections; empty means all.
	Sections []string
}

// appliesTo reports whether the group is configured for section id.
func (g RevealGroup) appliesTo(id string) bool {
	if len(g.Sections) == 0 {
		return true
	}
	for _, s := range g.Sections {
		if s == id {
			return true
		}
	}
	return false
}

// GroupTriggerID returns the trigger id a group with its own line uses.
func GroupTriggerID(section string, role Role) string {
	return section + "#" + string(role)
}

// Reveal registers section under id with lines, builds one timeline per
// applicable group and binds them through o. Groups with no matching
// elements are skipped. It returns the bound timelines in group order.
func (s *Scope) Reveal(o *Orchestrator, id string, section *Element, lines TriggerLines, groups []RevealGroup) ([]*Timeline, error) {
	if err := s.Register(id, section, lines); err != nil {
		return nil, err
	}
	var timelines []*Timeline
	for _, g := range groups {
		if !g.appliesTo(id) {
			continue
		}
		els := section.Find(g.Role)
		if len(els) == 0 {
			Logger().Debug("nexovera: reveal group has no elements", "section", id, "role", g.Role)
			continue
		}
		if g.First {
			els = els[:1]
		}
		spec := TweenSpec{
			From:     g.From,
			To:       g.To,
			Duration: g.Duration,
			Delay:    g.Delay,
			Ease:     g.Ease,
		}
		tl, err := s.Timeline(Stagger(targetsOf(els), spec, g.Stagger)...)
		if err != nil {
			return nil, fmt.Errorf("section %q group %q: %w", id, g.Role, err)
		}

		triggerID := id
		if g.EnterLine != 0 && g.EnterLine != lines.Enter {
			triggerID = GroupTriggerID(id, g.Role)
			groupLines := TriggerLines{Enter: g.EnterLine}
			if lines.Leave > g.EnterLine {
				groupLines.Leave = lines.Leave
			}
			if err := s.Register(triggerID, section, groupLines); err != nil {
				return nil, fmt.Errorf("section %q group %q: %w", id, g.Role, err)
			}
		}
		if err := s.Bind(o, triggerID, tl); err != nil {
			return nil, err
		}
		timelines = append(timelines, tl)
	}
	return timelines, nil
}
