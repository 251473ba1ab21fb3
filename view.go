package nexovera

import (
	"fmt"
	"time"
)

// View mounts the motion core onto a host element tree. It owns one
// Animator, Registry and Orchestrator for its lifetime and one Scope per
// mount.
type View struct {
	root     *Element
	viewport *Viewport
	cfg      Config

	anim     *Animator
	registry *Registry
	reveal   *Orchestrator
	scope    *Scope
	hero     *Timeline

	navScrolled bool
	injectQueue []float64
	runner      *ScrollRunner
	debug       bool
}

// NewView creates an unmounted view of root inside vp.
func NewView(root *Element, vp *Viewport, cfg Config) *View {
	registry := NewRegistry(vp)
	return &View{
		root:     root,
		viewport: vp,
		cfg:      cfg,
		anim:     NewAnimator(),
		registry: registry,
		reveal:   NewOrchestrator(registry),
	}
}

// Mount opens a fresh scope, seeds ambient loops, fade sequences and endless
// loops, wires every section's reveal groups and plays the hero intro.
// Mounting an already mounted view releases the previous scope first, so
// triggers never pile up across re-mounts. On error nothing stays mounted.
func (v *View) Mount() error {
	v.Unmount()
	scope := Open(v.anim, v.registry)
	if err := v.mount(scope); err != nil {
		scope.Release()
		return err
	}
	v.scope = scope
	v.poll(v.viewport.ScrollY)
	return nil
}

func (v *View) mount(scope *Scope) error {
	for _, amb := range v.cfg.Ambient {
		for _, group := range groupByParent(v.root.Find(amb.Role)) {
			if _, err := scope.Attach(targetsOf(group), amb.Params); err != nil {
				return fmt.Errorf("ambient %s: %w", amb.Role, err)
			}
		}
	}

	for _, seq := range v.cfg.Sequences {
		for _, group := range groupByParent(v.root.Find(seq.Role)) {
			if _, err := scope.Sequence(targetsOf(group), seq.Params); err != nil {
				return fmt.Errorf("sequence %s: %w", seq.Role, err)
			}
		}
	}

	for _, loop := range v.cfg.Loops {
		for _, el := range v.root.Find(loop.Role) {
			from := PropertyMap{}
			for p := range loop.To {
				from[p], _ = el.Get(p)
			}
			_, err := scope.Schedule(TweenSpec{
				Target:   el,
				From:     from,
				To:       loop.To,
				Duration: loop.Duration,
				Ease:     loop.Ease,
				Repeat:   RepeatForever,
				Yoyo:     loop.Yoyo,
			})
			if err != nil {
				return fmt.Errorf("loop %s: %w", loop.Role, err)
			}
		}
	}

	if len(v.cfg.Hero.Entries) > 0 {
		entries := make([]Entry, 0, len(v.cfg.Hero.Entries))
		for _, e := range v.cfg.Hero.Entries {
			var target Target
			if el := v.root.FindFirst(e.Role); el != nil {
				target = el
			}
			entries = append(entries, Entry{
				Spec:   TweenSpec{Target: target, From: e.From, To: e.To, Duration: e.Duration, Ease: e.Ease},
				Offset: e.Offset,
			})
		}
		hero, err := scope.Timeline(entries...)
		if err != nil {
			return fmt.Errorf("hero: %w", err)
		}
		hero.Prime()
		hero.Play()
		v.hero = hero
	}

	for _, section := range v.root.Find(RoleSection) {
		if _, err := scope.Reveal(v.reveal, section.Name, section, v.cfg.Reveal.Lines, v.cfg.Reveal.Groups); err != nil {
			return err
		}
	}
	return nil
}

// Unmount releases the current scope. It is safe to call when not mounted.
func (v *View) Unmount() {
	if v.scope == nil {
		return
	}
	v.scope.Release()
	v.scope = nil
	v.hero = nil
}

// Mounted reports whether the view currently holds a scope.
func (v *View) Mounted() bool {
	return v.scope != nil
}

// Scroll handles a host scroll notification: it jumps to y, evaluates the
// triggers and dispatches the resulting reveals synchronously.
func (v *View) Scroll(y float64) []TransitionEvent {
	return v.poll(v.viewport.SetScroll(y))
}

// Resize handles a host resize notification.
func (v *View) Resize(width, height float64) []TransitionEvent {
	v.viewport.Resize(width, height)
	return v.poll(v.viewport.ScrollY)
}

func (v *View) poll(y float64) []TransitionEvent {
	v.navScrolled = y > v.cfg.NavScrolledOffset
	return v.registry.Poll(y)
}

// Update advances the view by one frame of dt seconds: injected scroll
// positions first, then the smooth scroll, then every animation.
func (v *View) Update(dt float32) {
	var stats frameStats
	var t0 time.Time
	if v.debug {
		t0 = time.Now()
	}

	if v.runner != nil {
		v.runner.step(v)
	}
	if !v.processInjectedScroll() && v.viewport.Update(dt) {
		stats.events = len(v.poll(v.viewport.ScrollY))
	}

	if v.debug {
		stats.pollTime = time.Since(t0)
		t0 = time.Now()
	}

	v.anim.Update(dt)

	if v.debug {
		stats.animateTime = time.Since(t0)
		stats.active = v.anim.Active()
		stats.bindings = v.registry.Len()
		v.debugLog(stats)
	}
}

// NavScrolled reports whether the page is scrolled past the nav offset.
func (v *View) NavScrolled() bool {
	return v.navScrolled
}

// Hero returns the intro timeline of the current mount, or nil.
func (v *View) Hero() *Timeline {
	return v.hero
}

// Root returns the host element tree.
func (v *View) Root() *Element {
	return v.root
}

// Viewport returns the view's viewport.
func (v *View) Viewport() *Viewport {
	return v.viewport
}

// Animator returns the view's animator.
func (v *View) Animator() *Animator {
	return v.anim
}

// Registry returns the view's trigger registry.
func (v *View) Registry() *Registry {
	return v.registry
}

// Orchestrator returns the view's reveal orchestrator.
func (v *View) Orchestrator() *Orchestrator {
	return v.reveal
}

// Scope returns the scope of the current mount, or nil.
func (v *View) Scope() *Scope {
	return v.scope
}

// groupByParent splits elements by parent, keeping document order, so
// every decorative layer gets its own delay sequence.
func groupByParent(els []*Element) [][]*Element {
	var groups [][]*Element
	index := make(map[*Element]int)
	for _, el := range els {
		i, ok := index[el.Parent]
		if !ok {
			i = len(groups)
			index[el.Parent] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], el)
	}
	return groups
}
