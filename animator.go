package nexovera

// animation is anything an Animator advances once per frame.
type animation interface {
	Update(dt float32)
	Done() bool
}

// Animator owns the active set of tweens and timelines for one view. The
// host calls Update once per frame; there is no global animation manager.
type Animator struct {
	active   []animation
	updating bool
}

// NewAnimator creates an empty Animator.
func NewAnimator() *Animator {
	return &Animator{}
}

// Schedule validates spec and adds a tween to the active set. Configuration
// errors are returned without registering anything. A nil or invalid Target
// is skipped: the returned tween is already done.
func (a *Animator) Schedule(spec TweenSpec) (*Tween, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	t := newTween(spec)
	if spec.Target == nil || !spec.Target.Valid() {
		Logger().Debug("nexovera: skipping tween with missing target")
		t.done = true
		return t, nil
	}
	t.owner = a
	a.active = append(a.active, t)
	return t, nil
}

// Update advances every active animation by dt seconds. Animations added
// during Update first tick on the next frame.
func (a *Animator) Update(dt float32) {
	a.updating = true
	n := len(a.active)
	for i := 0; i < n; i++ {
		if an := a.active[i]; an != nil && !an.Done() {
			an.Update(dt)
		}
	}
	a.updating = false
	a.compact()
}

// Active returns the number of running animations.
func (a *Animator) Active() int {
	count := 0
	for _, an := range a.active {
		if an != nil && !an.Done() {
			count++
		}
	}
	return count
}

// add registers a timeline (or any other animation) in the active set.
// Adding an animation that is already present is a no-op.
func (a *Animator) add(an animation) {
	for _, cur := range a.active {
		if cur == an {
			return
		}
	}
	a.active = append(a.active, an)
}

// remove drops an from the active set. During Update the slot is cleared
// and compacted afterwards.
func (a *Animator) remove(an animation) {
	for i, cur := range a.active {
		if cur == an {
			if a.updating {
				a.active[i] = nil
				return
			}
			copy(a.active[i:], a.active[i+1:])
			a.active[len(a.active)-1] = nil
			a.active = a.active[:len(a.active)-1]
			return
		}
	}
}

// compact removes finished and cleared slots, keeping order.
func (a *Animator) compact() {
	j := 0
	for _, an := range a.active {
		if an != nil && !an.Done() {
			a.active[j] = an
			j++
		}
	}
	for k := j; k < len(a.active); k++ {
		a.active[k] = nil
	}
	a.active = a.active[:j]
}
