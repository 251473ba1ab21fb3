package nexovera

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RepeatForever makes a tween loop until cancelled.
const RepeatForever = -1

// TweenSpec describes a single interpolation of one or more channels on a
// Target. From and To must animate the same channels.
type TweenSpec struct {
	Target Target
	From   PropertyMap
	To     PropertyMap
	// Duration of one cycle in seconds. Must be > 0.
	Duration float32
	// Delay before the first cycle in seconds. Repeats do not wait again.
	Delay float32
	// Ease defaults to linear when nil.
	Ease ease.TweenFunc
	// Repeat is the number of extra cycles; RepeatForever loops until
	// cancelled.
	Repeat int
	// Yoyo swaps From and To on every repeat, producing a ping-pong.
	Yoyo bool
}

// Validate reports configuration errors. A nil Target is not an error: the
// tween is skipped when scheduled.
func (s TweenSpec) Validate() error {
	if !(s.Duration > 0) {
		return fmt.Errorf("tween duration %v: %w", s.Duration, ErrInvalidDuration)
	}
	if s.Delay < 0 {
		return fmt.Errorf("tween delay %v: %w", s.Delay, ErrInvalidDelay)
	}
	if s.Repeat < RepeatForever {
		return fmt.Errorf("tween repeat %d: %w", s.Repeat, ErrInvalidRepeat)
	}
	if len(s.To) == 0 {
		return ErrEmptyProperties
	}
	if !sameKeys(s.From, s.To) {
		return ErrKeyMismatch
	}
	return nil
}

// channel interpolates one property with a gween tween.
type channel struct {
	prop     Property
	from, to float32
	tw       *gween.Tween
}

// Tween is a scheduled interpolation. It is advanced by its owner (an
// Animator or a Timeline) once per frame.
type Tween struct {
	spec     TweenSpec
	channels []channel
	values   PropertyMap

	waited  float32 // time spent inside the initial delay
	elapsed float32 // time spent inside the current cycle
	cycle   int

	done      bool
	cancelled bool
	owner     *Animator
}

// newTween builds a tween from an already validated spec. Every channel
// writes a distinct property, so channel order does not matter.
func newTween(spec TweenSpec) *Tween {
	if spec.Ease == nil {
		spec.Ease = ease.Linear
	}
	t := &Tween{
		spec:     spec,
		channels: make([]channel, 0, len(spec.To)),
		values:   make(PropertyMap, len(spec.To)),
	}
	for p, to := range spec.To {
		from := spec.From[p]
		t.channels = append(t.channels, channel{
			prop: p,
			from: float32(from),
			to:   float32(to),
			tw:   gween.New(float32(from), float32(to), spec.Duration, spec.Ease),
		})
		t.values[p] = from
	}
	return t
}

// Update advances the tween by dt seconds and writes the interpolated
// values to the target. A nil or invalid target ends the tween silently.
func (t *Tween) Update(dt float32) {
	if t.done {
		return
	}
	if t.spec.Target == nil || !t.spec.Target.Valid() {
		t.finish()
		return
	}

	if t.waited < t.spec.Delay {
		t.waited += dt
		if t.waited < t.spec.Delay {
			return
		}
		dt = t.waited - t.spec.Delay
		t.waited = t.spec.Delay
	}

	t.elapsed += dt
	if !t.apply(dt) {
		t.finish()
		return
	}
	if t.elapsed < t.spec.Duration {
		return
	}
	overflow := t.elapsed - t.spec.Duration
	if !t.nextCycle() {
		t.finish()
		return
	}
	if overflow <= 0 {
		return
	}
	t.carry(overflow)
}

// carry spends the time left over after a cycle boundary. Whole cycles
// inside overflow are skipped arithmetically so a frame costs the same no
// matter how short Duration is.
func (t *Tween) carry(overflow float32) {
	dur := float64(t.spec.Duration)
	whole := math.Floor(float64(overflow) / dur)
	rest := float32(math.Mod(float64(overflow), dur))

	if left := t.spec.Repeat - t.cycle; t.spec.Repeat > 0 && whole > float64(left) {
		// The last repeat ends inside this frame.
		t.skipCycles(float64(left))
		t.elapsed = t.spec.Duration
		t.apply(t.spec.Duration)
		t.finish()
		return
	}
	t.skipCycles(whole)
	t.elapsed = rest
	if !t.apply(rest) {
		t.finish()
	}
}

// apply steps every channel and writes the results. It reports false when
// the target panicked while being written.
func (t *Tween) apply(dt float32) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("nexovera: target write failed, stopping tween", "panic", r)
			ok = false
		}
	}()
	for i := range t.channels {
		ch := &t.channels[i]
		val, _ := ch.tw.Update(dt)
		v := float64(val)
		t.values[ch.prop] = v
		t.spec.Target.Set(ch.prop, v)
	}
	return true
}

// nextCycle restarts the tween for another repeat. It returns false when no
// repeats remain.
func (t *Tween) nextCycle() bool {
	if t.spec.Repeat == 0 || (t.spec.Repeat > 0 && t.cycle >= t.spec.Repeat) {
		return false
	}
	t.cycle++
	t.elapsed = 0
	t.restart(t.spec.Yoyo)
	return true
}

// skipCycles jumps over n whole cycles. Only the parity of n matters for the
// direction of a yoyo; the cycle count saturates for endless loops.
func (t *Tween) skipCycles(n float64) {
	if n < 1 {
		return
	}
	if n >= math.MaxInt32 || t.cycle >= math.MaxInt32-int(n) {
		t.cycle = math.MaxInt32
	} else {
		t.cycle += int(n)
	}
	t.restart(t.spec.Yoyo && math.Mod(n, 2) == 1)
}

func (t *Tween) restart(swap bool) {
	for i := range t.channels {
		ch := &t.channels[i]
		if swap {
			ch.from, ch.to = ch.to, ch.from
		}
		ch.tw = gween.New(ch.from, ch.to, t.spec.Duration, t.spec.Ease)
	}
}

func (t *Tween) finish() {
	t.done = true
	if t.owner != nil {
		t.owner.remove(t)
		t.owner = nil
	}
}

// Cancel stops the tween immediately and removes it from its Animator.
// Properties keep whatever value was last written. Cancel is idempotent.
func (t *Tween) Cancel() {
	if t.cancelled {
		return
	}
	t.cancelled = true
	if !t.done {
		t.finish()
	}
}

// Done reports whether the tween completed or was cancelled.
func (t *Tween) Done() bool {
	return t.done
}

// Cancelled reports whether Cancel was called.
func (t *Tween) Cancelled() bool {
	return t.cancelled
}

// Cycle returns the number of completed repeats.
func (t *Tween) Cycle() int {
	return t.cycle
}

// Values returns the most recently written value of every channel. Before
// the first write it holds the From values. The map MUST NOT be mutated.
func (t *Tween) Values() PropertyMap {
	return t.values
}

// Spec returns the spec the tween was scheduled with.
func (t *Tween) Spec() TweenSpec {
	return t.spec
}
