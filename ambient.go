package nexovera

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// AmbientParams controls the randomized loops seeded on decorative
// elements. Every loop is an infinite yoyo tween whose duration, opacity and
// (optionally) scale are drawn from the ranges below.
type AmbientParams struct {
	// Duration of one half-cycle in seconds. Min must be > 0.
	Duration Range
	// Opacity is the range the loop's opacity target is drawn from.
	Opacity Range
	// Scale is optional; the zero Range leaves scale untouched.
	Scale Range
	// DelayStep is multiplied by the target's index to desynchronize
	// otherwise identical elements.
	DelayStep float32
	// Ease defaults to sine in-out.
	Ease ease.TweenFunc
	// InRange draws both ends of the loop from the ranges and moves the
	// target onto the first end at attach time. Without it a loop swings
	// between the target's current value and the drawn one.
	InRange bool
}

// Validate reports malformed ranges.
func (p AmbientParams) Validate() error {
	if !(p.Duration.Min > 0) || p.Duration.Max < p.Duration.Min {
		return fmt.Errorf("ambient duration %+v: %w", p.Duration, ErrInvalidRange)
	}
	if p.Opacity.Max < p.Opacity.Min {
		return fmt.Errorf("ambient opacity %+v: %w", p.Opacity, ErrInvalidRange)
	}
	if p.Scale.Max < p.Scale.Min {
		return fmt.Errorf("ambient scale %+v: %w", p.Scale, ErrInvalidRange)
	}
	if p.DelayStep < 0 {
		return fmt.Errorf("ambient delay step %v: %w", p.DelayStep, ErrInvalidDelay)
	}
	return nil
}

// Attach seeds one ambient loop per target and returns the child scope that
// owns them. Releasing either the child or s stops the loops. Missing or
// invalid targets are skipped; their index still counts toward the delay so
// siblings keep their rhythm.
func (s *Scope) Attach(targets []Target, p AmbientParams) (*Scope, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	child, err := s.Open()
	if err != nil {
		return nil, err
	}
	easeFn := p.Ease
	if easeFn == nil {
		easeFn = ease.InOutSine
	}
	for i, target := range targets {
		if target == nil || !target.Valid() {
			Logger().Debug("nexovera: ambient target missing, skipping", "index", i)
			continue
		}
		from := PropertyMap{}
		to := PropertyMap{PropOpacity: p.Opacity.Random()}
		if !p.Scale.IsZero() {
			to[PropScale] = p.Scale.Random()
		}
		for prop, v := range to {
			switch {
			case p.InRange && prop == PropScale:
				v = p.Scale.Random()
				target.Set(prop, v)
			case p.InRange:
				v = p.Opacity.Random()
				target.Set(prop, v)
			default:
				if cur, ok := target.Get(prop); ok {
					v = cur
				}
			}
			from[prop] = v
		}
		spec := TweenSpec{
			Target:   target,
			From:     from,
			To:       to,
			Duration: float32(p.Duration.Random()),
			Delay:    float32(i) * p.DelayStep,
			Ease:     easeFn,
			Repeat:   RepeatForever,
			Yoyo:     true,
		}
		if _, err := child.Schedule(spec); err != nil {
			Logger().Debug("nexovera: ambient loop not scheduled", "index", i, "err", err)
		}
	}
	return child, nil
}

// SequenceParams controls a repeating run of fades over a group of
// elements. Element i fades from its current opacity toward a drawn one,
// starting Spacing seconds after element i-1. The whole run then starts
// over, snapping back to the starting opacities.
type SequenceParams struct {
	// Duration of each fade in seconds. Min must be > 0.
	Duration Range
	// Opacity is the range each fade's target is drawn from.
	Opacity Range
	// Spacing between the starts of consecutive fades.
	Spacing float32
	// Ease defaults to sine in-out.
	Ease ease.TweenFunc
	// Repeat counts extra runs; RepeatForever loops until released.
	Repeat int
}

// Validate reports malformed ranges and counts.
func (p SequenceParams) Validate() error {
	if !(p.Duration.Min > 0) || p.Duration.Max < p.Duration.Min {
		return fmt.Errorf("sequence duration %+v: %w", p.Duration, ErrInvalidRange)
	}
	if p.Opacity.Max < p.Opacity.Min {
		return fmt.Errorf("sequence opacity %+v: %w", p.Opacity, ErrInvalidRange)
	}
	if p.Spacing < 0 {
		return fmt.Errorf("sequence spacing %v: %w", p.Spacing, ErrInvalidDelay)
	}
	if p.Repeat < RepeatForever {
		return fmt.Errorf("sequence repeat %d: %w", p.Repeat, ErrInvalidRepeat)
	}
	return nil
}

// Sequence builds and plays the repeating fade run over targets. The
// timeline belongs to s. Missing targets keep their slot in the rhythm.
func (s *Scope) Sequence(targets []Target, p SequenceParams) (*Timeline, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	easeFn := p.Ease
	if easeFn == nil {
		easeFn = ease.InOutSine
	}
	entries := make([]Entry, len(targets))
	var prev float32
	for i, target := range targets {
		to := p.Opacity.Random()
		from := to
		if target != nil && target.Valid() {
			if cur, ok := target.Get(PropOpacity); ok {
				from = cur
			}
		} else {
			target = nil
		}
		d := float32(p.Duration.Random())
		entries[i] = Entry{Spec: TweenSpec{
			Target:   target,
			From:     PropertyMap{PropOpacity: from},
			To:       PropertyMap{PropOpacity: to},
			Duration: d,
			Ease:     easeFn,
		}}
		if i > 0 {
			entries[i].Offset = p.Spacing - prev
		}
		prev = d
	}
	tl, err := s.Timeline(entries...)
	if err != nil {
		return nil, err
	}
	if err := tl.SetRepeat(p.Repeat); err != nil {
		return nil, err
	}
	tl.Play()
	return tl, nil
}
