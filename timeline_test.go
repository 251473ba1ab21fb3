package nexovera

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tanema/gween/ease"
)

func fadeUp(target Target, dur float32) TweenSpec {
	return TweenSpec{
		Target:   target,
		From:     PropertyMap{PropOpacity: 0, PropY: 40},
		To:       PropertyMap{PropOpacity: 1, PropY: 0},
		Duration: dur,
		Ease:     ease.Linear,
	}
}

// heroTimeline mirrors the landing page hero: headline, then subheadline and
// CTA overlapping the tail of the previous entry.
func heroTimeline(t *testing.T, a *Animator) (*Timeline, []*Element) {
	t.Helper()
	els := []*Element{
		NewElement("headline", RoleHeroHeadline),
		NewElement("sub", RoleHeroSubheadline),
		NewElement("cta", RoleHeroCta),
	}
	tl, err := a.Timeline(
		Entry{Spec: fadeUp(els[0], 1.2)},
		Entry{Spec: fadeUp(els[1], 1.0), Offset: -0.6},
		Entry{Spec: fadeUp(els[2], 0.9), Offset: -0.5},
	)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	return tl, els
}

func runFor(a *Animator, seconds float32) {
	const dt = 0.125
	for s := float32(0); s < seconds; s += dt {
		a.Update(dt)
	}
}

var timingOpt = cmpopts.EquateApprox(0, 1e-5)

func TestTimelineResolvesOffsets(t *testing.T) {
	a := NewAnimator()
	tl, _ := heroTimeline(t, a)

	want := []EntryTiming{
		{Start: 0, End: 1.2},
		{Start: 0.6, End: 1.6},
		{Start: 1.1, End: 2.0},
	}
	if diff := cmp.Diff(want, tl.Timings(), timingOpt); diff != "" {
		t.Errorf("Timings mismatch (-want +got):\n%s", diff)
	}
	if !approxEqual(tl.Duration(), 2.0, 1e-5) {
		t.Errorf("Duration = %f, want 2.0", tl.Duration())
	}
}

func TestTimelineStaggerSpacing(t *testing.T) {
	a := NewAnimator()
	cards := []*Element{
		NewElement("c0", RoleCard),
		NewElement("c1", RoleCard),
		NewElement("c2", RoleCard),
	}
	spec := fadeUp(nil, 0.85)
	spec.Delay = 0.25
	tl, err := a.Timeline(Stagger(targetsOf(cards), spec, 0.2)...)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}

	want := []EntryTiming{
		{Start: 0.25, End: 1.1},
		{Start: 0.45, End: 1.3},
		{Start: 0.65, End: 1.5},
	}
	if diff := cmp.Diff(want, tl.Timings(), timingOpt); diff != "" {
		t.Errorf("Timings mismatch (-want +got):\n%s", diff)
	}
}

func TestTimelineStaggerWithoutDelay(t *testing.T) {
	a := NewAnimator()
	cards := []*Element{
		NewElement("c0", RoleCard),
		NewElement("c1", RoleCard),
		NewElement("c2", RoleCard),
	}
	tl, err := a.Timeline(Stagger(targetsOf(cards), fadeUp(nil, 0.85), 0.2)...)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	got := tl.Timings()[1]
	if !approxEqual(got.Start, 0.2, 1e-5) || !approxEqual(got.End, 1.05, 1e-5) {
		t.Errorf("card 2 runs %f..%f, want 0.2..1.05", got.Start, got.End)
	}
}

func TestTimelineNegativeStart(t *testing.T) {
	a := NewAnimator()
	el := NewElement("x", RoleBody)

	_, err := a.Timeline(Entry{Spec: fadeUp(el, 1), Offset: -0.1})
	if !errors.Is(err, ErrNegativeStart) {
		t.Errorf("first entry: err = %v, want ErrNegativeStart", err)
	}

	_, err = a.Timeline(
		Entry{Spec: fadeUp(el, 1)},
		Entry{Spec: fadeUp(el, 1), Offset: -1.5},
	)
	if !errors.Is(err, ErrNegativeStart) {
		t.Errorf("overlap past zero: err = %v, want ErrNegativeStart", err)
	}
}

func TestTimelineRejectsRepeatingEntries(t *testing.T) {
	a := NewAnimator()
	spec := fadeUp(NewElement("x", RoleBody), 1)
	spec.Repeat = RepeatForever
	if _, err := a.Timeline(Entry{Spec: spec}); !errors.Is(err, ErrRepeatInTimeline) {
		t.Errorf("err = %v, want ErrRepeatInTimeline", err)
	}

	bad := fadeUp(NewElement("y", RoleBody), 0)
	if _, err := a.Timeline(Entry{Spec: bad}); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("err = %v, want ErrInvalidDuration", err)
	}
}

func TestTimelineRepeatStartsOver(t *testing.T) {
	a := NewAnimator()
	tl, els := heroTimeline(t, a)
	if err := tl.SetRepeat(1); err != nil {
		t.Fatalf("SetRepeat: %v", err)
	}
	tl.Prime()
	tl.Play()

	runFor(a, 2.25)
	if tl.State() != TimelinePlaying || tl.Loops() != 1 {
		t.Fatalf("state = %v loops = %d, want a second run playing", tl.State(), tl.Loops())
	}
	if op := els[0].Opacity(); op >= 0.5 {
		t.Errorf("headline opacity = %f, want it restarted from 0", op)
	}
	if op := els[2].Opacity(); op != 0 {
		t.Errorf("cta opacity = %f, want it primed back to 0", op)
	}

	runFor(a, 2.5)
	if tl.State() != TimelineCompleted || tl.Loops() != 1 {
		t.Errorf("state = %v loops = %d, want completed after one repeat", tl.State(), tl.Loops())
	}
	for _, el := range els {
		if !approxEqual(el.Opacity(), 1, epsilon) {
			t.Errorf("%s opacity = %f, want 1", el.Name, el.Opacity())
		}
	}
}

func TestTimelineRepeatForever(t *testing.T) {
	a := NewAnimator()
	tl, _ := heroTimeline(t, a)
	if err := tl.SetRepeat(RepeatForever); err != nil {
		t.Fatalf("SetRepeat: %v", err)
	}
	tl.Play()

	runFor(a, 10)
	if tl.State() != TimelinePlaying || tl.Loops() < 4 {
		t.Errorf("state = %v loops = %d, want still playing after several runs", tl.State(), tl.Loops())
	}
	if a.Active() != 1 {
		t.Errorf("Active = %d, want 1", a.Active())
	}

	tl.Reverse()
	if tl.Loops() != 0 {
		t.Errorf("Loops = %d after Reverse, want 0", tl.Loops())
	}
	runFor(a, 2.5)
	if tl.State() != TimelineReversed {
		t.Errorf("state = %v, want reversed", tl.State())
	}

	if err := tl.SetRepeat(-2); !errors.Is(err, ErrInvalidRepeat) {
		t.Errorf("SetRepeat(-2) err = %v, want ErrInvalidRepeat", err)
	}
}

func TestTimelineOverlapStartsOnSchedule(t *testing.T) {
	a := NewAnimator()
	tl, els := heroTimeline(t, a)
	tl.Prime()
	tl.Play()

	runFor(a, 0.5)
	if els[0].Opacity() <= 0 {
		t.Error("headline should be moving at 0.5s")
	}
	if els[1].Opacity() != 0 {
		t.Errorf("subheadline opacity = %f at 0.5s, want 0 before its 0.6s start", els[1].Opacity())
	}

	runFor(a, 0.25)
	if els[1].Opacity() <= 0 {
		t.Error("subheadline should be moving at 0.75s")
	}
	if els[2].Opacity() != 0 {
		t.Errorf("cta opacity = %f at 0.75s, want 0", els[2].Opacity())
	}

	runFor(a, 1.5)
	if tl.State() != TimelineCompleted {
		t.Fatalf("State = %v, want completed", tl.State())
	}
	for _, el := range els {
		y, _ := el.Get(PropY)
		if !approxEqual(el.Opacity(), 1, epsilon) || !approxEqual(y, 0, epsilon) {
			t.Errorf("%s ended at opacity=%f y=%f, want 1, 0", el.Name, el.Opacity(), y)
		}
	}
	if a.Active() != 0 {
		t.Errorf("Active = %d after completion, want 0", a.Active())
	}
}

func TestTimelinePrimeWritesFrom(t *testing.T) {
	a := NewAnimator()
	tl, els := heroTimeline(t, a)
	tl.Prime()
	for _, el := range els {
		y, _ := el.Get(PropY)
		if el.Opacity() != 0 || y != 40 {
			t.Errorf("%s primed to opacity=%f y=%f, want 0, 40", el.Name, el.Opacity(), y)
		}
	}
}

func TestTimelinePlayThenReverseRestores(t *testing.T) {
	a := NewAnimator()
	tl, els := heroTimeline(t, a)
	tl.Prime()

	before := make([]PropertyMap, len(els))
	for i, el := range els {
		before[i] = PropertyMap{PropOpacity: el.Opacity()}
		before[i][PropY], _ = el.Get(PropY)
	}

	tl.Play()
	runFor(a, 0.875)
	tl.Reverse()
	runFor(a, 3)

	if tl.State() != TimelineReversed {
		t.Fatalf("State = %v, want reversed", tl.State())
	}
	for i, el := range els {
		y, _ := el.Get(PropY)
		got := PropertyMap{PropOpacity: el.Opacity(), PropY: y}
		if diff := cmp.Diff(before[i], got, cmpopts.EquateApprox(0, epsilon)); diff != "" {
			t.Errorf("%s not restored (-want +got):\n%s", el.Name, diff)
		}
	}
}

func TestTimelineReverseFromCompletedMirrors(t *testing.T) {
	a := NewAnimator()
	tl, els := heroTimeline(t, a)
	tl.Prime()
	tl.Play()
	runFor(a, 2.5)

	tl.Reverse()
	runFor(a, 0.5)

	// The CTA ended last, so it leaves first; the headline waits 0.8s.
	if els[2].Opacity() >= 1 {
		t.Error("cta should be fading out 0.5s into the reverse")
	}
	if !approxEqual(els[0].Opacity(), 1, epsilon) {
		t.Errorf("headline opacity = %f, want 1 until its mirrored start", els[0].Opacity())
	}

	runFor(a, 2)
	for _, el := range els {
		if !approxEqual(el.Opacity(), 0, epsilon) {
			t.Errorf("%s opacity = %f after reverse, want 0", el.Name, el.Opacity())
		}
	}
}

func TestTimelineInterruptIsContinuous(t *testing.T) {
	a := NewAnimator()
	el := NewElement("cont", RoleBody)
	tl, err := a.Timeline(Entry{Spec: fadeUp(el, 1)})
	if err != nil {
		t.Fatal(err)
	}
	tl.Prime()
	tl.Play()
	runFor(a, 0.5)
	mid := el.Opacity()

	tl.Reverse()
	a.Update(0.125)
	if d := mid - el.Opacity(); d < 0 || d > 0.2 {
		t.Errorf("reverse jumped from %f to %f", mid, el.Opacity())
	}
	back := el.Opacity()

	tl.Play()
	a.Update(0.125)
	if d := el.Opacity() - back; d < 0 || d > 0.2 {
		t.Errorf("replay jumped from %f to %f", back, el.Opacity())
	}
}

func TestTimelineImmediateReverseIsNoop(t *testing.T) {
	a := NewAnimator()
	tl, els := heroTimeline(t, a)
	tl.Prime()
	tl.Play()
	tl.Reverse()
	runFor(a, 0.5)

	for _, el := range els {
		if el.Opacity() != 0 {
			t.Errorf("%s opacity = %f, want untouched 0", el.Name, el.Opacity())
		}
	}
	if tl.State() != TimelineReversed {
		t.Errorf("State = %v, want reversed", tl.State())
	}
}

func TestTimelinePlayIdempotent(t *testing.T) {
	a := NewAnimator()
	tl, els := heroTimeline(t, a)
	tl.Prime()
	tl.Play()
	runFor(a, 0.5)
	snapshot := els[0].Opacity()

	tl.Play()
	if els[0].Opacity() != snapshot {
		t.Error("second Play should not rewrite values")
	}
	if a.Active() != 1 {
		t.Errorf("Active = %d, want the timeline once", a.Active())
	}

	runFor(a, 2)
	tl.Play()
	if tl.State() != TimelineCompleted || a.Active() != 0 {
		t.Errorf("Play on a completed timeline: state=%v active=%d", tl.State(), a.Active())
	}

	// Reverse on a never-played timeline is a no-op.
	other, _ := heroTimeline(t, a)
	other.Reverse()
	if other.State() != TimelineIdle {
		t.Errorf("State = %v, want idle", other.State())
	}
}

func TestTimelineSkipsMissingTargets(t *testing.T) {
	a := NewAnimator()
	present := NewElement("present", RoleBody)
	gone := NewElement("gone", RoleBody)
	gone.Dispose()

	tl, err := a.Timeline(
		Entry{Spec: fadeUp(nil, 0.5)},
		Entry{Spec: fadeUp(gone, 0.5)},
		Entry{Spec: fadeUp(present, 0.5)},
	)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	timings := tl.Timings()
	if !timings[0].Skipped || !timings[1].Skipped || timings[2].Skipped {
		t.Errorf("Skipped flags = %v", timings)
	}
	if !approxEqual(timings[2].Start, 1.0, 1e-5) {
		t.Errorf("present starts at %f, want 1.0 (missing entries keep their slot)", timings[2].Start)
	}

	tl.Prime()
	tl.Play()
	runFor(a, 2)
	if !approxEqual(present.Opacity(), 1, epsilon) {
		t.Errorf("present opacity = %f, want 1", present.Opacity())
	}
}

func TestTimelineKill(t *testing.T) {
	a := NewAnimator()
	tl, els := heroTimeline(t, a)
	tl.Prime()
	tl.Play()
	runFor(a, 0.5)
	tl.Kill()
	v := els[0].Opacity()

	runFor(a, 1)
	if els[0].Opacity() != v {
		t.Error("killed timeline kept writing")
	}
	if a.Active() != 0 {
		t.Errorf("Active = %d after Kill, want 0", a.Active())
	}
	tl.Play()
	tl.Kill()
	if tl.State() != TimelineKilled {
		t.Errorf("State = %v, want killed", tl.State())
	}
}

func TestTimelineStateString(t *testing.T) {
	if TimelineReversing.String() != "reversing" {
		t.Errorf("String = %q", TimelineReversing.String())
	}
	if TimelineState(99).String() != "TimelineState(99)" {
		t.Errorf("String = %q", TimelineState(99).String())
	}
}
