package nexovera

import (
	"fmt"
	"math"
)

// Entry is one step of a Timeline. Offset is measured from the end of the
// previous entry; a negative offset overlaps it.
type Entry struct {
	Spec   TweenSpec
	Offset float32
}

// TimelineState describes where a Timeline's playhead is heading.
type TimelineState uint8

const (
	TimelineIdle      TimelineState = iota // built, never played
	TimelinePlaying                        // moving toward the end
	TimelineCompleted                      // parked at the end
	TimelineReversing                      // moving toward the start
	TimelineReversed                       // parked at the start after a reverse
	TimelineKilled                         // cancelled; ignores play and reverse
)

func (s TimelineState) String() string {
	switch s {
	case TimelineIdle:
		return "idle"
	case TimelinePlaying:
		return "playing"
	case TimelineCompleted:
		return "completed"
	case TimelineReversing:
		return "reversing"
	case TimelineReversed:
		return "reversed"
	case TimelineKilled:
		return "killed"
	default:
		return fmt.Sprintf("TimelineState(%d)", uint8(s))
	}
}

// EntryTiming is the resolved absolute placement of one entry.
type EntryTiming struct {
	Start, End float64
	Skipped    bool
}

type timelineEntry struct {
	spec       TweenSpec // Delay folded into start
	start, end float64
	skip       bool
}

// Timeline is an ordered composition of tweens played and reversed as a
// unit. It keeps a playhead in [0, Duration]; Play and Reverse schedule
// child tweens from the targets' current values so interrupting either
// direction never jumps.
type Timeline struct {
	entries []timelineEntry
	total   float64

	head     float64
	dir      int
	state    TimelineState
	children []*Tween
	owner    *Animator

	repeat int // extra forward runs; RepeatForever loops until killed
	loops  int // forward runs restarted so far
}

// Timeline validates and resolves entries into a new Timeline owned by a.
// The timeline joins the active set only while playing or reversing.
func (a *Animator) Timeline(entries ...Entry) (*Timeline, error) {
	tl := &Timeline{owner: a, entries: make([]timelineEntry, 0, len(entries))}
	prevEnd := 0.0
	for i, e := range entries {
		if err := e.Spec.Validate(); err != nil {
			return nil, fmt.Errorf("timeline entry %d: %w", i, err)
		}
		if e.Spec.Repeat != 0 {
			return nil, fmt.Errorf("timeline entry %d: %w", i, ErrRepeatInTimeline)
		}
		start := prevEnd + float64(e.Offset)
		if start < 0 {
			return nil, fmt.Errorf("timeline entry %d starts at %.3fs: %w", i, start, ErrNegativeStart)
		}
		start += float64(e.Spec.Delay)
		end := start + float64(e.Spec.Duration)

		spec := e.Spec
		spec.Delay = 0
		spec.From = e.Spec.From.Clone()
		spec.To = e.Spec.To.Clone()
		skip := spec.Target == nil || !spec.Target.Valid()
		if skip {
			Logger().Debug("nexovera: timeline entry has no target, skipping", "entry", i)
		}
		tl.entries = append(tl.entries, timelineEntry{spec: spec, start: start, end: end, skip: skip})

		prevEnd = end
		tl.total = math.Max(tl.total, end)
	}
	return tl, nil
}

// Stagger expands a group of targets sharing one spec into entries whose
// starts are i*step apart. spec.Delay applies once, to the whole group.
func Stagger(targets []Target, spec TweenSpec, step float32) []Entry {
	entries := make([]Entry, len(targets))
	for i, target := range targets {
		s := spec
		s.Target = target
		if i == 0 {
			entries[i] = Entry{Spec: s}
			continue
		}
		s.Delay = 0
		entries[i] = Entry{Spec: s, Offset: step - spec.Duration}
	}
	return entries
}

// SetRepeat makes a forward run start over from the head n more times once
// it reaches the end; RepeatForever loops until the timeline is killed. Each
// restart writes the entries' From values first. Reversing resets the count.
func (t *Timeline) SetRepeat(n int) error {
	if n < RepeatForever {
		return fmt.Errorf("timeline repeat %d: %w", n, ErrInvalidRepeat)
	}
	t.repeat = n
	return nil
}

// Prime writes every entry's From values so targets start in their
// pre-reveal state. It only acts on a timeline parked at the start.
func (t *Timeline) Prime() {
	if t.dir != 0 || t.head > 0 || t.state == TimelineKilled {
		return
	}
	// Earlier entries win when several animate the same target.
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := &t.entries[i]
		if e.skip || !e.spec.Target.Valid() {
			continue
		}
		for p, v := range e.spec.From {
			e.spec.Target.Set(p, v)
		}
	}
}

// Play runs the timeline forward from its playhead. Playing while already
// playing forward, or once completed, is a no-op.
func (t *Timeline) Play() {
	if t.state == TimelineKilled || t.dir > 0 || t.state == TimelineCompleted {
		return
	}
	t.supersede()
	for i := range t.entries {
		e := &t.entries[i]
		if e.skip || e.end <= t.head {
			continue
		}
		if e.start >= t.head {
			t.spawn(e, e.spec.From, e.spec.To, e.start-t.head, e.end-e.start)
			continue
		}
		t.spawn(e, t.current(e, e.spec.From), e.spec.To, 0, e.end-t.head)
	}
	t.dir = 1
	t.state = TimelinePlaying
	t.owner.add(t)
}

// Reverse runs the timeline back toward its start from the playhead,
// returning every target to its entry's From values. Reversing while
// already reversing, or while parked at the start, is a no-op.
func (t *Timeline) Reverse() {
	if t.state == TimelineKilled || t.dir < 0 || (t.dir == 0 && t.head <= 0) {
		return
	}
	t.supersede()
	t.loops = 0
	for i := range t.entries {
		e := &t.entries[i]
		if e.skip || e.start >= t.head {
			continue
		}
		if e.end <= t.head {
			t.spawn(e, e.spec.To, e.spec.From, t.head-e.end, e.end-e.start)
			continue
		}
		t.spawn(e, t.current(e, e.spec.To), e.spec.From, 0, t.head-e.start)
	}
	t.dir = -1
	t.state = TimelineReversing
	t.owner.add(t)
}

// Update moves the playhead by dt and advances the child tweens. The
// timeline parks once every child has finished.
func (t *Timeline) Update(dt float32) {
	if t.dir == 0 {
		return
	}
	t.head = math.Min(t.total, math.Max(0, t.head+float64(t.dir)*float64(dt)))

	allDone := true
	for _, c := range t.children {
		c.Update(dt)
		if !c.Done() {
			allDone = false
		}
	}
	if !allDone {
		return
	}
	if t.dir > 0 && (t.repeat == RepeatForever || t.loops < t.repeat) {
		t.loops++
		t.dir = 0
		t.head = 0
		t.children = t.children[:0]
		t.Prime()
		t.Play()
		return
	}
	if t.dir > 0 {
		t.head = t.total
		t.state = TimelineCompleted
	} else {
		t.head = 0
		t.state = TimelineReversed
	}
	t.dir = 0
	t.children = t.children[:0]
}

// Kill cancels every child tween and stops the timeline for good. Values
// keep whatever was last written. Kill is idempotent.
func (t *Timeline) Kill() {
	if t.state == TimelineKilled {
		return
	}
	t.supersede()
	t.dir = 0
	t.state = TimelineKilled
	t.owner.remove(t)
}

// Done reports whether the timeline is parked (not playing or reversing).
func (t *Timeline) Done() bool {
	return t.dir == 0
}

// State returns the timeline state.
func (t *Timeline) State() TimelineState {
	return t.state
}

// Duration returns the resolved total duration in seconds.
func (t *Timeline) Duration() float64 {
	return t.total
}

// Loops returns how many times a repeating run has started over.
func (t *Timeline) Loops() int {
	return t.loops
}

// Progress returns the playhead position in seconds.
func (t *Timeline) Progress() float64 {
	return t.head
}

// Timings returns the resolved absolute start and end of every entry.
func (t *Timeline) Timings() []EntryTiming {
	out := make([]EntryTiming, len(t.entries))
	for i, e := range t.entries {
		out[i] = EntryTiming{Start: e.start, End: e.end, Skipped: e.skip}
	}
	return out
}

// supersede cancels in-flight children so at most one tween writes a
// (target, property) pair at a time.
func (t *Timeline) supersede() {
	for _, c := range t.children {
		c.Cancel()
	}
	t.children = t.children[:0]
}

// current reads the target's live values for the entry's channels, falling
// back to fallback for channels the target cannot report.
func (t *Timeline) current(e *timelineEntry, fallback PropertyMap) PropertyMap {
	out := make(PropertyMap, len(fallback))
	for p, v := range fallback {
		if cur, ok := e.spec.Target.Get(p); ok {
			v = cur
		}
		out[p] = v
	}
	return out
}

func (t *Timeline) spawn(e *timelineEntry, from, to PropertyMap, delay, duration float64) {
	if duration <= 0 {
		return
	}
	spec := e.spec
	spec.From = from
	spec.To = to
	spec.Delay = float32(delay)
	spec.Duration = float32(duration)
	t.children = append(t.children, newTween(spec))
}
