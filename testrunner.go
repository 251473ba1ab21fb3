package nexovera

import (
	"encoding/json"
	"fmt"
)

// scrollStep represents a single action in a scroll script.
type scrollStep struct {
	Action   string  `json:"action"`
	Y        float64 `json:"y,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Label    string  `json:"label,omitempty"`
}

// scrollScript is the top-level JSON structure for a scroll script.
type scrollScript struct {
	Steps []scrollStep `json:"steps"`
}

// ScrollRunner replays a scripted scroll session against a View, one step
// per frame, and records every transition it causes. Attach it with
// View.SetScrollRunner.
type ScrollRunner struct {
	steps     []scrollStep
	cursor    int
	waitCount int
	done      bool

	events      []TransitionEvent
	marks       map[string]int
	unsubscribe func()
}

// LoadScrollScript parses a JSON scroll script.
//
// Actions: "scroll" (y), "drag" (fromY, toY, frames), "smooth" (y,
// duration), "wait" (frames), "mount", "unmount", "mark" (label).
func LoadScrollScript(jsonData []byte) (*ScrollRunner, error) {
	var script scrollScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse scroll script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scroll script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "scroll", "drag", "smooth", "wait", "mount", "unmount", "mark":
		default:
			return nil, fmt.Errorf("parse scroll script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScrollRunner{steps: script.Steps, marks: make(map[string]int)}, nil
}

// SetScrollRunner attaches a runner. Its step method is called at the
// start of every Update. Passing nil detaches the current runner.
func (v *View) SetScrollRunner(r *ScrollRunner) {
	if v.runner != nil && v.runner.unsubscribe != nil {
		v.runner.unsubscribe()
		v.runner.unsubscribe = nil
	}
	v.runner = r
	if r != nil {
		r.unsubscribe = v.registry.Subscribe(func(ev TransitionEvent) {
			r.events = append(r.events, ev)
		})
	}
}

// Done reports whether every step has executed and all injected scrolls
// have drained.
func (r *ScrollRunner) Done() bool {
	return r.done
}

// Events returns every transition recorded since the runner was attached.
func (r *ScrollRunner) Events() []TransitionEvent {
	return r.events
}

// EventsSince returns the transitions recorded after the "mark" step with
// the given label.
func (r *ScrollRunner) EventsSince(label string) []TransitionEvent {
	i, ok := r.marks[label]
	if !ok {
		return nil
	}
	return r.events[i:]
}

// step advances the runner by one frame.
func (r *ScrollRunner) step(v *View) {
	if r.done {
		return
	}
	if len(v.injectQueue) > 0 || v.viewport.Scrolling() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "scroll":
		v.InjectScroll(st.Y)
	case "drag":
		v.InjectScrollTo(st.FromY, st.ToY, st.Frames)
	case "smooth":
		v.viewport.ScrollTo(st.Y, st.Duration, nil)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "mount":
		if err := v.Mount(); err != nil {
			Logger().Warn("nexovera: scroll script mount failed", "err", err)
		}
	case "unmount":
		v.Unmount()
	case "mark":
		r.marks[st.Label] = len(r.events)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(v.injectQueue) == 0 && !v.viewport.Scrolling() {
		r.done = true
	}
}
