package nexovera

import "time"

// frameStats holds per-frame timing and bookkeeping metrics.
// Only populated when debug mode is on.
type frameStats struct {
	pollTime    time.Duration
	animateTime time.Duration
	events      int
	active      int
	bindings    int
}

// SetDebugMode enables or disables per-frame stats, logged at debug level
// through Logger.
func (v *View) SetDebugMode(enabled bool) {
	v.debug = enabled
}

// debugLog writes one frame's stats.
func (v *View) debugLog(stats frameStats) {
	if !v.debug {
		return
	}
	Logger().Debug("nexovera: frame",
		"poll", stats.pollTime,
		"animate", stats.animateTime,
		"events", stats.events,
		"active", stats.active,
		"bindings", stats.bindings,
		"scrollY", v.viewport.ScrollY,
	)
}

// DebugSummary describes the mounted state for diagnostics.
type DebugSummary struct {
	Mounted       bool
	ScopeMembers  int
	Bindings      int
	Active        int
	ScrollY       float64
	TriggerStates map[string]TriggerState
}

// DebugSummary snapshots the view's current bookkeeping.
func (v *View) DebugSummary() DebugSummary {
	s := DebugSummary{
		Mounted:       v.scope != nil,
		Bindings:      v.registry.Len(),
		Active:        v.anim.Active(),
		ScrollY:       v.viewport.ScrollY,
		TriggerStates: make(map[string]TriggerState, v.registry.Len()),
	}
	if v.scope != nil {
		s.ScopeMembers = v.scope.Len()
	}
	for _, b := range v.registry.bindings {
		s.TriggerStates[b.id] = b.state
	}
	return s
}
