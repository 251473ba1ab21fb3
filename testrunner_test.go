package nexovera

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func runScript(t *testing.T, v *View, script string) *ScrollRunner {
	t.Helper()
	r, err := LoadScrollScript([]byte(script))
	if err != nil {
		t.Fatalf("LoadScrollScript: %v", err)
	}
	v.SetScrollRunner(r)
	for i := 0; i < 500 && !r.Done(); i++ {
		v.Update(1.0 / 60)
	}
	if !r.Done() {
		t.Fatal("runner did not finish")
	}
	return r
}

func TestScrollRunnerRecordsTransitions(t *testing.T) {
	root, vp := landingPage()
	v := NewView(root, vp, DefaultConfig())

	r := runScript(t, v, `{"steps": [
		{"action": "mount"},
		{"action": "mark", "label": "down"},
		{"action": "drag", "fromY": 0, "toY": 400, "frames": 4},
		{"action": "wait", "frames": 2},
		{"action": "mark", "label": "up"},
		{"action": "scroll", "y": 0}
	]}`)

	want := []string{
		"about:EnterForward",
		"about#body:EnterForward",
		"about:LeaveBackward",
		"about#body:LeaveBackward",
	}
	if diff := cmp.Diff(want, kinds(r.Events())); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want[2:], kinds(r.EventsSince("up"))); diff != "" {
		t.Errorf("events since up (-want +got):\n%s", diff)
	}
	if r.EventsSince("nope") != nil {
		t.Error("unknown mark should yield nil")
	}
}

func TestScrollRunnerSmoothAndUnmount(t *testing.T) {
	v := mountedView(t)
	r := runScript(t, v, `{"steps": [
		{"action": "smooth", "y": 1000, "duration": 0.25},
		{"action": "unmount"}
	]}`)

	if v.Mounted() {
		t.Error("script should have unmounted the view")
	}
	got := kinds(r.Events())
	want := []string{"about:EnterForward", "about#body:EnterForward", "product:EnterForward"}
	for _, w := range want {
		found := false
		for _, g := range got {
			if g == w {
				found = true
			}
		}
		if !found {
			t.Errorf("missing %s in %v", w, got)
		}
	}
}

func TestScrollRunnerDetach(t *testing.T) {
	v := mountedView(t)
	r, err := LoadScrollScript([]byte(`{"steps": [{"action": "wait", "frames": 1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	v.SetScrollRunner(r)
	v.SetScrollRunner(nil)
	v.Scroll(500)
	if len(r.Events()) != 0 {
		t.Error("detached runner still recording")
	}
}

func TestLoadScrollScriptErrors(t *testing.T) {
	for name, script := range map[string]string{
		"invalid json":   `{`,
		"no steps":       `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "teleport"}]}`,
	} {
		if _, err := LoadScrollScript([]byte(script)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
