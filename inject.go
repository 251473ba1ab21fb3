package nexovera

// InjectScroll queues a scroll notification at document offset y. One
// queued position is consumed per Update, before animations advance.
func (v *View) InjectScroll(y float64) {
	v.injectQueue = append(v.injectQueue, y)
}

// InjectScrollTo queues a linear scroll from fromY to toY over frames
// frames, ending exactly on toY. Minimum frames is 1.
func (v *View) InjectScrollTo(fromY, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		v.InjectScroll(fromY + (toY-fromY)*t)
	}
}

// PendingScrolls returns the number of queued scroll notifications.
func (v *View) PendingScrolls() int {
	return len(v.injectQueue)
}

// processInjectedScroll pops one queued position and delivers it like a
// host notification. It reports whether one was consumed.
func (v *View) processInjectedScroll() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	y := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]
	v.Scroll(y)
	return true
}
