package nexovera

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds an active smooth-scroll tween.
type scrollAnim struct {
	tween *gween.Tween
}

// Viewport is the window onto the document: its size and vertical scroll
// offset. It implements Geometry for the trigger Registry.
type Viewport struct {
	Width, Height float64
	// ScrollY is the document offset shown at the top of the viewport.
	ScrollY float64
	// DocumentHeight bounds scrolling when > 0.
	DocumentHeight float64

	scrollTween *scrollAnim
}

// NewViewport creates a viewport of the given size scrolled to the top.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// ViewportHeight implements Geometry.
func (v *Viewport) ViewportHeight() float64 {
	return v.Height
}

// OffsetTop implements Geometry for targets that implement Bounded.
func (v *Viewport) OffsetTop(t Target, scrollY float64) (float64, bool) {
	b, ok := t.(Bounded)
	if !ok || !t.Valid() {
		return 0, false
	}
	return b.Bounds().Y - scrollY, true
}

// Resize changes the viewport size and re-clamps the scroll offset.
func (v *Viewport) Resize(width, height float64) {
	v.Width = width
	v.Height = height
	v.ScrollY = v.clamp(v.ScrollY)
}

// MaxScroll returns the largest scroll offset, or +Inf when the document
// height is unknown.
func (v *Viewport) MaxScroll() float64 {
	if v.DocumentHeight <= 0 {
		return math.Inf(1)
	}
	return math.Max(0, v.DocumentHeight-v.Height)
}

func (v *Viewport) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, v.MaxScroll()))
}

// SetScroll jumps to y, cancelling any smooth scroll. It returns the
// clamped offset.
func (v *Viewport) SetScroll(y float64) float64 {
	v.scrollTween = nil
	v.ScrollY = v.clamp(y)
	return v.ScrollY
}

// ScrollTo animates the scroll offset to y over duration seconds.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.InOutCubic
	}
	target := v.clamp(y)
	if duration <= 0 {
		v.SetScroll(target)
		return
	}
	v.scrollTween = &scrollAnim{
		tween: gween.New(float32(v.ScrollY), float32(target), duration, easeFn),
	}
}

// ScrollToElement animates so the element's top sits offset pixels below
// the viewport top, as an in-page anchor link does.
func (v *Viewport) ScrollToElement(el Bounded, offset float64, duration float32, easeFn ease.TweenFunc) {
	v.ScrollTo(el.Bounds().Y-offset, duration, easeFn)
}

// Scrolling reports whether a smooth scroll is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// Update advances a smooth scroll. It reports whether the offset moved.
func (v *Viewport) Update(dt float32) bool {
	if v.scrollTween == nil {
		return false
	}
	prev := v.ScrollY
	val, done := v.scrollTween.tween.Update(dt)
	v.ScrollY = v.clamp(float64(val))
	if done {
		v.scrollTween = nil
	}
	return v.ScrollY != prev
}

// VisibleBounds returns the document-space rectangle currently shown.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{X: 0, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// IsVisible reports whether a bounded target intersects the visible area.
func (v *Viewport) IsVisible(el Bounded) bool {
	return el.Bounds().Intersects(v.VisibleBounds())
}

// DocumentToScreen converts a document Y coordinate to a viewport Y.
func (v *Viewport) DocumentToScreen(y float64) float64 {
	return y - v.ScrollY
}

// ScreenToDocument converts a viewport Y coordinate to a document Y.
func (v *Viewport) ScreenToDocument(y float64) float64 {
	return y + v.ScrollY
}
