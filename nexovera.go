package nexovera

import (
	"errors"
	"math/rand/v2"
)

// Rect is an axis-aligned rectangle in document coordinates. The origin is
// the top-left of the document, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Range is a general-purpose min/max range. The zero Range is treated as
// "unset" by the ambient loop controller.
type Range struct {
	Min, Max float64
}

// IsZero reports whether both bounds are zero.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Random returns a uniformly distributed value in [Min, Max].
func (r Range) Random() float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

// Configuration errors. They are returned wrapped with context, so compare
// with errors.Is.
var (
	ErrInvalidDuration    = errors.New("nexovera: duration must be > 0")
	ErrInvalidDelay       = errors.New("nexovera: delay must be >= 0")
	ErrInvalidRepeat      = errors.New("nexovera: repeat must be -1 or >= 0")
	ErrEmptyProperties    = errors.New("nexovera: tween animates no properties")
	ErrKeyMismatch        = errors.New("nexovera: from/to property keys differ")
	ErrNegativeStart      = errors.New("nexovera: entry offset starts before the timeline")
	ErrRepeatInTimeline   = errors.New("nexovera: timeline entries cannot repeat")
	ErrInvalidRange       = errors.New("nexovera: invalid range")
	ErrInvalidTriggerLine = errors.New("nexovera: trigger line must be within [0, 1] and leave >= enter")
	ErrEmptySectionID     = errors.New("nexovera: section id is empty")
	ErrScopeReleased      = errors.New("nexovera: scope already released")
	ErrUnknownEase        = errors.New("nexovera: unknown ease")
)
