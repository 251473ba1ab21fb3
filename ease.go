package nexovera

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// Normalized adapts a gween easing function to a pure [0,1] -> [0,1] map.
func Normalized(fn ease.TweenFunc) func(t float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// eases maps the curve names used in page configuration to gween functions.
// The powerN family follows the usual web-animation convention where
// power1 is quadratic, power2 cubic, power3 quartic and power4 quintic.
var eases = map[string]ease.TweenFunc{
	"none":   ease.Linear,
	"linear": ease.Linear,

	"power1.in":    ease.InQuad,
	"power1.out":   ease.OutQuad,
	"power1.inout": ease.InOutQuad,
	"power2.in":    ease.InCubic,
	"power2.out":   ease.OutCubic,
	"power2.inout": ease.InOutCubic,
	"power3.in":    ease.InQuart,
	"power3.out":   ease.OutQuart,
	"power3.inout": ease.InOutQuart,
	"power4.in":    ease.InQuint,
	"power4.out":   ease.OutQuint,
	"power4.inout": ease.InOutQuint,

	"sine.in":      ease.InSine,
	"sine.out":     ease.OutSine,
	"sine.inout":   ease.InOutSine,
	"expo.in":      ease.InExpo,
	"expo.out":     ease.OutExpo,
	"expo.inout":   ease.InOutExpo,
	"circ.in":      ease.InCirc,
	"circ.out":     ease.OutCirc,
	"circ.inout":   ease.InOutCirc,
	"back.in":      ease.InBack,
	"back.out":     ease.OutBack,
	"back.inout":   ease.InOutBack,
	"bounce.in":    ease.InBounce,
	"bounce.out":   ease.OutBounce,
	"bounce.inout": ease.InOutBounce,

	"elastic.in":    ease.InElastic,
	"elastic.out":   ease.OutElastic,
	"elastic.inout": ease.InOutElastic,
}

// ParseEase resolves a curve name such as "power3.out" or "sine.inOut".
// Names are case-insensitive; a bare family name ("sine") means ".out".
// The empty string resolves to linear.
func ParseEase(name string) (ease.TweenFunc, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return ease.Linear, nil
	}
	if !strings.Contains(key, ".") {
		if fn, ok := eases[key]; ok {
			return fn, nil
		}
		key += ".out"
	}
	fn, ok := eases[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
	}
	return fn, nil
}
