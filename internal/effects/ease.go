package effects

import (
	"sort"

	"github.com/fogleman/ease"
	"github.com/pkg/errors"
)

// EaseFunc maps linear progress to eased progress.
type EaseFunc func(t float64) float64

// ErrUnknownEasing is returned by Easing for names it does not know.
var ErrUnknownEasing = errors.New("unknown easing")

var easings = map[string]EaseFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"out-bounce":   ease.OutBounce,
	"out-elastic":  ease.OutElastic,
}

// Easing looks up an easing curve by name. The empty name is linear.
func Easing(name string) (EaseFunc, error) {
	if name == "" {
		return nil, nil
	}
	e, ok := easings[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEasing, "%q", name)
	}
	return e, nil
}

// EasingNames lists the known easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
