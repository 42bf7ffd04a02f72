// Package curve provides the animation curves actions sample during
// rendering. A curve maps normalized time to a raw keyframe value; the
// engine treats it as opaque.
package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// DomainTolerance is how far a curve's domain may fall short of 1.0 before
// it is reported to the author. Curves should span [0,1].
const DomainTolerance = 1e-4

// Curve maps a normalized time t in [0,1] to a raw keyframe value.
type Curve interface {
	Value(t float64) float64
	Domain() (lo, hi float64)
}

// EndsAtOne reports whether the curve's domain ends at 1.0 within
// DomainTolerance.
func EndsAtOne(c Curve) bool {
	_, hi := c.Domain()
	return math.Abs(hi-1.0) <= DomainTolerance
}

// Sample is a single keyframe sample on a curve.
type Sample struct {
	T     float64 `json:"t" yaml:"t"`
	Value float64 `json:"value" yaml:"value"`
}

// Keyframes is a piecewise-linear curve over sorted keyframe samples.
// Values before the first sample hold the first value; values after the
// last sample hold the last value.
type Keyframes struct {
	samples []Sample
}

// NewKeyframes builds a keyframe curve. Samples are sorted by time; at
// least one sample is required.
func NewKeyframes(samples ...Sample) (*Keyframes, error) {
	if len(samples) == 0 {
		return nil, errors.New("keyframe curve requires at least one sample")
	}

	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].T < sorted[j].T
	})

	return &Keyframes{samples: sorted}, nil
}

// FromInts builds a keyframe curve from evenly spaced integer samples over
// [0,1]. Integer sequences are always interpolated in floating point
// regardless of the declared element type.
func FromInts(values ...int) (*Keyframes, error) {
	if len(values) == 0 {
		return nil, errors.New("keyframe curve requires at least one sample")
	}

	samples := make([]Sample, len(values))
	step := 0.0
	if len(values) > 1 {
		step = 1.0 / float64(len(values)-1)
	}
	for i, v := range values {
		samples[i] = Sample{T: float64(i) * step, Value: float64(v)}
	}
	if len(values) == 1 {
		samples[0].T = 1.0
	}

	return &Keyframes{samples: samples}, nil
}

// Value evaluates the curve at t.
func (k *Keyframes) Value(t float64) float64 {
	first := k.samples[0]
	last := k.samples[len(k.samples)-1]

	if t <= first.T {
		return first.Value
	}
	if t >= last.T {
		return last.Value
	}

	// Find the surrounding samples.
	i := sort.Search(len(k.samples), func(i int) bool {
		return k.samples[i].T >= t
	})
	prev := k.samples[i-1]
	next := k.samples[i]

	span := next.T - prev.T
	if span == 0 {
		return prev.Value
	}
	f := (t - prev.T) / span
	return prev.Value + (next.Value-prev.Value)*f
}

// Domain returns the time range the samples cover.
func (k *Keyframes) Domain() (lo, hi float64) {
	return k.samples[0].T, k.samples[len(k.samples)-1].T
}

// Ramp is a linear curve from From at t=0 to To at t=1.
type Ramp struct {
	From float64
	To   float64
}

func (r Ramp) Value(t float64) float64 {
	return r.From + (r.To-r.From)*t
}

func (r Ramp) Domain() (lo, hi float64) {
	return 0, 1
}

// Eased reshapes the time axis of a base curve with an easing function.
type Eased struct {
	Base Curve
	Ease func(float64) float64
}

func (e Eased) Value(t float64) float64 {
	return e.Base.Value(e.Ease(t))
}

func (e Eased) Domain() (lo, hi float64) {
	return e.Base.Domain()
}

// WithEasing wraps base with the named easing function.
func WithEasing(base Curve, name string) (Curve, error) {
	fn, err := EasingByName(name)
	if err != nil {
		return nil, err
	}
	return Eased{Base: base, Ease: fn}, nil
}

// ErrUnknownEasing is returned when an easing name has no registered
// function.
var ErrUnknownEasing = errors.New("unknown easing")

// EasingByName looks up an easing function by its authoring-layer name.
func EasingByName(name string) (func(float64) float64, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}
