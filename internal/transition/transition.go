// Package transition maps a raw interpolated value to the renderable value
// an action contributes at a frame. Transition endpoints are opaque handles
// resolved through a TargetResolver at evaluation time, so an action can
// target "wherever object X currently is".
package transition

import (
	"fmt"

	"github.com/framecraft/framecraft/internal/geom"
)

// Kind discriminates the transition variants.
type Kind int

const (
	None Kind = iota
	Translation
	Rotation
	Scaling
)

// String returns the authoring-layer name of the kind.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Translation:
		return "translation"
	case Rotation:
		return "rotation"
	case Scaling:
		return "scaling"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindByName parses an authoring-layer transition name.
func KindByName(name string) (Kind, error) {
	switch name {
	case "", "none":
		return None, nil
	case "translation":
		return Translation, nil
	case "rotation":
		return Rotation, nil
	case "scaling":
		return Scaling, nil
	default:
		return None, fmt.Errorf("unknown transition type %q", name)
	}
}

// Target identifies a transition endpoint. Opaque to this package; the
// TargetResolver gives it meaning.
type Target string

// Transition is a closed tagged union over the supported variants. From and
// To are only meaningful for Translation and Scaling.
type Transition struct {
	Kind Kind
	From Target
	To   Target
}

// TargetResolver resolves endpoint handles lazily at evaluation time.
type TargetResolver interface {
	Position(target Target) (geom.Point, error)
	Scale(target Target) (geom.Scale, error)
}

// Value is the resolved per-frame output of a transition.
//
// The variants deliberately disagree about reference frames: Translation
// carries a delta from the from-position (the caller is already positioned
// at from), while Scaling carries the absolute interpolated scale. Rotation
// and None pass the raw curve output through untouched.
type Value struct {
	Kind  Kind
	Raw   float64    // None, Rotation
	Delta geom.Vec   // Translation
	Scale geom.Scale // Scaling
}

// Resolve dispatches on the transition variant to turn a raw interpolated
// value t into a renderable value.
func Resolve(t float64, tr Transition, targets TargetResolver) (Value, error) {
	switch tr.Kind {
	case None, Rotation:
		return Value{Kind: tr.Kind, Raw: t}, nil

	case Translation:
		from, err := targets.Position(tr.From)
		if err != nil {
			return Value{}, fmt.Errorf("resolve from-position: %w", err)
		}
		to, err := targets.Position(tr.To)
		if err != nil {
			return Value{}, fmt.Errorf("resolve to-position: %w", err)
		}
		full := to.Sub(from)
		return Value{
			Kind:  Translation,
			Delta: geom.Vec{X: full.X * t, Y: full.Y * t},
		}, nil

	case Scaling:
		from, err := targets.Scale(tr.From)
		if err != nil {
			return Value{}, fmt.Errorf("resolve from-scale: %w", err)
		}
		to, err := targets.Scale(tr.To)
		if err != nil {
			return Value{}, fmt.Errorf("resolve to-scale: %w", err)
		}
		return Value{
			Kind: Scaling,
			Scale: geom.Scale{
				X: from.X + t*(to.X-from.X),
				Y: from.Y + t*(to.Y-from.Y),
			},
		}, nil

	default:
		return Value{}, fmt.Errorf("unknown transition kind: %d", tr.Kind)
	}
}
