package engine

import (
	"fmt"

	"github.com/framecraft/framecraft/internal/geom"
	"github.com/framecraft/framecraft/internal/transition"
)

// targetResolver resolves transition endpoints against the scene's current
// object settings. Resolution is lazy: an action declared before its target
// still sees the target's state at evaluation time.
type targetResolver struct {
	scene *Scene
}

func (r targetResolver) Position(target transition.Target) (geom.Point, error) {
	obj, ok := r.scene.index[string(target)]
	if !ok {
		return geom.Point{}, fmt.Errorf("unknown target object %q", target)
	}
	// The anchor is the object's stage matrix applied to its local origin.
	m := geom.Compose(obj.Setting.X, obj.Setting.Y, obj.Setting.ScaleX, obj.Setting.ScaleY, obj.Setting.Rotation)
	return m.TransformPoint(geom.Point{}), nil
}

func (r targetResolver) Scale(target transition.Target) (geom.Scale, error) {
	obj, ok := r.scene.index[string(target)]
	if !ok {
		return geom.Scale{}, fmt.Errorf("unknown target object %q", target)
	}
	return geom.Scale{X: obj.Setting.ScaleX, Y: obj.Setting.ScaleY}, nil
}

// EvaluateAction computes the renderable value an action contributes at a
// frame: frame → progress → curve → transition. Read-only on the action;
// the scene must already be resolved.
func (s *Scene) EvaluateAction(a *Action, frame int) (transition.Value, error) {
	if a.frames == nil {
		return transition.Value{}, fmt.Errorf("action %s has no resolved frame range", a.ID)
	}

	t := a.frames.Progress(frame)
	raw := a.Curve.Value(t)

	return transition.Resolve(raw, a.Transition, targetResolver{scene: s})
}

// ActionValue pairs an action with its resolved value at a frame.
type ActionValue struct {
	ActionID string           `json:"actionId"`
	Value    transition.Value `json:"value"`
}

// ObjectState is the render-ready state of one object at one frame: its
// base setting with every active action applied, plus the composed stage
// matrix.
type ObjectState struct {
	ObjectID string  `json:"objectId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ScaleX   float64 `json:"sx"`
	ScaleY   float64 `json:"sy"`
	Rotation float64 `json:"r"`
	Opacity  float64 `json:"opacity"`

	Transform []float64     `json:"transform,omitempty"`
	Actions   []ActionValue `json:"actions,omitempty"`
}

// FrameSnapshot is everything the rendering backend needs for one output
// frame, in declaration (painter's) order.
type FrameSnapshot struct {
	Frame   int           `json:"frame"`
	Objects []ObjectState `json:"objects"`
}

// Snapshot evaluates every object and action active at the given frame.
//
// Translation values are deltas added to the object's base position; scaling
// values are absolute; rotation angles are used as-is. A None transition
// contributes its raw value to the action list without touching the state.
func (s *Scene) Snapshot(frame int) (*FrameSnapshot, error) {
	snap := &FrameSnapshot{Frame: frame}

	for _, obj := range s.Objects {
		if obj.frames == nil || !obj.frames.Contains(frame) {
			continue
		}

		state := ObjectState{
			ObjectID: obj.ID,
			X:        obj.Setting.X,
			Y:        obj.Setting.Y,
			ScaleX:   obj.Setting.ScaleX,
			ScaleY:   obj.Setting.ScaleY,
			Rotation: obj.Setting.Rotation,
			Opacity:  obj.Setting.Opacity,
		}

		for _, act := range obj.Actions {
			if act.frames == nil || !act.frames.Contains(frame) {
				continue
			}

			v, err := s.EvaluateAction(act, frame)
			if err != nil {
				return nil, fmt.Errorf("evaluate action %s at frame %d: %w", act.ID, frame, err)
			}

			switch v.Kind {
			case transition.Translation:
				state.X += v.Delta.X
				state.Y += v.Delta.Y
			case transition.Scaling:
				state.ScaleX = v.Scale.X
				state.ScaleY = v.Scale.Y
			case transition.Rotation:
				state.Rotation = v.Raw
			}

			state.Actions = append(state.Actions, ActionValue{ActionID: act.ID, Value: v})
		}

		// Untransformed objects omit the matrix; the renderer treats a
		// missing transform as identity.
		if m := geom.Compose(state.X, state.Y, state.ScaleX, state.ScaleY, state.Rotation); !m.IsIdentity() {
			state.Transform = m.ToSlice()
		}
		snap.Objects = append(snap.Objects, state)
	}

	return snap, nil
}
