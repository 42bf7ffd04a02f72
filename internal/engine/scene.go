// Package engine turns an authored storyboard into a resolved scene, with
// every object and action bound to a concrete frame range, and evaluates
// action values per output frame for the rendering backend.
package engine

import (
	"fmt"

	"github.com/framecraft/framecraft/internal/curve"
	"github.com/framecraft/framecraft/internal/document"
	"github.com/framecraft/framecraft/internal/timeline"
	"github.com/framecraft/framecraft/internal/transition"
	"github.com/framecraft/framecraft/internal/typeid"
)

// Scene is the resolved form of a storyboard. Once built it is read-only;
// frame evaluation is side-effect-free and safe to run concurrently across
// frames.
type Scene struct {
	FPS     int
	Width   int
	Height  int
	Objects []*Object

	// Warnings accumulated during resolution: containment violations and
	// curve-domain problems. Surfaced to the author, never fatal.
	Warnings []timeline.Warning

	index   map[string]*Object
	tracker *timeline.Tracker
}

// Object is a resolved persistent visual entity.
type Object struct {
	ID      string
	Name    string
	Setting document.Setting
	Actions []*Action

	index  int
	frames *timeline.FrameRange
}

// Action is a resolved time-bounded behavior attached to its owning object.
type Action struct {
	ID         string
	Name       string
	Curve      curve.Curve
	Transition transition.Transition
	Owner      *Object

	index  int
	frames *timeline.FrameRange
}

// --- timeline.Node implementations ---

func (o *Object) Kind() timeline.Kind { return timeline.KindObject }
func (o *Object) Index() int          { return o.index }

func (o *Object) FrameRange() *timeline.FrameRange { return o.frames }

func (o *Object) SetFrameRange(r timeline.FrameRange) { o.frames = &r }

// Children returns the object's actions for the resolution pass.
func (o *Object) Children() []timeline.Node {
	nodes := make([]timeline.Node, len(o.Actions))
	for i, a := range o.Actions {
		nodes[i] = a
	}
	return nodes
}

func (a *Action) Kind() timeline.Kind { return timeline.KindAction }
func (a *Action) Index() int          { return a.index }

func (a *Action) FrameRange() *timeline.FrameRange { return a.frames }

func (a *Action) SetFrameRange(r timeline.FrameRange) { a.frames = &r }

// --- build ---

// Build compiles a storyboard into a scene and runs the frame-range
// resolution pass over it. The only fatal failure modes are malformed specs
// and the missing-range precondition; containment and curve-domain problems
// come back as warnings on the scene.
func Build(sb *document.Storyboard) (*Scene, error) {
	s := &Scene{
		FPS:    sb.FPS,
		Width:  sb.Width,
		Height: sb.Height,
		index:  make(map[string]*Object),
	}
	if s.FPS <= 0 {
		s.FPS = 24
	}

	for i, docObj := range sb.Objects {
		obj := &Object{
			ID:      docObj.ID,
			Name:    docObj.Name,
			Setting: document.DefaultSetting(),
			index:   i,
		}
		if obj.ID == "" {
			obj.ID = typeid.NewObjectID()
		}
		if docObj.Setting != nil {
			obj.Setting = *docObj.Setting
		}
		if docObj.Frames != nil {
			fr, err := timeline.NewFrameRange(docObj.Frames.Start, docObj.Frames.End)
			if err != nil {
				return nil, fmt.Errorf("object %d (%s): %w", i, obj.ID, err)
			}
			obj.frames = &fr
		}

		for j, docAct := range docObj.Actions {
			act, err := buildAction(docAct, obj, j)
			if err != nil {
				return nil, fmt.Errorf("object %d (%s): %w", i, obj.ID, err)
			}
			obj.Actions = append(obj.Actions, act)
		}

		s.Objects = append(s.Objects, obj)
		s.index[obj.ID] = obj
	}

	resolver := timeline.NewResolver(nil)
	nodes := make([]timeline.Node, len(s.Objects))
	for i, obj := range s.Objects {
		nodes[i] = obj
	}
	if err := resolver.Resolve(nodes); err != nil {
		return nil, err
	}

	s.tracker = resolver.Tracker()
	s.Warnings = append(s.Warnings, resolver.Warnings()...)

	// Curves should span [0,1]; anything else renders, but probably not the
	// way the author meant.
	for _, obj := range s.Objects {
		for _, act := range obj.Actions {
			if !curve.EndsAtOne(act.Curve) {
				_, hi := act.Curve.Domain()
				s.Warnings = append(s.Warnings, AnimationDomainWarning{
					ObjectIndex: obj.index,
					ActionIndex: act.index,
					ActionID:    act.ID,
					DomainEnd:   hi,
				})
			}
		}
	}

	return s, nil
}

func buildAction(docAct document.Action, owner *Object, index int) (*Action, error) {
	act := &Action{
		ID:    docAct.ID,
		Name:  docAct.Name,
		Owner: owner,
		index: index,
	}
	if act.ID == "" {
		act.ID = typeid.NewActionID()
	}

	if docAct.Frames != nil {
		fr, err := timeline.NewFrameRange(docAct.Frames.Start, docAct.Frames.End)
		if err != nil {
			return nil, fmt.Errorf("action %d (%s): %w", index, act.ID, err)
		}
		act.frames = &fr
	}

	c, err := compileCurve(docAct.Curve)
	if err != nil {
		return nil, fmt.Errorf("action %d (%s): %w", index, act.ID, err)
	}
	act.Curve = c

	tr, err := compileTransition(docAct.Transition, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("action %d (%s): %w", index, act.ID, err)
	}
	act.Transition = tr

	return act, nil
}

func compileCurve(spec document.CurveSpec) (curve.Curve, error) {
	var base curve.Curve
	var err error

	switch {
	case len(spec.Keyframes) > 0:
		samples := make([]curve.Sample, len(spec.Keyframes))
		for i, k := range spec.Keyframes {
			samples[i] = curve.Sample{T: k.T, Value: k.Value}
		}
		base, err = curve.NewKeyframes(samples...)
	case len(spec.IntValues) > 0:
		base, err = curve.FromInts(spec.IntValues...)
	case spec.Ramp != nil:
		base = curve.Ramp{From: spec.Ramp.From, To: spec.Ramp.To}
	default:
		// Identity ramp: progress passes through untouched.
		base = curve.Ramp{From: 0, To: 1}
	}
	if err != nil {
		return nil, err
	}

	if spec.Easing != "" {
		return curve.WithEasing(base, spec.Easing)
	}
	return base, nil
}

func compileTransition(spec *document.TransitionSpec, ownerID string) (transition.Transition, error) {
	if spec == nil {
		return transition.Transition{Kind: transition.None}, nil
	}

	kind, err := transition.KindByName(spec.Type)
	if err != nil {
		return transition.Transition{}, err
	}

	tr := transition.Transition{
		Kind: kind,
		From: transition.Target(spec.From),
		To:   transition.Target(spec.To),
	}
	// An endpoint left empty targets the owning object itself.
	if tr.From == "" {
		tr.From = transition.Target(ownerID)
	}
	if tr.To == "" {
		tr.To = transition.Target(ownerID)
	}

	return tr, nil
}

// Object looks up an object by ID.
func (s *Scene) Object(id string) (*Object, bool) {
	obj, ok := s.index[id]
	return obj, ok
}

// FrameSpan returns the range of output frames covered by any object. ok is
// false for an empty scene.
func (s *Scene) FrameSpan() (timeline.FrameRange, bool) {
	if len(s.Objects) == 0 {
		return timeline.FrameRange{}, false
	}
	span := *s.Objects[0].frames
	for _, obj := range s.Objects[1:] {
		span = span.Union(*obj.frames)
	}
	return span, true
}

// CurrentSetting returns the rendering state of the object most recently
// visited by the resolution pass: "the thing currently being defined".
func (s *Scene) CurrentSetting() (document.Setting, bool) {
	if s.tracker == nil || s.tracker.CurrentObject == nil {
		return document.Setting{}, false
	}
	obj, ok := s.tracker.CurrentObject.(*Object)
	if !ok {
		return document.Setting{}, false
	}
	return obj.Setting, true
}

// AnimationDomainWarning reports a curve whose domain does not end at 1.0
// within tolerance. Curves should span [0,1].
type AnimationDomainWarning struct {
	ObjectIndex int     `json:"objectIndex"`
	ActionIndex int     `json:"actionIndex"`
	ActionID    string  `json:"actionId"`
	DomainEnd   float64 `json:"domainEnd"`
}

func (w AnimationDomainWarning) Warning() string {
	return fmt.Sprintf("action %d (%s): animation curve domain ends at %g, expected 1.0", w.ActionIndex, w.ActionID, w.DomainEnd)
}
