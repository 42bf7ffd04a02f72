// Package document is the authoring-layer storyboard model: an ordered list
// of objects, each with ordered actions, as produced by the editor or read
// from a storyboard file. Declaration order is significant and preserved.
package document

// Storyboard is a complete authored animation.
type Storyboard struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	FPS     int      `json:"fps" yaml:"fps"`
	Width   int      `json:"width" yaml:"width"`
	Height  int      `json:"height" yaml:"height"`
	Objects []Object `json:"objects" yaml:"objects"`
}

// FrameSpec is an author-declared inclusive frame range. Absence means the
// range is derived from the previous sibling or the parent during
// resolution.
type FrameSpec struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Setting is the entity-specific rendering state of an object: its base
// placement on the stage before any action contributes.
type Setting struct {
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	ScaleX   float64 `json:"sx" yaml:"sx"`
	ScaleY   float64 `json:"sy" yaml:"sy"`
	Rotation float64 `json:"r" yaml:"r"` // radians
	Opacity  float64 `json:"opacity" yaml:"opacity"`
}

// DefaultSetting returns the neutral placement.
func DefaultSetting() Setting {
	return Setting{ScaleX: 1, ScaleY: 1, Opacity: 1}
}

// Object is a persistent visual entity.
type Object struct {
	ID      string     `json:"id" yaml:"id"`
	Name    string     `json:"name,omitempty" yaml:"name,omitempty"`
	Frames  *FrameSpec `json:"frames,omitempty" yaml:"frames,omitempty"`
	Setting *Setting   `json:"setting,omitempty" yaml:"setting,omitempty"`
	Actions []Action   `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// Action is a time-bounded behavior attached to an object.
type Action struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name,omitempty" yaml:"name,omitempty"`
	Frames     *FrameSpec      `json:"frames,omitempty" yaml:"frames,omitempty"`
	Curve      CurveSpec       `json:"curve" yaml:"curve"`
	Transition *TransitionSpec `json:"transition,omitempty" yaml:"transition,omitempty"`
}

// CurveSpec declares an action's animation curve. Exactly one of Keyframes,
// IntValues, or Ramp provides the samples; Easing names an optional
// reshaping of the time axis.
type CurveSpec struct {
	Easing    string      `json:"easing,omitempty" yaml:"easing,omitempty"`
	Keyframes []KeySample `json:"keyframes,omitempty" yaml:"keyframes,omitempty"`
	IntValues []int       `json:"intValues,omitempty" yaml:"intValues,omitempty"`
	Ramp      *RampSpec   `json:"ramp,omitempty" yaml:"ramp,omitempty"`
}

// KeySample is one keyframe sample: a value at a normalized time.
type KeySample struct {
	T     float64 `json:"t" yaml:"t"`
	Value float64 `json:"value" yaml:"value"`
}

// RampSpec is a linear curve between two values.
type RampSpec struct {
	From float64 `json:"from" yaml:"from"`
	To   float64 `json:"to" yaml:"to"`
}

// TransitionSpec declares how an action's curve output becomes a renderable
// value. From and To name target objects, resolved at evaluation time.
type TransitionSpec struct {
	Type string `json:"type" yaml:"type"` // none, translation, rotation, scaling
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	To   string `json:"to,omitempty" yaml:"to,omitempty"`
}
