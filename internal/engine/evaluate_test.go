package engine

import (
	"math"
	"testing"

	"github.com/framecraft/framecraft/internal/document"
	"github.com/framecraft/framecraft/internal/transition"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func buildSample(t *testing.T) *Scene {
	t.Helper()
	scene, err := Build(document.NewSampleStoryboard())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return scene
}

func TestEvaluateTranslationEndpoints(t *testing.T) {
	scene := buildSample(t)
	box, _ := scene.Object("obj_box")
	slide := box.Actions[0]

	// First frame: nothing has moved yet.
	v, err := scene.EvaluateAction(slide, 1)
	if err != nil {
		t.Fatalf("EvaluateAction: %v", err)
	}
	if v.Kind != transition.Translation {
		t.Fatalf("kind = %v, want translation", v.Kind)
	}
	if !approx(v.Delta.X, 0) || !approx(v.Delta.Y, 0) {
		t.Errorf("frame 1 delta = %+v, want zero", v.Delta)
	}

	// Last frame: full displacement from the box to the marker.
	v, err = scene.EvaluateAction(slide, 48)
	if err != nil {
		t.Fatalf("EvaluateAction: %v", err)
	}
	if !approx(v.Delta.X, 440) || !approx(v.Delta.Y, 260) {
		t.Errorf("frame 48 delta = %+v, want (440,260)", v.Delta)
	}
}

func TestEvaluateScalingEndpoints(t *testing.T) {
	scene := buildSample(t)
	box, _ := scene.Object("obj_box")
	grow := box.Actions[2]

	v, err := scene.EvaluateAction(grow, 49)
	if err != nil {
		t.Fatalf("EvaluateAction: %v", err)
	}
	if v.Kind != transition.Scaling {
		t.Fatalf("kind = %v, want scaling", v.Kind)
	}
	if !approx(v.Scale.X, 1) || !approx(v.Scale.Y, 1) {
		t.Errorf("frame 49 scale = %+v, want the box's own (1,1)", v.Scale)
	}

	v, err = scene.EvaluateAction(grow, 96)
	if err != nil {
		t.Fatalf("EvaluateAction: %v", err)
	}
	if !approx(v.Scale.X, 2) || !approx(v.Scale.Y, 2) {
		t.Errorf("frame 96 scale = %+v, want the marker's (2,2)", v.Scale)
	}
}

func TestSnapshotAppliesActions(t *testing.T) {
	scene := buildSample(t)

	snap, err := scene.Snapshot(96)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Frame != 96 {
		t.Errorf("snapshot frame = %d, want 96", snap.Frame)
	}

	var box *ObjectState
	for i := range snap.Objects {
		if snap.Objects[i].ObjectID == "obj_box" {
			box = &snap.Objects[i]
		}
	}
	if box == nil {
		t.Fatal("obj_box missing from snapshot at frame 96")
	}

	// Slide ended at frame 48, so the position is the base setting again;
	// spin ends at a full turn and grow at the marker's scale.
	if !approx(box.X, 100) || !approx(box.Y, 100) {
		t.Errorf("box position = (%v,%v), want (100,100)", box.X, box.Y)
	}
	if !approx(box.Rotation, 2*math.Pi) {
		t.Errorf("box rotation = %v, want 2π", box.Rotation)
	}
	if !approx(box.ScaleX, 2) || !approx(box.ScaleY, 2) {
		t.Errorf("box scale = (%v,%v), want (2,2)", box.ScaleX, box.ScaleY)
	}
	if len(box.Transform) != 6 {
		t.Errorf("transform has %d entries, want 6", len(box.Transform))
	}
}

func TestSnapshotTranslationMovesObject(t *testing.T) {
	scene := buildSample(t)

	snap, err := scene.Snapshot(48)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	for _, st := range snap.Objects {
		if st.ObjectID != "obj_box" {
			continue
		}
		if !approx(st.X, 540) || !approx(st.Y, 360) {
			t.Errorf("box at frame 48 = (%v,%v), want the marker (540,360)", st.X, st.Y)
		}
		return
	}
	t.Fatal("obj_box missing from snapshot at frame 48")
}

func TestSnapshotSkipsInactiveObjects(t *testing.T) {
	scene := buildSample(t)

	// The box's range ends at 96; only background and marker remain.
	snap, err := scene.Snapshot(100)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Objects) != 2 {
		t.Fatalf("got %d objects at frame 100, want 2", len(snap.Objects))
	}
	for _, st := range snap.Objects {
		if st.ObjectID == "obj_box" {
			t.Error("obj_box should be inactive at frame 100")
		}
	}
}

func TestSnapshotOmitsIdentityTransform(t *testing.T) {
	scene := buildSample(t)

	// Past the box's range only the background and the marker remain; the
	// background sits at the neutral placement, the marker does not.
	snap, err := scene.Snapshot(110)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	for _, st := range snap.Objects {
		switch st.ObjectID {
		case "obj_background":
			if st.Transform != nil {
				t.Errorf("background transform = %v, want omitted for identity", st.Transform)
			}
		case "obj_marker":
			if len(st.Transform) != 6 {
				t.Errorf("marker transform = %v, want a full matrix", st.Transform)
			}
		}
	}
}

func TestEvaluateUnknownTarget(t *testing.T) {
	sb := &document.Storyboard{
		Objects: []document.Object{
			{
				ID:     "obj_a",
				Frames: &document.FrameSpec{Start: 1, End: 10},
				Actions: []document.Action{
					{
						ID: "act_a",
						Transition: &document.TransitionSpec{
							Type: "translation",
							To:   "obj_ghost",
						},
					},
				},
			},
		},
	}
	scene, err := Build(sb)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := scene.Snapshot(5); err == nil {
		t.Error("expected error for a transition targeting an unknown object")
	}
}
