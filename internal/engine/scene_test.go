package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/framecraft/framecraft/internal/document"
	"github.com/framecraft/framecraft/internal/timeline"
)

func TestBuildSampleStoryboard(t *testing.T) {
	scene, err := Build(document.NewSampleStoryboard())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(scene.Warnings) != 0 {
		t.Errorf("sample should build clean, got warnings: %v", scene.Warnings)
	}

	span, ok := scene.FrameSpan()
	if !ok {
		t.Fatal("sample scene has no frame span")
	}
	if diff := cmp.Diff(timeline.FrameRange{Start: 1, End: 120}, span); diff != "" {
		t.Errorf("frame span mismatch (-want +got):\n%s", diff)
	}

	box, ok := scene.Object("obj_box")
	if !ok {
		t.Fatal("obj_box missing from scene index")
	}
	if len(box.Actions) != 3 {
		t.Fatalf("obj_box has %d actions, want 3", len(box.Actions))
	}

	// The spin declares no frames, so it follows the slide.
	spin := box.Actions[1]
	if diff := cmp.Diff(timeline.FrameRange{Start: 49, End: 96}, *spin.FrameRange()); diff != "" {
		t.Errorf("derived spin range mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMissingFirstRange(t *testing.T) {
	sb := &document.Storyboard{
		Objects: []document.Object{{ID: "obj_a"}},
	}

	_, err := Build(sb)
	var missing *timeline.MissingFrameRangeError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingFrameRangeError", err)
	}
}

func TestBuildContainmentWarning(t *testing.T) {
	sb := &document.Storyboard{
		Objects: []document.Object{
			{
				ID:     "obj_a",
				Frames: &document.FrameSpec{Start: 1, End: 30},
				Actions: []document.Action{
					{
						ID:     "act_over",
						Frames: &document.FrameSpec{Start: 20, End: 40},
					},
				},
			},
		},
	}

	scene, err := Build(sb)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(scene.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(scene.Warnings))
	}
	if _, ok := scene.Warnings[0].(timeline.OutOfParentRangeWarning); !ok {
		t.Errorf("warning type = %T, want OutOfParentRangeWarning", scene.Warnings[0])
	}
}

func TestBuildCurveDomainWarning(t *testing.T) {
	sb := &document.Storyboard{
		Objects: []document.Object{
			{
				ID:     "obj_a",
				Frames: &document.FrameSpec{Start: 1, End: 10},
				Actions: []document.Action{
					{
						ID: "act_short",
						Curve: document.CurveSpec{
							Keyframes: []document.KeySample{
								{T: 0, Value: 0},
								{T: 0.9, Value: 1},
							},
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

	var found bool
	for _, w := range scene.Warnings {
		if dw, ok := w.(AnimationDomainWarning); ok {
			found = true
			if dw.ActionID != "act_short" || math.Abs(dw.DomainEnd-0.9) > 1e-12 {
				t.Errorf("warning = %+v, want act_short ending at 0.9", dw)
			}
		}
	}
	if !found {
		t.Error("expected an AnimationDomainWarning")
	}
}

func TestBuildRejectsInvalidRange(t *testing.T) {
	sb := &document.Storyboard{
		Objects: []document.Object{
			{ID: "obj_a", Frames: &document.FrameSpec{Start: 10, End: 5}},
		},
	}
	if _, err := Build(sb); err == nil {
		t.Error("expected error for end before start")
	}
}

func TestBuildUnknownEasing(t *testing.T) {
	sb := &document.Storyboard{
		Objects: []document.Object{
			{
				ID:     "obj_a",
				Frames: &document.FrameSpec{Start: 1, End: 10},
				Actions: []document.Action{
					{ID: "act_a", Curve: document.CurveSpec{Easing: "wobble"}},
				},
			},
		},
	}
	if _, err := Build(sb); err == nil {
		t.Error("expected error for unknown easing name")
	}
}

func TestCurrentSetting(t *testing.T) {
	scene, err := Build(document.NewSampleStoryboard())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// The box is the last object the resolution pass visited.
	setting, ok := scene.CurrentSetting()
	if !ok {
		t.Fatal("expected a current setting after a pass")
	}
	if setting.X != 100 || setting.Y != 100 {
		t.Errorf("current setting = %+v, want the box at (100,100)", setting)
	}
}
