package document

// NewSampleStoryboard builds the built-in demo storyboard: a background that
// spans the whole video, and a box that slides toward a target marker,
// spins, and scales up, with the usual mix of explicit and derived frame
// ranges.
func NewSampleStoryboard() *Storyboard {
	background := DefaultSetting()

	box := DefaultSetting()
	box.X = 100
	box.Y = 100

	marker := DefaultSetting()
	marker.X = 540
	marker.Y = 360
	marker.ScaleX = 2
	marker.ScaleY = 2

	return &Storyboard{
		ID:     "sb_sample",
		Name:   "Sample",
		FPS:    24,
		Width:  1280,
		Height: 720,
		Objects: []Object{
			{
				ID:      "obj_background",
				Name:    "Background",
				Frames:  &FrameSpec{Start: 1, End: 120},
				Setting: &background,
			},
			{
				ID:      "obj_marker",
				Name:    "Target marker",
				Frames:  &FrameSpec{Start: 1, End: 120},
				Setting: &marker,
			},
			{
				ID:      "obj_box",
				Name:    "Box",
				Frames:  &FrameSpec{Start: 1, End: 96},
				Setting: &box,
				Actions: []Action{
					{
						ID:     "act_slide",
						Name:   "Slide to marker",
						Frames: &FrameSpec{Start: 1, End: 48},
						Curve:  CurveSpec{Easing: "easeInOut", Ramp: &RampSpec{From: 0, To: 1}},
						Transition: &TransitionSpec{
							Type: "translation",
							From: "obj_box",
							To:   "obj_marker",
						},
					},
					{
						// No frames: derived to follow the slide.
						ID:         "act_spin",
						Name:       "Spin",
						Curve:      CurveSpec{Ramp: &RampSpec{From: 0, To: 6.283185307179586}},
						Transition: &TransitionSpec{Type: "rotation"},
					},
					{
						ID:     "act_grow",
						Name:   "Grow",
						Frames: &FrameSpec{Start: 49, End: 96},
						Curve:  CurveSpec{Easing: "cubicOut", Ramp: &RampSpec{From: 0, To: 1}},
						Transition: &TransitionSpec{
							Type: "scaling",
							From: "obj_box",
							To:   "obj_marker",
						},
					},
				},
			},
		},
	}
}
