// Package timeline resolves the concrete frame ranges objects and actions
// occupy in the rendered output, and maps frames within a range to a
// normalized progress value.
package timeline

import "fmt"

// FrameRange is an inclusive integer interval [Start, End] of output frames,
// Start <= End.
type FrameRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// NewFrameRange builds a frame range, validating ordering.
func NewFrameRange(start, end int) (FrameRange, error) {
	if end < start {
		return FrameRange{}, fmt.Errorf("invalid frame range [%d,%d]: end before start", start, end)
	}
	return FrameRange{Start: start, End: end}, nil
}

// Len returns the number of frames in the range.
func (r FrameRange) Len() int {
	return r.End - r.Start + 1
}

// Contains reports whether the frame falls inside the range.
func (r FrameRange) Contains(frame int) bool {
	return frame >= r.Start && frame <= r.End
}

// ContainsRange reports whether other is fully inside r.
func (r FrameRange) ContainsRange(other FrameRange) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Union returns the smallest range covering both r and other.
func (r FrameRange) Union(other FrameRange) FrameRange {
	out := r
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// String renders the range for diagnostics.
func (r FrameRange) String() string {
	return fmt.Sprintf("[%d,%d]", r.Start, r.End)
}

// Progress maps a frame to a normalized position in [0,1] within the range.
//
// The final frame is exactly 1.0, which keeps floating point drift out of
// end-of-range comparisons. A single-frame range is always 1.0. Progress is
// clamped to at most 1.0; frames before Start yield negative values and are
// a caller error, not defended here.
func (r FrameRange) Progress(frame int) float64 {
	if frame == r.End {
		return 1.0
	}
	if r.Len() == 1 {
		return 1.0
	}

	t := float64(frame-r.Start) / float64(r.Len()-1)
	if t > 1.0 {
		t = 1.0
	}
	return t
}
