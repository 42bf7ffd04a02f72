package timeline

import "fmt"

// MissingFrameRangeError aborts a resolution pass: an element had no explicit
// frame range and there was no predecessor or parent range to derive one
// from. The first element of a parentless list must always be explicit.
type MissingFrameRangeError struct {
	Index int
	Kind  Kind
}

func (e *MissingFrameRangeError) Error() string {
	return fmt.Sprintf("%s %d has no frame range and no preceding range to derive one from; the frame range must be explicit on the first element when no parent range exists", e.Kind, e.Index)
}

// Warning is a non-fatal diagnostic accumulated during resolution or
// evaluation. Warnings are surfaced to the author but never abort a pass;
// authors iterating on timing should see every problem in one compile.
type Warning interface {
	Warning() string
}

// OutOfParentRangeWarning reports an element whose frame range is not fully
// contained in its parent's. The render proceeds; the result may look wrong.
type OutOfParentRangeWarning struct {
	ElementIndex int        `json:"elementIndex"`
	ElementKind  Kind       `json:"-"`
	ParentIndex  int        `json:"parentIndex"`
	Got          FrameRange `json:"got"`
	Available    FrameRange `json:"available"`
}

func (w OutOfParentRangeWarning) Warning() string {
	return fmt.Sprintf("%s %d: frame range %s is not contained in parent %d's range %s",
		w.ElementKind, w.ElementIndex, w.Got, w.ParentIndex, w.Available)
}
