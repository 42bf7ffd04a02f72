package timeline

// RangePolicy computes a frame range for an element that did not declare one
// explicitly. last is the range it defaults relative to; firstUnderParent is
// true when last is the parent's own range rather than a preceding sibling's.
type RangePolicy func(last FrameRange, firstUnderParent bool) FrameRange

// DefaultPolicy spans the parent's full range for the first element under a
// parent, and otherwise continues immediately after the previous sibling
// with the same length.
func DefaultPolicy(last FrameRange, firstUnderParent bool) FrameRange {
	if firstUnderParent {
		return last
	}
	return FrameRange{
		Start: last.End + 1,
		End:   last.End + last.Len(),
	}
}

// Resolver assigns frame ranges across an ordered element tree in a single
// top-to-bottom pass. One resolver serves one pass; warnings accumulate on
// it and the tracker is reset when a new pass starts.
type Resolver struct {
	policy   RangePolicy
	tracker  *Tracker
	warnings []Warning
}

// NewResolver builds a resolver. A nil policy uses DefaultPolicy.
func NewResolver(policy RangePolicy) *Resolver {
	if policy == nil {
		policy = DefaultPolicy
	}
	return &Resolver{
		policy:  policy,
		tracker: NewTracker(),
	}
}

// Tracker exposes the pass context for consumers that need "the element
// currently being defined".
func (r *Resolver) Tracker() *Tracker {
	return r.tracker
}

// Warnings returns the diagnostics accumulated so far, in visitation order.
func (r *Resolver) Warnings() []Warning {
	return r.warnings
}

// Resolve runs a full pass over the top-level object list. On return every
// visited element has a frame range, unless the missing-range precondition
// failed, in which case the pass aborts and no partial result is usable.
func (r *Resolver) Resolve(objects []Node) error {
	r.tracker.Reset()
	r.warnings = nil
	return r.Assign(objects, nil)
}

// Assign resolves one ordered sibling list. parent is nil for the top-level
// object list; otherwise the parent's range bounds the available window and
// seeds the defaulting of the first child. Objects recurse into their
// actions immediately after their own range is set, preserving declaration
// order across the whole tree.
//
// Containment violations are recorded as warnings and never stop the pass.
func (r *Resolver) Assign(elems []Node, parent Node) error {
	var available *FrameRange
	var last *FrameRange
	if parent != nil {
		available = parent.FrameRange()
		last = available
	}

	for i, elem := range elems {
		r.tracker.Visit(elem)

		if elem.FrameRange() == nil {
			if last == nil {
				return &MissingFrameRangeError{Index: elem.Index(), Kind: elem.Kind()}
			}
			firstUnderParent := i == 0 && parent != nil
			elem.SetFrameRange(r.policy(*last, firstUnderParent))
		}

		last = elem.FrameRange()

		if available != nil && !available.ContainsRange(*last) {
			r.warnings = append(r.warnings, OutOfParentRangeWarning{
				ElementIndex: elem.Index(),
				ElementKind:  elem.Kind(),
				ParentIndex:  parent.Index(),
				Got:          *last,
				Available:    *available,
			})
		}

		if p, ok := elem.(Parent); ok {
			if err := r.Assign(p.Children(), elem); err != nil {
				return err
			}
		}
	}

	return nil
}
