package timeline

// Kind discriminates the two element kinds the resolution pass visits.
type Kind int

const (
	KindObject Kind = iota
	KindAction
)

// String returns the element kind name.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindAction:
		return "action"
	default:
		return "unknown"
	}
}

// Node is an element whose frame range is being resolved: an object or an
// action. The range is nil until assigned; assignment happens at most once.
type Node interface {
	Kind() Kind
	Index() int
	FrameRange() *FrameRange
	SetFrameRange(FrameRange)
}

// Parent is a node with nested children (an object with its actions).
type Parent interface {
	Node
	Children() []Node
}

// Tracker is the pass-scoped resolution context: which object and action are
// currently being defined, and which came immediately before them. It is
// updated exactly once per element visited, in declaration order, and must
// be reset between independent passes.
type Tracker struct {
	CurrentObject  Node
	CurrentAction  Node
	PreviousObject Node
	PreviousAction Node

	lastKind Kind
	seen     bool
}

// NewTracker returns a cleared tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Visit records that n is now the element being defined.
//
// The still-current element of the previously visited kind is archived into
// its previous slot first, so "relative to previous" consumers see the right
// sibling. Visiting an object clears the current action; no action is
// current until one is declared under the new object. Visiting an action
// leaves the current object untouched.
func (tr *Tracker) Visit(n Node) {
	if tr.seen {
		switch tr.lastKind {
		case KindObject:
			if tr.CurrentObject != nil {
				tr.PreviousObject = tr.CurrentObject
			}
		case KindAction:
			if tr.CurrentAction != nil {
				tr.PreviousAction = tr.CurrentAction
			}
		}
	}

	switch n.Kind() {
	case KindObject:
		tr.CurrentObject = n
		tr.CurrentAction = nil
	case KindAction:
		tr.CurrentAction = n
	}

	tr.lastKind = n.Kind()
	tr.seen = true
}

// Reset clears all slots. Must be called at the start of every independent
// resolution pass to avoid stale state crossing passes.
func (tr *Tracker) Reset() {
	tr.CurrentObject = nil
	tr.CurrentAction = nil
	tr.PreviousObject = nil
	tr.PreviousAction = nil
	tr.lastKind = 0
	tr.seen = false
}
