package timeline

import "testing"

func TestTrackerVisitSequence(t *testing.T) {
	objA := object(0, rng(1, 10))
	actX := action(0, rng(1, 5))
	actY := action(1, rng(6, 10))
	objB := object(1, rng(11, 20))

	tr := NewTracker()

	tr.Visit(objA)
	if tr.CurrentObject != objA || tr.CurrentAction != nil {
		t.Fatal("after visiting first object: it should be current with no current action")
	}
	if tr.PreviousObject != nil || tr.PreviousAction != nil {
		t.Fatal("nothing should be previous yet")
	}

	tr.Visit(actX)
	if tr.CurrentObject != objA || tr.CurrentAction != actX {
		t.Fatal("visiting an action must leave the current object in place")
	}
	if tr.PreviousObject != objA {
		t.Fatal("visiting the first action archives the still-current object")
	}

	tr.Visit(actY)
	if tr.CurrentAction != actY {
		t.Fatal("second action should be current")
	}
	if tr.PreviousAction != actX {
		t.Fatal("first action should be previous")
	}

	tr.Visit(objB)
	if tr.CurrentObject != objB {
		t.Fatal("second object should be current")
	}
	if tr.PreviousObject != objA {
		t.Fatal("first object should be previous")
	}
	if tr.CurrentAction != nil {
		t.Fatal("visiting an object must clear the current action")
	}
	if tr.PreviousAction != actY {
		t.Fatal("last action of the prior object stays previous")
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker()
	tr.Visit(object(0, rng(1, 10)))
	tr.Visit(action(0, rng(1, 10)))
	tr.Reset()

	if tr.CurrentObject != nil || tr.CurrentAction != nil ||
		tr.PreviousObject != nil || tr.PreviousAction != nil {
		t.Error("reset must clear all slots")
	}
}
