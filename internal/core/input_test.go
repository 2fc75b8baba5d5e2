package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionUp)
	f.Set(ActionPause)
	f.Set(ActionLeft)

	if !f.Has(ActionUp) || !f.Has(ActionPause) || !f.Has(ActionLeft) {
		t.Error("frame should report every set action")
	}
	if f.Has(ActionRestart) {
		t.Error("frame should not report unset actions")
	}
	if len(f.Directions) != 2 || f.Directions[0] != ActionUp || f.Directions[1] != ActionLeft {
		t.Errorf("Directions = %v, expected [Up Left]", f.Directions)
	}

	f.Clear()
	if !f.Empty() || len(f.Directions) != 0 {
		t.Error("Clear should drop all actions")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionStart) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionStart)
	if !f.Has(ActionStart) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionIsDirection(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if !a.IsDirection() {
			t.Errorf("%v.IsDirection() = false", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionStart, ActionPause, ActionMode, ActionQuit} {
		if a.IsDirection() {
			t.Errorf("%v.IsDirection() = true", a)
		}
	}
	if ActionMode.String() != "Mode" {
		t.Errorf("ActionMode.String() = %q", ActionMode.String())
	}
}
