package mindmapviewer

import "testing"

func TestPanGate_SingleContactPans(t *testing.T) {
	var g panGate
	if !g.Start(1) {
		t.Error("one-finger start should pan")
	}
	if !g.Move(1) {
		t.Error("one-finger move should keep panning")
	}
	if !g.End() {
		t.Error("a sequence that stayed single-contact should end as a pan/tap")
	}
}

func TestPanGate_MultiContactIgnored(t *testing.T) {
	var g panGate
	if g.Start(2) {
		t.Error("two-finger start must not pan")
	}
	if g.Move(2) || g.End() {
		t.Error("a multi-contact sequence must stay inert")
	}
}

func TestPanGate_SecondFingerCancels(t *testing.T) {
	var g panGate
	g.Start(1)
	if g.Move(2) {
		t.Error("a second finger mid-gesture must cancel the pan")
	}
	if g.Move(1) {
		t.Error("the gesture must stay cancelled after the finger count drops back")
	}
	if g.End() {
		t.Error("a cancelled gesture must not register as a tap")
	}
}
