package mindmap

import "testing"

func TestExpansionSet_Initial(t *testing.T) {
	s := NewExpansionSet(RootID)
	if !s.Expanded(RootID) {
		t.Error("fresh set should contain the root id")
	}
	if s.Len() != 1 {
		t.Errorf("fresh set len = %d, want 1", s.Len())
	}
}

func TestExpansionSet_ToggleRoundTrip(t *testing.T) {
	s := NewExpansionSet(RootID)

	s.Toggle("root-B-0")
	if !s.Expanded("root-B-0") {
		t.Error("toggle should add a missing id")
	}
	s.Toggle("root-B-0")
	if s.Expanded("root-B-0") {
		t.Error("second toggle should remove the id")
	}
	if s.Len() != 1 {
		t.Errorf("round-trip changed membership: len = %d, want 1", s.Len())
	}
}

func TestExpansionSet_ToggleUnknownID(t *testing.T) {
	s := NewExpansionSet(RootID)
	s.Toggle("never-seen")
	if !s.Expanded("never-seen") || s.Len() != 2 {
		t.Error("toggling a never-seen id should add exactly that id")
	}
}

func TestExpansionSet_ZeroValue(t *testing.T) {
	var s ExpansionSet
	if s.Expanded("a") || s.Len() != 0 {
		t.Error("zero-value set should be empty")
	}
	s.Toggle("a")
	if !s.Expanded("a") {
		t.Error("toggle on a zero-value set should add the id")
	}
}

func TestExpansionSet_Reset(t *testing.T) {
	s := NewExpansionSet(RootID)
	s.Toggle("a")
	s.Toggle("b")

	s.Reset(RootID)
	if s.Len() != 1 || !s.Expanded(RootID) {
		t.Errorf("reset should leave exactly {root}, got %d ids", s.Len())
	}
}
