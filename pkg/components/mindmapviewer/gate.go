package mindmapviewer

// panGate decides whether a touch sequence may drive the pan
// primitives. Only sequences holding exactly one contact pan; a second
// finger cancels the gesture until every contact lifts.
type panGate struct {
	active bool
}

// Start begins a sequence and reports whether it may pan.
func (g *panGate) Start(contacts int) bool {
	g.active = contacts == 1
	return g.active
}

// Move reports whether the sequence may still pan, cancelling it when
// the contact count is no longer one.
func (g *panGate) Move(contacts int) bool {
	if contacts != 1 {
		g.active = false
	}
	return g.active
}

// End closes the sequence and reports whether it stayed single-contact
// throughout, which is what distinguishes a tap from a pinch.
func (g *panGate) End() bool {
	was := g.active
	g.active = false
	return was
}
