package mindmap

// ExpansionSet tracks which node ids currently have their children
// rendered. It deliberately does not validate ids against the tree: the
// set does not own the tree, and a stale id simply never matches during
// layout.
type ExpansionSet struct {
	ids map[string]struct{}
}

// NewExpansionSet returns a set containing only rootID, the initial
// state whenever a new snapshot is loaded.
func NewExpansionSet(rootID string) *ExpansionSet {
	s := &ExpansionSet{}
	s.Reset(rootID)
	return s
}

// Toggle flips membership of id. Works on a zero-value set too, which
// behaves as empty.
func (s *ExpansionSet) Toggle(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// Reset replaces the set with {rootID}.
func (s *ExpansionSet) Reset(rootID string) {
	s.ids = map[string]struct{}{rootID: {}}
}

// Expanded reports whether id's children should be rendered.
func (s *ExpansionSet) Expanded(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of expanded ids.
func (s *ExpansionSet) Len() int {
	return len(s.ids)
}
