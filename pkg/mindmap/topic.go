// Package mindmap implements the layout and viewport engine behind the
// interactive mind map: stable node identifiers, a horizontal tidy-tree
// layout with collapsible subtrees, and a pannable/zoomable camera over
// the laid-out scene.
//
// Everything in this package is pure and synchronous. The topic tree is
// supplied by the backend as an immutable snapshot; layout is re-run from
// scratch whenever the snapshot, the expansion set, or the surface size
// changes.
package mindmap

import (
	"strconv"
	"strings"
)

// RootID is the identifier assigned to the root of every identified tree.
const RootID = "root"

// TopicNode is one node of the topic tree returned by the backend.
type TopicNode struct {
	Topic    string      `json:"topic"`
	Children []TopicNode `json:"children"`
}

// Snapshot is a full topic-tree snapshot. The backend may return several
// roots; only the first is laid out and displayed.
type Snapshot struct {
	Roots []TopicNode `json:"roots"`
}

// Clone returns a deep copy of the snapshot so callers never hold a live
// reference into a response buffer.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{Roots: make([]TopicNode, len(s.Roots))}
	for i := range s.Roots {
		out.Roots[i] = cloneTopic(s.Roots[i])
	}
	return out
}

func cloneTopic(n TopicNode) TopicNode {
	c := TopicNode{Topic: n.Topic}
	if len(n.Children) > 0 {
		c.Children = make([]TopicNode, len(n.Children))
		for i := range n.Children {
			c.Children[i] = cloneTopic(n.Children[i])
		}
	}
	return c
}

// IdentifiedNode is a TopicNode augmented with a stable identifier.
// Identifiers are derived structurally, so re-identifying an unchanged
// tree yields the same ids and expand/collapse state survives re-renders.
type IdentifiedNode struct {
	ID       string
	Topic    string
	Children []*IdentifiedNode
}

// Identify derives an identified tree from a topic tree. The root gets
// RootID; every child gets parentID + "-" + sanitize(label) + "-" + index.
// The ordinal index keeps ids unique even when sibling labels collide
// after sanitisation.
func Identify(root TopicNode) *IdentifiedNode {
	return identify(root, RootID)
}

func identify(n TopicNode, id string) *IdentifiedNode {
	out := &IdentifiedNode{ID: id, Topic: n.Topic}
	if len(n.Children) > 0 {
		out.Children = make([]*IdentifiedNode, len(n.Children))
		for i, child := range n.Children {
			childID := id + "-" + sanitizeLabel(child.Topic) + "-" + strconv.Itoa(i)
			out.Children[i] = identify(child, childID)
		}
	}
	return out
}

// sanitizeLabel keeps ids legible for debugging: every rune outside
// [A-Za-z0-9] becomes an underscore.
func sanitizeLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
