package mindmap

import (
	"fmt"
	"testing"
)

// buildTopicTree makes a tree with the given fanout at every level.
func buildTopicTree(depth, fanout int) TopicNode {
	n := TopicNode{Topic: fmt.Sprintf("topic depth %d", depth)}
	if depth == 0 {
		return n
	}
	for i := 0; i < fanout; i++ {
		n.Children = append(n.Children, buildTopicTree(depth-1, fanout))
	}
	return n
}

func expandAll(n *IdentifiedNode, exp *ExpansionSet) {
	if !exp.Expanded(n.ID) {
		exp.Toggle(n.ID)
	}
	for i := range n.Children {
		expandAll(n.Children[i], exp)
	}
}

func BenchmarkLayoutCollapsed(b *testing.B) {
	root := Identify(buildTopicTree(4, 4))
	exp := NewExpansionSet(RootID)
	m := HeuristicMeasurer{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Layout(root, exp, 1280, m)
	}
}

func BenchmarkLayoutFullyExpanded(b *testing.B) {
	for _, depth := range []int{3, 4, 5} {
		b.Run(fmt.Sprintf("depth%d", depth), func(b *testing.B) {
			root := Identify(buildTopicTree(depth, 3))
			exp := NewExpansionSet(RootID)
			expandAll(root, exp)
			m := NewCachedMeasurer(HeuristicMeasurer{})

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Layout(root, exp, 1280, m)
			}
		})
	}
}

func BenchmarkIdentify(b *testing.B) {
	tree := buildTopicTree(5, 3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Identify(tree)
	}
}
