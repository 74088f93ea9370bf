package mindmap

import (
	"math"
	"testing"
)

const testViewportWidth = 1000.0

func layoutSample(exp *ExpansionSet) Result {
	return Layout(Identify(sampleTree()), exp, testViewportWidth, HeuristicMeasurer{})
}

func nodeByID(res Result, id string) *Node {
	for _, n := range res.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func TestLayout_Deterministic(t *testing.T) {
	exp := NewExpansionSet(RootID)
	exp.Toggle("root-C-1")

	a := layoutSample(exp)
	b := layoutSample(exp)

	if len(a.Nodes) != len(b.Nodes) || len(a.Edges) != len(b.Edges) {
		t.Fatalf("layout shape differs between identical runs")
	}
	for i := range a.Nodes {
		x, y := a.Nodes[i], b.Nodes[i]
		if x.X != y.X || x.Y != y.Y || x.Width != y.Width || x.Height != y.Height {
			t.Errorf("node %q position differs between identical runs", x.ID)
		}
	}
	for i := range a.Edges {
		if a.Edges[i].Path.SVG() != b.Edges[i].Path.SVG() {
			t.Errorf("edge %q path differs between identical runs", a.Edges[i].ID)
		}
	}
}

func TestLayout_RootAnchoredAtZero(t *testing.T) {
	for _, exp := range []*ExpansionSet{
		NewExpansionSet(RootID),
		func() *ExpansionSet { e := NewExpansionSet(RootID); e.Toggle("root-C-1"); return e }(),
	} {
		res := layoutSample(exp)
		if res.Root.Y != 0 {
			t.Errorf("root y = %v, want 0 (expanded=%d ids)", res.Root.Y, exp.Len())
		}
	}
}

func TestLayout_ParentCentersOnChildren(t *testing.T) {
	tree := TopicNode{
		Topic: "P",
		Children: []TopicNode{
			{Topic: "one"}, {Topic: "two"}, {Topic: "three"},
		},
	}
	res := Layout(Identify(tree), NewExpansionSet(RootID), testViewportWidth, HeuristicMeasurer{})

	root := res.Root
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 visible children, got %d", len(root.Children))
	}
	sum := 0.0
	for _, c := range root.Children {
		sum += c.Y
	}
	if mean := sum / 3; math.Abs(root.Y-mean) > 1e-9 {
		t.Errorf("parent y = %v, want mean of children %v", root.Y, mean)
	}
	// Leaves occupy strictly increasing slots one row apart.
	step := NodeHeight + VerticalSpacing
	for i := 1; i < 3; i++ {
		if got := root.Children[i].Y - root.Children[i-1].Y; got != step {
			t.Errorf("leaf slot gap = %v, want %v", got, step)
		}
	}
}

func TestLayout_NodeSizing(t *testing.T) {
	tree := TopicNode{Topic: "x"}
	res := Layout(Identify(tree), NewExpansionSet(RootID), testViewportWidth, HeuristicMeasurer{})
	if got := res.Root.Width; got != MinNodeWidth {
		t.Errorf("one-letter node width = %v, want MinNodeWidth %v", got, MinNodeWidth)
	}

	long := TopicNode{Topic: "a considerably longer topic label than the minimum"}
	res = Layout(Identify(long), NewExpansionSet(RootID), testViewportWidth, HeuristicMeasurer{})
	want := HeuristicMeasurer{}.Width(long.Topic) + HorizontalPadding
	if got := res.Root.Width; got != want {
		t.Errorf("long node width = %v, want measured %v", got, want)
	}
	if res.Root.Height != NodeHeight {
		t.Errorf("node height = %v, want fixed %v", res.Root.Height, NodeHeight)
	}
}

func TestLayout_ExpansionScenario(t *testing.T) {
	// Nothing expanded: the root renders alone, flagged as having more.
	collapsed := NewExpansionSet(RootID)
	collapsed.Toggle(RootID) // empty the set
	res := layoutSample(collapsed)
	if len(res.Nodes) != 1 || len(res.Edges) != 0 {
		t.Fatalf("collapsed root: got %d nodes / %d edges, want 1 / 0", len(res.Nodes), len(res.Edges))
	}
	if !res.Root.HasMore {
		t.Error("collapsed root with children should be flagged HasMore")
	}

	// Root expanded: A, B, C visible with two edges.
	exp := NewExpansionSet(RootID)
	res = layoutSample(exp)
	if len(res.Nodes) != 3 || len(res.Edges) != 2 {
		t.Fatalf("root expanded: got %d nodes / %d edges, want 3 / 2", len(res.Nodes), len(res.Edges))
	}
	b := nodeByID(res, "root-B-0")
	c := nodeByID(res, "root-C-1")
	if got := c.Y - b.Y; got != NodeHeight+VerticalSpacing {
		t.Errorf("sibling gap = %v, want %v", got, NodeHeight+VerticalSpacing)
	}
	if b.HasMore {
		t.Error("leaf B has no hidden children, should not be flagged")
	}
	if !c.HasMore {
		t.Error("collapsed C has a hidden child, should be flagged")
	}
	prevBX, prevBY := b.X, b.Y
	prevAX := res.Root.X

	// Expanding C adds D and one edge without disturbing B or A's x.
	exp.Toggle("root-C-1")
	res = layoutSample(exp)
	if len(res.Nodes) != 4 || len(res.Edges) != 3 {
		t.Fatalf("C expanded: got %d nodes / %d edges, want 4 / 3", len(res.Nodes), len(res.Edges))
	}
	b = nodeByID(res, "root-B-0")
	if b.X != prevBX || b.Y != prevBY {
		t.Errorf("expanding C moved B from (%v,%v) to (%v,%v)", prevBX, prevBY, b.X, b.Y)
	}
	if res.Root.X != prevAX {
		t.Errorf("expanding C moved the root's x from %v to %v", prevAX, res.Root.X)
	}
	if nodeByID(res, "root-C-1-D-0") == nil {
		t.Error("expanded C should render its child D")
	}
}

func TestLayout_ChildPlacement(t *testing.T) {
	res := layoutSample(NewExpansionSet(RootID))
	root := res.Root
	for _, c := range root.Children {
		want := root.X + root.Width/2 + HorizontalSpacing + c.Width/2
		if c.X != want {
			t.Errorf("child %q x = %v, want flush placement %v", c.ID, c.X, want)
		}
		if c.Depth != 1 {
			t.Errorf("child %q depth = %d, want 1", c.ID, c.Depth)
		}
	}
	wantRootX := -testViewportWidth/2 + root.Width/2 + RootMargin
	if root.X != wantRootX {
		t.Errorf("root x = %v, want %v", root.X, wantRootX)
	}
}

func TestLayout_EdgeGeometry(t *testing.T) {
	res := layoutSample(NewExpansionSet(RootID))
	root := res.Root
	for _, e := range res.Edges {
		child := nodeByID(res, e.TargetID)
		if e.SourceID != root.ID {
			t.Errorf("edge %q source = %q, want root", e.ID, e.SourceID)
		}
		if e.Path.X1 != root.X+root.Width/2+AffordanceRadius || e.Path.Y1 != root.Y {
			t.Errorf("edge %q does not start at the parent's right edge", e.ID)
		}
		if e.Path.X2 != child.X-child.Width/2 || e.Path.Y2 != child.Y {
			t.Errorf("edge %q does not end at the child's left edge", e.ID)
		}
	}
}

func TestLayout_StaleExpansionIDsHarmless(t *testing.T) {
	exp := NewExpansionSet(RootID)
	exp.Toggle("left-over-from-a-previous-snapshot")

	res := layoutSample(exp)
	if len(res.Nodes) != 3 {
		t.Errorf("stale id changed layout: got %d nodes, want 3", len(res.Nodes))
	}
}

func TestLayout_NilRoot(t *testing.T) {
	res := Layout(nil, NewExpansionSet(RootID), testViewportWidth, nil)
	if res.Root != nil || len(res.Nodes) != 0 {
		t.Error("nil root should produce an empty result")
	}
}

func BenchmarkLayout(b *testing.B) {
	// A bushy three-level tree, fully expanded.
	tree := TopicNode{Topic: "root"}
	for i := 0; i < 8; i++ {
		mid := TopicNode{Topic: "mid"}
		for j := 0; j < 8; j++ {
			mid.Children = append(mid.Children, TopicNode{Topic: "leaf"})
		}
		tree.Children = append(tree.Children, mid)
	}
	root := Identify(tree)
	exp := NewExpansionSet(RootID)
	for _, c := range root.Children {
		exp.Toggle(c.ID)
	}
	m := NewCachedMeasurer(nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Layout(root, exp, testViewportWidth, m)
	}
}
