package mindmap

import "strconv"

// Layout geometry constants, in scene units (1 unit = 1 CSS pixel at
// the default zoom).
const (
	NodeHeight        = 40.0  // all nodes share a fixed height
	MinNodeWidth      = 120.0 // boxes never shrink below this
	HorizontalPadding = 32.0  // added around the measured label width
	VerticalSpacing   = 20.0  // gap between leaf slots
	HorizontalSpacing = 60.0  // gap between a parent's right edge and its children
	RootMargin        = 24.0  // inset of the root from the viewport's left edge
	AffordanceRadius  = 10.0  // radius of the expand affordance circle
)

// Node is a positioned, visible node. X and Y are the centre of the box
// in scene coordinates.
type Node struct {
	ID     string
	Label  string
	Depth  int // root = 0
	X, Y   float64
	Width  float64
	Height float64

	// HasMore marks a node whose source children exist but are hidden
	// because the node is collapsed; the surface renders an affordance.
	HasMore bool

	Children []*Node
	Parent   *Node // non-owning, for edge drawing only
}

// Edge connects a visible parent to a visible child with a cubic curve.
type Edge struct {
	ID       string
	SourceID string
	TargetID string
	Path     CurvePath
}

// CurvePath is a single cubic Bezier segment. The curve runs from the
// parent's right edge (past the affordance) to the child's left edge,
// with control points pushed horizontally to form a smooth S.
type CurvePath struct {
	X1, Y1   float64
	C1X, C1Y float64
	C2X, C2Y float64
	X2, Y2   float64
}

// SVG renders the segment as an SVG path description.
func (p CurvePath) SVG() string {
	return "M " + ftoa(p.X1) + " " + ftoa(p.Y1) +
		" C " + ftoa(p.C1X) + " " + ftoa(p.C1Y) +
		", " + ftoa(p.C2X) + " " + ftoa(p.C2Y) +
		", " + ftoa(p.X2) + " " + ftoa(p.Y2)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Result is one complete layout pass: every visible node positioned,
// plus one edge per visible parent/child pair. Nodes are listed in
// depth-first source order.
type Result struct {
	Root  *Node
	Nodes []*Node
	Edges []Edge
}

// Layout converts an identified tree plus the current expansion set into
// a positioned horizontal tidy tree. It runs in two pure passes: first
// the visible hierarchy is built (children filtered by expansion), then
// coordinates are assigned bottom-up (vertical) and top-down
// (horizontal). Identical inputs always produce identical output; there
// is no randomness and no relaxation step.
func Layout(root *IdentifiedNode, exp *ExpansionSet, viewportPixelWidth float64, m Measurer) Result {
	if root == nil {
		return Result{}
	}
	if m == nil {
		m = HeuristicMeasurer{}
	}

	vis := buildVisible(root, exp, 0)

	sizeNodes(vis, m)
	nextSlot := 0.0
	assignVertical(vis, &nextSlot)
	vis.X = -viewportPixelWidth/2 + vis.Width/2 + RootMargin
	assignHorizontal(vis)
	shiftVertical(vis, -vis.Y) // anchor the root at y = 0

	res := Result{Root: vis}
	collect(vis, &res)
	return res
}

// buildVisible is the first pass: an owned tree of layout nodes holding
// only the children that will actually render.
func buildVisible(n *IdentifiedNode, exp *ExpansionSet, depth int) *Node {
	out := &Node{
		ID:    n.ID,
		Label: n.Topic,
		Depth: depth,
	}
	if len(n.Children) == 0 {
		return out
	}
	if exp == nil || !exp.Expanded(n.ID) {
		out.HasMore = true
		return out
	}
	out.Children = make([]*Node, len(n.Children))
	for i, child := range n.Children {
		c := buildVisible(child, exp, depth+1)
		c.Parent = out
		out.Children[i] = c
	}
	return out
}

func sizeNodes(n *Node, m Measurer) {
	w := m.Width(n.Label) + HorizontalPadding
	if w < MinNodeWidth {
		w = MinNodeWidth
	}
	n.Width = w
	n.Height = NodeHeight
	for _, c := range n.Children {
		sizeNodes(c, m)
	}
}

// assignVertical walks depth-first in source order. Visible leaves take
// strictly increasing slots; interior nodes centre on the arithmetic
// mean of their children. Strictly increasing slots make further
// collision resolution unnecessary.
func assignVertical(n *Node, next *float64) {
	if len(n.Children) == 0 {
		n.Y = *next
		*next += NodeHeight + VerticalSpacing
		return
	}
	sum := 0.0
	for _, c := range n.Children {
		assignVertical(c, next)
		sum += c.Y
	}
	n.Y = sum / float64(len(n.Children))
}

// assignHorizontal places children flush to the right of their parent's
// box with a constant gap. Right edges per depth level end up uneven for
// variable-width labels; that is intentional.
func assignHorizontal(n *Node) {
	for _, c := range n.Children {
		c.X = n.X + n.Width/2 + HorizontalSpacing + c.Width/2
		assignHorizontal(c)
	}
}

func shiftVertical(n *Node, dy float64) {
	n.Y += dy
	for _, c := range n.Children {
		shiftVertical(c, dy)
	}
}

func collect(n *Node, res *Result) {
	res.Nodes = append(res.Nodes, n)
	if n.Parent != nil {
		res.Edges = append(res.Edges, edgeFor(n.Parent, n))
	}
	for _, c := range n.Children {
		collect(c, res)
	}
}

func edgeFor(parent, child *Node) Edge {
	sx := parent.X + parent.Width/2 + AffordanceRadius
	sy := parent.Y
	ex := child.X - child.Width/2
	ey := child.Y
	bend := HorizontalSpacing * 0.5
	return Edge{
		ID:       "edge-" + child.ID,
		SourceID: parent.ID,
		TargetID: child.ID,
		Path: CurvePath{
			X1: sx, Y1: sy,
			C1X: sx + bend, C1Y: sy,
			C2X: ex - bend, C2Y: ey,
			X2: ex, Y2: ey,
		},
	}
}
