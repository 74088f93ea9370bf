package vdom

import "fmt"

// PatchOp represents the type of patch operation
type PatchOp uint8

const (
	// OpReplaceText replaces text node content
	OpReplaceText PatchOp = 0x01
	// OpSetAttribute sets or replaces an attribute
	OpSetAttribute PatchOp = 0x02
	// OpRemoveNode removes a node
	OpRemoveNode PatchOp = 0x03
	// OpInsertNode inserts a new node
	OpInsertNode PatchOp = 0x04
	// OpRemoveAttribute removes an attribute
	OpRemoveAttribute PatchOp = 0x05
	// OpMoveNode moves a node to a new position
	OpMoveNode PatchOp = 0x06
)

// Patch represents a single DOM mutation
type Patch struct {
	Op       PatchOp
	NodeID   uint32
	ParentID uint32 // for insert/move
	BeforeID uint32 // for insert/move (0 means append)
	Key      string // attribute key
	Value    string // text content or attribute value
	Node     *VNode // subtree for insert
}

// String returns a human-readable representation of the patch
func (p Patch) String() string {
	switch p.Op {
	case OpReplaceText:
		return fmt.Sprintf("ReplaceText(node=%d, text=%q)", p.NodeID, p.Value)
	case OpSetAttribute:
		return fmt.Sprintf("SetAttribute(node=%d, key=%q, value=%q)", p.NodeID, p.Key, p.Value)
	case OpRemoveAttribute:
		return fmt.Sprintf("RemoveAttribute(node=%d, key=%q)", p.NodeID, p.Key)
	case OpRemoveNode:
		return fmt.Sprintf("RemoveNode(node=%d)", p.NodeID)
	case OpInsertNode:
		return fmt.Sprintf("InsertNode(parent=%d, before=%d)", p.ParentID, p.BeforeID)
	case OpMoveNode:
		return fmt.Sprintf("MoveNode(node=%d, parent=%d, before=%d)", p.NodeID, p.ParentID, p.BeforeID)
	default:
		return fmt.Sprintf("Unknown(op=%d)", p.Op)
	}
}

type diffContext struct {
	patches []Patch
	nextID  uint32
	nodeIDs map[*VNode]uint32
}

func (ctx *diffContext) id(node *VNode) uint32 {
	if node == nil {
		return 0
	}
	if id, ok := ctx.nodeIDs[node]; ok {
		return id
	}
	id := ctx.nextID
	ctx.nextID++
	ctx.nodeIDs[node] = id
	return id
}

func (ctx *diffContext) emit(p Patch) {
	ctx.patches = append(ctx.patches, p)
}

// Diff computes the patches needed to transform prev into next.
func Diff(prev, next *VNode) []Patch {
	ctx := &diffContext{
		patches: make([]Patch, 0, 16),
		nextID:  1,
		nodeIDs: make(map[*VNode]uint32),
	}
	diffNode(ctx, prev, next, 0)
	return ctx.patches
}

func diffNode(ctx *diffContext, prev, next *VNode, parentID uint32) {
	switch {
	case prev == nil && next == nil:
		return
	case next == nil:
		ctx.emit(Patch{Op: OpRemoveNode, NodeID: ctx.id(prev)})
		return
	case prev == nil:
		ctx.emit(Patch{Op: OpInsertNode, NodeID: ctx.id(next), ParentID: parentID, Node: next})
		return
	}

	// Different kinds or tags: replace wholesale.
	if prev.Kind != next.Kind || (prev.Kind == KindElement && prev.Tag != next.Tag) {
		ctx.emit(Patch{Op: OpRemoveNode, NodeID: ctx.id(prev)})
		ctx.emit(Patch{Op: OpInsertNode, NodeID: ctx.id(next), ParentID: parentID, Node: next})
		return
	}

	nodeID := ctx.id(prev)
	ctx.nodeIDs[next] = nodeID

	switch prev.Kind {
	case KindText:
		if prev.Text != next.Text {
			ctx.emit(Patch{Op: OpReplaceText, NodeID: nodeID, Value: next.Text})
		}
	case KindElement:
		diffProps(ctx, nodeID, prev.Props, next.Props)
		diffChildren(ctx, nodeID, prev.Kids, next.Kids)
	case KindFragment:
		diffChildren(ctx, nodeID, prev.Kids, next.Kids)
	}
}

func diffProps(ctx *diffContext, nodeID uint32, prevProps, nextProps Props) {
	for key, prevVal := range prevProps {
		if skipProp(key) {
			continue
		}
		nextVal, exists := nextProps[key]
		if !exists {
			ctx.emit(Patch{Op: OpRemoveAttribute, NodeID: nodeID, Key: key})
		} else if !propsEqual(prevVal, nextVal) {
			ctx.emit(Patch{Op: OpSetAttribute, NodeID: nodeID, Key: key, Value: propToString(nextVal)})
		}
	}
	for key, nextVal := range nextProps {
		if skipProp(key) {
			continue
		}
		if _, exists := prevProps[key]; !exists {
			ctx.emit(Patch{Op: OpSetAttribute, NodeID: nodeID, Key: key, Value: propToString(nextVal)})
		}
	}
}

func diffChildren(ctx *diffContext, parentID uint32, prevKids, nextKids []VNode) {
	if len(prevKids) == 0 && len(nextKids) == 0 {
		return
	}

	hasKeys := false
	for i := range nextKids {
		if nextKids[i].GetKey() != "" {
			hasKeys = true
			break
		}
	}
	if hasKeys {
		diffKeyedChildren(ctx, parentID, prevKids, nextKids)
		return
	}

	minLen := min(len(prevKids), len(nextKids))
	for i := 0; i < minLen; i++ {
		diffNode(ctx, &prevKids[i], &nextKids[i], parentID)
	}
	for i := minLen; i < len(prevKids); i++ {
		diffNode(ctx, &prevKids[i], nil, parentID)
	}
	for i := minLen; i < len(nextKids); i++ {
		diffNode(ctx, nil, &nextKids[i], parentID)
	}
}

func diffKeyedChildren(ctx *diffContext, parentID uint32, prevKids, nextKids []VNode) {
	prevByKey := make(map[string]int, len(prevKids))
	for i := range prevKids {
		if key := prevKids[i].GetKey(); key != "" {
			prevByKey[key] = i
		}
	}

	matched := make([]bool, len(prevKids))
	type move struct {
		nodeID   uint32
		newIndex int
	}
	var moves []move

	for nextIdx := range nextKids {
		next := &nextKids[nextIdx]
		key := next.GetKey()
		if key != "" {
			if prevIdx, found := prevByKey[key]; found {
				matched[prevIdx] = true
				nodeID := ctx.id(&prevKids[prevIdx])
				diffNode(ctx, &prevKids[prevIdx], next, parentID)
				if prevIdx != nextIdx {
					moves = append(moves, move{nodeID, nextIdx})
				}
				continue
			}
			diffNode(ctx, nil, next, parentID)
			continue
		}
		// Unkeyed child among keyed siblings: match by position.
		if nextIdx < len(prevKids) && prevKids[nextIdx].GetKey() == "" && !matched[nextIdx] {
			matched[nextIdx] = true
			diffNode(ctx, &prevKids[nextIdx], next, parentID)
		} else {
			diffNode(ctx, nil, next, parentID)
		}
	}

	for i, wasMatched := range matched {
		if !wasMatched {
			diffNode(ctx, &prevKids[i], nil, parentID)
		}
	}

	for _, mv := range moves {
		var beforeID uint32
		if mv.newIndex+1 < len(nextKids) {
			beforeID = ctx.id(&nextKids[mv.newIndex+1])
		}
		ctx.emit(Patch{Op: OpMoveNode, NodeID: mv.nodeID, ParentID: parentID, BeforeID: beforeID})
	}
}

func skipProp(key string) bool {
	if key == "key" || key == "ref" {
		return true
	}
	// Event handlers are re-bound on apply, not diffed as attributes.
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n'
}

func propsEqual(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func propToString(v any) string {
	return fmt.Sprintf("%v", v)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
