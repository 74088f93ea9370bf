// Package vdom holds the immutable virtual-DOM node type shared by the
// SSR renderer, the WASM DOM applier, and the diffing algorithm.
package vdom

// VKind represents the type of virtual node
type VKind uint8

const (
	// KindElement represents a DOM element node
	KindElement VKind = iota
	// KindText represents a text node
	KindText
	// KindFragment represents a fragment (multiple children without parent)
	KindFragment
)

// Props represents the properties/attributes of a VNode. Event handlers
// live alongside attributes under "on*" keys.
type Props map[string]any

// VNode is a single virtual node. Once built it should never be
// modified; every render produces a fresh tree.
type VNode struct {
	Kind VKind

	// Tag is the element tag name, only for KindElement.
	Tag string

	// Props holds attributes, event handlers, style, class.
	Props Props

	// Kids are child nodes; nil for text nodes.
	Kids []VNode

	// Key enables list reconciliation. Empty means no key.
	Key string

	// Text content, only for KindText.
	Text string
}

// NewElement creates a new element VNode.
func NewElement(tag string, props Props, children ...*VNode) *VNode {
	return &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
		Kids:  derefKids(children),
	}
}

// NewText creates a new text VNode.
func NewText(text string) *VNode {
	return &VNode{Kind: KindText, Text: text}
}

// NewFragment creates a new fragment VNode.
func NewFragment(children ...*VNode) *VNode {
	return &VNode{Kind: KindFragment, Kids: derefKids(children)}
}

func derefKids(children []*VNode) []VNode {
	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}
	return kids
}

// IsElement returns true if this is an element node.
func (v VNode) IsElement() bool { return v.Kind == KindElement }

// IsText returns true if this is a text node.
func (v VNode) IsText() bool { return v.Kind == KindText }

// GetKey returns the node's reconciliation key, preferring an explicit
// "key" prop over the Key field.
func (v VNode) GetKey() string {
	if v.Props != nil {
		if key, ok := v.Props["key"].(string); ok {
			return key
		}
	}
	return v.Key
}
