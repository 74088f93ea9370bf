// Package builder provides a fluent API for constructing virtual DOM
// trees. Each constructor returns an ElementBuilder; chain attribute
// and child methods and finish with Build().
package builder

import "github.com/nogginhq/noggin/pkg/vdom"

// ElementBuilder accumulates props and children for a single element.
type ElementBuilder struct {
	tag      string
	props    vdom.Props
	children []*vdom.VNode
}

// El creates a builder for an arbitrary tag.
func El(tag string) *ElementBuilder {
	return &ElementBuilder{tag: tag, props: vdom.Props{}}
}

// === Document Structure ===

// Div creates a div element builder
func Div() *ElementBuilder { return El("div") }

// Span creates a span element builder
func Span() *ElementBuilder { return El("span") }

// P creates a paragraph element builder
func P() *ElementBuilder { return El("p") }

// H1 creates an h1 element builder
func H1() *ElementBuilder { return El("h1") }

// H2 creates an h2 element builder
func H2() *ElementBuilder { return El("h2") }

// H3 creates an h3 element builder
func H3() *ElementBuilder { return El("h3") }

// H4 creates an h4 element builder
func H4() *ElementBuilder { return El("h4") }

// Nav creates a nav element builder
func Nav() *ElementBuilder { return El("nav") }

// Main creates a main element builder
func Main() *ElementBuilder { return El("main") }

// Section creates a section element builder
func Section() *ElementBuilder { return El("section") }

// Footer creates a footer element builder
func Footer() *ElementBuilder { return El("footer") }

// Ul creates an unordered list element builder
func Ul() *ElementBuilder { return El("ul") }

// Li creates a list item element builder
func Li() *ElementBuilder { return El("li") }

// Pre creates a pre element builder
func Pre() *ElementBuilder { return El("pre") }

// Code creates a code element builder
func Code() *ElementBuilder { return El("code") }

// Strong creates a strong element builder
func Strong() *ElementBuilder { return El("strong") }

// === Interactive Elements ===

// Button creates a button element builder
func Button() *ElementBuilder { return El("button") }

// A creates an anchor element builder
func A() *ElementBuilder { return El("a") }

// Input creates an input element builder
func Input() *ElementBuilder { return El("input") }

// Label creates a label element builder
func Label() *ElementBuilder { return El("label") }

// === Graphics Elements ===

// Canvas creates a canvas element builder
func Canvas() *ElementBuilder { return El("canvas") }

// Svg creates an svg element builder
func Svg() *ElementBuilder { return El("svg") }

// G creates an SVG group element builder
func G() *ElementBuilder { return El("g") }

// Path creates an SVG path element builder
func Path() *ElementBuilder { return El("path") }

// Circle creates an SVG circle element builder
func Circle() *ElementBuilder { return El("circle") }

// Rect creates an SVG rect element builder
func Rect() *ElementBuilder { return El("rect") }

// SvgText creates an SVG text element builder
func SvgText() *ElementBuilder { return El("text") }

// === Core Methods ===

// Class sets the class attribute
func (b *ElementBuilder) Class(class string) *ElementBuilder {
	b.props["class"] = class
	return b
}

// ID sets the id attribute
func (b *ElementBuilder) ID(id string) *ElementBuilder {
	b.props["id"] = id
	return b
}

// Style sets the inline style attribute
func (b *ElementBuilder) Style(style string) *ElementBuilder {
	b.props["style"] = style
	return b
}

// Title sets the title attribute
func (b *ElementBuilder) Title(title string) *ElementBuilder {
	b.props["title"] = title
	return b
}

// Key sets the reconciliation key for list diffing
func (b *ElementBuilder) Key(key string) *ElementBuilder {
	b.props["key"] = key
	return b
}

// Text appends a text child
func (b *ElementBuilder) Text(text string) *ElementBuilder {
	b.children = append(b.children, vdom.NewText(text))
	return b
}

// Children appends child nodes. Nil children are skipped so callers
// can pass conditionally-built nodes directly.
func (b *ElementBuilder) Children(children ...*vdom.VNode) *ElementBuilder {
	for _, child := range children {
		if child != nil {
			b.children = append(b.children, child)
		}
	}
	return b
}

// OnClick sets the onclick handler
func (b *ElementBuilder) OnClick(handler func()) *ElementBuilder {
	b.props["onclick"] = handler
	return b
}

// Build finalizes the builder and returns the VNode
func (b *ElementBuilder) Build() *vdom.VNode {
	node := vdom.NewElement(b.tag, b.props, b.children...)
	if key, ok := b.props["key"].(string); ok {
		node.Key = key
	}
	return node
}
