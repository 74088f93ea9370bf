package builder

import "github.com/nogginhq/noggin/pkg/vdom"

// === Form Attributes ===

// Disabled sets the disabled attribute
func (b *ElementBuilder) Disabled(disabled bool) *ElementBuilder {
	if disabled {
		b.props["disabled"] = true
	}
	return b
}

// Name sets the name attribute
func (b *ElementBuilder) Name(name string) *ElementBuilder {
	b.props["name"] = name
	return b
}

// Value sets the value attribute
func (b *ElementBuilder) Value(value string) *ElementBuilder {
	b.props["value"] = value
	return b
}

// Type sets the type attribute
func (b *ElementBuilder) Type(t string) *ElementBuilder {
	b.props["type"] = t
	return b
}

// Placeholder sets the placeholder attribute
func (b *ElementBuilder) Placeholder(placeholder string) *ElementBuilder {
	b.props["placeholder"] = placeholder
	return b
}

// For sets the for attribute (for labels)
func (b *ElementBuilder) For(forID string) *ElementBuilder {
	b.props["for"] = forID
	return b
}

// === Link & Media Attributes ===

// Href sets the href attribute
func (b *ElementBuilder) Href(href string) *ElementBuilder {
	b.props["href"] = href
	return b
}

// Target sets the target attribute
func (b *ElementBuilder) Target(target string) *ElementBuilder {
	b.props["target"] = target
	return b
}

// Rel sets the rel attribute
func (b *ElementBuilder) Rel(rel string) *ElementBuilder {
	b.props["rel"] = rel
	return b
}

// Src sets the src attribute
func (b *ElementBuilder) Src(src string) *ElementBuilder {
	b.props["src"] = src
	return b
}

// Alt sets the alt attribute
func (b *ElementBuilder) Alt(alt string) *ElementBuilder {
	b.props["alt"] = alt
	return b
}

// Width sets the width attribute
func (b *ElementBuilder) Width(width string) *ElementBuilder {
	b.props["width"] = width
	return b
}

// Height sets the height attribute
func (b *ElementBuilder) Height(height string) *ElementBuilder {
	b.props["height"] = height
	return b
}

// === Data Attributes ===

// Data sets a data attribute
func (b *ElementBuilder) Data(key, value string) *ElementBuilder {
	b.props["data-"+key] = value
	return b
}

// === Custom Attributes ===

// Attr sets a custom attribute
func (b *ElementBuilder) Attr(key string, value interface{}) *ElementBuilder {
	b.props[key] = value
	return b
}

// === Event Handlers ===

// OnKeyDown sets the onkeydown handler
func (b *ElementBuilder) OnKeyDown(handler interface{}) *ElementBuilder {
	b.props["onkeydown"] = handler
	return b
}

// OnMouseDown sets the onmousedown handler
func (b *ElementBuilder) OnMouseDown(handler interface{}) *ElementBuilder {
	b.props["onmousedown"] = handler
	return b
}

// OnMouseUp sets the onmouseup handler
func (b *ElementBuilder) OnMouseUp(handler interface{}) *ElementBuilder {
	b.props["onmouseup"] = handler
	return b
}

// OnMouseMove sets the onmousemove handler
func (b *ElementBuilder) OnMouseMove(handler interface{}) *ElementBuilder {
	b.props["onmousemove"] = handler
	return b
}

// OnMouseOut sets the onmouseout handler
func (b *ElementBuilder) OnMouseOut(handler interface{}) *ElementBuilder {
	b.props["onmouseout"] = handler
	return b
}

// OnWheel sets the onwheel handler (for zoom)
func (b *ElementBuilder) OnWheel(handler interface{}) *ElementBuilder {
	b.props["onwheel"] = handler
	return b
}

// OnTouchStart sets the ontouchstart handler
func (b *ElementBuilder) OnTouchStart(handler interface{}) *ElementBuilder {
	b.props["ontouchstart"] = handler
	return b
}

// OnTouchMove sets the ontouchmove handler
func (b *ElementBuilder) OnTouchMove(handler interface{}) *ElementBuilder {
	b.props["ontouchmove"] = handler
	return b
}

// OnTouchEnd sets the ontouchend handler
func (b *ElementBuilder) OnTouchEnd(handler interface{}) *ElementBuilder {
	b.props["ontouchend"] = handler
	return b
}

// OnDblClick sets the ondblclick handler
func (b *ElementBuilder) OnDblClick(handler interface{}) *ElementBuilder {
	b.props["ondblclick"] = handler
	return b
}

// === Refs ===

// Ref sets a callback that receives the underlying DOM element after
// creation/hydration. Never invoked during server rendering.
func (b *ElementBuilder) Ref(ref func(vdom.ElementRef)) *ElementBuilder {
	if ref != nil {
		b.props["ref"] = ref
	}
	return b
}
