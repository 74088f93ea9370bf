package components

import (
	"github.com/nogginhq/noggin/pkg/builder"
	"github.com/nogginhq/noggin/pkg/vdom"
)

// LoadingSpinner shows an animated spinner with an optional caption,
// used while a mind map or collection list is being fetched.
func LoadingSpinner(text string) *vdom.VNode {
	spinner := builder.Svg().
		Class("spinner-svg").
		Attr("viewBox", "0 0 24 24").
		Attr("width", "24").
		Attr("height", "24").
		Children(
			builder.Circle().
				Attr("cx", "12").
				Attr("cy", "12").
				Attr("r", "10").
				Attr("fill", "none").
				Attr("stroke", "currentColor").
				Attr("stroke-width", "3").
				Attr("stroke-dasharray", "47").
				Attr("stroke-dashoffset", "16").
				Build(),
		).
		Build()

	children := []*vdom.VNode{spinner}
	if text != "" {
		children = append(children, builder.Span().Class("spinner-text").Text(text).Build())
	}
	return builder.Div().
		Class("spinner").
		Attr("role", "status").
		Children(children...).
		Build()
}
