package components

import (
	"github.com/nogginhq/noggin/pkg/builder"
	"github.com/nogginhq/noggin/pkg/vdom"
)

// CardProps defines the properties for the Card component
type CardProps struct {
	Title    string
	Subtitle string
	Content  *vdom.VNode
	Footer   *vdom.VNode
	OnClick  func()
	Class    string
	Key      string
}

// Card creates a bordered content card. Collections are listed as
// clickable cards on the index page.
func Card(props CardProps) *vdom.VNode {
	class := "card"
	if props.OnClick != nil {
		class += " card-clickable"
	}
	if props.Class != "" {
		class += " " + props.Class
	}

	var children []*vdom.VNode
	if props.Title != "" || props.Subtitle != "" {
		var header []*vdom.VNode
		if props.Title != "" {
			header = append(header, builder.H3().Class("card-title").Text(props.Title).Build())
		}
		if props.Subtitle != "" {
			header = append(header, builder.P().Class("card-subtitle").Text(props.Subtitle).Build())
		}
		children = append(children, builder.Div().Class("card-header").Children(header...).Build())
	}
	if props.Content != nil {
		children = append(children, builder.Div().Class("card-body").Children(props.Content).Build())
	}
	if props.Footer != nil {
		children = append(children, builder.Div().Class("card-footer").Children(props.Footer).Build())
	}

	b := builder.Div().Class(class).Children(children...)
	if props.Key != "" {
		b.Key(props.Key)
	}
	if props.OnClick != nil {
		b.OnClick(props.OnClick)
	}
	return b.Build()
}
