package components

import (
	"github.com/nogginhq/noggin/pkg/builder"
	"github.com/nogginhq/noggin/pkg/vdom"
)

// ButtonVariant defines the visual style of the button
type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonDanger    ButtonVariant = "danger"
	ButtonGhost     ButtonVariant = "ghost"
)

// ButtonProps defines the properties for the Button component
type ButtonProps struct {
	Text     string
	Variant  ButtonVariant
	Disabled bool
	OnClick  func()
	Class    string
	Title    string
}

// Button creates a styled button
func Button(props ButtonProps) *vdom.VNode {
	if props.Variant == "" {
		props.Variant = ButtonPrimary
	}
	class := "btn btn-" + string(props.Variant)
	if props.Class != "" {
		class += " " + props.Class
	}

	b := builder.Button().
		Class(class).
		Type("button").
		Disabled(props.Disabled).
		Text(props.Text)
	if props.Title != "" {
		b.Title(props.Title)
	}
	if props.OnClick != nil && !props.Disabled {
		b.OnClick(props.OnClick)
	}
	return b.Build()
}
