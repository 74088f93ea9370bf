package routes

import (
	"github.com/nogginhq/noggin/pkg/builder"
	"github.com/nogginhq/noggin/pkg/vdom"
)

// shell wraps page content in the common chrome: top navigation and a
// main column. Every page renders through it so SSR and the WASM
// client produce the same frame.
func shell(active string, content ...*vdom.VNode) *vdom.VNode {
	navLink := func(href, label, name string) *vdom.VNode {
		class := "nav-link"
		if name == active {
			class += " nav-link-active"
		}
		return builder.A().Href(href).Class(class).Text(label).Build()
	}

	return builder.Div().
		Class("app-shell").
		Children(
			builder.Nav().
				Class("topbar").
				Children(
					builder.A().Href("/").Class("brand").Text("Noggin").Build(),
					builder.Div().
						Class("topbar-links").
						Children(navLink("/", "Collections", "collections")).
						Build(),
				).
				Build(),
			builder.Main().Class("page").Children(content...).Build(),
		).
		Build()
}

// errorBanner renders the dismissible inline error strip, or nil when
// there is nothing to show.
func errorBanner(msg string, onDismiss func()) *vdom.VNode {
	if msg == "" {
		return nil
	}
	dismiss := builder.Button().
		Class("banner-dismiss").
		Type("button").
		Text("×").
		Title("Dismiss")
	if onDismiss != nil {
		dismiss.OnClick(onDismiss)
	}
	return builder.Div().
		Class("error-banner").
		Attr("role", "alert").
		Children(
			builder.Span().Text(msg).Build(),
			dismiss.Build(),
		).
		Build()
}
