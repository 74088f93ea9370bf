package routes

import (
	"github.com/nogginhq/noggin/pkg/builder"
	"github.com/nogginhq/noggin/pkg/components"
	"github.com/nogginhq/noggin/pkg/components/mindmapviewer"
	"github.com/nogginhq/noggin/pkg/mindmap"
	"github.com/nogginhq/noggin/pkg/vdom"
)

// MindMapPageProps carries everything the mind map page renders from.
// The WASM client fills it from a studio.MapStore; SSR fills it from a
// one-shot server fetch.
type MindMapPageProps struct {
	CollectionName string
	Root           *mindmap.IdentifiedNode
	Expansion      *mindmap.ExpansionSet
	Busy           bool
	BusyText       string
	ErrorMsg       string

	ViewerOptions *mindmapviewer.Options

	// Interaction wiring, nil on the server.
	Controller     func() mindmapviewer.API
	OnExport       func()
	OnRegenerate   func()
	OnDelete       func()
	OnDismissError func()
}

// MindMapPage renders the mind map surface with its toolbar, busy
// indicator and inline error strip.
func MindMapPage(p MindMapPageProps) *vdom.VNode {
	title := "Mind map"
	if p.CollectionName != "" {
		title = p.CollectionName
	}

	var surface *vdom.VNode
	switch {
	case p.Busy && p.Root == nil:
		surface = components.LoadingSpinner(p.BusyText)
	case p.Root == nil:
		kids := []*vdom.VNode{
			builder.P().Text("No mind map yet. Generate one from the collection's documents.").Build(),
		}
		if p.OnRegenerate != nil {
			kids = append(kids, components.Button(components.ButtonProps{
				Text:    "Generate mind map",
				OnClick: p.OnRegenerate,
			}))
		}
		surface = builder.Div().Class("empty-state").Children(kids...).Build()
	default:
		surface = mindmapviewer.Viewer(p.Root, p.Expansion, p.ViewerOptions)
	}

	var overlay *vdom.VNode
	if p.Busy && p.Root != nil {
		overlay = builder.Div().
			Class("map-overlay").
			Children(components.LoadingSpinner(p.BusyText)).
			Build()
	}

	return shell("collections",
		builder.Div().
			Class("map-header").
			Children(
				builder.H2().Class("page-title").Text(title).Build(),
				components.MapToolbar(components.MapToolbarProps{
					Controller:   p.Controller,
					OnExport:     p.OnExport,
					OnRegenerate: p.OnRegenerate,
					OnDelete:     p.OnDelete,
				}),
			).
			Build(),
		errorBanner(p.ErrorMsg, p.OnDismissError),
		builder.Div().
			Class("map-surface").
			Children(surface, overlay).
			Build(),
	)
}
