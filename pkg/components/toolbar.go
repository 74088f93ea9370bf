package components

import (
	"github.com/nogginhq/noggin/pkg/builder"
	"github.com/nogginhq/noggin/pkg/components/mindmapviewer"
	"github.com/nogginhq/noggin/pkg/vdom"
)

// MapToolbarProps wires the mind-map toolbar to a mounted viewer. The
// controller is looked up lazily because the viewer only hands one out
// after its canvas is attached.
type MapToolbarProps struct {
	Controller   func() mindmapviewer.API
	OnExport     func()
	OnRegenerate func()
	OnDelete     func()
}

// MapToolbar renders the zoom / reset / regenerate controls above the map.
func MapToolbar(props MapToolbarProps) *vdom.VNode {
	withController := func(fn func(mindmapviewer.API)) func() {
		return func() {
			if props.Controller == nil {
				return
			}
			if api := props.Controller(); api != nil {
				fn(api)
			}
		}
	}

	buttons := []*vdom.VNode{
		Button(ButtonProps{Text: "+", Title: "Zoom in", Variant: ButtonSecondary,
			OnClick: withController(func(api mindmapviewer.API) { api.ZoomIn() })}),
		Button(ButtonProps{Text: "−", Title: "Zoom out", Variant: ButtonSecondary,
			OnClick: withController(func(api mindmapviewer.API) { api.ZoomOut() })}),
		Button(ButtonProps{Text: "Reset view", Variant: ButtonSecondary,
			OnClick: withController(func(api mindmapviewer.API) { api.Reset() })}),
	}
	if props.OnExport != nil {
		buttons = append(buttons, Button(ButtonProps{Text: "Export PNG", Variant: ButtonSecondary, OnClick: props.OnExport}))
	}
	if props.OnRegenerate != nil {
		buttons = append(buttons, Button(ButtonProps{Text: "Regenerate", OnClick: props.OnRegenerate}))
	}
	if props.OnDelete != nil {
		buttons = append(buttons, Button(ButtonProps{Text: "Delete map", Variant: ButtonDanger, OnClick: props.OnDelete}))
	}

	return builder.Div().Class("map-toolbar").Children(buttons...).Build()
}
