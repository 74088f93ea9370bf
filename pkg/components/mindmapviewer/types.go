package mindmapviewer

import "github.com/nogginhq/noggin/pkg/mindmap"

// Options configures the viewer behavior and style
type Options struct {
	// Rendering
	BackgroundColor string // default "#0b0e14"
	NodeFill        string // default "#151a23"
	NodeStroke      string // default "#6ea8fe"
	EdgeColor       string // default "#39424e"
	LabelColor      string // default "#eaeef3"
	AffordanceColor string // default "#6ea8fe"

	// Surface size assumed when rendering server-side, in CSS pixels.
	// The WASM viewer measures its host element instead.
	SurfaceWidth  float64 // default 1280
	SurfaceHeight float64 // default 800

	// Interaction callbacks (optional)
	OnToggleNode     func(id string)
	OnViewportChange func(r mindmap.Rect)
	OnController     func(API)
}

func (o *Options) withDefaults() Options {
	d := Options{
		BackgroundColor: "#0b0e14",
		NodeFill:        "#151a23",
		NodeStroke:      "#6ea8fe",
		EdgeColor:       "#39424e",
		LabelColor:      "#eaeef3",
		AffordanceColor: "#6ea8fe",
		SurfaceWidth:    1280,
		SurfaceHeight:   800,
	}
	if o == nil {
		return d
	}
	if o.BackgroundColor != "" {
		d.BackgroundColor = o.BackgroundColor
	}
	if o.NodeFill != "" {
		d.NodeFill = o.NodeFill
	}
	if o.NodeStroke != "" {
		d.NodeStroke = o.NodeStroke
	}
	if o.EdgeColor != "" {
		d.EdgeColor = o.EdgeColor
	}
	if o.LabelColor != "" {
		d.LabelColor = o.LabelColor
	}
	if o.AffordanceColor != "" {
		d.AffordanceColor = o.AffordanceColor
	}
	if o.SurfaceWidth != 0 {
		d.SurfaceWidth = o.SurfaceWidth
	}
	if o.SurfaceHeight != 0 {
		d.SurfaceHeight = o.SurfaceHeight
	}
	d.OnToggleNode = o.OnToggleNode
	d.OnViewportChange = o.OnViewportChange
	d.OnController = o.OnController
	return d
}
