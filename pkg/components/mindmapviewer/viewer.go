//go:build !js || !wasm

package mindmapviewer

import (
	"strconv"

	"github.com/nogginhq/noggin/pkg/builder"
	"github.com/nogginhq/noggin/pkg/mindmap"
	"github.com/nogginhq/noggin/pkg/vdom"
)

// Viewer renders a static SVG of the laid-out map for server-side HTML.
// The WASM build replaces it with an interactive canvas after hydration.
func Viewer(root *mindmap.IdentifiedNode, exp *mindmap.ExpansionSet, opts *Options) *vdom.VNode {
	o := opts.withDefaults()

	res := mindmap.Layout(root, exp, o.SurfaceWidth, mindmap.HeuristicMeasurer{})

	// Default camera: centred on the scene origin at 1 unit per pixel.
	viewBox := fnum(-o.SurfaceWidth/2) + " " + fnum(-o.SurfaceHeight/2) + " " +
		fnum(o.SurfaceWidth) + " " + fnum(o.SurfaceHeight)

	children := make([]*vdom.VNode, 0, len(res.Edges)+len(res.Nodes))
	for i := range res.Edges {
		e := &res.Edges[i]
		children = append(children, builder.Path().
			Key(e.ID).
			Attr("d", e.Path.SVG()).
			Attr("fill", "none").
			Attr("stroke", o.EdgeColor).
			Attr("stroke-width", "1.5").
			Build())
	}
	for _, n := range res.Nodes {
		children = append(children, renderNode(n, &o))
	}

	return builder.Div().
		Class("mindmap-viewer").
		Style("width:100%;height:100%;background:"+o.BackgroundColor).
		Children(
			builder.Svg().
				Attr("viewBox", viewBox).
				Attr("width", "100%").
				Attr("height", "100%").
				Children(children...).
				Build(),
		).
		Build()
}

func renderNode(n *mindmap.Node, o *Options) *vdom.VNode {
	kids := []*vdom.VNode{
		builder.Rect().
			Attr("x", fnum(n.X-n.Width/2)).
			Attr("y", fnum(n.Y-n.Height/2)).
			Attr("width", fnum(n.Width)).
			Attr("height", fnum(n.Height)).
			Attr("rx", "8").
			Attr("fill", o.NodeFill).
			Attr("stroke", o.NodeStroke).
			Build(),
		builder.SvgText().
			Attr("x", fnum(n.X)).
			Attr("y", fnum(n.Y)).
			Attr("text-anchor", "middle").
			Attr("dominant-baseline", "central").
			Attr("fill", o.LabelColor).
			Attr("font-size", "14").
			Attr("font-family", "sans-serif").
			Text(n.Label).
			Build(),
	}
	if n.HasMore {
		ax := n.X + n.Width/2 + mindmap.AffordanceRadius
		kids = append(kids,
			builder.Circle().
				Attr("cx", fnum(ax)).
				Attr("cy", fnum(n.Y)).
				Attr("r", fnum(mindmap.AffordanceRadius)).
				Attr("fill", o.AffordanceColor).
				Build(),
			builder.SvgText().
				Attr("x", fnum(ax)).
				Attr("y", fnum(n.Y)).
				Attr("text-anchor", "middle").
				Attr("dominant-baseline", "central").
				Attr("fill", o.BackgroundColor).
				Attr("font-size", "14").
				Text("+").
				Build(),
		)
	}
	return builder.G().Key(n.ID).Data("node-id", n.ID).Children(kids...).Build()
}

func fnum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
