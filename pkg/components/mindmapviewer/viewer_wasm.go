//go:build js && wasm
// +build js,wasm

package mindmapviewer

import (
	"math"
	"syscall/js"

	"github.com/nogginhq/noggin/pkg/builder"
	"github.com/nogginhq/noggin/pkg/mindmap"
	"github.com/nogginhq/noggin/pkg/vdom"
)

// viewerState is the mutable state behind one mounted viewer. WASM is
// single-threaded so no locking is needed.
type viewerState struct {
	opts Options

	root *mindmap.IdentifiedNode
	exp  *mindmap.ExpansionSet

	canvas   js.Value
	view     *mindmap.Viewport
	measurer *mindmap.CachedMeasurer
	layout   mindmap.Result

	downX, downY float64
	didMove      bool
	pressedID    string
	gate         panGate

	drawQueued bool
	raf        js.Func
	onResize   js.Func
}

// Viewer renders an interactive canvas-based mind map viewer (WASM)
func Viewer(root *mindmap.IdentifiedNode, exp *mindmap.ExpansionSet, opts *Options) *vdom.VNode {
	st := &viewerState{
		opts: opts.withDefaults(),
		root: root,
		exp:  exp,
	}

	return builder.Canvas().
		Style("width:100%;height:100%;display:block;touch-action:none").
		Ref(st.onRef).
		OnWheel(st.onWheel).
		OnMouseDown(st.onMouseDown).
		OnMouseMove(st.onMouseMove).
		OnMouseUp(func() { st.onMouseUp() }).
		OnTouchStart(st.onTouchStart).
		OnTouchMove(st.onTouchMove).
		OnTouchEnd(st.onTouchEnd).
		Build()
}

func (st *viewerState) onRef(el vdom.ElementRef) {
	if !el.Truthy() {
		return
	}
	first := st.canvas.IsUndefined() || st.canvas.IsNull()
	st.canvas = el
	if !first {
		return
	}

	w, h := st.surfaceSize()
	st.view = mindmap.NewViewport(w, h)
	st.view.SetOnChange(func(r mindmap.Rect) {
		if st.opts.OnViewportChange != nil {
			st.opts.OnViewportChange(r)
		}
		st.requestDraw()
	})

	ctx := el.Call("getContext", "2d")
	st.measurer = mindmap.NewCachedMeasurer(canvasMeasurer{ctx: ctx})

	st.raf = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		st.drawQueued = false
		st.draw()
		return nil
	})
	st.onResize = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		w, h := st.surfaceSize()
		st.view.Resize(w, h)
		st.relayout()
		return nil
	})
	js.Global().Get("window").Call("addEventListener", "resize", st.onResize)

	if st.opts.OnController != nil {
		st.opts.OnController(&Controller{st: st})
	}

	st.relayout()
}

func (st *viewerState) surfaceSize() (w, h float64) {
	rect := st.canvas.Call("getBoundingClientRect")
	return rect.Get("width").Float(), rect.Get("height").Float()
}

func (st *viewerState) relayout() {
	if st.view == nil {
		return
	}
	w, _ := st.view.SurfaceSize()
	st.layout = mindmap.Layout(st.root, st.exp, w, st.measurer)
	st.requestDraw()
}

// Toggle collapses or expands a node and re-runs the layout. Exposed so
// the hosting page can drive the viewer from server events too.
func (st *viewerState) toggle(id string) {
	st.exp.Toggle(id)
	if st.opts.OnToggleNode != nil {
		st.opts.OnToggleNode(id)
	}
	st.relayout()
}

func (st *viewerState) onWheel(x, y, deltaY float64) {
	if st.view == nil {
		return
	}
	dir := mindmap.ZoomIn
	if deltaY > 0 {
		dir = mindmap.ZoomOut
	}
	st.view.ZoomAt(x, y, dir)
}

func (st *viewerState) onMouseDown(x, y float64) {
	if st.view == nil {
		return
	}
	st.beginGesture(x, y)
}

func (st *viewerState) onMouseMove(x, y float64) {
	if st.view == nil {
		return
	}
	st.moveGesture(x, y)
}

func (st *viewerState) onMouseUp() {
	if st.view == nil {
		return
	}
	st.finishGesture()
}

// Touch input funnels into the same pan/toggle gestures as the mouse.
// Only single-contact sequences pan; a second finger cancels both the
// pan and any pending tap-toggle.

func (st *viewerState) onTouchStart(x, y float64, contacts int) {
	if st.view == nil {
		return
	}
	if !st.gate.Start(contacts) {
		st.cancelGesture()
		return
	}
	st.beginGesture(x, y)
}

func (st *viewerState) onTouchMove(x, y float64, contacts int) {
	if st.view == nil {
		return
	}
	if !st.gate.Move(contacts) {
		st.cancelGesture()
		return
	}
	st.moveGesture(x, y)
}

func (st *viewerState) onTouchEnd(_, _ float64, contacts int) {
	if st.view == nil || contacts > 0 {
		return
	}
	if !st.gate.End() {
		return
	}
	st.finishGesture()
}

func (st *viewerState) beginGesture(x, y float64) {
	st.downX, st.downY = x, y
	st.didMove = false
	st.pressedID = st.pick(x, y)
	st.view.BeginPan(x, y)
}

func (st *viewerState) moveGesture(x, y float64) {
	if !st.view.Panning() {
		return
	}
	if !st.didMove {
		dx := x - st.downX
		dy := y - st.downY
		if dx*dx+dy*dy > 9 { // 3px click-vs-drag threshold
			st.didMove = true
		}
	}
	st.view.UpdatePan(x, y)
}

// finishGesture ends the pan and toggles the pressed node when the
// gesture never left the click threshold.
func (st *viewerState) finishGesture() {
	st.view.EndPan()
	if !st.didMove && st.pressedID != "" {
		st.toggle(st.pressedID)
	}
	st.pressedID = ""
}

func (st *viewerState) cancelGesture() {
	st.view.EndPan()
	st.pressedID = ""
}

// pick maps a pixel point to a node ID. The expand affordance extends a
// collapsed node's hit area past its right edge.
func (st *viewerState) pick(px, py float64) string {
	sx, sy := st.view.ToScene(px, py)
	for _, n := range st.layout.Nodes {
		if n.HasMore {
			ax := n.X + n.Width/2 + mindmap.AffordanceRadius
			dx := sx - ax
			dy := sy - n.Y
			if dx*dx+dy*dy <= mindmap.AffordanceRadius*mindmap.AffordanceRadius {
				return n.ID
			}
		}
		if math.Abs(sx-n.X) <= n.Width/2 && math.Abs(sy-n.Y) <= n.Height/2 {
			return n.ID
		}
	}
	return ""
}

func (st *viewerState) requestDraw() {
	if st.drawQueued || !st.canvas.Truthy() {
		return
	}
	st.drawQueued = true
	js.Global().Get("window").Call("requestAnimationFrame", st.raf)
}

func (st *viewerState) draw() {
	c := st.canvas
	if !c.Truthy() || st.view == nil {
		return
	}
	widthCSS, heightCSS := st.surfaceSize()
	pixelRatio := 1.0
	if dpr := js.Global().Get("window").Get("devicePixelRatio"); dpr.Truthy() {
		pixelRatio = dpr.Float()
	}
	// Backing store in device pixels, drawing in CSS pixels.
	c.Set("width", int(widthCSS*pixelRatio))
	c.Set("height", int(heightCSS*pixelRatio))
	ctx := c.Call("getContext", "2d")
	if !ctx.Truthy() {
		return
	}
	o := &st.opts

	ctx.Call("save")
	ctx.Call("scale", pixelRatio, pixelRatio)
	ctx.Set("fillStyle", o.BackgroundColor)
	ctx.Call("fillRect", 0, 0, widthCSS, heightCSS)

	// Camera transform: scene rect onto the full surface.
	r := st.view.Rect()
	s := widthCSS / r.Width
	ctx.Call("scale", s, s)
	ctx.Call("translate", -r.X, -r.Y)

	ctx.Set("strokeStyle", o.EdgeColor)
	ctx.Set("lineWidth", 1.5)
	for i := range st.layout.Edges {
		p := &st.layout.Edges[i].Path
		ctx.Call("beginPath")
		ctx.Call("moveTo", p.X1, p.Y1)
		ctx.Call("bezierCurveTo", p.C1X, p.C1Y, p.C2X, p.C2Y, p.X2, p.Y2)
		ctx.Call("stroke")
	}

	ctx.Set("font", "14px sans-serif")
	ctx.Set("textAlign", "center")
	ctx.Set("textBaseline", "middle")
	for _, n := range st.layout.Nodes {
		x := n.X - n.Width/2
		y := n.Y - n.Height/2
		ctx.Set("fillStyle", o.NodeFill)
		ctx.Set("strokeStyle", o.NodeStroke)
		roundedRect(ctx, x, y, n.Width, n.Height, 8)
		ctx.Call("fill")
		ctx.Call("stroke")

		ctx.Set("fillStyle", o.LabelColor)
		ctx.Call("fillText", n.Label, n.X, n.Y)

		if n.HasMore {
			ax := n.X + n.Width/2 + mindmap.AffordanceRadius
			ctx.Set("fillStyle", o.AffordanceColor)
			ctx.Call("beginPath")
			ctx.Call("arc", ax, n.Y, mindmap.AffordanceRadius, 0, math.Pi*2)
			ctx.Call("fill")
			ctx.Set("fillStyle", o.BackgroundColor)
			ctx.Call("fillText", "+", ax, n.Y)
		}
	}
	ctx.Call("restore")
}

func roundedRect(ctx js.Value, x, y, w, h, r float64) {
	ctx.Call("beginPath")
	ctx.Call("moveTo", x+r, y)
	ctx.Call("arcTo", x+w, y, x+w, y+h, r)
	ctx.Call("arcTo", x+w, y+h, x, y+h, r)
	ctx.Call("arcTo", x, y+h, x, y, r)
	ctx.Call("arcTo", x, y, x+w, y, r)
	ctx.Call("closePath")
}

// canvasMeasurer measures label widths with the real canvas font
// metrics instead of the per-character heuristic.
type canvasMeasurer struct {
	ctx js.Value
}

func (m canvasMeasurer) Width(text string) float64 {
	if !m.ctx.Truthy() {
		return mindmap.HeuristicMeasurer{}.Width(text)
	}
	m.ctx.Set("font", "14px sans-serif")
	return m.ctx.Call("measureText", text).Get("width").Float()
}
