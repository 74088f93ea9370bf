//go:build js && wasm
// +build js,wasm

package mindmapviewer

import "github.com/nogginhq/noggin/pkg/mindmap"

// Controller provides imperative controls over a mounted viewer.
type Controller struct {
	st *viewerState
}

func (c *Controller) valid() bool {
	return c.st != nil && c.st.view != nil && c.st.canvas.Truthy()
}

// ZoomIn narrows the camera by the toolbar zoom factor around its centre.
func (c *Controller) ZoomIn() {
	if !c.valid() {
		return
	}
	c.st.view.ZoomCentered(mindmap.ZoomIn)
}

// ZoomOut widens the camera by the toolbar zoom factor around its centre.
func (c *Controller) ZoomOut() {
	if !c.valid() {
		return
	}
	c.st.view.ZoomCentered(mindmap.ZoomOut)
}

// Reset restores the default camera over the current surface size.
func (c *Controller) Reset() {
	if !c.valid() {
		return
	}
	w, h := c.st.surfaceSize()
	c.st.view.Resize(w, h)
	c.st.relayout()
}

// FocusNode centres the camera on a node without changing the zoom.
func (c *Controller) FocusNode(id string) {
	if !c.valid() {
		return
	}
	for _, n := range c.st.layout.Nodes {
		if n.ID == id {
			c.st.view.CenterOn(n.X, n.Y)
			return
		}
	}
}

// ExportPNG returns a data URL of the current canvas
func (c *Controller) ExportPNG() string {
	if !c.valid() {
		return ""
	}
	return c.st.canvas.Call("toDataURL", "image/png").String()
}
