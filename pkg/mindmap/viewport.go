package mindmap

// Zoom limits and factors. The rectangle width never leaves
// [MinViewWidth, MaxViewWidth]; height follows from the surface aspect
// ratio.
const (
	MinViewWidth     = 200.0
	MaxViewWidth     = 12000.0
	WheelZoomFactor  = 1.1  // continuous wheel / pinch steps
	ButtonZoomFactor = 1.25 // discrete toolbar clicks
)

// ZoomDirection selects whether a zoom step narrows or widens the
// visible rectangle.
type ZoomDirection int

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

// Rect is the camera: the scene-coordinate rectangle currently mapped
// onto the full pixel surface.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Viewport owns the camera rectangle and mutates it through zoom, pan
// and reset operations. It holds the hosting surface's pixel size so it
// can convert pixel points and deltas into scene coordinates.
type Viewport struct {
	rect     Rect
	surfaceW float64
	surfaceH float64

	panning  bool
	lastPX   float64
	lastPY   float64
	onChange func(Rect)
}

// NewViewport creates a viewport over a surface of the given pixel
// size, centred on the scene origin at 1 scene unit per pixel.
func NewViewport(surfaceW, surfaceH float64) *Viewport {
	v := &Viewport{}
	v.Resize(surfaceW, surfaceH)
	return v
}

// Rect returns the current camera rectangle.
func (v *Viewport) Rect() Rect {
	return v.rect
}

// SurfaceSize returns the pixel dimensions the viewport maps onto.
func (v *Viewport) SurfaceSize() (w, h float64) {
	return v.surfaceW, v.surfaceH
}

// SetOnChange registers a callback invoked after every rectangle
// mutation. Used by the surface to schedule a redraw.
func (v *Viewport) SetOnChange(fn func(Rect)) {
	v.onChange = fn
}

// Resize handles a change of the hosting surface's pixel dimensions:
// the camera is recentred at the origin at 1:1 scale, discarding prior
// pan and zoom. Resizes are rare relative to interaction, so losing
// view state here keeps the controller simple and predictable.
func (v *Viewport) Resize(surfaceW, surfaceH float64) {
	if surfaceW <= 0 || surfaceH <= 0 {
		return
	}
	v.surfaceW = surfaceW
	v.surfaceH = surfaceH
	v.rect = Rect{X: -surfaceW / 2, Y: -surfaceH / 2, Width: surfaceW, Height: surfaceH}
	v.changed()
}

// ToScene converts a pixel point on the surface to scene coordinates
// under the current rectangle.
func (v *Viewport) ToScene(px, py float64) (sx, sy float64) {
	sx = v.rect.X + px/v.surfaceW*v.rect.Width
	sy = v.rect.Y + py/v.surfaceH*v.rect.Height
	return sx, sy
}

// ZoomAt zooms by the wheel factor around the given pixel point: the
// scene point under the cursor stays under the cursor after the resize.
func (v *Viewport) ZoomAt(px, py float64, dir ZoomDirection) {
	v.zoom(px, py, dir, WheelZoomFactor)
}

// ZoomCentered zooms by the button factor around the rectangle's own
// centre, for toolbar buttons where no pointer position applies.
func (v *Viewport) ZoomCentered(dir ZoomDirection) {
	v.zoom(v.surfaceW/2, v.surfaceH/2, dir, ButtonZoomFactor)
}

func (v *Viewport) zoom(px, py float64, dir ZoomDirection, factor float64) {
	if v.surfaceW <= 0 || v.surfaceH <= 0 {
		return
	}
	w := v.rect.Width
	if dir == ZoomIn {
		w /= factor
	} else {
		w *= factor
	}
	if w < MinViewWidth {
		w = MinViewWidth
	}
	if w > MaxViewWidth {
		w = MaxViewWidth
	}
	if w == v.rect.Width {
		// Already at a clamp boundary.
		return
	}
	sx, sy := v.ToScene(px, py)
	h := w * (v.surfaceH / v.surfaceW)
	v.rect = Rect{
		X:      sx - px/v.surfaceW*w,
		Y:      sy - py/v.surfaceH*h,
		Width:  w,
		Height: h,
	}
	v.changed()
}

// BeginPan starts a drag gesture at the given pixel position.
func (v *Viewport) BeginPan(px, py float64) {
	v.panning = true
	v.lastPX = px
	v.lastPY = py
}

// UpdatePan translates the rectangle by the negated scene-space delta
// since the last pan event: dragging right moves the visible window
// left. A no-op unless a pan has begun.
func (v *Viewport) UpdatePan(px, py float64) {
	if !v.panning {
		return
	}
	dx := px - v.lastPX
	dy := py - v.lastPY
	v.lastPX = px
	v.lastPY = py
	v.rect.X -= dx * v.rect.Width / v.surfaceW
	v.rect.Y -= dy * v.rect.Height / v.surfaceH
	v.changed()
}

// CenterOn moves the rectangle so its centre sits on the given scene
// point, keeping the current size.
func (v *Viewport) CenterOn(sx, sy float64) {
	v.rect.X = sx - v.rect.Width/2
	v.rect.Y = sy - v.rect.Height/2
	v.changed()
}

// EndPan clears drag state.
func (v *Viewport) EndPan() {
	v.panning = false
}

// Panning reports whether a drag gesture is in progress.
func (v *Viewport) Panning() bool {
	return v.panning
}

func (v *Viewport) changed() {
	if v.onChange != nil {
		v.onChange(v.rect)
	}
}
