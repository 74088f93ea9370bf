package mindmap

import (
	"math"
	"testing"
)

func TestViewport_InitialRect(t *testing.T) {
	v := NewViewport(800, 600)
	r := v.Rect()
	want := Rect{X: -400, Y: -300, Width: 800, Height: 600}
	if r != want {
		t.Errorf("initial rect = %+v, want %+v", r, want)
	}
}

func TestViewport_ZoomClamping(t *testing.T) {
	v := NewViewport(1000, 800)
	for i := 0; i < 100; i++ {
		v.ZoomAt(250, 250, ZoomIn)
	}
	if r := v.Rect(); r.Width < MinViewWidth {
		t.Errorf("zooming in 100 times produced width %v below MinViewWidth", r.Width)
	}

	v = NewViewport(1000, 800)
	for i := 0; i < 100; i++ {
		v.ZoomCentered(ZoomOut)
	}
	if r := v.Rect(); r.Width > MaxViewWidth {
		t.Errorf("zooming out 100 times produced width %v above MaxViewWidth", r.Width)
	}
}

func TestViewport_ZoomFocusInvariant(t *testing.T) {
	v := NewViewport(1000, 800)
	const px, py = 320.0, 540.0

	beforeX, beforeY := v.ToScene(px, py)
	v.ZoomAt(px, py, ZoomIn)
	afterX, afterY := v.ToScene(px, py)

	if math.Abs(beforeX-afterX) > 1e-9 || math.Abs(beforeY-afterY) > 1e-9 {
		t.Errorf("scene point under cursor moved: (%v,%v) -> (%v,%v)", beforeX, beforeY, afterX, afterY)
	}
}

func TestViewport_ZoomPreservesAspect(t *testing.T) {
	v := NewViewport(1000, 500)
	v.ZoomAt(100, 100, ZoomOut)
	r := v.Rect()
	if got, want := r.Height/r.Width, 0.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("aspect ratio after zoom = %v, want %v", got, want)
	}
}

func TestViewport_PanTranslation(t *testing.T) {
	v := NewViewport(1000, 1000)
	start := v.Rect()

	v.BeginPan(100, 100)
	v.UpdatePan(150, 100)
	v.EndPan()

	r := v.Rect()
	if got := r.X - start.X; got != -50 {
		t.Errorf("rect translated by %v on x, want exactly -50", got)
	}
	if r.Y != start.Y {
		t.Errorf("rect moved on y by %v during horizontal pan", r.Y-start.Y)
	}
}

func TestViewport_PanScalesWithZoom(t *testing.T) {
	v := NewViewport(1000, 1000)
	v.ZoomCentered(ZoomOut) // rect is now 1250 wide over 1000px

	v.BeginPan(0, 0)
	v.UpdatePan(100, 0)
	r := v.Rect()

	wantDelta := -100 * r.Width / 1000
	if got := r.X - (-r.Width / 2); math.Abs(got-wantDelta) > 1e-9 {
		t.Errorf("pan delta = %v, want %v (scaled by zoom)", got, wantDelta)
	}
}

func TestViewport_PanWithoutBeginIsNoop(t *testing.T) {
	v := NewViewport(1000, 1000)
	start := v.Rect()
	v.UpdatePan(500, 500)
	if v.Rect() != start {
		t.Error("UpdatePan without BeginPan mutated the rect")
	}
}

func TestViewport_ResizeRecenters(t *testing.T) {
	v := NewViewport(1000, 1000)
	v.ZoomCentered(ZoomIn)
	v.BeginPan(0, 0)
	v.UpdatePan(200, 200)
	v.EndPan()

	v.Resize(640, 480)
	want := Rect{X: -320, Y: -240, Width: 640, Height: 480}
	if v.Rect() != want {
		t.Errorf("rect after resize = %+v, want %+v", v.Rect(), want)
	}
}

func TestViewport_CenterOn(t *testing.T) {
	v := NewViewport(1000, 800)
	v.ZoomCentered(ZoomIn)
	size := v.Rect()

	v.CenterOn(300, -120)
	r := v.Rect()
	if r.Width != size.Width || r.Height != size.Height {
		t.Errorf("CenterOn changed the size: %+v", r)
	}
	if cx := r.X + r.Width/2; cx != 300 {
		t.Errorf("centre x = %v, want 300", cx)
	}
	if cy := r.Y + r.Height/2; cy != -120 {
		t.Errorf("centre y = %v, want -120", cy)
	}
}

func TestViewport_OnChange(t *testing.T) {
	v := NewViewport(1000, 1000)
	calls := 0
	v.SetOnChange(func(Rect) { calls++ })

	v.ZoomCentered(ZoomIn)
	v.BeginPan(0, 0)
	v.UpdatePan(10, 0)
	v.EndPan()
	v.UpdatePan(20, 0) // ignored, pan ended

	if calls != 2 {
		t.Errorf("onChange fired %d times, want 2", calls)
	}
}
