package mindmap

import "unicode/utf8"

// PerCharWidth is the fallback per-character pixel width used when no
// real text-measurement surface is available (headless layout, tests,
// server-side rendering).
const PerCharWidth = 7.2

// Measurer reports the rendered pixel width of a label under the map's
// node font. A wrong width only affects box aesthetics, never layout
// topology, so implementations may be approximate.
type Measurer interface {
	Width(text string) float64
}

// HeuristicMeasurer estimates width as rune count times a fixed
// per-character width.
type HeuristicMeasurer struct {
	CharWidth float64 // defaults to PerCharWidth when zero
}

func (m HeuristicMeasurer) Width(text string) float64 {
	cw := m.CharWidth
	if cw <= 0 {
		cw = PerCharWidth
	}
	return float64(utf8.RuneCountInString(text)) * cw
}

// CachedMeasurer memoizes another measurer. The cache is scoped to one
// mind-map instance and never invalidated; font metrics are assumed
// stable for the process lifetime. All access happens on the UI thread,
// so there is no locking.
type CachedMeasurer struct {
	inner Measurer
	cache map[string]float64
}

// NewCachedMeasurer wraps inner with a memoizing layer. A nil inner
// falls back to the heuristic measurer.
func NewCachedMeasurer(inner Measurer) *CachedMeasurer {
	if inner == nil {
		inner = HeuristicMeasurer{}
	}
	return &CachedMeasurer{inner: inner, cache: make(map[string]float64)}
}

func (m *CachedMeasurer) Width(text string) float64 {
	if w, ok := m.cache[text]; ok {
		return w
	}
	w := m.inner.Width(text)
	m.cache[text] = w
	return w
}

// Size reports how many distinct labels have been measured.
func (m *CachedMeasurer) Size() int {
	return len(m.cache)
}
