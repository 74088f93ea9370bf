package server

import (
	"github.com/nogginhq/noggin/pkg/vdom"
)

// Layout wraps a page's content in shared chrome (nav, shell, footer).
type Layout interface {
	Wrap(child *vdom.VNode) *vdom.VNode
}

// LayoutFunc is a function type that implements the Layout interface
type LayoutFunc func(child *vdom.VNode) *vdom.VNode

// Wrap implements the Layout interface for LayoutFunc
func (f LayoutFunc) Wrap(child *vdom.VNode) *vdom.VNode {
	return f(child)
}

// LayoutRegistry manages layouts for different routes
type LayoutRegistry struct {
	layouts map[string]Layout
}

// NewLayoutRegistry creates a new layout registry
func NewLayoutRegistry() *LayoutRegistry {
	return &LayoutRegistry{
		layouts: make(map[string]Layout),
	}
}

// Register registers a layout for a path pattern. Patterns are exact
// paths ("/about"), directory wildcards ("/collections/*"), or the
// root layout ("/").
func (r *LayoutRegistry) Register(pattern string, layout Layout) {
	r.layouts[pattern] = layout
}

// RegisterFunc registers a layout function for a specific path pattern
func (r *LayoutRegistry) RegisterFunc(pattern string, layoutFunc func(child *vdom.VNode) *vdom.VNode) {
	r.Register(pattern, LayoutFunc(layoutFunc))
}

// GetLayout returns the layout for a given path. When multiple
// wildcard patterns match, the most specific (longest) one wins.
func (r *LayoutRegistry) GetLayout(path string) Layout {
	if layout, ok := r.layouts[path]; ok {
		return layout
	}

	var best Layout
	bestLen := -1
	for pattern, layout := range r.layouts {
		if pattern != "/" && matchesPattern(path, pattern) && len(pattern) > bestLen {
			best = layout
			bestLen = len(pattern)
		}
	}
	if best != nil {
		return best
	}

	if layout, ok := r.layouts["/"]; ok {
		return layout
	}

	return nil
}

// ApplyLayout applies the appropriate layout to a VNode
func (r *LayoutRegistry) ApplyLayout(path string, content *vdom.VNode) *vdom.VNode {
	layout := r.GetLayout(path)
	if layout != nil {
		return layout.Wrap(content)
	}
	return content
}

func matchesPattern(path, pattern string) bool {
	if len(pattern) > 0 && pattern[len(pattern)-1] == '*' {
		prefix := pattern[:len(pattern)-1]
		return len(path) >= len(prefix) && path[:len(prefix)] == prefix
	}

	if len(pattern) > 1 && pattern[len(pattern)-1] == '/' {
		return len(path) >= len(pattern) && path[:len(pattern)] == pattern
	}

	return path == pattern
}
