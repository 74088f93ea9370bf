//go:build !js || !wasm
// +build !js !wasm

package dom

import (
	"fmt"

	"github.com/nogginhq/noggin/pkg/vdom"
)

// Applier applies VNode patches to the browser DOM (stub for non-WASM
// builds).
type Applier struct{}

// NewApplier creates a new DOM applier (stub)
func NewApplier() *Applier {
	return &Applier{}
}

// Apply applies patches to transform the DOM (stub)
func (a *Applier) Apply(patches []vdom.Patch) error {
	return fmt.Errorf("DOM applier is only available in WASM builds")
}

// HydrateFromDOM builds the node map from existing DOM elements (stub)
func (a *Applier) HydrateFromDOM() error {
	return fmt.Errorf("DOM hydration is only available in WASM builds")
}
