//go:build !js || !wasm
// +build !js !wasm

package vdom

// ElementRef is a placeholder for a DOM element reference outside WASM
// builds. Ref callbacks are never invoked during server rendering.
type ElementRef = any
