//go:build js && wasm
// +build js,wasm

// Package debug logs to the browser console from WASM builds.
package debug

import (
	"fmt"
	"syscall/js"
)

// Log logs a message to the console
func Log(args ...interface{}) {
	js.Global().Get("console").Call("log", args...)
}

// Logf logs a formatted message to the console
func Logf(format string, args ...interface{}) {
	js.Global().Get("console").Call("log", fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error to the console
func Errorf(format string, args ...interface{}) {
	js.Global().Get("console").Call("error", fmt.Sprintf(format, args...))
}
