package mindmapviewer

// API provides imperative controls over a mounted viewer. Capture it
// through Options.OnController and keep it around.
type API interface {
	ZoomIn()
	ZoomOut()
	Reset()
	FocusNode(id string)
	ExportPNG() string
}

// Note: Controller implements API in WASM builds only
