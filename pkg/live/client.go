//go:build js && wasm
// +build js,wasm

package live

import (
	"syscall/js"
)

// Client handles WebSocket communication from the browser.
type Client struct {
	ws        js.Value
	url       string
	onPatch   func([]byte)
	onControl func(string)
	onReady   func()
}

// NewClient creates a new live protocol client
func NewClient(url string) *Client {
	return &Client{url: url}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect() error {
	c.ws = js.Global().Get("WebSocket").New(c.url)
	c.ws.Set("binaryType", "arraybuffer")

	c.ws.Set("onopen", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if c.onReady != nil {
			c.onReady()
		}
		return nil
	}))

	c.ws.Set("onmessage", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		data := args[0].Get("data")

		buffer := js.Global().Get("Uint8Array").New(data)
		length := buffer.Get("length").Int()
		frame := make([]byte, length)
		js.CopyBytesToGo(frame, buffer)

		c.dispatch(frame)
		return nil
	}))

	return nil
}

func (c *Client) dispatch(frame []byte) {
	if len(frame) == 0 {
		return
	}

	switch MessageType(frame[0]) {
	case FramePatches:
		if c.onPatch != nil {
			c.onPatch(frame)
		}
	case FrameControl:
		msgType, err := DecodeControl(frame)
		if err != nil {
			return
		}
		if msgType == ControlReload {
			js.Global().Get("location").Call("reload")
			return
		}
		if c.onControl != nil {
			c.onControl(msgType)
		}
	}
}

// SendEvent sends an event to the server
func (c *Client) SendEvent(evt Event) error {
	if c.ws.IsNull() || c.ws.IsUndefined() {
		return nil
	}

	data := EncodeEvent(evt)
	arrayBuffer := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arrayBuffer, data)
	c.ws.Call("send", arrayBuffer)

	return nil
}

// Close closes the WebSocket connection
func (c *Client) Close() {
	if !c.ws.IsNull() && !c.ws.IsUndefined() {
		c.ws.Call("close")
	}
}

// OnPatch sets the handler for binary patch frames.
func (c *Client) OnPatch(handler func([]byte)) {
	c.onPatch = handler
}

// OnControl sets the handler for control messages other than RELOAD.
func (c *Client) OnControl(handler func(string)) {
	c.onControl = handler
}

// OnReady sets the handler called once the socket is open.
func (c *Client) OnReady(handler func()) {
	c.onReady = handler
}
