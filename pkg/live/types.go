// Package live implements the websocket protocol between the dev
// server and the browser: binary patch frames pushed to the client,
// event frames coming back, and control frames for handshake and
// dev-reload.
package live

// MessageType represents the type of live protocol message
type MessageType uint8

const (
	FramePatches MessageType = 0x00
	FrameEvent   MessageType = 0x01
	FrameControl MessageType = 0x02
)

// Control message names carried inside FrameControl frames.
const (
	ControlHello  = "HELLO"
	ControlPing   = "PING"
	ControlPong   = "PONG"
	ControlReload = "RELOAD"
)

// EventType represents client-side event types
type EventType uint8

const (
	EventClick  EventType = 0x01
	EventToggle EventType = 0x02
	EventInput  EventType = 0x03
	EventSubmit EventType = 0x04
)

// Event represents a client-side event
type Event struct {
	Type   EventType
	NodeID uint32
}
