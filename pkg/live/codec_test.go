//go:build !wasm

package live

import (
	"bytes"
	"testing"

	"github.com/nogginhq/noggin/pkg/vdom"
)

func TestEventRoundTrip(t *testing.T) {
	evt := Event{Type: EventToggle, NodeID: 300}

	decoded, err := DecodeEvent(EncodeEvent(evt))
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if decoded.Type != EventToggle || decoded.NodeID != 300 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestDecodeEvent_Errors(t *testing.T) {
	if _, err := DecodeEvent([]byte{byte(FrameEvent)}); err == nil {
		t.Error("short frame should fail")
	}
	if _, err := DecodeEvent([]byte{byte(FrameControl), 0x01, 0x05}); err == nil {
		t.Error("wrong frame type should fail")
	}
}

func TestControlRoundTrip(t *testing.T) {
	for _, msg := range []string{ControlHello, ControlPing, ControlPong, ControlReload} {
		decoded, err := DecodeControl(EncodeControl(msg))
		if err != nil {
			t.Fatalf("DecodeControl(%s): %v", msg, err)
		}
		if decoded != msg {
			t.Errorf("DecodeControl = %q, want %q", decoded, msg)
		}
	}
}

func TestDecodeControl_Truncated(t *testing.T) {
	frame := EncodeControl(ControlReload)
	if _, err := DecodeControl(frame[:len(frame)-2]); err == nil {
		t.Error("truncated control frame should fail")
	}
}

func TestEncodePatches(t *testing.T) {
	patches := []vdom.Patch{
		{Op: vdom.OpReplaceText, NodeID: 3, Value: "hi"},
		{Op: vdom.OpSetAttribute, NodeID: 5, Key: "class", Value: "active"},
		{Op: vdom.OpRemoveNode, NodeID: 9},
	}

	data, err := EncodePatches(patches)
	if err != nil {
		t.Fatalf("EncodePatches: %v", err)
	}

	if data[0] != byte(FramePatches) {
		t.Errorf("frame type = %#x, want FramePatches", data[0])
	}

	decoder := NewDecoder(bytes.NewReader(data[1:]))
	count, err := decoder.ReadUvarint()
	if err != nil || count != 3 {
		t.Fatalf("patch count = %d (err %v), want 3", count, err)
	}

	// First patch: ReplaceText(3, "hi")
	op, _ := decoder.ReadByte()
	if vdom.PatchOp(op) != vdom.OpReplaceText {
		t.Fatalf("op = %#x, want ReplaceText", op)
	}
	nodeID, _ := decoder.ReadUvarint()
	text, _ := decoder.ReadString()
	if nodeID != 3 || text != "hi" {
		t.Errorf("ReplaceText decoded as node=%d text=%q", nodeID, text)
	}
}

func TestEncodeDecodeStrings(t *testing.T) {
	var buf bytes.Buffer
	encoder := NewEncoder(&buf)
	encoder.WriteString("mindmap")
	encoder.WriteUvarint(12345)

	decoder := NewDecoder(&buf)
	s, err := decoder.ReadString()
	if err != nil || s != "mindmap" {
		t.Errorf("ReadString = %q (err %v)", s, err)
	}
	v, err := decoder.ReadUvarint()
	if err != nil || v != 12345 {
		t.Errorf("ReadUvarint = %d (err %v)", v, err)
	}
}
