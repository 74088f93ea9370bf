//go:build js && wasm
// +build js,wasm

// Package dom applies virtual DOM patches to the live browser DOM in
// WASM builds. It keeps a map from patch node IDs to js.Value elements
// and re-binds Go event handlers whenever a subtree is created or
// hydrated.
package dom

import (
	"fmt"
	"strings"
	"syscall/js"

	"github.com/nogginhq/noggin/pkg/vdom"
)

// Applier applies VNode patches to the browser DOM.
type Applier struct {
	document      js.Value
	nodeMap       map[uint32]js.Value
	eventHandlers map[uint32]map[string]js.Func
}

// NewApplier creates a new DOM applier.
func NewApplier() *Applier {
	return &Applier{
		document:      js.Global().Get("document"),
		nodeMap:       make(map[uint32]js.Value),
		eventHandlers: make(map[uint32]map[string]js.Func),
	}
}

// Apply applies patches to transform the DOM.
func (a *Applier) Apply(patches []vdom.Patch) error {
	for _, patch := range patches {
		if err := a.applyPatch(patch); err != nil {
			return fmt.Errorf("apply patch %v: %w", patch, err)
		}
	}
	return nil
}

func (a *Applier) applyPatch(patch vdom.Patch) error {
	switch patch.Op {
	case vdom.OpReplaceText:
		return a.replaceText(patch)
	case vdom.OpSetAttribute:
		return a.setAttribute(patch)
	case vdom.OpRemoveAttribute:
		return a.removeAttribute(patch)
	case vdom.OpRemoveNode:
		return a.removeNode(patch)
	case vdom.OpInsertNode:
		return a.insertNode(patch)
	case vdom.OpMoveNode:
		return a.moveNode(patch)
	default:
		return fmt.Errorf("unknown patch operation: %v", patch.Op)
	}
}

func (a *Applier) replaceText(patch vdom.Patch) error {
	node, ok := a.nodeMap[patch.NodeID]
	if !ok {
		return fmt.Errorf("node %d not found", patch.NodeID)
	}

	node.Set("textContent", patch.Value)
	return nil
}

func (a *Applier) setAttribute(patch vdom.Patch) error {
	node, ok := a.nodeMap[patch.NodeID]
	if !ok {
		return fmt.Errorf("node %d not found", patch.NodeID)
	}

	switch patch.Key {
	case "class":
		node.Set("className", patch.Value)
	case "for":
		node.Set("htmlFor", patch.Value)
	case "checked", "selected", "disabled", "readonly", "required":
		node.Set(patch.Key, patch.Value == "true")
	case "value":
		// Inputs track value as a property, not an attribute.
		tag := node.Get("tagName").String()
		if tag == "INPUT" || tag == "TEXTAREA" || tag == "SELECT" {
			node.Set("value", patch.Value)
		} else {
			node.Call("setAttribute", patch.Key, patch.Value)
		}
	default:
		node.Call("setAttribute", patch.Key, patch.Value)
	}

	return nil
}

func (a *Applier) removeAttribute(patch vdom.Patch) error {
	node, ok := a.nodeMap[patch.NodeID]
	if !ok {
		return fmt.Errorf("node %d not found", patch.NodeID)
	}

	switch patch.Key {
	case "class":
		node.Set("className", "")
	case "checked", "selected", "disabled", "readonly", "required":
		node.Set(patch.Key, false)
	default:
		node.Call("removeAttribute", patch.Key)
	}

	return nil
}

func (a *Applier) removeNode(patch vdom.Patch) error {
	node, ok := a.nodeMap[patch.NodeID]
	if !ok {
		return fmt.Errorf("node %d not found", patch.NodeID)
	}

	parent := node.Get("parentNode")
	if !parent.IsNull() && !parent.IsUndefined() {
		parent.Call("removeChild", node)
	}

	a.releaseHandlers(patch.NodeID)
	delete(a.nodeMap, patch.NodeID)

	return nil
}

func (a *Applier) insertNode(patch vdom.Patch) error {
	if patch.Node == nil {
		return fmt.Errorf("insert patch missing node")
	}

	domNode, _ := a.createDOMTree(patch.Node, patch.NodeID)

	parent, ok := a.nodeMap[patch.ParentID]
	if !ok && patch.ParentID != 0 {
		return fmt.Errorf("parent node %d not found", patch.ParentID)
	}
	if patch.ParentID == 0 {
		parent = a.document.Get("body")
	}

	if patch.BeforeID != 0 {
		if before, ok := a.nodeMap[patch.BeforeID]; ok {
			parent.Call("insertBefore", domNode, before)
			return nil
		}
	}
	parent.Call("appendChild", domNode)

	return nil
}

// createDOMTree creates a DOM tree from a VNode tree, assigning node
// IDs depth-first so inserted subtrees line up with later patches.
func (a *Applier) createDOMTree(vnode *vdom.VNode, startID uint32) (js.Value, uint32) {
	if vnode == nil {
		return js.Undefined(), startID
	}

	currentID := startID

	switch vnode.Kind {
	case vdom.KindText:
		textNode := a.document.Call("createTextNode", vnode.Text)
		a.nodeMap[currentID] = textNode
		return textNode, currentID + 1

	case vdom.KindElement:
		elem := a.document.Call("createElement", vnode.Tag)
		a.nodeMap[currentID] = elem

		for key, value := range vnode.Props {
			if key == "key" || key == "ref" || isEventProp(key) {
				continue
			}
			elem.Call("setAttribute", key, fmt.Sprintf("%v", value))
		}

		a.attachEventHandlers(currentID, elem, vnode.Props)
		applyRef(elem, vnode.Props)

		nextID := currentID + 1
		for i := range vnode.Kids {
			childDOM, newNextID := a.createDOMTree(&vnode.Kids[i], nextID)
			if !childDOM.IsUndefined() {
				elem.Call("appendChild", childDOM)
			}
			nextID = newNextID
		}

		return elem, nextID

	case vdom.KindFragment:
		frag := a.document.Call("createDocumentFragment")
		nextID := currentID + 1
		for i := range vnode.Kids {
			childDOM, newNextID := a.createDOMTree(&vnode.Kids[i], nextID)
			if !childDOM.IsUndefined() {
				frag.Call("appendChild", childDOM)
			}
			nextID = newNextID
		}
		return frag, nextID

	default:
		return js.Undefined(), currentID
	}
}

func applyRef(elem js.Value, props vdom.Props) {
	refVal, ok := props["ref"]
	if !ok {
		return
	}
	if refFn, ok := refVal.(func(js.Value)); ok {
		refFn(elem)
	} else if refFn, ok := refVal.(func(vdom.ElementRef)); ok {
		refFn(elem)
	}
}

// Mount clears the container and renders vnode into it as a fresh
// tree, releasing any handlers bound to the previous mount.
func (a *Applier) Mount(container js.Value, vnode *vdom.VNode) {
	for id := range a.eventHandlers {
		a.releaseHandlers(id)
	}
	a.nodeMap = make(map[uint32]js.Value)
	container.Set("innerHTML", "")
	if vnode == nil {
		return
	}
	node, _ := a.createDOMTree(vnode, 1)
	container.Call("appendChild", node)
}

func (a *Applier) releaseHandlers(nodeID uint32) {
	if handlers, exists := a.eventHandlers[nodeID]; exists {
		for _, fn := range handlers {
			fn.Release()
		}
		delete(a.eventHandlers, nodeID)
	}
}

// attachEventHandlers attaches event handlers from VNode props to a
// DOM element. Several Go handler signatures are supported; mouse and
// touch handlers receive element-relative coordinates, touch handlers
// additionally the active contact count, and wheel handlers deltaY.
func (a *Applier) attachEventHandlers(nodeID uint32, elem js.Value, props vdom.Props) {
	if props == nil {
		return
	}

	if handlers, exists := a.eventHandlers[nodeID]; exists {
		for eventName, fn := range handlers {
			elem.Call("removeEventListener", eventName, fn)
			fn.Release()
		}
	}

	handlers := make(map[string]js.Func)

	for key, value := range props {
		if !isEventProp(key) {
			continue
		}
		eventName := strings.ToLower(key[2:])

		var jsFunc js.Func
		switch h := value.(type) {
		case func():
			jsFunc = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
				h()
				return nil
			})
		case func(js.Value):
			jsFunc = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
				if len(args) > 0 {
					h(args[0])
				} else {
					h(js.Undefined())
				}
				return nil
			})
		case func(x, y float64):
			jsFunc = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
				var x, y float64
				if len(args) > 0 {
					ev := args[0]
					bx, by := 0.0, 0.0
					if this.Truthy() {
						rect := this.Call("getBoundingClientRect")
						bx = rect.Get("left").Float()
						by = rect.Get("top").Float()
					}
					x = ev.Get("clientX").Float() - bx
					y = ev.Get("clientY").Float() - by
				}
				h(x, y)
				return nil
			})
		case func(deltaY float64):
			jsFunc = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
				var d float64
				if len(args) > 0 {
					d = args[0].Get("deltaY").Float()
				}
				h(d)
				return nil
			})
		case func(x, y, deltaY float64):
			jsFunc = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
				var x, y, d float64
				if len(args) > 0 {
					ev := args[0]
					bx, by := 0.0, 0.0
					if this.Truthy() {
						rect := this.Call("getBoundingClientRect")
						bx = rect.Get("left").Float()
						by = rect.Get("top").Float()
					}
					x = ev.Get("clientX").Float() - bx
					y = ev.Get("clientY").Float() - by
					d = ev.Get("deltaY").Float()
				}
				h(x, y, d)
				return nil
			})
		case func(x, y float64, contacts int):
			jsFunc = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
				var x, y float64
				var contacts int
				if len(args) > 0 {
					ev := args[0]
					// Suppress the synthesized mouse events that would
					// otherwise follow each touch sequence.
					ev.Call("preventDefault")
					touches := ev.Get("touches")
					contacts = touches.Get("length").Int()
					point := js.Undefined()
					if contacts > 0 {
						point = touches.Index(0)
					} else if changed := ev.Get("changedTouches"); changed.Truthy() && changed.Get("length").Int() > 0 {
						point = changed.Index(0)
					}
					if point.Truthy() {
						bx, by := 0.0, 0.0
						if this.Truthy() {
							rect := this.Call("getBoundingClientRect")
							bx = rect.Get("left").Float()
							by = rect.Get("top").Float()
						}
						x = point.Get("clientX").Float() - bx
						y = point.Get("clientY").Float() - by
					}
				}
				h(x, y, contacts)
				return nil
			})
		case func(string):
			jsFunc = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
				var s string
				if len(args) > 0 {
					ev := args[0]
					switch eventName {
					case "input", "change":
						if tgt := ev.Get("target"); tgt.Truthy() {
							s = tgt.Get("value").String()
						}
					case "keydown", "keyup", "keypress":
						s = ev.Get("key").String()
					default:
						s = ev.Get("type").String()
					}
				}
				h(s)
				return nil
			})
		default:
			continue
		}

		elem.Call("addEventListener", eventName, jsFunc)
		handlers[eventName] = jsFunc
	}

	if len(handlers) > 0 {
		a.eventHandlers[nodeID] = handlers
	}
}

func (a *Applier) moveNode(patch vdom.Patch) error {
	node, ok := a.nodeMap[patch.NodeID]
	if !ok {
		return fmt.Errorf("node %d not found", patch.NodeID)
	}

	parent, ok := a.nodeMap[patch.ParentID]
	if !ok && patch.ParentID != 0 {
		return fmt.Errorf("parent node %d not found", patch.ParentID)
	}
	if patch.ParentID == 0 {
		parent = a.document.Get("body")
	}

	currentParent := node.Get("parentNode")
	if !currentParent.IsNull() && !currentParent.IsUndefined() {
		currentParent.Call("removeChild", node)
	}

	if patch.BeforeID != 0 {
		if before, ok := a.nodeMap[patch.BeforeID]; ok {
			parent.Call("insertBefore", node, before)
			return nil
		}
	}
	parent.Call("appendChild", node)

	return nil
}

// HydrateFromDOM builds the node map from server-rendered elements
// carrying data-hid attributes.
func (a *Applier) HydrateFromDOM() error {
	elements := a.document.Call("querySelectorAll", "[data-hid]")
	length := elements.Get("length").Int()

	for i := 0; i < length; i++ {
		elem := elements.Index(i)
		hidStr := elem.Call("getAttribute", "data-hid").String()

		var hid uint32
		if _, err := fmt.Sscanf(hidStr, "h%d", &hid); err != nil {
			return fmt.Errorf("invalid hydration ID: %s", hidStr)
		}

		a.nodeMap[hid] = elem
	}

	return nil
}

// HydrateTree walks the VNode tree and DOM tree together to build the
// complete node map, so later diffs can address every node.
func (a *Applier) HydrateTree(vnode *vdom.VNode, domNode js.Value, nodeID uint32) uint32 {
	if vnode == nil {
		return nodeID
	}

	switch vnode.Kind {
	case vdom.KindElement:
		a.nodeMap[nodeID] = domNode

		currentID := nodeID + 1
		childNodes := domNode.Get("childNodes")
		childLength := childNodes.Get("length").Int()

		vnodeIdx := 0
		for i := 0; i < childLength && vnodeIdx < len(vnode.Kids); i++ {
			childDOM := childNodes.Index(i)
			nodeType := childDOM.Get("nodeType").Int()

			// Skip comments and other non-element, non-text nodes.
			if nodeType != 1 && nodeType != 3 {
				continue
			}

			currentID = a.HydrateTree(&vnode.Kids[vnodeIdx], childDOM, currentID)
			vnodeIdx++
		}

		return currentID

	case vdom.KindText:
		a.nodeMap[nodeID] = domNode
		return nodeID + 1

	default:
		return nodeID
	}
}

// AttachHandlersForVNode attaches event handlers to hydrated elements.
func (a *Applier) AttachHandlersForVNode(nodeID uint32, vnode *vdom.VNode) {
	if elem, ok := a.nodeMap[nodeID]; ok && vnode.Props != nil {
		a.attachEventHandlers(nodeID, elem, vnode.Props)
	}
}

func isEventProp(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n'
}
