// Package html renders virtual DOM trees to HTML for server-side
// rendering. Output is deterministic: attributes are written in sorted
// order so the same tree always produces the same markup.
package html

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/nogginhq/noggin/pkg/vdom"
)

// voidElements are HTML elements that cannot have children
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// booleanAttributes are HTML attributes that are boolean flags
var booleanAttributes = map[string]bool{
	"checked":   true,
	"disabled":  true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
	"defer":     true,
	"async":     true,
	"multiple":  true,
	"autofocus": true,
}

// Applier renders VNodes to HTML.
type Applier struct {
	w              io.Writer
	hydrationIDGen *hydrationIDGenerator
	err            error
}

// hydrationIDGenerator hands out the data-hid values the client uses
// to re-bind event handlers after hydration.
type hydrationIDGenerator struct {
	mu      sync.Mutex
	counter uint32
}

func (g *hydrationIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.counter
	g.counter++
	return fmt.Sprintf("h%d", id)
}

// NewApplier creates a new HTML applier writing to w.
func NewApplier(w io.Writer) *Applier {
	return &Applier{
		w:              w,
		hydrationIDGen: &hydrationIDGenerator{counter: 1},
	}
}

// Apply renders a VNode tree to HTML. Incremental updates are not
// supported; prev must be nil.
func (a *Applier) Apply(prev, next *vdom.VNode) error {
	if prev != nil {
		return fmt.Errorf("html applier does not support incremental updates")
	}

	if next == nil {
		return nil
	}

	a.renderNode(next)
	return a.err
}

func (a *Applier) write(s string) {
	if a.err != nil {
		return
	}
	_, a.err = io.WriteString(a.w, s)
}

func (a *Applier) renderNode(node *vdom.VNode) {
	if node == nil || a.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindText:
		// HTML escape text content to prevent XSS
		a.write(html.EscapeString(node.Text))

	case vdom.KindElement:
		a.renderElement(node)

	case vdom.KindFragment:
		for i := range node.Kids {
			a.renderNode(&node.Kids[i])
		}
	}
}

func (a *Applier) renderElement(node *vdom.VNode) {
	a.write("<")
	a.write(node.Tag)

	// Elements with event handlers get a hydration ID so the client
	// can find them again.
	needsHydrationID := false
	for key := range node.Props {
		if isEventProp(key) {
			needsHydrationID = true
			break
		}
	}
	if needsHydrationID {
		a.write(fmt.Sprintf(` data-hid="%s"`, a.hydrationIDGen.Next()))
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		if key == "key" || key == "ref" || isEventProp(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		if booleanAttributes[key] {
			if v, ok := value.(bool); ok && v {
				a.write(" ")
				a.write(key)
			}
			continue
		}

		valueStr := fmt.Sprintf("%v", value)

		// Security: prevent javascript: URLs in href/src attributes
		if (key == "href" || key == "src") && strings.HasPrefix(strings.ToLower(valueStr), "javascript:") {
			valueStr = "#"
		}

		a.write(" ")
		a.write(key)
		a.write(`="`)
		a.write(html.EscapeString(valueStr))
		a.write(`"`)
	}

	a.write(">")

	// Void elements don't have closing tags or children
	if voidElements[node.Tag] {
		return
	}

	// Script and style content must not be escaped.
	isRawTextElement := node.Tag == "script" || node.Tag == "style"
	for i := range node.Kids {
		if isRawTextElement {
			a.renderRawNode(&node.Kids[i])
		} else {
			a.renderNode(&node.Kids[i])
		}
	}

	a.write("</")
	a.write(node.Tag)
	a.write(">")
}

func (a *Applier) renderRawNode(node *vdom.VNode) {
	if node == nil || a.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindText:
		a.write(node.Text)

	case vdom.KindElement:
		a.renderElement(node)

	case vdom.KindFragment:
		for i := range node.Kids {
			a.renderRawNode(&node.Kids[i])
		}
	}
}

func isEventProp(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n'
}

// RenderToString is a convenience function to render a VNode to a string
func RenderToString(node *vdom.VNode) (string, error) {
	var buf strings.Builder
	applier := NewApplier(&buf)
	if err := applier.Apply(nil, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}
