package components

import (
	"strings"
	"testing"

	"github.com/nogginhq/noggin/pkg/renderer/html"
	"github.com/nogginhq/noggin/pkg/vdom"
)

func renderString(t *testing.T, n *vdom.VNode) string {
	t.Helper()
	out, err := html.RenderToString(n)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func TestButton_Variants(t *testing.T) {
	out := renderString(t, Button(ButtonProps{Text: "Save"}))
	if !strings.Contains(out, "btn-primary") {
		t.Errorf("default variant should be primary: %s", out)
	}
	out = renderString(t, Button(ButtonProps{Text: "Remove", Variant: ButtonDanger, Disabled: true}))
	if !strings.Contains(out, "btn-danger") || !strings.Contains(out, "disabled") {
		t.Errorf("variant or disabled missing: %s", out)
	}
}

func TestCard_Sections(t *testing.T) {
	out := renderString(t, Card(CardProps{
		Title:    "Biology 101",
		Subtitle: "12 reinforcements",
		Content:  vdom.NewText("body"),
	}))
	for _, want := range []string{"card-header", "card-title", "Biology 101", "12 reinforcements", "card-body"} {
		if !strings.Contains(out, want) {
			t.Errorf("card output missing %q", want)
		}
	}
	if strings.Contains(out, "card-footer") {
		t.Error("footer section should be omitted when unset")
	}
}

func TestLoadingSpinner_Caption(t *testing.T) {
	out := renderString(t, LoadingSpinner("Generating map"))
	if !strings.Contains(out, "Generating map") || !strings.Contains(out, "spinner") {
		t.Errorf("spinner output unexpected: %s", out)
	}
	bare := renderString(t, LoadingSpinner(""))
	if strings.Contains(bare, "spinner-text") {
		t.Error("caption span should be omitted when empty")
	}
}
