package routes

import (
	"strconv"

	"github.com/nogginhq/noggin/pkg/builder"
	"github.com/nogginhq/noggin/pkg/components"
	"github.com/nogginhq/noggin/pkg/studio"
	"github.com/nogginhq/noggin/pkg/vdom"
)

// IndexPage lists the user's collections; each card links to that
// collection's mind map.
func IndexPage(cols []studio.Collection, errMsg string) *vdom.VNode {
	var body *vdom.VNode
	switch {
	case errMsg != "":
		body = errorBanner(errMsg, nil)
	case len(cols) == 0:
		body = builder.P().
			Class("empty-state").
			Text("No collections yet. Upload some documents to get started.").
			Build()
	default:
		cards := make([]*vdom.VNode, 0, len(cols))
		for _, col := range cols {
			cards = append(cards, collectionCard(col))
		}
		body = builder.Div().Class("collection-grid").Children(cards...).Build()
	}

	return shell("collections",
		builder.H2().Class("page-title").Text("Your collections").Build(),
		body,
	)
}

func collectionCard(col studio.Collection) *vdom.VNode {
	subtitle := strconv.Itoa(col.TotalChars) + " characters of source material"
	return builder.A().
		Href("/collections/"+col.ID+"/mindmap").
		Class("card-link").
		Key(col.ID).
		Children(
			components.Card(components.CardProps{
				Title:    col.Name,
				Subtitle: subtitle,
				Content:  builder.Span().Class("card-cta").Text("Open mind map →").Build(),
			}),
		).
		Build()
}
