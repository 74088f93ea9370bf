//go:build js && wasm
// +build js,wasm

package main

import (
	"context"
	"strings"
	"syscall/js"

	"github.com/nogginhq/noggin/app/routes"
	"github.com/nogginhq/noggin/pkg/components/mindmapviewer"
	"github.com/nogginhq/noggin/pkg/debug"
	"github.com/nogginhq/noggin/pkg/live"
	"github.com/nogginhq/noggin/pkg/reactive"
	"github.com/nogginhq/noggin/pkg/renderer/dom"
	"github.com/nogginhq/noggin/pkg/scheduler"
	"github.com/nogginhq/noggin/pkg/studio"
	"github.com/nogginhq/noggin/pkg/vdom"
)

var (
	document js.Value
	applier  *dom.Applier
	appRoot  js.Value
	backend  *studio.Client
	sched    *scheduler.Scheduler
)

func main() {
	document = js.Global().Get("document")
	backend = studio.NewClient("/api")
	applier = dom.NewApplier()

	sched = scheduler.NewScheduler()
	sched.SetPatchApplier(func(patches []vdom.Patch) {
		if err := applier.Apply(patches); err != nil {
			debug.Errorf("apply patches: %v", err)
		}
	})
	sched.Start()

	if document.Get("readyState").String() != "loading" {
		onReady()
	} else {
		document.Call("addEventListener", "DOMContentLoaded", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			onReady()
			return nil
		}))
	}

	// Keep the WASM runtime alive.
	select {}
}

func onReady() {
	appRoot = document.Call("getElementById", "app")
	if appRoot.IsNull() {
		debug.Errorf("missing #app element")
		return
	}

	connectLive()

	path := js.Global().Get("window").Get("location").Get("pathname").String()
	if id, ok := mindMapCollection(path); ok {
		mountMindMap(id)
		return
	}
	mountCollections()
}

// connectLive opens the dev-reload websocket. Outside `noggin serve
// --watch` the endpoint rejects the upgrade and the client stays idle.
func connectLive() {
	loc := js.Global().Get("window").Get("location")
	scheme := "ws"
	if loc.Get("protocol").String() == "https:" {
		scheme = "wss"
	}
	c := live.NewClient(scheme + "://" + loc.Get("host").String() + "/_live/client")
	if err := c.Connect(); err != nil {
		debug.Logf("live connect: %v", err)
	}
}

// mindMapCollection matches /collections/{id}/mindmap.
func mindMapCollection(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 3 && parts[0] == "collections" && parts[2] == "mindmap" {
		return parts[1], true
	}
	return "", false
}

func mount(page *vdom.VNode) {
	applier.Mount(appRoot, page)
}

func mountCollections() {
	go func() {
		cols, err := backend.ListCollections(context.Background())
		if err != nil {
			debug.Errorf("list collections: %v", err)
			mount(routes.IndexPage(nil, err.Error()))
			return
		}
		mount(routes.IndexPage(cols, ""))
	}()
}

// mountMindMap drives the mind map page through the fiber scheduler:
// a version signal is bumped on every store change, which marks the
// page fiber dirty and re-renders it through the diff/patch path.
func mountMindMap(collectionID string) {
	store := studio.NewMapStore(backend, collectionID)
	version := reactive.NewState(0, sched)

	var api mindmapviewer.API
	opts := &mindmapviewer.Options{
		OnController: func(a mindmapviewer.API) { api = a },
	}

	var fiber *scheduler.Fiber
	renderPage := func() *vdom.VNode {
		reactive.SetCurrentFiber(fiber)
		defer reactive.SetCurrentFiber(nil)
		version.Get()

		return routes.MindMapPage(routes.MindMapPageProps{
			Root:          store.Root(),
			Expansion:     store.Expansion(),
			Busy:          store.Busy() != studio.ActionNone,
			BusyText:      busyText(store.Busy()),
			ErrorMsg:      store.Error(),
			ViewerOptions: opts,
			Controller:    func() mindmapviewer.API { return api },
			OnExport: func() {
				if api != nil {
					downloadPNG(api.ExportPNG())
				}
			},
			OnRegenerate: func() {
				go store.Regenerate(context.Background())
			},
			OnDelete: func() {
				go store.Delete(context.Background())
			},
			OnDismissError: store.DismissError,
		})
	}
	fiber = sched.CreateFiber(renderPage, nil)

	store.SetOnChange(func() {
		version.Update(func(v int) int { return v + 1 })
	})

	initial := renderPage()
	mount(initial)
	fiber.SetVNode(initial)

	go store.Fetch(context.Background())
}

// downloadPNG triggers a browser download for a data URL.
func downloadPNG(dataURL string) {
	if dataURL == "" {
		return
	}
	a := document.Call("createElement", "a")
	a.Set("href", dataURL)
	a.Set("download", "mindmap.png")
	a.Call("click")
}

func busyText(a studio.Action) string {
	switch a {
	case studio.ActionFetch:
		return "Loading mind map"
	case studio.ActionRegenerate:
		return "Regenerating mind map"
	case studio.ActionDelete:
		return "Deleting mind map"
	default:
		return ""
	}
}
