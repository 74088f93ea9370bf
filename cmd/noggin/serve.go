package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nogginhq/noggin/app/routes"
	_ "github.com/nogginhq/noggin/app/styles"
	"github.com/nogginhq/noggin/cmd/noggin/internal/config"
	"github.com/nogginhq/noggin/internal/cache"
	"github.com/nogginhq/noggin/pkg/builder"
	"github.com/nogginhq/noggin/pkg/live"
	"github.com/nogginhq/noggin/pkg/mindmap"
	"github.com/nogginhq/noggin/pkg/server"
	"github.com/nogginhq/noggin/pkg/studio"
	"github.com/nogginhq/noggin/pkg/styling"
	"github.com/nogginhq/noggin/pkg/vdom"
)

type serveServer struct {
	cfg    *config.Config
	logger *slog.Logger

	watcher    *fsnotify.Watcher
	buildMutex sync.Mutex
	buildCache *cache.Cache
	liveServer *live.Server
	backend    *studio.Client

	router  *server.Router
	layouts *server.LayoutRegistry
}

func newServeCommand() *cobra.Command {
	var port int
	var host string
	var backendURL string
	var cwd string
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the app with SSR, an /api proxy and optional rebuild-on-change",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("change directory to %s: %w", cwd, err)
				}
			}
			return runServe(host, port, backendURL, watch)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from noggin.yaml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind (default from noggin.yaml)")
	cmd.Flags().StringVar(&backendURL, "backend", "", "Backend base URL proxied under /api/")
	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory of the app (defaults to current)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rebuild WASM on file changes and push reloads")

	return cmd
}

func runServe(host string, port int, backendURL string, watch bool) error {
	logger := slog.Default().With("component", "serve")

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	// CLI flags take precedence over noggin.yaml.
	if port != 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if backendURL != "" {
		cfg.Backend.URL = backendURL
	}

	buildCache, err := cache.New(cache.DefaultConfig())
	if err != nil {
		logger.Warn("build cache unavailable", "error", err)
	}

	s := &serveServer{
		cfg:        cfg,
		logger:     logger,
		buildCache: buildCache,
		liveServer: live.NewServer(),
		backend:    studio.NewClient(cfg.Backend.URL),
	}
	s.setupRoutes()

	if err := s.buildWASM(); err != nil {
		logger.Warn("initial WASM build failed, serving SSR only", "error", err)
	}

	if watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create file watcher: %w", err)
		}
		defer watcher.Close()
		s.watcher = watcher
		if err := s.setupWatcher(); err != nil {
			return fmt.Errorf("setup watcher: %w", err)
		}
		go s.watchFiles()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/_live/", s.liveServer.HandleWebSocket)
	mux.HandleFunc("/app.wasm", s.serveWASM)
	mux.HandleFunc("/wasm_exec.js", s.serveWasmExec)
	mux.HandleFunc("/styles.css", s.serveStyles)
	mux.HandleFunc("/_dev/routes", s.serveRouteTable)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	proxy, err := s.backendProxy()
	if err != nil {
		return err
	}
	mux.Handle("/api/", http.StripPrefix("/api", proxy))

	mux.Handle("/", s.router)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("serving", "addr", "http://"+addr, "backend", cfg.Backend.URL, "watch", watch)

	srv := &http.Server{Addr: addr, Handler: mux}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		if s.buildCache != nil {
			s.buildCache.Close()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// setupRoutes builds the SSR router. Pages render the same components
// the WASM client mounts, wrapped in a full document by the root layout.
func (s *serveServer) setupRoutes() {
	s.layouts = server.NewLayoutRegistry()
	s.layouts.RegisterFunc("/", s.documentLayout)

	r := server.NewRouter()
	r.AddRoute("/", func(ctx server.Ctx) (*vdom.VNode, error) {
		reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), 10*time.Second)
		defer cancel()
		cols, err := s.backend.ListCollections(reqCtx)
		errMsg := ""
		if err != nil {
			ctx.Logger().Warn("list collections", "error", err)
			errMsg = "Backend unreachable: " + err.Error()
		}
		return s.wrap(ctx, routes.IndexPage(cols, errMsg)), nil
	})
	r.AddRoute("/collections/[id]/mindmap", func(ctx server.Ctx) (*vdom.VNode, error) {
		// The WASM client fetches the map itself; SSR sends the frame
		// in its loading state so first paint is immediate.
		page := routes.MindMapPage(routes.MindMapPageProps{
			CollectionName: s.collectionName(ctx, ctx.Param("id")),
			Busy:           true,
			BusyText:       "Loading mind map",
			Expansion:      mindmap.NewExpansionSet(mindmap.RootID),
		})
		return s.wrap(ctx, page), nil
	})
	s.router = r
}

// collectionName resolves a collection's display name for the page
// title. Best effort; the WASM client re-renders with live data anyway.
func (s *serveServer) collectionName(ctx server.Ctx, id string) string {
	reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), 3*time.Second)
	defer cancel()
	cols, err := s.backend.ListCollections(reqCtx)
	if err != nil {
		return ""
	}
	for _, col := range cols {
		if col.ID == id {
			return col.Name
		}
	}
	return ""
}

func (s *serveServer) wrap(ctx server.Ctx, page *vdom.VNode) *vdom.VNode {
	if layout := s.layouts.GetLayout(ctx.Path()); layout != nil {
		return layout.Wrap(page)
	}
	return page
}

// documentLayout wraps SSR page content in the full HTML document that
// boots the WASM client.
func (s *serveServer) documentLayout(child *vdom.VNode) *vdom.VNode {
	const bootstrap = `const go = new Go();
WebAssembly.instantiateStreaming(fetch("/app.wasm"), go.importObject)
	.then((result) => go.run(result.instance))
	.catch((err) => console.error("wasm boot failed", err));`

	head := builder.El("head").Children(
		builder.El("meta").Attr("charset", "utf-8").Build(),
		builder.El("meta").Attr("name", "viewport").Attr("content", "width=device-width, initial-scale=1").Build(),
		builder.El("title").Text("Noggin").Build(),
		builder.El("link").Attr("rel", "stylesheet").Href("/styles.css").Build(),
	).Build()

	body := builder.El("body").Children(
		builder.Div().ID("app").Children(child).Build(),
		builder.El("script").Src("/wasm_exec.js").Build(),
		builder.El("script").Text(bootstrap).Build(),
	).Build()

	return builder.El("html").Attr("lang", "en").Children(head, body).Build()
}

func (s *serveServer) setupWatcher() error {
	ignored := make(map[string]bool, len(s.cfg.Watch.Ignore))
	for _, name := range s.cfg.Watch.Ignore {
		ignored[name] = true
	}
	return filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != "." {
				return filepath.SkipDir
			}
			if ignored[info.Name()] {
				return filepath.SkipDir
			}
			return s.watcher.Add(path)
		}
		return nil
	})
}

func (s *serveServer) isRelevantFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range s.cfg.Watch.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (s *serveServer) watchFiles() {
	debounce := time.NewTimer(0)
	<-debounce.C

	var mu sync.Mutex
	var pending []fsnotify.Event

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !s.isRelevantFile(event.Name) {
				continue
			}
			mu.Lock()
			pending = append(pending, event)
			mu.Unlock()
			debounce.Reset(100 * time.Millisecond)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", "error", err)

		case <-debounce.C:
			mu.Lock()
			events := pending
			pending = nil
			mu.Unlock()
			if len(events) > 0 {
				s.handleFileChanges(events)
			}
		}
	}
}

func (s *serveServer) handleFileChanges(events []fsnotify.Event) {
	var goChanged, assetChanged bool
	for _, event := range events {
		switch strings.ToLower(filepath.Ext(event.Name)) {
		case ".go":
			goChanged = true
			if s.buildCache != nil {
				if n := s.buildCache.InvalidateByDependency(event.Name); n > 0 {
					s.logger.Debug("invalidated cached builds", "count", n, "file", filepath.Base(event.Name))
				}
			}
		default:
			assetChanged = true
		}
	}

	if goChanged {
		s.logger.Info("source changed, rebuilding WASM")
		if err := s.buildWASM(); err != nil {
			s.logger.Error("rebuild failed", "error", err)
			return
		}
	}
	if goChanged || assetChanged {
		s.liveServer.BroadcastReload()
	}
}

// buildWASM compiles app/client to public/app.wasm, reusing a cached
// artifact when the source hash matches.
func (s *serveServer) buildWASM() error {
	s.buildMutex.Lock()
	defer s.buildMutex.Unlock()

	if err := os.MkdirAll(s.cfg.Server.PublicDir, 0755); err != nil {
		return err
	}
	wasmPath := filepath.Join(s.cfg.Server.PublicDir, "app.wasm")
	sources := collectGoFiles("app", "pkg")

	var key string
	if s.buildCache != nil && len(sources) > 0 {
		if k, err := cache.KeyFromFiles(sources...); err == nil {
			key = k
			if data, ok := s.buildCache.Get(key); ok {
				s.logger.Debug("using cached WASM build")
				return os.WriteFile(wasmPath, data, 0644)
			}
		}
	}

	start := time.Now()
	cmd := exec.Command("go", "build", "-o", wasmPath, "./app/client")
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("go build: %w\n%s", err, output)
	}
	s.logger.Info("built WASM", "elapsed", time.Since(start).Round(time.Millisecond))

	if s.buildCache != nil && key != "" {
		if data, err := os.ReadFile(wasmPath); err == nil {
			s.buildCache.Put(key, data, sources)
		}
	}
	return nil
}

func collectGoFiles(dirs ...string) []string {
	var files []string
	for _, dir := range dirs {
		filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if !info.IsDir() && strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go") {
				files = append(files, path)
			}
			return nil
		})
	}
	return files
}

func (s *serveServer) backendProxy() (*httputil.ReverseProxy, error) {
	target, err := url.Parse(s.cfg.Backend.URL)
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}
	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		s.logger.Warn("proxy error", "path", r.URL.Path, "error", err)
		http.Error(w, `{"detail": "backend unreachable"}`, http.StatusBadGateway)
	}
	return proxy, nil
}

func (s *serveServer) serveWASM(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/wasm")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, filepath.Join(s.cfg.Server.PublicDir, "app.wasm"))
}

// serveWasmExec serves the Go runtime shim, preferring a copy in the
// public dir and falling back to the local toolchain's copy.
func (s *serveServer) serveWasmExec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")

	local := filepath.Join(s.cfg.Server.PublicDir, "wasm_exec.js")
	if _, err := os.Stat(local); err == nil {
		http.ServeFile(w, r, local)
		return
	}

	goroot, err := exec.Command("go", "env", "GOROOT").Output()
	if err == nil {
		for _, rel := range []string{"lib/wasm/wasm_exec.js", "misc/wasm/wasm_exec.js"} {
			candidate := filepath.Join(strings.TrimSpace(string(goroot)), rel)
			if _, err := os.Stat(candidate); err == nil {
				http.ServeFile(w, r, candidate)
				return
			}
		}
	}
	http.Error(w, "wasm_exec.js not found", http.StatusNotFound)
}

func (s *serveServer) serveStyles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(styling.CSS()))
}

func (s *serveServer) serveRouteTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.router.ExportTable())
}
