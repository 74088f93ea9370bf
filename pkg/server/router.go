package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/nogginhq/noggin/pkg/renderer/html"
	"github.com/nogginhq/noggin/pkg/vdom"
)

// HandlerFunc is the signature for page handlers. A nil VNode with a
// nil error means the handler (or middleware) wrote the response
// itself.
type HandlerFunc func(ctx Ctx) (*vdom.VNode, error)

// APIHandlerFunc is the signature for API route handlers
type APIHandlerFunc func(ctx Ctx) (any, error)

// Middleware interface for before/after hooks
type Middleware interface {
	Before(ctx Ctx) error // return Stop() to abort chain
	After(ctx Ctx) error  // always called if Before succeeded
}

// RouteNode represents a node in the route tree
type RouteNode struct {
	segment    string
	param      bool
	catchAll   bool
	paramName  string
	paramType  string // "string", "int", "uuid"
	handler    HandlerFunc
	apiHandler APIHandlerFunc
	children   []*RouteNode
	middleware []Middleware
}

// Router manages all routes and middleware
type Router struct {
	root       *RouteNode
	notFound   HandlerFunc
	errorPage  HandlerFunc
	middleware []Middleware
	mu         sync.RWMutex
}

// NewRouter creates a new router instance
func NewRouter() *Router {
	return &Router{
		root:       &RouteNode{children: make([]*RouteNode, 0)},
		middleware: make([]Middleware, 0),
	}
}

// AddRoute registers a page handler for a path. Dynamic segments use
// the [name] form, typed params [name:int], catch-alls [...name].
func (r *Router) AddRoute(path string, handler HandlerFunc, middleware ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.root
	for _, segment := range splitPath(path) {
		node = r.findOrCreateChild(node, segment)
	}

	node.handler = handler
	node.middleware = middleware
}

// AddAPIRoute registers an API handler for a path
func (r *Router) AddAPIRoute(path string, handler APIHandlerFunc, middleware ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.root
	for _, segment := range splitPath(path) {
		node = r.findOrCreateChild(node, segment)
	}

	node.apiHandler = handler
	node.middleware = middleware
}

// Use adds global middleware
func (r *Router) Use(middleware ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, middleware...)
}

// SetNotFound sets the 404 handler
func (r *Router) SetNotFound(handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound = handler
}

// SetErrorPage sets the 500 error handler
func (r *Router) SetErrorPage(handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorPage = handler
}

// Match finds a handler for the given path
func (r *Router) Match(path string) (HandlerFunc, map[string]string, []Middleware) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	segments := splitPath(path)
	params := make(map[string]string)

	node, matched := r.matchNode(r.root, segments, params)
	if !matched || node == nil || (node.handler == nil && node.apiHandler == nil) {
		return r.notFound, params, r.middleware
	}

	allMiddleware := append([]Middleware{}, r.middleware...)
	allMiddleware = append(allMiddleware, node.middleware...)

	if node.apiHandler != nil {
		return wrapAPIHandler(node.apiHandler), params, allMiddleware
	}

	return node.handler, params, allMiddleware
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := NewContext(w, req)

	handler, params, middleware := r.Match(req.URL.Path)
	if handler == nil {
		ctx.Status(http.StatusNotFound)
		ctx.Text(404, "Not Found")
		return
	}

	ctx = WithParams(ctx, params)

	defer func() {
		if err := recover(); err != nil {
			ctx.Logger().Error("panic in handler", "error", err)
			r.handleError(ctx, fmt.Errorf("internal server error: %v", err))
		}
	}()

	finalHandler := handler
	for i := len(middleware) - 1; i >= 0; i-- {
		mw := middleware[i]
		next := finalHandler
		finalHandler = func(c Ctx) (*vdom.VNode, error) {
			if err := mw.Before(c); err != nil {
				if err == ErrStop {
					return nil, nil // middleware handled the response
				}
				return nil, err
			}

			result, err := next(c)

			if afterErr := mw.After(c); afterErr != nil {
				c.Logger().Error("error in After middleware", "error", afterErr)
			}

			return result, err
		}
	}

	vnode, err := finalHandler(ctx)
	if err != nil {
		r.handleError(ctx, err)
		return
	}
	if vnode == nil {
		return
	}

	htmlContent, err := html.RenderToString(vnode)
	if err != nil {
		r.handleError(ctx, fmt.Errorf("render page: %w", err))
		return
	}

	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	ctx.(*ctxImpl).w.WriteHeader(ctx.StatusCode())
	ctx.(*ctxImpl).w.Write([]byte(htmlContent))
}

func (r *Router) findOrCreateChild(parent *RouteNode, segment string) *RouteNode {
	if strings.HasPrefix(segment, "[") && strings.HasSuffix(segment, "]") {
		paramDef := segment[1 : len(segment)-1]

		if strings.HasPrefix(paramDef, "...") {
			paramName := paramDef[3:]
			for _, child := range parent.children {
				if child.catchAll && child.paramName == paramName {
					return child
				}
			}
			node := &RouteNode{
				segment:   segment,
				catchAll:  true,
				paramName: paramName,
				paramType: "string",
				children:  make([]*RouteNode, 0),
			}
			parent.children = append(parent.children, node)
			return node
		}

		paramName, paramType := parseParamDef(paramDef)

		for _, child := range parent.children {
			if child.param && child.paramName == paramName {
				return child
			}
		}

		node := &RouteNode{
			segment:   segment,
			param:     true,
			paramName: paramName,
			paramType: paramType,
			children:  make([]*RouteNode, 0),
		}
		parent.children = append(parent.children, node)
		return node
	}

	for _, child := range parent.children {
		if !child.param && !child.catchAll && child.segment == segment {
			return child
		}
	}

	node := &RouteNode{
		segment:  segment,
		children: make([]*RouteNode, 0),
	}
	parent.children = append(parent.children, node)
	return node
}

// matchNode tries static children first, then typed params, then
// catch-alls.
func (r *Router) matchNode(node *RouteNode, segments []string, params map[string]string) (*RouteNode, bool) {
	if len(segments) == 0 {
		return node, true
	}

	segment := segments[0]
	remaining := segments[1:]

	for _, child := range node.children {
		if !child.param && !child.catchAll && child.segment == segment {
			return r.matchNode(child, remaining, params)
		}
	}

	for _, child := range node.children {
		if child.param && validateParam(segment, child.paramType) {
			params[child.paramName] = segment
			if result, ok := r.matchNode(child, remaining, params); ok {
				return result, true
			}
			delete(params, child.paramName)
		}
	}

	for _, child := range node.children {
		if child.catchAll {
			params[child.paramName] = strings.Join(segments, "/")
			return child, true
		}
	}

	return nil, false
}

func (r *Router) handleError(ctx Ctx, err error) {
	ctx.Logger().Error("handler error", "error", err)
	ctx.Status(http.StatusInternalServerError)

	if r.errorPage != nil {
		if vnode, pageErr := r.errorPage(ctx); pageErr == nil && vnode != nil {
			if htmlContent, renderErr := html.RenderToString(vnode); renderErr == nil {
				ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
				ctx.(*ctxImpl).w.WriteHeader(http.StatusInternalServerError)
				ctx.(*ctxImpl).w.Write([]byte(htmlContent))
				return
			}
		}
	}

	ctx.Text(500, "Internal Server Error")
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return []string{}
	}
	return strings.Split(path, "/")
}

func parseParamDef(def string) (name, paramType string) {
	parts := strings.Split(def, ":")
	name = parts[0]
	paramType = "string"

	if len(parts) > 1 {
		paramType = parts[1]
	}

	return name, paramType
}

func validateParam(value, paramType string) bool {
	switch paramType {
	case "int":
		for _, r := range value {
			if r < '0' || r > '9' {
				return false
			}
		}
		return len(value) > 0
	case "uuid":
		if len(value) != 36 {
			return false
		}
		return value[8] == '-' && value[13] == '-' && value[18] == '-' && value[23] == '-'
	default:
		return len(value) > 0
	}
}

func wrapAPIHandler(handler APIHandlerFunc) HandlerFunc {
	return func(ctx Ctx) (*vdom.VNode, error) {
		result, err := handler(ctx)
		if err != nil {
			return nil, err
		}

		if err := ctx.JSON(http.StatusOK, result); err != nil {
			return nil, err
		}

		return nil, nil
	}
}

// RouteTable is the serialized routing table, exposed by the dev
// server for inspection.
type RouteTable struct {
	Routes []RouteEntry `json:"routes"`
}

// RouteEntry represents a single route in the table
type RouteEntry struct {
	Path   string     `json:"path"`
	Params []ParamDef `json:"params,omitempty"`
}

// ParamDef represents a route parameter definition
type ParamDef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ExportTable exports the routing table
func (r *Router) ExportTable() *RouteTable {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table := &RouteTable{Routes: make([]RouteEntry, 0)}
	r.collectRoutes(r.root, "", table)
	return table
}

func (r *Router) collectRoutes(node *RouteNode, path string, table *RouteTable) {
	currentPath := path
	if node.segment != "" {
		if path == "" {
			currentPath = node.segment
		} else {
			currentPath = path + "/" + node.segment
		}
	}

	if node.handler != nil || node.apiHandler != nil {
		entry := RouteEntry{
			Path:   "/" + currentPath,
			Params: make([]ParamDef, 0),
		}

		for _, seg := range splitPath(currentPath) {
			if strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]") {
				paramDef := seg[1 : len(seg)-1]
				if !strings.HasPrefix(paramDef, "...") {
					name, paramType := parseParamDef(paramDef)
					entry.Params = append(entry.Params, ParamDef{Name: name, Type: paramType})
				}
			}
		}

		table.Routes = append(table.Routes, entry)
	}

	for _, child := range node.children {
		r.collectRoutes(child, currentPath, table)
	}
}
