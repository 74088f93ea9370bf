// Package scheduler runs component fibers. A fiber owns a render
// function and the last tree it produced; when a signal write marks it
// dirty the scheduler re-renders it, diffs against the previous tree,
// and hands the patches to the registered applier.
package scheduler

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/nogginhq/noggin/pkg/vdom"
)

// RenderFunc is the function type for component render functions
type RenderFunc func() *vdom.VNode

// ErrorHandler handles panics during rendering.
// Returns true to continue scheduling, false to unmount the fiber.
type ErrorHandler func(fiber *Fiber, err interface{}) bool

// Fiber represents a lightweight component execution context
type Fiber struct {
	id     uint32
	parent *Fiber
	vnode  *vdom.VNode // last rendered tree

	render RenderFunc
	dirty  atomic.Bool

	onError ErrorHandler

	userData interface{}
}

// Scheduler manages fiber execution
type Scheduler struct {
	mu         sync.Mutex
	fibers     map[uint32]*Fiber
	nextID     uint32
	globalWake chan *Fiber
	running    atomic.Bool

	applyPatches func(patches []vdom.Patch)
	defaultError ErrorHandler
}

// NewScheduler creates a new scheduler instance
func NewScheduler() *Scheduler {
	return &Scheduler{
		fibers:     make(map[uint32]*Fiber),
		nextID:     1,
		globalWake: make(chan *Fiber, 1024),
	}
}

// SetPatchApplier sets the function that applies patches to the DOM
func (s *Scheduler) SetPatchApplier(applier func(patches []vdom.Patch)) {
	s.applyPatches = applier
}

// SetDefaultErrorHandler sets the default error handler for fibers
func (s *Scheduler) SetDefaultErrorHandler(handler ErrorHandler) {
	s.defaultError = handler
}

// CreateFiber creates a new fiber for a component
func (s *Scheduler) CreateFiber(render RenderFunc, parent *Fiber) *Fiber {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	fiber := &Fiber{
		id:     id,
		parent: parent,
		render: render,
	}
	if s.defaultError != nil {
		fiber.onError = s.defaultError
	}

	s.fibers[id] = fiber
	return fiber
}

// RemoveFiber removes a fiber from the scheduler
func (s *Scheduler) RemoveFiber(fiber *Fiber) {
	if fiber == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.fibers, fiber.id)
}

// MarkDirty marks a fiber as needing re-render. Safe to call from any
// goroutine; a fiber already queued is not queued twice.
func (s *Scheduler) MarkDirty(fiber *Fiber) {
	if fiber == nil {
		return
	}

	if !fiber.dirty.CompareAndSwap(false, true) {
		return
	}
	if !s.running.Load() {
		return
	}
	select {
	case s.globalWake <- fiber:
	default:
		// Channel full; the fiber stays dirty and is picked up with
		// the next batch.
	}
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		go s.loop()
	}
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.running.Store(false)
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

func (s *Scheduler) loop() {
	for s.running.Load() {
		fiber := <-s.globalWake
		if fiber == nil {
			continue
		}

		// Drain the wake channel so a burst of writes renders as one
		// batch.
		batch := []*Fiber{fiber}
	drainLoop:
		for {
			select {
			case f := <-s.globalWake:
				if f != nil {
					batch = append(batch, f)
				}
			default:
				break drainLoop
			}
		}

		for _, f := range batch {
			s.processFiber(f)
		}
	}
}

// processFiber renders a single fiber and applies patches
func (s *Scheduler) processFiber(fiber *Fiber) {
	if !fiber.dirty.CompareAndSwap(true, false) {
		return
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				s.handleFiberError(fiber, r)
			}
		}()

		next := fiber.render()
		patches := vdom.Diff(fiber.vnode, next)

		if s.applyPatches != nil && len(patches) > 0 {
			s.applyPatches(patches)
		}

		fiber.vnode = next
	}()
}

func (s *Scheduler) handleFiberError(fiber *Fiber, err interface{}) {
	errorMsg := fmt.Sprintf("fiber %d panic: %v\n%s", fiber.id, err, debug.Stack())

	shouldContinue := false
	if fiber.onError != nil {
		shouldContinue = fiber.onError(fiber, errorMsg)
	}
	if !shouldContinue {
		s.RemoveFiber(fiber)
	}
}

// GetFiber returns a fiber by ID
func (s *Scheduler) GetFiber(id uint32) *Fiber {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fibers[id]
}

// FiberCount returns the number of active fibers
func (s *Scheduler) FiberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fibers)
}

// SetUserData sets custom data on a fiber
func (f *Fiber) SetUserData(data interface{}) {
	f.userData = data
}

// GetUserData gets custom data from a fiber
func (f *Fiber) GetUserData() interface{} {
	return f.userData
}

// ID returns the fiber's unique ID
func (f *Fiber) ID() uint32 {
	return f.id
}

// Parent returns the fiber's parent
func (f *Fiber) Parent() *Fiber {
	return f.parent
}

// VNode returns the fiber's last rendered VNode
func (f *Fiber) VNode() *vdom.VNode {
	return f.vnode
}

// SetVNode sets the current VNode for the fiber (used during hydration)
func (f *Fiber) SetVNode(vnode *vdom.VNode) {
	f.vnode = vnode
}

// SetErrorHandler sets a custom error handler for this fiber
func (f *Fiber) SetErrorHandler(handler ErrorHandler) {
	f.onError = handler
}
