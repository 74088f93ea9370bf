package studio

import (
	"context"
	"errors"
	"sync"

	"github.com/nogginhq/noggin/pkg/mindmap"
)

// Action identifies the user gesture behind a backend call.
type Action int

const (
	ActionNone Action = iota
	ActionFetch
	ActionRegenerate
	ActionDelete
)

// ErrBusy is returned when a map action starts while another is still
// in flight. Requests are never cancelled, only refused.
var ErrBusy = errors.New("studio: request already in flight")

// MapStore holds the client-side state of one collection's mind map:
// the latest snapshot, the identified tree derived from it, the
// expansion set, and the current busy/error status. Methods block for
// the duration of the backend call; the hosting page runs them in a
// goroutine and re-renders from the OnChange callback.
type MapStore struct {
	client       *Client
	collectionID string

	mu        sync.Mutex
	busy      Action
	seq       uint64
	snapshot  *mindmap.Snapshot
	root      *mindmap.IdentifiedNode
	expansion *mindmap.ExpansionSet
	errMsg    string
	onChange  func()
}

// NewMapStore creates a store for one collection.
func NewMapStore(client *Client, collectionID string) *MapStore {
	return &MapStore{
		client:       client,
		collectionID: collectionID,
		expansion:    mindmap.NewExpansionSet(mindmap.RootID),
	}
}

// SetOnChange registers the callback fired after every state change.
func (s *MapStore) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Fetch loads the collection's map. A backend 404 leaves the store in
// the absent-data state rather than the error state.
func (s *MapStore) Fetch(ctx context.Context) error {
	return s.run(ctx, ActionFetch, false)
}

// Regenerate asks the backend to discard the stored map and build a
// fresh one.
func (s *MapStore) Regenerate(ctx context.Context) error {
	return s.run(ctx, ActionRegenerate, true)
}

// Delete removes the stored map and clears the local snapshot.
func (s *MapStore) Delete(ctx context.Context) error {
	seq, err := s.begin(ActionDelete)
	if err != nil {
		return err
	}
	s.notify()
	err = s.client.DeleteMindMap(ctx, s.collectionID)
	if errors.Is(err, ErrNotFound) {
		err = nil // already gone
	}

	s.mu.Lock()
	s.busy = ActionNone
	if seq == s.seq {
		if err != nil {
			s.errMsg = err.Error()
		} else {
			s.snapshot = nil
			s.root = nil
			s.expansion.Reset(mindmap.RootID)
		}
	}
	s.mu.Unlock()
	s.notify()
	return err
}

func (s *MapStore) run(ctx context.Context, action Action, regenerate bool) error {
	seq, err := s.begin(action)
	if err != nil {
		return err
	}
	s.notify()
	snap, err := s.client.GetMindMap(ctx, s.collectionID, regenerate)
	absent := errors.Is(err, ErrNotFound)

	s.mu.Lock()
	s.busy = ActionNone
	if seq == s.seq { // last write wins
		switch {
		case absent:
			s.snapshot = nil
			s.root = nil
			s.expansion.Reset(mindmap.RootID)
		case err != nil:
			// Failure keeps whatever map was already on screen.
			s.errMsg = err.Error()
		default:
			s.adopt(snap)
		}
	}
	s.mu.Unlock()
	s.notify()
	if absent {
		return nil
	}
	return err
}

func (s *MapStore) begin(action Action) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy != ActionNone {
		return 0, ErrBusy
	}
	s.busy = action
	s.seq++
	s.errMsg = ""
	return s.seq, nil
}

// adopt installs a new snapshot: the identified tree is rederived and
// the expansion set collapses back to just the root. Caller holds mu.
func (s *MapStore) adopt(snap *mindmap.Snapshot) {
	s.snapshot = snap
	s.root = nil
	if snap != nil && len(snap.Roots) > 0 {
		s.root = mindmap.Identify(snap.Roots[0])
	}
	s.expansion.Reset(mindmap.RootID)
}

// Toggle flips a node's expansion state.
func (s *MapStore) Toggle(id string) {
	s.mu.Lock()
	s.expansion.Toggle(id)
	s.mu.Unlock()
	s.notify()
}

// Busy reports the in-flight action, or ActionNone.
func (s *MapStore) Busy() Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Root returns the identified tree of the current snapshot, or nil when
// no map is loaded.
func (s *MapStore) Root() *mindmap.IdentifiedNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// Expansion returns the live expansion set shared with the viewer.
func (s *MapStore) Expansion() *mindmap.ExpansionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expansion
}

// HasMap reports whether a snapshot is loaded. False with an empty
// Error means the backend has no map for this collection yet.
func (s *MapStore) HasMap() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot != nil
}

// Error returns the dismissible error message, empty when none.
func (s *MapStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// DismissError clears the inline error message.
func (s *MapStore) DismissError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

func (s *MapStore) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
