package studio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nogginhq/noggin/pkg/mindmap"
)

func mapServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status == http.StatusNoContent {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMapStore_FetchAdoptsSnapshot(t *testing.T) {
	srv := mapServer(t, http.StatusOK, mindMapBody)
	store := NewMapStore(NewClient(srv.URL), "col1")

	var changes atomic.Int32
	store.SetOnChange(func() { changes.Add(1) })

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !store.HasMap() {
		t.Fatal("store should hold a snapshot")
	}
	root := store.Root()
	if root == nil || root.Topic != "Cells" || root.ID != mindmap.RootID {
		t.Fatalf("unexpected root: %+v", root)
	}
	if store.Error() != "" {
		t.Errorf("unexpected error: %q", store.Error())
	}
	// New snapshot collapses everything back to the root.
	if store.Expansion().Len() != 1 || !store.Expansion().Expanded(mindmap.RootID) {
		t.Error("expansion should reset to {root}")
	}
	if changes.Load() == 0 {
		t.Error("OnChange never fired")
	}
}

func TestMapStore_FetchNotFoundIsAbsentNotError(t *testing.T) {
	srv := mapServer(t, http.StatusNotFound, `{"detail": "Collection not found."}`)
	store := NewMapStore(NewClient(srv.URL), "col1")

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("404 fetch should not error, got %v", err)
	}
	if store.HasMap() {
		t.Error("store should be in the absent-data state")
	}
	if store.Error() != "" {
		t.Errorf("absent data must not set the error message, got %q", store.Error())
	}
}

func TestMapStore_ErrorKeepsExistingMap(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"detail": "boom"}`))
			return
		}
		w.Write([]byte(mindMapBody))
	}))
	defer srv.Close()

	store := NewMapStore(NewClient(srv.URL), "col1")
	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	store.Toggle("root-Nucleus-0")

	status = http.StatusInternalServerError
	if err := store.Regenerate(context.Background()); err == nil {
		t.Fatal("expected regenerate error")
	}
	if store.Error() == "" {
		t.Error("error message should be set")
	}
	if !store.HasMap() || store.Root() == nil {
		t.Error("failure must leave the loaded map untouched")
	}
	if !store.Expansion().Expanded("root-Nucleus-0") {
		t.Error("failure must leave the expansion set untouched")
	}

	store.DismissError()
	if store.Error() != "" {
		t.Error("DismissError should clear the message")
	}
}

func TestMapStore_DeleteClearsSnapshot(t *testing.T) {
	deleted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = true
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mindMapBody))
	}))
	defer srv.Close()

	store := NewMapStore(NewClient(srv.URL), "col1")
	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if err := store.Delete(context.Background()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Error("DELETE never reached the backend")
	}
	if store.HasMap() || store.Root() != nil {
		t.Error("delete should clear the snapshot")
	}
	if store.Expansion().Len() != 1 {
		t.Error("delete should reset expansion")
	}
}

func TestMapStore_SingleInFlight(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mindMapBody))
	}))
	defer srv.Close()

	store := NewMapStore(NewClient(srv.URL), "col1")

	done := make(chan error, 1)
	go func() { done <- store.Fetch(context.Background()) }()

	// Wait until the first request is actually in flight.
	deadline := time.Now().Add(2 * time.Second)
	for store.Busy() != ActionFetch {
		if time.Now().After(deadline) {
			t.Fatal("first fetch never became busy")
		}
		time.Sleep(time.Millisecond)
	}

	if err := store.Regenerate(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent action = %v, want ErrBusy", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if store.Busy() != ActionNone {
		t.Error("busy flag should clear after completion")
	}
}

func TestMapStore_ToggleNotifies(t *testing.T) {
	store := NewMapStore(NewClient("http://unused"), "col1")
	var changes atomic.Int32
	store.SetOnChange(func() { changes.Add(1) })

	store.Toggle("some-node")
	if !store.Expansion().Expanded("some-node") {
		t.Error("toggle should expand")
	}
	store.Toggle("some-node")
	if store.Expansion().Expanded("some-node") {
		t.Error("second toggle should collapse")
	}
	if changes.Load() != 2 {
		t.Errorf("changes = %d, want 2", changes.Load())
	}
}
