package studio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const mindMapBody = `{
	"_id": "abc123",
	"type": "mindMap",
	"data": {
		"roots": [
			{"topic": "Cells", "children": [
				{"topic": "Nucleus", "children": []},
				{"topic": "Mitochondria", "children": []}
			]}
		]
	}
}`

func TestClient_GetMindMap(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mindMapBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	snap, err := c.GetMindMap(context.Background(), "col1", false)
	if err != nil {
		t.Fatalf("GetMindMap: %v", err)
	}
	if gotPath != "/collections/col1/mindmap" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want empty", gotQuery)
	}
	if len(snap.Roots) != 1 || snap.Roots[0].Topic != "Cells" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if len(snap.Roots[0].Children) != 2 {
		t.Errorf("children = %d, want 2", len(snap.Roots[0].Children))
	}

	if _, err := c.GetMindMap(context.Background(), "col1", true); err != nil {
		t.Fatalf("GetMindMap regenerate: %v", err)
	}
	if gotQuery != "regenerate=true" {
		t.Errorf("regenerate query = %q", gotQuery)
	}
}

func TestClient_GetMindMap_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "Collection not found."}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetMindMap(context.Background(), "missing", false)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestClient_BackendErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "Failed to generate mind map from LLM"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetMindMap(context.Background(), "col1", false)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("500 must not map to ErrNotFound")
	}
	if want := "Failed to generate mind map from LLM"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q missing backend detail", err)
	}
}

func TestClient_DeleteMindMap(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).DeleteMindMap(context.Background(), "col1"); err != nil {
		t.Fatalf("DeleteMindMap: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q", gotMethod)
	}
}

func TestClient_ListCollections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"_id": "c1", "name": "Biology", "totalChars": 4200},
			{"_id": "c2", "name": "History", "totalChars": 910}
		]`))
	}))
	defer srv.Close()

	cols, err := NewClient(srv.URL).ListCollections(context.Background())
	if err != nil {
		t.Fatalf("ListCollections: %v", err)
	}
	if len(cols) != 2 || cols[0].Name != "Biology" || cols[1].ID != "c2" {
		t.Fatalf("unexpected collections: %+v", cols)
	}
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	if _, err := c.ListCollections(context.Background()); err != nil {
		t.Fatalf("ListCollections: %v", err)
	}
	if gotPath != "/collections" {
		t.Errorf("path = %q", gotPath)
	}
}
