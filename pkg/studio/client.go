// Package studio is the HTTP client for the noggin backend: collections
// of uploaded documents and the study artifacts derived from them. The
// backend owns generation and persistence; this client is a thin
// request/response layer with no retry policy.
package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/nogginhq/noggin/pkg/mindmap"
)

// ErrNotFound is returned for 404 responses. For GetMindMap it means
// "no map exists yet", which is not a failure.
var ErrNotFound = errors.New("studio: not found")

// Client talks to one backend instance.
type Client struct {
	base   string
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a client for the backend at baseURL, e.g.
// "http://localhost:8000" or "/api" when requests are proxied.
func NewClient(baseURL string) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		base:   baseURL,
		http:   &http.Client{},
		logger: slog.Default().With("component", "studio"),
	}
}

// SetHTTPClient replaces the underlying HTTP client, mainly for tests
// and for callers that need custom transports.
func (c *Client) SetHTTPClient(h *http.Client) {
	c.http = h
}

// GetMindMap fetches the collection's mind map, generating one on the
// backend if none exists. With regenerate the backend discards any
// stored map first. A 404 means the collection itself is unknown.
func (c *Client) GetMindMap(ctx context.Context, collectionID string, regenerate bool) (*mindmap.Snapshot, error) {
	q := ""
	if regenerate {
		q = "?regenerate=true"
	}
	var envelope struct {
		Data mindmap.Snapshot `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/collections/"+url.PathEscape(collectionID)+"/mindmap"+q, nil, &envelope)
	if err != nil {
		return nil, err
	}
	// Deep copy so callers never alias the decode buffer.
	return envelope.Data.Clone(), nil
}

// DeleteMindMap removes the stored mind map for a collection.
func (c *Client) DeleteMindMap(ctx context.Context, collectionID string) error {
	return c.do(ctx, http.MethodDelete, "/collections/"+url.PathEscape(collectionID)+"/mindmap", nil, nil)
}

// ListCollections returns all collections owned by the user.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var out []Collection
	if err := c.do(ctx, http.MethodGet, "/collections", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCollection creates an empty collection with the given name.
func (c *Client) CreateCollection(ctx context.Context, name string) (*Collection, error) {
	var out Collection
	path := "/collections?name=" + url.QueryEscape(name)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RenameCollection changes a collection's display name.
func (c *Client) RenameCollection(ctx context.Context, collectionID, newName string) (*Collection, error) {
	body, err := json.Marshal(map[string]string{"newName": newName})
	if err != nil {
		return nil, err
	}
	var out Collection
	if err := c.do(ctx, http.MethodPatch, "/collections/"+url.PathEscape(collectionID), bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCollection removes a collection and everything derived from it.
func (c *Client) DeleteCollection(ctx context.Context, collectionID string) error {
	return c.do(ctx, http.MethodDelete, "/collections/"+url.PathEscape(collectionID), nil, nil)
}

// ListReinforcements returns the study artifacts of a collection.
func (c *Client) ListReinforcements(ctx context.Context, collectionID string) ([]ReinforcementItem, error) {
	var out []ReinforcementItem
	if err := c.do(ctx, http.MethodGet, "/collections/"+url.PathEscape(collectionID)+"/reinforcements", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteReinforcement removes a single study artifact.
func (c *Client) DeleteReinforcement(ctx context.Context, collectionID, reinforcementID string) error {
	path := "/collections/" + url.PathEscape(collectionID) + "/reinforcements/" + url.PathEscape(reinforcementID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("studio: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("studio: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return c.apiError(method, path, resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("studio: decode %s %s: %w", method, path, err)
	}
	return nil
}

// apiError surfaces the backend's {"detail": "..."} message when present.
func (c *Client) apiError(method, path string, resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(raw, &payload) == nil && payload.Detail != "" {
		c.logger.Debug("backend error", "method", method, "path", path, "status", resp.StatusCode, "detail", payload.Detail)
		return fmt.Errorf("studio: %s %s: %s (status %d)", method, path, payload.Detail, resp.StatusCode)
	}
	return fmt.Errorf("studio: %s %s: status %d", method, path, resp.StatusCode)
}
