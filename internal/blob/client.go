// Package blob is a typed client for the remote JSON document store.
// The store is a bare key-value blob API: whole-document GET and PUT,
// no schema validation, no version tokens. Concurrent writers to the
// same document race last-writer-wins; callers keep their writes
// narrowly scoped to shrink the collision surface.
package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound is returned by Get when the document does not exist.
var ErrNotFound = errors.New("blob: document not found")

// Store is the document store contract. It is implemented by Client
// and can be faked for testing.
type Store interface {
	Get(ctx context.Context, id string, v any) error
	Put(ctx context.Context, id string, v any) error
	Create(ctx context.Context, v any) (string, error)
}

// Client talks to a JSONBlob-style document API.
type Client struct {
	baseURL string
	http    *http.Client
}

// DefaultBaseURL is the public JSONBlob API.
const DefaultBaseURL = "https://jsonblob.com/api/jsonBlob"

// NewClient creates a client for the given API base URL. An empty URL
// selects the public JSONBlob API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Get fetches a document and decodes it into v.
func (c *Client) Get(ctx context.Context, id string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+id, nil)
	if err != nil {
		return fmt.Errorf("blob get %s: %w", id, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("blob get %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("blob get %s: unexpected status %d", id, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("blob get %s: decode: %w", id, err)
	}
	return nil
}

// Put replaces a document. The write is whole-document and
// last-writer-wins.
func (c *Client) Put(ctx context.Context, id string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("blob put %s: marshal: %w", id, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/"+id, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("blob put %s: %w", id, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("blob put %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("blob put %s: unexpected status %d", id, resp.StatusCode)
	}
	return nil
}

// Create stores v as a new document and returns its location.
func (c *Client) Create(ctx context.Context, v any) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("blob create: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("blob create: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("blob create: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("blob create: unexpected status %d", resp.StatusCode)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("blob create: no location header in response")
	}
	return location, nil
}
