// internal/client/client.go

// Package client is a typed Go client for the SiteDesk REST API. Reads
// are cached under a structured key (entity, operation, serialized
// parameters); mutations invalidate the cache regions listed in the
// declarative invalidation table.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"go.uber.org/zap"
)

// Client talks to a SiteDesk server.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
	log     *zap.Logger
}

// New returns a Client for the server at baseURL.
func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   NewCache(),
		log:     logger,
	}
}

// Cache exposes the read cache, mainly for tests and diagnostics.
func (c *Client) Cache() *Cache { return c.cache }

// Page is the decoded list payload.
type Page[T any] struct {
	Items      []T               `json:"items"`
	Pagination paging.Pagination `json:"pagination"`
}

// ListParams are the common list-read parameters plus entity-specific
// filters (org, status, tab, ...).
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Filter url.Values
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	for k, vals := range p.Filter {
		v[k] = vals
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	return v
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

// do performs one HTTP round trip and unwraps the response envelope.
// Error envelopes come back as *apierr.Error with the server's kind, so
// callers can branch on the same taxonomy the server uses.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &apierr.Error{Kind: apierr.KindUnavailable, Message: "sitedesk server unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}
	if !env.Success {
		if env.Error == nil {
			return nil, apierr.New(apierr.KindInternal, "server returned failure without error detail")
		}
		return nil, apierr.New(apierr.Kind(env.Error.Code), env.Error.Message)
	}
	return env.Data, nil
}

// getCached serves the read from cache when present, otherwise performs
// the request and stores the raw payload under key.
func getCached[T any](ctx context.Context, c *Client, key Key, path string, q url.Values) (T, error) {
	var out T
	if data, ok := c.cache.Get(key); ok {
		if err := json.Unmarshal(data, &out); err != nil {
			return out, fmt.Errorf("decode cached payload: %w", err)
		}
		return out, nil
	}
	raw, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode response payload: %w", err)
	}
	c.cache.Set(key, raw)
	return out, nil
}

// mutate performs a write and, on success, applies the invalidation table
// entry for mutation. The mutation's result is returned regardless of how
// much of the cache the invalidation touched.
func mutate[T any](ctx context.Context, c *Client, method, path string, body any, mutation string, scope Scope) (T, error) {
	var out T
	raw, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return out, err
	}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &out); err != nil {
			return out, fmt.Errorf("decode response payload: %w", err)
		}
	}
	entity, _, _ := strings.Cut(mutation, ".")
	c.invalidate(mutation, entity, scope)
	return out, nil
}

// del performs a delete and applies the invalidation table entry.
func (c *Client) del(ctx context.Context, path, mutation string, scope Scope) error {
	if _, err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	entity, _, _ := strings.Cut(mutation, ".")
	c.invalidate(mutation, entity, scope)
	return nil
}
