package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, zap.NewNop()), srv
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func TestListUsers_CachesSecondRead(t *testing.T) {
	var hits atomic.Int64
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeSuccess(w, http.StatusOK, map[string]any{
			"items":      []map[string]any{{"full_name": "Ravi", "phone": "+911234567890"}},
			"pagination": map[string]any{"page": 1, "limit": 20, "total": 1, "pages": 1, "hasMore": false},
		})
	})

	ctx := context.Background()
	page, err := c.ListUsers(ctx, ListParams{})
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].FullName != "Ravi" {
		t.Fatalf("unexpected page: %+v", page)
	}

	if _, err := c.ListUsers(ctx, ListParams{}); err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("server hits: got %d, want 1 (second read from cache)", hits.Load())
	}

	// A different page is a different key.
	if _, err := c.ListUsers(ctx, ListParams{Page: 2}); err != nil {
		t.Fatalf("page 2 read failed: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("server hits: got %d, want 2", hits.Load())
	}
}

func TestMutationInvalidatesList(t *testing.T) {
	var listHits atomic.Int64
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			listHits.Add(1)
			writeSuccess(w, http.StatusOK, map[string]any{
				"items":      []map[string]any{},
				"pagination": map[string]any{"page": 1, "limit": 20, "total": 0, "pages": 0, "hasMore": false},
			})
		case r.Method == http.MethodPost:
			writeSuccess(w, http.StatusCreated, map[string]any{"full_name": "New User"})
		}
	})

	ctx := context.Background()
	if _, err := c.ListUsers(ctx, ListParams{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if _, err := c.CreateUser(ctx, map[string]string{"full_name": "New User", "phone": "+911234567890"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := c.ListUsers(ctx, ListParams{}); err != nil {
		t.Fatalf("relist failed: %v", err)
	}
	if listHits.Load() != 2 {
		t.Errorf("list hits: got %d, want 2 (cache invalidated by create)", listHits.Load())
	}
}

func TestErrorEnvelopeBecomesDomainError(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]string{"message": "user not found", "code": "not_found"},
		})
	})

	_, err := c.GetUser(context.Background(), "64b000000000000000000000")
	if err == nil {
		t.Fatal("expected an error")
	}
	if apierr.KindOf(err) != apierr.KindNotFound {
		t.Errorf("kind: got %q, want %q", apierr.KindOf(err), apierr.KindNotFound)
	}
	if apierr.MessageOf(err) != "user not found" {
		t.Errorf("message: got %q", apierr.MessageOf(err))
	}
}

func TestFailedMutationLeavesCacheIntact(t *testing.T) {
	var listHits atomic.Int64
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listHits.Add(1)
			writeSuccess(w, http.StatusOK, map[string]any{
				"items":      []map[string]any{},
				"pagination": map[string]any{"page": 1, "limit": 20, "total": 0, "pages": 0, "hasMore": false},
			})
		case http.MethodPost:
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   map[string]string{"message": "duplicate phone", "code": "conflict"},
			})
		}
	})

	ctx := context.Background()
	if _, err := c.ListUsers(ctx, ListParams{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if _, err := c.CreateUser(ctx, map[string]string{"phone": "+911234567890"}); err == nil {
		t.Fatal("create should have failed")
	}
	if _, err := c.ListUsers(ctx, ListParams{}); err != nil {
		t.Fatalf("relist failed: %v", err)
	}
	if listHits.Load() != 1 {
		t.Errorf("list hits: got %d, want 1 (failed mutation must not invalidate)", listHits.Load())
	}
}

func TestDeleteHandles204(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteUser(context.Background(), "64b000000000000000000000"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}
