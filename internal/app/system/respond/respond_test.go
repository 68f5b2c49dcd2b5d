package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"go.uber.org/zap"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	OK(w, map[string]string{"name": "Acme"})

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("success: got %v", body["success"])
	}
	data := body["data"].(map[string]any)
	if data["name"] != "Acme" {
		t.Errorf("data: got %v", data)
	}
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()
	Created(w, map[string]string{"id": "abc"})
	if w.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", w.Code)
	}
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	NoContent(w)
	if w.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body should be empty, got %q", w.Body.String())
	}
}

func TestList(t *testing.T) {
	w := httptest.NewRecorder()
	p, _ := paging.Build(1, 20, 2)
	List(w, []string{"a", "b"}, p)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	items := data["items"].([]any)
	if len(items) != 2 {
		t.Errorf("items: got %v", items)
	}
	pg := data["pagination"].(map[string]any)
	if pg["total"].(float64) != 2 {
		t.Errorf("pagination total: got %v", pg["total"])
	}
	if pg["hasMore"] != false {
		t.Errorf("hasMore: got %v", pg["hasMore"])
	}
}

func TestList_EmptySliceIsArray(t *testing.T) {
	w := httptest.NewRecorder()
	p, _ := paging.Build(1, 20, 0)
	List(w, []string{}, p)

	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Errorf("empty items should serialize as [], got %s", w.Body.String())
	}
}

func TestErr(t *testing.T) {
	w := httptest.NewRecorder()
	Err(w, apierr.NotFound("project"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false {
		t.Errorf("success: got %v", body["success"])
	}
	e := body["error"].(map[string]any)
	if e["message"] != "project not found" || e["code"] != "not_found" {
		t.Errorf("error body: got %v", e)
	}
}

func TestWrap_PassesThroughSuccess(t *testing.T) {
	h := Wrap(zap.NewNop(), "get", "user", func(w http.ResponseWriter, r *http.Request) error {
		OK(w, "fine")
		return nil
	})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("GET", "/users/1", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
}

func TestWrap_WritesErrorEnvelope(t *testing.T) {
	h := Wrap(zap.NewNop(), "update", "task", func(w http.ResponseWriter, r *http.Request) error {
		return apierr.Invalid("title is required")
	})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("PUT", "/tasks/1", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	e := body["error"].(map[string]any)
	if e["code"] != "invalid" {
		t.Errorf("code: got %v", e["code"])
	}
}

func TestDecodeJSON(t *testing.T) {
	type req struct {
		Name string `json:"name"`
	}

	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x"}`))
		var dst req
		if err := DecodeJSON(r, &dst); err != nil {
			t.Fatalf("DecodeJSON failed: %v", err)
		}
		if dst.Name != "x" {
			t.Errorf("name: got %q", dst.Name)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(""))
		var dst req
		err := DecodeJSON(r, &dst)
		if err == nil || apierr.KindOf(err) != apierr.KindInvalid {
			t.Fatalf("expected invalid error, got %v", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","bogus":1}`))
		var dst req
		if err := DecodeJSON(r, &dst); err == nil {
			t.Fatal("unknown fields should be rejected")
		}
	})

	t.Run("trailing garbage", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x"}{"name":"y"}`))
		var dst req
		if err := DecodeJSON(r, &dst); err == nil {
			t.Fatal("trailing objects should be rejected")
		}
	})
}
