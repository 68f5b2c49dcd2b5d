package paging

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		total       int64
		wantPages   int64
		wantHasMore bool
	}{
		{"empty", 1, 20, 0, 0, false},
		{"single page exact", 1, 20, 20, 1, false},
		{"single page partial", 1, 20, 5, 1, false},
		{"rounds up", 1, 20, 21, 2, true},
		{"middle page", 2, 10, 35, 4, true},
		{"last page", 4, 10, 35, 4, false},
		{"past the end", 9, 10, 35, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build(tt.page, tt.limit, tt.total)
			if err != nil {
				t.Fatalf("Build(%d, %d, %d) failed: %v", tt.page, tt.limit, tt.total, err)
			}
			if p.Pages != tt.wantPages {
				t.Errorf("pages: got %d, want %d", p.Pages, tt.wantPages)
			}
			if p.HasMore != tt.wantHasMore {
				t.Errorf("hasMore: got %v, want %v", p.HasMore, tt.wantHasMore)
			}
			if p.Page != tt.page || p.Limit != tt.limit || p.Total != tt.total {
				t.Errorf("echoed inputs changed: %+v", p)
			}
		})
	}
}

func TestBuild_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		total       int64
	}{
		{"zero page", 0, 20, 10},
		{"negative page", -1, 20, 10},
		{"zero limit", 1, 0, 10},
		{"negative limit", 1, -5, 10},
		{"negative total", 1, 20, -1},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.page, tt.limit, tt.total)
			if err == nil {
				t.Fatalf("Build(%d, %d, %d) should have failed", tt.page, tt.limit, tt.total)
			}
			if apierr.KindOf(err) != apierr.KindInvalid {
				t.Errorf("error kind: got %q, want %q", apierr.KindOf(err), apierr.KindInvalid)
			}
		})
	}
}

func TestParseParams_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/users", nil)
	p, err := ParseParams(r)
	if err != nil {
		t.Fatalf("ParseParams failed: %v", err)
	}
	if p.Page != 1 {
		t.Errorf("page: got %d, want 1", p.Page)
	}
	if p.Limit != DefaultLimit {
		t.Errorf("limit: got %d, want %d", p.Limit, DefaultLimit)
	}
	if p.Search != "" {
		t.Errorf("search: got %q, want empty", p.Search)
	}
}

func TestParseParams_Values(t *testing.T) {
	r := httptest.NewRequest("GET", "/users?page=3&limit=50&search=mason", nil)
	p, err := ParseParams(r)
	if err != nil {
		t.Fatalf("ParseParams failed: %v", err)
	}
	if p.Page != 3 || p.Limit != 50 || p.Search != "mason" {
		t.Errorf("unexpected params: %+v", p)
	}
	if p.Skip() != 100 {
		t.Errorf("skip: got %d, want 100", p.Skip())
	}
	if p.Take() != 50 {
		t.Errorf("take: got %d, want 50", p.Take())
	}
}

func TestParseParams_CapsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/users?limit=5000", nil)
	p, err := ParseParams(r)
	if err != nil {
		t.Fatalf("ParseParams failed: %v", err)
	}
	if p.Limit != MaxLimit {
		t.Errorf("limit: got %d, want %d", p.Limit, MaxLimit)
	}
}

func TestParseParams_RejectsGarbage(t *testing.T) {
	for _, target := range []string{
		"/users?page=abc",
		"/users?page=0",
		"/users?page=-2",
		"/users?limit=abc",
		"/users?limit=0",
	} {
		r := httptest.NewRequest("GET", target, nil)
		if _, err := ParseParams(r); err == nil {
			t.Errorf("ParseParams(%s) should have failed", target)
		}
	}
}
