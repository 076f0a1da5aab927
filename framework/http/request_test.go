package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gohttp "github.com/km-arc/go-container/framework/http"
)

// ── Bind ─────────────────────────────────────────────────────────────────────

func TestRequest_Bind(t *testing.T) {
	body := strings.NewReader(`{"name":"Alice","age":30}`)
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodPost, "/services", body))

	var in struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	if err := req.Bind(&in); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if in.Name != "Alice" || in.Age != 30 {
		t.Errorf("got %+v", in)
	}
}

func TestRequest_Bind_EmptyBody(t *testing.T) {
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodPost, "/services", nil))

	var in map[string]any
	if err := req.Bind(&in); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestRequest_Bind_InvalidJSON(t *testing.T) {
	body := strings.NewReader(`{not json`)
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodPost, "/services", body))

	var in map[string]any
	if err := req.Bind(&in); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

// ── Query ────────────────────────────────────────────────────────────────────

func TestRequest_Query(t *testing.T) {
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/services?page=2", nil))

	if got := req.Query("page"); got != "2" {
		t.Errorf("page: got %q want %q", got, "2")
	}
	if got := req.Query("limit", "25"); got != "25" {
		t.Errorf("limit fallback: got %q want %q", got, "25")
	}
	if got := req.Query("missing"); got != "" {
		t.Errorf("missing: got %q want empty", got)
	}
}

// ── BearerToken ──────────────────────────────────────────────────────────────

func TestRequest_BearerToken(t *testing.T) {
	raw := httptest.NewRequest(http.MethodGet, "/", nil)
	raw.Header.Set("Authorization", "Bearer abc123")

	if got := gohttp.NewRequest(raw).BearerToken(); got != "abc123" {
		t.Errorf("got %q want %q", got, "abc123")
	}
}

func TestRequest_BearerToken_Missing(t *testing.T) {
	raw := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := gohttp.NewRequest(raw).BearerToken(); got != "" {
		t.Errorf("got %q want empty", got)
	}

	raw.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if got := gohttp.NewRequest(raw).BearerToken(); got != "" {
		t.Errorf("non-bearer scheme: got %q want empty", got)
	}
}
