package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"https://x.test", "/a", "https://x.test/a"},
		{"https://x.test/", "/a", "https://x.test/a"},
		{"https://x.test/v2", "a/b", "https://x.test/v2/a/b"},
	}
	for _, tt := range tests {
		if got := JoinURL(tt.base, tt.path); got != tt.want {
			t.Errorf("JoinURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestNewHTTPClientDefaultTimeout(t *testing.T) {
	if c := NewHTTPClient(0); c.Timeout <= 0 {
		t.Errorf("expected default timeout, got %v", c.Timeout)
	}
	if c := NewHTTPClient(3 * time.Second); c.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", c.Timeout)
	}
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "waktu/") {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	raw, err := GetJSON(context.Background(), srv.Client(), srv.URL, &out)
	if err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if !out.OK || string(raw) != `{"ok":true}` {
		t.Errorf("unexpected result %+v %s", out, raw)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var out map[string]any
	_, err := GetJSON(context.Background(), srv.Client(), srv.URL, &out)

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusServiceUnavailable || se.Body != "maintenance" {
		t.Errorf("unexpected status error: %+v", se)
	}
}

func TestGetJSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var out map[string]any
	raw, err := GetJSON(context.Background(), srv.Client(), srv.URL, &out)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if string(raw) != "not json" {
		t.Errorf("expected raw body on decode error, got %q", raw)
	}
}
