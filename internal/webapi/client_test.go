package webapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetJSONDecodesBody(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		if r.URL.Path != "/maps/id/1a2b" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1a2b","name":"Ghost"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", 100, time.Second)
	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.GetJSON(context.Background(), "/maps/id/1a2b", &out); err != nil {
		t.Fatalf("GetJSON returned error: %v", err)
	}
	if out.ID != "1a2b" || out.Name != "Ghost" {
		t.Fatalf("unexpected decode result: %+v", out)
	}
	if gotAgent != userAgent {
		t.Fatalf("expected user agent %q, got %q", userAgent, gotAgent)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, 100, time.Second)
	var out map[string]any
	err := c.GetJSON(context.Background(), "/missing", &out)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if reqErr.Status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", reqErr.Status)
	}
}

func TestGetJSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	}))
	defer srv.Close()

	c := New(srv.URL, 100, time.Second)
	var out map[string]any
	if err := c.GetJSON(context.Background(), "/", &out); !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork for malformed body, got %v", err)
	}
}

func TestGetJSONCancelledContext(t *testing.T) {
	c := New("http://127.0.0.1:1", 100, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out map[string]any
	err := c.GetJSON(ctx, "/", &out)
	if !errors.Is(err, ErrNetwork) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected ErrNetwork wrapping context.Canceled, got %v", err)
	}
}
