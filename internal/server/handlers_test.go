package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/fsearch/internal/config"
	"github.com/hyperjump/fsearch/internal/fileuri"
	"github.com/hyperjump/fsearch/internal/models"
	"github.com/hyperjump/fsearch/internal/search"
	"go.uber.org/zap"
)

type stubRunner struct {
	files map[string][]string
}

func (s *stubRunner) Run(ctx context.Context, dir string, _ []string, lines chan<- string) error {
	files, ok := s.files[dir]
	if !ok {
		return errors.New("no such root")
	}
	for _, f := range files {
		select {
		case lines <- f:
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "docs")
	runner := &stubRunner{files: map[string][]string{
		root: {"readme.md", "src/main.go", "notes.txt"},
	}}
	cfg := &config.SearchConfig{Roots: []string{root}}
	engine := search.NewEngine(runner, cfg, zap.NewNop())
	return NewServer(engine, &config.ServerConfig{Host: "localhost", Port: 8080}, zap.NewNop()), root
}

func postFind(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/find", bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	return w
}

func TestHandleFind(t *testing.T) {
	srv, root := newTestServer(t)
	w := postFind(t, srv, `{"pattern": "main"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var resp models.FindResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	want := fileuri.Resolve(root, "src/main.go")
	if resp.Total != 1 || len(resp.Results) != 1 || resp.Results[0] != want {
		t.Errorf("results: got %v, want [%s]", resp.Results, want)
	}
	if resp.Pattern != "main" {
		t.Errorf("pattern: got %q", resp.Pattern)
	}
}

func TestHandleFind_WithOptions(t *testing.T) {
	srv, root := newTestServer(t)
	body := `{"pattern": "", "options": {"root_uris": ["` + fileuri.FromPath(root) + `"], "limit": 2}}`
	w := postFind(t, srv, body)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var resp models.FindResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 {
		t.Errorf("total: got %d, want 2", resp.Total)
	}
}

func TestHandleFind_BadRequest(t *testing.T) {
	srv, _ := newTestServer(t)
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"pattern":`},
		{"negative limit", `{"pattern": "x", "options": {"limit": -1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postFind(t, srv, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", w.Code)
			}
			var out map[string]string
			if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
				t.Fatal(err)
			}
			if out["error"] == "" {
				t.Error("expected error message")
			}
		})
	}
}

func TestHandleFind_CancelledRequest(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/find", strings.NewReader(`{"pattern": ""}`)).WithContext(ctx)
	w := httptest.NewRecorder()
	srv.handleFind(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var resp models.FindResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 0 || resp.Results == nil {
		t.Errorf("results: got %#v, want empty list", resp.Results)
	}
}

func TestHandleFind_NoRunner(t *testing.T) {
	srv := NewServer(search.NewEngine(nil, nil, nil), nil, nil)
	w := postFind(t, srv, `{"pattern": "x"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", w.Code)
	}
}

func TestHandleRoots(t *testing.T) {
	srv, root := newTestServer(t)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/roots", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Roots []string `json:"roots"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Roots) != 1 || out.Roots[0] != root {
		t.Errorf("roots: got %v", out.Roots)
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body: got %s", w.Body.String())
	}
}

func TestServerAddr(t *testing.T) {
	srv := NewServer(nil, &config.ServerConfig{Host: "127.0.0.1", Port: 9000}, nil)
	if got := srv.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr: got %q", got)
	}
}
