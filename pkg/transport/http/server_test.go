package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rolodex-dev/rolodex/pkg/auth"
	"github.com/rolodex-dev/rolodex/pkg/auth/session"
	"github.com/rolodex-dev/rolodex/pkg/blob"
	"github.com/rolodex-dev/rolodex/pkg/storage/memory"
)

func newTestServer(t *testing.T, opts ...ServerOption) *Server {
	t.Helper()

	store := memory.New()
	sessions := session.New(store, "")
	chain := &auth.Chain{
		Authenticators:  []auth.Authenticator{sessions},
		DefaultDecision: auth.No,
	}
	blobs, err := blob.New(t.TempDir())
	if err != nil {
		t.Fatalf("blob.New: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	opts = append([]ServerOption{WithLogger(logger), WithAddr("127.0.0.1:0")}, opts...)
	return NewServer(sessions, chain, store, blobs, opts...)
}

func TestServerServesMetrics(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("metrics output missing runtime collectors")
	}
}

func TestServerMetricsDisabled(t *testing.T) {
	s := newTestServer(t, WithMetrics(false, ""))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 when metrics are disabled", w.Code)
	}
}

func TestServerMetricsCustomPath(t *testing.T) {
	s := newTestServer(t, WithMetrics(true, "/internal/metrics"))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/internal/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("metrics output missing runtime collectors")
	}

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("default path status = %d, want 404 after remount", w.Code)
	}
}

func TestServerAssignsRequestID(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/v1/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}
}

func TestServerRejectsUnauthenticated(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/v1/contacts", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
