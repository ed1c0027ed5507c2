package trace

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/log"
)

func TestMiddleware_AssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	m := NewMiddleware(log.New(log.Config{Output: &buf}), nil, nil)

	var seen string
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		log.FromContext(r.Context()).InfoContext(r.Context(), "inside handler")
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/expenses", nil))

	if !strings.HasPrefix(seen, "req_") {
		t.Fatalf("request id = %q, want req_ prefix", seen)
	}
	if rec.Header().Get(HeaderRequestID) != seen {
		t.Errorf("%s header = %q, want %q", HeaderRequestID, rec.Header().Get(HeaderRequestID), seen)
	}

	out := buf.String()
	if strings.Count(out, "request_id="+seen) != 2 {
		t.Errorf("both log lines should carry the request id:\n%s", out)
	}
	if !strings.Contains(out, "status_code=201") || !strings.Contains(out, "path=/expenses") {
		t.Errorf("completion log missing fields:\n%s", out)
	}
	if m.Total() != 1 {
		t.Errorf("Total() = %d, want 1", m.Total())
	}
}

func TestMiddleware_ReusesIncomingID(t *testing.T) {
	m := NewMiddleware(log.New(log.Config{Output: &bytes.Buffer{}}), nil, nil)
	h := m.Handler(http.NotFoundHandler())

	tests := []struct {
		incoming string
		reused   bool
	}{
		{"abc-123_X", true},
		{"has space", false},
		{strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, tt.incoming)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if got := rec.Header().Get(HeaderRequestID) == tt.incoming; got != tt.reused {
			t.Errorf("incoming %q reused = %v, want %v", tt.incoming, got, tt.reused)
		}
	}
}

func TestMiddleware_LogsSuspiciousAndLevels(t *testing.T) {
	var buf bytes.Buffer
	m := NewMiddleware(log.New(log.Config{Output: &buf}),
		func(*http.Request) string { return "203.0.113.1" },
		func(r *http.Request) bool { return strings.Contains(r.URL.Path, ".env") })

	h := m.Handler(http.NotFoundHandler())
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/.env", nil))

	out := buf.String()
	if !strings.Contains(out, "Suspicious request") || !strings.Contains(out, "client_ip=203.0.113.1") {
		t.Errorf("expected suspicious warning with client ip:\n%s", out)
	}
	if !strings.Contains(out, "level=WARN msg=\"HTTP request completed\"") {
		t.Errorf("404 should complete at WARN:\n%s", out)
	}
}

func TestGetRequestID_Empty(t *testing.T) {
	if id := GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()); id != "" {
		t.Errorf("GetRequestID() = %q, want empty", id)
	}
}
