package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHeaders(t *testing.T) {
	h := Headers(DefaultHeadersConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "script-src 'self' https://unpkg.com") {
		t.Errorf("CSP = %q, want unpkg allowed for scripts", csp)
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Errorf("X-Frame-Options = %q", rec.Header().Get("X-Frame-Options"))
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Strict-Transport-Security"); got != "max-age=31536000; includeSubDomains" {
		t.Errorf("HSTS = %q", got)
	}
}

func TestHeaders_EmptyValuesSkipped(t *testing.T) {
	h := Headers(HeadersConfig{XContentTypeOptions: "nosniff"})(http.NotFoundHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, ok := rec.Header()["Content-Security-Policy"]; ok {
		t.Error("empty CSP should not be set")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("X-Content-Type-Options missing")
	}
}

func TestCacheStatic(t *testing.T) {
	h := CacheStatic(3600)(http.NotFoundHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestNewDetector_InvalidCIDR(t *testing.T) {
	if _, err := NewDetector("10.0.0.0/8", "not-a-cidr"); err == nil {
		t.Fatal("expected error for invalid CIDR")
	}
}

func TestDetector_ClientIP(t *testing.T) {
	d, err := NewDetector(DefaultTrustedProxies...)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{"direct public peer", "203.0.113.7:5555", "", "", "203.0.113.7"},
		{"public peer cannot spoof", "203.0.113.7:5555", "1.1.1.1", "", "203.0.113.7"},
		{"trusted proxy forwards", "10.0.0.2:80", "198.51.100.4, 10.0.0.2", "", "198.51.100.4"},
		{"trusted proxy real ip", "127.0.0.1:80", "", "198.51.100.9", "198.51.100.9"},
		{"garbage forwarded header", "192.168.1.1:80", "nope", "", "192.168.1.1"},
		{"unparseable remote", "pipe", "", "", "pipe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := d.ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetector_Suspicious(t *testing.T) {
	d, _ := NewDetector()

	tests := []struct {
		name   string
		method string
		target string
		agent  string
		want   bool
	}{
		{"dashboard", http.MethodGet, "/", "Mozilla/5.0", false},
		{"api with curl", http.MethodGet, "/api/insights", "curl/8.0", false},
		{"env probe", http.MethodGet, "/.env", "", true},
		{"php probe", http.MethodGet, "/wp-admin/setup.php", "", true},
		{"sql in query", http.MethodGet, "/api/categorize?description=1%20union%20select", "", true},
		{"scanner agent", http.MethodGet, "/", "sqlmap/1.7", true},
		{"trace method", "TRACE", "/", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.target, nil)
			r.Header.Set("User-Agent", tt.agent)
			if got := d.Suspicious(r); got != tt.want {
				t.Errorf("Suspicious() = %v, want %v", got, tt.want)
			}
		})
	}
	if d.SuspiciousCount() != 4 {
		t.Errorf("SuspiciousCount() = %d, want 4", d.SuspiciousCount())
	}
}
