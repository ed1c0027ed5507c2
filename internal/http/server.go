package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/backend"
	"fintrack/internal/cache"
	"fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
	appweb "fintrack/web"
)

const insightsCacheKey = "insights"

// Config holds the HTTP-facing settings.
type Config struct {
	Addr               string
	RateLimitPerMinute int
	CacheTTL           time.Duration
	TrustedProxies     []string
}

type Server struct {
	http.Server
	ledger    *services.LedgerService
	checks    []backend.HealthCheck
	logger    *log.Logger
	templates *template.Template

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	caches        *cache.Manager
	insightsCache *cache.LRUCache[insightsJSON]
	insightsMu    sync.Mutex
	insightsGen   uint64 // bumped by invalidate, guarded by insightsMu

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a ready-to-run server.
func NewServer(cfg Config, ledger *services.LedgerService, logger *log.Logger, checks ...backend.HealthCheck) (*Server, error) {
	logger = logger.WithComponent(log.ComponentHTTP)

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}
	detector, err := security.NewDetector(cfg.TrustedProxies...)
	if err != nil {
		return nil, err
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	s := &Server{
		ledger:        ledger,
		checks:        checks,
		logger:        logger,
		templates:     t,
		limiter:       ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute}),
		detector:      detector,
		caches:        cache.NewManager(logger),
		insightsCache: cache.NewLRUCache[insightsJSON](1, ttl),
	}
	s.tracer = trace.NewMiddleware(logger, detector.ClientIP, detector.Suspicious)
	s.caches.Register(s.insightsCache)
	s.caches.StartCleanup(ttl)

	mux := http.NewServeMux()
	mux.Handle("GET /static/", security.CacheStatic(3600)(http.StripPrefix("/static/", http.FileServer(http.FS(static)))))
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ui/dashboard", s.handleDashboardPartial)
	mux.HandleFunc("POST /expenses", s.handleCreateExpense)
	mux.HandleFunc("POST /savings/goal", s.handleSetGoal)
	mux.HandleFunc("POST /savings/deposit", s.handleDeposit)
	mux.HandleFunc("GET /api/expenses", s.handleAPIExpenses)
	mux.HandleFunc("GET /api/insights", s.handleAPIInsights)
	mux.HandleFunc("GET /api/savings", s.handleAPISavings)
	mux.HandleFunc("GET /api/categorize", s.handleAPICategorize)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	onLimit := func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
			log.FieldClientIP, detector.ClientIP(r),
			log.FieldPath, r.URL.Path)
		ErrorResponse(http.StatusTooManyRequests, "Too many requests. Please try again in a minute.").Write(w)
	}

	var handler http.Handler = mux
	handler = s.limiter.Middleware(detector.ClientIP, onLimit, http.MethodPost)(handler)
	handler = security.Headers(security.DefaultHeadersConfig())(handler)
	handler = s.tracer.Handler(handler)

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Shutdown stops the background cleanups and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
		s.logger.InfoContext(ctx, "HTTP server stopped",
			"requests", s.tracer.Total(),
			"rate_limited", s.limiter.GetMetrics().Rejected,
			"suspicious", s.detector.SuspiciousCount())
	})
	return shutdownErr
}

// invalidate drops derived data after a mutation.
func (s *Server) invalidate() {
	s.insightsMu.Lock()
	defer s.insightsMu.Unlock()
	s.insightsGen++
	s.insightsCache.Clear()
}

// insightsGeneration is read before computing insights; storeInsights
// discards the result if a mutation happened in between.
func (s *Server) insightsGeneration() uint64 {
	s.insightsMu.Lock()
	defer s.insightsMu.Unlock()
	return s.insightsGen
}

func (s *Server) storeInsights(gen uint64, v insightsJSON) bool {
	s.insightsMu.Lock()
	defer s.insightsMu.Unlock()
	if gen != s.insightsGen {
		return false
	}
	s.insightsCache.Set(insightsCacheKey, v)
	return true
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady runs every backend health check; any failure makes the server not ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	results := make(map[string]string, len(s.checks))
	ready := true
	for _, c := range s.checks {
		if err := c.Check(ctx); err != nil {
			ready = false
			results[c.Name] = err.Error()
			log.FromContext(ctx).WarnContext(ctx, "Readiness check failed", "check", c.Name, log.FieldError, err)
			continue
		}
		results[c.Name] = "ok"
	}

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not ready", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{"status": status, "checks": results})
}
