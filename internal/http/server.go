package http

import (
	"context"
	"encoding/json"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/classify"
	"fintrack/internal/core"
	"fintrack/internal/csvio"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/service"
	"fintrack/internal/store"
	appweb "fintrack/web"
)

// Options configures the HTTP server.
type Options struct {
	Addr               string
	MaxReceiptBytes    int
	RateLimitPerMinute int

	// SampleLoader supplies the dataset reloaded after a reset. Nil leaves
	// the store empty after reset.
	SampleLoader func() []core.Transaction
}

type Server struct {
	http.Server
	templates  *template.Template
	store      store.Store
	svc        *service.TransactionService
	importer   *csvio.Importer
	classifier *classify.Classifier

	limiter  *ratelimit.Limiter
	tracer   *trace.Middleware
	detector *security.Detector

	maxReceiptBytes int64
	sampleLoader    func() []core.Transaction
	startedAt       time.Time
	shutdownOnce    sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(opts Options, st store.Store) *Server {
	mux := http.NewServeMux()

	classifier := classify.New()
	svc := service.NewTransactionService(st, classifier)
	detector := security.NewDetector()

	maxReceipt := int64(opts.MaxReceiptBytes)
	if maxReceipt <= 0 {
		maxReceipt = 5 * 1024 * 1024
	}

	s := &Server{
		store:      st,
		svc:        svc,
		importer:   csvio.NewImporter(svc),
		classifier: classifier,

		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
			CleanupInterval:   5 * time.Minute,
		}),
		tracer:   trace.NewMiddleware(detector.ExtractClientIP),
		detector: detector,

		maxReceiptBytes: maxReceipt,
		sampleLoader:    opts.SampleLoader,
		startedAt:       time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	mux.HandleFunc("/transactions", s.handleCreateTransaction)
	mux.HandleFunc("/import", s.handleImport)
	mux.HandleFunc("/export", s.handleExport)
	mux.HandleFunc("/admin/reset", s.handleReset)

	// UI partials
	mux.HandleFunc("/ui/dashboard", s.handleDashboard)
	mux.HandleFunc("/ui/transactions", s.handleTransactionList)
	mux.HandleFunc("/ui/analytics", s.handleAnalytics)

	// Chart images
	mux.HandleFunc("/charts/categories.png", s.handleCategoryChart)
	mux.HandleFunc("/charts/trend.png", s.handleTrendChart)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	s.Server.Addr = opts.Addr
	s.Server.Handler = headers.Middleware(s.tracer.Middleware(s.withPostRateLimit(mux)))
	return s
}

// withPostRateLimit applies the per-IP limiter to mutating requests only.
// Reads stay unthrottled so dashboard refreshes never hit the limit.
func (s *Server) withPostRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Suspicious request detected",
				"method", r.Method,
				"path", r.URL.Path,
				"client_ip", s.detector.ExtractClientIP(r))
		}

		if r.Method == http.MethodPost {
			clientIP := s.detector.ExtractClientIP(r)
			if !s.limiter.Allow(clientIP) {
				slog.WarnContext(r.Context(), "Rate limit exceeded",
					"client_ip", clientIP,
					"method", r.Method,
					"path", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := s.store.Count(ctx); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Count(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Metrics count failed", "error", err)
	}

	traceMetrics := s.tracer.GetMetrics()
	secMetrics := s.detector.GetMetrics()

	payload := map[string]interface{}{
		"uptime_seconds":       int64(time.Since(s.startedAt).Seconds()),
		"transaction_count":    count,
		"total_requests":       traceMetrics.TotalRequests,
		"avg_response_time_us": traceMetrics.AverageResponseTime,
		"rate_limit_clients":   s.limiter.ActiveClients(),
		"suspicious_requests":  secMetrics.SuspiciousRequests,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.ErrorContext(r.Context(), "Metrics encoding failed", "error", err)
	}
}
