// Package http serves the tracker as a JSON API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/report"
)

type requestIDKey struct{}

// TransactionStore is the part of the store the API drives.
type TransactionStore interface {
	Add(ctx context.Context, d core.Draft) (core.Transaction, error)
	Update(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	Delete(ctx context.Context, id string) bool
	Merge(ctx context.Context, txs []core.Transaction) int
	FilterByCategory(category string) []core.Transaction
	All() []core.Transaction
	Get(id string) (core.Transaction, bool)
}

// Reports yields the cached summary and breakdown.
type Reports interface {
	Current() report.Report
}

// Transfer encodes and decodes the export file format.
type Transfer interface {
	Filename() string
	Export(w io.Writer, txs []core.Transaction) error
	Import(ctx context.Context, r io.Reader) ([]core.Transaction, error)
}

type Server struct {
	http.Server

	store    TransactionStore
	reports  Reports
	transfer Transfer
	logger   *log.Logger

	rateLimiter *rateLimiter
	metrics     *securityMetrics
	ready       atomic.Bool

	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server. Readiness
// stays false until SetReady is called.
func NewServer(addr string, st TransactionStore, rep Reports, tr Transfer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		store:       st,
		reports:     rep,
		transfer:    tr,
		logger:      logger.WithComponent(log.ComponentHTTP),
		rateLimiter: newRateLimiter(),
		metrics:     &securityMetrics{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/breakdown", s.handleBreakdown)
	mux.HandleFunc("GET /api/report", s.handleReport)
	mux.HandleFunc("GET /api/categories", s.handleCategories)

	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("POST /api/import", s.handleImport)

	mux.HandleFunc("GET /api/stats", s.handleStats)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.withMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

// SetReady flips the /readyz answer.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Shutdown stops background cleanup and drains the HTTP server. Safe to call
// more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.SetReady(false)
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// withMiddleware adds request ids, request logging, security headers and
// rate limiting of mutating requests.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		reqLogger := s.logger.With(log.FieldRequestID, requestID)
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		ctx = log.NewContext(ctx, reqLogger)
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)
		setSecurityHeaders(w)

		if detectSuspiciousRequest(r, s.metrics) {
			reqLogger.WarnContext(ctx, "Suspicious request",
				log.NewFields().WithHTTPRequest(r.Method, r.URL.Path, clientIP).ToSlice()...)
		}

		if r.Method != http.MethodGet && r.Method != http.MethodHead && !s.rateLimiter.allow(clientIP, s.metrics) {
			reqLogger.WarnContext(ctx, "Rate limit exceeded", log.FieldClientIP, clientIP, log.FieldMethod, r.Method)
			w.Header().Set("Retry-After", "60")
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		fields := log.NewFields().
			WithHTTPRequest(r.Method, r.URL.Path, clientIP).
			WithHTTPResponse(rw.statusCode, time.Since(start).Milliseconds())
		switch {
		case rw.statusCode >= 500:
			reqLogger.ErrorContext(ctx, "Request completed", fields.ToSlice()...)
		case rw.statusCode >= 400:
			reqLogger.WarnContext(ctx, "Request completed", fields.ToSlice()...)
		default:
			reqLogger.InfoContext(ctx, "Request completed", fields.ToSlice()...)
		}
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("starting"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
