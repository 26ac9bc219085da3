// Package http exposes the tracker's stores as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"tally/internal/auth"
	"tally/internal/cache"
	"tally/internal/core"
	"tally/internal/ledger"
	"tally/internal/log"
	"tally/internal/services"
)

type Server struct {
	http.Server

	auth         *auth.Store
	ledger       *ledger.Store
	transactions *services.TransactionService
	logger       *log.Logger

	limiter      *rateLimiter
	summaryCache *cache.LRUCache[core.Totals]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// Options bundles the server dependencies.
type Options struct {
	Addr         string
	Auth         *auth.Store
	Ledger       *ledger.Store
	Transactions *services.TransactionService
	Logger       *log.Logger
	CacheSize    int
	CacheTTL     time.Duration
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(opts Options) *Server {
	mux := http.NewServeMux()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}

	cacheSize := opts.CacheSize
	if cacheSize < 1 {
		cacheSize = 100
	}
	cacheTTL := opts.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	s := &Server{
		Server: http.Server{
			Addr: opts.Addr,
		},
		auth:         opts.Auth,
		ledger:       opts.Ledger,
		transactions: opts.Transactions,
		logger:       logger,
		limiter:      newRateLimiter(),
		summaryCache: cache.NewLRUCache[core.Totals](cacheSize, cacheTTL),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/session", s.withMiddleware(s.handleSession))
	mux.HandleFunc("POST /api/register", s.withMiddleware(s.handleRegister))
	mux.HandleFunc("POST /api/login", s.withMiddleware(s.handleLogin))
	mux.HandleFunc("POST /api/logout", s.withMiddleware(s.handleLogout))

	mux.HandleFunc("GET /api/categories", s.withMiddleware(s.handleCategories))
	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withMiddleware(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))
	mux.HandleFunc("GET /api/summary", s.withMiddleware(s.handleSummary))

	s.Server.Handler = log.Middleware(logger)(mux)
	return s
}

// Handler returns the configured root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
