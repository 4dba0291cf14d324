package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"reflect"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/s4ng4/winelist"
	"golang.org/x/sync/errgroup"
)

// Server defaults.
const (
	DefaultPort            = 8000
	DefaultRateLimit       = 20.0
	DefaultRateBurst       = 40
	DefaultShutdownTimeout = 5 * time.Second
)

// Server serves a catalog as a JSON API next to the static wine-list pages.
// The catalog can be swapped at any time with SetCatalog; requests in flight
// keep the catalog they started with.
type Server struct {
	router    *chi.Mux
	logger    *slog.Logger
	validate  *validator.Validate
	limiter   *ClientLimiter
	staticDir  string
	baseURL    string
	trustProxy bool

	state atomic.Pointer[state]
}

// state pairs a catalog with the searcher built from it.
type state struct {
	catalog  *winelist.Catalog
	searcher winelist.Searcher
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger used for request and error logging.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStaticDir serves the files under dir for every path outside the API.
func WithStaticDir(dir string) ServerOption {
	return func(s *Server) {
		s.staticDir = dir
	}
}

// WithBaseURL sets the public URL used in the sitemap. When unset the
// sitemap is built from the request's host.
func WithBaseURL(u string) ServerOption {
	return func(s *Server) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTrustProxy makes the server take the client address from the
// X-Forwarded-For and X-Real-IP headers. Enable it only behind a reverse
// proxy that sets them; otherwise any caller can pick its own address.
func WithTrustProxy(trust bool) ServerOption {
	return func(s *Server) {
		s.trustProxy = trust
	}
}

// WithRateLimit sets the per-client API rate limit. A non-positive rps
// disables rate limiting.
func WithRateLimit(rps float64, burst int) ServerOption {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = NewClientLimiter(rps, burst)
	}
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   slog.Default(),
		validate: newValidator(),
		limiter:  NewClientLimiter(DefaultRateLimit, DefaultRateBurst),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// SetCatalog replaces the served catalog. searcher may be nil, in which case
// /api/search falls back to a linear scan of the catalog.
func (s *Server) SetCatalog(c *winelist.Catalog, searcher winelist.Searcher) {
	s.state.Store(&state{catalog: c, searcher: searcher})
}

// Catalog returns the served catalog, or nil if none has been set.
func (s *Server) Catalog() *winelist.Catalog {
	if st := s.state.Load(); st != nil {
		return st.catalog
	}
	return nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr and serves until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if s.limiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(DefaultClientIdle)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					s.limiter.Prune()
				}
			}
		})
	}
	return g.Wait()
}

// IsAddrInUse reports whether err was caused by the listen address being
// taken by another process.
func IsAddrInUse(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	if s.trustProxy {
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/sitemap.xml", s.handleSitemap)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimit)

		r.Get("/wines", s.handleListWines)
		r.Get("/wines/{number}", s.handleGetWine)
		r.Get("/regions", s.handleListRegions)
		r.Get("/families", s.handleListFamilies)
		r.Get("/suggest", s.handleSuggest)
		r.Get("/search", s.handleSearch)
		r.Get("/stats", s.handleStats)
	})

	if s.staticDir != "" {
		s.router.Handle("/*", http.FileServer(http.Dir(s.staticDir)))
	}
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// rateLimit rejects API requests over the client's limit with 429.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow(clientHost(r)) {
			s.logger.Warn("rate limit exceeded", "remote", r.RemoteAddr, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			writeEnvelope(w, http.StatusTooManyRequests, Envelope{Error: "Too many requests. Please try again later."}, s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientHost returns the host part of RemoteAddr. Behind a trusted proxy
// RealIP has already replaced it with the forwarded address.
func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// newValidator returns a validator that names fields by their query key.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("query"), ",")
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}
