package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/GardenKeeper_Go/docs" // registers the swagger docs
	"github.com/osse101/GardenKeeper_Go/internal/garden"
	"github.com/osse101/GardenKeeper_Go/internal/handler"
	"github.com/osse101/GardenKeeper_Go/internal/logger"
	"github.com/osse101/GardenKeeper_Go/internal/metrics"
	"github.com/osse101/GardenKeeper_Go/internal/repository"
	"github.com/osse101/GardenKeeper_Go/internal/sse"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	AllowedOrigins []string
	MaxBodyBytes   int64
	Detector       DetectorConfig
}

// Dependencies are the components the routes serve
type Dependencies struct {
	Garden  garden.Service
	Store   repository.SnapshotRepository
	RPC     handler.HealthChecker
	Watcher handler.Watcher
	Hub     *sse.Hub

	// Gatherer backs /api/v1/admin/metrics; nil uses the default registry
	Gatherer prometheus.Gatherer
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer wires middleware and routes
func NewServer(opts Options, deps Dependencies) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	// outermost first
	detector := NewSuspiciousActivityDetector(opts.Detector)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(map[string]handler.HealthChecker{
		"database": handler.CheckFunc(deps.Store.Ping),
		"rpc":      deps.RPC,
	}))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	gardenHandler := handler.NewGardenHandler(deps.Garden)
	watchHandler := handler.NewWatchHandler(deps.Watcher)
	adminMetrics := handler.NewAdminMetricsHandler(deps.Gatherer, deps.Hub)
	adminCache := handler.NewAdminCacheHandler(deps.Garden)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/seeds", gardenHandler.HandleGetSeeds)

		r.Route("/players/{player}", func(r chi.Router) {
			r.Get("/inventory", gardenHandler.HandleGetInventory)
			r.Get("/balances", gardenHandler.HandleGetBalances)
			r.Get("/plots/{plotID}", gardenHandler.HandleGetPlot)
			r.Get("/plots/{plotID}/cells/{cell}/history", handler.HandleGetCellHistory(deps.Store))
		})

		r.Post("/plots/click", gardenHandler.HandleClick)

		r.Route("/shop", func(r chi.Router) {
			r.Post("/buy", gardenHandler.HandleBuySeeds)
			r.Post("/sell", gardenHandler.HandleSellCrops)
		})

		r.Get("/watch", watchHandler.HandleList)
		r.Post("/watch", watchHandler.HandleWatch)
		r.Delete("/watch", watchHandler.HandleUnwatch)

		r.Get("/events", sse.Handler(deps.Hub))
		r.Get("/ws", sse.WebSocketHandler(deps.Hub, OriginChecker(opts.AllowedOrigins)))

		r.Get("/admin/metrics", adminMetrics.HandleGetMetrics)
		r.Delete("/admin/cache/seeds", adminCache.HandlePurgeSeedCache)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			IdleTimeout:       DefaultIdleTimeout,
			// no WriteTimeout: event streams stay open
		},
		router: r,
	}
}

// Handler exposes the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// responseWriter captures the status code while keeping the streaming
// interfaces of the wrapped writer reachable
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	// a hijacked connection reports 101 in the completion log
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return h.Hijack()
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		// Honour an upstream request ID so traces line up across proxies
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > 64 {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", sanitizeHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

func sanitizeHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

// Start serves until Stop is called
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
