package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterConfig contains the dependencies needed to construct the HTTP
// router, mirroring the teacher's RouterConfig dependency-injection shape
// (internal/api/router.go) so the router stays pure and testable with
// httptest.NewServer — NewRouter starts no listener; when RateLimiter is
// nil it builds one with NewIPRateLimiter, which starts that limiter's
// cleanup goroutine.
type RouterConfig struct {
	Hub *Hub

	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig

	CORSOrigins []string

	Logger zerolog.Logger

	DisableLogging bool
}

// NewRouter builds the chi router exposing the engine's pure functions:
// POST /api/validate, /api/resolve, /api/available-actions,
// /api/move-targets, and GET /api/stream for the event-log WebSocket.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	if !cfg.DisableLogging {
		r.Use(zerologMiddleware(cfg.Logger))
	}
	r.Use(middleware.Recoverer)

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rlCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rlCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rlCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &handlers{hub: cfg.Hub, log: cfg.Logger}

	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", h.handleValidate)
		r.Post("/resolve", h.handleResolve)
		r.Post("/available-actions", h.handleAvailableActions)
		r.Post("/move-targets", h.handleMoveTargets)
		r.Get("/stream", h.handleStream)
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func zerologMiddleware(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Str("remote", GetClientIP(r)).
				Str("requestId", ww.Header().Get(requestIDHeader)).
				Msg("http request")
		})
	}
}

// requestIDHeader carries a per-request correlation ID back to the caller,
// stamped with a real UUIDv4 rather than a counter so IDs stay unique across
// process restarts and concurrent bbserve instances.
const requestIDHeader = "X-Request-Id"

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(requestIDHeader, uuid.NewString())
		next.ServeHTTP(w, r)
	})
}
