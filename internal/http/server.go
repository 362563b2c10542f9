// Package http exposes the payment and profile JSON API.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"paytrack/internal/profile"
	"paytrack/internal/service"
)

type Server struct {
	http.Server
	payments *service.PaymentService
	profiles *profile.Registry
}

// NewServer wires the router and returns a ready-to-run server.
func NewServer(addr string, payments *service.PaymentService, profiles *profile.Registry) *Server {
	s := &Server{
		payments: payments,
		profiles: profiles,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(securityHeaders)
	r.Use(newRateLimiter(300).middleware)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/payments", func(r chi.Router) {
			r.Get("/", s.handleListPayments)
			r.Post("/", s.handleCreatePayment)
			r.Get("/summary", s.handleSummary)
			r.Post("/clear", s.handleClearPayments)
			r.Put("/{id}", s.handleUpdatePayment)
			r.Delete("/{id}", s.handleDeletePayment)
		})
		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", s.handleListProfiles)
			r.Post("/", s.handleCreateProfile)
			r.Put("/{id}", s.handleUpdateProfile)
			r.Delete("/{id}", s.handleDeleteProfile)
		})
	})

	s.Server = http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// requestID attaches a request id to the context and response headers.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

// requestLogger logs one line per request with status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		level := slog.LevelInfo
		if ww.Status() >= 500 {
			level = slog.LevelError
		} else if ww.Status() >= 400 {
			level = slog.LevelWarn
		}
		slog.Default().Log(r.Context(), level, "Request completed",
			"request_id", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
