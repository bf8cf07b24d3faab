package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/wrecklessracks/racks/internal/account"
	"github.com/wrecklessracks/racks/internal/billing"
	"github.com/wrecklessracks/racks/internal/casino"
	_ "github.com/wrecklessracks/racks/internal/docs"
	"github.com/wrecklessracks/racks/internal/handler"
	"github.com/wrecklessracks/racks/internal/logger"
	"github.com/wrecklessracks/racks/internal/metrics"
	"github.com/wrecklessracks/racks/internal/progression"
	"github.com/wrecklessracks/racks/internal/sse"
	"github.com/wrecklessracks/racks/internal/tournament"
)

// Options configures the HTTP surface
type Options struct {
	Port            int
	APIKey          string
	TrustedProxies  []string
	StartingBalance int64
}

// Services are the domain services behind the routes
type Services struct {
	Accounts    account.Service
	Casino      casino.Service
	Progression progression.Service
	Billing     billing.Service
	Tournaments tournament.Service
	// Optional live event feed
	Events *sse.Hub
	// Pinged by /readyz
	Health map[string]handler.HealthChecker
}

type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and its middleware stack
func NewServer(opts Options, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter returns the full route tree. Middleware runs outermost first.
func NewRouter(opts Options, svc Services) http.Handler {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Health))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	games := handler.NewGamesHandler(svc.Casino)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", handler.HandleCreateAccount(svc.Accounts, opts.StartingBalance))
			r.Get("/{id}", handler.HandleGetAccount(svc.Accounts))
			r.Get("/{id}/tournaments", handler.HandleGetEntries(svc.Tournaments))
		})

		r.Route("/games", func(r chi.Router) {
			r.Post("/slots/spin", games.HandleSpinSlots)
			r.Post("/megaslots/spin", games.HandleSpinMegaSlots)
			r.Post("/roulette/spin", games.HandleSpinRoulette)

			r.Route("/blackjack", func(r chi.Router) {
				r.Post("/deal", games.HandleDealBlackjack)
				r.Post("/hit", games.HandleHitBlackjack)
				r.Post("/stand", games.HandleStandBlackjack)
			})
			r.Route("/poker", func(r chi.Router) {
				r.Post("/deal", games.HandleDealPoker)
				r.Post("/draw", games.HandleDrawPoker)
			})

			r.Get("/rounds/{id}", games.HandleGetActiveRound)
		})

		r.Route("/bonus", func(r chi.Router) {
			r.Post("/daily", handler.HandleClaimDaily(svc.Progression))
			r.Post("/hourly", handler.HandleClaimHourly(svc.Progression))
			r.Post("/cashback", handler.HandleClaimCashback(svc.Progression))
		})

		r.Get("/vip/tiers", handler.HandleGetTiers(svc.Progression))
		r.Get("/vip/{id}", handler.HandleGetVIP(svc.Progression))
		r.Get("/challenges/{id}", handler.HandleGetChallenges(svc.Progression))
		r.Get("/jackpot", games.HandleGetJackpot)

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", handler.HandleGetTournaments(svc.Tournaments))
			r.Get("/{id}/prizes", handler.HandleGetPrizes(svc.Tournaments))
			r.Post("/{id}/join", handler.HandleJoinTournament(svc.Tournaments))
		})

		r.Route("/billing", func(r chi.Router) {
			r.Get("/packages", handler.HandleGetPackages(svc.Billing))
			r.Post("/complete", handler.HandleCompletePurchase(svc.Billing))
		})

		if svc.Events != nil {
			r.Get("/events", sse.Handler(svc.Events))
		}
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
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

// Flush lets streaming handlers push through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// loggingMiddleware tags the request context with a request id and logs start and completion.
// Probe and scrape paths are not logged.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

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
			"content_length", r.ContentLength)

		sanitized := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitized[k] = []string{RedactedValue}
			} else {
				sanitized[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitized)

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

// Start serves until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
