package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/davidleathers/demo-call-gateway/internal/domain/intake"
	"github.com/davidleathers/demo-call-gateway/internal/infrastructure/auditlog"
	"github.com/davidleathers/demo-call-gateway/internal/infrastructure/cache"
	"github.com/davidleathers/demo-call-gateway/internal/infrastructure/config"
	"github.com/davidleathers/demo-call-gateway/internal/service/dispatch"
	intakesvc "github.com/davidleathers/demo-call-gateway/internal/service/intake"
)

// Server represents the API server
type Server struct {
	config     *config.Config
	httpServer *http.Server
	handler    *Handler
	logger     *slog.Logger
	redis      *redis.Client
	auditLog   intake.AuditLog
}

// NewServer creates the API server and wires its dependencies: audit
// log, rate limiters, dispatcher, intake service, and middleware chain.
func NewServer(cfg *config.Config, logger *slog.Logger, metrics intakesvc.MetricsCollector) (*Server, error) {
	// Audit log is process memory; entries are lost on restart.
	audit := auditlog.NewMemoryLog()

	// Transport rate limiter: Redis sliding window when configured,
	// in-memory token buckets otherwise.
	var (
		limiter     cache.RateLimiter
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := cache.NewRedisClient(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		redisClient = client

		zapLogger, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("failed to create zap logger: %w", err)
		}
		limiter = cache.NewRedisRateLimiter(client, zapLogger)
	} else {
		limiter = cache.NewMemoryRateLimiter()
	}

	dispatcher, err := newDispatcher(cfg, logger)
	if err != nil {
		return nil, err
	}

	intakeService := intakesvc.NewService(audit, dispatcher, metrics, logger, intakesvc.Config{
		PerNumberLimit:  cfg.RateLimit.PerNumberPerMinute,
		PerNumberWindow: time.Minute,
	})

	handler := NewHandler(intakeService, logger)

	corsConfig := DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORS.Origins()
	corsMiddleware := NewCORSMiddleware(corsConfig)

	rateLimiterMiddleware := NewRateLimiterMiddleware(limiter, cfg.RateLimit.PerMinute, time.Minute)

	middlewares := []Middleware{
		// Observability
		loggingMiddleware,
		MetricsMiddleware(),

		// Recovery
		recoveryMiddleware,

		// Security
		securityHeadersMiddleware,
		corsMiddleware.Middleware(),

		// Timeout
		timeoutMiddleware(30 * time.Second),
	}

	server := &Server{
		config:   cfg,
		handler:  handler,
		logger:   logger,
		redis:    redisClient,
		auditLog: audit,
	}

	mux := server.setupRoutes(rateLimiterMiddleware.Middleware())

	var h http.Handler = mux
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	server.httpServer = &http.Server{
		Addr:           cfg.Server.Address(),
		Handler:        h,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	return server, nil
}

// newDispatcher selects the provider implementation once at startup
func newDispatcher(cfg *config.Config, logger *slog.Logger) (dispatch.Dispatcher, error) {
	switch cfg.Provider.Mode {
	case config.ProviderModeMock:
		return dispatch.NewMockDispatcher(logger), nil
	case config.ProviderModeTwilio:
		return dispatch.NewTwilioDispatcher(dispatch.TwilioConfig{
			AccountSID:        cfg.Provider.AccountSID,
			AuthToken:         cfg.Provider.AuthToken,
			FromNumber:        cfg.Provider.FromNumber,
			VoiceURL:          cfg.Provider.VoiceURL,
			StatusCallbackURL: cfg.Provider.StatusCallbackURL,
			Timeout:           cfg.Provider.Timeout,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown provider mode %q", cfg.Provider.Mode)
	}
}

// setupRoutes configures all routes. The transport rate limiter applies
// to call intake only: health probes, metrics scrapes, and the provider's
// voice-script fetch must never compete with the intake budget.
func (s *Server) setupRoutes(startCallLimiter Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("POST /api/start-call", startCallLimiter(http.HandlerFunc(s.handler.handleStartCall)))
	mux.HandleFunc("GET /health", s.handler.handleHealth)
	mux.HandleFunc("GET /twiml", s.handler.handleTwiML)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	s.logger.Info("starting API server",
		"address", s.httpServer.Addr,
		"environment", s.config.Environment,
		"provider_mode", string(s.config.Provider.Mode),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig)
		return s.Shutdown()
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shutdown server", "error", err)
		return err
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("failed to close Redis", "error", err)
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
