package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskshell/internal/api/http"
	"github.com/GriffinCanCode/deskshell/internal/api/middleware"
	"github.com/GriffinCanCode/deskshell/internal/api/ws"
	"github.com/GriffinCanCode/deskshell/internal/domain/sandbox"
	"github.com/GriffinCanCode/deskshell/internal/domain/service"
	"github.com/GriffinCanCode/deskshell/internal/infrastructure/config"
	"github.com/GriffinCanCode/deskshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/deskshell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/deskshell/internal/providers"
)

const shutdownTimeout = 5 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	handler  nethttp.Handler
	registry *service.Registry
	resolver *sandbox.Resolver
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics

	httpServer *nethttp.Server
}

// NewServer creates a new server instance. The data root is created eagerly
// so a misconfigured locator is reported at startup; failure is logged and
// the commands report root_unavailable until it resolves.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing DeskShell server",
		zap.String("addr", cfg.Server.Address()),
		zap.String("identifier", cfg.App.Identifier),
	)

	metrics := monitoring.NewMetrics()

	resolver := sandbox.NewResolver(cfg.App.Locator()).WithLogger(logger.Named("sandbox"))
	if root, err := resolver.EnsureRoot(); err != nil {
		logger.Warn("Application data directory unavailable", zap.Error(err))
	} else {
		logger.Info("Application data directory ready", zap.String("root", root))
	}

	registry := service.NewRegistry().WithMetrics(metrics).WithLogger(logger.Named("registry"))
	if err := providers.RegisterAll(registry, resolver, logger.Logger); err != nil {
		return nil, fmt.Errorf("failed to register providers: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Named("http")))
	router.Use(monitoring.Middleware(metrics))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Security.AllowOrigins
	}
	router.Use(middleware.CORS(corsCfg))

	if cfg.Security.HeadersEnabled {
		router.Use(middleware.SecurityHeaders())
	}
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := http.NewHandlers(registry, resolver)
	wsHandler := ws.NewHandler(registry, metrics, logger.Named("ws"), corsCfg.AllowOrigins)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/commands", handlers.ListCommands)
	router.POST("/invoke/:command", handlers.Invoke)
	router.GET("/ipc", wsHandler.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		handler:  compress(router),
		registry: registry,
		resolver: resolver,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// compress gzips responses except WebSocket upgrades, which must reach the
// router with a hijackable writer.
func compress(next nethttp.Handler) nethttp.Handler {
	gz := gzhttp.GzipHandler(next)
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() nethttp.Handler {
	return s.handler
}

// Registry returns the command registry
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Run serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.Address(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &nethttp.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	return s.Close()
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}
	}

	// Sync logger before exit
	_ = s.logger.Sync()

	return nil
}
