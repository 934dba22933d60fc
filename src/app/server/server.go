// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/gin-gonic/gin"

	"itemsapi/src/app/http/handler"
	"itemsapi/src/app/http/response"
	"itemsapi/src/app/middleware"
	"itemsapi/src/core/ports"
	"itemsapi/src/core/usecase"
	"itemsapi/src/infra/config"
	"itemsapi/src/infra/metrics"
)

// Deps are the collaborators the HTTP layer is built on.
type Deps struct {
	Items   ports.ItemRepository
	Config  ports.ConfigInspector
	Metrics *metrics.Metrics
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	router  *gin.Engine
	http    *http.Server
	metrics *metrics.Metrics

	// Handlers
	rootHandler   *handler.RootHandler
	healthHandler *handler.HealthHandler
	itemHandler   *handler.ItemHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, deps Deps) *Server {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router without default middleware
	router := gin.New()

	// Create services
	healthService := usecase.NewHealthService(deps.Items, deps.Config, cfg.App.Env, log)
	itemService := usecase.NewItemService(deps.Items, log)

	s := &Server{
		cfg:           cfg,
		log:           log,
		router:        router,
		metrics:       deps.Metrics,
		healthHandler: handler.NewHealthHandler(healthService),
		itemHandler:   handler.NewItemHandler(itemService),
	}
	s.rootHandler = handler.NewRootHandler(cfg.App.Name, s.routeList)

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.Metrics(s.metrics))
	s.router.Use(middleware.Logging(s.log))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.GET("/", s.rootHandler.Index)

	api := s.router.Group("/api")
	{
		// Health and configuration (never blocked by the database)
		api.GET("/health", s.healthHandler.Health)
		api.GET("/health/detailed", s.healthHandler.DetailedHealth)
		api.GET("/version", s.healthHandler.Version)
		api.GET("/config-status", s.healthHandler.ConfigStatus)
		api.GET("/db/ping", s.healthHandler.Ping)

		// Items
		api.GET("/items", s.itemHandler.List)
		api.GET("/items/:id", s.itemHandler.Get)
		api.POST("/items", s.itemHandler.Create)
	}

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	// Handle 404, including known paths with an unsupported method
	s.router.NoRoute(func(c *gin.Context) {
		response.RouteNotFound(c, middleware.GetRequestID(c))
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// routeList renders the registered routes as "METHOD /path", sorted.
func (s *Server) routeList() []string {
	routes := s.router.Routes()
	out := make([]string, 0, len(routes))
	for _, r := range routes {
		out = append(out, r.Method+" "+r.Path)
	}
	sort.Strings(out)
	return out
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	// Channel to receive server errors
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
			"store_driver", string(s.cfg.Store.Driver),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
