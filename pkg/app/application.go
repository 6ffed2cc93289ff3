package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"voltworks/pkg/config"
	"voltworks/pkg/contracts"
	"voltworks/pkg/middleware"
)

// Stoppable is anything with background work to halt during shutdown:
// caches, notification centers, view registries, event watchers.
type Stoppable interface {
	Stop()
}

type Application struct {
	cfg         *config.Config
	server      *http.Server
	rateLimiter *middleware.RateLimiter
	stoppables  []Stoppable
}

func NewApplication() *Application {
	return &Application{}
}

// SetApp wires the health router (minimal middleware) and the application
// router (full chain plus the route guard) into one server.
func (a *Application) SetApp(
	cfg *config.Config,
	healthHandler contracts.Handler,
	guardMiddleware func(http.Handler) http.Handler,
	appHandlers ...contracts.Handler,
) {
	a.cfg = cfg
	health := a.buildHealthHandler(cfg, healthHandler)
	app := a.buildAppHandler(cfg, guardMiddleware, appHandlers)
	a.buildServer(health, app)
}

// Manage registers background workers for shutdown, in the order given.
func (a *Application) Manage(stoppables ...Stoppable) {
	a.stoppables = append(a.stoppables, stoppables...)
}

func (a *Application) buildHealthHandler(cfg *config.Config, healthHandler contracts.Handler) http.Handler {
	healthRouter := httprouter.New()
	healthHandler.RegisterRoutes(healthRouter)

	var h http.Handler = healthRouter
	h = middleware.RequestLogging(cfg.Log)(h)
	h = middleware.Recovery(cfg.Log)(h)
	return h
}

func (a *Application) buildAppHandler(
	cfg *config.Config,
	guardMiddleware func(http.Handler) http.Handler,
	appHandlers []contracts.Handler,
) http.Handler {
	appRouter := httprouter.New()
	for _, handler := range appHandlers {
		handler.RegisterRoutes(appRouter)
	}

	a.rateLimiter = middleware.NewRateLimiter(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		middleware.DefaultKeyExtractor,
		cfg.Log,
	)

	var h http.Handler = appRouter
	h = guardMiddleware(h)
	h = middleware.RequestTimeout(cfg.RequestTimeout)(h)
	h = middleware.RateLimit(a.rateLimiter)(h)
	h = middleware.ContentTypeValidation(cfg.Log)(h)
	h = middleware.MaxRequestSize(cfg.MaxRequestSize)(h)
	h = middleware.RequestLogging(cfg.Log)(h)
	h = middleware.Recovery(cfg.Log)(h)
	return h
}

func (a *Application) buildServer(health, app http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/health", health)
	mux.Handle("/ready", health)
	mux.Handle("/", app)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.rateLimiter.Stop()
	for _, stoppable := range a.stoppables {
		stoppable.Stop()
	}
	a.cfg.Log.Info("Background workers stopped")

	a.cfg.Log.Info("Server stopped gracefully")
}
