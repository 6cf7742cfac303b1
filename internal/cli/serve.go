package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/automation-practice/sessionboot/internal/config"
	"github.com/automation-practice/sessionboot/internal/handlers"
)

// ServerDependencies holds all dependencies needed for the practice site
type ServerDependencies struct {
	ServerConfig   config.ServerConfig
	Version        string
	SignupHandler  http.Handler
	LoginHandler   http.Handler
	HomeHandler    http.Handler
	LogoutHandler  http.Handler
	RequireSession func(http.Handler) http.Handler // guards the home page, nil for none
}

// RunServe starts the practice site and blocks until SIGINT or SIGTERM
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           routes(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[INFO] practice site listening on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] server error: %v", err)
		}
	}()

	return listener, server, nil
}

// routes wires the site pages behind the shared middleware stack
func routes(deps ServerDependencies) http.Handler {
	router := routegroup.New(http.NewServeMux())
	router.Use(
		rest.Recoverer(log.Default()),
		rest.RealIP,
		rateLimiter(deps.ServerConfig.RequestsPerSec),
		rest.SizeLimit(64*1024),
		rest.AppInfo("sessionboot", "automation-practice", deps.Version),
		rest.Ping,
	)

	router.Handle(handlers.SignupPath, deps.SignupHandler)
	router.Handle(handlers.LoginPath, deps.LoginHandler)
	router.Handle(handlers.LogoutPath, deps.LogoutHandler)
	router.Handle("GET "+handlers.StylePath, handlers.StyleHandler())
	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, handlers.HomePath, http.StatusSeeOther)
	})

	requireSession := deps.RequireSession
	if requireSession == nil {
		requireSession = func(next http.Handler) http.Handler { return next }
	}
	router.Group().Route(func(b *routegroup.Bundle) {
		b.Use(requireSession)
		b.Handle(handlers.HomePath, deps.HomeHandler)
	})

	return router
}

// rateLimiter limits requests per second per client ip, 100 when rps is not set
func rateLimiter(rps float64) func(http.Handler) http.Handler {
	if rps <= 0 {
		rps = 100
	}
	lmt := tollbooth.NewLimiter(rps, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr", IndexFromRight: 0})
	lmt.SetBurst(int(rps))
	return func(next http.Handler) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// If shutdown is nil a channel is registered for SIGINT and SIGTERM.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	log.Printf("[INFO] received signal: %v, shutting down server", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// http.Server.Close does not surface listener close errors
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Printf("[INFO] server stopped")
	return nil
}
