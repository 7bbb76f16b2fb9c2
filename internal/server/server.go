// package server contains the local HTTP listener that receives OAuth redirects
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that knows which paths it serves.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router registers handlers and applies middleware.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Listener is a running loopback server.
type Listener struct {
	server *http.Server
	addr   string
	done   chan error
}

// Listen binds addr and serves router in the background. Use ":0" style addresses in tests.
func Listen(addr string, router Router) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	l := &Listener{
		server: &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second},
		addr:   ln.Addr().String(),
		done:   make(chan error, 1),
	}

	go func() {
		err := l.server.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		l.done <- err
	}()

	return l, nil
}

// Addr returns the bound address.
func (l *Listener) Addr() string {
	return l.addr
}

// Shutdown stops the server, waiting for in-flight requests until ctx expires.
func (l *Listener) Shutdown(ctx context.Context) error {
	if err := l.server.Shutdown(ctx); err != nil {
		return err
	}
	return <-l.done
}
