// Package httpapi is an optional, read-only monitoring surface over a
// roboid.Manager: a JSON snapshot of every connected robot, a
// server-sent-events stream of bus events, and a WebSocket push
// channel for the same events. Nothing in the core runtime depends on
// this package; a process that never calls Serve never opens a
// listening socket.
//
// Adapted from the teacher's http_server package: chi router with a
// graceful-shutdown Start loop, the same SSE header set and retry
// directive, and a completed (not stubbed) gorilla/websocket handler.
package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"roboid/roboid"
	"roboid/shared"

	"github.com/go-chi/chi/v5"
)

// Server is the monitoring dashboard's HTTP surface over one Manager.
type Server struct {
	mgr    *roboid.Manager
	router *chi.Mux
	srv    *http.Server
}

// NewServer builds the router and registers every route (spec §6).
func NewServer(mgr *roboid.Manager) *Server {
	r := chi.NewRouter()
	s := &Server{mgr: mgr, router: r}

	r.Get("/robots", s.getRobots)
	r.Get("/robots/{index}", s.getRobot)
	r.Get("/events", s.sseHandler)
	r.Get("/ws", s.wsHandler)

	return s
}

// Serve listens on addr until ctx is cancelled, then shuts down
// gracefully, mirroring the teacher's http_server.Start.
func (s *Server) Serve(ctx context.Context, addr string) error {
	s.srv = &http.Server{Addr: addr, Handler: s.router}

	serverErr := make(chan error, 1)
	go func() {
		shared.DebugPrint("httpapi: listening on %s", addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("httpapi: server error: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shared.DebugPrint("httpapi: shutting down")
		return s.srv.Shutdown(context.Background())
	}
}
