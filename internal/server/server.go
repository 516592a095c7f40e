// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the people search over HTTP as a small JSON API.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pdiddy/people-engine/internal/cache"
	"github.com/pdiddy/people-engine/internal/people"
	"github.com/pdiddy/people-engine/pkg/types"
)

// Searcher runs a people search. Satisfied by *people.Searcher.
type Searcher interface {
	Search(ctx context.Context, q people.Query, w io.Writer) (types.SearchResult, error)
}

// Server wires the search orchestrator, the optional result cache, and
// the HTTP routes together.
type Server struct {
	searcher Searcher
	cache    *cache.Store
	cfg      types.SearchConfig
	version  string
}

// NewServer builds the HTTP server. The cache store may be nil, in which
// case every request goes to the providers.
func NewServer(searcher Searcher, store *cache.Store, cfg types.SearchConfig, srvCfg types.ServerConfig, version string) *http.Server {
	s := &Server{
		searcher: searcher,
		cache:    store,
		cfg:      cfg,
		version:  version,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", srvCfg.Bind, srvCfg.Port),
		Handler: securityHeaders(mux),
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("people-engine listening at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
