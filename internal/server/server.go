// Package server exposes the label pipeline over HTTP.
//
// Routes:
//
//	GET /healthz                    liveness and version
//	GET /buildings                  every building with its label count
//	GET /buildings/{code}/labels    labels as JSON, or a text grid with format=text
//	GET /buildings/{code}/sheet     HTML barcode sheet linking /barcodes images
//	GET /barcodes/{label}.svg       Code 39 image for one label
//
// The labels and sheet routes accept the query parameters expression,
// columns and separator. Errors are JSON objects carrying the error code.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ThomasStivers/labeller/pkg/pipeline"
)

// DefaultShutdownTimeout bounds how long in-flight requests may take to
// finish once the server is asked to stop.
const DefaultShutdownTimeout = 5 * time.Second

// BarcodePath is the URL prefix barcode images are served under.
const BarcodePath = "/barcodes"

// Server serves labels, sheets and barcode images.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server over runner. A nil logger discards request logs.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/buildings", func(r chi.Router) {
		r.Get("/", s.handleBuildings)
		r.Get("/{code}/labels", s.handleLabels)
		r.Get("/{code}/sheet", s.handleSheet)
	})
	r.Get(BarcodePath+"/{file}", s.handleBarcode)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound("no route for %s", r.URL.Path))
	})
	return r
}

// Run listens on addr and serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		err = errors.Join(err, serveErr)
	}
	s.logger.Info("stopped")
	return err
}
