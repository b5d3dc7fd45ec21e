package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jacobtread/xmlbuilder/pkg/middleware"
	"github.com/jacobtread/xmlbuilder/pkg/render"
	"github.com/jacobtread/xmlbuilder/pkg/xmldoc"
)

// Source produces the document for a request. It is invoked per request, so
// it may rebuild the tree from live data each time.
type Source func(r *http.Request) *xmldoc.Element

// Server serves rendered documents over HTTP.
type Server struct {
	router   chi.Router
	renderer *render.Renderer
	config   *Config

	httpServer *http.Server

	logger *slog.Logger
}

// New creates a new Server with the given configuration.
// A nil config uses DefaultConfig().
func New(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	} else {
		config.fillDefaults()
	}

	logger := slog.Default().With("component", "server")

	router := chi.NewRouter()
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	if config.EnableTracing {
		router.Use(middleware.Tracing())
	}
	if config.EnableMetrics {
		router.Use(middleware.Prometheus())
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return &Server{
		router:   router,
		renderer: render.NewRenderer(*config.Render),
		config:   config,
		logger:   logger,
	}
}

// Handle registers a document source at the given path. Requests render the
// source's tree with the server's rendering configuration.
func (s *Server) Handle(path string, source Source) {
	s.router.Get(path, func(w http.ResponseWriter, r *http.Request) {
		root := source(r)
		if root == nil {
			http.NotFound(w, r)
			return
		}

		out, err := s.renderer.RenderToString(root)
		if err != nil {
			s.logger.Error("render failed", "path", r.URL.Path, "error", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", s.config.ContentType)
		w.Write([]byte(out))
	})
}

// HandleStatic registers a fixed document at the given path.
func (s *Server) HandleStatic(path string, root *xmldoc.Element) {
	s.Handle(path, func(*http.Request) *xmldoc.Element { return root })
}

// HandleFunc registers a plain HTTP handler, for endpoints that are not
// rendered documents.
func (s *Server) HandleFunc(path string, handler http.HandlerFunc) {
	s.router.HandleFunc(path, handler)
}

// Handler returns the underlying HTTP handler, for mounting into a larger
// router or for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server and blocks until shutdown. It handles SIGINT and
// SIGTERM for graceful shutdown.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.Address)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		s.logger.Info("shutting down", "signal", sig.String())
		return s.Shutdown()
	}
}

// Shutdown gracefully stops the server, waiting up to ShutdownTimeout for
// in-flight requests.
func (s *Server) Shutdown() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
