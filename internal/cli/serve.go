package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/zxtools/zxviz/pkg/graph"
	"github.com/zxtools/zxviz/pkg/pipeline"
	"github.com/zxtools/zxviz/pkg/store"
)

// serveCommand creates the serve command running the diagram HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mongoURI string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the diagram HTTP API",
		Long: `Serve exposes stored diagrams over HTTP:

  POST   /diagrams              store a diagram (JSON body, ?name=)
  GET    /diagrams              list stored diagrams
  GET    /diagrams/{id}         fetch a stored diagram
  DELETE /diagrams/{id}         delete a stored diagram
  GET    /diagrams/{id}/render  render it (?format=svg|png|dot|json)

Diagrams live in memory unless a MongoDB URI is configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.newStore(ctx, mongoURI)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := newServer(st, runner, c.Logger)
			return srv.listen(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Server.Addr, "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", c.Config.Server.MongoURI, "MongoDB URI for persistent storage (default: in-memory)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// newStore selects the diagram store backend.
func (c *CLI) newStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI != "" {
		c.Logger.Info("using MongoDB store", "uri", mongoURI)
		return store.NewMongoStore(ctx, mongoURI)
	}
	c.Logger.Info("using in-memory store")
	return store.NewMemoryStore(), nil
}

// server handles the diagram HTTP API.
type server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

func newServer(st store.Store, runner *pipeline.Runner, logger *log.Logger) *server {
	return &server{store: st, runner: runner, logger: logger}
}

// router builds the chi route tree.
func (s *server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Route("/diagrams", func(r chi.Router) {
		r.Post("/", s.handleSave)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Delete("/{id}", s.handleDelete)
		r.Get("/{id}/render", s.handleRender)
	})

	return r
}

// listen serves the API until the context is cancelled, then shuts down
// gracefully.
func (s *server) listen(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// logRequests logs one line per request with method, path, and duration.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleSave stores the diagram in the request body under a generated id.
// The body is a node-link JSON document; the optional ?name= query sets
// the display name.
func (s *server) handleSave(w http.ResponseWriter, r *http.Request) {
	var g graph.Graph
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}
	// Reject structurally invalid diagrams before they reach the store.
	if _, err := graph.ToDiagram(g); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	name := r.URL.Query().Get("name")
	id, err := s.store.Save(r.Context(), name, g)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("diagram stored", "id", id, "name", name)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if docs == nil {
		docs = []store.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("diagram deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// contentTypes maps render formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

// handleRender renders a stored diagram in the requested format
// (?format=, default svg).
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormats([]string{format}); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	d, err := graph.ToDiagram(doc.Graph)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	artifacts, err := s.runner.Render(r.Context(), d, pipeline.Options{
		Formats: []string{format},
		Logger:  s.logger,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
