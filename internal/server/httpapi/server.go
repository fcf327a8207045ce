// Package httpapi exposes the bridge's two endpoints over HTTP: /db for
// whole-table pull/push and /files for the media store. The surface mirrors
// the hosting-script wire contract the client speaks: query-selected actions,
// shared-key auth on every request, minimal JSON acks.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pitwall/paddockpress/internal/logging"
	"github.com/pitwall/paddockpress/internal/server/storage"
)

// TablesRepo is the relational storage surface the /db endpoint needs.
type TablesRepo interface {
	Ping(ctx context.Context) error
	PullAll(ctx context.Context) (map[string][]json.RawMessage, error)
	ReplaceAll(ctx context.Context, tables map[string][]json.RawMessage) error
}

// FileStore is the object storage surface the /files endpoint needs.
type FileStore interface {
	List(ctx context.Context) ([]storage.StoredFile, error)
	Put(ctx context.Context, name, contentType string, r io.Reader) error
	Delete(ctx context.Context, name string) error
	Bucket() string
}

// Server routes bridge requests. It is an http.Handler so tests can drive it
// through httptest directly.
type Server struct {
	router *mux.Router
	logger logging.Logger
	repo   TablesRepo
	files  FileStore
	apiKey string
}

func NewServer(logger logging.Logger, repo TablesRepo, files FileStore, apiKey string) *Server {
	s := &Server{
		router: mux.NewRouter(),
		logger: logger.With("component", "httpapi"),
		repo:   repo,
		files:  files,
		apiKey: apiKey,
	}

	s.router.HandleFunc("/db", s.requireKey(s.handleDBGet)).Methods(http.MethodGet)
	s.router.HandleFunc("/db", s.requireKey(s.handleDBPost)).Methods(http.MethodPost)
	s.router.HandleFunc("/files", s.requireKey(s.handleFilesGet)).Methods(http.MethodGet)
	s.router.HandleFunc("/files", s.requireKey(s.handleFilesPost)).Methods(http.MethodPost)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info(ctx, "bridge listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
