package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"auto_blogger_publisher/illustrator"
	"auto_blogger_publisher/normalizer"
	"auto_blogger_publisher/publisher"
	"auto_blogger_publisher/summarizer"
)

//go:embed web
var embeddedStatic embed.FS

// pipelineTimeout bounds one full request: normalize, summarize,
// illustrate and publish all happen inside it.
const pipelineTimeout = 120 * time.Second

// Normalizer, Summarizer and Publisher mirror the pipeline collaborators
// so tests can substitute them.
type Normalizer interface {
	Normalize(ctx context.Context, sub normalizer.Submission) (string, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, content string) (summarizer.Summary, error)
}

type Publisher interface {
	Publish(ctx context.Context, title, html string) (publisher.Post, error)
}

type Server struct {
	normalizer  Normalizer
	summarizer  Summarizer
	illustrator illustrator.Generator
	publisher   Publisher
	logger      *slog.Logger
	staticFS    http.Handler
}

func New(norm Normalizer, summ Summarizer, illus illustrator.Generator, pub Publisher, logger *slog.Logger) (*Server, error) {
	if norm == nil || summ == nil || illus == nil || pub == nil {
		return nil, errors.New("all pipeline collaborators are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}

	return &Server{
		normalizer:  norm,
		summarizer:  summ,
		illustrator: illus,
		publisher:   pub,
		logger:      logger,
		staticFS:    http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/process", s.handleProcess)
	mux.Handle("/", s.staticHandler())
	return s.logMiddleware(mux)
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		if r.URL.Path == "/" {
			r.URL.Path = "/index.html"
		}
		s.staticFS.ServeHTTP(w, r)
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
