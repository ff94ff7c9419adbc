// Package server exposes outline extraction over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/thywilljoshua/pdf-outline/internal/convert"
	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

type Options struct {
	Addr string
	// MaxBytes caps the size of an uploaded PDF.
	MaxBytes int64
	// AllowedOrigins enables CORS for browser clients when not empty.
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	proc       *convert.Processor
	maxBytes   int64
	logger     *slog.Logger
	httpServer *http.Server
}

func New(proc *convert.Processor, opts Options) *Server {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 50 << 20
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{proc: proc, maxBytes: opts.MaxBytes, logger: opts.Logger}
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.routes(opts.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) routes(origins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))
	if len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"X-Outline-Status"},
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/v1/outline", s.handleOutline)
	return r
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		errc <- s.httpServer.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

type treeResponse struct {
	Title   string          `json:"title"`
	Outline []*outline.Node `json:"outline"`
}

// handleOutline accepts a PDF either as the raw request body or as the
// "file" field of a multipart form. A document that cannot be read yields
// the empty result with X-Outline-Status: failed, like the batch output.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "tree" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	name, data, err := s.readUpload(r)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", s.maxBytes))
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "empty body")
		return
	}

	res, perr := s.proc.ProcessReader(r.Context(), name, bytes.NewReader(data), int64(len(data)))
	if perr != nil {
		w.Header().Set("X-Outline-Status", "failed")
	} else {
		w.Header().Set("X-Outline-Status", "ok")
	}

	if format == "tree" {
		nodes := outline.Nest(res.Outline)
		if nodes == nil {
			nodes = []*outline.Node{}
		}
		writeJSON(w, http.StatusOK, treeResponse{Title: res.Title, Outline: nodes})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) readUpload(r *http.Request) (string, []byte, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		return "upload.pdf", data, err
	}
	if err := r.ParseMultipartForm(s.maxBytes); err != nil {
		return "", nil, err
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("invalid file: %w", err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	return header.Filename, data, err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = convert.WriteJSON(w, v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
