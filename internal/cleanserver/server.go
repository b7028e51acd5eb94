// Package cleanserver exposes the htmlcleaner engine over HTTP: a JSON
// endpoint for one-shot cleaning, a websocket endpoint that streams
// progress frames for large documents, and Prometheus metrics.
package cleanserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/cleanmark/htmlcleaner"
)

// Config holds the server settings.
type Config struct {
	// ListenAddress is the host:port to listen on.
	ListenAddress string

	// MaxBodyBytes caps the request body size. Zero means 8 MiB.
	MaxBodyBytes int64
}

// Server serves the cleaning API.
type Server struct {
	cfg     Config
	log     zerolog.Logger
	cleaner *htmlcleaner.Cleaner
}

// New returns a Server wrapping a fresh engine that logs through log.
func New(cfg Config, log zerolog.Logger) *Server {
	cleaner := htmlcleaner.New()
	cleaner.Log = log.With().Str("component", "engine").Logger()
	return &Server{cfg: cfg, log: log, cleaner: cleaner}
}

// Router builds the HTTP route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.log))
	r.Use(hlog.RequestIDHandler("request_id", "Request-ID"))
	r.Use(hlog.AccessHandler(func(req *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(req).Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))

	r.Post("/clean", s.handleClean)
	r.Get("/clean/ws", s.handleCleanWS)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    s.cfg.ListenAddress,
		Handler: s.Router(),
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info().Str("address", s.cfg.ListenAddress).Msg("server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) maxBody() int64 {
	if s.cfg.MaxBodyBytes > 0 {
		return s.cfg.MaxBodyBytes
	}
	return 8 << 20
}

type cleanRequest struct {
	Markup  string              `json:"markup"`
	Options htmlcleaner.Options `json:"options"`
}

type cleanResponse struct {
	HTML     string `json:"html"`
	Fragment bool   `json:"fragment"`
	Elements int    `json:"elements"`
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody())
	var req cleanRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	var elements int
	out, err := s.cleaner.CleanWithProgress(r.Context(), req.Markup, req.Options,
		func(percent, processed, total int) { elements = total })
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		hlog.FromRequest(r).Err(err).Msg("clean failed")
		writeError(w, http.StatusInternalServerError, "cleaning failed")
		return
	}

	fragment := htmlcleaner.IsFragment(req.Markup)
	observeClean(fragment, elements, time.Since(start))
	writeJSON(w, http.StatusOK, cleanResponse{HTML: out, Fragment: fragment, Elements: elements})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
