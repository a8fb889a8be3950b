// Package server exposes an Evaluator over HTTP.
//
// Routes:
//
//	POST /v1/score         submission array in, Report out
//	GET  /v1/instructions  expected instruction ids
//	GET  /healthz          liveness
//	GET  /metrics          Prometheus exposition
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ayshrv/visitron/distance"
	"github.com/ayshrv/visitron/eval"
	"github.com/ayshrv/visitron/groundtruth"
	"github.com/ayshrv/visitron/telemetry"
	"github.com/ayshrv/visitron/trajectory"
)

// maxBody bounds the accepted submission size.
const maxBody = 64 << 20

// Server routes HTTP requests to an Evaluator.
type Server struct {
	ev       *eval.Evaluator
	recorder *telemetry.Recorder
	logger   *slog.Logger
	router   *mux.Router
}

// New builds the router for ev. A nil recorder disables /metrics content.
func New(ev *eval.Evaluator, rec *telemetry.Recorder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{ev: ev, recorder: rec, logger: logger, router: mux.NewRouter()}

	s.router.HandleFunc("/v1/score", s.handleScore).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/instructions", s.handleInstructions).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", rec.Handler()).Methods(http.MethodGet)
	s.router.Use(s.logRequests)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")

		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	subs, err := trajectory.DecodeSubmissions(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rep, err := s.ev.Score(r.Context(), subs)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleInstructions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Instructions []groundtruth.InstrID `json:"instructions"`
		ErrorMargin  float64               `json:"error_margin"`
	}{s.ev.Instructions(), s.ev.ErrorMargin()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps scoring errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, eval.ErrConsistency):
		return http.StatusInternalServerError
	case errors.Is(err, eval.ErrDuplicateSubmission),
		errors.Is(err, eval.ErrIncompleteSubmission),
		errors.Is(err, trajectory.ErrEmptyTrajectory),
		errors.Is(err, trajectory.ErrStartMismatch),
		errors.Is(err, trajectory.ErrMissingEdge),
		errors.Is(err, distance.ErrUnknownNode),
		errors.Is(err, distance.ErrUnreachable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
