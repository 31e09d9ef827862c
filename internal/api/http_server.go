package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"recruitbot/internal/config"
	"recruitbot/internal/export"
	"recruitbot/internal/logging"
	"recruitbot/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	healthPath  = "/healthz"
	statsPath   = "/api/v1/stats"
	pendingPath = "/api/v1/pending"
	exportPath  = "/api/v1/export.xlsx"
	metricsPath = "/metrics"
)

// HTTPServer exposes operator read endpoints, probes and metrics.
type HTTPServer struct {
	cfg    config.APIConfig
	store  OpsStore
	server *http.Server
	auth   *Authenticator
	log    *zerolog.Logger
}

func NewHTTPServer(cfg config.APIConfig, store OpsStore, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:   cfg,
		store: store,
		auth:  NewAuthenticator(cfg),
		log:   logging.OrNop(logger),
	}

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return srv
}

// Handler is the full middleware chain, exposed for tests.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(healthPath, s.handleHealth)
	mux.HandleFunc(statsPath, s.handleStats)
	mux.HandleFunc(pendingPath, s.handlePending)
	mux.HandleFunc(exportPath, s.handleExport)
	mux.Handle(metricsPath, promhttp.Handler())

	return s.loggingMiddleware(s.auth.Wrap(mux))
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return errors.New("http server is not initialized")
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	metrics.IncHTTP("stats")

	st, err := s.store.GetStats(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("stats query failed")
		writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}
	writeJSON(w, http.StatusOK, statsMap(st))
}

func (s *HTTPServer) handlePending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	metrics.IncHTTP("pending")

	limit := defaultPendingLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	questions, err := s.store.ListPendingQuestions(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("pending query failed")
		writeError(w, http.StatusInternalServerError, "pending questions unavailable")
		return
	}

	total := len(questions)
	if len(questions) > limit {
		questions = questions[:limit]
	}
	items := make([]map[string]interface{}, 0, len(questions))
	for _, q := range questions {
		items = append(items, pendingMap(q))
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": items, "total": total})
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	metrics.IncHTTP("export")

	ctx := r.Context()
	report := &export.Report{GeneratedAt: time.Now()}
	var err error
	if report.Applications, err = s.store.ListApplicationRows(ctx); err != nil {
		s.log.Error().Err(err).Msg("export: applications query failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	if report.Questions, err = s.store.ListPendingQuestions(ctx); err != nil {
		s.log.Error().Err(err).Msg("export: pending query failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	if report.Stats, err = s.store.GetStats(ctx); err != nil {
		s.log.Warn().Err(err).Msg("export: stats skipped")
	}

	filename := fmt.Sprintf("recruitbot_%s.xlsx", report.GeneratedAt.Format("2006-01-02_15-04-05"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.Write(w, report); err != nil {
		s.log.Error().Err(err).Msg("export: write failed")
	}
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		if r.URL.Path == healthPath || r.URL.Path == metricsPath {
			return
		}
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
