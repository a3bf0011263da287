package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

type Options struct {
	CORSOrigins  []string
	DefaultUnits projection.UnitSystem
}

// Server exposes the calculators over HTTP. The database is optional; without
// one the persistence routes answer 503.
type Server struct {
	db      *sql.DB
	logger  *zap.Logger
	opts    Options
	handler http.Handler
}

func New(db *sql.DB, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	s := &Server{db: db, logger: logger, opts: opts}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/projection", s.handleProjection).Methods(http.MethodPost)
	r.HandleFunc("/api/alcohol", s.handleAlcohol).Methods(http.MethodPost)
	r.HandleFunc("/api/projections", s.handleListProjections).Methods(http.MethodGet)
	r.HandleFunc("/api/projections/{id}", s.handleGetProjection).Methods(http.MethodGet)
	r.HandleFunc("/api/projections/{id}", s.handleDeleteProjection).Methods(http.MethodDelete)
	r.HandleFunc("/mcp", s.handleToolCall).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	s.handler = c.Handler(requestID(s.logRequests(r)))
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
// for at most shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "db unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, status)
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	body := errorBody{Error: err.Error()}
	if ve, ok := projection.AsValidationError(err); ok {
		body.Field = ve.Field
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err))
	}
	writeJSON(w, status, body)
}

// statusFor maps validation failures to 400 and everything else to 500.
func statusFor(err error) int {
	if _, ok := projection.AsValidationError(err); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
