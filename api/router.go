// Package api exposes label generation over a small JSON/HTTP interface
// meant to be bound to the loopback address.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openclaw/labelgen/batch"
	"github.com/openclaw/labelgen/config"
	"github.com/openclaw/labelgen/symbol"
)

const (
	maxBodyBytes  = 1 << 20
	maxLogoBytes  = 10 << 20
	maxSheetItems = 1500
)

// Server holds the dependencies for all HTTP handlers.
type Server struct {
	Processor *batch.Processor
	Settings  *config.SettingsStore
	Log       *slog.Logger
	Version   string
	// Timeout bounds each request. Zero disables it.
	Timeout time.Duration

	// mu serializes rendering (font faces are not safe for concurrent use)
	// and settings updates.
	mu      sync.Mutex
	started time.Time
}

// NewRouter returns a fully configured chi router with all API routes.
func NewRouter(s *Server) http.Handler {
	if s.Log == nil {
		s.Log = slog.Default()
	}
	s.started = time.Now()

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.Log))

	r.Get("/", s.handleIndex)
	r.Get("/status", s.handleStatus)
	r.Get("/symbologies", s.handleSymbologies)

	r.Post("/increment", s.handleIncrement)
	r.Post("/labels", s.handleLabel)
	r.Post("/sheets", s.handleSheet)

	r.Get("/settings", s.handleGetSettings)
	r.Put("/settings", s.handlePutSettings)
	r.Put("/settings/logo", s.handlePutLogo)
	r.Delete("/settings/logo", s.handleDeleteLogo)

	if s.Timeout <= 0 {
		return r
	}
	return http.TimeoutHandler(r, s.Timeout, `{"error":"request timed out"}`)
}

// --- helpers ----------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeFailure maps a core error to its status code.
func writeFailure(w http.ResponseWriter, err error) {
	writeError(w, errorStatus(err), err.Error())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, symbol.ErrUnsupportedSymbology):
		return http.StatusBadRequest
	case errors.Is(err, symbol.ErrInvalidData),
		errors.Is(err, batch.ErrCannotIncrement),
		errors.Is(err, batch.ErrEmptyBatch),
		errors.Is(err, config.ErrInvalidSettings):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a size-limited JSON body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// --- middleware --------------------------------------------------------------

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}
