package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	"github.com/aretw0/pageforge"
	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/editor"
	"github.com/aretw0/pageforge/pkg/ports"
	"github.com/aretw0/pageforge/pkg/session"
)

//go:embed openapi.yaml
var rawSpec []byte

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	return doc, nil
}

// Server exposes a session.Manager over REST and server-sent events.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	spec      *openapi3.T
	exporters map[string]ports.Exporter
	metrics   http.Handler
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithExporter makes an exporter available at /sessions/{id}/export/{name}.
func WithExporter(name string, exporter ports.Exporter) Option {
	return func(s *Server) {
		s.exporters[name] = exporter
	}
}

// WithMetrics mounts a metrics handler (typically promhttp.Handler()) at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the logger. The default writes JSON to stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the session manager.
// It fails if the embedded API description does not validate.
func NewHandler(sessions *session.Manager, opts ...Option) (http.Handler, error) {
	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	server := &Server{
		Sessions:  sessions,
		Streams:   NewStreamManager(),
		spec:      spec,
		exporters: make(map[string]ports.Exporter),
		logger:    slog.New(slog.NewJSONHandler(os.Stderr, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams.logger = server.logger

	r := chi.NewRouter()
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/operations", server.ListOperations)
	if server.metrics != nil {
		r.Handle("/metrics", server.metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", server.ListSessions)
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", server.GetSession)
			r.Put("/", server.ImportSession)
			r.Delete("/", server.DeleteSession)
			r.Post("/commands", server.ExecuteCommand)
			r.Get("/events", server.SubscribeEvents)
			r.Get("/export/{format}", server.ExportSession)
		})
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Pageforge API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// CommandResponse is the body returned by POST /sessions/{id}/commands.
type CommandResponse struct {
	Result editor.Result `json:"result"`
	Site   *domain.Site  `json:"site"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "pageforge-http",
		"version":     strings.TrimSpace(pageforge.Version),
		"api_version": apiVersion,
	})
}

// ListOperations handles the GET /operations request.
func (s *Server) ListOperations(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, editor.Operations)
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, "ListSessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	site, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		s.writeError(w, "GetSession", err)
		return
	}
	s.writeJSON(w, http.StatusOK, site)
}

// ImportSession handles the PUT /sessions/{id} request.
func (s *Server) ImportSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	var body domain.Site
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("ImportSession: Invalid request body", "err", err)
		return
	}

	site, err := s.Sessions.Import(r.Context(), sessionID, &body)
	if err != nil {
		s.writeError(w, "ImportSession", err)
		return
	}
	s.broadcast(sessionID, nil, site)
	s.writeJSON(w, http.StatusOK, site)
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "sessionId")); err != nil {
		s.writeError(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExecuteCommand handles the POST /sessions/{id}/commands request.
func (s *Server) ExecuteCommand(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("ExecuteCommand: Invalid request body", "err", err)
		return
	}
	cmd, err := editor.DecodeCommand(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.logger.Warn("ExecuteCommand: Invalid command", "err", err)
		return
	}

	var result editor.Result
	update, err := s.Sessions.Do(r.Context(), sessionID, func(ctx context.Context, es *editor.Session) error {
		var err error
		result, err = es.Execute(ctx, cmd)
		return err
	})
	if err != nil {
		s.writeError(w, "ExecuteCommand", err)
		return
	}

	s.broadcast(sessionID, update.Previous, update.Current)
	s.writeJSON(w, http.StatusOK, CommandResponse{Result: result, Site: update.Current})
}

// ExportSession handles the GET /sessions/{id}/export/{format} request.
func (s *Server) ExportSession(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	exporter, ok := s.exporters[format]
	if !ok {
		names := make([]string, 0, len(s.exporters))
		for name := range s.exporters {
			names = append(names, name)
		}
		sort.Strings(names)
		http.Error(w, fmt.Sprintf("unknown export format %q (available: %s)", format, strings.Join(names, ", ")), http.StatusNotFound)
		return
	}

	site, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		s.writeError(w, "ExportSession", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := exporter.Export(r.Context(), w, site); err != nil {
		s.logger.Error("Export failed", "format", format, "err", err)
	}
}

func (s *Server) broadcast(sessionID string, prev, next *domain.Site) {
	diff := domain.Diff(sessionID, prev, next)
	if diff == nil {
		s.logger.Debug("No diff calculated", "session_id", sessionID)
		return
	}
	if bytes, err := json.Marshal(diff); err == nil {
		s.Streams.Broadcast(sessionID, string(bytes))
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateGlobal),
		errors.Is(err, domain.ErrGlobalNotTopLevel),
		errors.Is(err, domain.ErrNotContainer),
		errors.Is(err, domain.ErrCopyGlobal):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrUnknownOperation),
		errors.Is(err, domain.ErrUnknownKind),
		errors.Is(err, domain.ErrInvalidAttribute),
		errors.Is(err, domain.ErrInvalidPath):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Warn(op+" rejected", "err", err, "status", status)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
