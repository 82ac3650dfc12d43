package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/pageforge"
	"github.com/aretw0/pageforge/internal/logging"
	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/editor"
	"github.com/aretw0/pageforge/pkg/ports"
	"github.com/aretw0/pageforge/pkg/session"
)

// SiteURIPrefix prefixes the resource URI of a session document.
const SiteURIPrefix = "pageforge://site/"

// CommandArgs are the arguments of the execute_command tool.
type CommandArgs struct {
	SessionID string         `json:"session_id"`
	Command   map[string]any `json:"command"`
}

// SessionArgs identify a session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// ExportArgs are the arguments of the export_site tool.
type ExportArgs struct {
	SessionID string `json:"session_id"`
	Format    string `json:"format"`
}

// CommandResponse aligns with the HTTP adapter so both surfaces return the same shape.
type CommandResponse struct {
	Result editor.Result `json:"result" jsonschema_description:"Outcome of the operation"`
	Site   *domain.Site  `json:"site" jsonschema_description:"Document after the operation"`
}

// Server exposes a session manager as an MCP server.
type Server struct {
	sessions  *session.Manager
	exporters map[string]ports.Exporter
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithExporter makes an exporter available to the export_site tool.
func WithExporter(name string, exporter ports.Exporter) Option {
	return func(s *Server) {
		s.exporters[name] = exporter
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		exporters: make(map[string]ports.Exporter),
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("pageforge-mcp", strings.TrimSpace(pageforge.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	executeTool := mcp.NewTool("execute_command",
		mcp.WithDescription("Apply one editing operation to a site. Unknown sessions start from the default two-page document. "+
			"Operations: "+strings.Join(editor.Operations, ", ")+"."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to edit")),
		mcp.WithObject("command", mcp.Required(),
			mcp.Description(`Command object, e.g. {"op":"add_node","kind":"Paragraph"} or {"op":"move_node","nodeId":"...","direction":"up"}`)),
		mcp.WithOutputSchema[CommandResponse](),
	)
	s.mcpServer.AddTool(executeTool, mcp.NewStructuredToolHandler(s.handleExecute))

	s.mcpServer.AddTool(mcp.NewTool("get_site",
		mcp.WithDescription("Get the current document of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to read")),
	), mcp.NewTypedToolHandler(s.handleGetSite))

	s.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List stored session ids."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.sessions.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		return mcp.NewToolResultText(strings.Join(ids, "\n")), nil
	})

	if len(s.exporters) > 0 {
		s.mcpServer.AddTool(mcp.NewTool("export_site",
			mcp.WithDescription("Render a session document."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to export")),
			mcp.WithString("format", mcp.Required(), mcp.Enum(s.exporterNames()...)),
		), mcp.NewTypedToolHandler(s.handleExport))
	}
}

func (s *Server) exporterNames() []string {
	names := make([]string, 0, len(s.exporters))
	for name := range s.exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) handleExecute(ctx context.Context, request mcp.CallToolRequest, args CommandArgs) (CommandResponse, error) {
	if args.SessionID == "" {
		return CommandResponse{}, errors.New("session_id is required")
	}
	cmd, err := editor.DecodeCommand(args.Command)
	if err != nil {
		return CommandResponse{}, err
	}

	var result editor.Result
	update, err := s.sessions.Do(ctx, args.SessionID, func(ctx context.Context, es *editor.Session) error {
		var err error
		result, err = es.Execute(ctx, cmd)
		return err
	})
	if err != nil {
		s.logger.Warn("MCP execute_command rejected", "session_id", args.SessionID, "op", cmd.Op, "err", err)
		return CommandResponse{}, fmt.Errorf("%s failed: %w", cmd.Op, err)
	}
	return CommandResponse{Result: result, Site: update.Current}, nil
}

func (s *Server) handleGetSite(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (*mcp.CallToolResult, error) {
	site, err := s.sessions.Load(ctx, args.SessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	jsonBytes, err := json.Marshal(site)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleExport(ctx context.Context, request mcp.CallToolRequest, args ExportArgs) (*mcp.CallToolResult, error) {
	exporter, ok := s.exporters[args.Format]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", args.Format)), nil
	}
	site, err := s.sessions.Load(ctx, args.SessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	var b strings.Builder
	if err := exporter.Export(ctx, &b, site); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) registerResources() {
	template := mcp.NewResourceTemplate(SiteURIPrefix+"{id}", "Site document",
		mcp.WithTemplateDescription("Current document of an editing session"),
		mcp.WithTemplateMIMEType("application/json"),
	)
	s.mcpServer.AddResourceTemplate(template, s.readSite)
}

func (s *Server) readSite(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id, ok := strings.CutPrefix(uri, SiteURIPrefix)
	if !ok || id == "" {
		return nil, fmt.Errorf("unsupported resource %q", uri)
	}
	site, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load site: %w", err)
	}
	jsonBytes, err := json.Marshal(site)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
