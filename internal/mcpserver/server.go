package mcpserver

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/taskr/internal/logger"
	"github.com/mark3labs/taskr/internal/task"
)

// ServerName and ServerVersion identify the server to MCP clients.
const (
	ServerName    = "taskr"
	ServerVersion = "1.0.0"
)

// Server exposes a task store as MCP tools, over stdio or streamable HTTP.
type Server struct {
	store     *task.Store
	storeMu   sync.Mutex // serializes tool calls against the store
	mcpServer *server.MCPServer

	httpServer *server.StreamableHTTPServer
	stdServer  *http.Server // Standard HTTP server that uses the listener
	port       int
	mu         sync.Mutex
}

// New creates a server for store with all task tools registered.
func New(store *task.Store) *Server {
	s := &Server{store: store}
	s.mcpServer = server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// ServeStdio serves MCP over in/out until ctx is cancelled or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	logger.Debug("Serving MCP over stdio")
	stdio := server.NewStdioServer(s.mcpServer)
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("serving stdio: %w", err)
	}
	return nil
}

// Start starts the streamable HTTP transport on addr ("127.0.0.1:0" picks a
// free port). Returns the bound port.
func (s *Server) Start(ctx context.Context, addr string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	// Pass the listener directly to avoid a TOCTOU race on the port
	mux := http.NewServeMux()
	mcpHandler := server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
	mux.Handle("/mcp", mcpHandler)

	s.stdServer = &http.Server{Handler: mux}
	s.httpServer = mcpHandler

	// Capture stdServer for the goroutine to avoid racing with Stop()
	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Info("MCP server ready on port %d", s.port)
	return s.port, nil
}

// Stop shuts the HTTP transport down. Safe to call when not started.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	logger.Debug("Stopping MCP server")
	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.httpServer = nil
	s.stdServer = nil
	return nil
}

// URL returns the HTTP URL for the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
