// Package mcpserver exposes the host's control over the assistant panel as
// MCP tools. Tools never touch the panel model: they send host messages to
// the running program and read the snapshot the panel publishes.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"assistpanel/internal/panel"
	"assistpanel/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName      = "assistpanel"
	serverSubsystem = "MCPServer"
)

// Sender delivers messages to the UI loop. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// StateReader returns the latest panel snapshot.
type StateReader interface {
	Load() (panel.State, bool)
}

// Config defines where the control server listens.
type Config struct {
	Host    string
	Port    int
	Version string
}

// Server is the MCP control surface of the panel host.
type Server struct {
	config Config
	tools  *PanelTools

	mu        sync.Mutex
	server    *server.MCPServer
	sseServer *server.SSEServer
}

// New creates a server that forwards tool calls to sender and answers
// state queries from state.
func New(config Config, sender Sender, state StateReader) *Server {
	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Port == 0 {
		config.Port = 8091
	}
	if config.Version == "" {
		config.Version = "dev"
	}
	return &Server{config: config, tools: NewPanelTools(sender, state)}
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// BaseURL is the URL clients connect to.
func (s *Server) BaseURL() string {
	return "http://" + s.Addr()
}

// Start registers the tools and serves SSE in the background.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return fmt.Errorf("mcp server already started")
	}

	s.server = server.NewMCPServer(
		serverName,
		s.config.Version,
		server.WithToolCapabilities(true),
	)
	s.tools.Register(s.server)

	s.sseServer = server.NewSSEServer(
		s.server,
		server.WithBaseURL(s.BaseURL()),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(30*time.Second),
	)

	addr := s.Addr()
	logging.Info(serverSubsystem, "Starting MCP control server on %s", addr)

	sseServer := s.sseServer
	go func() {
		if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
			logging.Error(serverSubsystem, err, "SSE server error")
		}
	}()
	go func() {
		<-ctx.Done()
		if err := s.Stop(context.Background()); err != nil {
			logging.Debug(serverSubsystem, "stop after context cancel: %v", err)
		}
	}()
	return nil
}

// Stop shuts the SSE server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	sseServer := s.sseServer
	if s.server == nil {
		s.mu.Unlock()
		return fmt.Errorf("mcp server not started")
	}
	s.server = nil
	s.sseServer = nil
	s.mu.Unlock()

	logging.Info(serverSubsystem, "Stopping MCP control server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sseServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down sse server: %w", err)
	}
	return nil
}

// ClientConfigJSON returns an mcpServers snippet for MCP clients pointing
// at the SSE endpoint of a server listening on host:port.
func ClientConfigJSON(host string, port int) string {
	type entry struct {
		URL         string `json:"url"`
		Description string `json:"description,omitempty"`
	}
	cfg := map[string]map[string]entry{
		"mcpServers": {
			serverName: {
				URL:         fmt.Sprintf("http://%s:%d/sse", host, port),
				Description: "Control the assistant panel of a running lesson viewer",
			},
		},
	}
	out, _ := json.MarshalIndent(cfg, "", "  ")
	return string(out)
}
