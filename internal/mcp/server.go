// Package mcp exposes the gate engine as a long-running MCP server: policy
// dry-runs, prompt classification, and session inspection over stdio, with
// hot-reloaded configuration.
package mcp

import (
	"context"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"hookgate/internal/config"
	"hookgate/internal/session"
)

// Config holds MCP server configuration.
type Config struct {
	ConfigPath  string
	SessionPath string
	WorkDir     string
	Version     string
}

// Server wraps the MCP SDK server around the gate engine.
type Server struct {
	mcpServer  *mcpsdk.Server
	cfg        *config.Config
	configPath string
	sessions   *session.Store
	log        *zap.Logger
	mu         sync.RWMutex
}

// New creates the MCP server with loaded configuration and registers the
// tools.
func New(c Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:        config.Load(c.ConfigPath),
		configPath: c.ConfigPath,
		sessions:   session.NewStore(c.SessionPath, c.WorkDir),
		log:        log,
	}

	version := c.Version
	if version == "" {
		version = "dev"
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "hookgate",
			Version: version,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport. Blocks until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// ReloadConfig re-reads the configuration from disk. Called by the file
// watcher; loading never fails, it degrades to defaults.
func (s *Server) ReloadConfig() {
	cfg := config.Load(s.configPath)
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.log.Info("config reloaded", zap.String("path", s.configPath))
}

func (s *Server) currentConfig() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// registerTools adds the hookgate tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hookgate_check",
		Description: "Run a hook event through the gate chains without emitting a hook response (dry-run). Returns the chain, decision, gate, and reason.",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hookgate_classify",
		Description: "Classify a prompt through the intent engine: type, domain, skills, agents, and research requirement.",
	}, s.handleClassify)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hookgate_session",
		Description: "Inspect the current session record: turn count, research state, active task, and intent bridge.",
	}, s.handleSession)
}
